package parser

import (
	"strconv"

	"github.com/obbidlgo/obbidl/ast"
	"github.com/obbidlgo/obbidl/lexer"
)

// Parse lexes and parses src in full, returning the first error encountered
// (the parser never recovers).
func Parse(src []byte) (*ast.File, error) {
	return New(src).ParseFile()
}

// ParseFile parses { Protocol | Struct } End.
func (p *Parser) ParseFile() (*ast.File, error) {
	file := &ast.File{}
	for !p.AtEnd() {
		if prot, ok, err := ParseMaybe(p, (*Parser).parseProtocol); err != nil {
			return nil, err
		} else if ok {
			file.Protocols = append(file.Protocols, prot)
			continue
		}
		if st, ok, err := ParseMaybe(p, (*Parser).parseStruct); err != nil {
			return nil, err
		} else if ok {
			file.Structs = append(file.Structs, st)
			continue
		}
		return nil, p.err()
	}
	return file, nil
}

func (p *Parser) parseStruct() (ast.Span[*ast.Struct], error) {
	var zero ast.Span[*ast.Struct]
	start := p.here()
	if err := p.ExpectKeyword(lexer.KwStruct); err != nil {
		return zero, err
	}
	name, err := p.ExpectIdent()
	if err != nil {
		return zero, err
	}
	if err := p.ExpectSymbol(lexer.SymOpenBrace); err != nil {
		return zero, err
	}
	st := &ast.Struct{Name: name}
	for !p.EatSymbol(lexer.SymCloseBrace) {
		fieldName, err := p.ExpectIdent()
		if err != nil {
			return zero, err
		}
		if err := p.ExpectSymbol(lexer.SymColon); err != nil {
			return zero, err
		}
		ty, err := p.parseType()
		if err != nil {
			return zero, err
		}
		st.Fields = append(st.Fields, ast.Field{Name: fieldName, Type: ty})
		if !p.EatSymbol(lexer.SymComma) {
			if err := p.ExpectSymbol(lexer.SymCloseBrace); err != nil {
				return zero, err
			}
			break
		}
	}
	return ast.Span[*ast.Struct]{Value: st, Range: p.span(start)}, nil
}

func (p *Parser) parseProtocol() (ast.Span[*ast.Protocol], error) {
	var zero ast.Span[*ast.Protocol]
	start := p.here()
	if err := p.ExpectKeyword(lexer.KwProtocol); err != nil {
		return zero, err
	}
	name, err := p.ExpectIdent()
	if err != nil {
		return zero, err
	}
	prot := &ast.Protocol{Name: name}
	if p.EatSymbol(lexer.SymOpenParen) {
		for !p.EatSymbol(lexer.SymCloseParen) {
			if err := p.ExpectKeyword(lexer.KwRole); err != nil {
				return zero, err
			}
			roleName, err := p.ExpectIdent()
			if err != nil {
				return zero, err
			}
			prot.Roles = append(prot.Roles, ast.Role{Name: roleName})
			if !p.EatSymbol(lexer.SymComma) {
				if err := p.ExpectSymbol(lexer.SymCloseParen); err != nil {
					return zero, err
				}
				break
			}
		}
	}
	seq, err := p.parseSequence()
	if err != nil {
		return zero, err
	}
	prot.Seq = seq
	return ast.Span[*ast.Protocol]{Value: prot, Range: p.span(start)}, nil
}

func (p *Parser) parseSequence() (*ast.Sequence, error) {
	if err := p.ExpectSymbol(lexer.SymOpenBrace); err != nil {
		return nil, err
	}
	seq := &ast.Sequence{}
	for !p.EatSymbol(lexer.SymCloseBrace) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		seq.Stmts = append(seq.Stmts, stmt)
	}
	return seq, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	var zero ast.Stmt
	if msg, ok, err := ParseMaybe(p, (*Parser).parseMessage); err != nil {
		return zero, err
	} else if ok {
		return ast.Stmt{Kind: ast.StmtMessage, Message: msg}, nil
	}

	switch {
	case p.EatKeyword(lexer.KwChoice):
		branches, err := p.parseBranches(lexer.KwOr)
		if err != nil {
			return zero, err
		}
		return ast.Stmt{Kind: ast.StmtChoice, Branches: branches}, nil
	case p.EatKeyword(lexer.KwPar):
		branches, err := p.parseBranches(lexer.KwAnd)
		if err != nil {
			return zero, err
		}
		return ast.Stmt{Kind: ast.StmtPar, Branches: branches}, nil
	case p.EatKeyword(lexer.KwFin):
		body, err := p.parseSequence()
		if err != nil {
			return zero, err
		}
		return ast.Stmt{Kind: ast.StmtFin, Body: body}, nil
	case p.EatKeyword(lexer.KwInf):
		body, err := p.parseSequence()
		if err != nil {
			return zero, err
		}
		return ast.Stmt{Kind: ast.StmtInf, Body: body}, nil
	default:
		return zero, p.err()
	}
}

// parseBranches parses the first Sequence plus zero or more (sep Sequence)
// repetitions, used by both 'choice ... or ...' and 'par ... and ...'.
func (p *Parser) parseBranches(sep lexer.Keyword) ([]*ast.Sequence, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	branches := []*ast.Sequence{first}
	for p.EatKeyword(sep) {
		seq, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		branches = append(branches, seq)
	}
	return branches, nil
}

func (p *Parser) parseMessage() (ast.Span[ast.Message], error) {
	var zero ast.Span[ast.Message]
	start := p.here()
	label, ok := p.EatIdent()
	if !ok {
		return zero, p.err()
	}
	var payload ast.Payload
	if p.EatSymbol(lexer.SymOpenParen) {
		items, err := p.parsePayloadItems()
		if err != nil {
			return zero, err
		}
		payload.Items = items
	}
	if err := p.ExpectKeyword(lexer.KwFrom); err != nil {
		return zero, err
	}
	fromName, err := p.ExpectIdent()
	if err != nil {
		return zero, err
	}
	if err := p.ExpectKeyword(lexer.KwTo); err != nil {
		return zero, err
	}
	toName, err := p.ExpectIdent()
	if err != nil {
		return zero, err
	}
	if err := p.ExpectSymbol(lexer.SymSemicolon); err != nil {
		return zero, err
	}
	msg := ast.Message{
		Label:   label,
		Payload: payload,
		From:    ast.Role{Name: fromName},
		To:      ast.Role{Name: toName},
	}
	return ast.Span[ast.Message]{Value: msg, Range: p.span(start)}, nil
}

func (p *Parser) parsePayloadItems() ([]ast.PayloadItem, error) {
	var items []ast.PayloadItem
	for !p.EatSymbol(lexer.SymCloseParen) {
		item, err := p.parsePayloadItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.EatSymbol(lexer.SymComma) {
			if err := p.ExpectSymbol(lexer.SymCloseParen); err != nil {
				return nil, err
			}
			break
		}
	}
	return items, nil
}

func (p *Parser) parsePayloadItem() (ast.PayloadItem, error) {
	var name *string
	if ident, ok, err := ParseMaybe(p, func(p *Parser) (string, error) {
		n, ok := p.EatIdent()
		if !ok {
			return "", p.err()
		}
		if err := p.ExpectSymbol(lexer.SymColon); err != nil {
			return "", err
		}
		return n, nil
	}); err != nil {
		return ast.PayloadItem{}, err
	} else if ok {
		name = &ident
	}
	ty, err := p.parseType()
	if err != nil {
		return ast.PayloadItem{}, err
	}
	return ast.PayloadItem{Name: name, Type: ty}, nil
}

type intKeyword struct {
	kw lexer.Keyword
	it ast.IntType
}

var intKeywords = []intKeyword{
	{lexer.KwU8, ast.IntType{Signed: false, Size: ast.Size8}},
	{lexer.KwU16, ast.IntType{Signed: false, Size: ast.Size16}},
	{lexer.KwU32, ast.IntType{Signed: false, Size: ast.Size32}},
	{lexer.KwU64, ast.IntType{Signed: false, Size: ast.Size64}},
	{lexer.KwI8, ast.IntType{Signed: true, Size: ast.Size8}},
	{lexer.KwI16, ast.IntType{Signed: true, Size: ast.Size16}},
	{lexer.KwI32, ast.IntType{Signed: true, Size: ast.Size32}},
	{lexer.KwI64, ast.IntType{Signed: true, Size: ast.Size64}},
}

func (p *Parser) parseType() (ast.Type, error) {
	var ty ast.Type
	switch {
	case p.EatKeyword(lexer.KwBool):
		ty = ast.Type{Kind: ast.KindBool}
	case p.EatKeyword(lexer.KwStruct):
		name, err := p.ExpectIdent()
		if err != nil {
			return ast.Type{}, err
		}
		ty = ast.Type{Kind: ast.KindStruct, Struct: name}
	default:
		matched := false
		for _, ik := range intKeywords {
			if p.EatKeyword(ik.kw) {
				ty = ast.Type{Kind: ast.KindInt, Int: ik.it}
				matched = true
				break
			}
		}
		if !matched {
			for _, kw := range []lexer.Keyword{lexer.KwBool, lexer.KwU8, lexer.KwU16, lexer.KwU32, lexer.KwU64, lexer.KwI8, lexer.KwI16, lexer.KwI32, lexer.KwI64, lexer.KwStruct} {
				p.want("keyword " + kw.String())
			}
			return ast.Type{}, p.err()
		}
	}
	for p.EatSymbol(lexer.SymOpenBracket) {
		var length *uint64
		if text, ok := p.EatInteger(); ok {
			n, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return ast.Type{}, p.err()
			}
			length = &n
		}
		if err := p.ExpectSymbol(lexer.SymCloseBracket); err != nil {
			return ast.Type{}, err
		}
		elem := ty
		ty = ast.Type{Kind: ast.KindArray, Elem: &elem, Length: length}
	}
	return ty, nil
}
