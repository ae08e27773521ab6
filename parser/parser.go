// Package parser is a hand-written recursive-descent parser for the obbidl
// protocol DSL (grammar in spec §6). It turns a token stream from package
// lexer into an *ast.File.
package parser

import "github.com/obbidlgo/obbidl/lexer"

// Parser holds the token stream and cursor. Eat and Expect are the only
// ways to consume a token; ParseMaybe is the only backtracking primitive,
// and it backtracks by zero tokens only.
type Parser struct {
	toks     []lexer.Token
	pos      int
	expected []string
	lastEnd  lexer.Position
}

// New lexes src in full and returns a Parser positioned at its first token.
func New(src []byte) *Parser {
	lx := lexer.New(src)
	var toks []lexer.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Type == lexer.End {
			break
		}
	}
	return &Parser{toks: toks}
}

func (p *Parser) current() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) advance() lexer.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	p.expected = nil
	p.lastEnd = tok.Span.End
	return tok
}

// here returns the position at the start of the current (not yet consumed)
// token, for use as a span's start.
func (p *Parser) here() lexer.Position {
	return p.current().Span.Start
}

// span builds a Span from a previously captured start position to the end
// of the most recently consumed token.
func (p *Parser) span(start lexer.Position) lexer.Span {
	return lexer.Span{Start: start, End: p.lastEnd}
}

func (p *Parser) want(desc string) {
	p.expected = append(p.expected, desc)
}

// err builds an Error for the current token using the expectations recorded
// since the last successful consume.
func (p *Parser) err() *Error {
	return &Error{Token: p.current(), Expected: append([]string(nil), p.expected...)}
}

// EatIdent consumes and returns the current token's text if it is an
// Identifier, else records the expectation and returns ("", false).
func (p *Parser) EatIdent() (string, bool) {
	if p.current().Type == lexer.Identifier {
		return p.advance().Text, true
	}
	p.want("identifier")
	return "", false
}

// EatInteger consumes and returns the current token's text if it is an
// Integer literal, else records the expectation and returns ("", false).
func (p *Parser) EatInteger() (string, bool) {
	if p.current().Type == lexer.Integer {
		return p.advance().Text, true
	}
	p.want("integer")
	return "", false
}

// EatKeyword consumes the current token if it is the given Keyword, else
// records the expectation and returns false.
func (p *Parser) EatKeyword(kw lexer.Keyword) bool {
	if tok := p.current(); tok.Type == lexer.KeywordTok && tok.Keyword == kw {
		p.advance()
		return true
	}
	p.want("keyword " + kw.String())
	return false
}

// EatSymbol consumes the current token if it is the given Symbol, else
// records the expectation and returns false.
func (p *Parser) EatSymbol(sym lexer.Symbol) bool {
	if tok := p.current(); tok.Type == lexer.SymbolTok && tok.Symbol == sym {
		p.advance()
		return true
	}
	p.want("'" + sym.String() + "'")
	return false
}

// ExpectIdent is EatIdent, turning failure into an *Error.
func (p *Parser) ExpectIdent() (string, error) {
	if text, ok := p.EatIdent(); ok {
		return text, nil
	}
	return "", p.err()
}

// ExpectKeyword is EatKeyword, turning failure into an *Error.
func (p *Parser) ExpectKeyword(kw lexer.Keyword) error {
	if p.EatKeyword(kw) {
		return nil
	}
	return p.err()
}

// ExpectSymbol is EatSymbol, turning failure into an *Error.
func (p *Parser) ExpectSymbol(sym lexer.Symbol) error {
	if p.EatSymbol(sym) {
		return nil
	}
	return p.err()
}

// AtEnd reports whether the parser is positioned at the synthetic End token.
func (p *Parser) AtEnd() bool {
	return p.current().Type == lexer.End
}

// ParseMaybe attempts fn. If fn returns an error without having consumed any
// token, ParseMaybe reports that as (zero, false, nil) — an absent result,
// not a failure. If fn consumed at least one token before failing, the
// error is real and is returned as-is; this is the zero-token-backtrack
// guarantee described in spec §4.2.
func ParseMaybe[T any](p *Parser, fn func(p *Parser) (T, error)) (T, bool, error) {
	start := p.pos
	val, err := fn(p)
	if err != nil {
		var zero T
		if p.pos == start {
			return zero, false, nil
		}
		return zero, false, err
	}
	return val, true, nil
}
