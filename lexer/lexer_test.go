package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obbidlgo/obbidl/lexer"
)

func tokenize(src string) []lexer.Token {
	lx := lexer.New([]byte(src))
	var toks []lexer.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Type == lexer.End {
			return toks
		}
	}
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	t.Parallel()
	toks := tokenize("protocol P role C")
	require.Len(t, toks, 5) // protocol, P, role, C, End

	assert.Equal(t, lexer.KeywordTok, toks[0].Type)
	assert.Equal(t, lexer.KwProtocol, toks[0].Keyword)
	assert.Equal(t, lexer.Identifier, toks[1].Type)
	assert.Equal(t, "P", toks[1].Text)
	assert.Equal(t, lexer.KeywordTok, toks[2].Type)
	assert.Equal(t, lexer.KwRole, toks[2].Keyword)
	assert.Equal(t, lexer.End, toks[4].Type)
}

func TestLexIntegerAndSymbols(t *testing.T) {
	t.Parallel()
	toks := tokenize("u8[16]")
	require.Len(t, toks, 5) // u8, [, 16, ], End
	assert.Equal(t, lexer.KwU8, toks[0].Keyword)
	assert.Equal(t, lexer.SymOpenBracket, toks[1].Symbol)
	assert.Equal(t, lexer.Integer, toks[2].Type)
	assert.Equal(t, "16", toks[2].Text)
	assert.Equal(t, lexer.SymCloseBracket, toks[3].Symbol)
}

func TestLexLineComment(t *testing.T) {
	t.Parallel()
	toks := tokenize("X (*) this is ignored\nY")
	require.Len(t, toks, 3) // X, Y, End
	assert.Equal(t, "X", toks[0].Text)
	assert.Equal(t, "Y", toks[1].Text)
}

func TestLexNestedBlockComment(t *testing.T) {
	t.Parallel()
	toks := tokenize("X (* outer (* inner *) still outer *) Y")
	require.Len(t, toks, 3)
	assert.Equal(t, "X", toks[0].Text)
	assert.Equal(t, "Y", toks[1].Text)
}

func TestLexUnterminatedBlockCommentConsumesToEnd(t *testing.T) {
	t.Parallel()
	toks := tokenize("X (* never closes")
	require.Len(t, toks, 2) // X, End
	assert.Equal(t, lexer.End, toks[1].Type)
}

func TestLexInvalidCharacter(t *testing.T) {
	t.Parallel()
	toks := tokenize("X # Y")
	require.Len(t, toks, 4) // X, #, Y, End
	assert.Equal(t, lexer.Invalid, toks[1].Type)
	assert.Equal(t, "#", toks[1].Text)
}

func TestLexPositionTracking(t *testing.T) {
	t.Parallel()
	toks := tokenize("X\nY")
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Span.Start.Line)
	assert.Equal(t, 2, toks[1].Span.Start.Line)
	assert.Equal(t, 1, toks[1].Span.Start.Column)
}

// Testable property 1: re-tokenizing the concatenation of every
// non-whitespace token's text yields the same token-type sequence.
func TestLexIdempotenceOnTokenization(t *testing.T) {
	t.Parallel()
	src := "protocol P { X(n: u16) from C to S; }"
	first := tokenize(src)

	var rebuilt string
	for _, tok := range first {
		if tok.Type == lexer.End {
			continue
		}
		rebuilt += tok.Text + " "
	}
	second := tokenize(rebuilt)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Type, second[i].Type, "token %d", i)
	}
}
