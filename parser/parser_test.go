package parser_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obbidlgo/obbidl/ast"
	"github.com/obbidlgo/obbidl/parser"
)

func TestParseSingleMessage(t *testing.T) {
	t.Parallel()
	f, err := parser.Parse([]byte(`protocol P { X from C to S; }`))
	require.NoError(t, err)
	require.Len(t, f.Protocols, 1)

	p := f.Protocols[0].Value
	assert.Equal(t, "P", p.Name)
	assert.Nil(t, p.Roles)
	require.Len(t, p.Seq.Stmts, 1)

	stmt := p.Seq.Stmts[0]
	require.Equal(t, ast.StmtMessage, stmt.Kind)
	msg := stmt.Message.Value
	assert.Equal(t, "X", msg.Label)
	assert.Equal(t, "C", msg.From.Name)
	assert.Equal(t, "S", msg.To.Name)
	assert.Empty(t, msg.Payload.Items)
}

func TestParseDeclaredRoles(t *testing.T) {
	t.Parallel()
	f, err := parser.Parse([]byte(`protocol P(role Client, role Server) { X from Client to Server; }`))
	require.NoError(t, err)
	p := f.Protocols[0].Value
	require.Len(t, p.Roles, 2)
	assert.Equal(t, "Client", p.Roles[0].Name)
	assert.Equal(t, "Server", p.Roles[1].Name)
}

func TestParsePayloadWithNamedAndArrayTypes(t *testing.T) {
	t.Parallel()
	f, err := parser.Parse([]byte(`protocol P { X(n: u16, data: u8[], fixed: bool[4]) from C to S; }`))
	require.NoError(t, err)
	items := f.Protocols[0].Value.Seq.Stmts[0].Message.Value.Payload.Items
	require.Len(t, items, 3)

	require.NotNil(t, items[0].Name)
	assert.Equal(t, "n", *items[0].Name)
	assert.Equal(t, ast.KindInt, items[0].Type.Kind)
	assert.Equal(t, ast.Size16, items[0].Type.Int.Size)

	assert.Equal(t, ast.KindArray, items[1].Type.Kind)
	assert.Nil(t, items[1].Type.Length)
	assert.Equal(t, ast.KindInt, items[1].Type.Elem.Kind)

	assert.Equal(t, ast.KindArray, items[2].Type.Kind)
	require.NotNil(t, items[2].Type.Length)
	assert.Equal(t, uint64(4), *items[2].Type.Length)
	assert.Equal(t, ast.KindBool, items[2].Type.Elem.Kind)
}

func TestParseUnnamedPayloadItem(t *testing.T) {
	t.Parallel()
	f, err := parser.Parse([]byte(`protocol P { X(u8) from C to S; }`))
	require.NoError(t, err)
	items := f.Protocols[0].Value.Seq.Stmts[0].Message.Value.Payload.Items
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Name)
}

func TestParseStructDefinition(t *testing.T) {
	t.Parallel()
	f, err := parser.Parse([]byte(`struct Point { x: i32, y: i32 }`))
	require.NoError(t, err)
	require.Len(t, f.Structs, 1)
	st := f.Structs[0].Value
	assert.Equal(t, "Point", st.Name)
	require.Len(t, st.Fields, 2)
	assert.Equal(t, "x", st.Fields[0].Name)
	assert.Equal(t, ast.KindInt, st.Fields[0].Type.Kind)
}

func TestParseChoiceParFinInf(t *testing.T) {
	t.Parallel()
	src := `protocol P {
		choice { X from C to S; } or { Y from C to S; }
		par { A from C to S; } and { B from C to S; }
		fin { Z from C to S; }
		inf { W from C to S; }
	}`
	f, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	stmts := f.Protocols[0].Value.Seq.Stmts
	require.Len(t, stmts, 4)
	assert.Equal(t, ast.StmtChoice, stmts[0].Kind)
	assert.Len(t, stmts[0].Branches, 2)
	assert.Equal(t, ast.StmtPar, stmts[1].Kind)
	assert.Len(t, stmts[1].Branches, 2)
	assert.Equal(t, ast.StmtFin, stmts[2].Kind)
	assert.Equal(t, ast.StmtInf, stmts[3].Kind)
}

// Parse errors never recover: the first error is returned immediately.
func TestParseErrorStopsAtFirstError(t *testing.T) {
	t.Parallel()
	_, err := parser.Parse([]byte(`protocol P { X from C to ; }`))
	require.Error(t, err)

	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	assert.NotEmpty(t, perr.Expected)
}

func TestParseTrailingCommaInPayload(t *testing.T) {
	t.Parallel()
	_, err := parser.Parse([]byte(`protocol P { X(n: u8,) from C to S; }`))
	require.NoError(t, err)
}

// Property 2: pretty-printing a parsed Message and re-parsing it yields a
// message equal to the original (label, from, to, payload).
func TestParsePrintRoundTrip(t *testing.T) {
	t.Parallel()
	sources := []string{
		`X from C to S;`,
		`X(n: u16) from C to S;`,
		`X(u8) from C to S;`,
		`X(data: u8[], fixed: bool[4], p: struct Point) from C to S;`,
	}
	for _, src := range sources {
		src := src
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			f, err := parser.Parse([]byte(`protocol P { ` + src + ` }`))
			require.NoError(t, err)
			orig := f.Protocols[0].Value.Seq.Stmts[0].Message.Value

			printed := orig.String()
			f2, err := parser.Parse([]byte(`protocol P { ` + printed + ` }`))
			require.NoError(t, err, "re-parsing printed message %q", printed)
			reparsed := f2.Protocols[0].Value.Seq.Stmts[0].Message.Value

			assert.True(t, reflect.DeepEqual(orig, reparsed),
				fmt.Sprintf("round-trip mismatch: orig=%+v reparsed=%+v printed=%q", orig, reparsed, printed))
		})
	}
}
