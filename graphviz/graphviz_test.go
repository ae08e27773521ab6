package graphviz_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obbidlgo/obbidl/fsm"
	"github.com/obbidlgo/obbidl/graphviz"
	"github.com/obbidlgo/obbidl/parser"
)

func TestWriteSingleMessage(t *testing.T) {
	t.Parallel()
	f, err := parser.Parse([]byte(`protocol P { X from C to S; }`))
	require.NoError(t, err)
	compiled := fsm.CompileFile(f)

	var buf strings.Builder
	graphviz.Write(&buf, compiled)

	out := buf.String()
	assert.Contains(t, out, "digraph {")
	assert.Contains(t, out, `label="P";`)
	assert.Contains(t, out, `0 -> 1 [label="X"];`)
}
