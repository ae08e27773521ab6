package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obbidlgo/obbidl/lexer"
	"github.com/obbidlgo/obbidl/report"
)

func TestDiagnosticRendersGutterAndInfoLine(t *testing.T) {
	t.Parallel()
	src := "protocol P { X from C to S; }\n"
	r := report.NewRenderer([]byte(src))

	span := lexer.Span{
		Start: lexer.Position{Line: 1, Column: 14, Offset: 13},
		End:   lexer.Position{Line: 1, Column: 15, Offset: 14},
	}

	var buf strings.Builder
	r.Diagnostic(&buf, span, "message label expected here")

	out := buf.String()
	assert.Contains(t, out, "1 | protocol P { X from C to S; }")
	assert.Contains(t, out, "info: message label expected here")
}
