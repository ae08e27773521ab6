// Package report renders parse and semantic errors the way spec §4.6
// describes: a left gutter "{line} | " followed by the offending source
// line, then one or more "info:" lines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/obbidlgo/obbidl/lexer"
)

// Renderer prints diagnostics against a source file's text.
type Renderer struct {
	Source []byte
}

// NewRenderer returns a Renderer over the given source text.
func NewRenderer(source []byte) Renderer {
	return Renderer{Source: source}
}

func (r Renderer) line(n int) string {
	lines := strings.Split(string(r.Source), "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Span prints the source line containing span.Start under a gutter, plus a
// caret underline sized with uniseg so multi-byte identifiers still line up.
func (r Renderer) Span(w io.Writer, span lexer.Span) {
	gutter := fmt.Sprintf("%d | ", span.Start.Line)
	fmt.Fprintf(w, "%s%s\n", gutter, r.line(span.Start.Line))

	width := displayWidth(r.line(span.Start.Line), span.Start.Column-1)
	fmt.Fprintf(w, "%s%s^\n", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", width))
}

// Diagnostic renders one error at its span, followed by an "info:" line
// carrying the message.
func (r Renderer) Diagnostic(w io.Writer, span lexer.Span, info string) {
	r.Span(w, span)
	fmt.Fprintf(w, "info: %s\n", info)
}

// displayWidth returns the terminal display width of the first n runes of
// line, accounting for multi-cell graphemes via uniseg.
func displayWidth(line string, n int) int {
	if n <= 0 {
		return 0
	}
	runes := []rune(line)
	if n > len(runes) {
		n = len(runes)
	}
	return uniseg.StringWidth(string(runes[:n]))
}
