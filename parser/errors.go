package parser

import (
	"fmt"
	"strings"

	"github.com/obbidlgo/obbidl/lexer"
)

// Error is a parse error: the offending token, its position, and the set of
// token descriptions that would have been accepted at that position (the
// union of Eat calls attempted since the last successful consume). The
// parser never recovers from an Error; ParseFile returns the first one.
type Error struct {
	Token    lexer.Token
	Expected []string
}

func (e *Error) Error() string {
	sort := strings.Join(dedupe(e.Expected), ", ")
	if sort == "" {
		return fmt.Sprintf("%s: unexpected %s", e.Token.Span.Start, e.Token)
	}
	return fmt.Sprintf("%s: unexpected %s, expected one of: %s", e.Token.Span.Start, e.Token, sort)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
