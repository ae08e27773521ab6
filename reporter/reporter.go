// Package reporter contains the types used for accumulating semantic errors
// from the validator (spec §4.4, §7): unlike the parser, which returns the
// first error and stops, validation collects every error it can find.
package reporter

import (
	"github.com/obbidlgo/obbidl/lexer"
)

// ErrorWithSpan is an error about source text that carries the span of the
// construct that caused it.
type ErrorWithSpan interface {
	error
	Span() lexer.Span
}

// Handler accumulates ErrorWithSpan values reported to it during one
// validation pass. Unlike a fail-fast parser, a Handler never aborts: every
// call to Report is recorded, and the full list is available via Errors.
type Handler struct {
	errs []ErrorWithSpan
}

// NewHandler returns an empty Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Report records err. It never stops subsequent validation from running.
func (h *Handler) Report(err ErrorWithSpan) {
	h.errs = append(h.errs, err)
}

// Errors returns every error reported so far, in report order.
func (h *Handler) Errors() []ErrorWithSpan {
	return h.errs
}

// OK reports whether no errors have been recorded.
func (h *Handler) OK() bool {
	return len(h.errs) == 0
}
