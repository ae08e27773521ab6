// Package validate runs the two semantic passes of spec §4.4 over a
// compiled fsm.File: struct DAG resolution and per-protocol direction,
// label, and tag validation. Unlike package parser, validate never stops at
// the first error — it accumulates every one it finds via a
// reporter.Handler and returns the full list (spec §7, testable property 6).
package validate

import (
	"github.com/obbidlgo/obbidl/ast"
	"github.com/obbidlgo/obbidl/fsm"
	"github.com/obbidlgo/obbidl/ir"
	"github.com/obbidlgo/obbidl/reporter"
)

// Validate resolves structs and validates every protocol's compiled state
// machine, returning the validated IR on success or the full list of
// accumulated errors otherwise.
func Validate(f *ast.File, compiled *fsm.File) (*ir.File, []reporter.ErrorWithSpan) {
	handler := reporter.NewHandler()

	sr := newStructResolver(f.Structs, handler)
	sr.resolveStructs()

	protocols := make([]ir.Protocol, len(f.Protocols))
	for i, decl := range f.Protocols {
		protocols[i] = validateProtocol(decl, compiled.Protocols[i], sr, handler)
	}

	if !handler.OK() {
		return nil, handler.Errors()
	}
	return &ir.File{Protocols: protocols, Structs: sr.arena}, nil
}
