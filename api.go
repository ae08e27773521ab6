package obbidl

import (
	"io"

	"github.com/obbidlgo/obbidl/ast"
	"github.com/obbidlgo/obbidl/fsm"
	"github.com/obbidlgo/obbidl/generate"
	"github.com/obbidlgo/obbidl/graphviz"
	"github.com/obbidlgo/obbidl/ir"
	"github.com/obbidlgo/obbidl/parser"
	"github.com/obbidlgo/obbidl/reporter"
	"github.com/obbidlgo/obbidl/validate"
)

// Parse lexes and parses source, returning the first error encountered
// (spec §6 "parse(source) -> File | ParseError").
func Parse(source []byte) (*ast.File, error) {
	return parser.Parse(source)
}

// Compile lowers every protocol in file to a canonicalized state machine
// (spec §6 "compile(File) -> FileOfStateMachines"). It is a pure
// transformation: it cannot fail for a syntactically valid File.
func Compile(file *ast.File) *fsm.File {
	return fsm.CompileFile(file)
}

// Validate runs the struct and protocol passes of spec §4.4 over a compiled
// File, returning the validated IR on success or the complete list of
// semantic errors otherwise (spec §6
// "validate(FileOfStateMachines, File.structs) -> ValidatedFile | list of SemanticError").
func Validate(file *ast.File, compiled *fsm.File) (*ir.File, []reporter.ErrorWithSpan) {
	return validate.Validate(file, compiled)
}

// Generate drives code generation over a validated File using the given
// Format, writing generated source text to sink (spec §6
// "generate<F: Format>(ValidatedFile, sink) -> ()").
func Generate(validated *ir.File, f generate.Format, sink io.Writer) {
	generate.NewDriver(f).Generate(validated, sink)
}

// GraphViz writes one Graphviz digraph per protocol in compiled to sink,
// for visualization (spec §6 helper).
func GraphViz(compiled *fsm.File, sink io.Writer) {
	graphviz.Write(sink, compiled)
}
