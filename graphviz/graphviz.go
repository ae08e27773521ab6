// Package graphviz renders a compiled fsm.File as Graphviz DOT source, for
// visualizing a protocol's state machine (spec §6 helper
// "graphviz(FileOfStateMachines, sink)").
package graphviz

import (
	"fmt"
	"io"

	"github.com/obbidlgo/obbidl/fsm"
)

// Write emits one "digraph" per protocol to w, with edges labelled by
// message label.
func Write(w io.Writer, file *fsm.File) {
	for _, p := range file.Protocols {
		writeProtocol(w, p)
	}
}

func writeProtocol(w io.Writer, p fsm.Protocol) {
	fmt.Fprintln(w, "digraph {")
	fmt.Fprintf(w, "  label=%q;\n", p.Name)
	for _, t := range p.SM.Transitions() {
		fmt.Fprintf(w, "  %d -> %d [label=%q];\n", t.Start, t.End, t.Msg.Label)
	}
	fmt.Fprintln(w, "}")
}
