// Package generate implements the code-generation driver of spec §4.5: it
// walks a validated ir.File and, for each protocol, emits two role views —
// one per role — as source text written to a caller-supplied sink. Payload
// encode/decode emission is delegated to a pluggable Format; the driver
// itself never decides how bytes are laid out.
package generate

import (
	"fmt"
	"io"

	"github.com/obbidlgo/obbidl/internal/arena"
	"github.com/obbidlgo/obbidl/ir"
)

// Format is the abstract payload-encoding strategy the driver delegates to
// (spec §4.5). Implementations write source text, not runtime bytes — the
// generator itself never executes.
type Format interface {
	// SendMessage emits code that writes msg's payload. insertTag is true
	// iff the sending state has more than one outgoing transition, in
	// which case the emitted code must also identify the transition taken
	// (Binary writes a one-byte tag first; JSON adds a "label" field).
	SendMessage(w io.Writer, msg ir.Transition, insertTag bool)

	// RecvMessages emits code that reads a tag (when len(msgs) > 1) and
	// dispatches to a receiver callback per message.
	RecvMessages(w io.Writer, msgs []ir.Transition)
}

// Driver walks validated IR and emits generated source text through a
// Format strategy.
type Driver struct {
	Format Format
}

// NewDriver returns a Driver that delegates payload encoding to f.
func NewDriver(f Format) *Driver {
	return &Driver{Format: f}
}

// Generate emits both role views of every protocol in file to w (spec §6
// generate<F: Format>(ValidatedFile, sink) -> ()).
func (d *Driver) Generate(file *ir.File, w io.Writer) {
	for _, p := range file.Protocols {
		d.generateProtocol(p, file.Structs, w)
	}
}

// generateProtocol emits one role view for each of a protocol's two roles.
// A state's direction tells us which role is the sender at that state;
// every other state exposes a receive surface to that role's view.
func (d *Driver) generateProtocol(p ir.Protocol, structs *arena.Arena[ir.Struct], w io.Writer) {
	d.generateRoleView(p, p.RoleA, ir.AToB, structs, w)
	d.generateRoleView(p, p.RoleB, ir.BToA, structs, w)
}

func (d *Driver) generateRoleView(p ir.Protocol, role string, senderDirection ir.Direction, structs *arena.Arena[ir.Struct], w io.Writer) {
	fmt.Fprintf(w, "// role view: protocol %s, role %s\n", p.Name, role)
	for i, s := range p.States {
		switch {
		case len(s.Transitions) == 0:
			fmt.Fprintf(w, "// state %d: terminal, finish only\n", i)
		case s.Transitions[0].Direction == senderDirection:
			fmt.Fprintf(w, "// state %d: send surface\n", i)
			for _, t := range s.Transitions {
				d.Format.SendMessage(w, t, len(s.Transitions) > 1)
			}
		default:
			fmt.Fprintf(w, "// state %d: receive surface\n", i)
			writeReceiverVariants(w, s.Name, ReceiverVariants(s.Transitions), structs)
			d.Format.RecvMessages(w, s.Transitions)
		}
	}
}

// ReceiverVariant is one arm of the "default receiver" sum type a receive
// surface exposes: one variant per outgoing transition, letting callers
// pattern-match on which branch was taken (spec §9 "Receivers").
type ReceiverVariant struct {
	Label   string
	ID      uint8
	Payload []ir.PayloadItem
	ToName  string
}

// ReceiverVariants builds the default-receiver sum type's arms from a
// state's outgoing transitions, in tag-id order.
func ReceiverVariants(msgs []ir.Transition) []ReceiverVariant {
	variants := make([]ReceiverVariant, len(msgs))
	for i, m := range msgs {
		variants[i] = ReceiverVariant{Label: m.Label, ID: m.ID, Payload: m.Payload, ToName: m.ToName}
	}
	return variants
}

// writeReceiverVariants emits the default-receiver sum type for a receive
// surface: a sealed interface named "{state}Response" with one implementing
// struct per outgoing transition, each carrying the destination state handle
// and the message's payload fields (spec §4.5, §9 "Receivers").
func writeReceiverVariants(w io.Writer, stateName string, variants []ReceiverVariant, structs *arena.Arena[ir.Struct]) {
	respType := stateName + "Response"
	fmt.Fprintf(w, "type %s interface{ is%s() }\n", respType, respType)
	for _, v := range variants {
		armType := fmt.Sprintf("%s%sResponse", stateName, v.Label)
		fmt.Fprintf(w, "type %s struct {\n", armType)
		fmt.Fprintf(w, "State %sState\n", v.ToName)
		for _, item := range v.Payload {
			fmt.Fprintf(w, "%s %s\n", item.Name, goTypeName(item.Type, structs))
		}
		fmt.Fprintln(w, "}")
		fmt.Fprintf(w, "func (%s) is%s() {}\n", armType, respType)
	}
}

// goTypeName names the Go type a response-struct field should declare for
// ty, independent of any Format (the default receiver is emitted regardless
// of which wire Format is in use).
func goTypeName(ty ir.Type, structs *arena.Arena[ir.Struct]) string {
	switch ty.Kind {
	case ir.KindBool:
		return "bool"
	case ir.KindInt:
		prefix := "uint"
		if ty.Int.Signed {
			prefix = "int"
		}
		return fmt.Sprintf("%s%d", prefix, ty.Int.Size)
	case ir.KindArray:
		elem := goTypeName(*ty.Elem, structs)
		if ty.Length != nil {
			return fmt.Sprintf("[%d]%s", *ty.Length, elem)
		}
		return "[]" + elem
	case ir.KindStruct:
		return ty.Struct.In(structs).Name
	default:
		return "any"
	}
}
