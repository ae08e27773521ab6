package format

import (
	"fmt"
	"io"

	"github.com/obbidlgo/obbidl/internal/arena"
	"github.com/obbidlgo/obbidl/ir"
)

// JSON implements generate.Format by emitting code that builds and reads a
// JSON object per message, labelled by the message's label when a state has
// more than one outgoing transition. It is not part of the core wire
// contract (spec §4.5 only mandates Binary); it exists for interop and
// debugging, grounded on the same obligations the core requires of any
// Format.
type JSON struct {
	Structs *arena.Arena[ir.Struct]
}

// NewJSON returns a JSON format bound to the struct pool of a validated
// file.
func NewJSON(structs *arena.Arena[ir.Struct]) JSON {
	return JSON{Structs: structs}
}

// SendMessage emits code that builds a JSON object for msg's payload,
// tagging it with the message's label when the state has more than one
// possible outgoing message.
func (j JSON) SendMessage(w io.Writer, msg ir.Transition, insertTag bool) {
	fmt.Fprintln(w, "object := map[string]any{}")
	if insertTag {
		fmt.Fprintf(w, "object[\"label\"] = %q\n", msg.Label)
	}
	for _, item := range msg.Payload {
		j.toJSONValue(w, item.Name, item.Type)
		fmt.Fprintf(w, "object[%q] = value\n", item.Name)
	}
	fmt.Fprintf(w, "return %sState{conn}, conn.SendJSON(object)\n", msg.ToName)
}

// RecvMessages emits code that decodes one JSON object and dispatches on
// its "label" field when more than one message is possible at this state.
func (j JSON) RecvMessages(w io.Writer, msgs []ir.Transition) {
	fmt.Fprintln(w, "value := conn.RecvJSON()")
	if len(msgs) == 1 {
		j.msgFromJSON(w, msgs[0])
		return
	}
	fmt.Fprintln(w, "label := value[\"label\"].(string)")
	for _, msg := range msgs {
		fmt.Fprintf(w, "if label == %q {\n", msg.Label)
		j.msgFromJSON(w, msg)
		fmt.Fprintln(w, "}")
	}
	fmt.Fprintln(w, "panic(\"invalid message!\")")
}

func (j JSON) msgFromJSON(w io.Writer, msg ir.Transition) {
	for _, item := range msg.Payload {
		j.fromJSONValue(w, item.Name, item.Type, "value")
	}
	fmt.Fprintf(w, "return receiver.Recv%s(", msg.Label)
	for _, item := range msg.Payload {
		fmt.Fprintf(w, "%s, ", item.Name)
	}
	fmt.Fprintln(w, ")")
}

func (j JSON) fromJSONValue(w io.Writer, name string, ty ir.Type, src string) {
	switch ty.Kind {
	case ir.KindBool:
		fmt.Fprintf(w, "%s := %s.(bool)\n", name, src)
	case ir.KindInt:
		fmt.Fprintf(w, "%s := %s(%s.(float64))\n", name, intTypeName(ty.Int), src)
	case ir.KindArray:
		fmt.Fprintf(w, "%s := make([]%s, 0)\n", name, j.elemTypeName(*ty.Elem))
		fmt.Fprintf(w, "for _, elem := range %s.([]any) {\n", src)
		j.fromJSONValue(w, "x", *ty.Elem, "elem")
		fmt.Fprintf(w, "%s = append(%s, x)\n", name, name)
		fmt.Fprintln(w, "}")
	case ir.KindStruct:
		st := ty.Struct.In(j.Structs)
		fmt.Fprintf(w, "fields := %s.(map[string]any)\n", src)
		for _, f := range st.Fields {
			j.fromJSONValue(w, f.Name, f.Type, fmt.Sprintf("fields[%q]", f.Name))
		}
		fmt.Fprintf(w, "%s := %s{", name, st.Name)
		for _, f := range st.Fields {
			fmt.Fprintf(w, "%s, ", f.Name)
		}
		fmt.Fprintln(w, "}")
	}
}

func (j JSON) toJSONValue(w io.Writer, name string, ty ir.Type) {
	switch ty.Kind {
	case ir.KindBool, ir.KindInt:
		fmt.Fprintf(w, "value := %s\n", name)
	case ir.KindArray:
		fmt.Fprintln(w, "value := []any{}")
		fmt.Fprintf(w, "for _, elem := range %s {\n", name)
		j.toJSONValue(w, "elem", *ty.Elem)
		fmt.Fprintln(w, "value = append(value.([]any), elem)")
		fmt.Fprintln(w, "}")
	case ir.KindStruct:
		st := ty.Struct.In(j.Structs)
		fmt.Fprintln(w, "fields := map[string]any{}")
		for _, f := range st.Fields {
			j.toJSONValue(w, name+"."+f.Name, f.Type)
			fmt.Fprintf(w, "fields[%q] = value\n", f.Name)
		}
		fmt.Fprintln(w, "value := fields")
	}
}

func (j JSON) elemTypeName(ty ir.Type) string {
	switch ty.Kind {
	case ir.KindBool:
		return "bool"
	case ir.KindInt:
		return intTypeName(ty.Int)
	case ir.KindStruct:
		return ty.Struct.In(j.Structs).Name
	default:
		return "any"
	}
}
