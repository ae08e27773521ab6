// Package format supplies the two Format strategies spec §4.5 asks for: a
// Binary wire encoding (the one the core mandates to exist) and a JSON
// encoding for interop/debugging use.
package format

import (
	"fmt"
	"io"

	"github.com/obbidlgo/obbidl/internal/arena"
	"github.com/obbidlgo/obbidl/ir"
)

// Binary implements generate.Format against the big-endian wire contract of
// spec §6: bool is one byte, iN/uN are N/8 bytes big-endian, fixed arrays
// have no length prefix, variable arrays are a 4-byte big-endian length
// followed by elements, and structs are fields in declared order with no
// framing. The transition tag, when present, is a single byte. It needs the
// validated struct pool to expand KindStruct payload fields.
type Binary struct {
	Structs *arena.Arena[ir.Struct]
}

// NewBinary returns a Binary format bound to the struct pool of a validated
// file.
func NewBinary(structs *arena.Arena[ir.Struct]) Binary {
	return Binary{Structs: structs}
}

// SendMessage emits code that writes one byte state-transition tag
// (skipped for a singleton transition — the "omit when singleton" policy
// spec §9 asks implementations to choose and document) followed by the
// message's payload fields in order.
func (b Binary) SendMessage(w io.Writer, msg ir.Transition, insertTag bool) {
	if insertTag {
		fmt.Fprintf(w, "conn.SendU8(%d)\n", msg.ID)
	}
	for _, item := range msg.Payload {
		b.sendType(w, item.Name, item.Type)
	}
	fmt.Fprintf(w, "return %sState{conn}, nil\n", msg.ToName)
}

// RecvMessages emits code that reads the one-byte tag (skipped when there
// is only one possible message) and dispatches to the matching receive
// branch.
func (b Binary) RecvMessages(w io.Writer, msgs []ir.Transition) {
	if len(msgs) == 1 {
		b.recvMessage(w, msgs[0])
		return
	}
	fmt.Fprintln(w, "tag := conn.RecvU8()")
	for _, msg := range msgs {
		fmt.Fprintf(w, "if tag == %d {\n", msg.ID)
		b.recvMessage(w, msg)
		fmt.Fprintln(w, "}")
	}
	fmt.Fprintln(w, "panic(\"invalid transition tag\")")
}

func (b Binary) recvMessage(w io.Writer, msg ir.Transition) {
	for _, item := range msg.Payload {
		b.recvType(w, item.Name, item.Type)
	}
	fmt.Fprintf(w, "return receiver.Recv%s(", msg.Label)
	for _, item := range msg.Payload {
		fmt.Fprintf(w, "%s, ", item.Name)
	}
	fmt.Fprintln(w, ")")
}

func (b Binary) sendType(w io.Writer, name string, ty ir.Type) {
	switch ty.Kind {
	case ir.KindBool:
		fmt.Fprintf(w, "conn.SendBool(%s)\n", name)
	case ir.KindInt:
		fmt.Fprintf(w, "conn.Send%s(%s(%s))\n", intMethodSuffix(ty.Int), intTypeName(ty.Int), name)
	case ir.KindArray:
		if ty.Length == nil {
			fmt.Fprintf(w, "conn.SendU32(uint32(len(%s)))\n", name)
		}
		fmt.Fprintf(w, "for i := range %s {\n", name)
		b.sendType(w, fmt.Sprintf("%s[i]", name), *ty.Elem)
		fmt.Fprintln(w, "}")
	case ir.KindStruct:
		st := ty.Struct.In(b.Structs)
		for _, f := range st.Fields {
			b.sendType(w, name+"."+f.Name, f.Type)
		}
	}
}

func (b Binary) recvType(w io.Writer, name string, ty ir.Type) {
	switch ty.Kind {
	case ir.KindBool:
		fmt.Fprintf(w, "%s := conn.RecvBool()\n", name)
	case ir.KindInt:
		fmt.Fprintf(w, "%s := %s(conn.Recv%s())\n", name, intTypeName(ty.Int), intMethodSuffix(ty.Int))
	case ir.KindArray:
		if ty.Length != nil {
			fmt.Fprintf(w, "var %s [%d]%s\n", name, *ty.Length, b.elemTypeName(*ty.Elem))
		} else {
			fmt.Fprintf(w, "%s := make([]%s, conn.RecvU32())\n", name, b.elemTypeName(*ty.Elem))
		}
		fmt.Fprintf(w, "for i := range %s {\n", name)
		b.recvType(w, fmt.Sprintf("%s[i]", name), *ty.Elem)
		fmt.Fprintln(w, "}")
	case ir.KindStruct:
		st := ty.Struct.In(b.Structs)
		for _, f := range st.Fields {
			b.recvType(w, f.Name, f.Type)
		}
		fmt.Fprintf(w, "%s := %s{", name, st.Name)
		for _, f := range st.Fields {
			fmt.Fprintf(w, "%s, ", f.Name)
		}
		fmt.Fprintln(w, "}")
	}
}

func intTypeName(t ir.IntType) string {
	prefix := "uint"
	if t.Signed {
		prefix = "int"
	}
	return fmt.Sprintf("%s%d", prefix, t.Size)
}

// intMethodSuffix names the conn.Send*/conn.Recv* method for t, e.g. "U8"
// for an unsigned 8-bit int or "I16" for a signed 16-bit one.
func intMethodSuffix(t ir.IntType) string {
	prefix := "U"
	if t.Signed {
		prefix = "I"
	}
	return fmt.Sprintf("%s%d", prefix, t.Size)
}

func (b Binary) elemTypeName(ty ir.Type) string {
	switch ty.Kind {
	case ir.KindBool:
		return "bool"
	case ir.KindInt:
		return intTypeName(ty.Int)
	case ir.KindStruct:
		return ty.Struct.In(b.Structs).Name
	default:
		return "any"
	}
}
