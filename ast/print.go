package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders m back into the message-statement syntax parser.Parse
// accepts, e.g. "X(n: u16) from C to S;" — used to exercise the parse/print
// round-trip property (spec §8 property 2).
func (m Message) String() string {
	var b strings.Builder
	b.WriteString(m.Label)
	if len(m.Payload.Items) > 0 {
		b.WriteByte('(')
		for i, item := range m.Payload.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			if item.Name != nil {
				fmt.Fprintf(&b, "%s: ", *item.Name)
			}
			b.WriteString(item.Type.String())
		}
		b.WriteByte(')')
	}
	fmt.Fprintf(&b, " from %s to %s;", m.From.Name, m.To.Name)
	return b.String()
}

// String renders t back into the type syntax parser.Parse accepts.
func (t Type) String() string {
	switch t.Kind {
	case KindBool:
		return "bool"
	case KindInt:
		return t.Int.String()
	case KindArray:
		length := ""
		if t.Length != nil {
			length = strconv.FormatUint(*t.Length, 10)
		}
		return fmt.Sprintf("%s[%s]", t.Elem.String(), length)
	case KindStruct:
		return "struct " + t.Struct
	default:
		return "?"
	}
}

// String renders it as one of u8/u16/.../i64.
func (it IntType) String() string {
	prefix := "u"
	if it.Signed {
		prefix = "i"
	}
	return fmt.Sprintf("%s%d", prefix, it.Size)
}
