// Package ast defines the abstract syntax tree produced by package parser:
// a File of Protocol and Struct definitions, built from the value types in
// this package.
package ast

import "github.com/obbidlgo/obbidl/lexer"

// Span pairs a value with the source range it was parsed from.
type Span[T any] struct {
	Value T
	Range lexer.Span
}

// File is the top-level parse result: an unordered mix of protocol and
// struct definitions, in declaration order.
type File struct {
	Protocols []Span[*Protocol]
	Structs   []Span[*Struct]
}

// Role is a named endpoint, e.g. "C" or "S".
type Role struct {
	Name string
}

// Protocol is a named two-party communication pattern. Roles is nil when
// the source declared none; the FSM compiler then assigns the default pair
// ("C", "S").
type Protocol struct {
	Name  string
	Roles []Role
	Seq   *Sequence
}

// Struct is a named, ordered record type. Field order is wire order.
type Struct struct {
	Name   string
	Fields []Field
}

// Field is one (name, type) pair of a Struct, in declaration order.
type Field struct {
	Name string
	Type Type
}

// IntSize is the bit width of an integer type.
type IntSize int

const (
	Size8  IntSize = 8
	Size16 IntSize = 16
	Size32 IntSize = 32
	Size64 IntSize = 64
)

// IntType is one of the eight primitive integer types.
type IntType struct {
	Signed bool
	Size   IntSize
}

// Type is one of Bool, Int, Array, or StructRef.
type Type struct {
	Kind   TypeKind
	Int    IntType // valid when Kind == KindInt
	Elem   *Type   // valid when Kind == KindArray
	Length *uint64 // valid when Kind == KindArray; nil means variable-length
	Struct string  // valid when Kind == KindStruct
}

// TypeKind discriminates the Type union.
type TypeKind int

const (
	KindBool TypeKind = iota
	KindInt
	KindArray
	KindStruct
)

// PayloadItem is one element of a message's payload, in declaration order.
// Name is nil when the source left the item unnamed; the validator fills
// in "param{i}" for those.
type PayloadItem struct {
	Name *string
	Type Type
}

// Payload is the ordered list of fields carried by a Message.
type Payload struct {
	Items []PayloadItem
}

// Message is a single typed transmission from From to To, identified by
// Label at its decision state. Two Messages with the same (Label, From, To)
// are equal for FSM state-identity purposes regardless of Payload — see
// fsm.Message.
type Message struct {
	Label   string
	Payload Payload
	From    Role
	To      Role
}

// Sequence is an ordered list of statements — the body of a protocol or of
// one branch of a Choice/Par/Fin/Inf.
type Sequence struct {
	Stmts []Stmt
}

// StmtKind discriminates the Stmt union.
type StmtKind int

const (
	StmtMessage StmtKind = iota
	StmtChoice
	StmtPar
	StmtFin
	StmtInf
)

// Stmt is one statement of a Sequence.
type Stmt struct {
	Kind     StmtKind
	Message  Span[Message] // valid when Kind == StmtMessage
	Branches []*Sequence   // valid when Kind == StmtChoice or StmtPar
	Body     *Sequence     // valid when Kind == StmtFin or StmtInf
}
