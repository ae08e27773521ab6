// Package ir holds the validated intermediate representation the generator
// driver consumes: resolved structs, resolved payload types, and per-state
// transitions already classified by direction and assigned stable tag ids
// (spec §4.4).
package ir

import "github.com/obbidlgo/obbidl/internal/arena"

// Direction classifies a transition relative to a protocol's two roles.
type Direction int

const (
	AToB Direction = iota
	BToA
)

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

// TypeKind discriminates the Type union.
type TypeKind int

const (
	KindBool TypeKind = iota
	KindInt
	KindArray
	KindStruct
)

// Type is a resolved payload or field type. Unlike ast.Type, a KindStruct
// Type holds a resolved arena.Pointer rather than a bare name — by the time
// validation produces a Type, every struct reference has been checked to
// exist and to be acyclic.
type Type struct {
	Kind   TypeKind
	Int    IntType
	Elem   *Type
	Length *uint64 // nil means variable-length
	Struct arena.Pointer[Struct]
}

// Field is one resolved (name, type) pair of a Struct.
type Field struct {
	Name string
	Type Type
}

// Struct is a resolved, immutable record type, shared by reference across
// every payload that names it (spec §9 "Shared struct ownership").
type Struct struct {
	Name   string
	Fields []Field
}

// PayloadItem is one resolved element of a message's payload. Name is never
// nil post-validation: unnamed items get the synthetic name "param{i}".
type PayloadItem struct {
	Name string
	Type Type
}

// Transition is one resolved outgoing edge of a State.
type Transition struct {
	ID        uint8
	Label     string
	Direction Direction
	Payload   []PayloadItem
	To        int    // index into Protocol.States
	ToName    string // the destination State's own name, e.g. "S3"
}

// State is one node of a validated protocol's state machine. A State with
// no transitions is terminal. Name is the state's own identity, "S{n}"
// (spec §3) — destination types in generated code must be named from this,
// never from an incoming transition's label, since two distinct states can
// be reached by same-labelled transitions from different decision points.
type State struct {
	Name        string
	Transitions []Transition
}

// Protocol is a fully validated two-party protocol.
type Protocol struct {
	Name   string
	RoleA  string
	RoleB  string
	States []State
}

// File is the validated result of an entire source file: every protocol,
// plus the shared pool of struct definitions every payload type borrows
// into.
type File struct {
	Protocols []Protocol
	Structs   *arena.Arena[Struct]
}
