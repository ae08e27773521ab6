// Package fsm expands a protocol's structured sequence of statements into a
// deterministic, canonicalized labelled transition system (spec §4.3).
package fsm

import (
	"sort"
	"strings"

	"github.com/obbidlgo/obbidl/ast"
	"github.com/obbidlgo/obbidl/lexer"
)

// Message is the FSM-level view of a protocol message: label, payload, and
// the two role names it moves between. Two Messages are equal for the
// purpose of FSM state identity iff their Label, From, and To all match —
// Payload is not part of the key (spec §3 "Message").
type Message struct {
	Label   string
	From    string
	To      string
	Payload ast.Payload
	Span    lexer.Span
}

func (m Message) key() string {
	return "M:" + m.Label + "\x00" + m.From + "\x00" + m.To
}

// StmtKind discriminates the Stmt union used by this package — structurally
// identical to ast.StmtKind, but distinct because Stmt here drops source
// spans not needed past compilation and carries a lowered Message.
type StmtKind int

const (
	StmtMessage StmtKind = iota
	StmtChoice
	StmtPar
	StmtFin
	StmtInf
)

// Stmt is one statement of a Sequence, post-lowering from ast.Stmt.
type Stmt struct {
	Kind     StmtKind
	Msg      Message     // valid when Kind == StmtMessage
	Branches []*Sequence // valid when Kind == StmtChoice or StmtPar; unordered (set semantics)
	Body     *Sequence   // valid when Kind == StmtFin or StmtInf
}

// Sequence is an ordered list of statements: the canonical key used for FSM
// state identity (spec §4.3 "Canonicalization / equality", §9).
type Sequence struct {
	Stmts []Stmt
}

// Lower converts a parsed ast.Sequence into the fsm package's own value
// types, a pure structural copy with no change in meaning.
func Lower(seq *ast.Sequence) *Sequence {
	out := &Sequence{Stmts: make([]Stmt, 0, len(seq.Stmts))}
	for _, s := range seq.Stmts {
		out.Stmts = append(out.Stmts, lowerStmt(s))
	}
	return out
}

func lowerStmt(s ast.Stmt) Stmt {
	switch s.Kind {
	case ast.StmtMessage:
		m := s.Message.Value
		return Stmt{Kind: StmtMessage, Msg: Message{
			Label:   m.Label,
			From:    m.From.Name,
			To:      m.To.Name,
			Payload: m.Payload,
			Span:    s.Message.Range,
		}}
	case ast.StmtChoice:
		return Stmt{Kind: StmtChoice, Branches: lowerBranches(s.Branches)}
	case ast.StmtPar:
		return Stmt{Kind: StmtPar, Branches: lowerBranches(s.Branches)}
	case ast.StmtFin:
		return Stmt{Kind: StmtFin, Body: Lower(s.Body)}
	case ast.StmtInf:
		return Stmt{Kind: StmtInf, Body: Lower(s.Body)}
	default:
		panic("fsm: unknown ast.StmtKind")
	}
}

func lowerBranches(branches []*ast.Sequence) []*Sequence {
	out := make([]*Sequence, len(branches))
	for i, b := range branches {
		out[i] = Lower(b)
	}
	return out
}

func concat(a, b *Sequence) *Sequence {
	out := &Sequence{Stmts: make([]Stmt, 0, len(a.Stmts)+len(b.Stmts))}
	out.Stmts = append(out.Stmts, a.Stmts...)
	out.Stmts = append(out.Stmts, b.Stmts...)
	return out
}

func single(stmt Stmt) *Sequence {
	return &Sequence{Stmts: []Stmt{stmt}}
}

// canonicalKey produces a string that is equal for two Sequences iff they
// are equal under spec §4.3's equality rule: elementwise-equal statement
// lists, Message equality ignoring payload, and Choice/Par branch
// collections compared as unordered sets. Branch keys are sorted before
// joining, which realizes the same commutative, order-independent identity
// the spec describes via "XOR of per-branch hashes" — sorting the branch
// digests is simply a collision-free way to do it in Go.
func canonicalKey(seq *Sequence) string {
	var b strings.Builder
	for i, s := range seq.Stmts {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(stmtKey(s))
	}
	return b.String()
}

func stmtKey(s Stmt) string {
	switch s.Kind {
	case StmtMessage:
		return s.Msg.key()
	case StmtChoice:
		return "C(" + branchSetKey(s.Branches) + ")"
	case StmtPar:
		return "P(" + branchSetKey(s.Branches) + ")"
	case StmtFin:
		return "F(" + canonicalKey(s.Body) + ")"
	case StmtInf:
		return "I(" + canonicalKey(s.Body) + ")"
	default:
		panic("fsm: unknown StmtKind")
	}
}

func branchSetKey(branches []*Sequence) string {
	keys := make([]string, len(branches))
	for i, b := range branches {
		keys[i] = canonicalKey(b)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// MayTerminate reports whether seq may terminate: every statement in it
// must be able to (spec §4.3, §8 property 5). The empty sequence may
// terminate vacuously.
func (seq *Sequence) MayTerminate() bool {
	for _, s := range seq.Stmts {
		if !stmtMayTerminate(s) {
			return false
		}
	}
	return true
}

func stmtMayTerminate(s Stmt) bool {
	switch s.Kind {
	case StmtMessage, StmtInf:
		return false
	case StmtFin:
		return true
	case StmtChoice:
		for _, b := range s.Branches {
			if b.MayTerminate() {
				return true
			}
		}
		return false
	case StmtPar:
		for _, b := range s.Branches {
			if !b.MayTerminate() {
				return false
			}
		}
		return true
	default:
		panic("fsm: unknown StmtKind")
	}
}
