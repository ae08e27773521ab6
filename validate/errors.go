package validate

import (
	"fmt"
	"strings"

	"github.com/obbidlgo/obbidl/fsm"
	"github.com/obbidlgo/obbidl/lexer"
)

// StructErrorKind discriminates StructError (spec §7 "SemanticStruct").
type StructErrorKind int

const (
	UndefinedStruct StructErrorKind = iota
	RecursiveStruct
)

// StructError reports a problem found while resolving struct definitions.
type StructError struct {
	Kind StructErrorKind
	Name string
	span lexer.Span
}

func (e *StructError) Error() string {
	switch e.Kind {
	case UndefinedStruct:
		return fmt.Sprintf("undefined struct %q", e.Name)
	case RecursiveStruct:
		return fmt.Sprintf("struct %q is part of a reference cycle", e.Name)
	default:
		return "unknown struct error"
	}
}

// Span satisfies reporter.ErrorWithSpan.
func (e *StructError) Span() lexer.Span { return e.span }

// ProtocolErrorKind discriminates ProtocolError (spec §7 "SemanticProtocol").
type ProtocolErrorKind int

const (
	IncorrectNumberOfRoles ProtocolErrorKind = iota
	InvalidDirection
	MixedDirections
	RepeatedLabel
)

// ProtocolError reports a problem found while validating one protocol's
// state machine.
type ProtocolError struct {
	Kind     ProtocolErrorKind
	Protocol string
	Messages []fsm.Message
	span     lexer.Span
}

func (e *ProtocolError) Error() string {
	switch e.Kind {
	case IncorrectNumberOfRoles:
		return fmt.Sprintf("protocol %q must declare exactly two roles", e.Protocol)
	case InvalidDirection:
		return fmt.Sprintf("protocol %q: message %q is not between its two declared roles", e.Protocol, e.Messages[0].Label)
	case MixedDirections:
		return fmt.Sprintf("protocol %q: state has transitions in both directions: %s", e.Protocol, labelList(e.Messages))
	case RepeatedLabel:
		return fmt.Sprintf("protocol %q: state has more than one transition labelled %q", e.Protocol, e.Messages[0].Label)
	default:
		return "unknown protocol error"
	}
}

// Span satisfies reporter.ErrorWithSpan.
func (e *ProtocolError) Span() lexer.Span { return e.span }

func labelList(msgs []fsm.Message) string {
	labels := make([]string, len(msgs))
	for i, m := range msgs {
		labels[i] = m.Label
	}
	return strings.Join(labels, ", ")
}
