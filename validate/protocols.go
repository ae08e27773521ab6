package validate

import (
	"fmt"

	"github.com/obbidlgo/obbidl/ast"
	"github.com/obbidlgo/obbidl/fsm"
	"github.com/obbidlgo/obbidl/ir"
	"github.com/obbidlgo/obbidl/lexer"
	"github.com/obbidlgo/obbidl/reporter"
)

// maxTransitionsPerState is the spec's fatal internal-error threshold: a
// decision point's transition count must fit in a single byte tag.
const maxTransitionsPerState = 256

func classifyDirection(m fsm.Message, roleA, roleB string) (ir.Direction, bool) {
	switch {
	case m.From == roleA && m.To == roleB:
		return ir.AToB, true
	case m.From == roleB && m.To == roleA:
		return ir.BToA, true
	default:
		return 0, false
	}
}

func resolvePayload(payload ast.Payload, sr *structResolver, span lexer.Span) []ir.PayloadItem {
	items := make([]ir.PayloadItem, len(payload.Items))
	for i, it := range payload.Items {
		name := fmt.Sprintf("param%d", i)
		if it.Name != nil {
			name = *it.Name
		}
		ty, ok := sr.resolveType(it.Type, span)
		if !ok {
			continue
		}
		items[i] = ir.PayloadItem{Name: name, Type: ty}
	}
	return items
}

// validateProtocol runs the five per-protocol checks of spec §4.4 "Protocols"
// over a single compiled state machine, reporting every error it finds
// through handler rather than stopping at the first.
func validateProtocol(decl ast.Span[*ast.Protocol], p fsm.Protocol, sr *structResolver, handler *reporter.Handler) ir.Protocol {
	if len(p.Roles) != 0 && len(p.Roles) != 2 {
		handler.Report(&ProtocolError{Kind: IncorrectNumberOfRoles, Protocol: p.Name, span: decl.Range})
	}

	states := make([]ir.State, p.SM.StateCount())
	for s := 0; s < p.SM.StateCount(); s++ {
		name := fmt.Sprintf("S%d", s)
		trs := p.SM.From(fsm.State(s))
		if len(trs) == 0 {
			states[s] = ir.State{Name: name}
			continue
		}
		if len(trs) > maxTransitionsPerState {
			panic(fmt.Sprintf("validate: protocol %q: state %d has more than %d outgoing transitions", p.Name, s, maxTransitionsPerState))
		}

		resolved := make([]ir.Transition, len(trs))
		seenLabel := make(map[string]bool, len(trs))
		var repeated []fsm.Message
		var firstDir ir.Direction
		haveFirstDir := false
		mixed := false

		for idx, t := range trs {
			dir, ok := classifyDirection(t.Msg, p.RoleA, p.RoleB)
			if !ok {
				handler.Report(&ProtocolError{Kind: InvalidDirection, Protocol: p.Name, Messages: []fsm.Message{t.Msg}, span: t.Msg.Span})
			} else if !haveFirstDir {
				firstDir = dir
				haveFirstDir = true
			} else if dir != firstDir {
				mixed = true
			}

			if seenLabel[t.Msg.Label] {
				repeated = append(repeated, t.Msg)
			} else {
				seenLabel[t.Msg.Label] = true
			}

			resolved[idx] = ir.Transition{
				ID:        uint8(idx),
				Label:     t.Msg.Label,
				Direction: dir,
				Payload:   resolvePayload(t.Msg.Payload, sr, t.Msg.Span),
				To:        int(t.End),
				ToName:    fmt.Sprintf("S%d", t.End),
			}
		}

		if mixed {
			msgs := make([]fsm.Message, len(trs))
			for i, t := range trs {
				msgs[i] = t.Msg
			}
			handler.Report(&ProtocolError{Kind: MixedDirections, Protocol: p.Name, Messages: msgs, span: trs[0].Msg.Span})
		}
		if len(repeated) > 0 {
			handler.Report(&ProtocolError{Kind: RepeatedLabel, Protocol: p.Name, Messages: repeated, span: repeated[0].Span})
		}

		states[s] = ir.State{Name: name, Transitions: resolved}
	}

	return ir.Protocol{Name: p.Name, RoleA: p.RoleA, RoleB: p.RoleB, States: states}
}
