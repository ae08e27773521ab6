package fsm

// State is an opaque index into a StateMachine's transitions. State 0 is
// always a protocol's start state.
type State uint32

// Transition is one labelled edge of a StateMachine.
type Transition struct {
	Start State
	End   State
	Msg   Message
}

// StateMachine is an arena of states: every transition's Start/End is < the
// state count, transitions are stored and iterated in insertion order, and
// there are no back-pointers (spec §9 "State references").
type StateMachine struct {
	stateCount  uint32
	transitions []Transition
}

// NewStateMachine returns an empty state machine with no states.
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// NewState allocates and returns a fresh state.
func (sm *StateMachine) NewState() State {
	sm.stateCount++
	return State(sm.stateCount - 1)
}

// StateCount returns the number of states in the machine.
func (sm *StateMachine) StateCount() int {
	return int(sm.stateCount)
}

// Contains reports whether s was allocated by this machine.
func (sm *StateMachine) Contains(s State) bool {
	return uint32(s) < sm.stateCount
}

// AddTransition appends a transition. Both endpoints must already exist.
func (sm *StateMachine) AddTransition(start, end State, msg Message) {
	if !sm.Contains(start) || !sm.Contains(end) {
		panic("fsm: transition references a state outside the machine")
	}
	sm.transitions = append(sm.transitions, Transition{Start: start, End: end, Msg: msg})
}

// Transitions returns every transition, in insertion order.
func (sm *StateMachine) Transitions() []Transition {
	return sm.transitions
}

// From returns the transitions whose Start is s, in insertion order.
func (sm *StateMachine) From(s State) []Transition {
	var out []Transition
	for _, t := range sm.transitions {
		if t.Start == s {
			out = append(out, t)
		}
	}
	return out
}

// pair is one (message, residual sequence) result of transitions(seq).
type pair struct {
	msg      Message
	residual *Sequence
}

// transitions returns every immediate (message, residual) pair reachable
// from seq by structural recursion on its first statement (spec §4.3):
// emit the first statement's own transitions (wrapped with whatever of seq
// follows it), and, only if that first statement may terminate, also emit
// every transition of the remaining sequence.
func transitions(seq *Sequence) []pair {
	if len(seq.Stmts) == 0 {
		return nil
	}
	first := seq.Stmts[0]
	rest := &Sequence{Stmts: seq.Stmts[1:]}

	var out []pair
	for _, p := range transitionsOfStmt(first) {
		out = append(out, pair{msg: p.msg, residual: concat(p.residual, rest)})
	}
	if stmtMayTerminate(first) {
		out = append(out, transitions(rest)...)
	}
	return out
}

// transitionsOfStmt returns the transitions contributed by a single
// statement in isolation (before splicing in whatever sequence follows it).
func transitionsOfStmt(s Stmt) []pair {
	switch s.Kind {
	case StmtMessage:
		return []pair{{msg: s.Msg, residual: &Sequence{}}}

	case StmtChoice:
		// One alternative is chosen by the sender; each branch's own
		// transitions (already accounting for that branch's internal
		// may-terminate structure) are exposed directly.
		var out []pair
		for _, b := range s.Branches {
			out = append(out, transitions(b)...)
		}
		return out

	case StmtPar:
		// Each branch may independently advance; the residual re-wraps the
		// other branches unchanged and replaces the advancing branch with
		// its own residual. An empty residual branch is kept in the set —
		// it represents a completed track (spec §9).
		var out []pair
		for j, b := range s.Branches {
			for _, p := range transitions(b) {
				next := make([]*Sequence, len(s.Branches))
				copy(next, s.Branches)
				next[j] = p.residual
				out = append(out, pair{msg: p.msg, residual: single(Stmt{Kind: StmtPar, Branches: next})})
			}
		}
		return out

	case StmtFin:
		var out []pair
		for _, p := range transitions(s.Body) {
			out = append(out, pair{msg: p.msg, residual: concat(p.residual, single(Stmt{Kind: StmtFin, Body: s.Body}))})
		}
		return out

	case StmtInf:
		var out []pair
		for _, p := range transitions(s.Body) {
			out = append(out, pair{msg: p.msg, residual: concat(p.residual, single(Stmt{Kind: StmtInf, Body: s.Body}))})
		}
		return out

	default:
		panic("fsm: unknown StmtKind")
	}
}

// queueItem is one entry of the BFS worklist.
type queueItem struct {
	seq   *Sequence
	state State
}

// Compile expands seq into a StateMachine via breadth-first state discovery
// with canonicalized residual sequences as memo keys (spec §4.3 algorithm).
// Because residuals are canonicalized and memoized, and every
// non-terminating construct (Fin, Inf) reinserts itself at a fixed point,
// the set of reachable states is finite for any well-formed input.
func Compile(seq *Sequence) *StateMachine {
	sm := NewStateMachine()
	memo := make(map[string]State)

	// Only residuals are memoized: a residual equal to the start sequence
	// gets a state of its own, so state 0 is never re-entered.
	s0 := sm.NewState()

	queue := []queueItem{{seq: seq, state: s0}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		for _, p := range transitions(item.seq) {
			key := canonicalKey(p.residual)
			end, ok := memo[key]
			if !ok {
				end = sm.NewState()
				memo[key] = end
				queue = append(queue, queueItem{seq: p.residual, state: end})
			}
			sm.AddTransition(item.state, end, p.msg)
		}
	}
	return sm
}
