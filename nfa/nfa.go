package nfa

import "github.com/xsdcore/hnfa/internal/conv"

// StateID is a small integer handle identifying a state in an NFA's arena.
//
// Two values are reserved: Start is the entry state every NFA is created
// with, and Final is a sentinel accepting state that is never stored in
// the state array — it exists only as a transition target.
type StateID int32

const (
	// Final is the sentinel accepting state. No state record backs it;
	// it is only ever a transition target. No outbound transition may
	// originate from it — AddTransition and friends panic if asked to.
	Final StateID = 0

	// Start is the entry state every NFA is created with.
	Start StateID = 1
)

// transitionID indexes the transitions arena. The zero value (noTransition)
// marks "no more transitions" at the end of an intrusive list.
type transitionID int32

const noTransition transitionID = 0

// Transition is one edge out of a state: either an ordinary edge carrying a
// symbol, or (when IsEmpty) an epsilon edge.
type Transition[T any] struct {
	To      StateID
	IsEmpty bool
	Sym     T
	next    transitionID
}

// Nested is a lightweight reference to a sub-automaton's entry state,
// returned by CreateNested and consumed by SetNested. It carries no data of
// its own beyond the start handle — the same sub-graph may be installed as
// the nested automaton of more than one state.
type Nested struct {
	start StateID
}

// state is the arena record for one NFA state.
type state[T any] struct {
	userData T

	hasNested   bool
	nestedStart StateID

	firstTransition transitionID
	onNestedExit    transitionID
}

// NFA is a hierarchical nondeterministic finite automaton over an opaque
// symbol type T. It is built up via the Add*/Set* methods on one goroutine
// and, once construction is done, is safe to share read-only across any
// number of independent Matchers.
//
// statesAreStateful records whether callers attach meaningful user data to
// states. Repeat's cloning never duplicates the terminal state's payload
// regardless of this flag — the sub-graph's terminal state is never itself
// one of the states it clones (cloned interior states do copy their
// originals' payloads) — but the flag is part of the construction API for parity with
// callers that reason about it, and is available to future Repeat variants
// that clone the terminal state's data directly.
type NFA[T any] struct {
	states            []state[T]
	transitions       []Transition[T]
	statesAreStateful bool
}

// New creates an NFA with its Start state already allocated.
func New[T any](statesAreStateful bool) *NFA[T] {
	n := &NFA[T]{
		// index 0 is the unused Final placeholder; index 1 is Start.
		states:            make([]state[T], 2),
		transitions:       make([]Transition[T], 1), // index 0 is noTransition
		statesAreStateful: statesAreStateful,
	}
	return n
}

// AddState allocates a new state carrying userData and returns its handle.
func (n *NFA[T]) AddState(userData T) StateID {
	id := StateID(conv.IntToUint32(len(n.states)))
	n.states = append(n.states, state[T]{userData: userData})
	return id
}

func (n *NFA[T]) mustState(op string, s StateID) {
	if int(s) <= 0 || int(s) >= len(n.states) {
		panicUnknownState(op, s)
	}
}

// AddTransition prepends a transition on symbol sym from `from` to `to`.
// Panics if from == Final.
func (n *NFA[T]) AddTransition(from, to StateID, sym T) {
	if from == Final {
		panicFromFinal("AddTransition")
	}
	n.mustState("AddTransition", from)
	n.prepend(&n.states[from].firstTransition, Transition[T]{To: to, Sym: sym})
}

// AddEmptyTransition prepends an epsilon transition from `from` to `to`.
// Panics if from == Final.
func (n *NFA[T]) AddEmptyTransition(from, to StateID) {
	if from == Final {
		panicFromFinal("AddEmptyTransition")
	}
	n.mustState("AddEmptyTransition", from)
	n.prepend(&n.states[from].firstTransition, Transition[T]{To: to, IsEmpty: true})
}

// OnNestedExit prepends a transition on symbol sym to the on-nested-exit
// list of `from`. It fires when `from`'s nested frontier reaches Final, not
// when `from` itself matches an ordinary transition. Panics if from == Final.
func (n *NFA[T]) OnNestedExit(from, to StateID, sym T) {
	if from == Final {
		panicFromFinal("OnNestedExit")
	}
	n.mustState("OnNestedExit", from)
	n.prepend(&n.states[from].onNestedExit, Transition[T]{To: to, Sym: sym})
}

// OnEmptyNestedExit is the epsilon variant of OnNestedExit.
func (n *NFA[T]) OnEmptyNestedExit(from, to StateID) {
	if from == Final {
		panicFromFinal("OnEmptyNestedExit")
	}
	n.mustState("OnEmptyNestedExit", from)
	n.prepend(&n.states[from].onNestedExit, Transition[T]{To: to, IsEmpty: true})
}

func (n *NFA[T]) prepend(head *transitionID, tr Transition[T]) {
	tr.next = *head
	id := transitionID(conv.IntToUint32(len(n.transitions)))
	n.transitions = append(n.transitions, tr)
	*head = id
}

// CreateNested creates a descriptor for a nested sub-automaton whose entry
// state is `from`. The returned Nested carries no back-reference to the
// state it will eventually be installed on — the same sub-graph may be
// referenced from multiple states via SetNested.
func (n *NFA[T]) CreateNested(from StateID) Nested {
	return Nested{start: from}
}

// SetNested installs nested as the nested automaton of state.
func (n *NFA[T]) SetNested(s StateID, nested Nested) {
	n.mustState("SetNested", s)
	n.states[s].hasNested = true
	n.states[s].nestedStart = nested.start
}

// GetNested returns the nested automaton attached to state, if any.
func (n *NFA[T]) GetNested(s StateID) (Nested, bool) {
	n.mustState("GetNested", s)
	if !n.states[s].hasNested {
		return Nested{}, false
	}
	return Nested{start: n.states[s].nestedStart}, true
}

// GetData returns a mutable pointer to state's user data.
func (n *NFA[T]) GetData(s StateID) *T {
	n.mustState("GetData", s)
	return &n.states[s].userData
}

// Free releases the graph's storage. The Go runtime reclaims memory on its
// own, but Free exists so callers that modeled their lifecycle after the
// source material's explicit free(nfa) have something to call; it makes
// the NFA unusable afterward.
func (n *NFA[T]) Free() {
	n.states = nil
	n.transitions = nil
}

// eachTransition walks an intrusive transition list starting at head,
// yielding each transition in list order. Callers must not mutate the
// NFA while iterating.
func (n *NFA[T]) eachTransition(head transitionID, f func(Transition[T])) {
	for t := head; t != noTransition; t = n.transitions[t].next {
		f(n.transitions[t])
	}
}
