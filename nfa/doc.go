// Package nfa implements a hierarchical Nondeterministic Finite Automaton
// used as the matching core of an XML Schema content-model validator.
//
// Unlike a textbook NFA, states in this package can carry a nested
// sub-automaton: activating a state with an attached nested NFA also starts
// an independent frontier for that nested machine, and symbols are offered
// to the nested frontier before they are offered to the enclosing state's
// own transitions. An enclosing state can additionally carry on-nested-exit
// transitions, which become eligible only once its nested frontier reaches
// Final. This is the event-bubbling discipline hierarchical state machines
// use, generalized to NFAs.
//
// The package is organized the way the grammar of its own construction
// reads:
//
//   - nfa.go holds the arena-backed state/transition storage and the
//     builder primitives that grow it (AddState, AddTransition, nested
//     attachment).
//   - repeat.go implements the {min,max} repetition transform, which clones
//     bounded sub-graphs to express bounded and unbounded occurrence counts.
//   - matcher.go runs a frontier (the set of currently active states, at
//     every nesting level) against one input symbol at a time.
//   - dump.go renders a graph or a live frontier for debugging, either as
//     compact text or as Graphviz dot.
//
// Construction and matching are split deliberately: an *NFA[T] is built up
// by a single goroutine, then treated as read-only and shared by as many
// independent *Matcher[T] as needed. There is no locking anywhere in this
// package because there is nothing to lock — the graph never changes once
// matching starts, and each Matcher owns its own frontier.
package nfa
