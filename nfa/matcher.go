package nfa

// MatchFunc decides whether a transition's symbol accepts an input symbol.
// The first argument is the symbol recorded on the transition; the second
// is the symbol the matcher is being asked to consume.
type MatchFunc[T any] func(transitionSym, input T) bool

// noSlot marks an absent frontier-slot index (an empty list, or "no nested
// frontier").
const noSlot int32 = -1

// slot is one entry of a Matcher's frontier: an NFA state active at some
// nesting level, threaded into that level's list via next and, if the
// state has a live nested automaton, pointing at the head of its nested
// frontier via nested. Every level of every Matcher shares one flat slice
// of slots — a nested frontier is just another list threaded through the
// same array, identified by a single head index stored in its parent's
// slot. This avoids allocating a separate container per nesting level.
type slot struct {
	state  StateID
	next   int32
	nested int32
}

// Matcher drives one run of an NFA: given the current active-state
// frontier, it consumes one symbol at a time and rewrites the frontier
// according to hierarchical NFA semantics. A Matcher is created from an
// NFA reference and is cheap to throw away; the NFA graph itself is never
// touched by matching.
type Matcher[T any] struct {
	nfa   *NFA[T]
	match MatchFunc[T]

	slots []slot
	head  int32
}

// StartMatch creates a matcher positioned at nfa's Start state.
func StartMatch[T any](n *NFA[T], match MatchFunc[T]) *Matcher[T] {
	return StartMatchAt(n, Start, match)
}

// StartMatchAt creates a matcher positioned at state s.
func StartMatchAt[T any](n *NFA[T], s StateID, match MatchFunc[T]) *Matcher[T] {
	m := &Matcher[T]{nfa: n, match: match, head: noSlot}
	m.activate(&m.slots, &m.head, s)
	return m
}

// Free drops the matcher's frontier. Go reclaims the memory on its own;
// Free exists only so callers can signal "done with this matcher" the way
// they would free(matcher) in the source material.
func (m *Matcher[T]) Free() {
	m.slots = nil
	m.head = noSlot
}

// isActive reports whether s already occupies some slot in the list
// headed at head.
func isActive(slots []slot, head int32, s StateID) bool {
	for i := head; i != noSlot; i = slots[i].next {
		if slots[i].state == s {
			return true
		}
	}
	return false
}

// insert appends a new slot for s (with the given nested head, or noSlot)
// into the list headed at *head, preserving the invariant that Final, if
// active at this level, occupies the head of the list. It returns the new
// slot's index. Callers must already know s is not active in this level.
func insert(slots *[]slot, head *int32, s StateID, nested int32) int32 {
	idx := int32(len(*slots))
	*slots = append(*slots, slot{state: s, nested: nested, next: noSlot})

	if s == Final {
		(*slots)[idx].next = *head
		*head = idx
		return idx
	}
	if *head != noSlot && (*slots)[*head].state == Final {
		(*slots)[idx].next = (*slots)[*head].next
		(*slots)[*head].next = idx
		return idx
	}
	(*slots)[idx].next = *head
	*head = idx
	return idx
}

// activate marks s active in the list headed at *head: it is s's
// ε-closure, recursively activating every state reachable from s via
// empty transitions, and — for each such state that carries a nested
// automaton — starting an independent nested frontier for it.
func (m *Matcher[T]) activate(slots *[]slot, head *int32, s StateID) {
	if isActive(*slots, *head, s) {
		return
	}
	idx := insert(slots, head, s, noSlot)

	if s != Final {
		m.nfa.eachTransition(m.nfa.states[s].firstTransition, func(tr Transition[T]) {
			if tr.IsEmpty {
				m.activate(slots, head, tr.To)
			}
		})
	}

	if s != Final && m.nfa.states[s].hasNested {
		nestedHead := noSlot
		m.activate(slots, &nestedHead, m.nfa.states[s].nestedStart)
		(*slots)[idx].nested = nestedHead
	}
}

// Process consumes one input symbol. It is transactional: if no state in
// the top-level frontier can advance (directly, or via a live nested
// frontier, or via an on-nested-exit transition), the frontier is left
// completely untouched and Process returns false.
func (m *Matcher[T]) Process(input T) bool {
	next := make([]slot, 0, len(m.slots)+4)
	newHead, ok := m.step(m.slots, m.head, &next, input)
	if !ok {
		return false
	}
	m.slots = next
	m.head = newHead
	return true
}

// step runs one generation of one frontier level (identified by srcHead
// into the read-only src slots) and appends the resulting active states
// into dst, which may already contain entries from sibling levels
// processed earlier in the same Process call. It returns the head index
// of the new level within dst and whether that level is non-empty.
func (m *Matcher[T]) step(src []slot, srcHead int32, dst *[]slot, input T) (int32, bool) {
	head := noSlot

	for i := srcHead; i != noSlot; i = src[i].next {
		e := src[i]
		consumedByNested := false

		if e.nested != noSlot {
			wasFinal := src[e.nested].state == Final
			nestedHead, nestedOK := m.step(src, e.nested, dst, input)

			if nestedOK {
				insert(dst, &head, e.state, nestedHead)
				consumedByNested = true
				if (*dst)[nestedHead].state == Final {
					m.offerNestedExit(dst, &head, e.state, input)
				}
			} else if wasFinal {
				// The nested frontier was already done before this step
				// and had nothing left to consume input with, but its
				// enclosing state's on-nested-exit transitions remain
				// eligible: the nested automaton being in Final is a
				// standing condition, not a one-step event.
				m.offerNestedExit(dst, &head, e.state, input)
			}
			// Nested step failed: the nested automaton dies either way.
			// Fall through and still offer the symbol to e.state's
			// ordinary transitions — a symbol caught by neither level
			// fails the whole step.
		}

		if !consumedByNested && e.state != Final {
			m.nfa.eachTransition(m.nfa.states[e.state].firstTransition, func(tr Transition[T]) {
				if tr.IsEmpty {
					return
				}
				if !isActive(*dst, head, tr.To) && m.match(tr.Sym, input) {
					m.activate(dst, &head, tr.To)
				}
			})
		}
	}

	return head, head != noSlot
}

// offerNestedExit checks from's on-nested-exit transitions against input,
// activating any that match (or are empty) into the level headed at *head.
func (m *Matcher[T]) offerNestedExit(dst *[]slot, head *int32, from StateID, input T) {
	m.nfa.eachTransition(m.nfa.states[from].onNestedExit, func(tr Transition[T]) {
		if (tr.IsEmpty || m.match(tr.Sym, input)) && !isActive(*dst, *head, tr.To) {
			m.activate(dst, head, tr.To)
		}
	})
}

// InFinal reports whether the empty suffix from the current frontier is
// accepted: the top-level frontier is empty, or Final occupies its head.
func (m *Matcher[T]) InFinal() bool {
	return m.head == noSlot || m.slots[m.head].state == Final
}

// ForEachActiveState calls cb for every state active at the top level. If
// ignoreIfNested is set, a state whose nested frontier has not itself
// reached Final is skipped — useful for reporting only the states whose
// nested sub-automaton, if any, is done.
func (m *Matcher[T]) ForEachActiveState(cb func(StateID, *T), ignoreIfNested bool) {
	for i := m.head; i != noSlot; i = m.slots[i].next {
		e := m.slots[i]
		if ignoreIfNested && e.nested != noSlot && m.slots[e.nested].state != Final {
			continue
		}
		cb(e.state, &m.nfa.states[e.state].userData)
	}
}

// Expected returns the `|`-joined images of the symbols on ordinary
// transitions out of every currently active top-level state — a
// diagnostics aid, not something matching logic depends on.
func (m *Matcher[T]) Expected(image func(T) string) string {
	seen := map[string]bool{}
	var parts []string
	for i := m.head; i != noSlot; i = m.slots[i].next {
		s := m.slots[i].state
		if s == Final {
			continue
		}
		m.nfa.eachTransition(m.nfa.states[s].firstTransition, func(tr Transition[T]) {
			if tr.IsEmpty {
				return
			}
			img := image(tr.Sym)
			if !seen[img] {
				seen[img] = true
				parts = append(parts, img)
			}
		})
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "|"
		}
		out += p
	}
	return out
}
