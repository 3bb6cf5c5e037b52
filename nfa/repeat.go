package nfa

// Unbounded is the max_occurs value meaning "no upper bound" (the Schema
// facet `unbounded`).
const Unbounded = -1

// Repeat rewrites the sub-graph bounded by from and to so that it matches
// between min and max occurrences of the language it currently expresses.
// to keeps its identity as the sub-graph's single external exit: after
// Repeat returns, any transition a caller later adds out of `to` still
// means "whatever follows the repeated construct," exactly as it would
// have for a single (1,1) occurrence.
//
// Repeat is a no-op if min > max (max == Unbounded never satisfies that)
// or if (min, max) == (1, 1).
func (n *NFA[T]) Repeat(from, to StateID, min, max int) {
	if max != Unbounded && min > max {
		return
	}
	if min == 1 && max == 1 {
		return
	}
	if min == 0 && max == 1 {
		n.AddEmptyTransition(from, to)
		return
	}
	if min == 1 && max == Unbounded {
		n.AddEmptyTransition(to, from)
		return
	}
	if min == 0 && max == Unbounded {
		n.AddEmptyTransition(from, to)
		n.AddEmptyTransition(to, from)
		return
	}

	n.repeatGeneral(from, to, min, max)
}

// repeatGeneral handles every (min, max) pair not covered by the four
// literal cases above: at least one additional copy of the from..to
// sub-graph must be cloned in a chain, with an exit to `to` wired from
// every clone whose occurrence count qualifies (>= min), plus a direct
// from->to bypass when min == 0 since no clone's exit covers zero
// occurrences.
func (n *NFA[T]) repeatGeneral(from, to StateID, min, max int) {
	copies := max
	if max == Unbounded {
		copies = min
	}
	if copies < 1 {
		copies = 1
	}

	// `to` must stay the sub-graph's single external sink, reachable only
	// once the occurrence count qualifies — never as a side effect of
	// reaching the natural end of one copy of the fragment. So the
	// interior of the fragment never targets `to` directly: splice it out
	// with a fresh boundary state and redirect every transition that used
	// to target `to` onto the boundary instead. `to` is never cloned (the
	// walk below stops at the boundary), so whether or not states carry
	// payload, its data survives untouched; the qualifying loop is the
	// only thing allowed to wire a path into it.
	var zero T
	boundary := n.AddState(zero)
	n.redirectTransitionsTo(to, boundary)

	// min == 0 additionally requires a zero-occurrence path: every path
	// wired below only reaches `to` after completing at least one copy, so
	// the empty string needs its own direct bypass, the same way the
	// (0,1) literal case above does.
	if min == 0 {
		n.AddEmptyTransition(from, to)
	}

	// entries[0]/exits[0] are the original, unmodified fragment.
	entries := make([]StateID, copies)
	exits := make([]StateID, copies)
	entries[0], exits[0] = from, boundary

	for i := 1; i < copies; i++ {
		cf, ct := n.cloneFragment(from, boundary)
		n.AddEmptyTransition(exits[i-1], cf)
		entries[i] = cf
		exits[i] = ct
	}

	for i := 0; i < copies; i++ {
		count := i + 1
		if count >= min {
			n.AddEmptyTransition(exits[i], to)
		}
	}

	// min == 0 additionally requires a zero-occurrence path: every path
	// wired above only reaches `to` after completing at least one copy, so
	// the empty string needs its own direct bypass, the same way the
	// (0,1) literal case above does. It is added after cloning so the
	// clone walk never follows it into `to`.
	if min == 0 {
		n.AddEmptyTransition(from, to)
	}

	if max == Unbounded {
		// copies == min >= 1 here (the (0,∞)/(1,∞) literal cases above
		// already handled min == 0 and min == 1). Loop the last clone on
		// itself to allow unlimited further repeats past the minimum.
		last := copies - 1
		n.AddEmptyTransition(exits[last], entries[last])
	}
}

// redirectTransitionsTo rewrites every transition (ordinary and
// on-nested-exit) in the graph that targets oldTo so it targets newTo
// instead. Safe to call only while oldTo has no other meaning yet in the
// graph besides being the exit of the fragment currently being repeated —
// exactly the situation Repeat is called in.
func (n *NFA[T]) redirectTransitionsTo(oldTo, newTo StateID) {
	for i := range n.transitions {
		if i == int(noTransition) {
			continue
		}
		if n.transitions[i].To == oldTo {
			n.transitions[i].To = newTo
		}
	}
}

// cloneFragment makes an independent copy of every state reachable from
// from without passing through boundary (boundary itself is never cloned;
// it stays the exit of the original copy only, and each clone gets its own
// fresh exit state in its place). Edges that target boundary or Final are left pointing
// at a fresh per-clone exit state and Final respectively; edges to states
// outside the fragment are left unchanged, sharing them with the
// original. Nested attachments are copied by reference, not deep-cloned,
// matching the matcher's independent-frontier-per-activation design.
func (n *NFA[T]) cloneFragment(from, boundary StateID) (newFrom, newTo StateID) {
	cloneOf := make(map[StateID]StateID)
	var order []StateID

	var visit func(s StateID)
	visit = func(s StateID) {
		if s == boundary || s == Final {
			return
		}
		if _, ok := cloneOf[s]; ok {
			return
		}
		id := n.AddState(n.states[s].userData)
		cloneOf[s] = id
		order = append(order, s)

		n.eachTransition(n.states[s].firstTransition, func(tr Transition[T]) {
			if tr.To != boundary && tr.To != Final {
				visit(tr.To)
			}
		})
		n.eachTransition(n.states[s].onNestedExit, func(tr Transition[T]) {
			if tr.To != boundary && tr.To != Final {
				visit(tr.To)
			}
		})
	}
	visit(from)

	var zero T
	exit := n.AddState(zero)

	remap := func(to StateID) StateID {
		switch {
		case to == boundary:
			return exit
		case to == Final:
			return Final
		default:
			if mapped, ok := cloneOf[to]; ok {
				return mapped
			}
			return to
		}
	}

	for _, s := range order {
		clone := cloneOf[s]
		n.states[clone].hasNested = n.states[s].hasNested
		n.states[clone].nestedStart = n.states[s].nestedStart

		n.eachTransition(n.states[s].firstTransition, func(tr Transition[T]) {
			if tr.IsEmpty {
				n.AddEmptyTransition(clone, remap(tr.To))
			} else {
				n.AddTransition(clone, remap(tr.To), tr.Sym)
			}
		})
		n.eachTransition(n.states[s].onNestedExit, func(tr Transition[T]) {
			if tr.IsEmpty {
				n.OnEmptyNestedExit(clone, remap(tr.To))
			} else {
				n.OnNestedExit(clone, remap(tr.To), tr.Sym)
			}
		})
	}

	return cloneOf[from], exit
}
