package nfa

import "testing"

// buildAB builds a two-symbol fragment from -> mid -> to matching exactly
// the sequence "ab" once, the sub-graph Repeat is meant to operate on.
func buildAB(stateful bool) (n *NFA[rune], from, to StateID) {
	n = New[rune](stateful)
	from = n.AddState(0)
	mid := n.AddState(0)
	to = n.AddState(0)
	n.AddTransition(from, mid, 'a')
	n.AddTransition(mid, to, 'b')
	return n, from, to
}

func accepts(n *NFA[rune], from StateID, input string) bool {
	m := StartMatchAt(n, from, func(sym, in rune) bool { return sym == in })
	for _, r := range input {
		if !m.Process(r) {
			return false
		}
	}
	return m.InFinal()
}

func checkLanguage(t *testing.T, n *NFA[rune], from, to StateID, accept, reject []string) {
	t.Helper()
	n.AddEmptyTransition(to, Final)
	for _, s := range accept {
		if !accepts(n, from, s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}
	for _, s := range reject {
		if accepts(n, from, s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

// TestRepeat covers spec.md §4.2's contract across every (min, max) shape:
// the four literal no-op/simple cases and the general cloning branch,
// bounded and unbounded.
func TestRepeat(t *testing.T) {
	tests := []struct {
		name           string
		min, max       int
		accept, reject []string
	}{
		{"NoOpWhenMinExceedsMax", 2, 1, []string{"ab"}, []string{"", "abab"}},
		{"NoOpOneOne", 1, 1, []string{"ab"}, []string{"", "abab"}},
		{"ZeroOne", 0, 1, []string{"", "ab"}, []string{"abab"}},
		{"OneUnbounded", 1, Unbounded, []string{"ab", "abab", "ababab"}, []string{""}},
		{"ZeroUnbounded", 0, Unbounded, []string{"", "ab", "abab", "ababab"}, nil},
		{"BoundedGeneral", 2, 3, []string{"abab", "ababab"}, []string{"", "ab", "abababab"}},
		{"ZeroToN", 0, 2, []string{"", "ab", "abab"}, []string{"ababab"}},
		{"MinUnboundedGeneral", 3, Unbounded, []string{"ababab", "abababab"}, []string{"", "ab", "abab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, from, to := buildAB(false)
			n.Repeat(from, to, tt.min, tt.max)
			checkLanguage(t, n, from, to, tt.accept, tt.reject)
		})
	}
}

func TestRepeatStatefulPreservesMatching(t *testing.T) {
	n, from, to := buildAB(true)
	*n.GetData(to) = 'T'
	n.Repeat(from, to, 2, 3)
	if got := *n.GetData(to); got != 'T' {
		t.Fatalf("to's payload = %q after Repeat, want 'T'", got)
	}
	checkLanguage(t, n, from, to,
		[]string{"abab", "ababab"},
		[]string{"ab", "abababab"})
}
