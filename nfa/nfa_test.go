package nfa

import "testing"

func TestNewHasStartAndFinal(t *testing.T) {
	n := New[rune](false)
	if Start != 1 {
		t.Fatalf("Start = %d, want 1", Start)
	}
	if Final != 0 {
		t.Fatalf("Final = %d, want 0", Final)
	}
	if n.GetData(Start) == nil {
		t.Fatal("Start has no data slot")
	}
}

func TestAddStateReturnsDistinctHandles(t *testing.T) {
	n := New[rune](false)
	a := n.AddState('a')
	b := n.AddState('b')
	if a == b {
		t.Fatalf("AddState returned the same handle twice: %d", a)
	}
	if *n.GetData(a) != 'a' || *n.GetData(b) != 'b' {
		t.Fatal("GetData did not return the state's own payload")
	}
}

// TestInvalidUsagePanics covers the graph-builder invariants that are
// enforced by panicking rather than by a returned error, since a state
// handle is only ever produced by AddState and Final is never a valid
// transition source.
func TestInvalidUsagePanics(t *testing.T) {
	tests := []struct {
		name string
		do   func(n *NFA[rune])
	}{
		{"AddTransition from Final", func(n *NFA[rune]) {
			n.AddTransition(Final, Start, 'a')
		}},
		{"AddEmptyTransition from Final", func(n *NFA[rune]) {
			n.AddEmptyTransition(Final, Start)
		}},
		{"AddTransition from an unknown state", func(n *NFA[rune]) {
			n.AddTransition(StateID(999), Start, 'a')
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New[rune](false)
			defer func() {
				if recover() == nil {
					t.Fatal("expected a panic, got none")
				}
			}()
			tt.do(n)
		})
	}
}

func TestTransitionListOrderIsStable(t *testing.T) {
	n := New[rune](false)
	s := n.AddState(0)
	n.AddTransition(s, Start, 'a')
	n.AddTransition(s, Start, 'b')
	n.AddTransition(s, Start, 'c')

	var syms []rune
	n.eachTransition(n.states[s].firstTransition, func(tr Transition[rune]) {
		syms = append(syms, tr.Sym)
	})
	want := []rune{'c', 'b', 'a'} // prepend order
	if len(syms) != len(want) {
		t.Fatalf("got %v, want %v", syms, want)
	}
	for i := range want {
		if syms[i] != want[i] {
			t.Fatalf("got %v, want %v", syms, want)
		}
	}
}

func TestOnNestedExitIsSeparateFromOrdinary(t *testing.T) {
	n := New[rune](false)
	s := n.AddState(0)
	n.AddTransition(s, Start, 'a')
	n.OnNestedExit(s, Final, 'x')

	var ordinary, exits int
	n.eachTransition(n.states[s].firstTransition, func(Transition[rune]) { ordinary++ })
	n.eachTransition(n.states[s].onNestedExit, func(Transition[rune]) { exits++ })

	if ordinary != 1 || exits != 1 {
		t.Fatalf("ordinary=%d exits=%d, want 1 and 1", ordinary, exits)
	}
}

func TestSetNestedAndGetNested(t *testing.T) {
	n := New[rune](false)
	inner := n.AddState(0)
	nested := n.CreateNested(inner)

	outer := n.AddState(0)
	if _, ok := n.GetNested(outer); ok {
		t.Fatal("freshly allocated state reports a nested automaton")
	}

	n.SetNested(outer, nested)
	got, ok := n.GetNested(outer)
	if !ok || got.start != inner {
		t.Fatalf("GetNested = (%v, %v), want (%v, true)", got, ok, nested)
	}
}

func TestFreeClearsStorage(t *testing.T) {
	n := New[rune](false)
	n.AddState(0)
	n.Free()
	if len(n.states) != 0 || len(n.transitions) != 0 {
		t.Fatal("Free left storage allocated")
	}
}
