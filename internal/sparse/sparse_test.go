package sparse

import "testing"

func TestSparseSetBasic(t *testing.T) {
	s := NewSparseSet(16)

	if !s.IsEmpty() {
		t.Fatal("new set should be empty")
	}
	if s.Contains(5) {
		t.Fatal("empty set should not contain 5")
	}

	s.Insert(5)
	if !s.Contains(5) {
		t.Fatal("set should contain 5 after insert")
	}
	if s.Size() != 1 {
		t.Fatalf("size = %d, want 1", s.Size())
	}

	s.Insert(5) // duplicate, no-op
	if s.Size() != 1 {
		t.Fatalf("duplicate insert changed size to %d", s.Size())
	}

	s.Insert(10)
	s.Insert(3)
	if s.Size() != 3 {
		t.Fatalf("size = %d, want 3", s.Size())
	}

	s.Remove(5)
	if s.Contains(5) {
		t.Fatal("5 should be gone after Remove")
	}
	if s.Size() != 2 {
		t.Fatalf("size after remove = %d, want 2", s.Size())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Fatal("set should be empty after Clear")
	}
}

func TestSparseSetOutOfRange(t *testing.T) {
	s := NewSparseSet(4)
	if s.Contains(100) {
		t.Fatal("out-of-range value should never be contained")
	}
}

func TestSparseSetIterValues(t *testing.T) {
	s := NewSparseSet(8)
	want := map[uint32]bool{1: true, 2: true, 7: true}
	for v := range want {
		s.Insert(v)
	}

	got := map[uint32]bool{}
	s.Iter(func(v uint32) { got[v] = true })
	if len(got) != len(want) {
		t.Fatalf("Iter visited %d values, want %d", len(got), len(want))
	}
	for v := range want {
		if !got[v] {
			t.Fatalf("Iter missed value %d", v)
		}
	}

	vals := s.Values()
	if len(vals) != len(want) {
		t.Fatalf("Values() returned %d entries, want %d", len(vals), len(want))
	}
}
