package task

import "testing"

func TestOrbitsAssignMonotoneIndices(t *testing.T) {
	orbits := NewOrbits()

	idx, isNew := orbits.Insert(Mapping{0, 1, 2})
	if idx != 0 || !isNew {
		t.Fatalf("first insert = (%d, %v), want (0, true)", idx, isNew)
	}
	idx, isNew = orbits.Insert(Mapping{1, 0, 2})
	if idx != 1 || !isNew {
		t.Fatalf("second insert = (%d, %v), want (1, true)", idx, isNew)
	}

	// Re-inserting an equal mapping returns the existing index.
	idx, isNew = orbits.Insert(Mapping{0, 1, 2})
	if idx != 0 || isNew {
		t.Fatalf("re-insert = (%d, %v), want (0, false)", idx, isNew)
	}

	if orbits.Len() != 2 {
		t.Errorf("Len = %d, want 2", orbits.Len())
	}
}

func TestOrbitsLookupMatchesByEquality(t *testing.T) {
	orbits := NewOrbits()
	orbits.Insert(Mapping{4, 4})

	if _, ok := orbits.Lookup(Mapping{4, 4}); !ok {
		t.Error("equal mapping not found")
	}
	if _, ok := orbits.Lookup(Mapping{4, 5}); ok {
		t.Error("different mapping found")
	}
	if !orbits.Contains(Mapping{4, 4}) {
		t.Error("Contains disagrees with Lookup")
	}
}

func TestOrbitsEachIteratesInInsertionOrder(t *testing.T) {
	orbits := NewOrbits()
	inputs := []Mapping{{2, 2}, {0, 1}, {1, 0}}
	for _, m := range inputs {
		orbits.Insert(m)
	}

	var seen []Mapping
	orbits.Each(func(index int, m Mapping) {
		if index != len(seen) {
			t.Errorf("index %d out of order", index)
		}
		seen = append(seen, m)
	})
	for i, m := range inputs {
		if !seen[i].Equal(m) {
			t.Errorf("position %d: got %v, want %v", i, seen[i], m)
		}
	}
}
