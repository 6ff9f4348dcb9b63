package arch

import (
	"testing"

	"github.com/lhagemann/symred/pkg/perm"
	"github.com/lhagemann/symred/pkg/task"
)

func s4System(t *testing.T) System {
	t.Helper()
	return NewAutomorphisms(perm.Symmetric(4, nil))
}

func allMethods() []ReprMethod {
	return []ReprMethod{ReprIterate, ReprLocalSearch, ReprOrbits}
}

func TestReprCanonicalizesOnS4(t *testing.T) {
	system := s4System(t)

	for _, method := range allMethods() {
		t.Run(method.String(), func(t *testing.T) {
			got, err := system.Repr(task.Mapping{2, 0, 1, 3}, &ReprOptions{Method: method}, nil)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(task.Mapping{0, 1, 2, 3}) {
				t.Errorf("repr([2 0 1 3]) = %v, want [0 1 2 3]", got)
			}
		})
	}
}

func TestReprIsMinimalAndOrbitEquivalent(t *testing.T) {
	system := s4System(t)
	group, err := system.Automorphisms(nil)
	if err != nil {
		t.Fatal(err)
	}

	mappings := []task.Mapping{
		{3, 3, 3, 3},
		{1, 0, 3, 2},
		{0, 2, 2, 1},
		{3, 1, 0, 2},
	}

	for _, m := range mappings {
		repr, err := system.Repr(m, &ReprOptions{Method: ReprIterate}, nil)
		if err != nil {
			t.Fatal(err)
		}

		if m.Less(repr) {
			t.Errorf("repr(%v) = %v is larger than the input", m, repr)
		}

		// repr must lie in the orbit of m: some group element maps m to it.
		found := false
		it := group.Elements()
		for p, ok := it.Next(); ok; p, ok = it.Next() {
			if m.Permuted(p, 0).Equal(repr) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("repr(%v) = %v is not in the input's orbit", m, repr)
		}
	}
}

func TestStrategiesAgreeOnSmallOrbits(t *testing.T) {
	systems := map[string]System{
		"S4":      s4System(t),
		"C4":      NewAutomorphisms(perm.Cyclic(4, nil)),
		"D4":      NewAutomorphisms(perm.Dihedral(4, nil)),
		"cluster": NewCluster(NewAutomorphisms(perm.Symmetric(2, nil)), NewAutomorphisms(perm.Symmetric(2, nil))),
	}
	mappings := []task.Mapping{
		{2, 0, 1, 3},
		{3, 2, 1, 0},
		{1, 1, 2, 2},
		{0, 3, 0, 3},
	}

	for name, system := range systems {
		for _, m := range mappings {
			exact, err := system.Repr(m, &ReprOptions{Method: ReprIterate}, nil)
			if err != nil {
				t.Fatal(err)
			}

			orbitsRepr, err := system.Repr(m, &ReprOptions{Method: ReprOrbits}, nil)
			if err != nil {
				t.Fatal(err)
			}
			if !orbitsRepr.Equal(exact) {
				t.Errorf("%s: orbits repr of %v = %v, iterate = %v", name, m, orbitsRepr, exact)
			}

			localRepr, err := system.Repr(m, &ReprOptions{Method: ReprLocalSearch}, nil)
			if err != nil {
				t.Fatal(err)
			}
			// Local search may stop in a local minimum but never below the
			// exact minimum.
			if localRepr.Less(exact) {
				t.Errorf("%s: local search repr of %v = %v is below the orbit minimum %v",
					name, m, localRepr, exact)
			}
		}
	}
}

func TestReprRegistersOrbitIndices(t *testing.T) {
	system := s4System(t)
	orbits := task.NewOrbits()

	inputs := []task.Mapping{
		{2, 0, 1, 3},
		{0, 1, 2, 3}, // same orbit as above
		{1, 1, 1, 1}, // new orbit
	}
	for _, m := range inputs {
		if _, err := system.Repr(m, nil, orbits); err != nil {
			t.Fatal(err)
		}
	}

	if orbits.Len() != 2 {
		t.Errorf("registered %d orbits, want 2", orbits.Len())
	}
	if idx, ok := orbits.Lookup(task.Mapping{0, 1, 2, 3}); !ok || idx != 0 {
		t.Errorf("orbit of [0 1 2 3] = (%d, %v), want (0, true)", idx, ok)
	}
	if idx, ok := orbits.Lookup(task.Mapping{1, 1, 1, 1}); !ok || idx != 1 {
		t.Errorf("orbit of [1 1 1 1] = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestClusterReprUsesOffsets(t *testing.T) {
	// Two independent S2 blocks on {0,1} and {2,3}.
	cluster := NewCluster(
		NewAutomorphisms(perm.Symmetric(2, nil)),
		NewAutomorphisms(perm.Symmetric(2, nil)),
	)

	got, err := cluster.Repr(task.Mapping{1, 3, 0, 2}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	// The first block can swap 0<->1, the second 2<->3; each value is
	// canonicalized within its window.
	want := task.Mapping{0, 2, 1, 3}
	if !got.Equal(want) {
		t.Errorf("cluster repr = %v, want %v", got, want)
	}
}
