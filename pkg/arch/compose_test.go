package arch

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/lhagemann/symred/pkg/perm"
)

func symmetricSystem(t *testing.T, degree int) System {
	t.Helper()
	return NewAutomorphisms(perm.Symmetric(degree, nil))
}

func TestClusterAutomorphismsAreDirectProduct(t *testing.T) {
	cluster := NewCluster(symmetricSystem(t, 3), symmetricSystem(t, 2))

	if cluster.NumProcessors() != 5 {
		t.Errorf("NumProcessors = %d, want 5", cluster.NumProcessors())
	}

	group, err := cluster.Automorphisms(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := group.Order(); got.Cmp(big.NewInt(12)) != 0 {
		t.Errorf("cluster |Aut| = %s, want 12", got)
	}
}

func TestEmptyClusterFails(t *testing.T) {
	cluster := NewCluster()
	if _, err := cluster.Automorphisms(nil); !errors.Is(err, ErrEmptyCluster) {
		t.Fatalf("err = %v, want ErrEmptyCluster", err)
	}
	if _, err := cluster.Repr(nil, nil, nil); !errors.Is(err, ErrEmptyCluster) {
		t.Fatalf("repr err = %v, want ErrEmptyCluster", err)
	}
}

func TestSuperGraphAutomorphismsAreWreathProduct(t *testing.T) {
	super := NewSuperGraph(symmetricSystem(t, 2), symmetricSystem(t, 3))

	if super.NumProcessors() != 6 {
		t.Errorf("NumProcessors = %d, want 6", super.NumProcessors())
	}

	group, err := super.Automorphisms(nil)
	if err != nil {
		t.Fatal(err)
	}
	// |S3|^2 * |S2| = 72
	if got := group.Order(); got.Cmp(big.NewInt(72)) != 0 {
		t.Errorf("super graph |Aut| = %s, want 72", got)
	}
}

func TestToGAP(t *testing.T) {
	leaf := symmetricSystem(t, 2)
	if got := leaf.ToGAP(); !strings.HasPrefix(got, "Group(") {
		t.Errorf("leaf ToGAP = %q", got)
	}

	cluster := NewCluster(leaf, symmetricSystem(t, 2))
	if got := cluster.ToGAP(); !strings.HasPrefix(got, "DirectProduct(Group(") {
		t.Errorf("cluster ToGAP = %q", got)
	}

	super := NewSuperGraph(symmetricSystem(t, 2), symmetricSystem(t, 3))
	if got := super.ToGAP(); !strings.HasPrefix(got, "WreathProduct(Group(") {
		t.Errorf("super graph ToGAP = %q", got)
	}
}
