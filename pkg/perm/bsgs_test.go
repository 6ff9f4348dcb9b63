package perm

import (
	"math/big"
	"testing"
)

func s3Generators(t *testing.T) *Set {
	t.Helper()
	return MustNewSet(3, MustNew([]int{1, 0, 2}), MustNew([]int{1, 2, 0}))
}

func a4Generators(t *testing.T) *Set {
	t.Helper()
	g1, err := FromCycles(4, [][]int{{0, 1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	g2, err := FromCycles(4, [][]int{{1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	return MustNewSet(4, g1, g2)
}

func allStorages() []TransversalStorage {
	return []TransversalStorage{ExplicitTransversals, SchreierTrees, ShallowSchreierTrees}
}

func TestSchreierSimsS3(t *testing.T) {
	for _, storage := range allStorages() {
		t.Run(storage.String(), func(t *testing.T) {
			bsgs, err := NewBSGS(3, s3Generators(t), &Options{Transversals: storage})
			if err != nil {
				t.Fatal(err)
			}
			if got := bsgs.Order(); got.Cmp(big.NewInt(6)) != 0 {
				t.Errorf("order = %s, want 6", got)
			}
			// Non-redundant base: every fundamental orbit has > 1 point.
			for i := range bsgs.Base() {
				if len(bsgs.Structure(i).Orbit()) < 2 {
					t.Errorf("level %d has a redundant base point", i)
				}
			}
		})
	}
}

func TestSchreierSimsA4(t *testing.T) {
	bsgs, err := NewBSGS(4, a4Generators(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := bsgs.Order(); got.Cmp(big.NewInt(12)) != 0 {
		t.Errorf("order = %s, want 12", got)
	}
}

func TestMonteCarloMatchesDeterministic(t *testing.T) {
	gens := a4Generators(t)

	det, err := NewBSGS(4, gens, &Options{Construction: Deterministic})
	if err != nil {
		t.Fatal(err)
	}
	for _, guaranteed := range []bool{false, true} {
		mc, err := NewBSGS(4, gens, &Options{
			Construction: MonteCarlo,
			Guaranteed:   guaranteed,
			Seed:         7,
		})
		if err != nil {
			t.Fatal(err)
		}
		if det.Order().Cmp(mc.Order()) != 0 {
			t.Errorf("guaranteed=%v: Monte-Carlo order = %s, deterministic = %s",
				guaranteed, mc.Order(), det.Order())
		}
	}
}

func TestMonteCarloOrderOracle(t *testing.T) {
	bsgs, err := NewBSGS(3, s3Generators(t), &Options{
		Construction: MonteCarlo,
		KnownOrder:   big.NewInt(6),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := bsgs.Order(); got.Cmp(big.NewInt(6)) != 0 {
		t.Errorf("order = %s, want 6", got)
	}
}

func TestStripIdentifiesMembers(t *testing.T) {
	bsgs, err := NewBSGS(4, a4Generators(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	threeCycle, _ := FromCycles(4, [][]int{{0, 2, 3}})
	if !bsgs.Contains(threeCycle) {
		t.Error("A4 must contain the 3-cycle (0,2,3)")
	}

	transposition, _ := FromCycles(4, [][]int{{0, 1}})
	if bsgs.Contains(transposition) {
		t.Error("A4 must not contain a transposition")
	}
	residue, _ := bsgs.Strip(transposition)
	if residue.IsIdentity() {
		t.Error("sifting a non-member must leave a non-trivial residue")
	}
}

func TestWithBasePrefix(t *testing.T) {
	bsgs, err := NewBSGS(4, a4Generators(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	changed := bsgs.WithBasePrefix([]int{2, 0})
	if len(changed.Base()) < 2 || changed.Base()[0] != 2 || changed.Base()[1] != 0 {
		t.Fatalf("base = %v, want prefix [2 0]", changed.Base())
	}
	if bsgs.Order().Cmp(changed.Order()) != 0 {
		t.Errorf("base change altered the order: %s vs %s", changed.Order(), bsgs.Order())
	}
}

func TestPointwiseStabilizerGenerators(t *testing.T) {
	// S3 x S3 on 6 points.
	gens := MustNewSet(6)
	for _, cycles := range [][][]int{{{0, 1}}, {{0, 1, 2}}, {{3, 4}}, {{3, 4, 5}}} {
		p, err := FromCycles(6, cycles)
		if err != nil {
			t.Fatal(err)
		}
		if err := gens.Insert(p); err != nil {
			t.Fatal(err)
		}
	}
	bsgs, err := NewBSGS(6, gens, nil)
	if err != nil {
		t.Fatal(err)
	}

	stab := bsgs.PointwiseStabilizerGenerators([]int{3, 4, 5})
	stabChain, err := NewBSGS(6, stab, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := stabChain.Order(); got.Cmp(big.NewInt(6)) != 0 {
		t.Errorf("stabilizer order = %s, want 6", got)
	}
	for _, p := range stab.Perms() {
		for _, fixed := range []int{3, 4, 5} {
			if p.Apply(fixed) != fixed {
				t.Errorf("stabilizer generator %v moves fixed point %d", p, fixed)
			}
		}
	}
}

func TestSchreierStructureVariantsAgree(t *testing.T) {
	gens := a4Generators(t)
	var orders []*big.Int
	for _, storage := range allStorages() {
		bsgs, err := NewBSGS(4, gens, &Options{Transversals: storage})
		if err != nil {
			t.Fatal(err)
		}
		orders = append(orders, bsgs.Order())
	}
	for i := 1; i < len(orders); i++ {
		if orders[0].Cmp(orders[i]) != 0 {
			t.Errorf("storage variants disagree on order: %v", orders)
		}
	}
}

func TestTransversalMapsRootToPoint(t *testing.T) {
	gens := s3Generators(t)
	for _, storage := range allStorages() {
		structure := NewSchreierStructure(storage, 3, 0, gens)
		for _, gamma := range structure.Orbit() {
			u := structure.Transversal(gamma)
			if u.Apply(0) != gamma {
				t.Errorf("%v: transversal of %d maps root to %d", storage, gamma, u.Apply(0))
			}
		}
	}
}

func TestSchreierGeneratorQueueSkipsIncomingEdges(t *testing.T) {
	gens := s3Generators(t)
	structure := NewSchreierStructure(ExplicitTransversals, 3, 0, gens)
	queue := NewSchreierGeneratorQueue(gens, structure.Orbit(), structure)

	count := 0
	for g, ok := queue.Next(); ok; g, ok = queue.Next() {
		if g.Apply(0) != 0 {
			t.Errorf("Schreier generator %v does not stabilize the root", g)
		}
		count++
	}
	// 3 orbit points x 2 generators minus the skipped incoming edges.
	if count >= 6 {
		t.Errorf("queue yielded %d pairs, incoming edges were not skipped", count)
	}

	// A second pass requires re-seeding.
	if _, ok := queue.Next(); ok {
		t.Error("exhausted queue yielded another element")
	}
	queue.Invalidate()
	queue.Update(gens, structure.Orbit(), structure)
	if _, ok := queue.Next(); !ok {
		t.Error("re-seeded queue is empty")
	}
}
