package arch

import (
	"errors"
	"math/big"
	"testing"
)

// bigLittleGraph is the 8-processor fixture: a 4xA7 + 4xA15 big.LITTLE
// pattern with per-core L1 and L2 caches, cluster-local L2 interconnect
// and shared SRAM between all cores.
func bigLittleGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()

	a7 := g.AddProcessorType("A7")
	a15 := g.AddProcessorType("A15")

	l1 := g.AddChannelType("L1")
	l2 := g.AddChannelType("L2")
	sram := g.AddChannelType("SRAM")

	var pes []Processor
	for i := 0; i < 4; i++ {
		pes = append(pes, g.AddProcessor(a7))
	}
	for i := 0; i < 4; i++ {
		pes = append(pes, g.AddProcessor(a15))
	}

	for _, pe := range pes {
		g.AddChannel(pe, pe, l1)
		g.AddChannel(pe, pe, l2)
		g.AddChannel(pe, pe, sram)
		for _, other := range pes {
			if other != pe {
				g.AddChannel(pe, other, sram)
			}
		}
	}

	for cluster := 0; cluster < 2; cluster++ {
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				g.AddChannel(pes[cluster*4+i], pes[cluster*4+j], l2)
			}
		}
	}
	return g
}

func TestBigLittleAutomorphismsGolden(t *testing.T) {
	g := bigLittleGraph(t)

	group, err := g.Automorphisms(nil)
	if err != nil {
		t.Fatal(err)
	}

	// Each cluster of four identical cores permutes freely: |S4 x S4| = 576.
	want := big.NewInt(576)
	if got := group.Order(); got.Cmp(want) != 0 {
		t.Errorf("|Aut| = %s, want %s", got, want)
	}

	// Automorphisms never map across processor types.
	for _, p := range group.Generators().Perms() {
		for v := 0; v < 4; v++ {
			if p.Apply(v) >= 4 {
				t.Errorf("generator %v maps an A7 core to an A15 core", p)
			}
		}
	}
}

func TestAutomorphismsAreCached(t *testing.T) {
	g := bigLittleGraph(t)
	first, err := g.Automorphisms(nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.Automorphisms(nil)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("automorphism group not cached per instance")
	}
}

func TestTooManyTypes(t *testing.T) {
	g := NewGraph()
	pt := g.AddProcessorType("PE")
	g.AddProcessor(pt)
	for i := 0; i < 8; i++ {
		g.AddChannelType("ch")
	}

	if _, err := g.Automorphisms(nil); !errors.Is(err, ErrTooManyTypes) {
		t.Fatalf("err = %v, want ErrTooManyTypes", err)
	}
}

func TestUntypedRingAutomorphisms(t *testing.T) {
	// A ring of five identical processors: Aut is the dihedral group D5.
	g := NewGraph()
	pt := g.AddProcessorType("PE")
	link := g.AddChannelType("link")

	var pes []Processor
	for i := 0; i < 5; i++ {
		pes = append(pes, g.AddProcessor(pt))
	}
	for i := range pes {
		g.AddChannel(pes[i], pes[(i+1)%len(pes)], link)
	}

	group, err := g.Automorphisms(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := group.Order(); got.Cmp(big.NewInt(10)) != 0 {
		t.Errorf("ring |Aut| = %s, want 10", got)
	}
}

func TestNumProcessorsAndChannels(t *testing.T) {
	g := bigLittleGraph(t)
	if g.NumProcessors() != 8 {
		t.Errorf("NumProcessors = %d, want 8", g.NumProcessors())
	}
	// 8 * 3 self channels + 8*7 SRAM pairs + 2 * 6 L2 cluster links
	if g.NumChannels() != 24+56+12 {
		t.Errorf("NumChannels = %d, want 92", g.NumChannels())
	}
}
