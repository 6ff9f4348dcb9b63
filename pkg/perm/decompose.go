package perm

import "math/big"

// DisjointDecomposition finds subgroups {H_1..H_r} of g with pairwise
// disjoint support whose product is g. With complete set, the finest such
// decomposition is found by testing orbit subsets against the stabilizer
// chain (base changes); otherwise a fast generator-support heuristic is
// used, which may miss factorizations when generators overlap. The
// disjointOrbitOptimization prunes orbit subsets that would separate
// dependent orbits; it is only meaningful for the complete mode.
//
// If no non-trivial factorization exists the result contains g itself.
func (g *Group) DisjointDecomposition(complete, disjointOrbitOptimization bool) []*Group {
	if g.IsTrivial() {
		return []*Group{g}
	}
	if !complete {
		return g.disjointDecompIncomplete()
	}
	return g.disjointDecompComplete(disjointOrbitOptimization)
}

// disjointDecompIncomplete merges generators whose supports intersect into
// equivalence classes; each class generates one factor.
func (g *Group) disjointDecompIncomplete() []*Group {
	gens := g.Generators().Perms()

	classOf := make([]int, len(gens))
	supports := make([]map[int]bool, len(gens))
	for i, p := range gens {
		classOf[i] = i
		supports[i] = make(map[int]bool)
		for _, x := range p.Support() {
			supports[i][x] = true
		}
	}

	intersects := func(a, b map[int]bool) bool {
		for x := range a {
			if b[x] {
				return true
			}
		}
		return false
	}

	// Merge until stable.
	for changed := true; changed; {
		changed = false
		for i := range gens {
			for j := i + 1; j < len(gens); j++ {
				if classOf[i] != classOf[j] && intersects(supports[classOf[i]], supports[classOf[j]]) {
					old, now := classOf[j], classOf[i]
					for k := range classOf {
						if classOf[k] == old {
							classOf[k] = now
						}
					}
					for x := range supports[old] {
						supports[now][x] = true
					}
					changed = true
				}
			}
		}
	}

	byClass := make(map[int]*Set)
	var order []int
	for i, p := range gens {
		c := classOf[i]
		if byClass[c] == nil {
			byClass[c] = MustNewSet(g.Degree())
			order = append(order, c)
		}
		byClass[c].perms = append(byClass[c].perms, p)
	}
	if len(order) <= 1 {
		return []*Group{g}
	}

	res := make([]*Group, 0, len(order))
	for _, c := range order {
		res = append(res, MustNewGroup(g.Degree(), byClass[c], nil))
	}
	return res
}

// movedOrbits returns the non-singleton orbits of the group.
func (g *Group) movedOrbits() [][]int {
	partition := NewOrbitPartition(g.Degree(), g.Generators())
	var res [][]int
	for i := 0; i < partition.Len(); i++ {
		if orbit := partition.Orbit(i); len(orbit) > 1 {
			res = append(res, orbit)
		}
	}
	return res
}

// orbitsDependent reports whether two orbits cannot be separated: some
// generator moves points of both and its restriction to the first orbit is
// not itself a group member.
func (g *Group) orbitsDependent(orbit1, orbit2 []int) bool {
	in1 := make(map[int]bool, len(orbit1))
	for _, x := range orbit1 {
		in1[x] = true
	}
	in2 := make(map[int]bool, len(orbit2))
	for _, x := range orbit2 {
		in2[x] = true
	}

	for _, p := range g.Generators().Perms() {
		moves1, moves2 := false, false
		for _, x := range p.Support() {
			moves1 = moves1 || in1[x]
			moves2 = moves2 || in2[x]
		}
		if !moves1 || !moves2 {
			continue
		}
		restricted, ok := p.Restricted(orbit1)
		if !ok || !g.Contains(restricted) {
			return true
		}
	}
	return false
}

func (g *Group) disjointDecompComplete(disjointOrbitOptimization bool) []*Group {
	orbits := g.movedOrbits()
	r := len(orbits)
	if r <= 1 {
		return []*Group{g}
	}

	var dependent [][]bool
	if disjointOrbitOptimization {
		dependent = make([][]bool, r)
		for i := range dependent {
			dependent[i] = make([]bool, r)
		}
		for i := 0; i < r; i++ {
			for j := i + 1; j < r; j++ {
				dep := g.orbitsDependent(orbits[i], orbits[j])
				dependent[i][j], dependent[j][i] = dep, dep
			}
		}
	}

	// Fix orbit 0 on the left side so each split is tried once.
	for mask := 1; mask < 1<<(r-1); mask++ {
		left := []int{0}
		var right []int
		for i := 1; i < r; i++ {
			if mask&(1<<(i-1)) != 0 {
				right = append(right, i)
			} else {
				left = append(left, i)
			}
		}

		if disjointOrbitOptimization && splitsDependentPair(dependent, left, right) {
			continue
		}

		leftPoints := collectPoints(orbits, left)
		rightPoints := collectPoints(orbits, right)

		h1 := FromBSGS(restrictedChain(g, rightPoints))
		h2 := FromBSGS(restrictedChain(g, leftPoints))

		product := new(big.Int).Mul(h1.Order(), h2.Order())
		if product.Cmp(g.Order()) == 0 {
			return append(h1.disjointDecompComplete(disjointOrbitOptimization),
				h2.disjointDecompComplete(disjointOrbitOptimization)...)
		}
	}
	return []*Group{g}
}

func splitsDependentPair(dependent [][]bool, left, right []int) bool {
	if dependent == nil {
		return false
	}
	for _, i := range left {
		for _, j := range right {
			if dependent[i][j] {
				return true
			}
		}
	}
	return false
}

func collectPoints(orbits [][]int, idx []int) []int {
	var res []int
	for _, i := range idx {
		res = append(res, orbits[i]...)
	}
	return res
}

// restrictedChain computes the pointwise stabilizer of the given points via
// a base change and returns its chain.
func restrictedChain(g *Group, fixed []int) *BSGS {
	gens := g.BSGS().PointwiseStabilizerGenerators(fixed)
	bsgs, err := NewBSGS(g.Degree(), gens, nil)
	if err != nil {
		panic(err) // generators come from the same degree, cannot mismatch
	}
	return bsgs
}

// WreathDecomposition attempts to write g as a wreath product over one of
// its non-trivial block systems. On success it returns the block permuter
// followed by the per-block factors [K, H_1..H_d] with
// |K| * |H_1| * ... * |H_d| = |g|; on failure it returns nil.
func (g *Group) WreathDecomposition() []*Group {
	for _, bs := range NonTrivialBlockSystems(g) {
		if res := g.wreathDecompOver(bs); res != nil {
			return res
		}
	}
	return nil
}

func (g *Group) wreathDecompOver(bs *BlockSystem) []*Group {
	permuter, err := bs.BlockPermuter(g.Generators(), nil)
	if err != nil {
		return nil
	}

	d := bs.Size()
	factors := make([]*Group, d)
	baseOrder := big.NewInt(1)
	baseGens := MustNewSet(g.Degree())
	for i := 0; i < d; i++ {
		var outside []int
		for j := 0; j < d; j++ {
			if j != i {
				outside = append(outside, bs.Block(j)...)
			}
		}
		factors[i] = FromBSGS(restrictedChain(g, outside))
		baseOrder.Mul(baseOrder, factors[i].Order())
		for _, p := range factors[i].Generators().Perms() {
			baseGens.perms = append(baseGens.perms, p)
		}
	}

	// The factors have disjoint support, so the base group order is the
	// product; g decomposes iff the permuter accounts for the rest.
	total := new(big.Int).Mul(baseOrder, permuter.Order())
	if total.Cmp(g.Order()) != 0 {
		return nil
	}
	for _, p := range baseGens.Perms() {
		if !g.Contains(p) {
			return nil
		}
	}

	return append([]*Group{permuter}, factors...)
}
