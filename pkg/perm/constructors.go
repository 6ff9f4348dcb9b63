package perm

import "math/big"

// installedBSGS builds a chain from a known-good base and strong generating
// set, bypassing Schreier-Sims. Callers must guarantee the strong
// generating property; the fundamental orbits and transversals are still
// computed by orbit search.
func installedBSGS(degree int, base []int, gens *Set, kind TransversalStorage) *BSGS {
	b := &BSGS{
		degree:     degree,
		kind:       kind,
		base:       base,
		strong:     gens,
		structures: make([]SchreierStructure, len(base)),
	}
	for l := range base {
		b.extendLevel(l)
	}
	b.trimRedundantBase()
	return b
}

func transversalKind(opts *Options) TransversalStorage {
	return opts.withDefaults().Transversals
}

// Symmetric returns the symmetric group on {0..degree-1} with order
// degree!. The base and strong generating set (all adjacent
// transpositions) are installed directly, no Schreier-Sims run is needed.
func Symmetric(degree int, opts *Options) *Group {
	if degree <= 1 {
		return Trivial(max(degree, 0))
	}
	base := make([]int, degree-1)
	gens := MustNewSet(degree)
	for i := 0; i < degree-1; i++ {
		base[i] = i
		t, _ := FromCycles(degree, [][]int{{i, i + 1}})
		gens.perms = append(gens.perms, t)
	}
	return FromBSGS(installedBSGS(degree, base, gens, transversalKind(opts)))
}

// Alternating returns the alternating group on {0..degree-1} with order
// degree!/2, installed from the consecutive 3-cycles.
func Alternating(degree int, opts *Options) *Group {
	if degree <= 2 {
		return Trivial(max(degree, 0))
	}
	base := make([]int, degree-2)
	gens := MustNewSet(degree)
	for i := 0; i < degree-2; i++ {
		base[i] = i
		c, _ := FromCycles(degree, [][]int{{i, i + 1, i + 2}})
		gens.perms = append(gens.perms, c)
	}
	return FromBSGS(installedBSGS(degree, base, gens, transversalKind(opts)))
}

// Cyclic returns the cyclic group generated by the degree-cycle
// (0,1,...,degree-1), of order degree.
func Cyclic(degree int, opts *Options) *Group {
	if degree <= 1 {
		return Trivial(max(degree, 0))
	}
	cycle := make([]int, degree)
	for i := range cycle {
		cycle[i] = i
	}
	rot, _ := FromCycles(degree, [][]int{cycle})
	return FromBSGS(installedBSGS(degree, []int{0}, MustNewSet(degree, rot), transversalKind(opts)))
}

// Dihedral returns the dihedral group of order 2*degree acting on
// {0..degree-1}, generated by the rotation and the reflection fixing 0.
// Degrees 1 and 2 are represented as S2 and S2 x S2 respectively.
func Dihedral(degree int, opts *Options) *Group {
	switch {
	case degree <= 0:
		return Trivial(0)
	case degree == 1:
		return Symmetric(2, opts)
	case degree == 2:
		return DirectProduct([]*Group{Symmetric(2, opts), Symmetric(2, opts)}, opts)
	}

	cycle := make([]int, degree)
	reflection := make([]int, degree)
	for i := range cycle {
		cycle[i] = i
		reflection[i] = (degree - i) % degree
	}
	rot, _ := FromCycles(degree, [][]int{cycle})
	refl := MustNew(reflection)
	gens := MustNewSet(degree, rot, refl)
	return FromBSGS(installedBSGS(degree, []int{0, 1}, gens, transversalKind(opts)))
}

// DirectProduct returns the direct product of the given groups: each
// factor's generators are shifted past the preceding factors' degrees and
// extended to the total degree, the union generating the product.
func DirectProduct(groups []*Group, opts *Options) *Group {
	total := 0
	for _, g := range groups {
		total += g.Degree()
	}

	gens := MustNewSet(total)
	shift := 0
	for _, g := range groups {
		for _, p := range g.Generators().Perms() {
			gens.perms = append(gens.perms, p.Shifted(shift).Extended(total))
		}
		shift += g.Degree()
	}

	o := opts.withDefaults()
	if o.KnownOrder == nil {
		order := big.NewInt(1)
		for _, g := range groups {
			order.Mul(order, g.Order())
		}
		o.KnownOrder = order
	}
	return MustNewGroup(total, gens, &o)
}

// WreathProduct returns the wreath product of h by k: deg(k) copies of h
// act within consecutive blocks of size deg(h), and k permutes the blocks.
// The order is |h|^deg(k) * |k|.
func WreathProduct(h, k *Group, opts *Options) *Group {
	m, d := h.Degree(), k.Degree()
	total := m * d

	gens := MustNewSet(total)
	for block := 0; block < d; block++ {
		for _, p := range h.Generators().Perms() {
			gens.perms = append(gens.perms, p.Shifted(block*m).Extended(total))
		}
	}
	for _, p := range k.Generators().Perms() {
		image := make([]int, total)
		for block := 0; block < d; block++ {
			target := p.Apply(block)
			for j := 0; j < m; j++ {
				image[block*m+j] = target*m + j
			}
		}
		gens.perms = append(gens.perms, MustNew(image))
	}

	o := opts.withDefaults()
	if o.KnownOrder == nil {
		order := new(big.Int).Exp(h.Order(), big.NewInt(int64(d)), nil)
		order.Mul(order, k.Order())
		o.KnownOrder = order
	}
	return MustNewGroup(total, gens, &o)
}

// factorialBig returns n! as a big integer.
func factorialBig(n int) *big.Int {
	res := big.NewInt(1)
	for i := 2; i <= n; i++ {
		res.Mul(res, big.NewInt(int64(i)))
	}
	return res
}

// isNaturalOn reports whether g is the full symmetric (or, for half=true,
// alternating) group on the window {lo..lo+n-1}: the order must match and
// the canonical generators must be members.
func (g *Group) isNaturalOn(lo, n int, half bool) bool {
	if n < 2 || (half && n < 3) {
		return false
	}
	want := factorialBig(n)
	if half {
		want.Div(want, big.NewInt(2))
	}
	if g.order.Cmp(want) != 0 {
		return false
	}
	// Containing every consecutive transposition (3-cycle) of the window
	// means containing the full (alternating) group on it; together with
	// the order match this is exact.
	span := n - 1
	if half {
		span = n - 2
	}
	for i := 0; i < span; i++ {
		var cycle []int
		if half {
			cycle = []int{lo + i, lo + i + 1, lo + i + 2}
		} else {
			cycle = []int{lo + i, lo + i + 1}
		}
		p, err := FromCycles(g.Degree(), [][]int{cycle})
		if err != nil || !g.Contains(p) {
			return false
		}
	}
	return true
}

func (g *Group) movedWindow() (lo, n int, ok bool) {
	lo, ok = g.SmallestMoved()
	if !ok {
		return 0, 0, false
	}
	hi, _ := g.LargestMoved()
	return lo, hi - lo + 1, true
}

// IsSymmetric reports whether g is the symmetric group on {0..degree-1}.
func (g *Group) IsSymmetric() bool {
	lo, n, ok := g.movedWindow()
	return ok && lo == 0 && n == g.Degree() && g.isNaturalOn(0, n, false)
}

// IsShiftedSymmetric reports whether g is the symmetric group on a window
// {k..k+n-1} of its domain.
func (g *Group) IsShiftedSymmetric() bool {
	lo, n, ok := g.movedWindow()
	return ok && g.isNaturalOn(lo, n, false)
}

// IsAlternating reports whether g is the alternating group on {0..degree-1}.
func (g *Group) IsAlternating() bool {
	lo, n, ok := g.movedWindow()
	return ok && lo == 0 && n == g.Degree() && g.isNaturalOn(0, n, true)
}

// IsShiftedAlternating reports whether g is the alternating group on a
// window {k..k+n-1} of its domain.
func (g *Group) IsShiftedAlternating() bool {
	lo, n, ok := g.movedWindow()
	return ok && g.isNaturalOn(lo, n, true)
}
