package perm

import (
	"math/big"
	"math/rand/v2"
)

// Group is a permutation group represented by a BSGS. All queries delegate
// to the chain; the order is computed once and cached. A Group is immutable
// after construction.
type Group struct {
	bsgs  *BSGS
	order *big.Int
}

// NewGroup constructs the group generated by gens acting on {0..degree-1}.
func NewGroup(degree int, gens *Set, opts *Options) (*Group, error) {
	bsgs, err := NewBSGS(degree, gens, opts)
	if err != nil {
		return nil, err
	}
	return FromBSGS(bsgs), nil
}

// MustNewGroup is like NewGroup but panics on error. Intended for statically
// known generating sets, typically in tests.
func MustNewGroup(degree int, gens *Set, opts *Options) *Group {
	g, err := NewGroup(degree, gens, opts)
	if err != nil {
		panic(err)
	}
	return g
}

// FromBSGS wraps an existing chain.
func FromBSGS(bsgs *BSGS) *Group {
	return &Group{bsgs: bsgs, order: bsgs.Order()}
}

// Trivial returns the group containing only the identity of the given degree.
func Trivial(degree int) *Group {
	bsgs, _ := NewBSGS(degree, MustNewSet(degree), nil)
	return FromBSGS(bsgs)
}

// Degree returns the size of the acted-on set {0..n-1}.
func (g *Group) Degree() int { return g.bsgs.Degree() }

// Order returns the number of group elements. The returned value must not
// be modified.
func (g *Group) Order() *big.Int { return g.order }

// BSGS exposes the underlying chain.
func (g *Group) BSGS() *BSGS { return g.bsgs }

// Generators returns the strong generating set.
func (g *Group) Generators() *Set { return g.bsgs.StrongGenerators() }

// IsTrivial reports whether the group contains only the identity.
func (g *Group) IsTrivial() bool { return len(g.bsgs.Base()) == 0 }

// Contains reports whether p is a group element, decided by sifting.
func (g *Group) Contains(p Perm) bool { return g.bsgs.Contains(p) }

// Equal reports whether both groups contain the same elements: equal
// orders and membership of other's generators in g, which together imply
// the reverse inclusion.
func (g *Group) Equal(other *Group) bool {
	if g.order.Cmp(other.order) != 0 {
		return false
	}
	for _, p := range other.Generators().Perms() {
		if !g.Contains(p) {
			return false
		}
	}
	return true
}

// SmallestMoved returns the smallest point moved by any group element, or
// false for the trivial group.
func (g *Group) SmallestMoved() (int, bool) { return g.Generators().SmallestMoved() }

// LargestMoved returns the largest point moved by any group element, or
// false for the trivial group.
func (g *Group) LargestMoved() (int, bool) { return g.Generators().LargestMoved() }

// IsTransitive reports whether the orbit of the smallest moved point covers
// every point between the smallest and largest moved points.
func (g *Group) IsTransitive() bool {
	lo, ok := g.SmallestMoved()
	if !ok {
		return false
	}
	hi, _ := g.LargestMoved()
	return NewOrbit(lo, g.Generators()).Len() == hi-lo+1
}

// RandomElement returns a pseudo-random group element obtained by sampling
// one transversal representative per level and multiplying them. The
// distribution is uniform; the sampling is not cryptographically secure.
func (g *Group) RandomElement(rng *rand.Rand) Perm {
	if rng == nil {
		rng = (&Options{}).withDefaults().rand()
	}
	res := Identity(g.Degree())
	for i := range g.bsgs.Base() {
		orbit := g.bsgs.Structure(i).Orbit()
		gamma := orbit[rng.IntN(len(orbit))]
		res = res.Mul(g.bsgs.Structure(i).Transversal(gamma))
	}
	return res
}

// Iterator enumerates every group element exactly once in a stable order,
// driving a mixed-radix counter over the per-level transversals. It is
// invalidated by any mutation of the underlying group (groups are immutable,
// so in practice only by discarding the group).
type Iterator struct {
	group *Group
	state []int
	done  bool
}

// Elements returns a fresh iterator over the group.
func (g *Group) Elements() *Iterator {
	return &Iterator{group: g, state: make([]int, len(g.bsgs.Base()))}
}

// Next returns the next element, or false once all elements were produced.
// The identity-only group yields exactly the identity.
func (it *Iterator) Next() (Perm, bool) {
	if it.done {
		return Perm{}, false
	}

	res := Identity(it.group.Degree())
	for i, pos := range it.state {
		structure := it.group.bsgs.Structure(i)
		res = res.Mul(structure.Transversal(structure.Orbit()[pos]))
	}

	// Mixed-radix increment, carrying low-to-high.
	carry := true
	for i := len(it.state) - 1; carry && i >= 0; i-- {
		it.state[i]++
		if it.state[i] < len(it.group.bsgs.Structure(i).Orbit()) {
			carry = false
		} else {
			it.state[i] = 0
		}
	}
	if carry {
		it.done = true
	}
	return res, true
}

// AllElements materializes the full element list. Use only when the order
// is known to be small.
func (g *Group) AllElements() []Perm {
	var res []Perm
	it := g.Elements()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		res = append(res, p)
	}
	return res
}
