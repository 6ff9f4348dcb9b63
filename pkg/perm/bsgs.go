package perm

import (
	"errors"
	"math/big"
	"math/rand/v2"
	"slices"
)

// ErrProbabilisticIncomplete names a Monte-Carlo Schreier-Sims run with
// Guaranteed set whose verification failed. NewBSGS never returns it: the
// verification is a deterministic Schreier-Sims pass, which completes the
// chain instead of failing.
var ErrProbabilisticIncomplete = errors.New("probabilistic BSGS construction incomplete")

// ConstructionMethod selects the Schreier-Sims variant used to build a BSGS.
type ConstructionMethod int

const (
	// Deterministic enumerates all Schreier generators per level.
	Deterministic ConstructionMethod = iota

	// MonteCarlo sifts random elements obtained by product replacement and
	// stops after a configurable number of consecutive identity sifts, or
	// as soon as a known order is reached. Correct with high probability
	// unless Options.Guaranteed requests deterministic verification.
	MonteCarlo
)

// String returns the flag spelling of the construction method.
func (c ConstructionMethod) String() string {
	if c == MonteCarlo {
		return "random"
	}
	return "deterministic"
}

// DefaultSeed is the seed of the pseudo-random generator used by
// Monte-Carlo construction and random element sampling when Options.Seed
// is zero. Stable within a process for reproducible builds.
const DefaultSeed uint64 = 0x5eed0c0de

// DefaultConfidence is the number of consecutive identity sifts after which
// Monte-Carlo construction stops when no order oracle is available.
const DefaultConfidence = 64

// Options configure BSGS construction. The zero value selects deterministic
// Schreier-Sims with explicit transversals.
type Options struct {
	Construction ConstructionMethod
	Transversals TransversalStorage

	// Guaranteed re-runs the deterministic pass after a Monte-Carlo
	// construction, turning the probabilistic result into a certain one.
	Guaranteed bool

	// Confidence is the number of consecutive identity sifts required to
	// stop a Monte-Carlo run. Zero selects DefaultConfidence.
	Confidence int

	// KnownOrder, when non-nil, acts as an order oracle: Monte-Carlo
	// construction stops as soon as the transversal product reaches it.
	KnownOrder *big.Int

	// Seed for the pseudo-random generator. Zero selects DefaultSeed.
	Seed uint64
}

func (o *Options) withDefaults() Options {
	var opts Options
	if o != nil {
		opts = *o
	}
	if opts.Confidence == 0 {
		opts.Confidence = DefaultConfidence
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	return opts
}

func (o Options) rand() *rand.Rand {
	return rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15))
}

// BSGS is a base and strong generating set with one Schreier structure per
// base point. The base is non-redundant after construction: every
// fundamental orbit has more than one point. The trivial group has an
// empty base.
type BSGS struct {
	degree     int
	kind       TransversalStorage
	base       []int
	strong     *Set
	structures []SchreierStructure
}

// NewBSGS constructs a BSGS for the group generated by gens using a variant
// of the Schreier-Sims algorithm selected by opts.
func NewBSGS(degree int, gens *Set, opts *Options) (*BSGS, error) {
	if gens.Degree() > degree {
		return nil, ErrDegreeMismatch
	}
	o := opts.withDefaults()

	b := &BSGS{
		degree: degree,
		kind:   o.Transversals,
		strong: gens.Extended(degree).NonTrivial().Unique(),
	}
	if b.strong.Len() == 0 {
		return b, nil // trivial group, empty base
	}

	switch o.Construction {
	case MonteCarlo:
		b.schreierSimsRandom(o)
		if o.Guaranteed {
			b.schreierSims()
		}
	default:
		b.schreierSims()
	}

	b.trimRedundantBase()
	return b, nil
}

// Degree returns the degree of the represented group.
func (b *BSGS) Degree() int { return b.degree }

// Base returns the ordered base points. The returned slice must not be
// modified.
func (b *BSGS) Base() []int { return b.base }

// StrongGenerators returns the strong generating set.
func (b *BSGS) StrongGenerators() *Set { return b.strong }

// Structure returns the Schreier structure of level i.
func (b *BSGS) Structure(i int) SchreierStructure { return b.structures[i] }

// Order returns the group order, the product of all fundamental orbit sizes.
func (b *BSGS) Order() *big.Int {
	order := big.NewInt(1)
	for _, s := range b.structures {
		order.Mul(order, big.NewInt(int64(len(s.Orbit()))))
	}
	return order
}

// Strip sifts h through the stabilizer chain. It returns the residue and
// the level at which sifting stopped; the residue is the identity exactly
// when h is a member of the represented group, in which case the level is
// len(Base()).
func (b *BSGS) Strip(h Perm) (Perm, int) { return b.stripFrom(h, 0) }

func (b *BSGS) stripFrom(h Perm, from int) (Perm, int) {
	h = h.Extended(b.degree)
	for i := from; i < len(b.base); i++ {
		gamma := h.Apply(b.base[i])
		if !b.structures[i].Contains(gamma) {
			return h, i
		}
		h = b.structures[i].Transversal(gamma).Inverse().Mul(h)
	}
	return h, len(b.base)
}

// Contains reports whether h sifts to the identity, i.e. lies in the group.
func (b *BSGS) Contains(h Perm) bool {
	residue, _ := b.Strip(h)
	return residue.IsIdentity()
}

// stabilizerGenerators returns the strong generators fixing the first
// level base points, i.e. S ∩ G^(level). For a fixed level the result
// grows append-only as the strong generating set grows.
func (b *BSGS) stabilizerGenerators(level int) *Set {
	res := &Set{degree: b.degree}
	for _, s := range b.strong.Perms() {
		fixes := true
		for _, beta := range b.base[:level] {
			if s.Apply(beta) != beta {
				fixes = false
				break
			}
		}
		if fixes {
			res.perms = append(res.perms, s)
		}
	}
	return res
}

// extendLevel brings the Schreier structure of a level up to date with the
// current strong generating set.
func (b *BSGS) extendLevel(level int) {
	if b.structures[level] == nil {
		b.structures[level] = NewSchreierStructure(b.kind, b.degree, b.base[level], b.stabilizerGenerators(level))
		return
	}
	b.structures[level].Extend(b.stabilizerGenerators(level))
}

// ensureBasePoints grows the base until every strong generator moves at
// least one base point.
func (b *BSGS) ensureBasePoints() {
	for _, s := range b.strong.Perms() {
		moved := false
		for _, beta := range b.base {
			if s.Apply(beta) != beta {
				moved = true
				break
			}
		}
		if !moved {
			if m, ok := s.SmallestMoved(); ok {
				b.base = append(b.base, m)
				b.structures = append(b.structures, nil)
			}
		}
	}
}

// installStrongGenerator registers the non-identity sift residue h which
// stopped at the given level, growing the base if h fixes all of it, and
// refreshes every level whose stabilizer generators gained h.
func (b *BSGS) installStrongGenerator(h Perm, level int) {
	if level == len(b.base) {
		m, _ := h.SmallestMoved()
		b.base = append(b.base, m)
		b.structures = append(b.structures, nil)
	}
	b.strong.perms = append(b.strong.perms, h)
	for l := 0; l <= level && l < len(b.base); l++ {
		b.extendLevel(l)
	}
}

// schreierSims runs the deterministic construction: per level, every
// Schreier generator is sifted against the deeper levels; residues become
// new strong generators and processing restarts at the level they reached.
// On return every Schreier generator of every level sifts to the identity.
func (b *BSGS) schreierSims() {
	b.ensureBasePoints()
	for l := range b.base {
		b.extendLevel(l)
	}

	queues := make([]*SchreierGeneratorQueue, len(b.base))

	i := len(b.base) - 1
	for i >= 0 {
		if queues[i] == nil {
			queues[i] = NewSchreierGeneratorQueue(b.stabilizerGenerators(i), b.structures[i].Orbit(), b.structures[i])
		} else {
			queues[i].Update(b.stabilizerGenerators(i), b.structures[i].Orbit(), b.structures[i])
		}

		completed := true
		for {
			g, ok := queues[i].Next()
			if !ok {
				break
			}
			residue, j := b.stripFrom(g, i+1)
			if residue.IsIdentity() {
				continue
			}

			b.installStrongGenerator(residue, j)
			for len(queues) < len(b.base) {
				queues = append(queues, nil)
			}
			for l := 0; l <= j && l < len(queues); l++ {
				if queues[l] != nil {
					queues[l].Invalidate()
				}
			}

			i = j
			completed = false
			break
		}

		if completed {
			i--
		}
	}
}

// schreierSimsRandom runs the Monte-Carlo construction: random elements
// from a product-replacement generator are sifted and installed until
// Confidence consecutive elements sift to the identity, or the order
// oracle confirms completeness.
func (b *BSGS) schreierSimsRandom(o Options) {
	b.ensureBasePoints()
	for l := range b.base {
		b.extendLevel(l)
	}

	pra := newProductReplacement(b.strong, o.rand())

	consecutive := 0
	for consecutive < o.Confidence {
		if o.KnownOrder != nil && b.Order().Cmp(o.KnownOrder) == 0 {
			return
		}

		residue, j := b.Strip(pra.next())
		if residue.IsIdentity() {
			consecutive++
			continue
		}
		consecutive = 0
		b.installStrongGenerator(residue, j)
	}
}

// trimRedundantBase drops base points whose fundamental orbit is a single
// point; such levels contribute nothing to the stabilizer chain.
func (b *BSGS) trimRedundantBase() {
	base := b.base[:0]
	structures := b.structures[:0]
	for i := range b.base {
		if len(b.structures[i].Orbit()) > 1 {
			base = append(base, b.base[i])
			structures = append(structures, b.structures[i])
		}
	}
	b.base = base
	b.structures = structures
}

// WithBasePrefix returns an equivalent BSGS whose base starts with the
// given points, in order. This realizes base change: prefix points are kept
// even when redundant so that stabilizers of the prefix can be read off
// directly via StabilizerGenerators.
func (b *BSGS) WithBasePrefix(prefix []int) *BSGS {
	nb := &BSGS{
		degree: b.degree,
		kind:   b.kind,
		strong: b.strong.Clone().NonTrivial().Unique(),
	}
	for _, beta := range prefix {
		if !slices.Contains(nb.base, beta) {
			nb.base = append(nb.base, beta)
			nb.structures = append(nb.structures, nil)
		}
	}
	if nb.strong.Len() > 0 {
		nb.schreierSims()
	} else {
		nb.base = nil
		nb.structures = nil
	}
	return nb
}

// PointwiseStabilizerGenerators returns generators of the subgroup fixing
// every point in points, computed by a base change placing those points
// first.
func (b *BSGS) PointwiseStabilizerGenerators(points []int) *Set {
	nb := b.WithBasePrefix(points)
	level := 0
	for level < len(nb.base) && slices.Contains(points, nb.base[level]) {
		level++
	}
	return nb.stabilizerGenerators(level).Clone()
}

// productReplacement produces pseudo-random group elements from a
// generating set ("rattle" variant: an accumulator multiplied by randomly
// mutated slots).
type productReplacement struct {
	slots []Perm
	accu  Perm
	rng   *rand.Rand
}

const praMinSlots = 10

func newProductReplacement(gens *Set, rng *rand.Rand) *productReplacement {
	n := max(praMinSlots, gens.Len())
	slots := make([]Perm, n)
	for i := range slots {
		slots[i] = gens.At(i % gens.Len())
	}
	pra := &productReplacement{slots: slots, accu: Identity(gens.Degree()), rng: rng}
	for i := 0; i < 5*n; i++ { // burn-in
		pra.step()
	}
	return pra
}

func (p *productReplacement) step() {
	i := p.rng.IntN(len(p.slots))
	j := p.rng.IntN(len(p.slots))
	for j == i {
		j = p.rng.IntN(len(p.slots))
	}
	other := p.slots[j]
	if p.rng.IntN(2) == 1 {
		other = other.Inverse()
	}
	p.slots[i] = p.slots[i].Mul(other)
	p.accu = p.accu.Mul(p.slots[i])
}

func (p *productReplacement) next() Perm {
	p.step()
	return p.accu
}
