package perm

import "math/bits"

// TransversalStorage selects the representation of the per-level coset
// transversals inside a BSGS.
type TransversalStorage int

const (
	// ExplicitTransversals stores every coset representative as a full
	// permutation. Fastest lookup, highest memory.
	ExplicitTransversals TransversalStorage = iota

	// SchreierTrees stores only the labeling generator per orbit edge;
	// a lookup walks the tree to the root composing labels.
	SchreierTrees

	// ShallowSchreierTrees bounds the tree depth logarithmically in the
	// orbit size by inserting composite shortcut labels during extension.
	// Preferred default when memory is tight.
	ShallowSchreierTrees
)

// String returns the flag spelling of the storage kind.
func (t TransversalStorage) String() string {
	switch t {
	case ExplicitTransversals:
		return "explicit"
	case SchreierTrees:
		return "schreier-trees"
	case ShallowSchreierTrees:
		return "shallow-schreier-trees"
	}
	return "unknown"
}

// SchreierStructure stores, for a base point β and a generating set, one
// coset representative u_γ per point γ in the orbit of β, satisfying
// u_γ(β) = γ, together with the generator that discovered γ.
//
// Extend must be called with generating sets that only ever grow by
// appending; the structure retains discovered points and their
// representatives across extensions.
type SchreierStructure interface {
	// Root returns the base point β.
	Root() int

	// Degree returns the degree of the stored permutations.
	Degree() int

	// Orbit returns the orbit of the root in discovery order. The returned
	// slice must not be modified.
	Orbit() []int

	// Contains reports whether γ lies in the orbit of the root.
	Contains(gamma int) bool

	// Transversal returns the representative u_γ with u_γ(Root()) = γ.
	// γ must be in the orbit.
	Transversal(gamma int) Perm

	// Incoming reports whether g labels the incoming tree edge of γ.
	// The root has no incoming edge.
	Incoming(gamma int, g Perm) bool

	// Extend grows the orbit and transversals for a generating set that
	// extends the one the structure was last built with.
	Extend(gens *Set)
}

// NewSchreierStructure builds a transversal store of the given kind for the
// orbit of root under gens.
func NewSchreierStructure(kind TransversalStorage, degree, root int, gens *Set) SchreierStructure {
	switch kind {
	case ExplicitTransversals:
		s := &explicitTransversals{degree: degree, root: root}
		s.init(gens)
		return s
	case SchreierTrees, ShallowSchreierTrees:
		s := &schreierTree{degree: degree, root: root, shallow: kind == ShallowSchreierTrees}
		s.init(gens)
		return s
	}
	panic("unknown transversal storage")
}

// explicitTransversals keeps a full permutation per orbit point.
type explicitTransversals struct {
	degree int
	root   int
	orbit  []int
	pos    map[int]int
	u      map[int]Perm
	in     map[int]Perm // incoming edge label
}

func (e *explicitTransversals) init(gens *Set) {
	e.pos = make(map[int]int)
	e.u = make(map[int]Perm)
	e.in = make(map[int]Perm)
	e.pos[e.root] = 0
	e.orbit = append(e.orbit, e.root)
	e.u[e.root] = Identity(e.degree)
	e.Extend(gens)
}

func (e *explicitTransversals) Root() int   { return e.root }
func (e *explicitTransversals) Degree() int { return e.degree }

func (e *explicitTransversals) Orbit() []int { return e.orbit }

func (e *explicitTransversals) Contains(gamma int) bool {
	_, ok := e.pos[gamma]
	return ok
}

func (e *explicitTransversals) Transversal(gamma int) Perm { return e.u[gamma] }

func (e *explicitTransversals) Incoming(gamma int, g Perm) bool {
	label, ok := e.in[gamma]
	return ok && label.Equal(g)
}

func (e *explicitTransversals) Extend(gens *Set) {
	for i := 0; i < len(e.orbit); i++ {
		gamma := e.orbit[i]
		for _, s := range gens.Perms() {
			delta := s.Apply(gamma)
			if e.Contains(delta) {
				continue
			}
			e.pos[delta] = len(e.orbit)
			e.orbit = append(e.orbit, delta)
			e.u[delta] = s.Mul(e.u[gamma])
			e.in[delta] = s
		}
	}
}

// schreierTree stores the orbit as an arena of parent points and label
// indices. Transversals are computed by climbing parent links and composing
// labels, never by chasing pointers. In shallow mode, nodes whose depth
// exceeds a logarithmic bound get their full transversal installed as a
// shortcut label hanging directly off the root.
type schreierTree struct {
	degree  int
	root    int
	shallow bool

	orbit  []int
	pos    map[int]int
	parent map[int]int
	label  map[int]int // >= 0: index into gens, < 0: index -(l+1) into extra
	depth  map[int]int

	gens  []Perm // mirror of the generating set last extended with
	extra []Perm // shortcut labels (shallow mode only)
}

func (t *schreierTree) init(gens *Set) {
	t.pos = map[int]int{t.root: 0}
	t.parent = make(map[int]int)
	t.label = make(map[int]int)
	t.depth = map[int]int{t.root: 0}
	t.orbit = append(t.orbit, t.root)
	t.Extend(gens)
}

func (t *schreierTree) Root() int   { return t.root }
func (t *schreierTree) Degree() int { return t.degree }

func (t *schreierTree) Orbit() []int { return t.orbit }

func (t *schreierTree) Contains(gamma int) bool {
	_, ok := t.pos[gamma]
	return ok
}

func (t *schreierTree) labelPerm(l int) Perm {
	if l >= 0 {
		return t.gens[l]
	}
	return t.extra[-(l + 1)]
}

func (t *schreierTree) Transversal(gamma int) Perm { return t.transversal(gamma) }

// transversal climbs the parent chain of gamma and composes the labels so
// that the result maps the root to gamma.
func (t *schreierTree) transversal(gamma int) Perm {
	var chain []int // label indices from gamma up to the root
	for x := gamma; x != t.root; x = t.parent[x] {
		chain = append(chain, t.label[x])
	}
	u := Identity(t.degree)
	for i := len(chain) - 1; i >= 0; i-- {
		u = t.labelPerm(chain[i]).Mul(u)
	}
	return u
}

func (t *schreierTree) Incoming(gamma int, g Perm) bool {
	l, ok := t.label[gamma]
	return ok && t.labelPerm(l).Equal(g)
}

// maxDepth is the shallow-mode depth bound, logarithmic in the orbit size.
func (t *schreierTree) maxDepth() int {
	return bits.Len(uint(len(t.orbit))) + 1
}

func (t *schreierTree) Extend(gens *Set) {
	// The generating set only ever grows by appending, so the stored label
	// indices stay valid.
	t.gens = t.gens[:0]
	t.gens = append(t.gens, gens.Perms()...)

	for i := 0; i < len(t.orbit); i++ {
		gamma := t.orbit[i]
		for si, s := range t.gens {
			delta := s.Apply(gamma)
			if t.Contains(delta) {
				continue
			}
			t.pos[delta] = len(t.orbit)
			t.orbit = append(t.orbit, delta)
			t.parent[delta] = gamma
			t.label[delta] = si
			t.depth[delta] = t.depth[gamma] + 1

			if t.shallow && t.depth[delta] > t.maxDepth() {
				// Install the composed transversal as a shortcut label so
				// the node hangs directly off the root.
				t.extra = append(t.extra, t.transversal(delta))
				t.parent[delta] = t.root
				t.label[delta] = -len(t.extra)
				t.depth[delta] = 1
			}
		}
	}
}
