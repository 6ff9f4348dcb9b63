// Package perm implements permutations and permutation groups over the set
// {0..n-1}, represented by a base and strong generating set (BSGS) computed
// with variants of the Schreier-Sims algorithm.
//
// All points are 0-indexed. The only place 1-indexed points appear is the
// string boundary: cycle notation (ParseCycles, Perm.String) and the group
// serialization format (ParseGroup, Group.String) follow the GAP convention
// of acting on {1..n}.
//
// Composition is right-to-left: (p.Mul(q)).Apply(i) == p.Apply(q.Apply(i)),
// i.e. q acts first. Permutations are immutable value types; every operation
// returns a new Perm.
package perm

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidImage is returned by New when the image vector is not a
	// bijection of {0..n-1}.
	ErrInvalidImage = errors.New("image vector is not a permutation")

	// ErrDegreeMismatch is returned when permutations of incompatible degrees
	// are combined in a context where identity extension is disallowed,
	// e.g. inserting into a Set of a different degree.
	ErrDegreeMismatch = errors.New("degree mismatch")
)

// Perm is an immutable permutation of {0..n-1} where n is the degree.
// The zero value is the (degenerate) identity of degree 0, which acts as
// the identity on every point.
type Perm struct {
	image []int
}

// Identity returns the identity permutation of the given degree.
func Identity(degree int) Perm {
	image := make([]int, degree)
	for i := range image {
		image[i] = i
	}
	return Perm{image: image}
}

// New constructs a permutation from an explicit image vector: the returned
// permutation maps i to image[i]. Returns ErrInvalidImage unless every value
// in {0..len(image)-1} appears exactly once.
func New(image []int) (Perm, error) {
	seen := make([]bool, len(image))
	for _, v := range image {
		if v < 0 || v >= len(image) || seen[v] {
			return Perm{}, ErrInvalidImage
		}
		seen[v] = true
	}
	return Perm{image: slices.Clone(image)}, nil
}

// MustNew is like New but panics on an invalid image vector.
// It is intended for statically known images, typically in tests.
func MustNew(image []int) Perm {
	p, err := New(image)
	if err != nil {
		panic(err)
	}
	return p
}

// Degree returns the size n of the set {0..n-1} the permutation acts on.
func (p Perm) Degree() int { return len(p.image) }

// Apply returns the image of the point i. Points at or beyond the degree
// are fixed, so every permutation acts as the identity outside its domain.
func (p Perm) Apply(i int) int {
	if i < len(p.image) {
		return p.image[i]
	}
	return i
}

// Image returns a copy of the image vector.
func (p Perm) Image() []int { return slices.Clone(p.image) }

// IsIdentity reports whether the permutation fixes every point.
func (p Perm) IsIdentity() bool {
	for i, v := range p.image {
		if v != i {
			return false
		}
	}
	return true
}

// Mul returns the composition p∘q, the permutation applying q first and
// then p. The result's degree is the larger of the two operand degrees;
// the shorter operand acts as the identity on the extension.
func (p Perm) Mul(q Perm) Perm {
	n := max(p.Degree(), q.Degree())
	image := make([]int, n)
	for i := range image {
		image[i] = p.Apply(q.Apply(i))
	}
	return Perm{image: image}
}

// Inverse returns the permutation mapping p.Apply(i) back to i.
func (p Perm) Inverse() Perm {
	image := make([]int, len(p.image))
	for i, v := range p.image {
		image[v] = i
	}
	return Perm{image: image}
}

// Equal reports whether p and q describe the same mapping. Permutations of
// different degrees are equal exactly when they agree on the larger degree
// after extending the shorter one with the identity.
func (p Perm) Equal(q Perm) bool {
	for i := 0; i < max(p.Degree(), q.Degree()); i++ {
		if p.Apply(i) != q.Apply(i) {
			return false
		}
	}
	return true
}

// Compare orders permutations lexicographically by their image vectors,
// extending the shorter operand with the identity. It returns -1, 0 or 1.
func (p Perm) Compare(q Perm) int {
	for i := 0; i < max(p.Degree(), q.Degree()); i++ {
		pi, qi := p.Apply(i), q.Apply(i)
		if pi != qi {
			if pi < qi {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Less reports whether p precedes q in the order defined by Compare.
func (p Perm) Less(q Perm) bool { return p.Compare(q) < 0 }

// Shifted renames every point i to i+k, producing a permutation of degree
// Degree()+k that acts as the identity on {0..k-1}.
func (p Perm) Shifted(k int) Perm {
	image := make([]int, len(p.image)+k)
	for i := 0; i < k; i++ {
		image[i] = i
	}
	for i, v := range p.image {
		image[i+k] = v + k
	}
	return Perm{image: image}
}

// Extended returns a permutation of degree n that agrees with p on its
// domain and fixes {Degree()..n-1}. If n <= Degree(), p is returned as is.
func (p Perm) Extended(n int) Perm {
	if n <= len(p.image) {
		return p
	}
	image := make([]int, n)
	copy(image, p.image)
	for i := len(p.image); i < n; i++ {
		image[i] = i
	}
	return Perm{image: image}
}

// Support returns the sorted set of points moved by p.
func (p Perm) Support() []int {
	var moved []int
	for i, v := range p.image {
		if v != i {
			moved = append(moved, i)
		}
	}
	return moved
}

// SmallestMoved returns the smallest point moved by p, or false for the
// identity.
func (p Perm) SmallestMoved() (int, bool) {
	for i, v := range p.image {
		if v != i {
			return i, true
		}
	}
	return 0, false
}

// LargestMoved returns the largest point moved by p, or false for the
// identity.
func (p Perm) LargestMoved() (int, bool) {
	for i := len(p.image) - 1; i >= 0; i-- {
		if p.image[i] != i {
			return i, true
		}
	}
	return 0, false
}

// Restricted returns the permutation acting like p on the given domain and
// as the identity everywhere else. The second return value is false if the
// domain is not closed under p, in which case no such permutation exists.
func (p Perm) Restricted(domain []int) (Perm, bool) {
	in := make(map[int]bool, len(domain))
	for _, x := range domain {
		in[x] = true
	}
	image := make([]int, len(p.image))
	for i := range image {
		image[i] = i
	}
	for _, x := range domain {
		y := p.Apply(x)
		if !in[y] && y != x {
			return Perm{}, false
		}
		if x < len(image) {
			image[x] = y
		}
	}
	return Perm{image: image}, true
}

// Cycles returns the non-trivial cycles of p in 0-indexed form. Each cycle
// starts at its smallest point and cycles are ordered by that point.
func (p Perm) Cycles() [][]int {
	var cycles [][]int
	seen := make([]bool, len(p.image))
	for i := range p.image {
		if seen[i] || p.image[i] == i {
			continue
		}
		var cycle []int
		for j := i; !seen[j]; j = p.image[j] {
			seen[j] = true
			cycle = append(cycle, j)
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}
