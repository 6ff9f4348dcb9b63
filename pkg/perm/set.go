package perm

import "slices"

// Set is an ordered sequence of permutations sharing a common degree,
// typically a generating set. Duplicates are allowed; Unique removes them.
// The zero value is not usable, call NewSet.
type Set struct {
	degree int
	perms  []Perm
}

// NewSet creates a set of permutations of the given degree holding perms,
// inserted as by Insert.
func NewSet(degree int, perms ...Perm) (*Set, error) {
	s := &Set{degree: degree}
	for _, p := range perms {
		if err := s.Insert(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustNewSet is like NewSet but panics on a degree mismatch.
func MustNewSet(degree int, perms ...Perm) *Set {
	s, err := NewSet(degree, perms...)
	if err != nil {
		panic(err)
	}
	return s
}

// Degree returns the common degree of all member permutations.
func (s *Set) Degree() int { return s.degree }

// Len returns the number of member permutations.
func (s *Set) Len() int { return len(s.perms) }

// At returns the i-th member in insertion order.
func (s *Set) At(i int) Perm { return s.perms[i] }

// Perms returns the members in insertion order. The returned slice must not
// be modified.
func (s *Set) Perms() []Perm { return s.perms }

// Insert appends p. Permutations of smaller degree are identity-extended;
// a larger degree is a DegreeMismatch error.
func (s *Set) Insert(p Perm) error {
	if p.Degree() > s.degree {
		return ErrDegreeMismatch
	}
	s.perms = append(s.perms, p.Extended(s.degree))
	return nil
}

// Union appends all members of other, identity-extending as needed.
func (s *Set) Union(other *Set) error {
	for _, p := range other.perms {
		if err := s.Insert(p); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether an equal permutation is already a member.
func (s *Set) Contains(p Perm) bool {
	for _, q := range s.perms {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

// Unique returns a copy with duplicate members removed, preserving the
// first occurrence order.
func (s *Set) Unique() *Set {
	res := &Set{degree: s.degree}
	for _, p := range s.perms {
		if !res.Contains(p) {
			res.perms = append(res.perms, p)
		}
	}
	return res
}

// Clone returns a shallow copy (permutations are immutable).
func (s *Set) Clone() *Set {
	return &Set{degree: s.degree, perms: slices.Clone(s.perms)}
}

// NonTrivial returns a copy with all identity members removed.
func (s *Set) NonTrivial() *Set {
	res := &Set{degree: s.degree}
	for _, p := range s.perms {
		if !p.IsIdentity() {
			res.perms = append(res.perms, p)
		}
	}
	return res
}

// SmallestMoved returns the smallest point moved by any member, or false
// if every member is the identity.
func (s *Set) SmallestMoved() (int, bool) {
	best, ok := 0, false
	for _, p := range s.perms {
		if m, moved := p.SmallestMoved(); moved && (!ok || m < best) {
			best, ok = m, true
		}
	}
	return best, ok
}

// LargestMoved returns the largest point moved by any member, or false if
// every member is the identity.
func (s *Set) LargestMoved() (int, bool) {
	best, ok := 0, false
	for _, p := range s.perms {
		if m, moved := p.LargestMoved(); moved && (!ok || m > best) {
			best, ok = m, true
		}
	}
	return best, ok
}

// Support returns the sorted union of the supports of all members.
func (s *Set) Support() []int {
	moved := make(map[int]bool)
	for _, p := range s.perms {
		for _, x := range p.Support() {
			moved[x] = true
		}
	}
	res := make([]int, 0, len(moved))
	for x := range moved {
		res = append(res, x)
	}
	slices.Sort(res)
	return res
}

// Shifted returns the set with every member shifted by k (see Perm.Shifted).
func (s *Set) Shifted(k int) *Set {
	res := &Set{degree: s.degree + k}
	for _, p := range s.perms {
		res.perms = append(res.perms, p.Shifted(k))
	}
	return res
}

// Extended returns the set with every member identity-extended to degree n.
// If n is smaller than the current degree the set is returned unchanged.
func (s *Set) Extended(n int) *Set {
	if n <= s.degree {
		return s
	}
	res := &Set{degree: n}
	for _, p := range s.perms {
		res.perms = append(res.perms, p.Extended(n))
	}
	return res
}
