package perm

import "slices"

// Orbit is the set {g·x : g in <S>} for a seed point x and generating set S,
// stored in BFS discovery order with a fast membership index.
type Orbit struct {
	points []int
	index  map[int]int // point -> position in points
}

// NewOrbit computes the orbit of seed under the generating set by breadth
// first search: each generator is applied to every newly discovered point.
func NewOrbit(seed int, gens *Set) *Orbit {
	o := &Orbit{index: make(map[int]int)}
	o.add(seed)
	for i := 0; i < len(o.points); i++ {
		x := o.points[i]
		for _, g := range gens.Perms() {
			if y := g.Apply(x); !o.Contains(y) {
				o.add(y)
			}
		}
	}
	return o
}

func (o *Orbit) add(x int) {
	o.index[x] = len(o.points)
	o.points = append(o.points, x)
}

// Contains reports whether x lies in the orbit.
func (o *Orbit) Contains(x int) bool {
	_, ok := o.index[x]
	return ok
}

// Len returns the orbit size.
func (o *Orbit) Len() int { return len(o.points) }

// Points returns the orbit in discovery order. The returned slice must not
// be modified.
func (o *Orbit) Points() []int { return o.points }

// Sorted returns the orbit points in ascending order.
func (o *Orbit) Sorted() []int {
	res := slices.Clone(o.points)
	slices.Sort(res)
	return res
}

// OrbitPartition is the partition of {0..n-1} into the orbits of a
// generating set.
type OrbitPartition struct {
	degree  int
	orbits  [][]int // each sorted ascending, ordered by smallest member
	indexOf []int   // point -> orbit index
}

// NewOrbitPartition partitions {0..degree-1} into orbits under gens.
func NewOrbitPartition(degree int, gens *Set) *OrbitPartition {
	p := &OrbitPartition{degree: degree, indexOf: make([]int, degree)}
	for i := range p.indexOf {
		p.indexOf[i] = -1
	}
	for x := 0; x < degree; x++ {
		if p.indexOf[x] >= 0 {
			continue
		}
		orbit := NewOrbit(x, gens).Sorted()
		for _, y := range orbit {
			p.indexOf[y] = len(p.orbits)
		}
		p.orbits = append(p.orbits, orbit)
	}
	return p
}

// Degree returns the size of the partitioned set.
func (p *OrbitPartition) Degree() int { return p.degree }

// Len returns the number of orbits.
func (p *OrbitPartition) Len() int { return len(p.orbits) }

// Orbit returns the i-th orbit, sorted ascending. Orbits are ordered by
// their smallest member. The returned slice must not be modified.
func (p *OrbitPartition) Orbit(i int) []int { return p.orbits[i] }

// OrbitOf returns the index of the orbit containing x.
func (p *OrbitPartition) OrbitOf(x int) int { return p.indexOf[x] }

// Equal reports whether both partitions split the same set into the same
// classes.
func (p *OrbitPartition) Equal(other *OrbitPartition) bool {
	if p.degree != other.degree || len(p.orbits) != len(other.orbits) {
		return false
	}
	for i := range p.orbits {
		if !slices.Equal(p.orbits[i], other.orbits[i]) {
			return false
		}
	}
	return true
}

// Refines reports whether every orbit of p is contained in some orbit of
// other, i.e. p is a (not necessarily strict) refinement of other.
func (p *OrbitPartition) Refines(other *OrbitPartition) bool {
	if p.degree != other.degree {
		return false
	}
	for _, orbit := range p.orbits {
		class := other.OrbitOf(orbit[0])
		for _, x := range orbit[1:] {
			if other.OrbitOf(x) != class {
				return false
			}
		}
	}
	return true
}
