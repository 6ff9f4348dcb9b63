package task

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Orbits registers canonical orbit representatives and assigns each a
// stable, monotonically increasing orbit index on first insertion. Lookups
// match by mapping equality only; callers canonicalize before inserting.
//
// Orbits doubles as the user-visible output stream: Each iterates the
// representatives in insertion order.
type Orbits struct {
	byKey *linkedhashmap.Map // Key() -> entry
}

type orbitEntry struct {
	index   int
	mapping Mapping
}

// NewOrbits returns an empty registry.
func NewOrbits() *Orbits {
	return &Orbits{byKey: linkedhashmap.New()}
}

// Len returns the number of registered representatives.
func (o *Orbits) Len() int { return o.byKey.Size() }

// Insert registers the mapping if it is new and returns its orbit index
// together with whether the insertion happened.
func (o *Orbits) Insert(m Mapping) (index int, isNew bool) {
	if idx, ok := o.Lookup(m); ok {
		return idx, false
	}
	idx := o.byKey.Size()
	o.byKey.Put(m.Key(), orbitEntry{index: idx, mapping: m.Clone()})
	return idx, true
}

// Lookup returns the orbit index of a mapping equal to m, if registered.
func (o *Orbits) Lookup(m Mapping) (int, bool) {
	v, ok := o.byKey.Get(m.Key())
	if !ok {
		return 0, false
	}
	return v.(orbitEntry).index, true
}

// Contains reports whether a mapping equal to m has been registered as a
// representative.
func (o *Orbits) Contains(m Mapping) bool {
	_, ok := o.Lookup(m)
	return ok
}

// Each calls fn for every representative in insertion (index) order.
// Mutating the registry during iteration invalidates the iterator.
func (o *Orbits) Each(fn func(index int, m Mapping)) {
	o.byKey.Each(func(_ any, value any) {
		e := value.(orbitEntry)
		fn(e.index, e.mapping)
	})
}
