package arch

import (
	"github.com/lhagemann/symred/pkg/observability"
	"github.com/lhagemann/symred/pkg/perm"
	"github.com/lhagemann/symred/pkg/task"
)

// isRepr reports whether the mapping is already registered as a canonical
// representative, allowing strategies to exit early.
func isRepr(m task.Mapping, orbits *task.Orbits) bool {
	if orbits == nil {
		return false
	}
	if orbits.Contains(m) {
		observability.Repr().OnOrbitCacheHit(len(m))
		return true
	}
	return false
}

// minElemIterate enumerates every group element and keeps the smallest
// permuted image of tasks. Exact.
func minElemIterate(group *perm.Group, tasks task.Mapping, offset int, orbits *task.Orbits) task.Mapping {
	representative := tasks.Clone()

	it := group.Elements()
	for element, ok := it.Next(); ok; element, ok = it.Next() {
		if tasks.LessThan(representative, element, offset) {
			representative = tasks.Permuted(element, offset)
			if isRepr(representative, orbits) {
				return representative
			}
		}
	}
	return representative
}

// minElemLocalSearch repeatedly applies any strong generator that shrinks
// the mapping until none does. Approximate: the fixed point may be a local
// minimum of the orbit.
func minElemLocalSearch(group *perm.Group, tasks task.Mapping, offset int) task.Mapping {
	representative := tasks.Clone()

	for stationary := false; !stationary; {
		stationary = true
		for _, generator := range group.Generators().Perms() {
			if representative.LessThan(representative, generator, offset) {
				representative = representative.Permuted(generator, offset)
				stationary = false
			}
		}
	}
	return representative
}

// minElemOrbits walks the orbit of tasks under the strong generators
// breadth-first, tracking the smallest element seen. Exact; the processed
// set is the memory bottleneck.
func minElemOrbits(group *perm.Group, tasks task.Mapping, offset int, orbits *task.Orbits) task.Mapping {
	representative := tasks.Clone()

	processed := map[string]bool{}
	queue := []task.Mapping{tasks}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		processed[current.Key()] = true

		if current.Less(representative) {
			representative = current
		}

		for _, generator := range group.Generators().Perms() {
			next := current.Permuted(generator, offset)
			if isRepr(next, orbits) {
				return next
			}
			if !processed[next.Key()] {
				processed[next.Key()] = true
				queue = append(queue, next)
			}
		}
	}
	return representative
}
