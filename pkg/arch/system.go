// Package arch models hierarchical processor/interconnect architectures
// and derives their automorphism groups for task-mapping symmetry
// reduction.
//
// An architecture is a tree of System nodes: raw graphs with typed
// processors and channels (Graph), direct-product compositions (Cluster),
// wreath-product compositions (SuperGraph) and precomputed automorphism
// groups (Automorphisms). Each node exposes its automorphism group as a
// perm.Group and canonicalizes task mappings into orbit representatives.
package arch

import (
	"errors"

	"github.com/lhagemann/symred/pkg/observability"
	"github.com/lhagemann/symred/pkg/perm"
	"github.com/lhagemann/symred/pkg/task"
)

var (
	// ErrEmptyCluster is returned when automorphisms of a Cluster without
	// sub-systems are requested.
	ErrEmptyCluster = errors.New("cluster contains no subsystems")

	// ErrTooManyTypes is returned by the colored-graph reduction when more
	// than seven processor or channel types are present, a hard limit
	// inherited from the level encoding.
	ErrTooManyTypes = errors.New("more than seven processor or channel types")

	// ErrMalformedDescription is returned when a JSON architecture
	// description has an unknown shape.
	ErrMalformedDescription = errors.New("malformed architecture description")
)

// System is a node in an architecture composition tree.
type System interface {
	// NumProcessors returns the number of processors of the (sub-)system.
	NumProcessors() int

	// NumChannels returns the number of channels of the (sub-)system.
	NumChannels() int

	// Automorphisms returns the automorphism group of the system. The
	// result is computed once per instance and cached; subsequent calls
	// ignore the options.
	Automorphisms(opts *AutomorphismOptions) (*perm.Group, error)

	// Repr maps a task allocation to its canonical orbit representative
	// under the automorphism group. When orbits is non-nil the
	// representative is registered there, and known representatives allow
	// strategies to exit early.
	Repr(mapping task.Mapping, opts *ReprOptions, orbits *task.Orbits) (task.Mapping, error)

	// ToGAP emits a GAP expression constructing the automorphism group,
	// suitable for cross-checking.
	ToGAP() string
}

// AutomorphismOptions configure automorphism group derivation.
type AutomorphismOptions struct {
	// BSGS options forwarded to permutation group construction.
	BSGS *perm.Options

	// Canonicalizer overrides the colored-graph canonicalization backend
	// used for raw graphs. Nil selects the built-in backtracking search.
	Canonicalizer Canonicalizer
}

func (o *AutomorphismOptions) withDefaults() *AutomorphismOptions {
	if o == nil {
		return &AutomorphismOptions{}
	}
	return o
}

// ReprMethod selects the orbit-representative strategy.
type ReprMethod int

const (
	// ReprIterate enumerates every group element. Exact and slow.
	ReprIterate ReprMethod = iota

	// ReprLocalSearch descends along generators to a fixed point.
	// Approximate: the result may be a local rather than global minimum.
	ReprLocalSearch

	// ReprOrbits walks the orbit breadth-first with memoization. Exact;
	// memory grows with the orbit.
	ReprOrbits
)

// String returns the flag spelling of the method.
func (m ReprMethod) String() string {
	switch m {
	case ReprLocalSearch:
		return "local-search"
	case ReprOrbits:
		return "orbits"
	}
	return "iterate"
}

// ReprOptions configure orbit-representative computation.
type ReprOptions struct {
	// Method selects the strategy; the zero value is ReprIterate.
	Method ReprMethod

	// Offset shifts the window of processor indices the automorphisms act
	// on. Used by composite systems to address sub-system slices.
	Offset int

	// Automorphisms options are forwarded when the group still needs to
	// be derived.
	Automorphisms *AutomorphismOptions
}

func (o *ReprOptions) withDefaults() ReprOptions {
	if o == nil {
		return ReprOptions{}
	}
	return *o
}

// reprWithGroup runs the configured strategy against an already derived
// automorphism group and registers the result.
func reprWithGroup(group *perm.Group, mapping task.Mapping, opts ReprOptions, orbits *task.Orbits) task.Mapping {
	observability.Repr().OnReprStart(opts.Method.String(), len(mapping))

	var representative task.Mapping
	switch opts.Method {
	case ReprLocalSearch:
		representative = minElemLocalSearch(group, mapping, opts.Offset)
	case ReprOrbits:
		representative = minElemOrbits(group, mapping, opts.Offset, orbits)
	default:
		representative = minElemIterate(group, mapping, opts.Offset, orbits)
	}

	if orbits != nil {
		orbits.Insert(representative)
	}
	observability.Repr().OnReprComplete(opts.Method.String(), len(mapping))
	return representative
}
