package arch

import (
	"github.com/lhagemann/symred/pkg/perm"
	"github.com/lhagemann/symred/pkg/task"
)

// Automorphisms wraps a precomputed automorphism group as an architecture
// system, for descriptions that state their symmetries directly.
type Automorphisms struct {
	group *perm.Group
}

// NewAutomorphisms wraps the given group; its degree becomes the
// processor count.
func NewAutomorphisms(group *perm.Group) *Automorphisms {
	return &Automorphisms{group: group}
}

// NumProcessors returns the degree of the wrapped group.
func (a *Automorphisms) NumProcessors() int { return a.group.Degree() }

// NumChannels returns 0: a stated symmetry carries no channel structure.
func (a *Automorphisms) NumChannels() int { return 0 }

// Automorphisms returns the stored group; the options are ignored.
func (a *Automorphisms) Automorphisms(*AutomorphismOptions) (*perm.Group, error) {
	return a.group, nil
}

// Repr canonicalizes against the stored group.
func (a *Automorphisms) Repr(mapping task.Mapping, opts *ReprOptions, orbits *task.Orbits) (task.Mapping, error) {
	return reprWithGroup(a.group, mapping, opts.withDefaults(), orbits), nil
}

// ToGAP emits the stored group as a GAP Group expression.
func (a *Automorphisms) ToGAP() string { return groupToGAP(a.group) }
