package arch

import (
	"strings"

	"github.com/lhagemann/symred/pkg/perm"
	"github.com/lhagemann/symred/pkg/task"
)

// Cluster composes an ordered list of sub-systems as a direct product:
// the sub-systems are independent, and processor indices of the i-th
// sub-system follow those of all earlier ones.
type Cluster struct {
	subsystems []System

	automorphisms *perm.Group
}

// NewCluster composes the given sub-systems.
func NewCluster(subsystems ...System) *Cluster {
	return &Cluster{subsystems: subsystems}
}

// NumSubsystems returns the number of composed sub-systems.
func (c *Cluster) NumSubsystems() int { return len(c.subsystems) }

// NumProcessors returns the total processor count of all sub-systems.
func (c *Cluster) NumProcessors() int {
	res := 0
	for _, sub := range c.subsystems {
		res += sub.NumProcessors()
	}
	return res
}

// NumChannels returns the total channel count of all sub-systems.
func (c *Cluster) NumChannels() int {
	res := 0
	for _, sub := range c.subsystems {
		res += sub.NumChannels()
	}
	return res
}

// Automorphisms returns the direct product of the sub-systems'
// automorphism groups, cached after the first call. An empty cluster is
// an ErrEmptyCluster error.
func (c *Cluster) Automorphisms(opts *AutomorphismOptions) (*perm.Group, error) {
	if c.automorphisms != nil {
		return c.automorphisms, nil
	}
	if len(c.subsystems) == 0 {
		return nil, ErrEmptyCluster
	}
	o := opts.withDefaults()

	factors := make([]*perm.Group, len(c.subsystems))
	for i, sub := range c.subsystems {
		group, err := sub.Automorphisms(o)
		if err != nil {
			return nil, err
		}
		factors[i] = group
	}

	c.automorphisms = perm.DirectProduct(factors, o.BSGS)
	return c.automorphisms, nil
}

// Repr canonicalizes structurally: each sub-system canonicalizes its own
// slice of the processor index space, left to right with a running offset.
func (c *Cluster) Repr(mapping task.Mapping, opts *ReprOptions, orbits *task.Orbits) (task.Mapping, error) {
	if len(c.subsystems) == 0 {
		return nil, ErrEmptyCluster
	}
	o := opts.withDefaults()

	current := mapping
	for _, sub := range c.subsystems {
		next, err := sub.Repr(current, &o, nil)
		if err != nil {
			return nil, err
		}
		current = next
		o.Offset += sub.NumProcessors()
	}

	if orbits != nil {
		orbits.Insert(current)
	}
	return current, nil
}

// ToGAP emits DirectProduct(...) over the sub-systems.
func (c *Cluster) ToGAP() string {
	var b strings.Builder
	b.WriteString("DirectProduct(")
	for i, sub := range c.subsystems {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(sub.ToGAP())
	}
	b.WriteByte(')')
	return b.String()
}
