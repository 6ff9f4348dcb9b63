package arch

import (
	"fmt"

	"github.com/lhagemann/symred/pkg/perm"
	"github.com/lhagemann/symred/pkg/task"
)

// SuperGraph composes a prototype sub-system replicated across the
// processors of an outer sub-system, interpreted as a wreath product: one
// copy of the prototype per outer processor, with the outer automorphisms
// permuting whole copies.
type SuperGraph struct {
	outer System
	proto System

	automorphisms *perm.Group
}

// NewSuperGraph composes proto replicated over the processors of outer.
func NewSuperGraph(outer, proto System) *SuperGraph {
	return &SuperGraph{outer: outer, proto: proto}
}

// NumProcessors returns the processor count of all prototype copies.
func (s *SuperGraph) NumProcessors() int {
	return s.outer.NumProcessors() * s.proto.NumProcessors()
}

// NumChannels counts the channels inside all prototype copies plus the
// outer channels connecting them.
func (s *SuperGraph) NumChannels() int {
	return s.outer.NumProcessors()*s.proto.NumChannels() + s.outer.NumChannels()
}

// Automorphisms returns the wreath product of the prototype automorphisms
// by the outer automorphisms, cached after the first call.
func (s *SuperGraph) Automorphisms(opts *AutomorphismOptions) (*perm.Group, error) {
	if s.automorphisms != nil {
		return s.automorphisms, nil
	}
	o := opts.withDefaults()

	protoAut, err := s.proto.Automorphisms(o)
	if err != nil {
		return nil, err
	}
	outerAut, err := s.outer.Automorphisms(o)
	if err != nil {
		return nil, err
	}

	s.automorphisms = perm.WreathProduct(protoAut, outerAut, o.BSGS)
	return s.automorphisms, nil
}

// Repr canonicalizes against the wreath-product automorphisms.
func (s *SuperGraph) Repr(mapping task.Mapping, opts *ReprOptions, orbits *task.Orbits) (task.Mapping, error) {
	o := opts.withDefaults()
	group, err := s.Automorphisms(o.Automorphisms)
	if err != nil {
		return nil, err
	}
	return reprWithGroup(group, mapping, o, orbits), nil
}

// ToGAP emits WreathProduct(proto, outer).
func (s *SuperGraph) ToGAP() string {
	return fmt.Sprintf("WreathProduct(%s,%s)", s.proto.ToGAP(), s.outer.ToGAP())
}
