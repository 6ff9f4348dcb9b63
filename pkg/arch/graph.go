package arch

import (
	"strings"

	"github.com/lhagemann/symred/pkg/observability"
	"github.com/lhagemann/symred/pkg/perm"
	"github.com/lhagemann/symred/pkg/task"
)

// ProcessorType identifies a registered processor type of a Graph.
type ProcessorType int

// ChannelType identifies a registered channel type of a Graph.
type ChannelType int

// Processor identifies a processor vertex of a Graph.
type Processor int

type channel struct {
	from, to Processor
	kind     ChannelType
}

// Graph is a raw architecture graph: processors are typed vertices and
// channels are typed undirected edges (self-channels model processor-local
// resources such as caches). Its automorphism group is derived by
// reduction to a colored-graph canonicalization problem.
//
// The zero value is not usable, call NewGraph.
type Graph struct {
	processorTypes []string
	channelTypes   []string
	processors     []ProcessorType // processor -> type
	channels       []channel

	automorphisms *perm.Group
}

// NewGraph returns an empty architecture graph.
func NewGraph() *Graph { return &Graph{} }

// AddProcessorType registers a processor type with a display label.
func (g *Graph) AddProcessorType(label string) ProcessorType {
	g.processorTypes = append(g.processorTypes, label)
	return ProcessorType(len(g.processorTypes) - 1)
}

// AddChannelType registers a channel type with a display label.
func (g *Graph) AddChannelType(label string) ChannelType {
	g.channelTypes = append(g.channelTypes, label)
	return ChannelType(len(g.channelTypes) - 1)
}

// AddProcessor adds a processor of the given type and returns its index.
func (g *Graph) AddProcessor(pt ProcessorType) Processor {
	g.processors = append(g.processors, pt)
	return Processor(len(g.processors) - 1)
}

// AddChannel adds a channel of the given type between two processors.
// from == to models a processor-local channel.
func (g *Graph) AddChannel(from, to Processor, ct ChannelType) {
	g.channels = append(g.channels, channel{from: from, to: to, kind: ct})
}

// NumProcessors returns the number of processors.
func (g *Graph) NumProcessors() int { return len(g.processors) }

// NumChannels returns the number of channels added.
func (g *Graph) NumChannels() int { return len(g.channels) }

// Automorphisms derives the automorphism group through the colored-graph
// reduction. The group is cached after the first call.
func (g *Graph) Automorphisms(opts *AutomorphismOptions) (*perm.Group, error) {
	if g.automorphisms != nil {
		return g.automorphisms, nil
	}
	o := opts.withDefaults()

	colored, err := g.coloredGraph()
	if err != nil {
		return nil, err
	}

	canonicalizer := o.Canonicalizer
	if canonicalizer == nil {
		canonicalizer = BacktrackCanonicalizer{}
	}

	observability.Group().OnAutomorphismSearchStart(g.NumProcessors(), g.NumChannels())
	generators, err := canonicalizer.AutomorphismGenerators(colored)
	if err != nil {
		return nil, err
	}

	gens := perm.MustNewSet(g.NumProcessors())
	for _, p := range restrictToBaseLevel(generators, g.NumProcessors()) {
		if err := gens.Insert(p); err != nil {
			return nil, err
		}
	}

	group, err := perm.NewGroup(g.NumProcessors(), gens, o.BSGS)
	if err != nil {
		return nil, err
	}
	observability.Group().OnAutomorphismSearchComplete(g.NumProcessors(), group.Order().String())

	g.automorphisms = group
	return group, nil
}

// Repr canonicalizes a task mapping against the graph's automorphisms.
func (g *Graph) Repr(mapping task.Mapping, opts *ReprOptions, orbits *task.Orbits) (task.Mapping, error) {
	o := opts.withDefaults()
	group, err := g.Automorphisms(o.Automorphisms)
	if err != nil {
		return nil, err
	}
	return reprWithGroup(group, mapping, o, orbits), nil
}

// ToGAP emits the automorphism group as a GAP Group expression. When the
// group cannot be derived the identity group "Group(())" is emitted.
func (g *Graph) ToGAP() string {
	group, err := g.Automorphisms(nil)
	if err != nil {
		return "Group(())"
	}
	return groupToGAP(group)
}

func groupToGAP(group *perm.Group) string {
	gens := group.Generators()
	if gens.Len() == 0 {
		return "Group(())"
	}
	var b strings.Builder
	b.WriteString("Group(")
	for i, p := range gens.Perms() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}
