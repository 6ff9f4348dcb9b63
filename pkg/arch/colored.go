package arch

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"

	"github.com/lhagemann/symred/pkg/perm"
)

// maxTypes is the largest number of processor or channel types the colored
// reduction supports. With t+1 encoded in binary across levels, seven
// channel types fit in three levels.
const maxTypes = 7

// ColoredGraph is the input of the external canonicalization contract: a
// plain undirected vertex-colored graph (self-loops allowed). Channel
// types of the originating architecture graph have already been expanded
// into levels.
type ColoredGraph struct {
	NumVertices int
	Colors      []int    // vertex -> color
	Edges       [][2]int // undirected, endpoints in ascending order
}

// Canonicalizer computes automorphism generators of colored graphs. It is
// the seam to an external canonicalization library; the built-in
// BacktrackCanonicalizer serves as the default backend.
type Canonicalizer interface {
	// AutomorphismGenerators returns permutations of the vertex set
	// generating the color- and adjacency-preserving automorphism group.
	AutomorphismGenerators(g *ColoredGraph) ([]perm.Perm, error)
}

// coloredGraph expands the architecture graph into the leveled colored
// graph of the reduction: a channel of type t contributes an edge on level
// l exactly when bit l of t+1 is set, every vertex is linked vertically to
// its copy on the previous level, and vertices are colored by processor
// type. Colors additionally encode the level, keeping levels rigid so
// automorphisms restrict cleanly to the base level.
func (g *Graph) coloredGraph() (*ColoredGraph, error) {
	if len(g.processorTypes) > maxTypes || len(g.channelTypes) > maxTypes {
		return nil, ErrTooManyTypes
	}

	n := g.NumProcessors()
	levels := max(bits.Len(uint(len(g.channelTypes))), 1)

	colored := &ColoredGraph{NumVertices: levels * n}
	colored.Colors = make([]int, colored.NumVertices)
	for level := 0; level < levels; level++ {
		for v, pt := range g.processors {
			colored.Colors[level*n+v] = level*(maxTypes+1) + int(pt)
		}
	}

	edgeSet := make(map[[2]int]bool)
	addEdge := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		edgeSet[[2]int{a, b}] = true
	}

	for _, ch := range g.channels {
		pattern := int(ch.kind) + 1
		for level := 0; level < levels; level++ {
			if pattern&(1<<level) != 0 {
				addEdge(level*n+int(ch.from), level*n+int(ch.to))
			}
		}
	}
	for level := 1; level < levels; level++ {
		for v := 0; v < n; v++ {
			addEdge(level*n+v, (level-1)*n+v)
		}
	}

	for e := range edgeSet {
		colored.Edges = append(colored.Edges, e)
	}
	slices.SortFunc(colored.Edges, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return colored, nil
}

// restrictToBaseLevel maps automorphism generators of the leveled graph to
// permutations of the base-level vertices, deduplicating the results.
func restrictToBaseLevel(generators []perm.Perm, n int) []perm.Perm {
	var res []perm.Perm
	for _, g := range generators {
		image := make([]int, n)
		for v := 0; v < n; v++ {
			image[v] = g.Apply(v)
		}
		p, err := perm.New(image)
		if err != nil {
			continue // does not stabilize the base level, cannot happen with level colors
		}
		dup := false
		for _, q := range res {
			if q.Equal(p) {
				dup = true
				break
			}
		}
		if !dup && !p.IsIdentity() {
			res = append(res, p)
		}
	}
	return res
}

// BacktrackCanonicalizer is the built-in canonicalization backend: a
// partition-refinement seeded backtracking search enumerating all color-
// and adjacency-preserving vertex bijections. Exhaustive and exact; meant
// for the moderate graph sizes of architecture descriptions.
type BacktrackCanonicalizer struct{}

// AutomorphismGenerators enumerates every automorphism of the colored
// graph. The identity is omitted from the result.
func (BacktrackCanonicalizer) AutomorphismGenerators(g *ColoredGraph) ([]perm.Perm, error) {
	n := g.NumVertices
	adj := make([]map[int]bool, n)
	for i := range adj {
		adj[i] = make(map[int]bool)
	}
	for _, e := range g.Edges {
		adj[e[0]][e[1]] = true
		adj[e[1]][e[0]] = true
	}

	// Invariant per vertex: color, self-loop, and neighbor color counts.
	type signature struct {
		color    int
		selfLoop bool
		profile  string
	}
	sig := make([]signature, n)
	for v := 0; v < n; v++ {
		counts := make(map[int]int)
		for w := range adj[v] {
			if w != v {
				counts[g.Colors[w]]++
			}
		}
		sig[v] = signature{color: g.Colors[v], selfLoop: adj[v][v], profile: profileString(counts)}
	}

	candidates := make([][]int, n)
	for v := 0; v < n; v++ {
		for w := 0; w < n; w++ {
			if sig[v] == sig[w] {
				candidates[v] = append(candidates[v], w)
			}
		}
	}

	image := make([]int, n)
	used := make([]bool, n)
	for i := range image {
		image[i] = -1
	}

	var automorphisms []perm.Perm
	var search func(v int)
	search = func(v int) {
		if v == n {
			p, err := perm.New(slices.Clone(image))
			if err == nil && !p.IsIdentity() {
				automorphisms = append(automorphisms, p)
			}
			return
		}
		for _, w := range candidates[v] {
			if used[w] {
				continue
			}
			if !consistent(adj, image, v, w) {
				continue
			}
			image[v] = w
			used[w] = true
			search(v + 1)
			image[v] = -1
			used[w] = false
		}
	}
	search(0)
	return automorphisms, nil
}

// consistent checks that mapping v to w preserves adjacency with respect
// to all previously assigned vertices.
func consistent(adj []map[int]bool, image []int, v, w int) bool {
	if adj[v][v] != adj[w][w] {
		return false
	}
	for u := 0; u < v; u++ {
		if adj[v][u] != adj[w][image[u]] {
			return false
		}
	}
	return true
}

func profileString(counts map[int]int) string {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%d:%d;", k, counts[k])
	}
	return b.String()
}
