package perm

import (
	"fmt"
	"slices"
	"strings"
)

// BlockSystem is a G-invariant partition of {0..n-1}: for every group
// element g and block B, the image g·B is again a block. Blocks are stored
// sorted ascending and ordered by their smallest member.
type BlockSystem struct {
	degree  int
	blocks  [][]int
	classOf []int // point -> block index
}

// NewBlockSystem builds a block system from explicit blocks, which must
// partition {0..degree-1}.
func NewBlockSystem(degree int, blocks [][]int) (*BlockSystem, error) {
	bs := &BlockSystem{degree: degree, classOf: make([]int, degree)}
	for i := range bs.classOf {
		bs.classOf[i] = -1
	}
	for _, block := range blocks {
		sorted := slices.Clone(block)
		slices.Sort(sorted)
		for _, x := range sorted {
			if x < 0 || x >= degree || bs.classOf[x] >= 0 {
				return nil, fmt.Errorf("blocks do not partition 0..%d", degree-1)
			}
			bs.classOf[x] = len(bs.blocks)
		}
		bs.blocks = append(bs.blocks, sorted)
	}
	for x, c := range bs.classOf {
		if c < 0 {
			return nil, fmt.Errorf("point %d not covered by any block", x)
		}
	}
	slices.SortFunc(bs.blocks, func(a, b []int) int { return a[0] - b[0] })
	for i, block := range bs.blocks {
		for _, x := range block {
			bs.classOf[x] = i
		}
	}
	return bs, nil
}

// BlockSystemFromClasses builds a block system from a class index per
// point.
func BlockSystemFromClasses(classes []int) *BlockSystem {
	byClass := make(map[int][]int)
	for x, c := range classes {
		byClass[c] = append(byClass[c], x)
	}
	blocks := make([][]int, 0, len(byClass))
	for _, block := range byClass {
		blocks = append(blocks, block)
	}
	bs, err := NewBlockSystem(len(classes), blocks)
	if err != nil {
		panic(err) // classes always partition by construction
	}
	return bs
}

// Degree returns the size of the partitioned set.
func (bs *BlockSystem) Degree() int { return bs.degree }

// Size returns the number of blocks.
func (bs *BlockSystem) Size() int { return len(bs.blocks) }

// Block returns the i-th block, sorted ascending. The returned slice must
// not be modified.
func (bs *BlockSystem) Block(i int) []int { return bs.blocks[i] }

// BlockOf returns the index of the block containing x.
func (bs *BlockSystem) BlockOf(x int) int { return bs.classOf[x] }

// Trivial reports whether the system is one of the two trivial partitions:
// a single block, or all singleton blocks.
func (bs *BlockSystem) Trivial() bool {
	return len(bs.blocks) == 1 || len(bs.blocks) == bs.degree
}

// Equal reports whether both systems have identical blocks.
func (bs *BlockSystem) Equal(other *BlockSystem) bool {
	if bs.degree != other.degree || len(bs.blocks) != len(other.blocks) {
		return false
	}
	for i := range bs.blocks {
		if !slices.Equal(bs.blocks[i], other.blocks[i]) {
			return false
		}
	}
	return true
}

// String renders the system as {{0,4},{1,5},...}.
func (bs *BlockSystem) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, block := range bs.blocks {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('{')
		for j, x := range block {
			if j > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", x)
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.String()
}

// IsBlock reports whether block is a block of the group generated by gens:
// every generator must map it either onto itself or onto a disjoint set.
func IsBlock(gens *Set, block []int) bool {
	in := make(map[int]bool, len(block))
	for _, x := range block {
		in[x] = true
	}
	for _, g := range gens.Perms() {
		inside, outside := 0, 0
		for _, x := range block {
			if in[g.Apply(x)] {
				inside++
			} else {
				outside++
			}
		}
		if inside != 0 && outside != 0 {
			return false
		}
	}
	return true
}

// FromBlock returns the block system consisting of the orbit of block
// under the set-wise action of the group generated by gens. The block must
// actually be a block and its orbit must cover the domain.
func FromBlock(gens *Set, block []int) (*BlockSystem, error) {
	if !IsBlock(gens, block) {
		return nil, fmt.Errorf("%v is not a block", block)
	}

	key := func(b []int) string {
		parts := make([]string, len(b))
		for i, x := range b {
			parts[i] = fmt.Sprint(x)
		}
		return strings.Join(parts, ",")
	}

	start := slices.Clone(block)
	slices.Sort(start)
	blocks := [][]int{start}
	seen := map[string]bool{key(start): true}

	for i := 0; i < len(blocks); i++ {
		for _, g := range gens.Perms() {
			image := make([]int, len(blocks[i]))
			for j, x := range blocks[i] {
				image[j] = g.Apply(x)
			}
			slices.Sort(image)
			if k := key(image); !seen[k] {
				seen[k] = true
				blocks = append(blocks, image)
			}
		}
	}
	return NewBlockSystem(gens.Degree(), blocks)
}

// MinimalBlockSystem returns the finest block system of the group
// generated by gens in which all points of initial lie in a common block,
// computed by iterative union-find merging driven by the generators.
func MinimalBlockSystem(gens *Set, initial []int) *BlockSystem {
	degree := gens.Degree()
	parent := make([]int, degree)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) (int, int) { // returns (kept, absorbed)
		ra, rb := find(a), find(b)
		if ra == rb {
			return ra, ra
		}
		parent[rb] = ra
		return ra, rb
	}

	var queue []int
	for _, x := range initial[1:] {
		union(initial[0], x)
		queue = append(queue, x)
	}

	for len(queue) > 0 {
		gamma := queue[0]
		queue = queue[1:]
		delta := find(gamma)
		for _, g := range gens.Perms() {
			a, b := g.Apply(gamma), g.Apply(delta)
			if find(a) != find(b) {
				_, absorbed := union(a, b)
				queue = append(queue, absorbed)
			}
		}
	}

	classes := make([]int, degree)
	for x := range classes {
		classes[x] = find(x)
	}
	return BlockSystemFromClasses(classes)
}

// NonTrivialBlockSystems returns the distinct non-trivial block systems
// obtained by seeding MinimalBlockSystem with {p, x} for the smallest moved
// point p and every other point x in its orbit. A block system that is not
// the minimal one for any such pair (one coarser than another system found)
// is not listed.
func NonTrivialBlockSystems(g *Group) []*BlockSystem {
	p0, ok := g.SmallestMoved()
	if !ok {
		return nil
	}
	gens := g.Generators()

	var res []*BlockSystem
	for _, x := range NewOrbit(p0, gens).Sorted() {
		if x == p0 {
			continue
		}
		bs := MinimalBlockSystem(gens, []int{p0, x})
		if bs.Trivial() {
			continue
		}
		dup := false
		for _, known := range res {
			if known.Equal(bs) {
				dup = true
				break
			}
		}
		if !dup {
			res = append(res, bs)
		}
	}
	return res
}

// BlockPermuter returns the induced permutation group on the blocks of bs,
// generated by the block images of gens.
func (bs *BlockSystem) BlockPermuter(gens *Set, opts *Options) (*Group, error) {
	induced := MustNewSet(len(bs.blocks))
	for _, g := range gens.Perms() {
		image := make([]int, len(bs.blocks))
		for i, block := range bs.blocks {
			image[i] = bs.classOf[g.Apply(block[0])]
		}
		p, err := New(image)
		if err != nil {
			return nil, fmt.Errorf("generator does not permute blocks: %w", err)
		}
		if err := induced.Insert(p); err != nil {
			return nil, err
		}
	}
	return NewGroup(len(bs.blocks), induced, opts)
}
