// Package task defines task allocations (mappings of tasks to processors)
// and the registry of canonical orbit representatives.
package task

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/lhagemann/symred/pkg/perm"
)

var (
	// ErrInconsistentAllocations is returned by ParseAllocations when the
	// allocations of one batch do not all have the same length.
	ErrInconsistentAllocations = errors.New("allocations of inconsistent length")

	// ErrBadAllocation is returned for input lines that are neither
	// whitespace-separated indices nor a bracketed index list.
	ErrBadAllocation = errors.New("malformed allocation")
)

// Mapping assigns one processor index to each task: element i is the
// processor running task i. Ordered comparison is lexicographic.
type Mapping []int

// Clone returns a copy of the mapping.
func (m Mapping) Clone() Mapping { return slices.Clone(m) }

// Equal reports elementwise equality.
func (m Mapping) Equal(other Mapping) bool { return slices.Equal(m, other) }

// Compare orders mappings lexicographically, returning -1, 0 or 1.
func (m Mapping) Compare(other Mapping) int { return slices.Compare(m, other) }

// Less reports whether m precedes other lexicographically.
func (m Mapping) Less(other Mapping) bool { return m.Compare(other) < 0 }

// permutedValue applies g to a single processor index. The permutation
// acts on the window [offset, offset+deg(g)); indices outside it are kept.
func permutedValue(g perm.Perm, offset, v int) int {
	if v >= offset && v < offset+g.Degree() {
		return g.Apply(v-offset) + offset
	}
	return v
}

// Permuted returns the mapping with every processor index acted on by g,
// shifted into the window starting at offset.
func (m Mapping) Permuted(g perm.Perm, offset int) Mapping {
	res := make(Mapping, len(m))
	for i, v := range m {
		res[i] = permutedValue(g, offset, v)
	}
	return res
}

// LessThan reports whether m permuted by g (within the window starting at
// offset) precedes other lexicographically, without materializing the
// permuted mapping.
func (m Mapping) LessThan(other Mapping, g perm.Perm, offset int) bool {
	for i, v := range m {
		pv := permutedValue(g, offset, v)
		if i >= len(other) {
			return false
		}
		if pv != other[i] {
			return pv < other[i]
		}
	}
	return len(m) < len(other)
}

// Key returns a canonical string form usable as a map key.
func (m Mapping) Key() string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// String renders the mapping as a bracketed index list.
func (m Mapping) String() string {
	return "[" + strings.Join(strings.Split(m.Key(), ","), ", ") + "]"
}

// ParseAllocation parses a single task allocation, either as
// whitespace-separated indices ("3 1 4 1") or as a bracketed
// comma-separated list ("[ 3, 1, 4, 1 ]").
func ParseAllocation(line string) (Mapping, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("%w: empty line", ErrBadAllocation)
	}

	var fields []string
	if strings.HasPrefix(line, "[") {
		if !strings.HasSuffix(line, "]") {
			return nil, fmt.Errorf("%w: %q", ErrBadAllocation, line)
		}
		fields = strings.Split(line[1:len(line)-1], ",")
	} else {
		fields = strings.Fields(line)
	}

	res := make(Mapping, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadAllocation, line)
		}
		res = append(res, v)
	}
	return res, nil
}

// ParseAllocations reads one allocation per line. All allocations of a
// batch must have equal length; empty lines are skipped.
func ParseAllocations(r io.Reader) ([]Mapping, error) {
	var res []Mapping
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		m, err := ParseAllocation(line)
		if err != nil {
			return nil, err
		}
		if len(res) > 0 && len(m) != len(res[0]) {
			return nil, fmt.Errorf("%w: got lengths %d and %d",
				ErrInconsistentAllocations, len(res[0]), len(m))
		}
		res = append(res, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
