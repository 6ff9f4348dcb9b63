package perm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadCycleString is returned by ParseCycles for input that is not valid
// cycle notation over {1..degree}.
var ErrBadCycleString = errors.New("malformed cycle string")

// FromCycles constructs a permutation of the given degree from 0-indexed
// cycles. Points missing from every cycle are fixed. Returns ErrInvalidImage
// if a point is out of range or occurs twice.
func FromCycles(degree int, cycles [][]int) (Perm, error) {
	image := make([]int, degree)
	for i := range image {
		image[i] = i
	}
	seen := make([]bool, degree)
	for _, cycle := range cycles {
		for i, x := range cycle {
			if x < 0 || x >= degree || seen[x] {
				return Perm{}, ErrInvalidImage
			}
			seen[x] = true
			image[x] = cycle[(i+1)%len(cycle)]
		}
	}
	return Perm{image: image}, nil
}

// ParseCycles parses GAP-style cycle notation like "(1,3,5)(2,4)" into a
// permutation of the given degree. Points in the input are 1-indexed, "()"
// denotes the identity. Returns an error wrapping ErrBadCycleString on
// malformed input and ErrInvalidImage on out-of-range or repeated points.
func ParseCycles(degree int, s string) (Perm, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "()" {
		return Identity(degree), nil
	}
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return Perm{}, fmt.Errorf("%w: %q", ErrBadCycleString, s)
	}

	var cycles [][]int
	for _, part := range strings.Split(s[1:len(s)-1], ")(") {
		var cycle []int
		for _, field := range strings.Split(part, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return Perm{}, fmt.Errorf("%w: %q", ErrBadCycleString, s)
			}
			if n < 1 || n > degree {
				return Perm{}, fmt.Errorf("%w: point %d outside 1..%d", ErrInvalidImage, n, degree)
			}
			cycle = append(cycle, n-1)
		}
		cycles = append(cycles, cycle)
	}
	return FromCycles(degree, cycles)
}

// String renders p in GAP-style cycle notation acting on {1..degree}.
// The identity renders as "()".
func (p Perm) String() string {
	cycles := p.Cycles()
	if len(cycles) == 0 {
		return "()"
	}
	var b strings.Builder
	for _, cycle := range cycles {
		b.WriteByte('(')
		for i, x := range cycle {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(x + 1))
		}
		b.WriteByte(')')
	}
	return b.String()
}
