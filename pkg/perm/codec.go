package perm

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ErrBadGroupString is returned by ParseGroup for input not matching the
// serialization format, or whose stated order contradicts the generators.
var ErrBadGroupString = errors.New("malformed group string")

// String serializes the group as
//
//	degree:<d>,order:<o>,gens:[<gen>,<gen>,...]
//
// where each generator is written in 1-indexed cycle notation. The output
// round-trips through ParseGroup.
func (g *Group) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "degree:%d,order:%s,gens:[", g.Degree(), g.Order().String())
	for i, p := range g.Generators().Perms() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.String())
	}
	b.WriteByte(']')
	return b.String()
}

// ParseGroup parses the serialization produced by Group.String and
// reconstructs the group. Cycle points are 1-indexed in the input and
// converted to the internal 0-indexed convention. The stated order is
// checked against the order computed from the generators; a mismatch is an
// error rather than a silent correction.
func ParseGroup(s string, opts *Options) (*Group, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "degree:")
	if !ok {
		return nil, fmt.Errorf("%w: missing degree", ErrBadGroupString)
	}
	degreeStr, rest, ok := strings.Cut(rest, ",order:")
	if !ok {
		return nil, fmt.Errorf("%w: missing order", ErrBadGroupString)
	}
	orderStr, gensStr, ok := strings.Cut(rest, ",gens:[")
	if !ok || !strings.HasSuffix(gensStr, "]") {
		return nil, fmt.Errorf("%w: missing generator list", ErrBadGroupString)
	}
	gensStr = strings.TrimSuffix(gensStr, "]")

	degree, err := strconv.Atoi(degreeStr)
	if err != nil || degree < 1 {
		return nil, fmt.Errorf("%w: bad degree %q", ErrBadGroupString, degreeStr)
	}
	order, ok := new(big.Int).SetString(orderStr, 10)
	if !ok || order.Sign() <= 0 {
		return nil, fmt.Errorf("%w: bad order %q", ErrBadGroupString, orderStr)
	}

	gens := MustNewSet(degree)
	for _, genStr := range splitGenerators(gensStr) {
		p, err := ParseCycles(degree, genStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadGroupString, err)
		}
		if err := gens.Insert(p); err != nil {
			return nil, err
		}
	}

	group, err := NewGroup(degree, gens, opts)
	if err != nil {
		return nil, err
	}
	if group.Order().Cmp(order) != 0 {
		return nil, fmt.Errorf("%w: stated order %s, generators yield %s",
			ErrBadGroupString, order, group.Order())
	}
	return group, nil
}

// splitGenerators splits "(1,2),(3,4)(5,6),()" into per-generator strings.
// Generators contain commas, so the split points are the commas between a
// closing and an opening parenthesis.
func splitGenerators(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var res []string
	depthStart := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && i > 0 && s[i-1] == ')' && i+1 < len(s) && s[i+1] == '(' {
			res = append(res, s[depthStart:i])
			depthStart = i + 1
		}
	}
	return append(res, s[depthStart:])
}
