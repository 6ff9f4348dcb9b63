package arch

import (
	"encoding/json"
	"fmt"

	"github.com/lhagemann/symred/pkg/perm"
)

// ParseDescription decodes a JSON architecture description into a System
// tree. The three accepted root shapes are
//
//	{"component": [degree, "gen", ...]}  automorphisms given directly
//	{"cluster": [subtree, ...]}          direct-product composition
//	{"super_graph": [outer, proto]}      wreath-product composition
//
// Generator strings are GAP-style cycles over 1..degree. Anything else is
// an error wrapping ErrMalformedDescription.
func ParseDescription(data []byte) (System, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDescription, err)
	}
	if len(root) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one root key, got %d", ErrMalformedDescription, len(root))
	}

	for key, value := range root {
		switch key {
		case "component":
			return parseComponent(value)
		case "cluster":
			return parseCluster(value)
		case "super_graph":
			return parseSuperGraph(value)
		default:
			return nil, fmt.Errorf("%w: unknown key %q", ErrMalformedDescription, key)
		}
	}
	panic("unreachable")
}

func parseComponent(raw json.RawMessage) (System, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		return nil, fmt.Errorf("%w: component must be [degree, gens...]", ErrMalformedDescription)
	}

	var degree int
	if err := json.Unmarshal(fields[0], &degree); err != nil || degree < 1 {
		return nil, fmt.Errorf("%w: bad component degree", ErrMalformedDescription)
	}

	gens := perm.MustNewSet(degree)
	for _, field := range fields[1:] {
		var genStr string
		if err := json.Unmarshal(field, &genStr); err != nil {
			return nil, fmt.Errorf("%w: generator must be a cycle string", ErrMalformedDescription)
		}
		p, err := perm.ParseCycles(degree, genStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDescription, err)
		}
		if err := gens.Insert(p); err != nil {
			return nil, err
		}
	}

	group, err := perm.NewGroup(degree, gens, nil)
	if err != nil {
		return nil, err
	}
	return NewAutomorphisms(group), nil
}

func parseCluster(raw json.RawMessage) (System, error) {
	var children []json.RawMessage
	if err := json.Unmarshal(raw, &children); err != nil {
		return nil, fmt.Errorf("%w: cluster must be a list of subtrees", ErrMalformedDescription)
	}

	subsystems := make([]System, 0, len(children))
	for _, child := range children {
		sub, err := ParseDescription(child)
		if err != nil {
			return nil, err
		}
		subsystems = append(subsystems, sub)
	}
	return NewCluster(subsystems...), nil
}

func parseSuperGraph(raw json.RawMessage) (System, error) {
	var children []json.RawMessage
	if err := json.Unmarshal(raw, &children); err != nil || len(children) != 2 {
		return nil, fmt.Errorf("%w: super_graph must be [outer, proto]", ErrMalformedDescription)
	}

	outer, err := ParseDescription(children[0])
	if err != nil {
		return nil, err
	}
	proto, err := ParseDescription(children[1])
	if err != nil {
		return nil, err
	}
	return NewSuperGraph(outer, proto), nil
}
