package arch

import (
	"errors"
	"math/big"
	"testing"
)

func TestParseComponent(t *testing.T) {
	system, err := ParseDescription([]byte(`{"component": [3, "(1,2)", "(1,2,3)"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if system.NumProcessors() != 3 {
		t.Errorf("NumProcessors = %d, want 3", system.NumProcessors())
	}

	group, err := system.Automorphisms(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := group.Order(); got.Cmp(big.NewInt(6)) != 0 {
		t.Errorf("order = %s, want 6", got)
	}
}

func TestParseCluster(t *testing.T) {
	data := []byte(`{"cluster": [
		{"component": [3, "(1,2)", "(1,2,3)"]},
		{"component": [2, "(1,2)"]}
	]}`)
	system, err := ParseDescription(data)
	if err != nil {
		t.Fatal(err)
	}

	group, err := system.Automorphisms(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := group.Order(); got.Cmp(big.NewInt(12)) != 0 {
		t.Errorf("order = %s, want 12", got)
	}
}

func TestParseSuperGraph(t *testing.T) {
	data := []byte(`{"super_graph": [
		{"component": [2, "(1,2)"]},
		{"component": [3, "(1,2)", "(1,2,3)"]}
	]}`)
	system, err := ParseDescription(data)
	if err != nil {
		t.Fatal(err)
	}
	if system.NumProcessors() != 6 {
		t.Errorf("NumProcessors = %d, want 6", system.NumProcessors())
	}

	group, err := system.Automorphisms(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := group.Order(); got.Cmp(big.NewInt(72)) != 0 {
		t.Errorf("order = %s, want 72", got)
	}
}

func TestParseMalformedDescriptions(t *testing.T) {
	inputs := []string{
		`[]`,
		`{}`,
		`{"component": [3], "cluster": []}`,
		`{"towers": []}`,
		`{"component": []}`,
		`{"component": ["x"]}`,
		`{"component": [3, 5]}`,
		`{"component": [3, "(1,4)"]}`,
		`{"super_graph": [{"component": [2, "(1,2)"]}]}`,
	}
	for _, input := range inputs {
		if _, err := ParseDescription([]byte(input)); !errors.Is(err, ErrMalformedDescription) {
			t.Errorf("ParseDescription(%s) = %v, want ErrMalformedDescription", input, err)
		}
	}
}
