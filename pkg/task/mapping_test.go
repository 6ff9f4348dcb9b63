package task

import (
	"errors"
	"strings"
	"testing"

	"github.com/lhagemann/symred/pkg/perm"
)

func TestParseAllocationFormats(t *testing.T) {
	tests := []struct {
		input string
		want  Mapping
		fails bool
	}{
		{"3 1 4 1 5 9", Mapping{3, 1, 4, 1, 5, 9}, false},
		{"[ 3, 1, 4, 1, 5, 9 ]", Mapping{3, 1, 4, 1, 5, 9}, false},
		{"[3,1]", Mapping{3, 1}, false},
		{"0", Mapping{0}, false},
		{"", nil, true},
		{"[1, 2", nil, true},
		{"a b", nil, true},
		{"-1 2", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseAllocation(tt.input)
		if tt.fails {
			if err == nil {
				t.Errorf("ParseAllocation(%q) succeeded, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAllocation(%q): %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseAllocation(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseAllocationsBatch(t *testing.T) {
	input := "0 1 2\n[2, 1, 0]\n\n1 1 1\n"
	got, err := ParseAllocations(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("parsed %d allocations, want 3", len(got))
	}
}

func TestParseAllocationsInconsistentLengths(t *testing.T) {
	input := "0 1 2\n0 1\n"
	_, err := ParseAllocations(strings.NewReader(input))
	if !errors.Is(err, ErrInconsistentAllocations) {
		t.Fatalf("err = %v, want ErrInconsistentAllocations", err)
	}
}

func TestPermuted(t *testing.T) {
	m := Mapping{2, 0, 1, 3}
	g := perm.MustNew([]int{1, 2, 0, 3}) // 0->1, 1->2, 2->0

	got := m.Permuted(g, 0)
	if !got.Equal(Mapping{0, 1, 2, 3}) {
		t.Errorf("permuted = %v, want [0 1 2 3]", got)
	}

	// With an offset the window shifts: indices below it are fixed.
	withOffset := Mapping{0, 2, 3}.Permuted(perm.MustNew([]int{1, 0}), 2)
	if !withOffset.Equal(Mapping{0, 3, 2}) {
		t.Errorf("offset permuted = %v, want [0 3 2]", withOffset)
	}
}

func TestLessThanAvoidsMaterializing(t *testing.T) {
	m := Mapping{2, 0, 1, 3}
	g := perm.MustNew([]int{1, 2, 0, 3})

	if !m.LessThan(m, g, 0) {
		t.Error("permuted image [0 1 2 3] must be less than [2 0 1 3]")
	}
	if m.LessThan(Mapping{0, 0, 0, 0}, g, 0) {
		t.Error("permuted image must not be less than [0 0 0 0]")
	}

	// Consistency with the materialized comparison.
	if m.LessThan(m, g, 0) != m.Permuted(g, 0).Less(m) {
		t.Error("LessThan disagrees with Permuted().Less()")
	}
}

func TestMappingOrdering(t *testing.T) {
	a := Mapping{0, 1}
	b := Mapping{0, 2}
	if !a.Less(b) || b.Less(a) {
		t.Error("lexicographic order wrong")
	}
	if a.Compare(a) != 0 {
		t.Error("mapping must compare equal to itself")
	}
}

func TestKeyAndString(t *testing.T) {
	m := Mapping{3, 1, 4}
	if m.Key() != "3,1,4" {
		t.Errorf("Key = %q", m.Key())
	}
	if m.String() != "[3, 1, 4]" {
		t.Errorf("String = %q", m.String())
	}
}
