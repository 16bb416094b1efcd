package sorting

import (
	"errors"
	"testing"
)

func TestArray_IsSorted(t *testing.T) {
	tests := []struct {
		name  string
		arr   Array
		dir   Direction
		valid bool
	}{
		{"empty", Array{}, Ascending, true},
		{"single", Array{7}, Descending, true},
		{"ascending", Array{1, 2, 2, 3}, Ascending, true},
		{"ascending as desc", Array{1, 2, 3}, Descending, false},
		{"descending", Array{9, 4, 4, 0}, Descending, true},
		{"unordered", Array{3, 1, 2}, Ascending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arr.IsSorted(tt.dir); got != tt.valid {
				t.Errorf("IsSorted(%s) = %v, want %v", tt.dir, got, tt.valid)
			}
		})
	}
}

func TestArray_SameMultiset(t *testing.T) {
	a := Array{4, 1, 4, 2}
	if !a.SameMultiset(Array{1, 2, 4, 4}) {
		t.Error("expected permutation to share multiset")
	}
	if a.SameMultiset(Array{1, 2, 2, 4}) {
		t.Error("different multiplicities must not match")
	}
	if a.SameMultiset(Array{1, 2, 4}) {
		t.Error("different lengths must not match")
	}
}

func TestArray_Clone(t *testing.T) {
	src := Array{1, 2, 3}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestArray_SwapOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-range swap")
		}
	}()
	Array{1, 2}.Swap(0, 2)
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"asc": Ascending, "ASC": Ascending, "": Ascending,
		"desc": Descending, "descending": Descending,
	} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("expected ErrUnknownDirection, got %v", err)
	}
}

func TestTrace_ApplyAndCounts(t *testing.T) {
	trace := Trace{
		Compare(0, 1),
		Swap(0, 1),
		Pivot(2, 0),
		Overwrite(2, 1),
		Sorted(0),
	}
	initial := Array{5, 3, 9}
	out := trace.Apply(initial)

	want := Array{3, 5, 1}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("Apply = %v, want %v", out, want)
		}
	}
	if initial[0] != 5 {
		t.Error("Apply mutated the initial array")
	}

	c := trace.Counts()
	if c.Compares != 1 || c.Swaps != 1 || c.Pivots != 1 || c.Overwrites != 1 || c.Sorted != 1 {
		t.Errorf("unexpected counts: %+v", c)
	}
}

func TestTrace_Offset(t *testing.T) {
	tr := Trace{Compare(0, 1), Overwrite(1, 42), Sorted(0)}.Offset(32)
	if tr[0] != Compare(32, 33) {
		t.Errorf("compare offset: got %v", tr[0])
	}
	if tr[1] != Overwrite(33, 42) {
		t.Errorf("overwrite offset must keep value: got %v", tr[1])
	}
	if tr[2] != Sorted(32) {
		t.Errorf("sorted offset: got %v", tr[2])
	}
}

func TestStep_String(t *testing.T) {
	if got := Overwrite(3, 17).String(); got != "overwrite(3, 17)" {
		t.Errorf("got %q", got)
	}
	if got := Compare(0, 1).String(); got != "compare(0, 1)" {
		t.Errorf("got %q", got)
	}
}

func TestKind_TextRoundTrip(t *testing.T) {
	for k := KindCompare; k <= KindSorted; k++ {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("marshal %v: %v", k, err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil || back != k {
			t.Errorf("round trip %v: got %v, %v", k, back, err)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("shuffle")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
