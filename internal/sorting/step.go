package sorting

import "fmt"

type Kind uint8

const (
	KindCompare Kind = iota
	KindPivot
	KindSwap
	KindOverwrite
	KindSorted
)

var kindNames = [...]string{
	KindCompare:   "compare",
	KindPivot:     "pivot",
	KindSwap:      "swap",
	KindOverwrite: "overwrite",
	KindSorted:    "sorted",
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("sorting: unknown step kind %q", text)
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Step is one elementary operation of a trace. The meaning of I, J and
// Value depends on Kind:
//
//	Compare   I, J    positions inspected
//	Pivot     I, J    pivot index, lower bound of the partitioned range
//	Swap      I, J    positions exchanged
//	Overwrite I, Value position and the value written to it
//	Sorted    I       position now in its final place
type Step struct {
	Kind  Kind `json:"kind"`
	I     int  `json:"i"`
	J     int  `json:"j,omitempty"`
	Value int  `json:"value,omitempty"`
}

func Compare(i, j int) Step       { return Step{Kind: KindCompare, I: i, J: j} }
func Pivot(pivot, bound int) Step { return Step{Kind: KindPivot, I: pivot, J: bound} }
func Swap(i, j int) Step          { return Step{Kind: KindSwap, I: i, J: j} }
func Overwrite(i, v int) Step     { return Step{Kind: KindOverwrite, I: i, Value: v} }
func Sorted(i int) Step           { return Step{Kind: KindSorted, I: i} }

// Mutates reports whether applying the step changes array values.
func (s Step) Mutates() bool {
	return s.Kind == KindSwap || s.Kind == KindOverwrite
}

// ApplyTo performs the value mutation of s on a. Advisory steps are ignored.
func (s Step) ApplyTo(a Array) {
	switch s.Kind {
	case KindSwap:
		a.Swap(s.I, s.J)
	case KindOverwrite:
		a.Set(s.I, s.Value)
	}
}

func (s Step) String() string {
	switch s.Kind {
	case KindOverwrite:
		return fmt.Sprintf("overwrite(%d, %d)", s.I, s.Value)
	case KindSorted:
		return fmt.Sprintf("sorted(%d)", s.I)
	default:
		return fmt.Sprintf("%s(%d, %d)", s.Kind, s.I, s.J)
	}
}

type Trace []Step

// Apply replays every mutating step on a copy of initial and returns it.
func (t Trace) Apply(initial Array) Array {
	out := initial.Clone()
	for _, s := range t {
		s.ApplyTo(out)
	}
	return out
}

type Counts struct {
	Compares   int `json:"compares"`
	Pivots     int `json:"pivots"`
	Swaps      int `json:"swaps"`
	Overwrites int `json:"overwrites"`
	Sorted     int `json:"sorted"`
}

func (t Trace) Counts() Counts {
	var c Counts
	for _, s := range t {
		switch s.Kind {
		case KindCompare:
			c.Compares++
		case KindPivot:
			c.Pivots++
		case KindSwap:
			c.Swaps++
		case KindOverwrite:
			c.Overwrites++
		case KindSorted:
			c.Sorted++
		}
	}
	return c
}

// Offset returns a copy of t with every index shifted by base. Values
// carried by Overwrite steps are left untouched.
func (t Trace) Offset(base int) Trace {
	out := make(Trace, len(t))
	for k, s := range t {
		s.I += base
		if s.Kind != KindOverwrite && s.Kind != KindSorted {
			s.J += base
		}
		out[k] = s
	}
	return out
}
