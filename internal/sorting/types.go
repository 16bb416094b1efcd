package sorting

import (
	"fmt"
	"strings"
)

type Array []int

func (a Array) Clone() Array {
	c := make(Array, len(a))
	copy(c, a)
	return c
}

func (a Array) Swap(i, j int) {
	a.check(i)
	a.check(j)
	a[i], a[j] = a[j], a[i]
}

func (a Array) Set(i, v int) {
	a.check(i)
	a[i] = v
}

// IsSorted reports whether every adjacent pair satisfies dir's order.
func (a Array) IsSorted(dir Direction) bool {
	for i := 0; i+1 < len(a); i++ {
		if dir.OutOfOrder(a[i], a[i+1]) {
			return false
		}
	}
	return true
}

// SameMultiset reports whether a and other hold the same values with the
// same multiplicities, in any order.
func (a Array) SameMultiset(other Array) bool {
	if len(a) != len(other) {
		return false
	}
	counts := make(map[int]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range other {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

func (a Array) HasNegative() bool {
	for _, v := range a {
		if v < 0 {
			return true
		}
	}
	return false
}

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (a Array) check(i int) {
	if i < 0 || i >= len(a) {
		panic(fmt.Sprintf("sorting: index %d out of range [0,%d)", i, len(a)))
	}
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// OutOfOrder reports whether a placed before b violates the order.
// Equal values are never out of order.
func (d Direction) OutOfOrder(a, b int) bool {
	if d == Descending {
		return a < b
	}
	return a > b
}

// Before reports whether a strictly precedes b in this order.
func (d Direction) Before(a, b int) bool {
	if d == Descending {
		return a > b
	}
	return a < b
}

// NotAfter reports whether a may precede b, ties included.
func (d Direction) NotAfter(a, b int) bool {
	return !d.OutOfOrder(a, b)
}

func (d Direction) String() string { return string(d) }
