package algorithms

import (
	"github.com/samber/lo"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

// CountingSort requires non-negative values; the count table is sized
// max+1. Each input scan emits a Compare(i, i) bookkeeping marker. Elements
// are placed from the right end so equal values keep their input order.
//
// Descending order is a post-hoc reversal of the ascending placement, so
// equal values end up in reverse input order.
func CountingSort(values sorting.Array, dir sorting.Direction) sorting.Trace {
	a := values.Clone()
	n := len(a)
	if n <= 1 {
		return nil
	}
	t := &tracer{}

	maxVal := lo.Max(a)
	count := make([]int, maxVal+1)
	for i := 0; i < n; i++ {
		t.compare(i, i)
		count[a[i]]++
	}
	for v := 1; v <= maxVal; v++ {
		count[v] += count[v-1]
	}

	output := a.Clone()
	for i := n - 1; i >= 0; i-- {
		v := a[i]
		count[v]--
		dest := count[v]
		t.overwrite(output, dest, v)
		if dir == sorting.Ascending {
			t.sorted(dest)
		}
	}

	if dir == sorting.Descending {
		reverseInto(output, t)
	}
	return t.steps
}

// RadixSort runs one stable counting pass per decimal digit, least
// significant first, until the digit exceeds the maximum value. Like
// CountingSort it assumes non-negative values and produces descending
// order by a final reversal pass.
func RadixSort(values sorting.Array, dir sorting.Direction) sorting.Trace {
	a := values.Clone()
	n := len(a)
	if n <= 1 {
		return nil
	}
	t := &tracer{}

	maxVal := lo.Max(a)
	for exp := 1; maxVal/exp > 0; exp *= 10 {
		radixPass(a, exp, t)
	}

	if dir == sorting.Descending {
		reversed := lo.Reverse(a.Clone())
		for i := range reversed {
			t.overwrite(a, i, reversed[i])
		}
	}
	t.sortedRange(0, n-1)
	return t.steps
}

func radixPass(a sorting.Array, exp int, t *tracer) {
	n := len(a)
	var count [10]int
	for i := 0; i < n; i++ {
		t.compare(i, i)
		count[(a[i]/exp)%10]++
	}
	for d := 1; d < 10; d++ {
		count[d] += count[d-1]
	}

	output := make(sorting.Array, n)
	for i := n - 1; i >= 0; i-- {
		d := (a[i] / exp) % 10
		t.compare(i, i)
		count[d]--
		output[count[d]] = a[i]
	}
	for i := range output {
		t.overwrite(a, i, output[i])
	}
}

// reverseInto rewrites every position of a with the reversed value and
// marks it sorted.
func reverseInto(a sorting.Array, t *tracer) {
	reversed := lo.Reverse(a.Clone())
	for i := range reversed {
		t.overwrite(a, i, reversed[i])
		t.sorted(i)
	}
}
