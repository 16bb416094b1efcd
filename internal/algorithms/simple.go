package algorithms

import "github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"

// BubbleSort makes n-1 adjacent-pair passes. Each pass fixes one tail
// position, which is marked sorted when the pass ends.
func BubbleSort(values sorting.Array, dir sorting.Direction) sorting.Trace {
	a := values.Clone()
	n := len(a)
	if n == 0 {
		return nil
	}
	t := &tracer{}
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			t.compare(j, j+1)
			if dir.OutOfOrder(a[j], a[j+1]) {
				t.swap(a, j, j+1)
			}
		}
		t.sorted(n - 1 - i)
	}
	t.sorted(0)
	return t.steps
}

// SelectionSort compares every candidate against the current best, not
// against i, and always swaps once per position even when best == i.
func SelectionSort(values sorting.Array, dir sorting.Direction) sorting.Trace {
	a := values.Clone()
	n := len(a)
	if n == 0 {
		return nil
	}
	t := &tracer{}
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			t.compare(best, j)
			if dir.Before(a[j], a[best]) {
				best = j
			}
		}
		t.swap(a, i, best)
		t.sorted(i)
	}
	t.sorted(n - 1)
	return t.steps
}

// InsertionSort shifts out-of-order elements one slot right per overwrite
// and drops the key into the gap. After each insertion the whole prefix
// 0..i is re-marked sorted: it is locally ordered, not globally final.
func InsertionSort(values sorting.Array, dir sorting.Direction) sorting.Trace {
	a := values.Clone()
	n := len(a)
	if n == 0 {
		return nil
	}
	t := &tracer{}
	t.sorted(0)
	for i := 1; i < n; i++ {
		key := a[i]
		j := i - 1
		t.compare(i, j)
		for j >= 0 && dir.OutOfOrder(a[j], key) {
			t.overwrite(a, j+1, a[j])
			j--
			if j >= 0 {
				t.compare(i, j)
			}
		}
		t.overwrite(a, j+1, key)
		t.sortedRange(0, i)
	}
	return t.steps
}
