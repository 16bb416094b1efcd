package algorithms

import "github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"

// QuickSort uses the Lomuto partition scheme with the last element of the
// active range as pivot.
func QuickSort(values sorting.Array, dir sorting.Direction) sorting.Trace {
	a := values.Clone()
	n := len(a)
	if n <= 1 {
		return nil
	}
	t := &tracer{}
	quickSortRange(a, 0, n-1, dir, t)
	return t.steps
}

func quickSortRange(a sorting.Array, lo, hi int, dir sorting.Direction, t *tracer) {
	if lo < hi {
		p := partition(a, lo, hi, dir, t)
		quickSortRange(a, lo, p-1, dir, t)
		quickSortRange(a, p+1, hi, dir, t)
	} else if lo == hi {
		t.sorted(lo)
	}
}

// partition places a[hi] at its resting index and returns it. Side ranges
// that already happen to be ordered are marked sorted as a visual hint
// only; recursion still visits them.
func partition(a sorting.Array, lo, hi int, dir sorting.Direction, t *tracer) int {
	pivot := a[hi]
	t.pivot(hi, lo)
	i := lo - 1
	for j := lo; j < hi; j++ {
		t.compare(j, hi)
		if dir.Before(a[j], pivot) {
			i++
			t.swap(a, i, j)
		}
	}
	t.swap(a, i+1, hi)
	t.sorted(i + 1)

	if isRangeOrdered(a, lo, i, dir) {
		t.sortedRange(lo, i)
	}
	if isRangeOrdered(a, i+2, hi, dir) {
		t.sortedRange(i+2, hi)
	}
	return i + 1
}
