package algorithms

import "github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"

// MergeSort is a top-down merge sort that ping-pongs between the working
// copy and an auxiliary buffer. Every position is marked sorted once the
// top-level merge completes.
func MergeSort(values sorting.Array, dir sorting.Direction) sorting.Trace {
	main := values.Clone()
	n := len(main)
	if n <= 1 {
		return nil
	}
	aux := main.Clone()
	t := &tracer{}
	mergeSortRange(main, aux, 0, n-1, dir, t)
	t.sortedRange(0, n-1)
	return t.steps
}

// mergeSortRange sorts dst[lo..hi] using src as scratch. The roles of the
// buffers alternate on every level of recursion.
func mergeSortRange(dst, src sorting.Array, lo, hi int, dir sorting.Direction, t *tracer) {
	if lo == hi {
		return
	}
	mid := (lo + hi) / 2
	mergeSortRange(src, dst, lo, mid, dir, t)
	mergeSortRange(src, dst, mid+1, hi, dir, t)
	merge(dst, src, lo, mid, hi, dir, t)
}

// merge combines the ordered runs src[lo..mid] and src[mid+1..hi] into
// dst[lo..hi]. Ties take the left run's head, which keeps the merge stable.
func merge(dst, src sorting.Array, lo, mid, hi int, dir sorting.Direction, t *tracer) {
	k, i, j := lo, lo, mid+1
	for i <= mid && j <= hi {
		t.compare(i, j)
		if dir.NotAfter(src[i], src[j]) {
			t.overwrite(dst, k, src[i])
			i++
		} else {
			t.overwrite(dst, k, src[j])
			j++
		}
		k++
	}
	for ; i <= mid; i++ {
		t.compare(i, i)
		t.overwrite(dst, k, src[i])
		k++
	}
	for ; j <= hi; j++ {
		t.compare(j, j)
		t.overwrite(dst, k, src[j])
		k++
	}
}
