package algorithms

import "github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"

// HeapSort builds a max-heap (min-heap when descending) bottom-up, then
// repeatedly moves the root behind the shrinking heap.
func HeapSort(values sorting.Array, dir sorting.Direction) sorting.Trace {
	a := values.Clone()
	n := len(a)
	if n <= 1 {
		return nil
	}
	t := &tracer{}
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(a, i, n, dir, t)
	}
	for i := n - 1; i > 0; i-- {
		t.swap(a, 0, i)
		t.sorted(i)
		siftDown(a, 0, i, dir, t)
	}
	t.sorted(0)
	return t.steps
}

// siftDown restores the heap property for the subtree rooted at root within
// a[0:n]. Each child is compared against the current extremum.
func siftDown(a sorting.Array, root, n int, dir sorting.Direction, t *tracer) {
	for {
		ext := root
		left, right := 2*root+1, 2*root+2
		if left < n {
			t.compare(left, ext)
			if dir.OutOfOrder(a[left], a[ext]) {
				ext = left
			}
		}
		if right < n {
			t.compare(right, ext)
			if dir.OutOfOrder(a[right], a[ext]) {
				ext = right
			}
		}
		if ext == root {
			return
		}
		t.swap(a, root, ext)
		root = ext
	}
}
