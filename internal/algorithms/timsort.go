package algorithms

import "github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"

// DefaultRunLength is the fixed run size of the simplified Timsort.
const DefaultRunLength = 32

// Timsort is the simplified variant: fixed-size runs sorted by insertion
// sort, then bottom-up merges of doubling width.
func Timsort(values sorting.Array, dir sorting.Direction) sorting.Trace {
	return TimsortRuns(values, dir, DefaultRunLength)
}

// TimsortRuns is Timsort with an explicit run length.
func TimsortRuns(values sorting.Array, dir sorting.Direction, run int) sorting.Trace {
	a := values.Clone()
	n := len(a)
	if run < 1 {
		run = DefaultRunLength
	}
	t := &tracer{}

	for start := 0; start < n; start += run {
		end := min(start+run, n)
		chunk := a[start:end]
		steps := InsertionSort(chunk, dir)
		for _, s := range steps.Offset(start) {
			if s.Kind != sorting.KindSorted {
				t.steps = append(t.steps, s)
			}
		}
		copy(chunk, steps.Apply(chunk))
	}

	for size := run; size < n; size *= 2 {
		for left := 0; left < n; left += 2 * size {
			mid := left + size - 1
			right := min(left+2*size-1, n-1)
			if mid < right {
				merge(a, a.Clone(), left, mid, right, dir, t)
			}
		}
	}
	return t.steps
}
