package algorithms

import "github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"

// tracer records steps while keeping the generator's working buffer in
// lockstep with the recorded mutations. Buffers are passed explicitly to
// every mutating call.
type tracer struct {
	steps sorting.Trace
}

func (t *tracer) compare(i, j int)   { t.steps = append(t.steps, sorting.Compare(i, j)) }
func (t *tracer) pivot(p, bound int) { t.steps = append(t.steps, sorting.Pivot(p, bound)) }
func (t *tracer) sorted(i int)       { t.steps = append(t.steps, sorting.Sorted(i)) }

func (t *tracer) swap(a sorting.Array, i, j int) {
	t.steps = append(t.steps, sorting.Swap(i, j))
	a.Swap(i, j)
}

func (t *tracer) overwrite(a sorting.Array, i, v int) {
	t.steps = append(t.steps, sorting.Overwrite(i, v))
	a.Set(i, v)
}

func (t *tracer) sortedRange(lo, hi int) {
	for k := lo; k <= hi; k++ {
		t.sorted(k)
	}
}

// isRangeOrdered reports whether a[lo..hi] already satisfies dir.
func isRangeOrdered(a sorting.Array, lo, hi int, dir sorting.Direction) bool {
	for i := lo; i < hi; i++ {
		if dir.OutOfOrder(a[i], a[i+1]) {
			return false
		}
	}
	return true
}
