package algorithms

import (
	"math/rand"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

// DefaultBogoAttempts caps the number of shuffles bogo sort may try.
const DefaultBogoAttempts = 1000

// BogoSort scans for the first out-of-order adjacent pair, then performs a
// full Fisher-Yates shuffle, until the array is ordered or maxAttempts
// shuffles were made. When the cap is hit the trace simply ends without
// sorted markers.
func BogoSort(values sorting.Array, dir sorting.Direction, rng *rand.Rand, maxAttempts int) sorting.Trace {
	a := values.Clone()
	n := len(a)
	t := &tracer{}
	for attempt := 0; !a.IsSorted(dir) && attempt < maxAttempts; attempt++ {
		for i := 0; i < n-1; i++ {
			t.compare(i, i+1)
			if dir.OutOfOrder(a[i], a[i+1]) {
				break
			}
		}
		for i := n - 1; i > 0; i-- {
			t.swap(a, i, rng.Intn(i+1))
		}
	}
	if a.IsSorted(dir) && n > 0 {
		t.sortedRange(0, n-1)
	}
	return t.steps
}
