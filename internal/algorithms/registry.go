package algorithms

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

type Algorithm string

const (
	Bubble    Algorithm = "bubble"
	Selection Algorithm = "selection"
	Insertion Algorithm = "insertion"
	Merge     Algorithm = "merge"
	Quick     Algorithm = "quick"
	Heap      Algorithm = "heap"
	Counting  Algorithm = "counting"
	Radix     Algorithm = "radix"
	Bogo      Algorithm = "bogo"
	Tim       Algorithm = "timsort"
)

// Generator produces the trace of one algorithm. Only randomized
// algorithms read rng.
type Generator func(values sorting.Array, dir sorting.Direction, rng *rand.Rand) sorting.Trace

var generators = map[Algorithm]Generator{
	Bubble:    func(v sorting.Array, d sorting.Direction, _ *rand.Rand) sorting.Trace { return BubbleSort(v, d) },
	Selection: func(v sorting.Array, d sorting.Direction, _ *rand.Rand) sorting.Trace { return SelectionSort(v, d) },
	Insertion: func(v sorting.Array, d sorting.Direction, _ *rand.Rand) sorting.Trace { return InsertionSort(v, d) },
	Merge:     func(v sorting.Array, d sorting.Direction, _ *rand.Rand) sorting.Trace { return MergeSort(v, d) },
	Quick:     func(v sorting.Array, d sorting.Direction, _ *rand.Rand) sorting.Trace { return QuickSort(v, d) },
	Heap:      func(v sorting.Array, d sorting.Direction, _ *rand.Rand) sorting.Trace { return HeapSort(v, d) },
	Counting:  func(v sorting.Array, d sorting.Direction, _ *rand.Rand) sorting.Trace { return CountingSort(v, d) },
	Radix:     func(v sorting.Array, d sorting.Direction, _ *rand.Rand) sorting.Trace { return RadixSort(v, d) },
	Bogo: func(v sorting.Array, d sorting.Direction, rng *rand.Rand) sorting.Trace {
		return BogoSort(v, d, rng, DefaultBogoAttempts)
	},
	Tim: func(v sorting.Array, d sorting.Direction, _ *rand.Rand) sorting.Trace { return Timsort(v, d) },
}

// MaxBucketValue is the largest value Counting and Radix accept. Counting
// sort allocates a table of MaxBucketValue+1 entries at most.
const MaxBucketValue = 1 << 20

var order = []Algorithm{Merge, Quick, Heap, Bubble, Selection, Insertion, Tim, Radix, Counting, Bogo}

// All returns every algorithm in menu order.
func All() []Algorithm {
	out := make([]Algorithm, len(order))
	copy(out, order)
	return out
}

// Parse accepts the short name ("quick"), the display name ("Quick Sort")
// or a dashed form ("quick-sort").
func Parse(name string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	key = strings.TrimSuffix(key, "sort")
	if key == "tim" {
		return Tim, nil
	}
	if _, ok := generators[Algorithm(key)]; ok {
		return Algorithm(key), nil
	}
	return "", fmt.Errorf("%w: %q", sorting.ErrUnknownAlgorithm, name)
}

func (a Algorithm) String() string { return string(a) }

// Generate validates values and returns the trace of alg. A nil rng is
// replaced by a time-seeded source.
func Generate(alg Algorithm, values sorting.Array, dir sorting.Direction, rng *rand.Rand) (sorting.Trace, error) {
	gen, ok := generators[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", sorting.ErrUnknownAlgorithm, string(alg))
	}
	if len(values) == 0 {
		return nil, sorting.ErrEmptyInput
	}
	if dir != sorting.Ascending && dir != sorting.Descending {
		return nil, fmt.Errorf("%w: %q", sorting.ErrUnknownDirection, string(dir))
	}
	if Info(alg).NonNegativeOnly {
		if values.HasNegative() {
			return nil, fmt.Errorf("%s: %w", alg, sorting.ErrNegativeValue)
		}
		if top := lo.Max(values); top > MaxBucketValue {
			return nil, fmt.Errorf("%s: %w: %d > %d", alg, sorting.ErrValueTooLarge, top, MaxBucketValue)
		}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return gen(values, dir, rng), nil
}
