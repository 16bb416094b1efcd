// Package dataset builds the arrays that runs are replayed against: linear
// height sequences in several distributions, or values parsed from text.
package dataset

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/samber/lo"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

const (
	MinHeight = 40
	MaxHeight = 450

	MinSize     = 10
	MaxSize     = 100
	DefaultSize = 50

	// MaxValues caps every array accepted from outside, generated or
	// parsed. Quadratic traces stay in the low millions of steps below it.
	MaxValues = 1000

	fewUniqueLevels = 4
)

type Distribution string

const (
	Random       Distribution = "random"
	Sorted       Distribution = "sorted"
	Reversed     Distribution = "reversed"
	NearlySorted Distribution = "nearly-sorted"
	FewUnique    Distribution = "few-unique"
)

var distributions = []Distribution{Random, Sorted, Reversed, NearlySorted, FewUnique}

func Distributions() []Distribution { return append([]Distribution(nil), distributions...) }

func ParseDistribution(s string) (Distribution, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "_", "-")
	if name == "" {
		return Random, nil
	}
	if lo.Contains(distributions, Distribution(name)) {
		return Distribution(name), nil
	}
	return "", fmt.Errorf("unknown distribution: %s", s)
}

// Linear returns size evenly spaced heights in (MinHeight, MaxHeight],
// smallest first.
func Linear(size int) sorting.Array {
	return lo.Times(size, func(i int) int {
		return MinHeight + (i+1)*(MaxHeight-MinHeight)/size
	})
}

// Generate builds a new array of the given size. A nil rng is seeded from
// the clock.
func Generate(size int, dist Distribution, rng *rand.Rand) (sorting.Array, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size %d", sorting.ErrInvalidValue, size)
	}
	if err := CheckLength(size); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	values := Linear(size)
	switch dist {
	case Random, "":
		rng.Shuffle(len(values), values.Swap)
	case Sorted:
	case Reversed:
		values = lo.Reverse(values)
	case NearlySorted:
		if size < 2 {
			break
		}
		for range max(1, size/10) {
			i := rng.Intn(size - 1)
			values.Swap(i, i+1)
		}
	case FewUnique:
		levels := lo.Times(fewUniqueLevels, func(k int) int {
			return MinHeight + (k+1)*(MaxHeight-MinHeight)/fewUniqueLevels
		})
		values = lo.Times(size, func(int) int { return levels[rng.Intn(len(levels))] })
	default:
		return nil, fmt.Errorf("unknown distribution: %s", dist)
	}
	return values, nil
}

// Parse reads integers separated by commas or whitespace.
func Parse(text string) (sorting.Array, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil, sorting.ErrEmptyInput
	}
	if err := CheckLength(len(fields)); err != nil {
		return nil, err
	}
	values := make(sorting.Array, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", sorting.ErrInvalidValue, f)
		}
		values = append(values, v)
	}
	return values, nil
}

// CheckLength rejects arrays longer than MaxValues.
func CheckLength(n int) error {
	if n > MaxValues {
		return fmt.Errorf("%w: %d > %d", sorting.ErrTooManyValues, n, MaxValues)
	}
	return nil
}
