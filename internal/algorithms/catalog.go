package algorithms

import "github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"

// Details describes an algorithm for display. LineMap maps a step kind to
// the highlighted line of the reference listing shown by a renderer.
type Details struct {
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	Average         string               `json:"average"`
	Worst           string               `json:"worst"`
	Space           string               `json:"space"`
	Comparison      bool                 `json:"comparison"`
	Randomized      bool                 `json:"randomized"`
	NonNegativeOnly bool                 `json:"non_negative_only"`
	LineMap         map[sorting.Kind]int `json:"line_map,omitempty"`
}

var catalog = map[Algorithm]Details{
	Bubble: {
		Name:        "Bubble Sort",
		Description: "Repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order.",
		Average:     "O(n²)",
		Worst:       "O(n²)",
		Space:       "O(1)",
		Comparison:  true,
		LineMap:     map[sorting.Kind]int{sorting.KindCompare: 3, sorting.KindSwap: 4},
	},
	Selection: {
		Name:        "Selection Sort",
		Description: "Repeatedly finds the minimum element from the unsorted part and puts it at the beginning.",
		Average:     "O(n²)",
		Worst:       "O(n²)",
		Space:       "O(1)",
		Comparison:  true,
		LineMap:     map[sorting.Kind]int{sorting.KindCompare: 5, sorting.KindSwap: 7},
	},
	Insertion: {
		Name:        "Insertion Sort",
		Description: "Builds the final sorted array one item at a time by inserting each new element into its correct position.",
		Average:     "O(n²)",
		Worst:       "O(n²)",
		Space:       "O(1)",
		Comparison:  true,
		LineMap:     map[sorting.Kind]int{sorting.KindCompare: 5, sorting.KindOverwrite: 6},
	},
	Merge: {
		Name:        "Merge Sort",
		Description: "Splits the array in half, sorts each half, and then merges them back together.",
		Average:     "O(n log n)",
		Worst:       "O(n log n)",
		Space:       "O(n)",
		Comparison:  true,
		LineMap:     map[sorting.Kind]int{sorting.KindCompare: 3, sorting.KindOverwrite: 4},
	},
	Quick: {
		Name:        "Quick Sort",
		Description: "Picks a pivot and partitions the array around it so that smaller elements move to the left.",
		Average:     "O(n log n)",
		Worst:       "O(n²)",
		Space:       "O(log n)",
		Comparison:  true,
		LineMap:     map[sorting.Kind]int{sorting.KindPivot: 1, sorting.KindCompare: 4, sorting.KindSwap: 6},
	},
	Heap: {
		Name:        "Heap Sort",
		Description: "Builds a binary heap and repeatedly extracts the extremum to the end of the array.",
		Average:     "O(n log n)",
		Worst:       "O(n log n)",
		Space:       "O(1)",
		Comparison:  true,
		LineMap:     map[sorting.Kind]int{sorting.KindCompare: 3, sorting.KindSwap: 6},
	},
	Counting: {
		Name:            "Counting Sort",
		Description:     "Counts the occurrences of each value to determine output positions.",
		Average:         "O(n + k)",
		Worst:           "O(n + k)",
		Space:           "O(k)",
		NonNegativeOnly: true,
		LineMap:         map[sorting.Kind]int{sorting.KindOverwrite: 7},
	},
	Radix: {
		Name:            "Radix Sort",
		Description:     "Sorts integers digit by digit, least significant first, with a stable counting pass per digit.",
		Average:         "O(nk)",
		Worst:           "O(nk)",
		Space:           "O(n + k)",
		NonNegativeOnly: true,
		LineMap:         map[sorting.Kind]int{sorting.KindOverwrite: 4},
	},
	Bogo: {
		Name:        "Bogo Sort",
		Description: "Shuffles the array at random until it happens to be sorted.",
		Average:     "O((n+1)!)",
		Worst:       "unbounded",
		Space:       "O(1)",
		Comparison:  true,
		Randomized:  true,
		LineMap:     map[sorting.Kind]int{sorting.KindCompare: 1, sorting.KindSwap: 2},
	},
	Tim: {
		Name:        "Timsort",
		Description: "Hybrid of insertion sort on fixed-size runs and bottom-up merging.",
		Average:     "O(n log n)",
		Worst:       "O(n log n)",
		Space:       "O(n)",
		Comparison:  true,
		LineMap:     map[sorting.Kind]int{sorting.KindCompare: 3, sorting.KindSwap: 3, sorting.KindOverwrite: 7},
	},
}

// Info returns the display details of alg. Unknown algorithms yield the
// zero value.
func Info(alg Algorithm) Details {
	return catalog[alg]
}

// SourceLine returns the reference-listing line for a step kind, or -1.
func SourceLine(alg Algorithm, kind sorting.Kind) int {
	if line, ok := catalog[alg].LineMap[kind]; ok {
		return line
	}
	return -1
}
