// Package sorting provides the core data model shared by the trace
// generators and the replay engine.
//
// The package defines:
//
//   - [Array]: the mutable integer sequence being visualized
//   - [Direction]: ascending or descending order
//   - [Step]: one elementary operation (compare, pivot, swap, overwrite, sorted)
//   - [Trace]: the ordered steps of one algorithm run on one input
//
// # Example
//
//	values := sorting.Array{5, 3, 8, 1, 2}
//	trace, _ := algorithms.Generate(algorithms.Bubble, values, sorting.Ascending, nil)
//	out := trace.Apply(values) // [1 2 3 5 8]
//
// # Thread Safety
//
// Arrays are plain slices and are NOT thread-safe. Traces are immutable once
// generated and may be shared freely.
package sorting
