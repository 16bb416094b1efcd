package sorting

import "errors"

// Domain errors for trace generation and input handling.
var (
	// ErrEmptyInput indicates an array with no values.
	ErrEmptyInput = errors.New("sorting: empty input array")

	// ErrInvalidValue indicates a value that could not be parsed as an integer.
	ErrInvalidValue = errors.New("sorting: non-numeric value")

	// ErrNegativeValue indicates a negative value given to a counting-based sort.
	ErrNegativeValue = errors.New("sorting: negative value not supported by this algorithm")

	// ErrValueTooLarge indicates a value above the bucket cap of a counting-based sort.
	ErrValueTooLarge = errors.New("sorting: value too large for this algorithm")

	// ErrTooManyValues indicates an array longer than the accepted maximum.
	ErrTooManyValues = errors.New("sorting: too many values")

	// ErrUnknownAlgorithm indicates an algorithm name outside the fixed set.
	ErrUnknownAlgorithm = errors.New("sorting: unknown algorithm")

	// ErrUnknownDirection indicates a direction other than asc or desc.
	ErrUnknownDirection = errors.New("sorting: unknown direction")
)
