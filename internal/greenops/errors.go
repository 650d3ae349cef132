package greenops

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for footprint and equivalency calculations.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrUnknownRegion indicates the region is not in the factor table.
	ErrUnknownRegion = constError("unknown region")

	// ErrUnknownDietType indicates a diet label other than the recognized three.
	ErrUnknownDietType = constError("unknown diet type")

	// ErrInvalidQuantity indicates a negative, non-finite or unparseable
	// activity quantity.
	ErrInvalidQuantity = constError("invalid quantity")

	// ErrCalculationOverflow indicates a value too large to represent.
	ErrCalculationOverflow = constError("calculation overflow")

	// ErrUnknownRounding indicates an unrecognized rounding mode name.
	ErrUnknownRounding = constError("unknown rounding mode")
)
