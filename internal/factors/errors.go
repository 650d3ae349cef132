package factors

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for loading and validating factor tables.
var (
	// ErrInvalidTable indicates the table violates a structural invariant
	// (missing category, unknown diet label, non-positive factor).
	ErrInvalidTable = constError("invalid emission factor table")

	// ErrUnsupportedSchema indicates the schema_version is not semver or is
	// outside the supported major version.
	ErrUnsupportedSchema = constError("unsupported factor table schema version")

	// ErrUnsupportedFormat indicates a factor file extension other than
	// .yaml, .yml or .json.
	ErrUnsupportedFormat = constError("unsupported factor table format")
)
