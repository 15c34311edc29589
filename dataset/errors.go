package dataset

import "errors"

var (
	// ErrMissingInput wraps a read of a dataset path that does not exist.
	ErrMissingInput = errors.New("input file not found")

	// ErrEmptyInput marks a dataset file without a header row.
	ErrEmptyInput = errors.New("input file has no header row")

	// ErrNoCropColumn marks a dataset whose header lacks the crop label
	// column. Nothing can be corrected or trained without it.
	ErrNoCropColumn = errors.New("dataset has no crop column")

	// ErrUnknownFormat marks a file extension no reader is registered for.
	ErrUnknownFormat = errors.New("unknown dataset format")
)
