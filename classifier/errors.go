package classifier

import "errors"

var (
	// ErrMissingColumns marks a training dataset without the full feature
	// schema.
	ErrMissingColumns = errors.New("dataset is missing training columns")

	// ErrNoRows marks a dataset with a header but nothing to train on.
	ErrNoRows = errors.New("dataset has no rows")

	// ErrClassTooSmall marks a crop with too few rows to appear in both
	// split halves.
	ErrClassTooSmall = errors.New("too few rows for a stratified split")

	// ErrMissingModel wraps artifact loads when no trained model exists
	// yet, so callers can suggest training first.
	ErrMissingModel = errors.New("model artifact not found")

	// ErrCorruptArtifacts marks model and encoder files that do not
	// belong together.
	ErrCorruptArtifacts = errors.New("model artifacts are inconsistent")
)
