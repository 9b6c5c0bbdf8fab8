package osim

import "errors"

// Domain errors for model and analysis operations.
var (
	// ErrUnsupportedVariant indicates an unrecognized metabolics probe kind.
	ErrUnsupportedVariant = errors.New("osim: unsupported probe kind")

	// ErrAnalysisFailure indicates the external analysis run could not
	// produce results.
	ErrAnalysisFailure = errors.New("osim: analysis failed")

	// ErrEmptyStates indicates a states file with no time samples.
	ErrEmptyStates = errors.New("osim: states file has no samples")

	// ErrNoModel indicates a document without a Model element.
	ErrNoModel = errors.New("osim: document has no Model element")
)
