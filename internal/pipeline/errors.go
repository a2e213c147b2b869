package pipeline

import "errors"

var (
	// ErrUnknownStage indicates an unrecognized stage name.
	ErrUnknownStage = errors.New("unknown stage")
	// ErrInvalidParams indicates missing or malformed stage parameters.
	ErrInvalidParams = errors.New("invalid stage parameters")
	// ErrPreconditionFailed indicates a stage run requested without its
	// required prior artifacts, or with an ambiguous target.
	ErrPreconditionFailed = errors.New("stage precondition failed")
	// ErrStorage indicates artifact persistence failed. Unlike provider
	// failures this is fatal for the run: no artifact, no fallback.
	ErrStorage = errors.New("artifact storage failed")
)
