package sdk

import "errors"

var (
	// ErrInvalidBodyType is returned when a payload cannot be serialized
	// into the canonical body representation.
	ErrInvalidBodyType = errors.New("unsupported body type")

	// ErrMissingField indicates a required field is absent after merging
	// trigger defaults with caller overrides. This is a defaults bug, not a
	// test bug.
	ErrMissingField = errors.New("required field missing")

	// ErrAssemblyFailure wraps an error raised by a trigger's assembly
	// function, carrying the trigger name for diagnostics.
	ErrAssemblyFailure = errors.New("mock assembly failed")

	// ErrUnknownField is returned when a field name is not part of a mock's
	// field set.
	ErrUnknownField = errors.New("unknown field")

	// ErrOutputNotSet is returned when reading an output slot that was never
	// written by the function under test.
	ErrOutputNotSet = errors.New("output was never set")

	// ErrAlreadySet is returned on a second write to an output slot when the
	// capture context enforces the single-writer contract.
	ErrAlreadySet = errors.New("output already set")

	// ErrNotJSON indicates a body was present but did not parse as JSON.
	ErrNotJSON = errors.New("body is not valid JSON")

	// ErrNoBody indicates a JSON view was requested for an empty body, so
	// decoding was never attempted.
	ErrNoBody = errors.New("body is empty")
)
