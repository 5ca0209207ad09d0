package apperror

import (
	"errors"
	"fmt"
)

// ErrEmptyQuestion rejects a question that is empty after trimming whitespace.
var ErrEmptyQuestion = errors.New("question must not be empty")

// InvalidConfigurationError reports an unrecognized memory variant name.
// The current policy is left untouched when this is returned.
type InvalidConfigurationError struct {
	Variant string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("unknown memory variant %q", e.Variant)
}

// StoreUnavailableError wraps a retrieval backend failure (embedding call
// or similarity search).
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("fragment store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// GenerationFailedError wraps an LLM completion failure. The underlying
// provider message is carried unchanged; no automatic retry happens.
type GenerationFailedError struct {
	Err error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationFailedError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an unknown resource id at the transport boundary.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}
