package models

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when text submitted for analysis is empty or
// contains only whitespace. It is never retried.
var ErrEmptyInput = errors.New("input text cannot be empty")

// ExternalServiceError wraps any failure from a remote backend: transport
// errors, backend rejections, malformed responses. Classification failures
// surface immediately; generation failures surface only after the full
// fallback chain is exhausted.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s service: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
