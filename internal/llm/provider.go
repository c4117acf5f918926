package llm

import (
	"context"
	"errors"
)

// Provider sends one fully rendered prompt to a model and returns its text.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var ErrEmptyResponse = errors.New("llm returned an empty response")

// BackendError is returned by providers when the remote API answered with an error.
type BackendError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *BackendError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Retryable reports whether trying the same call later could succeed.
func (e *BackendError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// IsRetryable tells the caller whether an llm failure is worth resubmitting.
func IsRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var be *BackendError
	if errors.As(err, &be) {
		return be.Retryable()
	}
	return false
}
