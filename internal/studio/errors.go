package studio

import (
	"errors"
	"fmt"
)

// Failure kinds carried on a failed upload outcome. Each maps to the stage
// family that produced it.
const (
	KindNavigation = "navigation_error"
	KindFileSelect = "file_select_error"
	KindTimeout    = "timeout_error"
	KindEdit       = "edit_error"
	KindPublish    = "publish_error"
)

// StageError is a terminal stage failure: the wrapped driver error plus the
// failure kind and the stage the machine had reached.
type StageError struct {
	Kind  string
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s at stage %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }

func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks a driver error as transient (stale element, not yet
// rendered) so the machine retries it with backoff before escalating.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err (anywhere in its chain) was marked
// transient via Retryable.
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}
