package reader

import "errors"

// FetchError wraps an error from the underlying consumer and records whether
// the poll that produced it may be retried.
type FetchError struct {
	Err       error
	Retryable bool
}

func (e *FetchError) Error() string {
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewRetryableError wraps an error as retryable
func NewRetryableError(err error) *FetchError {
	return &FetchError{
		Err:       err,
		Retryable: true,
	}
}

// NewTerminalError wraps an error as non-retryable
func NewTerminalError(err error) *FetchError {
	return &FetchError{
		Err:       err,
		Retryable: false,
	}
}

// IsRetryable checks if an error was classified as retryable by the
// consumer. Unclassified errors are terminal.
func IsRetryable(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Retryable
	}
	return false
}
