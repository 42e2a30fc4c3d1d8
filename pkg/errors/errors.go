package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCategory classifies failures around checksumming an input. A checksum
// mismatch is never one of them; it is reported as a result.
type ErrorCategory int

const (
	// ErrorStorage indicates errors reading the input, such as missing
	// files, permissions or I/O failures.
	ErrorStorage ErrorCategory = iota + 1

	// ErrorCompression indicates the input could not be decoded with the
	// configured codec, such as corrupt or truncated compressed data.
	ErrorCompression

	// ErrorConfig indicates invalid or unreadable configuration.
	ErrorConfig

	// ErrorCanceled indicates the operation was interrupted by its context.
	ErrorCanceled
)

// String returns the string representation of the error category.
// This is useful for logging and error reporting.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorStorage:
		return "storage"
	case ErrorCompression:
		return "compression"
	case ErrorConfig:
		return "config"
	case ErrorCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

type DigestError struct {
	Err       error
	Operation string
	Path      string
	Timestamp time.Time
	Category  ErrorCategory
}

func NewDigestError(category ErrorCategory, operation, path string, err error) *DigestError {
	return &DigestError{
		Err:       err,
		Path:      path,
		Category:  category,
		Operation: operation,
		Timestamp: time.Now(),
	}
}

func (e *DigestError) Error() string {
	return fmt.Sprintf("[%v] %s %s: %v", e.Category, e.Operation, e.Path, e.Err)
}

func (e *DigestError) Unwrap() error {
	return e.Err
}

// IsRetryAble returns whether errors of this category can be retried.
// This helps callers decide whether to retry failed operations.
func (e *DigestError) IsRetryAble() bool {
	switch e.Category {
	case ErrorStorage:
		// Storage errors might be temporary (e.g., network filesystems).
		return true
	case ErrorCanceled:
		return true
	default:
		// Corrupt input and bad configuration fail the same way again.
		return false
	}
}

// AsDigestError extracts a DigestError from err, or returns nil.
func AsDigestError(err error) *DigestError {
	var de *DigestError
	if errors.As(err, &de) {
		return de
	}
	return nil
}
