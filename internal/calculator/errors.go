package calculator

import (
	"errors"
	"fmt"
)

// ErrInsufficientHistory is returned by single-indicator functions when the series is shorter
// than the indicator needs. Analyze turns it into an absent result field.
var ErrInsufficientHistory = errors.New("not enough data")

// ErrUnknownIndicator is wrapped by the ValidationError for an unrecognized identifier.
var ErrUnknownIndicator = errors.New("unknown indicator")

// ValidationError reports a bad request parameter or a malformed price series.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func requirePositive(field string, v int) error {
	if v <= 0 {
		return invalid(field, "must be positive, got %d", v)
	}
	return nil
}
