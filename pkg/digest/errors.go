package digest

import (
	"errors"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("invalid token payload")

// ValidationError reports a payload that cannot be signed.
type ValidationError struct {
	// Field is the offending payload field, empty when the payload itself is
	// missing.
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrValidation) true for validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
