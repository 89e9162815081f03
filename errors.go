package mold

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidField matches every InvalidFieldError with errors.Is
	ErrInvalidField = errors.New("field is not allowed")
	errNotObject    = errors.New("not an object value")
)

// InvalidFieldError is returned when a field outside of the whitelist is given in Strict mode
type InvalidFieldError struct {
	Field string // Offending field name
}

// Error implements error interface for InvalidFieldError
func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field (%s) is not allowed", e.Field)
}

// Is reports whether target is ErrInvalidField
func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// IsInvalidFieldErr reports whether an err is an InvalidFieldError
func IsInvalidFieldErr(err error) bool {
	var invalid *InvalidFieldError
	return errors.As(err, &invalid)
}
