package models

import (
	"errors"
	"fmt"
)

// ErrTickerNotFound indicates the data provider returned no usable price or
// fundamentals for the requested symbol.
var ErrTickerNotFound = errors.New("ticker not found")

// ValidationError reports a malformed ticker symbol. It is raised before any
// downstream call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
