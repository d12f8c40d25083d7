package draft

import (
	"errors"
	"strings"
)

var ErrWrongType = errors.New("value has the wrong type for this field")

// ValidationError lists the fields that block a submit. Drafts that fail
// validation are never written.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

func newValidationError(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
