package services

import (
	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/dmitrijs2005/tempero/internal/validation"
)

// ValidationError reports the fields of a request body that failed the form
// rules. It matches common.ErrorValidation.
type ValidationError struct {
	Fields validation.FieldErrors
}

// Error returns the message of the first failing field.
func (e *ValidationError) Error() string { return e.Fields.First() }

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }
