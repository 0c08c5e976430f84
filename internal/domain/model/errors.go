package model

import (
	"errors"
	"strings"
)

// FieldError is a single rejected field with a user-facing message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationError reports every field that failed validation, in the
// order the fields were checked.
type FieldValidationError struct {
	Fields []FieldError
}

func (e *FieldValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message returns the message recorded for field, or "".
func (e *FieldValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// NewFieldValidationError builds a *FieldValidationError from fields, or
// returns nil when fields is empty.
func NewFieldValidationError(fields ...FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &FieldValidationError{Fields: fields}
}

type fieldErrors []FieldError

func (fe *fieldErrors) add(field, msg string) {
	*fe = append(*fe, FieldError{Field: field, Message: msg})
}

func (fe fieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return &FieldValidationError{Fields: fe}
}

var (
	// ErrCollateralPairing is returned when exactly one of collateral name
	// and proof descriptor is supplied.
	ErrCollateralPairing = errors.New("collateral name and proof document must be provided together")

	// ErrStorageUnavailable wraps session store read/write failures.
	ErrStorageUnavailable = errors.New("session storage unavailable")

	// ErrMissingUpstreamData marks a stage entered without its prerequisite
	// record. Readers recover with documented defaults.
	ErrMissingUpstreamData = errors.New("missing upstream data")
)
