package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation failure kinds. FieldError unwraps to one of these so callers can
// test with errors.Is regardless of which protocol produced the input.
var (
	ErrInvalidSortColumn    = errors.New("invalid sort column")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
	ErrInvalidLimit         = errors.New("invalid limit")
	ErrInvalidPage          = errors.New("invalid page")
)

var (
	// ErrPaginationUnavailable is returned when pagination data is requested from
	// filters or listings that were built for a sorting-only operation.
	ErrPaginationUnavailable = errors.New("pagination options not available")

	// ErrNotFound is returned by repositories when a scoped parent or record does not exist.
	ErrNotFound = errors.New("record not found")
)

// FieldError describes one rejected wire field.
type FieldError struct {
	Field   string
	Message string
	Kind    error
}

func (e FieldError) Error() string {
	return e.Message
}

func (e FieldError) Unwrap() error {
	return e.Kind
}

// ValidationError aggregates every field rejected while normalizing one request.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	msg := e.Errors[0].Message
	if extra := len(e.Errors) - 1; extra > 0 {
		suffix := "error"
		if extra > 1 {
			suffix = "errors"
		}
		msg = fmt.Sprintf("%s (and %d more %s)", msg, extra, suffix)
	}
	return msg
}

// Unwrap exposes the kinds of all field errors to errors.Is.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		errs[i] = fe
	}
	return errs
}

// Add appends a field error.
func (e *ValidationError) Add(kind error, field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message, Kind: kind})
}

// Merge appends the field errors of other when it is a ValidationError and
// reports whether it was one.
func (e *ValidationError) Merge(other error) bool {
	var ve *ValidationError
	if !errors.As(other, &ve) {
		return false
	}
	e.Errors = append(e.Errors, ve.Errors...)
	return true
}

// Fields groups messages by wire field name, preserving order within a field.
func (e *ValidationError) Fields() map[string][]string {
	out := make(map[string][]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// FirstMessage returns the message of the first field error.
func (e *ValidationError) FirstMessage() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Message
}

// OrNil returns nil when no field errors were collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// AsValidationError unwraps err into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func joinNames(values []string) string {
	return strings.Join(values, ", ")
}

// NotFoundError names the kind of record that is missing. It matches ErrNotFound.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
