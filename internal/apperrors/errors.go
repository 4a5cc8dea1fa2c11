package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	ErrMessageNotFound = errors.New("message not found")
)

// ValidationError carries field level details of a failed validation.
// Deliberately not a sentinel: callers match it with errors.As
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field string, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
