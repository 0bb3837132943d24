package farm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStorageUnavailable is returned when no store has been configured.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageWrite wraps failures while persisting a record.
	ErrStorageWrite = errors.New("storage write failed")
	// ErrStorageQuery wraps failures while reading records.
	ErrStorageQuery = errors.New("storage query failed")
)

// FieldError describes one violated rule on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// ValidationError lists every field of a rejected input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, rule, param, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Param: param, Message: message}}}
}
