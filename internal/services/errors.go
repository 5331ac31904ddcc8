package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrProgramNotFound  = errors.New("program not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// ValidationError carries field-level messages for a rejected request.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, strings.Join(e.Fields[key], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
