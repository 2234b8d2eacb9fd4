package mcp

import (
	"fmt"
	"strings"
)

// ValidationError reports caller input that failed a precondition. It is
// always surfaced with code 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// RequireString returns value trimmed, or a ValidationError when it is empty
// or only whitespace.
func RequireString(value, label string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewValidationError("%s is required and cannot be empty", label)
	}
	return trimmed, nil
}
