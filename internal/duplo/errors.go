package duplo

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeConfiguration is the code carried by configuration errors raised before
// any request reaches the portal.
const CodeConfiguration = http.StatusInternalServerError

// ErrMissingConfig is wrapped by the error returned when a required
// environment variable is absent.
var ErrMissingConfig = errors.New("missing duplo configuration")

// Error is a failure reported by the DuploCloud portal (or raised on its
// behalf). Response holds the raw upstream body when one was returned.
type Error struct {
	Message  string
	Code     int
	Response any
	Err      error
}

func NewError(message string, code int) *Error {
	return &Error{Message: message, Code: code}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s (code=%d)", e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func configError(variable string) *Error {
	return &Error{
		Message: fmt.Sprintf("%s environment variable is required", variable),
		Code:    CodeConfiguration,
		Err:     ErrMissingConfig,
	}
}

func notFound(kind Kind, name string) *Error {
	return NewError(fmt.Sprintf("%s '%s' not found", kind, name), http.StatusNotFound)
}

func statusError(status int, body string) *Error {
	var msg string
	switch status {
	case http.StatusUnauthorized:
		msg = "Unauthorized: check DUPLO_TOKEN"
	case http.StatusForbidden:
		msg = "Forbidden: token lacks access to this resource"
	case http.StatusNotFound:
		msg = "Resource not found"
	default:
		msg = fmt.Sprintf("Duplo responded with (%d)", status)
	}
	err := NewError(msg, status)
	if body != "" {
		err.Response = body
	}
	return err
}
