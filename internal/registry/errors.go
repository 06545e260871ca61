package registry

import (
	"errors"
	"net/http"
)

// modelNotFoundError is returned when a name has no catalog entry.
type modelNotFoundError struct{ name string }

func (e modelNotFoundError) Error() string { return "model not found: " + e.name }

// StatusCode lets the HTTP layer map the error to 404.
func (e modelNotFoundError) StatusCode() int { return http.StatusNotFound }

// ErrModelNotFound constructs the not-found error for name.
func ErrModelNotFound(name string) error { return modelNotFoundError{name: name} }

// IsModelNotFound reports whether err (or anything it wraps) is a not-found error.
func IsModelNotFound(err error) bool {
	var nf modelNotFoundError
	return errors.As(err, &nf)
}

// NotFoundName extracts the offending model name from a not-found error.
func NotFoundName(err error) (string, bool) {
	var nf modelNotFoundError
	if errors.As(err, &nf) {
		return nf.name, true
	}
	return "", false
}
