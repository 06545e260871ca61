package prompt

import (
	"errors"
	"net/http"
)

type unknownTemplateError struct{ name string }

func (e unknownTemplateError) Error() string { return "unknown template: " + e.name }

func (e unknownTemplateError) StatusCode() int { return http.StatusBadRequest }

// ErrUnknownTemplate constructs the unknown-template error for name.
func ErrUnknownTemplate(name string) error { return unknownTemplateError{name: name} }

// IsUnknownTemplate reports whether err (or anything it wraps) is an unknown-template error.
func IsUnknownTemplate(err error) bool {
	var ut unknownTemplateError
	return errors.As(err, &ut)
}

// UnknownTemplateName extracts the offending identifier.
func UnknownTemplateName(err error) (string, bool) {
	var ut unknownTemplateError
	if errors.As(err, &ut) {
		return ut.name, true
	}
	return "", false
}
