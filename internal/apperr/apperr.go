// Package apperr defines the closed error taxonomy shared by all services.
// Every business-rule or lookup failure crossing the service boundary is one
// of three kinds, so the HTTP layer can map errors to status codes without
// inspecting messages.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the three domain error categories.
type Kind int

const (
	KindNotFound Kind = iota
	KindAlreadyExists
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a domain error with a diagnostic context of field values.
// All context values are strings so they marshal cleanly into logs
// and error responses.
type Error struct {
	Kind    Kind
	Message string
	Context map[string]string
}

func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + e.Context[k]
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(pairs, " "))
}

// NotFound reports that a referenced id did not resolve to a stored record.
func NotFound(message string, context map[string]string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Context: context}
}

// AlreadyExists reports a uniqueness violation.
func AlreadyExists(message string, context map[string]string) *Error {
	return &Error{Kind: KindAlreadyExists, Message: message, Context: context}
}

// Validation reports a business-rule violation.
func Validation(message string, context map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Context: context}
}

func kindIs(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func IsNotFound(err error) bool      { return kindIs(err, KindNotFound) }
func IsAlreadyExists(err error) bool { return kindIs(err, KindAlreadyExists) }
func IsValidation(err error) bool    { return kindIs(err, KindValidation) }
