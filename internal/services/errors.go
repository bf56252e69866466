package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for any failed login, whatever the cause.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnknownMember and ErrWrongPassword wrap ErrInvalidCredentials so callers
	// can tell the causes apart internally without exposing them.
	ErrUnknownMember = fmt.Errorf("%w: unknown member", ErrInvalidCredentials)
	ErrWrongPassword = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)
)

// AuthError is an authentication failure with a short client-facing detail.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return e.Detail
}

var (
	ErrNoCredentials  = &AuthError{Detail: "Invalid token header. No credentials provided."}
	ErrTokenHasSpaces = &AuthError{Detail: "Invalid token header. Token string should not contain spaces."}
	ErrInvalidToken   = &AuthError{Detail: "Invalid token."}
)

// ValidationError collects field-level messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends msg to the messages of field.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether no field has messages.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

const (
	msgUsernameTaken = "A user with that username already exists."
	msgEmailTaken    = "A user with that email already exists."
)
