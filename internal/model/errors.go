package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Storage-level outcomes reported by stores.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

var (
	// ErrInvalidArgument is returned when a required input is missing or empty.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidCredentials is deliberately the same for unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNoLongerExists marks a valid token whose user has been deleted.
	ErrUserNoLongerExists = errors.New("user no longer exists")
)

// UserNotFoundError reports a missing user targeted by update or delete.
type UserNotFoundError struct {
	ID string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user with id %s not found", e.ID)
}

// UserAlreadyExistsError reports an email uniqueness violation.
type UserAlreadyExistsError struct {
	Email string
}

func (e *UserAlreadyExistsError) Error() string {
	return fmt.Sprintf("user with email %s already exists", e.Email)
}

// UserServiceError wraps an infrastructure failure in user data access.
type UserServiceError struct {
	Message string
	Err     error
}

func (e *UserServiceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UserServiceError) Unwrap() error {
	return e.Err
}

// AuthServiceError wraps a failure in the auth flows that is not otherwise classified.
type AuthServiceError struct {
	Message string
	Err     error
}

func (e *AuthServiceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AuthServiceError) Unwrap() error {
	return e.Err
}

// ValidationError carries per-field problems with a request.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}
