package model

import (
	"errors"
	"fmt"
)

// Token failure kinds. Each maps to a different outward error code.
var (
	ErrTokenExpired           = errors.New("token expired")
	ErrTokenInvalid           = errors.New("invalid token")
	ErrTokenPayloadIncomplete = errors.New("token payload missing required fields")
	ErrSigningSecretMissing   = errors.New("token signing secret is not configured")
)

// TokenError is returned by every token manager failure.
// errors.Is matches both the kind and the underlying cause.
type TokenError struct {
	Kind  error
	Cause error
}

func NewTokenError(kind, cause error) *TokenError {
	return &TokenError{Kind: kind, Cause: cause}
}

func (e *TokenError) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *TokenError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
