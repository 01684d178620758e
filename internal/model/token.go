package model

import "time"

// TokenPayload is the identity carried inside a bearer token.
type TokenPayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// IssueOptions tune a single token issuance.
type IssueOptions struct {
	ExpiresIn time.Duration
}

// IssueOption mutates IssueOptions.
type IssueOption func(*IssueOptions)

// WithExpiresIn overrides the default token lifetime.
func WithExpiresIn(d time.Duration) IssueOption {
	return func(o *IssueOptions) {
		o.ExpiresIn = d
	}
}

// TokenManager issues and verifies signed, time-limited tokens.
type TokenManager interface {
	Issue(payload TokenPayload, opts ...IssueOption) (string, error)
	Verify(token string) (TokenPayload, error)
	IsExpired(token string) bool
}
