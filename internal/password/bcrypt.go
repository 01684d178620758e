// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tofu639/ToDoDemo/internal/model"
)

// DefaultCost is used when no cost is configured.
const DefaultCost = 12

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt implements PasswordHasher with a fixed cost factor.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher. Non-positive cost falls back to DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Cost returns the configured cost factor.
func (b *Bcrypt) Cost() int {
	return b.cost
}

// Hash returns a salted bcrypt hash of password.
func (b *Bcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must be a non-empty string: %w", model.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify reports whether password matches hashed. A malformed hash is
// reported as a mismatch, not an error.
func (b *Bcrypt) Verify(password, hashed string) (bool, error) {
	if password == "" {
		return false, fmt.Errorf("password must be a non-empty string: %w", model.ErrInvalidArgument)
	}
	if hashed == "" {
		return false, fmt.Errorf("hashed password must be a non-empty string: %w", model.ErrInvalidArgument)
	}

	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil, nil
}
