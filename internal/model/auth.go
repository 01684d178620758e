package model

// RegisterInput carries registration data.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by successful register and login flows.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hashed string) (bool, error)
}
