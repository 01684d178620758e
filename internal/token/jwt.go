package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tofu639/ToDoDemo/internal/model"
)

// DefaultTTL is the lifetime of a token issued without WithExpiresIn.
const DefaultTTL = 24 * time.Hour

// Claims represents JWT claims carrying the token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

var _ model.TokenManager = (*JWT)(nil)

func init() {
	// exp and iat default to whole seconds, which would cut sub-second
	// lifetimes short. Encode them with millisecond resolution instead.
	jwt.TimePrecision = time.Millisecond
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey  string
	defaultTTL time.Duration
}

// NewJWT creates a new JWT token manager. An empty secret is accepted here
// and reported on first use.
func NewJWT(secretKey string, defaultTTL time.Duration) *JWT {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &JWT{secretKey: secretKey, defaultTTL: defaultTTL}
}

// Issue signs a token for payload.
func (j *JWT) Issue(payload model.TokenPayload, opts ...model.IssueOption) (string, error) {
	if j.secretKey == "" {
		return "", model.NewTokenError(model.ErrSigningSecretMissing, nil)
	}
	if payload.UserID == "" || payload.Email == "" {
		return "", model.NewTokenError(model.ErrTokenPayloadIncomplete, errors.New("userId and email are required"))
	}

	options := model.IssueOptions{ExpiresIn: j.defaultTTL}
	for _, opt := range opts {
		opt(&options)
	}
	if options.ExpiresIn <= 0 {
		options.ExpiresIn = j.defaultTTL
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   payload.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(options.ExpiresIn)),
		},
		UserID: payload.UserID,
		Email:  payload.Email,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates the signature and expiry of tokenString and returns its payload.
func (j *JWT) Verify(tokenString string) (model.TokenPayload, error) {
	if j.secretKey == "" {
		return model.TokenPayload{}, model.NewTokenError(model.ErrSigningSecretMissing, nil)
	}
	if tokenString == "" {
		return model.TokenPayload{}, model.NewTokenError(model.ErrInvalidArgument, errors.New("token must be a non-empty string"))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.TokenPayload{}, model.NewTokenError(model.ErrTokenExpired, err)
		}
		return model.TokenPayload{}, model.NewTokenError(model.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return model.TokenPayload{}, model.NewTokenError(model.ErrTokenInvalid, nil)
	}
	if claims.UserID == "" || claims.Email == "" {
		return model.TokenPayload{}, model.NewTokenError(model.ErrTokenPayloadIncomplete, nil)
	}

	return model.TokenPayload{UserID: claims.UserID, Email: claims.Email}, nil
}

// IsExpired reports true only when verification fails because the token expired.
// Any other failure, including a malformed token, reports false.
func (j *JWT) IsExpired(tokenString string) bool {
	_, err := j.Verify(tokenString)
	return errors.Is(err, model.ErrTokenExpired)
}
