package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tofu639/ToDoDemo/internal/api/http/response"
	"github.com/tofu639/ToDoDemo/internal/logger"
	"github.com/tofu639/ToDoDemo/internal/model"
)

// TokenVerifier decodes and checks bearer tokens.
type TokenVerifier interface {
	Verify(token string) (model.TokenPayload, error)
}

// Authenticate validates bearer tokens and injects the decoded payload into
// the request context.
type Authenticate struct {
	verifier       TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
	production     bool
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier TokenVerifier, contextManager model.ContextManager, logger *logger.Logger, production bool) *Authenticate {
	return &Authenticate{
		verifier:       verifier,
		contextManager: contextManager,
		logger:         logger,
		production:     production,
	}
}

type authFailure struct {
	status  int
	code    string
	message string
}

var (
	errMissingToken = &authFailure{http.StatusUnauthorized, response.CodeMissingToken, "Access token is required"}
	errTokenFormat  = &authFailure{http.StatusUnauthorized, response.CodeInvalidTokenFormat, "Invalid token format. Expected: Bearer <token>"}
	errTokenExpired = &authFailure{http.StatusUnauthorized, response.CodeTokenExpired, "Token has expired"}
	errInvalidToken = &authFailure{http.StatusUnauthorized, response.CodeInvalidToken, "Invalid token"}
	errAuthConfig   = &authFailure{http.StatusInternalServerError, response.CodeServerError, "Authentication configuration error"}
	errAuthInternal = &authFailure{http.StatusInternalServerError, response.CodeServerError, "Authentication failed"}
)

// Required rejects requests without a valid bearer token.
func (m *Authenticate) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.authenticate(w, r, next, false)
	})
}

// Optional lets requests without an Authorization header through
// unauthenticated. A header that is present must still be valid.
func (m *Authenticate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.authenticate(w, r, next, true)
	})
}

func (m *Authenticate) authenticate(w http.ResponseWriter, r *http.Request, next http.Handler, optional bool) {
	header := r.Header.Get("Authorization")
	if header == "" && optional {
		next.ServeHTTP(w, r)
		return
	}

	payload, failure := m.authenticateRequest(header)
	if failure != nil {
		m.reject(w, r, failure)
		return
	}

	next.ServeHTTP(w, r.WithContext(m.contextManager.SetPayloadToContext(r.Context(), payload)))
}

func (m *Authenticate) authenticateRequest(header string) (model.TokenPayload, *authFailure) {
	if header == "" {
		return model.TokenPayload{}, errMissingToken
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return model.TokenPayload{}, errTokenFormat
	}
	if parts[1] == "" {
		return model.TokenPayload{}, errMissingToken
	}

	payload, err := m.verifier.Verify(parts[1])
	if err != nil {
		return model.TokenPayload{}, m.classify(err)
	}

	return payload, nil
}

func (m *Authenticate) classify(err error) *authFailure {
	var tokenErr *model.TokenError
	if !errors.As(err, &tokenErr) {
		m.logger.Error("Authenticate middleware: unexpected verification failure",
			"error", err.Error())
		return errAuthInternal
	}

	switch {
	case errors.Is(tokenErr.Kind, model.ErrTokenExpired):
		return errTokenExpired
	case errors.Is(tokenErr.Kind, model.ErrTokenInvalid):
		return errInvalidToken
	case errors.Is(tokenErr.Kind, model.ErrSigningSecretMissing):
		m.logger.Error("Authenticate middleware: signing secret is not configured")
		return errAuthConfig
	default:
		return errInvalidToken
	}
}

func (m *Authenticate) reject(w http.ResponseWriter, r *http.Request, failure *authFailure) {
	m.logger.Debug("Authenticate middleware: request rejected",
		"path", r.URL.Path,
		"code", failure.code)

	message := failure.message
	if m.production && failure.status >= http.StatusInternalServerError {
		message = response.GenericServerMessage
	}
	response.Error(w, r, failure.status, failure.code, message, nil)
}
