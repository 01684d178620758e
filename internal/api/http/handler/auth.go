package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/tofu639/ToDoDemo/internal/api/http/response"
	"github.com/tofu639/ToDoDemo/internal/logger"
	"github.com/tofu639/ToDoDemo/internal/model"
)

// AuthService runs the register, login and token validation flows.
type AuthService interface {
	Register(ctx context.Context, in model.RegisterInput) (model.AuthResult, error)
	Login(ctx context.Context, in model.LoginInput) (model.AuthResult, error)
	ValidateToken(ctx context.Context, token string) (model.TokenPayload, error)
}

// Auth serves the /api/auth endpoints.
type Auth struct {
	responder
	authService    AuthService
	userService    UserService
	contextManager model.ContextManager
}

func NewAuth(
	authService AuthService,
	userService UserService,
	contextManager model.ContextManager,
	logger *logger.Logger,
	production bool,
) *Auth {
	return &Auth{
		responder:      responder{logger: logger, production: production},
		authService:    authService,
		userService:    userService,
		contextManager: contextManager,
	}
}

func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		h.handleError(w, r, err)
		return
	}

	res, err := h.authService.Register(r.Context(), model.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, http.StatusCreated, res, "User registered successfully")
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		h.handleError(w, r, err)
		return
	}

	res, err := h.authService.Login(r.Context(), model.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, res, "Login successful")
}

type verifyResponse struct {
	Valid   bool               `json:"valid"`
	Payload model.TokenPayload `json:"payload"`
}

// Verify checks a token supplied in the request body, including that its user still exists.
func (h *Auth) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		h.handleError(w, r, err)
		return
	}

	payload, err := h.authService.ValidateToken(r.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNoLongerExists):
			response.Error(w, r, http.StatusUnauthorized, response.CodeUserNotFound, "User no longer exists", nil)
		case errors.Is(err, model.ErrTokenExpired):
			response.Error(w, r, http.StatusUnauthorized, response.CodeTokenExpired, "Token has expired", nil)
		case errors.Is(err, model.ErrTokenInvalid),
			errors.Is(err, model.ErrTokenPayloadIncomplete),
			errors.Is(err, model.ErrInvalidArgument):
			response.Error(w, r, http.StatusUnauthorized, response.CodeInvalidToken, "Invalid token", nil)
		default:
			h.handleError(w, r, err)
		}
		return
	}

	response.OK(w, http.StatusOK, verifyResponse{Valid: true, Payload: payload}, "")
}

// Profile returns the authenticated user.
func (h *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if user == nil {
		response.Error(w, r, http.StatusNotFound, response.CodeUserNotFound, "User not found", nil)
		return
	}

	response.OK(w, http.StatusOK, user.Profile(), "")
}

type sessionResponse struct {
	Authenticated bool               `json:"authenticated"`
	User          *model.UserProfile `json:"user"`
}

// Session reports whether the request carries a valid token.
func (h *Auth) Session(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if user == nil {
		response.OK(w, http.StatusOK, sessionResponse{}, "")
		return
	}

	profile := user.Profile()
	response.OK(w, http.StatusOK, sessionResponse{Authenticated: true, User: &profile}, "")
}

// currentUser resolves the user behind the request token. A request without
// a payload or whose user is gone yields nil.
func (h *Auth) currentUser(r *http.Request) (*model.User, error) {
	payload, ok := h.contextManager.GetPayloadFromContext(r.Context())
	if !ok {
		return nil, nil
	}

	id, err := uuid.Parse(payload.UserID)
	if err != nil {
		return nil, nil
	}

	return h.userService.FindByID(r.Context(), id)
}
