package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tofu639/ToDoDemo/internal/api/http/response"
	"github.com/tofu639/ToDoDemo/internal/logger"
	"github.com/tofu639/ToDoDemo/internal/model"
)

// UserService manages user accounts.
type UserService interface {
	Create(ctx context.Context, in model.CreateUserInput) (model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, in model.UpdateUserInput) (model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]model.User, error)
}

// User serves the /api/users endpoints.
type User struct {
	responder
	userService UserService
}

func NewUser(userService UserService, logger *logger.Logger, production bool) *User {
	return &User{
		responder:   responder{logger: logger, production: production},
		userService: userService,
	}
}

func (h *User) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListAll(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, model.Profiles(users), "")
}

func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.userService.FindByID(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if user == nil {
		h.handleError(w, r, &model.UserNotFoundError{ID: id.String()})
		return
	}

	response.OK(w, http.StatusOK, user.Profile(), "")
}

func (h *User) Create(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.userService.Create(r.Context(), model.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, http.StatusCreated, user.Profile(), "User created successfully")
}

func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.userService.Update(r.Context(), id, model.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, user.Profile(), "User updated successfully")
}

func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, nil, "User deleted successfully")
}
