package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/tofu639/ToDoDemo/internal/logger"
	"github.com/tofu639/ToDoDemo/internal/model"
)

// User owns every read and write of user accounts.
type User struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, hasher model.PasswordHasher, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores a new user with a hashed password.
// Email uniqueness is checked up front and again by the store's unique index.
func (s *User) Create(ctx context.Context, in model.CreateUserInput) (model.User, error) {
	email := normalizeEmail(in.Email)

	s.logger.Debug("User service: creating user",
		"email", email)

	existing, err := s.FindByEmail(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	if existing != nil {
		s.logger.Info("User service: email already taken",
			"email", email)
		return model.User{}, &model.UserAlreadyExistsError{Email: email}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.logger.Error("User service: failed to hash password",
			"email", email,
			"error", err.Error())
		return model.User{}, &model.UserServiceError{Message: "failed to hash password", Err: err}
	}

	user, err := s.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateKey) {
			s.logger.Info("User service: email taken by concurrent create",
				"email", email)
			return model.User{}, &model.UserAlreadyExistsError{Email: email}
		}
		s.logger.Error("User service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, &model.UserServiceError{Message: "failed to create user", Err: err}
	}

	s.logger.Info("User service: user created",
		"user_id", user.ID.String())

	return user, nil
}

// FindByID returns nil without error when the user does not exist.
func (s *User) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("User service: failed to get user by id",
			"user_id", id.String(),
			"error", err.Error())
		return nil, &model.UserServiceError{Message: "failed to find user by id", Err: err}
	}

	return &user, nil
}

// FindByEmail lowercases the email before lookup and returns nil without
// error when no user has it.
func (s *User) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = normalizeEmail(email)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("User service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return nil, &model.UserServiceError{Message: "failed to find user by email", Err: err}
	}

	return &user, nil
}

// Update applies only the supplied fields.
func (s *User) Update(ctx context.Context, id uuid.UUID, in model.UpdateUserInput) (model.User, error) {
	if in.IsEmpty() {
		return model.User{}, model.NewValidationError("at least one field required", nil)
	}

	s.logger.Debug("User service: updating user",
		"user_id", id.String())

	current, err := s.FindByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if current == nil {
		return model.User{}, &model.UserNotFoundError{ID: id.String()}
	}

	var changes model.UserChanges
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		changes.Name = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != current.Email {
			other, err := s.FindByEmail(ctx, email)
			if err != nil {
				return model.User{}, err
			}
			if other != nil && other.ID != id {
				s.logger.Info("User service: email already taken",
					"user_id", id.String(),
					"email", email)
				return model.User{}, &model.UserAlreadyExistsError{Email: email}
			}
		}
		changes.Email = &email
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			s.logger.Error("User service: failed to hash password",
				"user_id", id.String(),
				"error", err.Error())
			return model.User{}, &model.UserServiceError{Message: "failed to hash password", Err: err}
		}
		changes.PasswordHash = &hash
	}

	user, err := s.userStore.Update(ctx, id, changes)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return model.User{}, &model.UserNotFoundError{ID: id.String()}
		case errors.Is(err, model.ErrDuplicateKey) && changes.Email != nil:
			return model.User{}, &model.UserAlreadyExistsError{Email: *changes.Email}
		}
		s.logger.Error("User service: failed to update user",
			"user_id", id.String(),
			"error", err.Error())
		return model.User{}, &model.UserServiceError{Message: "failed to update user", Err: err}
	}

	s.logger.Info("User service: user updated",
		"user_id", id.String())

	return user, nil
}

func (s *User) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.userStore.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return &model.UserNotFoundError{ID: id.String()}
		}
		s.logger.Error("User service: failed to delete user",
			"user_id", id.String(),
			"error", err.Error())
		return &model.UserServiceError{Message: "failed to delete user", Err: err}
	}

	s.logger.Info("User service: user deleted",
		"user_id", id.String())

	return nil
}

// ListAll returns every user, newest first.
func (s *User) ListAll(ctx context.Context) ([]model.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("User service: failed to list users",
			"error", err.Error())
		return nil, &model.UserServiceError{Message: "failed to list users", Err: err}
	}

	return users, nil
}
