package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tofu639/ToDoDemo/internal/logger"
	"github.com/tofu639/ToDoDemo/internal/model"
)

// Auth composes the user service, password hasher and token manager into
// the register, login and token validation flows.
type Auth struct {
	users        *User
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(
	users *User,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:        users,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

func (a *Auth) Register(ctx context.Context, in model.RegisterInput) (model.AuthResult, error) {
	a.logger.Debug("Auth service: registering user",
		"email", in.Email)

	user, err := a.users.Create(ctx, model.CreateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		var exists *model.UserAlreadyExistsError
		if errors.As(err, &exists) {
			return model.AuthResult{}, err
		}
		return model.AuthResult{}, &model.AuthServiceError{Message: "registration failed", Err: err}
	}

	token, err := a.issue(user)
	if err != nil {
		return model.AuthResult{}, &model.AuthServiceError{Message: "registration failed", Err: err}
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID.String())

	return model.AuthResult{Token: token, User: user.Profile()}, nil
}

// Login answers ErrInvalidCredentials for both unknown emails and wrong passwords.
func (a *Auth) Login(ctx context.Context, in model.LoginInput) (model.AuthResult, error) {
	a.logger.Debug("Auth service: login attempt",
		"email", in.Email)

	user, err := a.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return model.AuthResult{}, &model.AuthServiceError{Message: "login failed", Err: err}
	}
	if user == nil {
		a.logger.Info("Auth service: login rejected",
			"email", in.Email)
		return model.AuthResult{}, model.ErrInvalidCredentials
	}

	ok, err := a.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		a.logger.Error("Auth service: failed to verify password",
			"user_id", user.ID.String(),
			"error", err.Error())
		return model.AuthResult{}, &model.AuthServiceError{Message: "login failed", Err: err}
	}
	if !ok {
		a.logger.Info("Auth service: login rejected",
			"email", in.Email)
		return model.AuthResult{}, model.ErrInvalidCredentials
	}

	token, err := a.issue(*user)
	if err != nil {
		return model.AuthResult{}, &model.AuthServiceError{Message: "login failed", Err: err}
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID.String())

	return model.AuthResult{Token: token, User: user.Profile()}, nil
}

// ValidateToken verifies the token and checks that its user still exists.
func (a *Auth) ValidateToken(ctx context.Context, token string) (model.TokenPayload, error) {
	payload, err := a.tokenManager.Verify(token)
	if err != nil {
		return model.TokenPayload{}, &model.AuthServiceError{Message: "token validation failed", Err: err}
	}

	id, err := uuid.Parse(payload.UserID)
	if err != nil {
		return model.TokenPayload{}, &model.AuthServiceError{
			Message: "token validation failed",
			Err:     model.NewTokenError(model.ErrTokenInvalid, fmt.Errorf("malformed user id: %w", err)),
		}
	}

	user, err := a.users.FindByID(ctx, id)
	if err != nil {
		return model.TokenPayload{}, &model.AuthServiceError{Message: "token validation failed", Err: err}
	}
	if user == nil {
		a.logger.Info("Auth service: token refers to deleted user",
			"user_id", payload.UserID)
		return model.TokenPayload{}, &model.AuthServiceError{Message: "token validation failed", Err: model.ErrUserNoLongerExists}
	}

	return payload, nil
}

func (a *Auth) issue(user model.User) (string, error) {
	token, err := a.tokenManager.Issue(model.TokenPayload{
		UserID: user.ID.String(),
		Email:  user.Email,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID.String(),
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
