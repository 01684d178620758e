package handler

import (
	"errors"
	"net/http"

	"github.com/tofu639/ToDoDemo/internal/api/http/response"
	"github.com/tofu639/ToDoDemo/internal/logger"
	"github.com/tofu639/ToDoDemo/internal/model"
)

// responder converts handler errors into error envelopes.
type responder struct {
	logger     *logger.Logger
	production bool
}

func (rs responder) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *model.ValidationError
		notFoundErr   *model.UserNotFoundError
		existsErr     *model.UserAlreadyExistsError
		userSvcErr    *model.UserServiceError
		authSvcErr    *model.AuthServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		var details any
		if len(validationErr.Fields) > 0 {
			details = validationErr.Fields
		}
		response.Error(w, r, http.StatusBadRequest, response.CodeValidation, validationErr.Message, details)
	case errors.Is(err, errInvalidBody):
		response.Error(w, r, http.StatusBadRequest, response.CodeInvalidBody, err.Error(), nil)
	case errors.As(err, &notFoundErr):
		response.Error(w, r, http.StatusNotFound, response.CodeUserNotFound, notFoundErr.Error(), nil)
	case errors.As(err, &existsErr):
		response.Error(w, r, http.StatusConflict, response.CodeUserAlreadyExists, existsErr.Error(), nil)
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Error(w, r, http.StatusUnauthorized, response.CodeInvalidCredentials, model.ErrInvalidCredentials.Error(), nil)
	case errors.As(err, &authSvcErr):
		rs.serverError(w, r, response.CodeAuthServiceError, err)
	case errors.As(err, &userSvcErr):
		rs.serverError(w, r, response.CodeUserServiceError, err)
	default:
		rs.serverError(w, r, response.CodeInternal, err)
	}
}

func (rs responder) serverError(w http.ResponseWriter, r *http.Request, code string, err error) {
	rs.logger.Error("HTTP handler: request failed",
		"path", r.URL.Path,
		"code", code,
		"error", err.Error())

	message := err.Error()
	if rs.production {
		message = response.GenericServerMessage
	}
	response.Error(w, r, http.StatusInternalServerError, code, message, nil)
}
