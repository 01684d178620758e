package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tofu639/ToDoDemo/internal/api/http/response"
	"github.com/tofu639/ToDoDemo/internal/mocks"
	"github.com/tofu639/ToDoDemo/internal/model"
	"github.com/tofu639/ToDoDemo/internal/testutil"
)

func newUserHandler(t *testing.T) (*User, *mocks.UserService) {
	t.Helper()
	svc := mocks.NewUserService(t)
	return NewUser(svc, testutil.MakeNoopLogger(), false), svc
}

func TestUser_List(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h, svc := newUserHandler(t)
		now := time.Now().UTC()
		svc.On("ListAll", mock.Anything).Return([]model.User{
			{ID: uuid.New(), Name: "B", Email: "b@example.com", PasswordHash: "h1", CreatedAt: now},
			{ID: uuid.New(), Name: "A", Email: "a@example.com", PasswordHash: "h2", CreatedAt: now.Add(-time.Hour)},
		}, nil)

		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeSuccess[[]model.UserProfile](t, rec)
		require.Len(t, env.Data, 2)
		assert.Equal(t, "B", env.Data[0].Name)
		assert.NotContains(t, rec.Body.String(), "h1")
	})

	t.Run("empty list is an array", func(t *testing.T) {
		h, svc := newUserHandler(t)
		svc.On("ListAll", mock.Anything).Return([]model.User{}, nil)

		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})

	t.Run("failure", func(t *testing.T) {
		h, svc := newUserHandler(t)
		svc.On("ListAll", mock.Anything).Return(nil, &model.UserServiceError{Message: "failed to list users"})

		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, response.CodeUserServiceError, decodeFailure(t, rec).Error.Code)
	})
}

func TestUser_Get(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		param      string
		svcUser    *model.User
		svcErr     error
		callsSvc   bool
		wantStatus int
		wantCode   string
	}{
		{name: "found", param: id.String(), svcUser: &model.User{ID: id, Email: "a@b.c"}, callsSvc: true, wantStatus: http.StatusOK},
		{name: "missing", param: id.String(), callsSvc: true, wantStatus: http.StatusNotFound, wantCode: response.CodeUserNotFound},
		{name: "bad id", param: "42", wantStatus: http.StatusBadRequest, wantCode: response.CodeValidation},
		{name: "failure", param: id.String(), svcErr: &model.UserServiceError{Message: "x"}, callsSvc: true, wantStatus: http.StatusInternalServerError, wantCode: response.CodeUserServiceError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newUserHandler(t)
			if tt.callsSvc {
				svc.On("FindByID", mock.Anything, id).Return(tt.svcUser, tt.svcErr)
			}

			rec := httptest.NewRecorder()
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/"+tt.param, nil), "id", tt.param)
			h.Get(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeFailure(t, rec).Error.Code)
				return
			}
			assert.Equal(t, id, decodeSuccess[model.UserProfile](t, rec).Data.ID)
		})
	}
}

func TestUser_Create(t *testing.T) {
	body := map[string]string{"name": "Jane Doe", "email": "jane@example.com", "password": "Password123"}
	in := model.CreateUserInput{Name: "Jane Doe", Email: "jane@example.com", Password: "Password123"}

	t.Run("created", func(t *testing.T) {
		h, svc := newUserHandler(t)
		svc.On("Create", mock.Anything, in).Return(model.User{ID: uuid.New(), Name: "Jane Doe", Email: "jane@example.com", PasswordHash: "h"}, nil)

		rec := httptest.NewRecorder()
		h.Create(rec, jsonRequest(t, http.MethodPost, "/api/users", body))

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := decodeSuccess[map[string]any](t, rec)
		assert.Equal(t, "jane@example.com", env.Data["email"])
		assert.NotContains(t, env.Data, "password")
		assert.Equal(t, "User created successfully", env.Message)
	})

	t.Run("conflict", func(t *testing.T) {
		h, svc := newUserHandler(t)
		svc.On("Create", mock.Anything, in).Return(model.User{}, &model.UserAlreadyExistsError{Email: in.Email})

		rec := httptest.NewRecorder()
		h.Create(rec, jsonRequest(t, http.MethodPost, "/api/users", body))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		h, _ := newUserHandler(t)

		rec := httptest.NewRecorder()
		h.Create(rec, jsonRequest(t, http.MethodPost, "/api/users", `{"name":"Jane","email":"jane@example.com","password":"Password123","role":"admin"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, response.CodeInvalidBody, decodeFailure(t, rec).Error.Code)
	})
}

func TestUser_Update(t *testing.T) {
	id := uuid.New()

	t.Run("partial", func(t *testing.T) {
		h, svc := newUserHandler(t)
		svc.On("Update", mock.Anything, id, mock.MatchedBy(func(in model.UpdateUserInput) bool {
			return in.Name != nil && *in.Name == "Renamed" && in.Email == nil && in.Password == nil
		})).Return(model.User{ID: id, Name: "Renamed"}, nil)

		rec := httptest.NewRecorder()
		req := withURLParam(jsonRequest(t, http.MethodPut, "/api/users/"+id.String(), map[string]string{"name": "Renamed"}), "id", id.String())
		h.Update(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Renamed", decodeSuccess[model.UserProfile](t, rec).Data.Name)
	})

	t.Run("no fields", func(t *testing.T) {
		h, _ := newUserHandler(t)

		rec := httptest.NewRecorder()
		req := withURLParam(jsonRequest(t, http.MethodPut, "/api/users/"+id.String(), map[string]string{}), "id", id.String())
		h.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeFailure(t, rec)
		assert.Equal(t, response.CodeValidation, env.Error.Code)
		assert.Equal(t, "at least one field required", env.Error.Message)
	})

	t.Run("not found", func(t *testing.T) {
		h, svc := newUserHandler(t)
		svc.On("Update", mock.Anything, id, mock.Anything).Return(model.User{}, &model.UserNotFoundError{ID: id.String()})

		rec := httptest.NewRecorder()
		req := withURLParam(jsonRequest(t, http.MethodPut, "/", map[string]string{"email": "x@example.com"}), "id", id.String())
		h.Update(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		h, _ := newUserHandler(t)

		rec := httptest.NewRecorder()
		req := withURLParam(jsonRequest(t, http.MethodPut, "/", map[string]string{"name": "Renamed"}), "id", "nope")
		h.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUser_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusOK},
		{name: "missing", svcErr: &model.UserNotFoundError{ID: id.String()}, wantStatus: http.StatusNotFound},
		{name: "failure", svcErr: &model.UserServiceError{Message: "x", Err: errors.New("boom")}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newUserHandler(t)
			svc.On("Delete", mock.Anything, id).Return(tt.svcErr)

			rec := httptest.NewRecorder()
			h.Delete(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/", nil), "id", id.String()))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
