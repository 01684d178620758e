package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tofu639/ToDoDemo/internal/model"
)

const (
	minNameLength     = 2
	maxNameLength     = 50
	minPasswordLength = 8
	maxPasswordLength = 128
	maxBodyBytes      = 1 << 20
)

// errInvalidBody marks a request body that is not the expected JSON object.
var errInvalidBody = errors.New("invalid request body")

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128,letterdigit"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=2,max=50"`
	Email    *string `json:"email" validate:"omitnil,email,max=255"`
	Password *string `json:"password" validate:"omitnil,min=8,max=128,letterdigit"`
}

type verifyRequest struct {
	Token string `json:"token" validate:"required"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: body is empty", errInvalidBody)
		}
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: body must contain a single JSON object", errInvalidBody)
	}

	return nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewValidationError("validation failed", map[string]string{
			"id": "must be a valid UUID",
		})
	}
	return id, nil
}

const passwordRuleTag = "letterdigit"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation(passwordRuleTag, hasLetterAndDigit); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", passwordRuleTag, err))
	}
	return v
}

func hasLetterAndDigit(fl validator.FieldLevel) bool {
	var hasLetter, hasDigit bool
	for _, c := range fl.Field().String() {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// validateStruct runs the struct tags of req and folds failures into a
// ValidationError keyed by JSON field name.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}
	return model.NewValidationError("validation failed", fields)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case passwordRuleTag:
		return field + " must contain at least one letter and one number"
	case "min", "max":
		switch field {
		case "name":
			return fmt.Sprintf("name must be between %d and %d characters", minNameLength, maxNameLength)
		case "password":
			return fmt.Sprintf("password must be between %d and %d characters", minPasswordLength, maxPasswordLength)
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	}
	return field + " is invalid"
}

func (req registerRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	return validateStruct(req)
}

func (req loginRequest) validate() error {
	req.Email = strings.TrimSpace(req.Email)
	return validateStruct(req)
}

func (req updateUserRequest) validate() error {
	if req.Name == nil && req.Email == nil && req.Password == nil {
		return model.NewValidationError("at least one field required", nil)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		req.Email = &email
	}
	return validateStruct(req)
}

func (req verifyRequest) validate() error {
	req.Token = strings.TrimSpace(req.Token)
	return validateStruct(req)
}
