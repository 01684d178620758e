// Package response writes the JSON envelopes shared by every HTTP endpoint.
package response

import (
	"encoding/json"
	"net/http"
	"time"
)

// Error codes sent in the error envelope.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidBody        = "INVALID_REQUEST_BODY"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUserAlreadyExists  = "USER_ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserServiceError   = "USER_SERVICE_ERROR"
	CodeAuthServiceError   = "AUTH_SERVICE_ERROR"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidTokenFormat = "INVALID_TOKEN_FORMAT"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeServerError        = "SERVER_ERROR"
	CodeRouteNotFound      = "ROUTE_NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeRequestTimeout     = "REQUEST_TIMEOUT"
)

// GenericServerMessage replaces 5xx messages in production.
const GenericServerMessage = "Internal server error"

type Success struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Failure struct {
	Success   bool      `json:"success"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
	Path      string    `json:"path"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a success envelope.
func OK(w http.ResponseWriter, status int, data any, message string) {
	JSON(w, status, Success{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: timestamp(),
	})
}

// Error writes an error envelope for the request path.
func Error(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	JSON(w, status, Failure{
		Success: false,
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: timestamp(),
		Path:      r.URL.Path,
	})
}
