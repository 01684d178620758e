package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, http.StatusCreated, map[string]string{"id": "1"}, "created")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, map[string]any{"id": "1"}, body["data"])

	_, err := time.Parse(time.RFC3339Nano, body["timestamp"].(string))
	assert.NoError(t, err)
}

func TestOK_OmitsEmptyMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, http.StatusOK, []string{}, "")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	_, has := body["message"]
	assert.False(t, has)
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		details    any
		hasDetails bool
	}{
		{name: "with details", details: map[string]string{"email": "invalid"}, hasDetails: true},
		{name: "without details"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
			rec := httptest.NewRecorder()

			Error(rec, req, http.StatusBadRequest, CodeValidation, "validation failed", tt.details)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body Failure
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, CodeValidation, body.Error.Code)
			assert.Equal(t, "validation failed", body.Error.Message)
			assert.Equal(t, "/api/users", body.Path)
			assert.NotEmpty(t, body.Timestamp)
			assert.Equal(t, tt.hasDetails, body.Error.Details != nil)
		})
	}
}
