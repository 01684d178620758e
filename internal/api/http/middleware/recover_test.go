package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tofu639/ToDoDemo/internal/api/http/response"
	"github.com/tofu639/ToDoDemo/internal/testutil"
)

func TestGuard_Recover(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	tests := []struct {
		name        string
		production  bool
		wantMessage string
	}{
		{name: "development", production: false, wantMessage: "panic: boom"},
		{name: "production", production: true, wantMessage: response.GenericServerMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(testutil.MakeNoopLogger(), tt.production)
			rec := httptest.NewRecorder()

			g.Recover(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decodeFailure(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, response.CodeInternal, body.Error.Code)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
			assert.Equal(t, "/api/users", body.Path)
		})
	}
}

func TestGuard_Recover_AfterWrite(t *testing.T) {
	g := NewGuard(testutil.MakeNoopLogger(), false)
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late")
	})

	rec := httptest.NewRecorder()
	g.Recover(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGuard_Recover_AbortHandler(t *testing.T) {
	g := NewGuard(testutil.MakeNoopLogger(), false)
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		g.Recover(h).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestGuard_Timeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	fast := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		g := NewGuard(testutil.MakeNoopLogger(), false)
		rec := httptest.NewRecorder()

		g.Timeout(10*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
		body := decodeFailure(t, rec)
		assert.Equal(t, response.CodeRequestTimeout, body.Error.Code)
		assert.Equal(t, "Request did not complete within 10ms", body.Error.Message)
		assert.Equal(t, "/api/users", body.Path)
	})

	t.Run("production hides detail", func(t *testing.T) {
		g := NewGuard(testutil.MakeNoopLogger(), true)
		rec := httptest.NewRecorder()

		g.Timeout(10*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
		assert.Equal(t, response.GenericServerMessage, decodeFailure(t, rec).Error.Message)
	})

	t.Run("handler finished in time", func(t *testing.T) {
		g := NewGuard(testutil.MakeNoopLogger(), false)
		rec := httptest.NewRecorder()

		g.Timeout(time.Second)(fast).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
