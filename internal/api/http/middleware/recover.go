package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tofu639/ToDoDemo/internal/api/http/response"
	"github.com/tofu639/ToDoDemo/internal/logger"
)

// Guard turns handler panics and expired request deadlines into error envelopes.
type Guard struct {
	logger     *logger.Logger
	production bool
}

// NewGuard creates a new Guard middleware.
func NewGuard(logger *logger.Logger, production bool) *Guard {
	return &Guard{logger: logger, production: production}
}

// Recover answers 500 INTERNAL_SERVER_ERROR when next panics.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func (g *Guard) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			g.logger.Error("panic while handling request",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", chimiddleware.GetReqID(r.Context()),
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			)

			if ww.Status() != 0 {
				return
			}
			message := fmt.Sprintf("panic: %v", rec)
			if g.production {
				message = response.GenericServerMessage
			}
			response.Error(ww, r, http.StatusInternalServerError, response.CodeInternal, message, nil)
		}()

		next.ServeHTTP(ww, r)
	})
}

// Timeout bounds the request context by d and answers 504 REQUEST_TIMEOUT
// when the deadline passes before next wrote a response.
func (g *Guard) Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if ww.Status() != 0 || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return
			}

			g.logger.Warn("request deadline exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"timeout", d.String(),
			)

			message := fmt.Sprintf("Request did not complete within %s", d)
			if g.production {
				message = response.GenericServerMessage
			}
			response.Error(ww, r, http.StatusGatewayTimeout, response.CodeRequestTimeout, message, nil)
		})
	}
}
