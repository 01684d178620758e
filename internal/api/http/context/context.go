package context

import (
	"context"

	"github.com/tofu639/ToDoDemo/internal/model"
)

type payloadKey struct{}

// Manager stores the authenticated token payload on a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetPayloadToContext returns a copy of ctx carrying the payload.
func (m *Manager) SetPayloadToContext(ctx context.Context, payload model.TokenPayload) context.Context {
	return context.WithValue(ctx, payloadKey{}, payload)
}

// GetPayloadFromContext returns the payload set by the authentication
// middleware and whether one was present.
func (m *Manager) GetPayloadFromContext(ctx context.Context) (model.TokenPayload, bool) {
	payload, ok := ctx.Value(payloadKey{}).(model.TokenPayload)
	if !ok || payload.UserID == "" {
		return model.TokenPayload{}, false
	}
	return payload, true
}
