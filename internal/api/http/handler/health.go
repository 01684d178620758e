package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/tofu639/ToDoDemo/internal/api/http/response"
	"github.com/tofu639/ToDoDemo/internal/logger"
	"github.com/tofu639/ToDoDemo/internal/model"
)

const pingTimeout = 2 * time.Second

// Health reports whether the service and its database are reachable.
type Health struct {
	db      model.Pinger
	version string
	logger  *logger.Logger
}

func NewHealth(db model.Pinger, version string, logger *logger.Logger) *Health {
	return &Health{db: db, version: version, logger: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version,omitempty"`
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("Health check: database unreachable",
			"error", err.Error())
		response.Error(w, r, http.StatusServiceUnavailable, response.CodeServiceUnavailable, "Database unreachable", healthResponse{
			Status:   "unavailable",
			Database: "down",
			Version:  h.version,
		})
		return
	}

	response.OK(w, http.StatusOK, healthResponse{Status: "ok", Database: "up", Version: h.version}, "")
}
