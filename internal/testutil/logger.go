package testutil

import (
	"io"
	"log/slog"

	"github.com/tofu639/ToDoDemo/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, int(slog.LevelError+1), "text")
}
