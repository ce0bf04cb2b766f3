package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards everything, keeping test output
// free of request and service log lines.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
