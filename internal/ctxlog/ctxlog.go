// Package ctxlog provides a context key for safely passing a slog.Logger
// instance through context.Context, plus the diagnostic category attribute
// shared by all engine subsystems.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

// loggerKey is the key for the slog.Logger in a context.Context.
var loggerKey = key{}

// Diagnostic categories. Every engine log line carries exactly one of these
// so hosts can filter per subsystem.
const (
	CategoryGraph  = "graph"
	CategorySignal = "signal"
	CategoryCache  = "cache"
	CategoryError  = "error"
)

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context. If no logger is
// found, it returns the process default logger so callers never nil-check.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// Category returns the slog attribute tagging a log line with a diagnostic
// category.
func Category(name string) slog.Attr {
	return slog.String("category", name)
}
