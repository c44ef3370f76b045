// Package render declares the capability interface through which the engine
// writes visual activation state, keeping the core independent of any
// concrete rendering surface.
package render

import (
	"context"
	"log/slog"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/ctxlog"
)

// Renderer is implemented by the hosting rendering layer. SetNodeVisualState
// must be cheap: it is called synchronously on the propagation hot path.
type Renderer interface {
	SetNodeVisualState(id string, active bool)
}

// LogRenderer writes visual state changes as debug log lines. It is the
// default renderer for headless hosts and tests that only care about state.
type LogRenderer struct {
	logger *slog.Logger
}

// NewLogRenderer builds a LogRenderer from the context's logger.
func NewLogRenderer(ctx context.Context) *LogRenderer {
	return &LogRenderer{logger: ctxlog.FromContext(ctx)}
}

// SetNodeVisualState implements Renderer.
func (r *LogRenderer) SetNodeVisualState(id string, active bool) {
	r.logger.Debug("visual state", ctxlog.Category(ctxlog.CategorySignal), "node", id, "active", active)
}

// Recorder captures every visual write for assertions in tests.
type Recorder struct {
	Writes []VisualWrite
}

// VisualWrite is one recorded SetNodeVisualState call.
type VisualWrite struct {
	ID     string
	Active bool
}

// SetNodeVisualState implements Renderer.
func (r *Recorder) SetNodeVisualState(id string, active bool) {
	r.Writes = append(r.Writes, VisualWrite{ID: id, Active: active})
}
