// Package slog provides logging decorators for viewdocs services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/viewdocs"
)

// Ensure LoggingRenderer implements viewdocs.Renderer.
var _ viewdocs.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   viewdocs.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next viewdocs.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(source []byte) (html []byte, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		r.logger.Log(context.Background(), level, "render",
			"in", len(source),
			"out", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(source)
}
