// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a Renderer is drawing on other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for soft3d and its sub-packages.
// By default, soft3d produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behaviour.
//
// Log levels used by soft3d:
//   - [slog.LevelDebug]: per-frame statistics (triangles, fragments, painted pixels)
//   - [slog.LevelInfo]: lifecycle events (renderer created, scene loaded)
//   - [slog.LevelWarn]: quality issues (singular model matrix, dropped geometry)
//
// Example:
//
//	soft3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by soft3d.
// Sub-packages (preset, mesh) call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
