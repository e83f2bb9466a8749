// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderqueue

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by all packages of this module. By default,
// nothing is logged. Passing nil restores the default.
//
// Levels in use:
//   - [slog.LevelDebug]: dispatch summaries and uniform uploads
//   - [slog.LevelWarn]: unbalanced scopes in builds without debug checks
//   - [slog.LevelError]: graphics errors observed by CheckErrorDebug
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	logger.Store(l)
}

// Logger returns the logger set with SetLogger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return logger.Load()
}
