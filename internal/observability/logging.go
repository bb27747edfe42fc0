// Package observability carries build-scoped logging context (build id, stage,
// trigger) through context.Context so that nested components log consistently.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/sitecontent/internal/logfields"
)

// LogContext holds structured logging context information.
type LogContext struct {
	BuildID string
	Stage   string
	Trigger string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithBuildID adds a build ID to the context.
func WithBuildID(ctx context.Context, buildID string) context.Context {
	lc := FromContext(ctx)
	lc.BuildID = buildID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithStage adds a stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := FromContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey, lc)
}

// WithTrigger records what started the build (cli, watch, schedule).
func WithTrigger(ctx context.Context, trigger string) context.Context {
	lc := FromContext(ctx)
	lc.Trigger = trigger
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext, or a zero value when none is set.
func FromContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

func attrs(ctx context.Context, extra []slog.Attr) []slog.Attr {
	lc := FromContext(ctx)
	out := make([]slog.Attr, 0, len(extra)+3)
	if lc.BuildID != "" {
		out = append(out, logfields.BuildID(lc.BuildID))
	}
	if lc.Stage != "" {
		out = append(out, logfields.Stage(lc.Stage))
	}
	if lc.Trigger != "" {
		out = append(out, slog.String("trigger", lc.Trigger))
	}
	return append(out, extra...)
}

// InfoContext logs an info message with context information.
func InfoContext(ctx context.Context, msg string, extra ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelInfo, msg, attrs(ctx, extra)...)
}

// WarnContext logs a warning message with context information.
func WarnContext(ctx context.Context, msg string, extra ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelWarn, msg, attrs(ctx, extra)...)
}

// ErrorContext logs an error message with context information.
func ErrorContext(ctx context.Context, msg string, extra ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelError, msg, attrs(ctx, extra)...)
}

// DebugContext logs a debug message with context information.
func DebugContext(ctx context.Context, msg string, extra ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelDebug, msg, attrs(ctx, extra)...)
}
