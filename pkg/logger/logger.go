// Package logger wraps log/slog: text output in development, JSON in
// production, with per-request loggers carried through the context by the
// Logger middleware.
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/drivehub/config"
)

// L is the process-wide logger.
var L *slog.Logger

func init() {
	var h slog.Handler
	switch config.AppEnv() {
	case "production", "prod":
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	L = slog.New(h)
	slog.SetDefault(L)
}

type requestLoggerKey struct{}

// WithCtx returns the request-scoped logger injected by the Logger
// middleware, falling back to L.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(requestLoggerKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a request-scoped logger in ctx. Middleware use only.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, requestLoggerKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
