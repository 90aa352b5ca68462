// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns the request-scoped logger injected by the Logger
// middleware, so every line from a handler carries the request id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("contact submitted", "email", form.Email)
//	// → time=... level=INFO msg="contact submitted" request_id=6f1c... email=...
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/coconina/storefront/config"
)

var L *slog.Logger

func init() {
	L = New(os.Stdout)
	slog.SetDefault(L)
}

// New builds the base logger writing to w: JSON in production, text
// elsewhere. LOG_LEVEL overrides the environment's default level.
func New(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level()}
	if config.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func level() slog.Level {
	switch config.LogLevel() {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if config.IsProduction() {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// LevelFor maps an HTTP status to the level its access line is logged at.
func LevelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Use replaces the base logger, e.g. to fan out to an extra sink.
func Use(l *slog.Logger) {
	L = l
	slog.SetDefault(l)
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the logger stored in ctx by InjectLogger, or the base
// logger when there is none.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a request-scoped logger in ctx.
// Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

func Debug(msg string, args ...any) { L.Debug(msg, args...) }

func Info(msg string, args ...any) { L.Info(msg, args...) }

func Warn(msg string, args ...any) { L.Warn(msg, args...) }

func Error(msg string, args ...any) { L.Error(msg, args...) }
