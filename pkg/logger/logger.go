// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it creates a logger with the
// request ID already attached, so every log line from a handler is
// automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("payment processed", "amount", 99.99)
//	// → time=... level=INFO msg="payment processed" request_id=a1b2c3d4 amount=99.99
//
// Credential attributes (password, password_hash and friends) are redacted
// before any handler sees them.
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/freshfold/config"
)

var L *slog.Logger

// sensitiveKeys are replaced with "[redacted]" in every log record.
var sensitiveKeys = map[string]bool{
	"password":              true,
	"password_hash":         true,
	"passwordHash":          true,
	"password_confirmation": true,
	"new_password":          true,
	"current_password":      true,
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if sensitiveKeys[a.Key] {
		return slog.String(a.Key, "[redacted]")
	}
	return a
}

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		opts := &slog.HandlerOptions{Level: slog.LevelInfo, ReplaceAttr: redactAttr}
		handler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		opts := &slog.HandlerOptions{Level: slog.LevelDebug, ReplaceAttr: redactAttr}
		handler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// EnableMongo attaches the asynchronous MongoDB handler so every record is
// also persisted to the logs collection. Returns the handler so the caller
// can Close() it on shutdown. No-op (nil, nil) unless LOG_TO_MONGO is set.
func EnableMongo(uri, db, collection string) (*MongoHandler, error) {
	if !config.LogToMongo() {
		return nil, nil
	}

	mh, err := NewMongoHandler(uri, db, collection)
	if err != nil {
		return nil, err
	}

	L = slog.New(NewMultiHandler(L.Handler(), mh))
	slog.SetDefault(L)
	return mh, nil
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the per-request *slog.Logger injected by the Logger
// middleware, pre-tagged with the request_id. Falls back to the base logger
// when no request logger is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware, not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
