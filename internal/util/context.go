package util

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	// CTXKeyRequestID holds the request (or batch) id attached to the logger.
	CTXKeyRequestID contextKey = "request_id"
)

// LogFromContext returns a request-scoped logger if one was attached via WithLogger,
// the global logger otherwise.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := log.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		if ShouldDisableLogger(ctx) {
			return l
		}
		l = &log.Logger
	}

	return l
}

// WithLogger attaches the given logger to the context.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// RequestIDFromContext returns the request id stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CTXKeyRequestID).(string)
	return id, ok && id != ""
}

// WithRequestID stores id in ctx and tags the context logger with it.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, CTXKeyRequestID, id)
	l := LogFromContext(ctx).With().Str("request_id", id).Logger()
	return l.WithContext(ctx)
}

type disableLoggerKey struct{}

// DisableLogger returns a context whose LogFromContext is a no-op logger.
func DisableLogger(ctx context.Context, shouldDisable bool) context.Context {
	ctx = context.WithValue(ctx, disableLoggerKey{}, shouldDisable)
	if shouldDisable {
		return zerolog.Nop().WithContext(ctx)
	}
	return ctx
}

func ShouldDisableLogger(ctx context.Context) bool {
	s, ok := ctx.Value(disableLoggerKey{}).(bool)
	return ok && s
}
