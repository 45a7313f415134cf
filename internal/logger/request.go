package logger

import (
	"context"

	"go.uber.org/zap"
)

type requestIDKey struct{}

// WithRequestID returns a context whose log lines carry the given request id
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id attached with WithRequestID, if any
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

func requestFields(ctx context.Context) []zap.Field {
	if id, ok := RequestIDFromContext(ctx); ok {
		return []zap.Field{zap.String("request_id", id)}
	}
	return nil
}
