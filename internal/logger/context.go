package logger

import (
	"context"

	"foodhub-be/internal/utils"

	"go.uber.org/zap"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// FromCtx returns the global logger tagged with the request id and, once
// the caller is authenticated, its user id and role.
func FromCtx(ctx context.Context) *zap.Logger {
	var fields []zap.Field
	if reqID := RequestIDFrom(ctx); reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	if ident, ok := utils.IdentityFrom(ctx); ok {
		fields = append(fields,
			zap.String("user_id", ident.ID.String()),
			zap.String("role", ident.Role),
		)
	}
	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}
