// Package contextutil carries request-scoped values between middleware,
// repositories and log lines.
package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	actorKey     contextKey = "actor"
	loggerKey    contextKey = "logger"
)

type actorRef struct {
	id         string
	businessID string
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}

// WithActor records who is acting and for which business.
func WithActor(ctx context.Context, actorID, businessID string) context.Context {
	return context.WithValue(ctx, actorKey, actorRef{id: actorID, businessID: businessID})
}

func ActorID(ctx context.Context) string {
	ref, _ := ctx.Value(actorKey).(actorRef)
	return ref.id
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, falling back to defaultLogger
// and finally to a no-op logger so callers never get nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return zap.NewNop()
}

// Metadata is the tracing context of one request.
type Metadata struct {
	RequestID  string
	ActorID    string
	BusinessID string
}

func ExtractMetadata(ctx context.Context) Metadata {
	ref, _ := ctx.Value(actorKey).(actorRef)
	return Metadata{
		RequestID:  RequestID(ctx),
		ActorID:    ref.id,
		BusinessID: ref.businessID,
	}
}

// Fields renders the non-empty metadata as log fields.
func (m Metadata) Fields() []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if m.RequestID != "" {
		fields = append(fields, zap.String("request_id", m.RequestID))
	}
	if m.ActorID != "" {
		fields = append(fields, zap.String("actor_id", m.ActorID))
	}
	if m.BusinessID != "" {
		fields = append(fields, zap.String("business_id", m.BusinessID))
	}
	return fields
}
