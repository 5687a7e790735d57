package middleware

import (
	"context"

	pkgAuth "github.com/angelmondragon/warungsunda-backend/pkg/auth"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
)

type contextKey string

const (
	ctxActor     contextKey = "actor"
	ctxSessionID contextKey = "session_id"
	ctxRequestID contextKey = "request_id"
)

// ActorFromContext returns the authenticated actor, or the zero actor for
// anonymous requests.
func ActorFromContext(ctx context.Context) pkgAuth.Actor {
	if ctx == nil {
		return pkgAuth.Actor{}
	}
	if v, ok := ctx.Value(ctxActor).(pkgAuth.Actor); ok {
		return v
	}
	return pkgAuth.Actor{}
}

func UserIDFromContext(ctx context.Context) string {
	return ActorFromContext(ctx).UserID
}

func RoleFromContext(ctx context.Context) enums.UserRole {
	return ActorFromContext(ctx).Role
}

// WithActor injects the actor into the context.
func WithActor(ctx context.Context, actor pkgAuth.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActor, actor)
}

// SessionIDFromContext returns the JWT id of the session that authenticated the request.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// RequestIDFromContext returns the id assigned by the RequestID middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}
