package middleware

import (
	"context"

	"go-pos/internal/authz"
	"go-pos/internal/shared/apperror"
	"go-pos/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ContextActor = "actor"

// ActorResolver loads the actor and its permission set for a session email.
type ActorResolver interface {
	Resolve(ctx context.Context, email string) (authz.Actor, error)
}

// ResolveActor runs once per request after AuthMiddleware. Handlers read the
// result with CurrentActor and pass it explicitly downstream.
func ResolveActor(resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ContextActorEmail)
		if email == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		actor, err := resolver.Resolve(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set(ContextActor, actor)

		ctx := contextutil.WithActor(c.Request.Context(), actor.ID, actor.BusinessID)
		logger := contextutil.GetLogger(ctx, zap.L()).With(zap.String("actor_id", actor.ID))
		ctx = contextutil.WithLogger(ctx, logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func CurrentActor(c *gin.Context) (authz.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return authz.Actor{}, false
	}
	actor, ok := v.(authz.Actor)
	return actor, ok
}
