package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// actorKey is the key used to store the authenticated actor.
const actorKey = contextKey("actor")

// WithActor returns a copy of ctx carrying the authenticated actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromCtx retrieves the authenticated actor from a standard context.
func ActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetActorFromContext retrieves the authenticated actor from the Gin context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	if val, exists := c.Get(string(actorKey)); exists {
		actor, ok := val.(domain.Actor)
		return actor, ok
	}
	// check in the request context as well
	return ActorFromCtx(c.Request.Context())
}
