// Package actor provides request-scoped caller identity extraction.
// Authorization itself is a collaborator concern; services only need to know
// who performed an operation for audit stamps and event payloads.
package actor

import (
	"context"
)

// Actor contains the authenticated caller's identity.
type Actor struct {
	ID   string
	Name string
	Role string // DIRECTOR, MANAGER, WORKER — informational only
}

type actorContextKey struct{}

// WithActor adds Actor to context.
func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, a)
}

// Get returns Actor from context, or nil.
func Get(ctx context.Context) *Actor {
	if v, ok := ctx.Value(actorContextKey{}).(*Actor); ok {
		return v
	}
	return nil
}

// GetID returns the actor ID from context or empty string.
func GetID(ctx context.Context) string {
	if a := Get(ctx); a != nil {
		return a.ID
	}
	return ""
}
