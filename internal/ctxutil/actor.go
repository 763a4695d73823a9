// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for the acting user's ID.
// Exported so it can be used consistently across packages.
type ActorKey struct{}

// RoleKey is the context key for the acting user's role.
type RoleKey struct{}

// WithActor returns a context with the actor's user ID and role embedded.
func WithActor(ctx context.Context, userID int64, role string) context.Context {
	ctx = context.WithValue(ctx, ActorKey{}, userID)
	return context.WithValue(ctx, RoleKey{}, role)
}

// ActorFromContext returns the actor's user ID from context, or 0 if not set.
func ActorFromContext(ctx context.Context) int64 {
	if v := ctx.Value(ActorKey{}); v != nil {
		return v.(int64)
	}
	return 0
}

// RoleFromContext returns the actor's role from context, or empty string if not set.
func RoleFromContext(ctx context.Context) string {
	if v := ctx.Value(RoleKey{}); v != nil {
		return v.(string)
	}
	return ""
}
