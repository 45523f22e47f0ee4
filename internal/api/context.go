package api

import (
	"context"
)

// goalIDContextKey is the context key for the goal id of a request.
type goalIDContextKey struct{}

// WithGoalID returns a new context with the goal id attached.
func WithGoalID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, goalIDContextKey{}, id)
}

// GoalIDFromContext extracts the goal id from the context.
// Returns "" if not present.
func GoalIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(goalIDContextKey{}).(string)
	return id
}
