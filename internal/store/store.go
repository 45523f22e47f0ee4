package store

import (
	"context"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

// Store defines the interface contract for goal snapshot persistence.
// Snapshots are written whole: there is no partial update.
type Store interface {
	// CreateGoal inserts a snapshot, assigning its id and timestamps.
	CreateGoal(ctx context.Context, goal types.GoalSnapshot) (*types.GoalSnapshot, error)
	GetGoal(ctx context.Context, id string) (*types.GoalSnapshot, error)
	// UpdateGoal replaces every mutable field of an existing snapshot.
	UpdateGoal(ctx context.Context, goal types.GoalSnapshot) (*types.GoalSnapshot, error)
	// ListGoals returns a user's snapshots, newest first. An empty userID
	// lists every goal.
	ListGoals(ctx context.Context, userID string) ([]types.GoalSnapshot, error)
	CountGoals(ctx context.Context) (int64, error)
	Close() error
}
