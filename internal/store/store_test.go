package store

import (
	"context"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

// mockStore is a compile-time check that the Store interface can be implemented.
type mockStore struct{}

var _ Store = (*mockStore)(nil)

func (m *mockStore) CreateGoal(ctx context.Context, goal types.GoalSnapshot) (*types.GoalSnapshot, error) {
	return &goal, nil
}
func (m *mockStore) GetGoal(ctx context.Context, id string) (*types.GoalSnapshot, error) {
	return nil, ErrNotFound
}
func (m *mockStore) UpdateGoal(ctx context.Context, goal types.GoalSnapshot) (*types.GoalSnapshot, error) {
	return &goal, nil
}
func (m *mockStore) ListGoals(ctx context.Context, userID string) ([]types.GoalSnapshot, error) {
	return nil, nil
}
func (m *mockStore) CountGoals(ctx context.Context) (int64, error) {
	return 0, nil
}
func (m *mockStore) Close() error {
	return nil
}
