// Package goal sequences estimation, module resolution and data synthesis
// into persisted goal snapshots, and rebuilds dashboards from them.
package goal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/estimation"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/policy"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/store"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/synth"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

// DefaultOptionalModuleLimit is how many optional modules a new goal gets.
const DefaultOptionalModuleLimit = 2

var (
	// ErrGoalNotFound is returned when no snapshot exists for an id.
	ErrGoalNotFound = fmt.Errorf("goal: %w", store.ErrNotFound)

	// ErrInvalidProgress is returned for a progress outside [0,1].
	ErrInvalidProgress = errors.New("progress must be between 0 and 1")
)

// Service is the goal orchestrator. It holds no mutable state of its own.
type Service struct {
	store    store.Store
	policies *policy.Table
	registry *capability.Registry
	engine   *estimation.Engine
	synth    *synth.Synthesizer

	optionalLimit int
	now           func() time.Time
	logger        *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithOptionalModuleLimit sets how many optional modules are activated.
func WithOptionalModuleLimit(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.optionalLimit = n
		}
	}
}

// WithClock sets the clock used for feasibility and timeframe labels.
// It should match the estimation engine's clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService wires the orchestrator to its collaborators.
func NewService(
	st store.Store,
	policies *policy.Table,
	registry *capability.Registry,
	engine *estimation.Engine,
	synthesizer *synth.Synthesizer,
	opts ...Option,
) *Service {
	s := &Service{
		store:         st,
		policies:      policies,
		registry:      registry,
		engine:        engine,
		synth:         synthesizer,
		optionalLimit: DefaultOptionalModuleLimit,
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create estimates, composes and persists a new goal. Nothing is written
// if any stage fails.
func (s *Service) Create(ctx context.Context, req types.CreateGoalRequest) (*types.GoalWithDashboard, error) {
	gc := req.Context()
	est, p, err := s.engine.EstimateFor(gc, s.policies)
	if err != nil {
		return nil, fmt.Errorf("estimate goal: %w", err)
	}

	partition := s.resolveModules(p, est)
	active := policy.Union(partition.Required, partition.Contextual, partition.Optional)
	res := s.synth.Synthesize(synth.Input{
		Context:       gc,
		EstimatedCost: est.EstimatedCost,
		TargetDate:    est.TargetDate,
		Agents:        est.SuggestedAgents,
		Modules:       active,
	})

	priority := req.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	snap := types.GoalSnapshot{
		UserID:           req.UserID,
		Title:            gc.Title,
		Description:      gc.Description,
		Category:         p.ID,
		Priority:         priority,
		Status:           types.StatusActive,
		EstimatedCost:    est.EstimatedCost,
		TargetDate:       est.TargetDate.Format(types.DateLayout),
		FeasibilityScore: s.feasibility(gc, est, p),
	}
	if err := encodeSnapshot(&snap, est, partition, active, res, gc.Hints()); err != nil {
		return nil, err
	}

	created, err := s.store.CreateGoal(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("persist goal: %w", err)
	}
	s.logger.Info("goal created",
		"goal_id", created.ID,
		"category", created.Category,
		"modules", len(active),
		"feasibility", created.FeasibilityScore,
	)
	return s.dashboard(created, s.decode(created)), nil
}

// Get loads a goal and rebuilds its dashboard.
func (s *Service) Get(ctx context.Context, id string) (*types.GoalWithDashboard, error) {
	snap, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.dashboard(snap, s.decode(snap)), nil
}

// List returns a user's goal snapshots, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]types.GoalSnapshot, error) {
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// Count returns the number of stored goals.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.store.CountGoals(ctx)
	if err != nil {
		return 0, fmt.Errorf("count goals: %w", err)
	}
	return n, nil
}

// Categories returns every category policy, sorted by id.
func (s *Service) Categories() []policy.Policy {
	return s.policies.Categories()
}

// Modules returns every registered module capability in registration order.
func (s *Service) Modules() []capability.Capability {
	kinds := s.registry.Kinds()
	caps := make([]capability.Capability, 0, len(kinds))
	for _, k := range kinds {
		if c, ok := s.registry.Get(k); ok {
			caps = append(caps, c)
		}
	}
	return caps
}

// UpdateProgress records progress in [0,1]. The saved amount is
// round(estimatedCost × progress) and every module is regenerated from the
// explicit progress; reaching 1 completes the goal.
func (s *Service) UpdateProgress(ctx context.Context, id string, progress float64) (*types.GoalWithDashboard, error) {
	if math.IsNaN(progress) || progress < 0 || progress > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidProgress, progress)
	}
	snap, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	d := s.decode(snap)

	res := s.synth.SynthesizeWithProgress(synth.Input{
		Context:       d.context,
		EstimatedCost: snap.EstimatedCost,
		TargetDate:    d.target,
		Agents:        d.agents,
		Modules:       d.active,
	}, progress)
	dataset, err := json.Marshal(res.Dataset)
	if err != nil {
		return nil, fmt.Errorf("encode module dataset: %w", err)
	}

	next := *snap
	next.CurrentSaved = int(math.Round(float64(snap.EstimatedCost) * progress))
	next.ModuleDataset = string(dataset)
	switch {
	case progress >= 1:
		next.Status = types.StatusCompleted
	case next.Status == types.StatusCompleted:
		next.Status = types.StatusActive
	}

	updated, err := s.store.UpdateGoal(ctx, next)
	if err != nil {
		return nil, s.storeErr(id, err)
	}
	s.logger.Info("goal progress updated", "goal_id", id, "progress", progress, "current_saved", updated.CurrentSaved)
	return s.dashboard(updated, s.decode(updated)), nil
}

// Regenerate reruns estimation and synthesis from the goal's stored
// context, replacing cost, target date, narrative, modules and dataset.
func (s *Service) Regenerate(ctx context.Context, id string) (*types.GoalWithDashboard, error) {
	snap, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	gc := s.decode(snap).context

	est, p, err := s.engine.EstimateFor(gc, s.policies)
	if err != nil {
		return nil, fmt.Errorf("estimate goal: %w", err)
	}
	partition := s.resolveModules(p, est)
	active := policy.Union(partition.Required, partition.Contextual, partition.Optional)
	res := s.synth.Synthesize(synth.Input{
		Context:       gc,
		EstimatedCost: est.EstimatedCost,
		TargetDate:    est.TargetDate,
		Agents:        est.SuggestedAgents,
		Modules:       active,
	})

	next := *snap
	next.Category = p.ID
	next.EstimatedCost = est.EstimatedCost
	next.TargetDate = est.TargetDate.Format(types.DateLayout)
	next.FeasibilityScore = s.feasibility(gc, est, p)
	if err := encodeSnapshot(&next, est, partition, active, res, gc.Hints()); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateGoal(ctx, next)
	if err != nil {
		return nil, s.storeErr(id, err)
	}
	s.logger.Info("goal regenerated", "goal_id", id, "category", p.ID, "modules", len(active))
	return s.dashboard(updated, s.decode(updated)), nil
}

// resolveModules applies eligibility to everything but the required tier.
// Required modules are always active, registered or not.
func (s *Service) resolveModules(p policy.Policy, est types.Estimation) types.ModulePartition {
	ec := capability.EligibilityContext{
		Category:      p.ID,
		Agents:        est.SuggestedAgents,
		EstimatedCost: est.EstimatedCost,
		HasDeadline:   !est.TargetDate.IsZero(),
	}
	required := policy.Union(est.RequiredModules)
	contextual := s.registry.FilterEligible(without(est.ContextualModules, required), ec)

	optional := without(est.OptionalModules, required, contextual)
	if len(optional) > s.optionalLimit {
		optional = optional[:s.optionalLimit]
	}
	optional = s.registry.FilterEligible(optional, ec)

	return types.ModulePartition{
		Required:   required,
		Contextual: contextual,
		Optional:   optional,
	}
}

func (s *Service) feasibility(gc types.GoalContext, est types.Estimation, p policy.Policy) int {
	days := daysBetween(today(s.now()), est.TargetDate)
	return FeasibilityScore(days, est.EstimatedCost, gc.UserBudget, est.Complexity, p.FeasibilityAdjustment)
}

func (s *Service) load(ctx context.Context, id string) (*types.GoalSnapshot, error) {
	snap, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return nil, s.storeErr(id, err)
	}
	return snap, nil
}

func (s *Service) storeErr(id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	}
	return fmt.Errorf("goal %s: %w", id, err)
}

// encodeSnapshot serializes the derived sub-objects into snap.
func encodeSnapshot(
	snap *types.GoalSnapshot,
	est types.Estimation,
	partition types.ModulePartition,
	active []capability.ModuleKind,
	res synth.Result,
	hints types.ContextHints,
) error {
	fields := []struct {
		name string
		dst  *string
		v    any
	}{
		{"narrative", &snap.Narrative, est.Narrative},
		{"assigned_agents", &snap.AssignedAgents, nonNil(est.SuggestedAgents)},
		{"module_dataset", &snap.ModuleDataset, res.Dataset},
		{"active_module_ids", &snap.ActiveModuleIDs, nonNil(active)},
		{"module_partition", &snap.ModulePartition, types.ModulePartition{
			Required:   nonNil(partition.Required),
			Contextual: nonNil(partition.Contextual),
			Optional:   nonNil(partition.Optional),
		}},
		{"context", &snap.Context, hints},
	}
	for _, f := range fields {
		b, err := json.Marshal(f.v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.name, err)
		}
		*f.dst = string(b)
	}
	return nil
}

// without returns the entries of list not present in any of exclude.
func without(list []capability.ModuleKind, exclude ...[]capability.ModuleKind) []capability.ModuleKind {
	seen := make(map[capability.ModuleKind]bool)
	for _, ex := range exclude {
		for _, k := range ex {
			seen[k] = true
		}
	}
	var out []capability.ModuleKind
	for _, k := range list {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
