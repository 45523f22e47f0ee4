package goal

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/estimation"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/synth"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

// Positional tier sizes for snapshots written without a module partition.
const (
	legacyRequiredCount   = 4
	legacyContextualCount = 4
)

// decoded holds the deserialized sub-objects of a snapshot. Each field is
// decoded on its own; a malformed one is left empty.
type decoded struct {
	context   types.GoalContext
	target    time.Time
	narrative types.Narrative
	agents    []string
	dataset   map[capability.ModuleKind]json.RawMessage
	active    []capability.ModuleKind
	partition types.ModulePartition
}

func (s *Service) decode(snap *types.GoalSnapshot) decoded {
	var d decoded
	var hints types.ContextHints
	var activeIDs []string
	var dataset map[string]json.RawMessage

	s.decodeField(snap.ID, "narrative", snap.Narrative, &d.narrative)
	s.decodeField(snap.ID, "assigned_agents", snap.AssignedAgents, &d.agents)
	s.decodeField(snap.ID, "module_dataset", snap.ModuleDataset, &dataset)
	s.decodeField(snap.ID, "active_module_ids", snap.ActiveModuleIDs, &activeIDs)
	s.decodeField(snap.ID, "context", snap.Context, &hints)

	for _, id := range activeIDs {
		d.active = append(d.active, storedKind(id))
	}
	if dataset != nil {
		d.dataset = make(map[capability.ModuleKind]json.RawMessage, len(dataset))
		for id, raw := range dataset {
			d.dataset[storedKind(id)] = raw
		}
	}

	d.context = types.GoalContext{
		Title:          snap.Title,
		Description:    snap.Description,
		Category:       snap.Category,
		UserLocation:   hints.UserLocation,
		UserBudget:     hints.UserBudget,
		UserTimeframe:  hints.UserTimeframe,
		UserExperience: hints.UserExperience,
	}

	if t, err := time.Parse(types.DateLayout, snap.TargetDate); err == nil {
		d.target = t
	} else {
		s.malformed(snap.ID, "target_date", err)
	}

	if !s.decodeField(snap.ID, "module_partition", snap.ModulePartition, &d.partition) {
		d.partition = positionalPartition(d.active)
	}
	for _, tier := range [][]capability.ModuleKind{d.partition.Required, d.partition.Contextual, d.partition.Optional} {
		for i, k := range tier {
			tier[i] = storedKind(string(k))
		}
	}
	return d
}

// decodeField unmarshals raw into v and reports whether it succeeded. An
// empty column is not an error but still reports false.
func (s *Service) decodeField(id, field, raw string, v any) bool {
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.malformed(id, field, err)
		return false
	}
	return true
}

func (s *Service) malformed(id, field string, err error) {
	s.logger.Warn("goal: malformed snapshot field",
		"goal_id", id,
		"field", field,
		"error", err,
	)
}

// storedKind normalizes a persisted module id. Ids outside the closed set
// are kept verbatim so they still render as unavailable.
func storedKind(id string) capability.ModuleKind {
	if k, ok := capability.ParseKind(id); ok {
		return k
	}
	return capability.ModuleKind(id)
}

// positionalPartition approximates the tiers of an old snapshot: the first
// four active modules are required, the next four contextual, the rest
// optional.
func positionalPartition(active []capability.ModuleKind) types.ModulePartition {
	cut := func(lo, hi int) []capability.ModuleKind {
		lo, hi = min(lo, len(active)), min(hi, len(active))
		return append([]capability.ModuleKind{}, active[lo:hi]...)
	}
	return types.ModulePartition{
		Required:   cut(0, legacyRequiredCount),
		Contextual: cut(legacyRequiredCount, legacyRequiredCount+legacyContextualCount),
		Optional:   cut(legacyRequiredCount+legacyContextualCount, len(active)),
	}
}

// dashboard rebuilds the estimation and module views of a snapshot.
func (s *Service) dashboard(snap *types.GoalSnapshot, d decoded) *types.GoalWithDashboard {
	days := daysBetween(today(snap.CreatedAt), d.target)
	if d.target.IsZero() {
		days = 0
	}

	est := types.Estimation{
		EstimatedCost:     snap.EstimatedCost,
		TargetDate:        d.target,
		TimeframeLabel:    estimation.TimeframeLabel(max(days, 1)),
		Complexity:        estimation.AssessComplexity(d.context),
		RequiredModules:   d.partition.Required,
		ContextualModules: d.partition.Contextual,
		OptionalModules:   d.partition.Optional,
		SuggestedAgents:   d.agents,
		Narrative:         d.narrative,
	}

	views := make([]types.ModuleView, 0, len(d.active))
	for _, kind := range d.active {
		views = append(views, s.moduleView(snap.ID, kind, d.dataset))
	}
	return &types.GoalWithDashboard{
		Goal:       *snap,
		Estimation: est,
		Modules:    views,
	}
}

// moduleView renders one active module. Unregistered kinds and modules
// without usable data come back unavailable rather than failing the page.
func (s *Service) moduleView(goalID string, kind capability.ModuleKind, dataset map[capability.ModuleKind]json.RawMessage) types.ModuleView {
	c, ok := s.registry.Get(kind)
	if !ok {
		s.logger.Warn("goal: module not registered", "goal_id", goalID, "module", kind)
		return types.ModuleView{ID: kind, Available: false}
	}

	view := types.ModuleView{
		ID:         kind,
		Renderer:   c.Renderer,
		Parameters: c.DefaultParameters,
	}
	data, ok := dataset[kind]
	switch {
	case !ok:
		view.Data = synth.Placeholder
	case bytes.Equal(data, synth.Placeholder):
		view.Data = data
	default:
		view.Available = true
		view.Data = data
	}
	return view
}
