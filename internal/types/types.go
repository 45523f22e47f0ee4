package types

import (
	"encoding/json"
	"time"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
)

// DateLayout is the persisted target date format.
const DateLayout = "2006-01-02"

// Priority ranks a goal against the user's other goals
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status is the lifecycle state of a goal
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// ComplexityTier classifies how demanding a goal reads.
type ComplexityTier string

const (
	ComplexitySimple   ComplexityTier = "simple"
	ComplexityModerate ComplexityTier = "moderate"
	ComplexityComplex  ComplexityTier = "complex"
)

// GoalContext is the user's description of a goal plus optional hints.
// It lives only for the duration of one request.
type GoalContext struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	UserLocation   string   `json:"user_location,omitempty"`
	UserBudget     *float64 `json:"user_budget,omitempty"`
	UserTimeframe  string   `json:"user_timeframe,omitempty"`
	UserExperience string   `json:"user_experience,omitempty"`
}

// ContextHints is the subset of GoalContext that is not already a snapshot column.
type ContextHints struct {
	UserLocation   string   `json:"user_location,omitempty"`
	UserBudget     *float64 `json:"user_budget,omitempty"`
	UserTimeframe  string   `json:"user_timeframe,omitempty"`
	UserExperience string   `json:"user_experience,omitempty"`
}

// Hints extracts the optional hints from a context.
func (c GoalContext) Hints() ContextHints {
	return ContextHints{
		UserLocation:   c.UserLocation,
		UserBudget:     c.UserBudget,
		UserTimeframe:  c.UserTimeframe,
		UserExperience: c.UserExperience,
	}
}

// Narrative is the SMART description of a goal.
type Narrative struct {
	Specific   string `json:"specific"`
	Measurable string `json:"measurable"`
	Achievable string `json:"achievable"`
	Relevant   string `json:"relevant"`
	TimeBound  string `json:"time_bound"`
}

// ModulePartition records which tier each active module came from.
type ModulePartition struct {
	Required   []capability.ModuleKind `json:"required"`
	Contextual []capability.ModuleKind `json:"contextual"`
	Optional   []capability.ModuleKind `json:"optional"`
}

// Estimation is the derived plan for a goal.
type Estimation struct {
	EstimatedCost     int                     `json:"estimated_cost"`
	TargetDate        time.Time               `json:"target_date"`
	TimeframeLabel    string                  `json:"timeframe_label"`
	Complexity        ComplexityTier          `json:"complexity"`
	RequiredModules   []capability.ModuleKind `json:"required_modules"`
	ContextualModules []capability.ModuleKind `json:"contextual_modules"`
	OptionalModules   []capability.ModuleKind `json:"optional_modules"`
	SuggestedAgents   []string                `json:"suggested_agents"`
	Narrative         Narrative               `json:"narrative"`
}

// MarshalJSON ensures nil slices in Estimation marshal as [] not null.
func (e Estimation) MarshalJSON() ([]byte, error) {
	if e.RequiredModules == nil {
		e.RequiredModules = []capability.ModuleKind{}
	}
	if e.ContextualModules == nil {
		e.ContextualModules = []capability.ModuleKind{}
	}
	if e.OptionalModules == nil {
		e.OptionalModules = []capability.ModuleKind{}
	}
	if e.SuggestedAgents == nil {
		e.SuggestedAgents = []string{}
	}
	type Alias Estimation
	return json.Marshal(Alias(e))
}

// GoalSnapshot is the flattened, persisted goal record.
// Serialized sub-objects are stored as JSON text.
type GoalSnapshot struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Priority         Priority  `json:"priority"`
	Status           Status    `json:"status"`
	EstimatedCost    int       `json:"estimated_cost"`
	CurrentSaved     int       `json:"current_saved"`
	TargetDate       string    `json:"target_date"`
	FeasibilityScore int       `json:"feasibility_score"`
	Narrative        string    `json:"narrative"`
	AssignedAgents   string    `json:"assigned_agents"`
	ModuleDataset    string    `json:"module_dataset"`
	ActiveModuleIDs  string    `json:"active_module_ids"`
	ModulePartition  string    `json:"module_partition,omitempty"`
	Context          string    `json:"context,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateGoalRequest is the inbound payload for creating a goal.
type CreateGoalRequest struct {
	UserID         string   `json:"user_id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Priority       Priority `json:"priority,omitempty"`
	UserLocation   string   `json:"user_location,omitempty"`
	UserBudget     *float64 `json:"user_budget,omitempty"`
	UserTimeframe  string   `json:"user_timeframe,omitempty"`
	UserExperience string   `json:"user_experience,omitempty"`
}

// Context returns the goal context described by the request.
func (r CreateGoalRequest) Context() GoalContext {
	return GoalContext{
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		UserLocation:   r.UserLocation,
		UserBudget:     r.UserBudget,
		UserTimeframe:  r.UserTimeframe,
		UserExperience: r.UserExperience,
	}
}

// UpdateProgressRequest is the inbound payload for a progress update.
type UpdateProgressRequest struct {
	Progress *float64 `json:"progress"`
}

// ModuleView is one dashboard module as presented to the caller.
type ModuleView struct {
	ID         capability.ModuleKind `json:"id"`
	Renderer   capability.Renderer   `json:"renderer,omitempty"`
	Available  bool                  `json:"available"`
	Parameters map[string]any        `json:"parameters,omitempty"`
	Data       json.RawMessage       `json:"data,omitempty"`
}

// GoalWithDashboard is a goal together with its estimation and modules.
type GoalWithDashboard struct {
	Goal       GoalSnapshot `json:"goal"`
	Estimation Estimation   `json:"estimation"`
	Modules    []ModuleView `json:"modules"`
}

// MarshalJSON ensures nil slices in GoalWithDashboard marshal as [] not null.
func (g GoalWithDashboard) MarshalJSON() ([]byte, error) {
	if g.Modules == nil {
		g.Modules = []ModuleView{}
	}
	type Alias GoalWithDashboard
	return json.Marshal(Alias(g))
}

// GoalListResponse wraps a list of goal snapshots.
type GoalListResponse struct {
	Goals []GoalSnapshot `json:"goals"`
	Total int            `json:"total"`
}

// MarshalJSON ensures nil slices in GoalListResponse marshal as [] not null.
func (g GoalListResponse) MarshalJSON() ([]byte, error) {
	if g.Goals == nil {
		g.Goals = []GoalSnapshot{}
	}
	type Alias GoalListResponse
	return json.Marshal(Alias(g))
}

// ExportResponse is returned after a dashboard export.
type ExportResponse struct {
	GoalID    string    `json:"goal_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	GoalCount  int64  `json:"goal_count"`
	Categories int    `json:"categories"`
	Modules    int    `json:"modules"`
}
