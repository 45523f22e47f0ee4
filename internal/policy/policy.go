// Package policy holds the static per-category goal configuration: default
// cost and deadline, and which dashboard modules a category surfaces.
package policy

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
)

var (
	// ErrUnknownCategory indicates the category id has no policy.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidPolicy indicates a policy failed construction checks.
	ErrInvalidPolicy = errors.New("invalid policy")
)

// Policy is the immutable configuration of one goal category.
type Policy struct {
	ID                   string                  `json:"id"`
	Name                 string                  `json:"name"`
	Description          string                  `json:"description"`
	DefaultDeadlineDays  int                     `json:"default_deadline_days"`
	DefaultEstimatedCost int                     `json:"default_estimated_cost"`
	RequiredModules      []capability.ModuleKind `json:"required_modules"`
	ContextualModules    []capability.ModuleKind `json:"contextual_modules"`
	OptionalModules      []capability.ModuleKind `json:"optional_modules"`
	SuggestedAgents      []string                `json:"suggested_agents"`

	// HabitForming categories need at least 66 days to establish a routine.
	HabitForming bool `json:"habit_forming"`

	// FeasibilityAdjustment is added to every goal's feasibility score.
	FeasibilityAdjustment int `json:"feasibility_adjustment"`
}

// Table is a read-only lookup of category policies.
type Table struct {
	policies map[string]Policy
}

// NewTable validates and indexes the given policies.
func NewTable(policies ...Policy) (*Table, error) {
	t := &Table{policies: make(map[string]Policy, len(policies))}
	for _, p := range policies {
		id := normalizeID(p.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidPolicy)
		}
		if _, dup := t.policies[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidPolicy, id)
		}
		if len(p.RequiredModules) == 0 {
			return nil, fmt.Errorf("%w: %q has no required modules", ErrInvalidPolicy, id)
		}
		if p.DefaultDeadlineDays <= 0 || p.DefaultEstimatedCost <= 0 {
			return nil, fmt.Errorf("%w: %q defaults must be positive", ErrInvalidPolicy, id)
		}
		p.ID = id
		t.policies[id] = clonePolicy(p)
	}
	return t, nil
}

// PolicyFor returns the policy for category.
func (t *Table) PolicyFor(category string) (Policy, error) {
	p, ok := t.policies[normalizeID(category)]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return clonePolicy(p), nil
}

// Has reports whether category is registered.
func (t *Table) Has(category string) bool {
	_, ok := t.policies[normalizeID(category)]
	return ok
}

// ModulesFor returns required ∪ contextual modules for category, plus the
// optional modules when includeOptional is set. Duplicates are removed and
// required modules keep their leading position.
func (t *Table) ModulesFor(category string, includeOptional bool) ([]capability.ModuleKind, error) {
	p, err := t.PolicyFor(category)
	if err != nil {
		return nil, err
	}
	lists := [][]capability.ModuleKind{p.RequiredModules, p.ContextualModules}
	if includeOptional {
		lists = append(lists, p.OptionalModules)
	}
	return Union(lists...), nil
}

// Categories returns all policies ordered by id.
func (t *Table) Categories() []Policy {
	out := make([]Policy, 0, len(t.policies))
	for _, p := range t.policies {
		out = append(out, clonePolicy(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Validate checks that every required module of every category is
// registered in r and that contextual and optional modules name known
// kinds. It is meant to run once at startup.
func (t *Table) Validate(r *capability.Registry) error {
	known := capability.AllKinds()
	var missing, unknown []string
	for _, p := range t.Categories() {
		for _, k := range p.RequiredModules {
			if !r.Has(k) {
				missing = append(missing, p.ID+"/"+string(k))
			}
		}
		for _, k := range slices.Concat(p.ContextualModules, p.OptionalModules) {
			if !slices.Contains(known, k) {
				unknown = append(unknown, p.ID+"/"+string(k))
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: unregistered required modules: %s", ErrInvalidPolicy, strings.Join(missing, ", "))
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: unknown module kinds: %s", ErrInvalidPolicy, strings.Join(unknown, ", "))
	}
	return nil
}

// Union concatenates lists, keeping the first occurrence of each kind.
func Union(lists ...[]capability.ModuleKind) []capability.ModuleKind {
	var out []capability.ModuleKind
	for _, l := range lists {
		for _, k := range l {
			if !slices.Contains(out, k) {
				out = append(out, k)
			}
		}
	}
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func clonePolicy(p Policy) Policy {
	p.RequiredModules = slices.Clone(p.RequiredModules)
	p.ContextualModules = slices.Clone(p.ContextualModules)
	p.OptionalModules = slices.Clone(p.OptionalModules)
	p.SuggestedAgents = slices.Clone(p.SuggestedAgents)
	return p
}
