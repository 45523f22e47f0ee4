package capability

import (
	"slices"
	"strings"
)

// DeadlineRule declares whether a module needs the goal to carry a deadline.
type DeadlineRule int

const (
	// DeadlineAny accepts goals with or without a deadline.
	DeadlineAny DeadlineRule = iota
	// DeadlineRequired only admits goals that have a target date.
	DeadlineRequired
	// DeadlineAbsent only admits open-ended goals.
	DeadlineAbsent
)

// Eligibility is the predicate a module must pass to be surfaced.
// Zero values mean "no constraint" for every clause.
type Eligibility struct {
	// Categories restricts the module to these goal categories.
	Categories []string

	// AnyOfAgents requires at least one of these agents to be present.
	AnyOfAgents []string

	// MinEstimatedCost excludes goals whose estimated cost is lower.
	MinEstimatedCost int

	// Deadline constrains deadline presence.
	Deadline DeadlineRule
}

// EligibilityContext carries the goal facts eligibility is evaluated against.
type EligibilityContext struct {
	Category      string
	Agents        []string
	EstimatedCost int
	HasDeadline   bool
}

// Allows reports whether the predicate admits the given goal.
func (e Eligibility) Allows(ec EligibilityContext) bool {
	if len(e.Categories) > 0 && !slices.Contains(e.Categories, strings.ToLower(ec.Category)) {
		return false
	}
	if len(e.AnyOfAgents) > 0 {
		found := false
		for _, a := range ec.Agents {
			if slices.Contains(e.AnyOfAgents, a) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if ec.EstimatedCost < e.MinEstimatedCost {
		return false
	}
	switch e.Deadline {
	case DeadlineRequired:
		return ec.HasDeadline
	case DeadlineAbsent:
		return !ec.HasDeadline
	}
	return true
}

// Capability describes what the system can surface for a module kind.
type Capability struct {
	Kind              ModuleKind     `json:"id"`
	Renderer          Renderer       `json:"renderer"`
	DefaultParameters map[string]any `json:"default_parameters,omitempty"`
	Eligibility       Eligibility    `json:"-"`
}

// Builder accumulates capabilities before the registry is frozen.
// A Builder is not safe for concurrent use.
type Builder struct {
	caps  map[ModuleKind]Capability
	order []ModuleKind
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{caps: make(map[ModuleKind]Capability)}
}

// Register adds or replaces the capability for kind. Last registration wins.
// An empty renderer falls back to the kind's built-in renderer, and a nil
// eligibility registers the module as unconditionally eligible.
func (b *Builder) Register(kind ModuleKind, renderer Renderer, defaults map[string]any, eligibility *Eligibility) *Builder {
	if renderer == "" {
		renderer, _ = RendererFor(kind)
	}
	c := Capability{
		Kind:              kind,
		Renderer:          renderer,
		DefaultParameters: cloneParams(defaults),
	}
	if eligibility != nil {
		c.Eligibility = *eligibility
	}
	if _, exists := b.caps[kind]; !exists {
		b.order = append(b.order, kind)
	}
	b.caps[kind] = c
	return b
}

// Build freezes the registered capabilities into an immutable Registry.
func (b *Builder) Build() *Registry {
	r := &Registry{
		caps:  make(map[ModuleKind]Capability, len(b.caps)),
		order: make([]ModuleKind, len(b.order)),
	}
	copy(r.order, b.order)
	for k, c := range b.caps {
		r.caps[k] = c
	}
	return r
}

// Registry is the read-only module capability table.
// It is safe for concurrent reads without locking.
type Registry struct {
	caps  map[ModuleKind]Capability
	order []ModuleKind
}

// Get returns the capability registered for kind.
func (r *Registry) Get(kind ModuleKind) (Capability, bool) {
	c, ok := r.caps[kind]
	if !ok {
		return Capability{}, false
	}
	c.DefaultParameters = cloneParams(c.DefaultParameters)
	return c, true
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind ModuleKind) bool {
	_, ok := r.caps[kind]
	return ok
}

// Kinds returns registered kinds in registration order.
func (r *Registry) Kinds() []ModuleKind {
	out := make([]ModuleKind, len(r.order))
	copy(out, r.order)
	return out
}

// FilterEligible keeps the candidates that are registered and whose
// predicate admits ec. Order is preserved; unregistered or ineligible ids
// are dropped silently.
func (r *Registry) FilterEligible(candidates []ModuleKind, ec EligibilityContext) []ModuleKind {
	out := make([]ModuleKind, 0, len(candidates))
	for _, k := range candidates {
		c, ok := r.caps[k]
		if !ok {
			continue
		}
		if !c.Eligibility.Allows(ec) {
			continue
		}
		out = append(out, k)
	}
	return out
}

func cloneParams(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
