// Package estimation turns a free-text goal context into a cost, a target
// date, a complexity tier, contextual dashboard modules and SMART narrative.
//
// Every stage is a deterministic function of the context, the category
// policy and the engine clock.
package estimation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/policy"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

// Engine derives estimations. It is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to anchor target dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine using the wall clock unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EstimateFor resolves the category policy and runs every stage.
// An unregistered category fails with policy.ErrUnknownCategory and no
// partial result.
func (e *Engine) EstimateFor(gc types.GoalContext, table *policy.Table) (types.Estimation, policy.Policy, error) {
	p, err := table.PolicyFor(gc.Category)
	if err != nil {
		return types.Estimation{}, policy.Policy{}, err
	}
	return e.Estimate(gc, p), p, nil
}

// Estimate runs every stage against an already resolved policy.
func (e *Engine) Estimate(gc types.GoalContext, p policy.Policy) types.Estimation {
	cost := EstimateCost(gc, p)
	days := EstimateDays(gc, p)

	return types.Estimation{
		EstimatedCost:     cost,
		TargetDate:        e.targetDate(days),
		TimeframeLabel:    TimeframeLabel(days),
		Complexity:        AssessComplexity(gc),
		RequiredModules:   p.RequiredModules,
		ContextualModules: SelectContextualModules(gc, p),
		OptionalModules:   p.OptionalModules,
		SuggestedAgents:   p.SuggestedAgents,
		Narrative:         GenerateNarrative(gc, p, cost, days),
	}
}

// Today returns the engine's current date at midnight UTC.
func (e *Engine) Today() time.Time {
	now := e.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (e *Engine) targetDate(days int) time.Time {
	return e.Today().AddDate(0, 0, days)
}

// EstimateCost returns the estimated cost in whole currency units, at least 1.
func EstimateCost(gc types.GoalContext, p policy.Policy) int {
	text := goalText(gc)

	cost := float64(p.DefaultEstimatedCost)
	if explicit, ok := ParseCurrency(text); ok {
		cost = explicit
	}

	for _, m := range costModifiers {
		if hasAnyKeyword(text, m.keywords) {
			cost *= m.factor
		}
	}

	cost *= LocationMultiplier(gc)

	for _, r := range categoryCostRules {
		if r.matches(p.ID, p.HabitForming, text) {
			cost = r.effect.apply(cost, r.value)
		}
	}

	rounded := int(math.Round(cost))
	if rounded < 1 {
		return 1
	}
	return rounded
}

// ParseCurrency finds the first explicit amount such as "$1,200", "$5k"
// or "300 dollars" in text.
func ParseCurrency(text string) (float64, bool) {
	text = strings.ToLower(text)
	for _, re := range []*regexp.Regexp{currencyToken, currencyWords} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		switch m[2] {
		case "k":
			amount *= 1_000
		case "m":
			amount *= 1_000_000
		}
		if amount > 0 {
			return amount, true
		}
	}
	return 0, false
}

// LocationMultiplier returns the cost-of-living factor for the goal's
// location. The explicit user location is preferred over the goal text.
func LocationMultiplier(gc types.GoalContext) float64 {
	where := strings.ToLower(strings.TrimSpace(gc.UserLocation))
	if where == "" {
		where = goalText(gc)
	}
	for _, tier := range locationTiers {
		for _, place := range tier.keywords {
			if hasWord(where, place) {
				return tier.factor
			}
		}
	}
	return 1.0
}

// MaxDays caps every duration so target dates keep a four-digit year.
const MaxDays = 100 * 365

// EstimateDays returns the number of days until the goal's target date,
// between 1 and MaxDays.
func EstimateDays(gc types.GoalContext, p policy.Policy) int {
	text := goalText(gc)

	days := float64(p.DefaultDeadlineDays)
	if explicit, ok := explicitDuration(gc); ok {
		days = float64(explicit)
	}

	for _, m := range durationModifiers {
		if hasAnyKeyword(text, m.keywords) {
			days *= m.factor
		}
	}

	for _, r := range categoryDurationRules {
		if r.matches(p.ID, p.HabitForming, text) {
			days = r.effect.apply(days, r.value)
		}
	}

	if days > MaxDays {
		return MaxDays
	}
	rounded := int(math.Round(days))
	if rounded < 1 {
		return 1
	}
	return rounded
}

// explicitDuration looks for a duration in the user timeframe, then the
// title, then the description.
func explicitDuration(gc types.GoalContext) (int, bool) {
	for _, s := range []string{gc.UserTimeframe, gc.Title, gc.Description} {
		if d, ok := ParseDuration(s); ok {
			return d, true
		}
	}
	return 0, false
}

// ParseDuration finds a "<N> day|week|month|year(s)" token and returns it
// in days. Phrases introduced by in/within/over/for/next/by are preferred;
// cadence phrases such as "5 days a week" are ignored.
func ParseDuration(text string) (int, bool) {
	text = strings.ToLower(text)
	for _, re := range []*regexp.Regexp{prefixedDuration, bareDuration} {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if cadenceSuffix.MatchString(text[loc[1]:]) {
				continue
			}
			if d, ok := toDays(text[loc[2]:loc[3]], text[loc[4]:loc[5]]); ok {
				return d, true
			}
		}
	}
	return 0, false
}

// toDays converts a parsed count to days, capped at MaxDays.
func toDays(n, unit string) (int, bool) {
	count, err := strconv.Atoi(n)
	if errors.Is(err, strconv.ErrRange) {
		return MaxDays, true
	}
	if err != nil || count <= 0 {
		return 0, false
	}
	if count > MaxDays/unitDays[unit] {
		return MaxDays, true
	}
	return count * unitDays[unit], true
}

// AssessComplexity classifies the goal text. Advanced keywords are checked
// before beginner keywords; neither yields moderate.
func AssessComplexity(gc types.GoalContext) types.ComplexityTier {
	text := goalText(gc) + " " + strings.ToLower(gc.UserExperience)
	for _, tier := range complexityTiers {
		if hasAnyKeyword(text, tier.keywords) {
			return tier.tier
		}
	}
	return types.ComplexityModerate
}

// SelectContextualModules returns the policy's contextual modules plus any
// triggered by the goal text. It never drops a policy module and returns
// the same set for the same input.
func SelectContextualModules(gc types.GoalContext, p policy.Policy) []capability.ModuleKind {
	text := goalText(gc)
	var triggered []capability.ModuleKind
	for _, t := range contextualTriggers {
		if hasAnyKeyword(text, t.keywords) {
			triggered = append(triggered, t.module)
		}
	}
	return policy.Union(p.ContextualModules, triggered)
}

// TimeframeLabel renders a day count as a human-readable span.
func TimeframeLabel(days int) string {
	switch {
	case days < 14:
		return plural(days, "day")
	case days < 60:
		return plural(int(math.Round(float64(days)/7)), "week")
	case days < 730:
		return plural(int(math.Round(float64(days)/30)), "month")
	default:
		return plural(int(math.Round(float64(days)/365)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// goalText is the lowercased text every keyword rule scans.
func goalText(gc types.GoalContext) string {
	return strings.ToLower(gc.Title + " " + gc.Description)
}
