package estimation

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/policy"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

var fixedNow = time.Date(2025, time.January, 15, 12, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func mustPolicy(t *testing.T, id string) policy.Policy {
	t.Helper()
	p, err := policy.Default().PolicyFor(id)
	if err != nil {
		t.Fatalf("PolicyFor(%q) error = %v", id, err)
	}
	return p
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name     string
		category string
		title    string
		location string
		want     int
	}{
		{"explicit overrides travel default", "travel", "Save $1200 for a trip", "", 1200},
		{"scenario A", "savings", "Save $5000 for emergency fund", "", 5000},
		{"thousands suffix", "savings", "Put away $5k", "", 5000},
		{"comma separated", "savings", "Save $1,200 this spring", "", 1200},
		{"dollars word", "savings", "Save 750 dollars", "", 750},
		{"category default", "savings", "Build a rainy day fund", "", 5000},
		{"luxury", "travel", "Luxury trip to the Maldives", "", 4500},
		{"cheap", "travel", "Cheap backpacking trip", "", 2100},
		{"high-cost city", "travel", "See the cherry blossoms", "Tokyo, Japan", 4200},
		{"mid-cost country", "travel", "Visit friends", "Berlin, Germany", 3600},
		{"low-cost region", "travel", "Surf lessons", "Bangkok, Thailand", 1800},
		{"location from text", "travel", "A month in Bali", "", 3600},
		{"travel week", "travel", "Two week trip to Lisbon", "", 2400},
		{"investment floor", "investment", "Grow my portfolio by $2,000", "", 10000},
		{"business floor", "business", "Launch a startup with $1000", "", 5000},
		{"business default above floor", "business", "Launch a startup", "", 15000},
		{"minimum one", "savings", "Save $0.2", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc := types.GoalContext{Title: tt.title, Category: tt.category, UserLocation: tt.location}
			got := EstimateCost(gc, mustPolicy(t, tt.category))
			if got != tt.want {
				t.Errorf("EstimateCost() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimateCost_AlwaysPositive(t *testing.T) {
	for _, p := range policy.Default().Categories() {
		for _, title := range []string{"", "cheap budget affordable", "$0", "Trip to Nepal, cheap"} {
			gc := types.GoalContext{Title: title, Category: p.ID}
			if got := EstimateCost(gc, p); got <= 0 {
				t.Errorf("EstimateCost(%q, %q) = %d, want > 0", p.ID, title, got)
			}
		}
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"$1,200", 1200, true},
		{"$5k", 5000, true},
		{"$2.5m", 2500000, true},
		{"about $ 300 total", 300, true},
		{"300 USD", 300, true},
		{"$0", 0, false},
		{"no money here", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCurrency(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseCurrency(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLocationMultiplier_WholeWordsOnly(t *testing.T) {
	gc := types.GoalContext{Title: "Buy a usable ukulele"}
	if got := LocationMultiplier(gc); got != 1.0 {
		t.Errorf("LocationMultiplier() = %v, want 1.0", got)
	}
}

func TestEstimateDays(t *testing.T) {
	tests := []struct {
		name      string
		category  string
		title     string
		timeframe string
		want      int
	}{
		{"scenario A default", "savings", "Save $5000 for emergency fund", "", 180},
		{"explicit overrides larger default", "home", "Buy a house in 3 months", "", 90},
		{"habit floor", "habits", "Meditate every morning", "", 66},
		{"habit floor beats explicit", "habits", "Journal nightly for 2 weeks", "", 66},
		{"language fluent floor", "language", "Become fluent in Spanish", "", 365},
		{"marathon override", "fitness", "Run a marathon", "", 180},
		{"5k override", "fitness", "Run my first 5k", "", 90},
		{"override after explicit", "fitness", "Run a 5k in 6 weeks", "", 90},
		{"master multiplier", "learning", "Master Go programming", "", 180},
		{"beginner multiplier", "learning", "Beginner guitar lessons", "", 84},
		{"prefixed beats cadence", "learning", "Study 5 days a week for 8 weeks", "", 56},
		{"cadence ignored", "learning", "Practice 3 days a week", "", 120},
		{"timeframe hint wins", "learning", "Learn piano in 2 years", "6 months", 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc := types.GoalContext{Title: tt.title, Category: tt.category, UserTimeframe: tt.timeframe}
			got := EstimateDays(gc, mustPolicy(t, tt.category))
			if got != tt.want {
				t.Errorf("EstimateDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimateDays_HabitFloorWithSmallDefault(t *testing.T) {
	p := mustPolicy(t, "habits")
	p.DefaultDeadlineDays = 7

	got := EstimateDays(types.GoalContext{Title: "Drink more water", Category: "habits"}, p)
	if got < 66 {
		t.Errorf("EstimateDays() = %d, want >= 66", got)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"in 3 months", 90, true},
		{"2 years", 730, true},
		{"10 days", 10, true},
		{"within 3 weeks", 21, true},
		{"in 1 year", 365, true},
		{"5 days a week", 0, false},
		{"0 days", 0, false},
		{"someday", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDuration(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseDuration(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEstimate_TargetDateAddsDaysToToday(t *testing.T) {
	e := New(WithClock(fixedClock))
	gc := types.GoalContext{Title: "Save $5000 for emergency fund", Category: "savings"}

	got := e.Estimate(gc, mustPolicy(t, "savings")).TargetDate
	want := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 180)
	if !got.Equal(want) {
		t.Errorf("TargetDate = %v, want %v", got, want)
	}
}

func TestParseDuration_CappedAtMaxDays(t *testing.T) {
	for _, in := range []string{
		"in 20000 years",
		"in 101 years",
		"for 99999999999999999999999 days",
		"in 9223372036854775807 weeks",
	} {
		got, ok := ParseDuration(in)
		if !ok || got != MaxDays {
			t.Errorf("ParseDuration(%q) = (%d, %v), want (%d, true)", in, got, ok, MaxDays)
		}
	}
	if got, _ := ParseDuration("in 100 years"); got != MaxDays {
		t.Errorf("ParseDuration(100 years) = %d, want %d", got, MaxDays)
	}
}

func TestEstimate_OversizedDurationKeepsFourDigitYear(t *testing.T) {
	e := New(WithClock(fixedClock))
	tests := []struct {
		category string
		title    string
	}{
		{"learning", "Learn piano in 20000 years"},
		{"learning", "Master Go programming over 90 years"},
		{"savings", "Save $1 every day for 5000000 weeks"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			gc := types.GoalContext{Title: tt.title, Category: tt.category}
			p := mustPolicy(t, tt.category)

			if days := EstimateDays(gc, p); days != MaxDays {
				t.Errorf("EstimateDays() = %d, want %d", days, MaxDays)
			}
			est := e.Estimate(gc, p)
			stored := est.TargetDate.Format(types.DateLayout)
			back, err := time.Parse(types.DateLayout, stored)
			if err != nil {
				t.Fatalf("target date %q does not parse: %v", stored, err)
			}
			if !back.Equal(est.TargetDate) {
				t.Errorf("round trip = %v, want %v", back, est.TargetDate)
			}
			if est.TimeframeLabel != "100 years" {
				t.Errorf("TimeframeLabel = %q, want 100 years", est.TimeframeLabel)
			}
		})
	}
}

func TestEstimateDays_CurrencyAmountIsNotRaceDistance(t *testing.T) {
	p := mustPolicy(t, "fitness")
	gc := types.GoalContext{Title: "Build a $5k home gym in 12 months", Category: "fitness"}

	if got := EstimateDays(gc, p); got != 360 {
		t.Errorf("EstimateDays() = %d, want 360 from the explicit duration", got)
	}
	if got := EstimateCost(gc, p); got != 5000 {
		t.Errorf("EstimateCost() = %d, want 5000", got)
	}
}

func TestAssessComplexity(t *testing.T) {
	tests := []struct {
		title      string
		experience string
		want       types.ComplexityTier
	}{
		{"Master chess", "", types.ComplexityComplex},
		{"Beginner yoga", "", types.ComplexitySimple},
		{"Advanced beginner course", "", types.ComplexityComplex},
		{"Learn to cook", "", types.ComplexityModerate},
		{"Learn to cook", "beginner", types.ComplexitySimple},
	}
	for _, tt := range tests {
		gc := types.GoalContext{Title: tt.title, UserExperience: tt.experience}
		if got := AssessComplexity(gc); got != tt.want {
			t.Errorf("AssessComplexity(%q, %q) = %q, want %q", tt.title, tt.experience, got, tt.want)
		}
	}
}

func TestSelectContextualModules_AddsTriggers(t *testing.T) {
	gc := types.GoalContext{Title: "Meditate daily as a habit", Category: "habits"}
	got := SelectContextualModules(gc, mustPolicy(t, "habits"))
	want := []capability.ModuleKind{capability.Timeline, capability.HabitTracker, capability.StreakCounter}
	if !slices.Equal(got, want) {
		t.Errorf("SelectContextualModules() = %v, want %v", got, want)
	}
}

func TestSelectContextualModules_IdempotentAndDeduplicated(t *testing.T) {
	p := mustPolicy(t, "savings")
	gc := types.GoalContext{Title: "Save $5000 for emergency fund", Category: "savings"}

	first := SelectContextualModules(gc, p)
	second := SelectContextualModules(gc, p)
	if !slices.Equal(first, second) {
		t.Errorf("second call = %v, first = %v", second, first)
	}
	want := []capability.ModuleKind{capability.BudgetBreakdown, capability.Timeline}
	if !slices.Equal(first, want) {
		t.Errorf("SelectContextualModules() = %v, want %v", first, want)
	}
}

func TestSelectContextualModules_KeepsPolicyModules(t *testing.T) {
	p := mustPolicy(t, "travel")
	got := SelectContextualModules(types.GoalContext{Title: "Study abroad"}, p)
	for _, k := range p.ContextualModules {
		if !slices.Contains(got, k) {
			t.Errorf("policy module %q dropped", k)
		}
	}
}

func TestTimeframeLabel(t *testing.T) {
	tests := map[int]string{
		1:   "1 day",
		10:  "10 days",
		14:  "2 weeks",
		56:  "8 weeks",
		90:  "3 months",
		180: "6 months",
		365: "12 months",
		730: "2 years",
	}
	for days, want := range tests {
		if got := TimeframeLabel(days); got != want {
			t.Errorf("TimeframeLabel(%d) = %q, want %q", days, got, want)
		}
	}
}

func TestGenerateNarrative_CategoryTemplate(t *testing.T) {
	gc := types.GoalContext{Title: "Emergency fund", Category: "savings"}
	n := GenerateNarrative(gc, mustPolicy(t, "savings"), 5000, 180)

	if n.Measurable != "Reach a balance of $5,000." {
		t.Errorf("Measurable = %q", n.Measurable)
	}
	if !strings.Contains(n.Specific, "Emergency fund") {
		t.Errorf("Specific = %q, want title", n.Specific)
	}
	if !strings.Contains(n.TimeBound, "6 months") {
		t.Errorf("TimeBound = %q, want timeframe", n.TimeBound)
	}
}

func TestGenerateNarrative_GenericFallback(t *testing.T) {
	p := policy.Policy{ID: "unmapped", Name: "Other"}
	n := GenerateNarrative(types.GoalContext{Title: "Something new"}, p, 1234, 30)

	for field, v := range map[string]string{
		"specific": n.Specific, "measurable": n.Measurable, "achievable": n.Achievable,
		"relevant": n.Relevant, "time_bound": n.TimeBound,
	} {
		if v == "" {
			t.Errorf("%s is empty", field)
		}
		if strings.Contains(v, "{") {
			t.Errorf("%s has unreplaced placeholder: %q", field, v)
		}
	}
	if !strings.Contains(n.Measurable, "$1,234") {
		t.Errorf("Measurable = %q, want $1,234", n.Measurable)
	}
}

func TestEstimateFor_UnknownCategory(t *testing.T) {
	e := New(WithClock(fixedClock))
	_, _, err := e.EstimateFor(types.GoalContext{Title: "Jump", Category: "skydiving"}, policy.Default())
	if !errors.Is(err, policy.ErrUnknownCategory) {
		t.Fatalf("EstimateFor() error = %v, want ErrUnknownCategory", err)
	}
}

func TestEstimateFor_ScenarioA(t *testing.T) {
	e := New(WithClock(fixedClock))
	est, p, err := e.EstimateFor(types.GoalContext{Title: "Save $5000 for emergency fund", Category: "savings"}, policy.Default())
	if err != nil {
		t.Fatal(err)
	}
	if est.EstimatedCost != 5000 {
		t.Errorf("EstimatedCost = %d, want 5000", est.EstimatedCost)
	}
	if days := int(est.TargetDate.Sub(e.Today()).Hours() / 24); days != 180 {
		t.Errorf("days to target = %d, want 180", days)
	}
	if !slices.Equal(est.RequiredModules, p.RequiredModules) {
		t.Errorf("RequiredModules = %v, want %v", est.RequiredModules, p.RequiredModules)
	}
	if est.TimeframeLabel != "6 months" {
		t.Errorf("TimeframeLabel = %q, want %q", est.TimeframeLabel, "6 months")
	}
	if est.Complexity != types.ComplexityModerate {
		t.Errorf("Complexity = %q, want moderate", est.Complexity)
	}
}
