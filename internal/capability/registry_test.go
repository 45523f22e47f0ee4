package capability

import (
	"slices"
	"sync"
	"testing"
)

func TestRenderers_CoverEveryKind(t *testing.T) {
	for _, k := range AllKinds() {
		if _, ok := RendererFor(k); !ok {
			t.Errorf("RendererFor(%q) missing", k)
		}
	}
	if len(renderers) != len(allKinds) {
		t.Errorf("renderers has %d entries, want %d", len(renderers), len(allKinds))
	}
}

func TestDefault_RegistersEveryKind(t *testing.T) {
	r := Default()
	for _, k := range AllKinds() {
		if !r.Has(k) {
			t.Errorf("Default() missing %q", k)
		}
	}
	if got := len(r.Kinds()); got != len(allKinds) {
		t.Errorf("len(Kinds()) = %d, want %d", got, len(allKinds))
	}
}

func TestRegister_EmptyRendererUsesBuiltin(t *testing.T) {
	r := NewBuilder().
		Register(WeatherWidget, "", nil, nil).
		Register(TaskBoard, "KanbanLite", nil, nil).
		Build()

	weather, _ := r.Get(WeatherWidget)
	if weather.Renderer != "WeatherForecast" {
		t.Errorf("WeatherWidget renderer = %q, want built-in WeatherForecast", weather.Renderer)
	}
	board, _ := r.Get(TaskBoard)
	if board.Renderer != "KanbanLite" {
		t.Errorf("TaskBoard renderer = %q, want explicit KanbanLite", board.Renderer)
	}

	for _, k := range AllKinds() {
		c, _ := Default().Get(k)
		if want, _ := RendererFor(k); c.Renderer != want || c.Renderer == "" {
			t.Errorf("Default() %q renderer = %q, want %q", k, c.Renderer, want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want ModuleKind
		ok   bool
	}{
		{"savings_tracker", SavingsTracker, true},
		{"  Timeline ", Timeline, true},
		{"hologram", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKind(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBuilder_RegisterLastWins(t *testing.T) {
	r := NewBuilder().
		Register(Timeline, "First", map[string]any{"v": 1}, nil).
		Register(ProgressMeter, "Meter", nil, nil).
		Register(Timeline, "Second", map[string]any{"v": 2}, nil).
		Build()

	c, ok := r.Get(Timeline)
	if !ok {
		t.Fatal("Get(Timeline) ok = false")
	}
	if c.Renderer != "Second" {
		t.Errorf("Renderer = %q, want %q", c.Renderer, "Second")
	}
	if c.DefaultParameters["v"] != 2 {
		t.Errorf("DefaultParameters[v] = %v, want 2", c.DefaultParameters["v"])
	}

	// Re-registration keeps the original position.
	want := []ModuleKind{Timeline, ProgressMeter}
	if got := r.Kinds(); !slices.Equal(got, want) {
		t.Errorf("Kinds() = %v, want %v", got, want)
	}
}

func TestRegistry_IsolatedFromBuilder(t *testing.T) {
	b := NewBuilder().Register(Timeline, "A", nil, nil)
	r := b.Build()
	b.Register(ProgressMeter, "B", nil, nil)

	if r.Has(ProgressMeter) {
		t.Error("registry changed after Build()")
	}
}

func TestRegistry_GetReturnsCopyOfDefaults(t *testing.T) {
	r := NewBuilder().Register(Timeline, "A", map[string]any{"k": "v"}, nil).Build()

	c, _ := r.Get(Timeline)
	c.DefaultParameters["k"] = "mutated"

	again, _ := r.Get(Timeline)
	if again.DefaultParameters["k"] != "v" {
		t.Errorf("DefaultParameters mutated through Get(): %v", again.DefaultParameters["k"])
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewBuilder().Build()
	if _, ok := r.Get(Timeline); ok {
		t.Error("Get() on empty registry ok = true")
	}
}

func TestEligibility_Allows(t *testing.T) {
	base := EligibilityContext{
		Category:      "travel",
		Agents:        []string{"travel_planner"},
		EstimatedCost: 2000,
		HasDeadline:   true,
	}

	tests := []struct {
		name string
		e    Eligibility
		ec   EligibilityContext
		want bool
	}{
		{"no constraints", Eligibility{}, base, true},
		{"category match", Eligibility{Categories: []string{"travel"}}, base, true},
		{"category mismatch", Eligibility{Categories: []string{"fitness"}}, base, false},
		{"agent present", Eligibility{AnyOfAgents: []string{"x", "travel_planner"}}, base, true},
		{"agent absent", Eligibility{AnyOfAgents: []string{"fitness_coach"}}, base, false},
		{"cost at minimum", Eligibility{MinEstimatedCost: 2000}, base, true},
		{"cost below minimum", Eligibility{MinEstimatedCost: 2001}, base, false},
		{"deadline required present", Eligibility{Deadline: DeadlineRequired}, base, true},
		{"deadline required missing", Eligibility{Deadline: DeadlineRequired},
			EligibilityContext{Category: "travel"}, false},
		{"deadline absent mismatch", Eligibility{Deadline: DeadlineAbsent}, base, false},
		{"deadline absent match", Eligibility{Deadline: DeadlineAbsent},
			EligibilityContext{Category: "travel"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Allows(tt.ec); got != tt.want {
				t.Errorf("Allows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterEligible_DropsUnregisteredAndIneligible(t *testing.T) {
	r := NewBuilder().
		Register(ProgressMeter, "Meter", nil, nil).
		Register(FlightTracker, "Flights", nil, &Eligibility{Categories: []string{"travel"}}).
		Register(InvestmentPortfolio, "Portfolio", nil, &Eligibility{MinEstimatedCost: 1000}).
		Build()

	got := r.FilterEligible(
		[]ModuleKind{FlightTracker, Timeline, ProgressMeter, InvestmentPortfolio},
		EligibilityContext{Category: "savings", EstimatedCost: 500},
	)
	want := []ModuleKind{ProgressMeter}
	if !slices.Equal(got, want) {
		t.Errorf("FilterEligible() = %v, want %v", got, want)
	}
}

func TestFilterEligible_PreservesOrder(t *testing.T) {
	r := Default()
	in := []ModuleKind{TaskBoard, ProgressMeter, AgentPanel}
	got := r.FilterEligible(in, EligibilityContext{Category: "creative", HasDeadline: true})
	if !slices.Equal(got, in) {
		t.Errorf("FilterEligible() = %v, want %v", got, in)
	}
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	r := Default()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, k := range AllKinds() {
				r.Get(k)
			}
			r.FilterEligible(AllKinds(), EligibilityContext{Category: "travel", HasDeadline: true})
		}()
	}
	wg.Wait()
}
