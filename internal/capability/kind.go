package capability

import "strings"

// ModuleKind identifies a dashboard module variant.
// The set is closed: every kind has exactly one renderer and one data generator.
type ModuleKind string

const (
	FinancialCalculator ModuleKind = "financial_calculator"
	SavingsTracker      ModuleKind = "savings_tracker"
	ProgressMeter       ModuleKind = "progress_meter"
	AgentPanel          ModuleKind = "agent_panel"
	Timeline            ModuleKind = "timeline"
	BudgetBreakdown     ModuleKind = "budget_breakdown"
	HabitTracker        ModuleKind = "habit_tracker"
	StreakCounter       ModuleKind = "streak_counter"
	HealthMetrics       ModuleKind = "health_metrics"
	WorkoutPlanner      ModuleKind = "workout_planner"
	CurrencyConverter   ModuleKind = "currency_converter"
	FlightTracker       ModuleKind = "flight_tracker"
	WeatherWidget       ModuleKind = "weather_widget"
	LanguagePractice    ModuleKind = "language_practice"
	LearningPath        ModuleKind = "learning_path"
	InvestmentPortfolio ModuleKind = "investment_portfolio"
	BusinessPlan        ModuleKind = "business_plan"
	CareerPipeline      ModuleKind = "career_pipeline"
	PropertyTracker     ModuleKind = "property_tracker"
	TaskBoard           ModuleKind = "task_board"
)

// allKinds lists every ModuleKind in catalog order.
var allKinds = []ModuleKind{
	FinancialCalculator,
	SavingsTracker,
	ProgressMeter,
	AgentPanel,
	Timeline,
	BudgetBreakdown,
	HabitTracker,
	StreakCounter,
	HealthMetrics,
	WorkoutPlanner,
	CurrencyConverter,
	FlightTracker,
	WeatherWidget,
	LanguagePractice,
	LearningPath,
	InvestmentPortfolio,
	BusinessPlan,
	CareerPipeline,
	PropertyTracker,
	TaskBoard,
}

// AllKinds returns every known module kind in catalog order.
func AllKinds() []ModuleKind {
	out := make([]ModuleKind, len(allKinds))
	copy(out, allKinds)
	return out
}

// ParseKind normalizes a stored module id into a ModuleKind, ignoring case
// and surrounding space. The boolean is false for ids outside the closed set.
func ParseKind(id string) (ModuleKind, bool) {
	k := ModuleKind(strings.ToLower(strings.TrimSpace(id)))
	for _, known := range allKinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// String implements fmt.Stringer.
func (k ModuleKind) String() string {
	return string(k)
}

// Renderer is the presentation contract the UI layer maps a kind to.
type Renderer string

// renderers is the exhaustive kind → renderer table.
var renderers = map[ModuleKind]Renderer{
	FinancialCalculator: "FinancialCalculatorCard",
	SavingsTracker:      "SavingsTrackerChart",
	ProgressMeter:       "CompletionMeter",
	AgentPanel:          "AgentPanel",
	Timeline:            "MilestoneTimeline",
	BudgetBreakdown:     "BudgetBreakdownDonut",
	HabitTracker:        "HabitGrid",
	StreakCounter:       "StreakCounter",
	HealthMetrics:       "HealthMetricsPanel",
	WorkoutPlanner:      "WorkoutWeekPlanner",
	CurrencyConverter:   "CurrencyConverterWidget",
	FlightTracker:       "FlightFareTracker",
	WeatherWidget:       "WeatherForecast",
	LanguagePractice:    "LanguagePracticeCard",
	LearningPath:        "LearningPathList",
	InvestmentPortfolio: "PortfolioAllocation",
	BusinessPlan:        "BusinessPlanStages",
	CareerPipeline:      "CareerPipelineFunnel",
	PropertyTracker:     "PropertyTrackerCard",
	TaskBoard:           "TaskBoard",
}

// RendererFor returns the renderer reference for a kind.
func RendererFor(k ModuleKind) (Renderer, bool) {
	r, ok := renderers[k]
	return r, ok
}
