package policy

import "github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"

type mk = capability.ModuleKind

// builtins is the built-in category catalog.
var builtins = []Policy{
	{
		ID:                   "travel",
		Name:                 "Travel",
		Description:          "Trips, vacations and time abroad",
		DefaultDeadlineDays:  120,
		DefaultEstimatedCost: 3000,
		RequiredModules:      []mk{capability.FinancialCalculator, capability.Timeline, capability.ProgressMeter, capability.AgentPanel},
		ContextualModules:    []mk{capability.CurrencyConverter, capability.WeatherWidget, capability.FlightTracker},
		OptionalModules:      []mk{capability.LanguagePractice, capability.BudgetBreakdown, capability.TaskBoard},
		SuggestedAgents:      []string{"travel_planner", "financial_advisor"},
	},
	{
		ID:                    "savings",
		Name:                  "Savings",
		Description:           "Building a cash reserve toward a target amount",
		DefaultDeadlineDays:   180,
		DefaultEstimatedCost:  5000,
		RequiredModules:       []mk{capability.SavingsTracker, capability.FinancialCalculator, capability.ProgressMeter, capability.AgentPanel},
		ContextualModules:     []mk{capability.BudgetBreakdown, capability.Timeline},
		OptionalModules:       []mk{capability.StreakCounter, capability.InvestmentPortfolio},
		SuggestedAgents:       []string{"financial_advisor"},
		FeasibilityAdjustment: 5,
	},
	{
		ID:                    "investment",
		Name:                  "Investment",
		Description:           "Growing a portfolio or long-term wealth",
		DefaultDeadlineDays:   365,
		DefaultEstimatedCost:  10000,
		RequiredModules:       []mk{capability.InvestmentPortfolio, capability.FinancialCalculator, capability.ProgressMeter, capability.AgentPanel},
		ContextualModules:     []mk{capability.Timeline, capability.BudgetBreakdown},
		OptionalModules:       []mk{capability.SavingsTracker, capability.CurrencyConverter},
		SuggestedAgents:       []string{"financial_advisor", "research_assistant"},
		FeasibilityAdjustment: -5,
	},
	{
		ID:                    "business",
		Name:                  "Business",
		Description:           "Starting or growing a business or side project",
		DefaultDeadlineDays:   270,
		DefaultEstimatedCost:  15000,
		RequiredModules:       []mk{capability.BusinessPlan, capability.FinancialCalculator, capability.Timeline, capability.AgentPanel},
		ContextualModules:     []mk{capability.BudgetBreakdown, capability.TaskBoard},
		OptionalModules:       []mk{capability.ProgressMeter, capability.InvestmentPortfolio},
		SuggestedAgents:       []string{"business_strategist", "financial_advisor"},
		FeasibilityAdjustment: -5,
	},
	{
		ID:                    "fitness",
		Name:                  "Fitness",
		Description:           "Training, races and physical performance",
		DefaultDeadlineDays:   90,
		DefaultEstimatedCost:  500,
		RequiredModules:       []mk{capability.WorkoutPlanner, capability.HealthMetrics, capability.ProgressMeter, capability.AgentPanel},
		ContextualModules:     []mk{capability.StreakCounter, capability.Timeline},
		OptionalModules:       []mk{capability.HabitTracker, capability.WeatherWidget},
		SuggestedAgents:       []string{"fitness_coach", "nutritionist"},
		FeasibilityAdjustment: 5,
	},
	{
		ID:                    "health",
		Name:                  "Health",
		Description:           "Nutrition, sleep and general wellbeing",
		DefaultDeadlineDays:   90,
		DefaultEstimatedCost:  300,
		RequiredModules:       []mk{capability.HealthMetrics, capability.HabitTracker, capability.ProgressMeter, capability.AgentPanel},
		ContextualModules:     []mk{capability.StreakCounter},
		OptionalModules:       []mk{capability.WorkoutPlanner, capability.Timeline},
		SuggestedAgents:       []string{"nutritionist", "fitness_coach"},
		HabitForming:          true,
		FeasibilityAdjustment: 5,
	},
	{
		ID:                    "habits",
		Name:                  "Habits",
		Description:           "Building or breaking a daily routine",
		DefaultDeadlineDays:   30,
		DefaultEstimatedCost:  100,
		RequiredModules:       []mk{capability.HabitTracker, capability.StreakCounter, capability.ProgressMeter, capability.AgentPanel},
		ContextualModules:     []mk{capability.Timeline},
		OptionalModules:       []mk{capability.HealthMetrics, capability.TaskBoard},
		SuggestedAgents:       []string{"habit_coach"},
		HabitForming:          true,
		FeasibilityAdjustment: 10,
	},
	{
		ID:                   "language",
		Name:                 "Language",
		Description:          "Learning to speak, read or write a language",
		DefaultDeadlineDays:  180,
		DefaultEstimatedCost: 400,
		RequiredModules:      []mk{capability.LanguagePractice, capability.ProgressMeter, capability.StreakCounter, capability.AgentPanel},
		ContextualModules:    []mk{capability.LearningPath, capability.Timeline},
		OptionalModules:      []mk{capability.CurrencyConverter, capability.HabitTracker},
		SuggestedAgents:      []string{"language_tutor"},
	},
	{
		ID:                    "learning",
		Name:                  "Learning",
		Description:           "Courses, certifications and new skills",
		DefaultDeadlineDays:   120,
		DefaultEstimatedCost:  600,
		RequiredModules:       []mk{capability.LearningPath, capability.ProgressMeter, capability.Timeline, capability.AgentPanel},
		ContextualModules:     []mk{capability.TaskBoard, capability.StreakCounter},
		OptionalModules:       []mk{capability.BudgetBreakdown, capability.HabitTracker},
		SuggestedAgents:       []string{"learning_mentor", "research_assistant"},
		FeasibilityAdjustment: 5,
	},
	{
		ID:                   "career",
		Name:                 "Career",
		Description:          "Job changes, promotions and professional growth",
		DefaultDeadlineDays:  180,
		DefaultEstimatedCost: 1000,
		RequiredModules:      []mk{capability.CareerPipeline, capability.LearningPath, capability.ProgressMeter, capability.AgentPanel},
		ContextualModules:    []mk{capability.Timeline, capability.TaskBoard},
		OptionalModules:      []mk{capability.FinancialCalculator, capability.StreakCounter},
		SuggestedAgents:      []string{"career_coach"},
	},
	{
		ID:                    "home",
		Name:                  "Home",
		Description:           "Buying, renting or renovating a home",
		DefaultDeadlineDays:   730,
		DefaultEstimatedCost:  50000,
		RequiredModules:       []mk{capability.PropertyTracker, capability.SavingsTracker, capability.FinancialCalculator, capability.AgentPanel},
		ContextualModules:     []mk{capability.BudgetBreakdown, capability.Timeline},
		OptionalModules:       []mk{capability.TaskBoard, capability.ProgressMeter},
		SuggestedAgents:       []string{"real_estate_advisor", "financial_advisor"},
		FeasibilityAdjustment: -10,
	},
	{
		ID:                   "creative",
		Name:                 "Creative",
		Description:          "Writing, music, art and other creative projects",
		DefaultDeadlineDays:  150,
		DefaultEstimatedCost: 800,
		RequiredModules:      []mk{capability.TaskBoard, capability.ProgressMeter, capability.Timeline, capability.AgentPanel},
		ContextualModules:    []mk{capability.StreakCounter},
		OptionalModules:      []mk{capability.BudgetBreakdown, capability.LearningPath},
		SuggestedAgents:      []string{"creative_mentor"},
	},
}

// Default returns the built-in category table.
// It panics if the built-in catalog is inconsistent.
func Default() *Table {
	t, err := NewTable(builtins...)
	if err != nil {
		panic("policy: invalid built-in catalog: " + err.Error())
	}
	return t
}
