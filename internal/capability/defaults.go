package capability

// Default builds the registry of every built-in module kind.
func Default() *Registry {
	b := NewBuilder()

	b.Register(FinancialCalculator, "",
		map[string]any{"currency": "USD", "show_breakdown": true}, nil)
	b.Register(SavingsTracker, "",
		map[string]any{"currency": "USD", "chart": "area"}, nil)
	b.Register(ProgressMeter, "",
		map[string]any{"style": "ring"}, nil)
	b.Register(AgentPanel, "",
		map[string]any{"max_agents": 3}, nil)
	b.Register(Timeline, "",
		map[string]any{"milestones": 4},
		&Eligibility{Deadline: DeadlineRequired})
	b.Register(BudgetBreakdown, "",
		map[string]any{"currency": "USD"},
		&Eligibility{MinEstimatedCost: 1})
	b.Register(HabitTracker, "",
		map[string]any{"window_days": 30}, nil)
	b.Register(StreakCounter, "", nil, nil)
	b.Register(HealthMetrics, "",
		map[string]any{"units": "metric"},
		&Eligibility{Categories: []string{"fitness", "health", "habits"}})
	b.Register(WorkoutPlanner, "",
		map[string]any{"days_per_week": 4},
		&Eligibility{Categories: []string{"fitness", "health"}})
	b.Register(CurrencyConverter, "",
		map[string]any{"base": "USD"},
		&Eligibility{MinEstimatedCost: 100})
	b.Register(FlightTracker, "",
		map[string]any{"cabin": "economy"},
		&Eligibility{Categories: []string{"travel"}, AnyOfAgents: []string{"travel_planner"}})
	b.Register(WeatherWidget, "",
		map[string]any{"days": 5, "units": "celsius"},
		&Eligibility{Categories: []string{"travel", "fitness"}})
	b.Register(LanguagePractice, "",
		map[string]any{"daily_minutes": 20},
		&Eligibility{Categories: []string{"language", "travel"}})
	b.Register(LearningPath, "", nil, nil)
	b.Register(InvestmentPortfolio, "",
		map[string]any{"risk_profile": "balanced"},
		&Eligibility{MinEstimatedCost: 1000})
	b.Register(BusinessPlan, "", nil,
		&Eligibility{Categories: []string{"business"}})
	b.Register(CareerPipeline, "", nil,
		&Eligibility{Categories: []string{"career"}})
	b.Register(PropertyTracker, "",
		map[string]any{"currency": "USD"},
		&Eligibility{Categories: []string{"home"}})
	b.Register(TaskBoard, "",
		map[string]any{"columns": []string{"todo", "doing", "done"}}, nil)

	return b.Build()
}
