package synth

import (
	"errors"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
)

// genInput is what a generator sees. rng is only valid for the duration of
// the call.
type genInput struct {
	Input
	Timeline Timeline
	Params   map[string]any
	rng      *rand.Rand
}

// generator builds the record for one module kind. Any derived notion of
// progress or elapsed time must come from Timeline.
type generator func(in *genInput) (any, error)

var errNoCost = errors.New("estimated cost must be positive")

func defaultGenerators() map[capability.ModuleKind]generator {
	return map[capability.ModuleKind]generator{
		capability.FinancialCalculator: genFinancialCalculator,
		capability.SavingsTracker:      genSavingsTracker,
		capability.ProgressMeter:       genProgressMeter,
		capability.AgentPanel:          genAgentPanel,
		capability.Timeline:            genTimeline,
		capability.BudgetBreakdown:     genBudgetBreakdown,
		capability.HabitTracker:        genHabitTracker,
		capability.StreakCounter:       genStreakCounter,
		capability.HealthMetrics:       genHealthMetrics,
		capability.WorkoutPlanner:      genWorkoutPlanner,
		capability.CurrencyConverter:   genCurrencyConverter,
		capability.FlightTracker:       genFlightTracker,
		capability.WeatherWidget:       genWeatherWidget,
		capability.LanguagePractice:    genLanguagePractice,
		capability.LearningPath:        genLearningPath,
		capability.InvestmentPortfolio: genInvestmentPortfolio,
		capability.BusinessPlan:        genBusinessPlan,
		capability.CareerPipeline:      genCareerPipeline,
		capability.PropertyTracker:     genPropertyTracker,
		capability.TaskBoard:           genTaskBoard,
	}
}

// savedSoFar is the amount implied by the shared progress fraction.
func (in *genInput) savedSoFar() int {
	return int(math.Round(float64(in.EstimatedCost) * in.Timeline.ProgressFraction))
}

// noise returns v scaled by a uniform factor in [1-frac, 1+frac].
func (in *genInput) noise(v, frac float64) float64 {
	return v * (1 + (in.rng.Float64()*2-1)*frac)
}

// between returns a uniform int in [lo, hi].
func (in *genInput) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + in.rng.IntN(hi-lo+1)
}

func (in *genInput) intParam(key string, def int) int {
	switch v := in.Params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

func (in *genInput) text() string {
	return strings.ToLower(in.Context.Title + " " + in.Context.Description)
}

// splitExact divides total into len(weights) non-negative parts that sum
// to total exactly.
func splitExact(total int, weights []float64) []int {
	parts := make([]int, len(weights))
	if len(weights) == 0 {
		return parts
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	assigned := 0
	for i, w := range weights[:len(weights)-1] {
		if sum > 0 {
			parts[i] = int(math.Floor(float64(total) * w / sum))
		}
		assigned += parts[i]
	}
	parts[len(parts)-1] = total - assigned
	return parts
}

type milestone struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// milestones places n evenly spaced checkpoints on the timeline.
func milestones(tl Timeline, n int) []milestone {
	if n < 1 {
		n = 1
	}
	out := make([]milestone, 0, n)
	for i := 1; i <= n; i++ {
		offset := int(math.Round(float64(tl.TotalDays) * float64(i) / float64(n)))
		out = append(out, milestone{
			Title:     milestoneTitle(i, n),
			Date:      tl.dayAt(offset),
			Completed: offset <= tl.ElapsedDays,
		})
	}
	return out
}

func milestoneTitle(i, n int) string {
	if i == n {
		return "Goal reached"
	}
	pct := int(math.Round(100 * float64(i) / float64(n)))
	return strconv.Itoa(pct) + "% checkpoint"
}

type financialRecord struct {
	TargetAmount    int     `json:"target_amount"`
	CurrentSaved    int     `json:"current_saved"`
	Remaining       int     `json:"remaining"`
	DailyNeeded     float64 `json:"daily_needed"`
	MonthlyNeeded   float64 `json:"monthly_needed"`
	DaysRemaining   int     `json:"days_remaining"`
	ProgressPercent float64 `json:"progress_percent"`
}

func genFinancialCalculator(in *genInput) (any, error) {
	if in.EstimatedCost <= 0 {
		return nil, errNoCost
	}
	saved := in.savedSoFar()
	remaining := in.EstimatedCost - saved
	days := max(in.Timeline.DaysRemaining, 1)
	daily := float64(remaining) / float64(days)

	return financialRecord{
		TargetAmount:    in.EstimatedCost,
		CurrentSaved:    saved,
		Remaining:       remaining,
		DailyNeeded:     round2(daily),
		MonthlyNeeded:   round2(daily * 30),
		DaysRemaining:   in.Timeline.DaysRemaining,
		ProgressPercent: in.Timeline.ProgressPercent(),
	}, nil
}

type deposit struct {
	Date   string `json:"date"`
	Amount int    `json:"amount"`
}

type savingsRecord struct {
	TargetAmount    int       `json:"target_amount"`
	CurrentSaved    int       `json:"current_saved"`
	ProgressPercent float64   `json:"progress_percent"`
	DaysRemaining   int       `json:"days_remaining"`
	Deposits        []deposit `json:"deposits"`
}

func genSavingsTracker(in *genInput) (any, error) {
	if in.EstimatedCost <= 0 {
		return nil, errNoCost
	}
	saved := in.savedSoFar()
	tl := in.Timeline

	deposits := []deposit{}
	if saved > 0 {
		n := min(tl.ElapsedDays/7+1, 12)
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = in.noise(1, 0.4)
		}
		for i, amount := range splitExact(saved, weights) {
			offset := tl.ElapsedDays * (i + 1) / n
			deposits = append(deposits, deposit{Date: tl.dayAt(offset), Amount: amount})
		}
	}

	return savingsRecord{
		TargetAmount:    in.EstimatedCost,
		CurrentSaved:    saved,
		ProgressPercent: tl.ProgressPercent(),
		DaysRemaining:   tl.DaysRemaining,
		Deposits:        deposits,
	}, nil
}

type progressRecord struct {
	ProgressPercent float64     `json:"progress_percent"`
	ElapsedDays     int         `json:"elapsed_days"`
	TotalDays       int         `json:"total_days"`
	DaysRemaining   int         `json:"days_remaining"`
	Status          string      `json:"status"`
	Milestones      []milestone `json:"milestones"`
}

func genProgressMeter(in *genInput) (any, error) {
	tl := in.Timeline
	status := "in_progress"
	switch {
	case tl.ProgressFraction <= 0:
		status = "not_started"
	case tl.ProgressFraction >= 1:
		status = "completed"
	}
	return progressRecord{
		ProgressPercent: tl.ProgressPercent(),
		ElapsedDays:     tl.ElapsedDays,
		TotalDays:       tl.TotalDays,
		DaysRemaining:   tl.DaysRemaining,
		Status:          status,
		Milestones:      milestones(tl, 4),
	}, nil
}

type agentRecord struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	LastCheckIn string `json:"last_check_in"`
	Suggestions int    `json:"suggestions"`
}

type agentPanelRecord struct {
	Agents []agentRecord `json:"agents"`
}

func genAgentPanel(in *genInput) (any, error) {
	limit := in.intParam("max_agents", 3)
	agents := in.Agents
	if len(agents) == 0 {
		agents = []string{"goal_coach"}
	}
	if len(agents) > limit {
		agents = agents[:limit]
	}

	out := make([]agentRecord, 0, len(agents))
	for _, id := range agents {
		out = append(out, agentRecord{
			ID:          id,
			Status:      "active",
			LastCheckIn: in.Timeline.dayAt(in.between(0, in.Timeline.ElapsedDays)),
			Suggestions: in.between(1, 5),
		})
	}
	return agentPanelRecord{Agents: out}, nil
}

type timelineRecord struct {
	StartDate     string      `json:"start_date"`
	AsOf          string      `json:"as_of"`
	TargetDate    string      `json:"target_date"`
	TotalDays     int         `json:"total_days"`
	ElapsedDays   int         `json:"elapsed_days"`
	DaysRemaining int         `json:"days_remaining"`
	Milestones    []milestone `json:"milestones"`
}

func genTimeline(in *genInput) (any, error) {
	tl := in.Timeline
	return timelineRecord{
		StartDate:     tl.dayAt(0),
		AsOf:          tl.dayAt(tl.ElapsedDays),
		TargetDate:    tl.dayAt(tl.TotalDays),
		TotalDays:     tl.TotalDays,
		ElapsedDays:   tl.ElapsedDays,
		DaysRemaining: tl.DaysRemaining,
		Milestones:    milestones(tl, in.intParam("milestones", 4)),
	}, nil
}

type budgetLine struct {
	Name    string  `json:"name"`
	Amount  int     `json:"amount"`
	Percent float64 `json:"percent"`
}

type budgetRecord struct {
	Total      int          `json:"total"`
	Spent      int          `json:"spent"`
	Categories []budgetLine `json:"categories"`
}

// budgetLines are the default spending lines per goal category.
var budgetLines = map[string][]struct {
	name   string
	weight float64
}{
	"travel": {{"Flights", 35}, {"Accommodation", 30}, {"Food", 15}, {"Activities", 12}, {"Contingency", 8}},
	"home":   {{"Down payment", 70}, {"Closing costs", 12}, {"Moving", 6}, {"Furnishing", 12}},
	"business": {
		{"Product", 35}, {"Marketing", 25}, {"Legal & admin", 10}, {"Tools", 10}, {"Reserve", 20},
	},
	"fitness":  {{"Gear", 40}, {"Membership", 35}, {"Nutrition", 25}},
	"learning": {{"Courses", 55}, {"Books", 20}, {"Tools", 25}},
}

var defaultBudgetLines = []struct {
	name   string
	weight float64
}{{"Essentials", 60}, {"Extras", 25}, {"Contingency", 15}}

func genBudgetBreakdown(in *genInput) (any, error) {
	if in.EstimatedCost <= 0 {
		return nil, errNoCost
	}
	lines, ok := budgetLines[strings.ToLower(in.Context.Category)]
	if !ok {
		lines = defaultBudgetLines
	}
	weights := make([]float64, len(lines))
	for i, l := range lines {
		weights[i] = in.noise(l.weight, 0.15)
	}
	amounts := splitExact(in.EstimatedCost, weights)

	out := make([]budgetLine, len(lines))
	for i, l := range lines {
		out[i] = budgetLine{
			Name:    l.name,
			Amount:  amounts[i],
			Percent: round1(100 * float64(amounts[i]) / float64(in.EstimatedCost)),
		}
	}
	return budgetRecord{
		Total:      in.EstimatedCost,
		Spent:      in.savedSoFar(),
		Categories: out,
	}, nil
}

type habitRecord struct {
	Name           string  `json:"name"`
	Streak         int     `json:"streak"`
	LongestStreak  int     `json:"longest_streak"`
	CompletionRate float64 `json:"completion_rate"`
	CheckIns       int     `json:"check_ins"`
}

type habitTrackerRecord struct {
	WindowDays  int           `json:"window_days"`
	ElapsedDays int           `json:"elapsed_days"`
	Habits      []habitRecord `json:"habits"`
}

func genHabitTracker(in *genInput) (any, error) {
	names := habitNames(in.Context.Category, in.Context.Title)
	habits := make([]habitRecord, 0, len(names))
	for _, name := range names {
		habits = append(habits, in.habit(name))
	}
	return habitTrackerRecord{
		WindowDays:  in.intParam("window_days", 30),
		ElapsedDays: in.Timeline.ElapsedDays,
		Habits:      habits,
	}, nil
}

// habit draws a completion rate around 70% and derives counts that never
// exceed the elapsed days.
func (in *genInput) habit(name string) habitRecord {
	elapsed := in.Timeline.ElapsedDays
	rate := clamp(in.noise(0.7, 0.2), 0, 1)
	checkIns := int(math.Round(float64(elapsed) * rate))
	longest := in.between(min(checkIns, 1), checkIns)
	streak := in.between(0, longest)
	return habitRecord{
		Name:           name,
		Streak:         streak,
		LongestStreak:  longest,
		CompletionRate: round2(rate),
		CheckIns:       checkIns,
	}
}

func habitNames(category, title string) []string {
	title = strings.TrimSpace(title)
	switch strings.ToLower(category) {
	case "fitness", "health":
		return []string{"Move for 30 minutes", "Drink 2L of water", "Sleep 8 hours"}
	case "savings", "investment":
		return []string{"Log every expense", "No-spend day"}
	case "language", "learning":
		return []string{"Daily practice session", "Review flashcards"}
	}
	if title == "" {
		return []string{"Daily check-in"}
	}
	return []string{title, "Daily check-in"}
}

type streakRecord struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	TotalCheckIns int `json:"total_check_ins"`
	ElapsedDays   int `json:"elapsed_days"`
}

func genStreakCounter(in *genInput) (any, error) {
	h := in.habit("")
	return streakRecord{
		CurrentStreak: h.Streak,
		LongestStreak: h.LongestStreak,
		TotalCheckIns: h.CheckIns,
		ElapsedDays:   in.Timeline.ElapsedDays,
	}, nil
}

type healthRecord struct {
	Units            string  `json:"units"`
	StartWeight      float64 `json:"start_weight"`
	CurrentWeight    float64 `json:"current_weight"`
	TargetWeight     float64 `json:"target_weight"`
	WorkoutsThisWeek int     `json:"workouts_this_week"`
	RestingHeartRate int     `json:"resting_heart_rate"`
	SleepHours       float64 `json:"sleep_hours"`
	ProgressPercent  float64 `json:"progress_percent"`
}

func genHealthMetrics(in *genInput) (any, error) {
	start := 70 + in.rng.Float64()*25
	target := start - (4 + in.rng.Float64()*6)
	current := start - (start-target)*in.Timeline.ProgressFraction

	workouts := 0
	if in.Timeline.ElapsedDays > 0 {
		workouts = in.between(1, min(5, in.Timeline.ElapsedDays))
	}
	units := "metric"
	if u, ok := in.Params["units"].(string); ok {
		units = u
	}
	return healthRecord{
		Units:            units,
		StartWeight:      round1(start),
		CurrentWeight:    round1(current),
		TargetWeight:     round1(target),
		WorkoutsThisWeek: workouts,
		RestingHeartRate: in.between(58, 74),
		SleepHours:       round1(6.5 + in.rng.Float64()*1.5),
		ProgressPercent:  in.Timeline.ProgressPercent(),
	}, nil
}

type session struct {
	Day             string `json:"day"`
	Activity        string `json:"activity"`
	DurationMinutes int    `json:"duration_minutes"`
}

type workoutRecord struct {
	WeeklyPlan        []session `json:"weekly_plan"`
	PlannedWorkouts   int       `json:"planned_workouts"`
	CompletedWorkouts int       `json:"completed_workouts"`
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// fiveKRace matches "5k" as a race distance, not as an amount like "$5k".
var fiveKRace = regexp.MustCompile(`(?:^|[^$0-9a-z])5k\b`)

func genWorkoutPlanner(in *genInput) (any, error) {
	perWeek := min(max(in.intParam("days_per_week", 4), 1), 7)
	activities := []string{"Strength", "Intervals", "Easy run", "Mobility", "Long session"}
	if strings.Contains(in.text(), "marathon") || fiveKRace.MatchString(in.text()) {
		activities = []string{"Easy run", "Tempo run", "Intervals", "Long run", "Recovery jog"}
	}

	plan := make([]session, 0, perWeek)
	step := 7 / perWeek
	for i := 0; i < perWeek; i++ {
		plan = append(plan, session{
			Day:             weekdays[(i*max(step, 1))%7],
			Activity:        activities[i%len(activities)],
			DurationMinutes: 30 + 5*in.between(0, 6),
		})
	}

	weeks := max(int(math.Ceil(float64(in.Timeline.TotalDays)/7)), 1)
	planned := weeks * perWeek
	return workoutRecord{
		WeeklyPlan:        plan,
		PlannedWorkouts:   planned,
		CompletedWorkouts: int(math.Round(float64(planned) * in.Timeline.ProgressFraction)),
	}, nil
}

type currencyRecord struct {
	Base            string  `json:"base"`
	Target          string  `json:"target"`
	Rate            float64 `json:"rate"`
	BudgetConverted float64 `json:"budget_converted"`
	Placeholder     bool    `json:"placeholder"`
}

// currencyByPlace maps a location keyword to a currency and an indicative
// rate against USD.
var currencyByPlace = []struct {
	keyword  string
	currency string
	rate     float64
}{
	{"japan", "JPY", 150}, {"tokyo", "JPY", 150},
	{"thailand", "THB", 36}, {"bangkok", "THB", 36},
	{"mexico", "MXN", 17}, {"uk", "GBP", 0.79}, {"london", "GBP", 0.79},
	{"india", "INR", 83}, {"canada", "CAD", 1.36}, {"australia", "AUD", 1.52},
	{"switzerland", "CHF", 0.88}, {"vietnam", "VND", 24500}, {"indonesia", "IDR", 15600},
	{"bali", "IDR", 15600},
}

func genCurrencyConverter(in *genInput) (any, error) {
	base := "USD"
	if b, ok := in.Params["base"].(string); ok {
		base = b
	}
	where := strings.ToLower(in.Context.UserLocation + " " + in.text())
	target, rate := "EUR", 0.92
	for _, c := range currencyByPlace {
		if containsWord(where, c.keyword) {
			target, rate = c.currency, c.rate
			break
		}
	}
	rate = round2(in.noise(rate, 0.02))
	return currencyRecord{
		Base:            base,
		Target:          target,
		Rate:            rate,
		BudgetConverted: round2(float64(in.EstimatedCost) * rate),
		Placeholder:     true,
	}, nil
}

type pricePoint struct {
	Date  string `json:"date"`
	Price int    `json:"price"`
}

type flightRecord struct {
	Destination   string       `json:"destination"`
	DepartureDate string       `json:"departure_date"`
	Cabin         string       `json:"cabin"`
	PriceEstimate int          `json:"price_estimate"`
	PriceHistory  []pricePoint `json:"price_history"`
	DaysToDepart  int          `json:"days_to_depart"`
	Placeholder   bool         `json:"placeholder"`
}

func genFlightTracker(in *genInput) (any, error) {
	tl := in.Timeline
	price := max(int(in.noise(float64(in.EstimatedCost)*0.3, 0.1)), 1)
	cabin := "economy"
	if c, ok := in.Params["cabin"].(string); ok {
		cabin = c
	}

	history := []pricePoint{}
	points := min(tl.ElapsedDays/7+1, 8)
	for i := 0; i < points; i++ {
		offset := tl.ElapsedDays * i / max(points-1, 1)
		history = append(history, pricePoint{
			Date:  tl.dayAt(offset),
			Price: max(int(in.noise(float64(price), 0.12)), 1),
		})
	}
	return flightRecord{
		Destination:   destination(in.Context),
		DepartureDate: tl.dayAt(tl.TotalDays),
		Cabin:         cabin,
		PriceEstimate: price,
		PriceHistory:  history,
		DaysToDepart:  tl.DaysRemaining,
		Placeholder:   true,
	}, nil
}

type forecastDay struct {
	Date      string `json:"date"`
	HighC     int    `json:"high_c"`
	LowC      int    `json:"low_c"`
	Condition string `json:"condition"`
}

type weatherRecord struct {
	Location    string        `json:"location"`
	Units       string        `json:"units"`
	Forecast    []forecastDay `json:"forecast"`
	Placeholder bool          `json:"placeholder"`
}

var conditions = []string{"sunny", "partly cloudy", "cloudy", "light rain", "clear"}

func genWeatherWidget(in *genInput) (any, error) {
	days := min(max(in.intParam("days", 5), 1), 14)
	units := "celsius"
	if u, ok := in.Params["units"].(string); ok {
		units = u
	}
	base := in.between(8, 28)
	forecast := make([]forecastDay, 0, days)
	for i := 0; i < days; i++ {
		high := base + in.between(-3, 3)
		forecast = append(forecast, forecastDay{
			Date:      in.Timeline.dayAt(in.Timeline.TotalDays + i),
			HighC:     high,
			LowC:      high - in.between(5, 10),
			Condition: conditions[in.rng.IntN(len(conditions))],
		})
	}
	return weatherRecord{
		Location:    destination(in.Context),
		Units:       units,
		Forecast:    forecast,
		Placeholder: true,
	}, nil
}

type languageRecord struct {
	Language         string  `json:"language"`
	Level            string  `json:"level"`
	WordsLearned     int     `json:"words_learned"`
	LessonsCompleted int     `json:"lessons_completed"`
	TotalLessons     int     `json:"total_lessons"`
	DailyGoalMinutes int     `json:"daily_goal_minutes"`
	ProgressPercent  float64 `json:"progress_percent"`
}

var languages = []string{
	"spanish", "french", "german", "italian", "portuguese", "japanese",
	"mandarin", "chinese", "korean", "arabic", "russian", "dutch", "thai",
}

func genLanguagePractice(in *genInput) (any, error) {
	lang := "Target language"
	text := in.text()
	for _, l := range languages {
		if containsWord(text, l) {
			lang = strings.ToUpper(l[:1]) + l[1:]
			break
		}
	}
	tl := in.Timeline
	total := max(tl.TotalDays/3, 1)
	completed := int(math.Round(float64(total) * tl.ProgressFraction))

	level := "A1"
	switch p := tl.ProgressFraction; {
	case p >= 0.75:
		level = "B2"
	case p >= 0.5:
		level = "B1"
	case p >= 0.25:
		level = "A2"
	}
	return languageRecord{
		Language:         lang,
		Level:            level,
		WordsLearned:     int(in.noise(float64(tl.ElapsedDays*12), 0.15)),
		LessonsCompleted: completed,
		TotalLessons:     total,
		DailyGoalMinutes: in.intParam("daily_minutes", 20),
		ProgressPercent:  tl.ProgressPercent(),
	}, nil
}

type pathModule struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

type learningRecord struct {
	Modules          []pathModule `json:"modules"`
	CompletedModules int          `json:"completed_modules"`
	TotalModules     int          `json:"total_modules"`
	HoursStudied     float64      `json:"hours_studied"`
}

var pathTitles = []string{"Foundations", "Core concepts", "Practice set", "Applied project", "Advanced topics", "Capstone"}

func genLearningPath(in *genInput) (any, error) {
	total := len(pathTitles)
	done := int(math.Floor(float64(total) * in.Timeline.ProgressFraction))

	modules := make([]pathModule, total)
	for i, title := range pathTitles {
		status := "pending"
		switch {
		case i < done:
			status = "completed"
		case i == done && in.Timeline.ProgressFraction > 0:
			status = "in_progress"
		}
		modules[i] = pathModule{Title: title, Status: status}
	}
	return learningRecord{
		Modules:          modules,
		CompletedModules: done,
		TotalModules:     total,
		HoursStudied:     round1(in.noise(float64(in.Timeline.ElapsedDays)*0.75, 0.2)),
	}, nil
}

type allocation struct {
	Asset   string `json:"asset"`
	Percent int    `json:"percent"`
}

type portfolioRecord struct {
	TargetValue   int          `json:"target_value"`
	Contributions int          `json:"contributions"`
	Gains         int          `json:"gains"`
	CurrentValue  int          `json:"current_value"`
	RiskProfile   string       `json:"risk_profile"`
	Allocation    []allocation `json:"allocation"`
}

var allocationsByRisk = map[string][]float64{
	"conservative": {30, 55, 15},
	"balanced":     {60, 30, 10},
	"aggressive":   {85, 10, 5},
}

func genInvestmentPortfolio(in *genInput) (any, error) {
	if in.EstimatedCost <= 0 {
		return nil, errNoCost
	}
	risk, _ := in.Params["risk_profile"].(string)
	weights, ok := allocationsByRisk[risk]
	if !ok {
		risk, weights = "balanced", allocationsByRisk["balanced"]
	}
	pcts := splitExact(100, weights)

	contributions := in.savedSoFar()
	gains := int(math.Round(float64(contributions) * (in.rng.Float64()*0.17 - 0.05)))
	return portfolioRecord{
		TargetValue:   in.EstimatedCost,
		Contributions: contributions,
		Gains:         gains,
		CurrentValue:  contributions + gains,
		RiskProfile:   risk,
		Allocation: []allocation{
			{Asset: "Stocks", Percent: pcts[0]},
			{Asset: "Bonds", Percent: pcts[1]},
			{Asset: "Cash", Percent: pcts[2]},
		},
	}, nil
}

type funding struct {
	Target int `json:"target"`
	Raised int `json:"raised"`
}

type businessRecord struct {
	Stage        string      `json:"stage"`
	Funding      funding     `json:"funding"`
	RunwayMonths int         `json:"runway_months"`
	Milestones   []milestone `json:"milestones"`
}

func genBusinessPlan(in *genInput) (any, error) {
	p := in.Timeline.ProgressFraction
	stage := "idea"
	switch {
	case p >= 0.75:
		stage = "growth"
	case p >= 0.5:
		stage = "launch"
	case p >= 0.25:
		stage = "prototype"
	case p > 0:
		stage = "validation"
	}
	ms := milestones(in.Timeline, 4)
	for i, title := range []string{"Validate the problem", "Build the prototype", "First paying customer", "Break even"} {
		ms[i].Title = title
	}
	return businessRecord{
		Stage:        stage,
		Funding:      funding{Target: in.EstimatedCost, Raised: in.savedSoFar()},
		RunwayMonths: in.between(3, 18),
		Milestones:   ms,
	}, nil
}

type pipelineStage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type careerRecord struct {
	Applications int             `json:"applications"`
	Interviews   int             `json:"interviews"`
	Offers       int             `json:"offers"`
	Stages       []pipelineStage `json:"stages"`
}

func genCareerPipeline(in *genInput) (any, error) {
	weeks := in.Timeline.ElapsedDays / 7
	apps := weeks * in.between(2, 5)
	interviews := int(math.Round(float64(apps) * (0.1 + in.rng.Float64()*0.2)))
	offers := 0
	if interviews > 0 {
		offers = in.between(0, min(interviews, 2))
	}
	return careerRecord{
		Applications: apps,
		Interviews:   interviews,
		Offers:       offers,
		Stages: []pipelineStage{
			{Name: "applied", Count: apps},
			{Name: "interviewing", Count: interviews},
			{Name: "offer", Count: offers},
		},
	}, nil
}

type propertyRecord struct {
	TargetPrice       int `json:"target_price"`
	DownPaymentTarget int `json:"down_payment_target"`
	DownPaymentSaved  int `json:"down_payment_saved"`
	ListingsViewed    int `json:"listings_viewed"`
	SavedListings     int `json:"saved_listings"`
	DaysRemaining     int `json:"days_remaining"`
}

func genPropertyTracker(in *genInput) (any, error) {
	if in.EstimatedCost <= 0 {
		return nil, errNoCost
	}
	viewed := in.Timeline.ElapsedDays / 7 * in.between(1, 4)
	return propertyRecord{
		TargetPrice:       in.EstimatedCost * 5,
		DownPaymentTarget: in.EstimatedCost,
		DownPaymentSaved:  in.savedSoFar(),
		ListingsViewed:    viewed,
		SavedListings:     in.between(0, viewed/3),
		DaysRemaining:     in.Timeline.DaysRemaining,
	}, nil
}

type task struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

type taskBoardRecord struct {
	Columns map[string]int `json:"columns"`
	Tasks   []task         `json:"tasks"`
}

var taskTitles = []string{
	"Define the outcome", "Research options", "Set a weekly schedule", "Gather resources",
	"Complete the first milestone", "Review progress", "Adjust the plan", "Finish strong",
	"Share the result", "Celebrate",
}

func genTaskBoard(in *genInput) (any, error) {
	n := in.between(6, len(taskTitles))
	done := int(math.Round(float64(n) * in.Timeline.ProgressFraction))
	doing := 0
	if done < n && in.Timeline.ProgressFraction > 0 {
		doing = 1
	}

	tasks := make([]task, n)
	for i := range tasks {
		status := "todo"
		switch {
		case i < done:
			status = "done"
		case i < done+doing:
			status = "doing"
		}
		tasks[i] = task{Title: taskTitles[i], Status: status}
	}
	return taskBoardRecord{
		Columns: map[string]int{"todo": n - done - doing, "doing": doing, "done": done},
		Tasks:   tasks,
	}, nil
}
