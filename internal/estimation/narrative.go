package estimation

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/policy"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

// narrativeTemplate holds one SMART field per entry. Placeholders:
// {title}, {cost}, {timeframe}, {days}, {complexity}.
type narrativeTemplate struct {
	specific   string
	measurable string
	achievable string
	relevant   string
	timeBound  string
}

var genericNarrative = narrativeTemplate{
	specific:   "Achieve \"{title}\" with a clear plan and regular check-ins.",
	measurable: "Track progress against an estimated budget of {cost}.",
	achievable: "A {complexity} goal that fits into {timeframe} of steady effort.",
	relevant:   "Moves you toward something you chose to care about.",
	timeBound:  "Complete within {timeframe} ({days} days).",
}

var categoryNarratives = map[string]narrativeTemplate{
	"travel": {
		specific:   "Plan and take the trip: \"{title}\".",
		measurable: "Save {cost} for flights, stays and daily spending.",
		achievable: "Set aside a fixed amount each week and book early for better fares.",
		relevant:   "Travel builds perspective and memories that last.",
		timeBound:  "Be ready to travel within {timeframe} ({days} days).",
	},
	"savings": {
		specific:   "Build a dedicated fund for \"{title}\".",
		measurable: "Reach a balance of {cost}.",
		achievable: "Automate a transfer on every payday and review spending monthly.",
		relevant:   "A cash reserve protects you from surprises and gives you options.",
		timeBound:  "Hit the target within {timeframe} ({days} days).",
	},
	"investment": {
		specific:   "Grow capital for \"{title}\" through a diversified portfolio.",
		measurable: "Invest a total of {cost} and review allocation each quarter.",
		achievable: "Contribute regularly and keep costs low with broad index funds.",
		relevant:   "Compounding turns steady contributions into long-term wealth.",
		timeBound:  "Reach the contribution target within {timeframe} ({days} days).",
	},
	"business": {
		specific:   "Launch and validate \"{title}\".",
		measurable: "Fund the first stage with {cost} and track milestones on the plan.",
		achievable: "Ship a small version first, then iterate on customer feedback.",
		relevant:   "Building something of your own grows skills and independence.",
		timeBound:  "Reach the launch milestone within {timeframe} ({days} days).",
	},
	"fitness": {
		specific:   "Train for \"{title}\".",
		measurable: "Log every workout and track weekly volume and key metrics.",
		achievable: "A {complexity} program with progressive overload and rest days.",
		relevant:   "Fitness improves energy, mood and long-term health.",
		timeBound:  "Be ready within {timeframe} ({days} days).",
	},
	"health": {
		specific:   "Improve wellbeing through \"{title}\".",
		measurable: "Track daily habits and check key health metrics each week.",
		achievable: "Change one routine at a time and keep the bar low on hard days.",
		relevant:   "Small healthy routines compound into lasting change.",
		timeBound:  "Make it stick within {timeframe} ({days} days).",
	},
	"habits": {
		specific:   "Build the habit: \"{title}\".",
		measurable: "Check in every day and keep the streak alive.",
		achievable: "Start small enough that skipping feels silly.",
		relevant:   "Habits are the system that makes goals automatic.",
		timeBound:  "Practice daily for {days} days, long enough for the habit to settle.",
	},
	"language": {
		specific:   "Learn the language for \"{title}\".",
		measurable: "Practice every day and complete a lesson unit each week.",
		achievable: "Mix short daily drills with weekly conversation practice.",
		relevant:   "A new language opens up people, places and ideas.",
		timeBound:  "Reach the target level within {timeframe} ({days} days).",
	},
	"learning": {
		specific:   "Master the material for \"{title}\".",
		measurable: "Complete each module on the learning path and track hours studied.",
		achievable: "Study in focused sessions and apply each topic in a small project.",
		relevant:   "New skills compound across work and life.",
		timeBound:  "Finish the path within {timeframe} ({days} days).",
	},
	"career": {
		specific:   "Take the next career step: \"{title}\".",
		measurable: "Track applications, interviews and offers in the pipeline.",
		achievable: "Send targeted applications weekly and practice interviews.",
		relevant:   "The right role aligns daily work with long-term ambitions.",
		timeBound:  "Land the outcome within {timeframe} ({days} days).",
	},
	"home": {
		specific:   "Make progress on \"{title}\".",
		measurable: "Save {cost} and track listings, offers and costs.",
		achievable: "Automate savings and get pre-approved before house hunting.",
		relevant:   "A home is stability and a base for everything else.",
		timeBound:  "Be ready to move within {timeframe} ({days} days).",
	},
	"creative": {
		specific:   "Create and finish \"{title}\".",
		measurable: "Break the project into tasks and move one forward every session.",
		achievable: "Protect regular creative time and ship imperfect drafts.",
		relevant:   "Finished work builds confidence and an audience.",
		timeBound:  "Complete the project within {timeframe} ({days} days).",
	},
}

// GenerateNarrative renders the SMART fields from the category template,
// falling back to a generic template for unmapped categories.
func GenerateNarrative(gc types.GoalContext, p policy.Policy, cost, days int) types.Narrative {
	tmpl, ok := categoryNarratives[p.ID]
	if !ok {
		tmpl = genericNarrative
	}

	title := strings.TrimSpace(gc.Title)
	if title == "" {
		title = p.Name
	}
	r := strings.NewReplacer(
		"{title}", title,
		"{cost}", "$"+humanize.Comma(int64(cost)),
		"{timeframe}", TimeframeLabel(days),
		"{days}", humanize.Comma(int64(days)),
		"{complexity}", string(AssessComplexity(gc)),
	)

	return types.Narrative{
		Specific:   r.Replace(tmpl.specific),
		Measurable: r.Replace(tmpl.measurable),
		Achievable: r.Replace(tmpl.achievable),
		Relevant:   r.Replace(tmpl.relevant),
		TimeBound:  r.Replace(tmpl.timeBound),
	}
}
