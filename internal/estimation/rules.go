package estimation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

// effect is how a rule changes a running value.
type effect int

const (
	multiply effect = iota
	floor
	override
)

func (e effect) apply(current, value float64) float64 {
	switch e {
	case floor:
		if current < value {
			return value
		}
		return current
	case override:
		return value
	default:
		return current * value
	}
}

// keywordRule multiplies when any keyword appears in the text.
type keywordRule struct {
	keywords []string
	factor   float64
}

// categoryRule applies to goals of a category (empty = any) whose text
// contains one of keywords (empty = always). habitForming restricts the
// rule to habit-forming policies.
type categoryRule struct {
	category     string
	habitForming bool
	keywords     []string
	effect       effect
	value        float64
}

func (r categoryRule) matches(category string, habitForming bool, text string) bool {
	if r.category != "" && r.category != category {
		return false
	}
	if r.habitForming && !habitForming {
		return false
	}
	return len(r.keywords) == 0 || hasAnyKeyword(text, r.keywords)
}

// costModifiers apply to every category, in order.
var costModifiers = []keywordRule{
	{keywords: []string{"luxury", "premium", "high-end"}, factor: 1.5},
	{keywords: []string{"budget", "cheap", "affordable"}, factor: 0.7},
}

// locationTiers are checked in order; the first match wins, so cities
// must come before the countries that contain them.
var locationTiers = []keywordRule{
	{keywords: []string{
		"new york", "nyc", "san francisco", "london", "tokyo", "zurich",
		"geneva", "singapore", "hong kong", "paris", "sydney", "oslo",
	}, factor: 1.4},
	{keywords: []string{
		"japan", "australia", "canada", "germany", "france", "united kingdom",
		"uk", "switzerland", "norway", "united states", "usa", "italy", "spain",
	}, factor: 1.2},
	{keywords: []string{
		"thailand", "vietnam", "india", "mexico", "indonesia", "bali",
		"colombia", "peru", "philippines", "cambodia", "nepal", "southeast asia",
	}, factor: 0.6},
}

var categoryCostRules = []categoryRule{
	{category: "investment", keywords: []string{"portfolio", "wealth"}, effect: floor, value: 10000},
	{category: "travel", keywords: []string{"week"}, effect: multiply, value: 0.8},
	{category: "travel", keywords: []string{"month"}, effect: multiply, value: 2.0},
	{category: "business", keywords: []string{"startup", "launch"}, effect: floor, value: 5000},
	{category: "home", keywords: []string{"down payment", "downpayment"}, effect: floor, value: 20000},
}

var durationModifiers = []keywordRule{
	{keywords: []string{"master", "expert", "advanced"}, factor: 1.5},
	{keywords: []string{"basic", "beginner", "simple"}, factor: 0.7},
}

// categoryDurationRules run after durationModifiers. Later overrides win,
// so "marathon" is listed after "5k".
var categoryDurationRules = []categoryRule{
	{habitForming: true, effect: floor, value: 66},
	{category: "language", keywords: []string{"fluent", "conversational"}, effect: floor, value: 365},
	{category: "fitness", keywords: []string{"5k"}, effect: override, value: 90},
	{category: "fitness", keywords: []string{"marathon"}, effect: override, value: 180},
}

// complexityTiers are checked in order; advanced wins over beginner.
var complexityTiers = []struct {
	tier     types.ComplexityTier
	keywords []string
}{
	{types.ComplexityComplex, []string{"master", "expert", "advanced", "professional", "fluent", "marathon", "ambitious"}},
	{types.ComplexitySimple, []string{"basic", "beginner", "simple", "easy", "intro", "casual"}},
}

// contextualTriggers add modules when their keywords appear.
var contextualTriggers = []struct {
	module   capability.ModuleKind
	keywords []string
}{
	{capability.HabitTracker, []string{"habit", "routine", "consisten"}},
	{capability.BudgetBreakdown, []string{"$", "money", "cost", "save", "saving", "budget", "afford", "pay", "fund"}},
	{capability.StreakCounter, []string{"daily", "weekly", "every day", "each day", "every week", "streak"}},
	{capability.CurrencyConverter, []string{"abroad", "international", "overseas", "foreign"}},
}

var (
	currencyToken = regexp.MustCompile(`\$\s?(\d[\d,]*(?:\.\d+)?)([km])?\b`)
	currencyWords = regexp.MustCompile(`\b(\d[\d,]*(?:\.\d+)?)\s*(k|m)?\s*(?:usd|dollars)\b`)

	prefixedDuration = regexp.MustCompile(`\b(?:in|within|over|for|next|by)\s+(\d+)\s*(day|week|month|year)s?\b`)
	bareDuration     = regexp.MustCompile(`\b(\d+)\s*(day|week|month|year)s?\b`)
	cadenceSuffix    = regexp.MustCompile(`^\s+(?:a|per|each|every)\b`)
)

var unitDays = map[string]int{
	"day":   1,
	"week":  7,
	"month": 30,
	"year":  365,
}

// hasKeyword reports whether kw occurs in text starting at a word
// boundary. Suffixes are allowed so "week" matches "weeks".
func hasKeyword(text, kw string) bool {
	for i := 0; i <= len(text)-len(kw); {
		j := strings.Index(text[i:], kw)
		if j < 0 {
			return false
		}
		pos := i + j
		if atWordStart(text, pos) || !isWordRune(rune(kw[0])) {
			return true
		}
		i = pos + 1
	}
	return false
}

// hasWord is hasKeyword with a word boundary on both sides.
func hasWord(text, word string) bool {
	for i := 0; i <= len(text)-len(word); {
		j := strings.Index(text[i:], word)
		if j < 0 {
			return false
		}
		start, end := i+j, i+j+len(word)
		left := atWordStart(text, start)
		right := end == len(text) || !isWordRune(rune(text[end]))
		if left && right {
			return true
		}
		i = start + 1
	}
	return false
}

func hasAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if hasKeyword(text, kw) {
			return true
		}
	}
	return false
}

// atWordStart reports whether a word begins at pos. A token right after
// "$" is an amount, so "$5k" never starts the word "5k".
func atWordStart(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	prev := rune(text[pos-1])
	return !isWordRune(prev) && prev != '$'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
