package goal

import "github.com/engalejandrovargas/GoalsAI-sub002/internal/types"

const baseFeasibility = 75

// budgetBands are checked in order against budget / estimated cost.
var budgetBands = []struct {
	below  float64
	adjust int
}{
	{0.25, -15},
	{0.5, -10},
	{1.0, 0},
	{1.5, 10},
}

const wellFundedAdjust = 15

var complexityAdjust = map[types.ComplexityTier]int{
	types.ComplexitySimple:   10,
	types.ComplexityModerate: 5,
	types.ComplexityComplex:  -5,
}

// FeasibilityScore rates how achievable a goal looks on a 0-100 scale.
// budget is optional; a nil budget leaves the score unadjusted for funding.
func FeasibilityScore(days, cost int, budget *float64, tier types.ComplexityTier, categoryAdjust int) int {
	score := baseFeasibility

	switch {
	case days < 90:
		score -= 10
	case days >= 180 && days <= 540:
		score += 10
	case days > 720:
		score -= 5
	}

	if budget != nil && cost > 0 {
		score += budgetAdjust(*budget / float64(cost))
	}

	score += complexityAdjust[tier]
	score += categoryAdjust

	return min(max(score, 0), 100)
}

func budgetAdjust(ratio float64) int {
	for _, b := range budgetBands {
		if ratio < b.below {
			return b.adjust
		}
	}
	return wellFundedAdjust
}
