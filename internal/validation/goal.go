package validation

import (
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

// Field limits for goal requests.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 4000
	MaxUserIDLength      = 128
	MaxHintLength        = 200
)

var priorities = []string{
	string(types.PriorityLow),
	string(types.PriorityMedium),
	string(types.PriorityHigh),
}

// ValidateCreateGoalRequest checks a create request and returns every field
// error found. Category existence is checked later against the policy table.
func ValidateCreateGoalRequest(req types.CreateGoalRequest) []ValidationError {
	c := &Collector{}

	c.Add(ValidateRequired("title", req.Title))
	c.Text("title", req.Title, MaxTitleLength)
	c.Text("description", req.Description, MaxDescriptionLength)

	c.Add(ValidateRequired("category", req.Category))
	c.Text("user_id", req.UserID, MaxUserIDLength)

	if req.Priority != "" {
		c.Add(ValidateEnum("priority", string(req.Priority), priorities))
	}
	if req.UserBudget != nil {
		c.Add(ValidateNonNegative("user_budget", *req.UserBudget))
	}

	hints := []struct{ field, value string }{
		{"user_location", req.UserLocation},
		{"user_timeframe", req.UserTimeframe},
		{"user_experience", req.UserExperience},
	}
	for _, h := range hints {
		c.Text(h.field, h.value, MaxHintLength)
	}

	return c.Errors()
}

// ValidateProgressRequest checks that a progress value is present and in [0, 1].
func ValidateProgressRequest(req types.UpdateProgressRequest) []ValidationError {
	if req.Progress == nil {
		return []ValidationError{{Field: "progress", Message: "is required"}}
	}
	if err := ValidateRange("progress", *req.Progress, 0, 1); err != nil {
		return []ValidationError{*err}
	}
	return nil
}
