package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
)

func TestEstimation_MarshalJSON_NilSlicesAsEmptyArrays(t *testing.T) {
	data, err := json.Marshal(Estimation{TargetDate: time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	s := string(data)
	for _, field := range []string{"required_modules", "contextual_modules", "optional_modules", "suggested_agents"} {
		if !strings.Contains(s, `"`+field+`":[]`) {
			t.Errorf("%s should marshal as [], got %s", field, s)
		}
	}
	if strings.Contains(s, "null") {
		t.Errorf("unexpected null in %s", s)
	}
}

func TestEstimation_MarshalJSON_KeepsValues(t *testing.T) {
	e := Estimation{
		EstimatedCost:   5000,
		Complexity:      ComplexityModerate,
		RequiredModules: []capability.ModuleKind{capability.FinancialCalculator},
		SuggestedAgents: []string{"financial-advisor"},
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Estimation
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.EstimatedCost != 5000 || decoded.Complexity != ComplexityModerate {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.RequiredModules) != 1 || decoded.RequiredModules[0] != capability.FinancialCalculator {
		t.Errorf("RequiredModules = %v", decoded.RequiredModules)
	}
}

func TestGoalWithDashboard_MarshalJSON_EmptyModules(t *testing.T) {
	data, err := json.Marshal(GoalWithDashboard{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"modules":[]`) {
		t.Errorf("modules should marshal as [], got %s", data)
	}
}

func TestGoalListResponse_MarshalJSON_EmptyGoals(t *testing.T) {
	data, err := json.Marshal(GoalListResponse{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"goals":[],"total":0}` {
		t.Errorf("got %s", data)
	}
}

func TestCreateGoalRequest_Context(t *testing.T) {
	budget := 1500.0
	req := CreateGoalRequest{
		UserID:         "u1",
		Title:          "Trip to Lisbon",
		Description:    "A week by the sea",
		Category:       "travel",
		Priority:       PriorityHigh,
		UserLocation:   "Lisbon",
		UserBudget:     &budget,
		UserTimeframe:  "3 months",
		UserExperience: "beginner",
	}

	gc := req.Context()

	if gc.Title != req.Title || gc.Description != req.Description || gc.Category != req.Category {
		t.Errorf("core fields not copied: %+v", gc)
	}
	if gc.UserLocation != "Lisbon" || gc.UserTimeframe != "3 months" || gc.UserExperience != "beginner" {
		t.Errorf("hints not copied: %+v", gc)
	}
	if gc.UserBudget == nil || *gc.UserBudget != 1500 {
		t.Errorf("UserBudget = %v", gc.UserBudget)
	}
}

func TestGoalContext_Hints(t *testing.T) {
	budget := 0.0
	gc := GoalContext{
		Title:        "Learn Spanish",
		Category:     "language",
		UserLocation: "Madrid",
		UserBudget:   &budget,
	}

	h := gc.Hints()
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatal(err)
	}

	// Zero budget is a real answer and must survive; empty hints are omitted.
	want := `{"user_location":"Madrid","user_budget":0}`
	if string(data) != want {
		t.Errorf("Hints JSON = %s, want %s", data, want)
	}
}

func TestModuleView_OmitsEmptyOptionalFields(t *testing.T) {
	data, err := json.Marshal(ModuleView{ID: capability.AgentPanel})
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if s != `{"id":"`+string(capability.AgentPanel)+`","available":false}` {
		t.Errorf("ModuleView JSON = %s", s)
	}
}
