package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/validation"
)

var (
	createUser        string
	createDescription string
	createCategory    string
	createPriority    string
	createLocation    string
	createBudget      float64
	createTimeframe   string
	createExperience  string
)

var goalCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a goal and compose its dashboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalCreate,
}

func init() {
	f := goalCreateCmd.Flags()
	f.StringVar(&createCategory, "category", "", "Goal category (see 'goalsai categories')")
	f.StringVar(&createDescription, "description", "", "Longer description of the goal")
	f.StringVar(&createUser, "user", "", "Owning user id")
	f.StringVar(&createPriority, "priority", "", "Priority: low, medium, high (default: medium)")
	f.StringVar(&createLocation, "location", "", "Where the goal takes place")
	f.Float64Var(&createBudget, "budget", 0, "Budget available for the goal")
	f.StringVar(&createTimeframe, "timeframe", "", "Desired timeframe, e.g. \"6 months\"")
	f.StringVar(&createExperience, "experience", "", "Prior experience, e.g. beginner")
	_ = goalCreateCmd.MarkFlagRequired("category")
}

func runGoalCreate(cmd *cobra.Command, args []string) error {
	req := types.CreateGoalRequest{
		UserID:         createUser,
		Title:          args[0],
		Description:    createDescription,
		Category:       createCategory,
		Priority:       types.Priority(createPriority),
		UserLocation:   createLocation,
		UserTimeframe:  createTimeframe,
		UserExperience: createExperience,
	}
	if cmd.Flags().Changed("budget") {
		budget := createBudget
		req.UserBudget = &budget
	}

	if errs := validation.ValidateCreateGoalRequest(req); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Field + " " + e.Message
		}
		return fmt.Errorf("invalid goal: %s", strings.Join(msgs, "; "))
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.goals.Create(context.Background(), req)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created goal %s\n\n", result.Goal.ID)
	return printDashboard(cmd.OutOrStdout(), result)
}
