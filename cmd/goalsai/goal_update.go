package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var goalProgressCmd = &cobra.Command{
	Use:   "progress <goal-id> <fraction>",
	Short: "Record progress between 0 and 1 and regenerate the dashboard",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalProgress,
}

var goalRegenerateCmd = &cobra.Command{
	Use:   "regenerate <goal-id>",
	Short: "Re-estimate a goal and regenerate its dashboard data",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalRegenerate,
}

func runGoalProgress(cmd *cobra.Command, args []string) error {
	progress, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid progress %q: %w", args[1], err)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.goals.UpdateProgress(context.Background(), args[0], progress)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Goal %s is %.0f%% complete (%s of %s saved, %s)\n",
		result.Goal.ID, progress*100, money(result.Goal.CurrentSaved), money(result.Goal.EstimatedCost), result.Goal.Status)
	return nil
}

func runGoalRegenerate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.goals.Regenerate(context.Background(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Regenerated goal %s\n\n", result.Goal.ID)
	return printDashboard(cmd.OutOrStdout(), result)
}
