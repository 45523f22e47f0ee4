package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

var goalShowCmd = &cobra.Command{
	Use:   "show <goal-id>",
	Short: "Show a goal with its dashboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalShow,
}

func runGoalShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.goals.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}
	return printDashboard(cmd.OutOrStdout(), result)
}

// printDashboard writes the human-readable view of a goal.
func printDashboard(out io.Writer, g *types.GoalWithDashboard) error {
	w := newTabWriter(out)
	fmt.Fprintf(w, "ID:\t%s\n", g.Goal.ID)
	fmt.Fprintf(w, "Title:\t%s\n", g.Goal.Title)
	fmt.Fprintf(w, "Category:\t%s\n", g.Goal.Category)
	fmt.Fprintf(w, "Status:\t%s (%s priority)\n", g.Goal.Status, g.Goal.Priority)
	fmt.Fprintf(w, "Cost:\t%s (saved %s)\n", money(g.Goal.EstimatedCost), money(g.Goal.CurrentSaved))
	fmt.Fprintf(w, "Target:\t%s (%s)\n", orDash(g.Goal.TargetDate), g.Estimation.TimeframeLabel)
	fmt.Fprintf(w, "Feasibility:\t%d/100\n", g.Goal.FeasibilityScore)
	fmt.Fprintf(w, "Complexity:\t%s\n", g.Estimation.Complexity)
	fmt.Fprintf(w, "Created:\t%s\n", humanize.Time(g.Goal.CreatedAt))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n\n", g.Estimation.Narrative.Specific)

	w = newTabWriter(out)
	fmt.Fprintln(w, "MODULE\tRENDERER\tAVAILABLE")
	for _, m := range g.Modules {
		fmt.Fprintf(w, "%s\t%s\t%t\n", m.ID, orDash(string(m.Renderer)), m.Available)
	}
	return w.Flush()
}
