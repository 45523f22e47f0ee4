package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

var listUser string

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals, newest first",
	Args:  cobra.NoArgs,
	RunE:  runGoalList,
}

func init() {
	goalListCmd.Flags().StringVar(&listUser, "user", "", "Only list goals owned by this user")
}

func runGoalList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	goals, err := a.goals.List(context.Background(), listUser)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), types.GoalListResponse{Goals: goals, Total: len(goals)})
	}

	if len(goals) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No goals found.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSTATUS\tCOST\tTARGET\tCREATED")
	for _, g := range goals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			g.ID,
			g.Title,
			g.Category,
			g.Status,
			money(g.EstimatedCost),
			orDash(g.TargetDate),
			humanize.Time(g.CreatedAt),
		)
	}
	return w.Flush()
}
