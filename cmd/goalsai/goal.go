package main

import (
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals",
	Long:  "Create, inspect, and update goals against the local database without running the server.",
}

func init() {
	goalCmd.AddCommand(goalCreateCmd)
	goalCmd.AddCommand(goalShowCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalProgressCmd)
	goalCmd.AddCommand(goalRegenerateCmd)
}
