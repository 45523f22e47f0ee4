package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/policy"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List goal categories and their default modules",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List registered dashboard modules",
	Args:  cobra.NoArgs,
	RunE:  runModules,
}

func runCategories(cmd *cobra.Command, args []string) error {
	cats := policy.Default().Categories()

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"categories": cats,
			"total":      len(cats),
		})
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tNAME\tDEFAULT COST\tDEADLINE\tREQUIRED MODULES")
	for _, c := range cats {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dd\t%s\n",
			c.ID,
			c.Name,
			money(c.DefaultEstimatedCost),
			c.DefaultDeadlineDays,
			joinKinds(c.RequiredModules),
		)
	}
	return w.Flush()
}

func runModules(cmd *cobra.Command, args []string) error {
	registry := capability.Default()
	kinds := registry.Kinds()

	if jsonOutput {
		caps := make([]capability.Capability, 0, len(kinds))
		for _, k := range kinds {
			c, _ := registry.Get(k)
			caps = append(caps, c)
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"modules": caps,
			"total":   len(caps),
		})
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "MODULE\tRENDERER")
	for _, k := range kinds {
		c, _ := registry.Get(k)
		fmt.Fprintf(w, "%s\t%s\n", k, c.Renderer)
	}
	return w.Flush()
}

func joinKinds(kinds []capability.ModuleKind) string {
	s := make([]string, len(kinds))
	for i, k := range kinds {
		s[i] = string(k)
	}
	return strings.Join(s, ", ")
}
