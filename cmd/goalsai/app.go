package main

import (
	"encoding/json"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/config"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/estimation"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/goal"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/policy"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/store"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/synth"
)

// app holds the wired goal service and the store it owns.
type app struct {
	store *store.SQLiteStore
	goals *goal.Service
}

// newApp opens the store and wires the goal pipeline. The category table
// is checked against the module registry before anything is served.
func newApp(cfg *config.Config) (*app, error) {
	registry := capability.Default()
	policies := policy.Default()
	if err := policies.Validate(registry); err != nil {
		return nil, err
	}

	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	synthesizer := synth.New(cfg.Synthesis.Seed,
		synth.WithRegistry(registry),
		synth.WithMaxProgress(cfg.Synthesis.MaxProgress),
	)
	svc := goal.NewService(db, policies, registry, estimation.New(), synthesizer,
		goal.WithOptionalModuleLimit(cfg.Synthesis.OptionalModuleLimit),
	)
	return &app{store: db, goals: svc}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// openApp loads configuration and opens the app for a CLI command.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func money(n int) string {
	return "$" + humanize.Comma(int64(n))
}
