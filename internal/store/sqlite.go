package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

// SQLiteStore represents the SQLite-backed goal database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLiteStore instance.
// It initializes the database with WAL mode, applies pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dbPath != ":memory:" && dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// timeLayout is fixed width so timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const goalColumns = `id, user_id, title, description, category, priority, status,
	estimated_cost, current_saved, target_date, feasibility_score, narrative,
	assigned_agents, module_dataset, active_module_ids, module_partition, context,
	created_at, updated_at`

// CreateGoal stores a new goal snapshot with a fresh ULID.
func (s *SQLiteStore) CreateGoal(ctx context.Context, g types.GoalSnapshot) (*types.GoalSnapshot, error) {
	now := time.Now().UTC()
	g.ID = ulid.Make().String()
	g.CreatedAt = now
	g.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.UserID, g.Title, g.Description, g.Category, string(g.Priority), string(g.Status),
		g.EstimatedCost, g.CurrentSaved, g.TargetDate, g.FeasibilityScore, g.Narrative,
		g.AssignedAgents, g.ModuleDataset, g.ActiveModuleIDs, g.ModulePartition, g.Context,
		g.CreatedAt.Format(timeLayout), g.UpdatedAt.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	return &g, nil
}

// GetGoal retrieves a goal snapshot by id.
func (s *SQLiteStore) GetGoal(ctx context.Context, id string) (*types.GoalSnapshot, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return g, nil
}

// UpdateGoal replaces the snapshot in one statement. The id, owner and
// creation time are preserved.
func (s *SQLiteStore) UpdateGoal(ctx context.Context, g types.GoalSnapshot) (*types.GoalSnapshot, error) {
	if g.ID == "" {
		return nil, ErrMissingID
	}
	g.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE goals SET
			title = ?, description = ?, category = ?, priority = ?, status = ?,
			estimated_cost = ?, current_saved = ?, target_date = ?, feasibility_score = ?,
			narrative = ?, assigned_agents = ?, module_dataset = ?, active_module_ids = ?,
			module_partition = ?, context = ?, updated_at = ?
		WHERE id = ?
	`, g.Title, g.Description, g.Category, string(g.Priority), string(g.Status),
		g.EstimatedCost, g.CurrentSaved, g.TargetDate, g.FeasibilityScore,
		g.Narrative, g.AssignedAgents, g.ModuleDataset, g.ActiveModuleIDs,
		g.ModulePartition, g.Context, g.UpdatedAt.Format(timeLayout), g.ID)
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetGoal(ctx, g.ID)
}

// ListGoals returns snapshots newest first.
func (s *SQLiteStore) ListGoals(ctx context.Context, userID string) ([]types.GoalSnapshot, error) {
	query := `SELECT ` + goalColumns + ` FROM goals`
	var args []any
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []types.GoalSnapshot
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// CountGoals returns the number of stored goals.
func (s *SQLiteStore) CountGoals(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM goals").Scan(&count); err != nil {
		return 0, fmt.Errorf("count goals: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner) (*types.GoalSnapshot, error) {
	var (
		g                    types.GoalSnapshot
		priority, status     string
		createdAt, updatedAt string
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &priority, &status,
		&g.EstimatedCost, &g.CurrentSaved, &g.TargetDate, &g.FeasibilityScore, &g.Narrative,
		&g.AssignedAgents, &g.ModuleDataset, &g.ActiveModuleIDs, &g.ModulePartition, &g.Context,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	g.Priority = types.Priority(priority)
	g.Status = types.Status(status)
	g.CreatedAt = parseTime(g.ID, "created_at", createdAt)
	g.UpdatedAt = parseTime(g.ID, "updated_at", updatedAt)
	return &g, nil
}

func parseTime(id, column, value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		slog.Warn("goals: failed to parse timestamp", "goal_id", id, "column", column, "value", value, "error", err)
		return time.Time{}
	}
	return t
}
