package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planwise/internal/db"
	"github.com/alexanderramin/planwise/internal/domain"
)

// SQLiteGoalRepo implements GoalRepo using a SQLite database.
type SQLiteGoalRepo struct {
	db db.DBTX
}

// NewSQLiteGoalRepo creates a new SQLiteGoalRepo.
func NewSQLiteGoalRepo(conn db.DBTX) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: conn}
}

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, name, color, created_at) VALUES (?, ?, ?, ?)`,
		g.ID, g.Name, g.Color, formatTime(g.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, color, created_at FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if err != nil {
		return nil, notFound("goal", err)
	}
	return g, nil
}

// GetByName matches the name case-insensitively.
func (r *SQLiteGoalRepo) GetByName(ctx context.Context, name string) (*domain.Goal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at FROM goals WHERE name = ? COLLATE NOCASE`, name)
	g, err := scanGoal(row)
	if err != nil {
		return nil, notFound("goal", err)
	}
	return g, nil
}

func (r *SQLiteGoalRepo) List(ctx context.Context) ([]*domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color, created_at FROM goals ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal row: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	return goals, nil
}

func (r *SQLiteGoalRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return requireAffected(res, "goal")
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var g domain.Goal
	var createdAt string
	if err := row.Scan(&g.ID, &g.Name, &g.Color, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if g.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &g, nil
}
