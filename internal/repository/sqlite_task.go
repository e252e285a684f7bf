package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planwise/internal/db"
	"github.com/alexanderramin/planwise/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, name, priority, category, deadline, deadline_time, duration_hours,
		computer_required, completed, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, name, priority, category, deadline, deadline_time, duration_hours,
		computer_required, completed, seq, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM tasks), ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		string(t.Priority),
		t.EffectiveCategory(),
		t.Deadline,
		t.EffectiveDeadlineTime(),
		t.DurationHours,
		boolToInt(t.ComputerRequired),
		boolToInt(t.Completed),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound("task", err)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) List(ctx context.Context, includeCompleted bool) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE completed = 0 ORDER BY seq`
	if includeCompleted {
		query = `SELECT ` + taskColumns + ` FROM tasks ORDER BY seq`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET name = ?, priority = ?, category = ?, deadline = ?, deadline_time = ?,
		duration_hours = ?, computer_required = ?, completed = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		string(t.Priority),
		t.EffectiveCategory(),
		t.Deadline,
		t.EffectiveDeadlineTime(),
		t.DurationHours,
		boolToInt(t.ComputerRequired),
		boolToInt(t.Completed),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task")
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, "task")
}

// ReassignCategory moves every task in category from to category to and
// returns how many tasks changed.
func (r *SQLiteTaskRepo) ReassignCategory(ctx context.Context, from, to string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET category = ?, updated_at = ? WHERE category = ?`, to, nowUTC(), from)
	if err != nil {
		return 0, fmt.Errorf("reassigning task category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting reassigned tasks: %w", err)
	}
	return n, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var priority, createdAt, updatedAt string
	var computer, completed int
	if err := row.Scan(
		&t.ID, &t.Name, &priority, &t.Category, &t.Deadline, &t.DeadlineTime, &t.DurationHours,
		&computer, &completed, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	t.ComputerRequired = intToBool(computer)
	t.Completed = intToBool(completed)

	var err error
	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
