package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillTaskSeq(db); err != nil {
		return fmt.Errorf("backfilling task seq values: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profile (
		id                    TEXT PRIMARY KEY DEFAULT 'default',
		name                  TEXT NOT NULL DEFAULT '',
		age_group             TEXT NOT NULL DEFAULT '',
		weekly_schedule       TEXT NOT NULL DEFAULT '{}',
		weekend_schedule      TEXT NOT NULL DEFAULT '{}',
		sleep_weekdays        TEXT NOT NULL DEFAULT '',
		sleep_weekends        TEXT NOT NULL DEFAULT '',
		break_times           TEXT NOT NULL DEFAULT '',
		is_procrastinator     INTEGER NOT NULL DEFAULT 0,
		procrastinator_type   TEXT NOT NULL DEFAULT '',
		trouble_finishing     TEXT NOT NULL DEFAULT '',
		work_style            TEXT NOT NULL DEFAULT '',
		productive_time       TEXT NOT NULL DEFAULT '',
		study_method          TEXT NOT NULL DEFAULT '',
		weekly_personal_hours REAL NOT NULL DEFAULT 0,
		weekly_review_hours   REAL NOT NULL DEFAULT 0,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		priority          TEXT NOT NULL,
		category          TEXT NOT NULL DEFAULT 'study',
		deadline          TEXT NOT NULL,
		deadline_time     TEXT NOT NULL DEFAULT '23:59',
		duration_hours    REAL NOT NULL CHECK(duration_hours > 0),
		computer_required INTEGER NOT NULL DEFAULT 0,
		completed         INTEGER NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_deadline ON tasks(deadline, deadline_time)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_goals_name ON goals(name COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS schedule_blocks (
		id         TEXT PRIMARY KEY,
		task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		task_name  TEXT NOT NULL,
		priority   TEXT NOT NULL,
		category   TEXT NOT NULL,
		start_at   TEXT NOT NULL,
		end_at     TEXT NOT NULL,
		is_weekend INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_blocks_task ON schedule_blocks(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_blocks_start ON schedule_blocks(start_at)`,

	`CREATE TABLE IF NOT EXISTS fixed_blocks (
		id       TEXT PRIMARY KEY,
		label    TEXT NOT NULL,
		category TEXT NOT NULL CHECK(category IN ('routine','break','weekend')),
		start_at TEXT NOT NULL,
		end_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_fixed_blocks_start ON fixed_blocks(start_at)`,

	`CREATE TABLE IF NOT EXISTS placements (
		task_id          TEXT PRIMARY KEY REFERENCES tasks(id) ON DELETE CASCADE,
		task_name        TEXT NOT NULL,
		strategy         TEXT NOT NULL,
		chunk_size_min   INTEGER NOT NULL,
		break_min        INTEGER NOT NULL,
		buffer_min       INTEGER NOT NULL,
		chunk_count      INTEGER NOT NULL,
		chunks_scheduled INTEGER NOT NULL,
		skipped          INTEGER NOT NULL DEFAULT 0,
		generated_at     TEXT NOT NULL
	)`,

	// Insertion order of tasks, used as the stable tie-breaker when ranking.
	`ALTER TABLE tasks ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
}

// migrateBackfillTaskSeq numbers tasks that predate the seq column in
// created_at order. Idempotent: does nothing once every task has seq > 0.
func migrateBackfillTaskSeq(db *sql.DB) error {
	ctx := context.Background()

	var pending int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE seq = 0`).Scan(&pending); err != nil {
		return fmt.Errorf("checking task seq: %w", err)
	}
	if pending == 0 {
		return nil
	}

	var next int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM tasks`).Scan(&next); err != nil {
		return fmt.Errorf("reading max task seq: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM tasks WHERE seq = 0 ORDER BY created_at, id`)
	if err != nil {
		return fmt.Errorf("listing tasks without seq: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning task id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	for _, id := range ids {
		if _, err := db.ExecContext(ctx, `UPDATE tasks SET seq = ? WHERE id = ? AND seq = 0`, next, id); err != nil {
			return fmt.Errorf("updating task seq: %w", err)
		}
		next++
	}
	return nil
}
