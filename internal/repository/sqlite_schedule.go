package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/planwise/internal/db"
	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/google/uuid"
)

const blockColumns = `id, task_id, task_name, priority, category, start_at, end_at, is_weekend`

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
// Replace issues several statements; run it inside a UnitOfWork so a
// failure leaves the previous schedule in place.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(conn db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn}
}

// Replace assigns IDs to blocks that have none, writing them back into
// snap's slices.
func (r *SQLiteScheduleRepo) Replace(ctx context.Context, snap Snapshot) error {
	for _, table := range []string{"schedule_blocks", "fixed_blocks", "placements"} {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i := range snap.Blocks {
		b := &snap.Blocks[i]
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO schedule_blocks (`+blockColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.TaskID, b.TaskName, string(b.Priority), b.Category,
			formatTime(b.Start), formatTime(b.End), boolToInt(b.IsWeekend),
		)
		if err != nil {
			return fmt.Errorf("inserting schedule block for %s: %w", b.TaskName, err)
		}
	}

	for i := range snap.FixedBlocks {
		f := &snap.FixedBlocks[i]
		if f.ID == "" {
			f.ID = uuid.New().String()
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO fixed_blocks (id, label, category, start_at, end_at) VALUES (?, ?, ?, ?, ?)`,
			f.ID, f.Label, string(f.Category), formatTime(f.Start), formatTime(f.End),
		)
		if err != nil {
			return fmt.Errorf("inserting fixed block %s: %w", f.Label, err)
		}
	}

	generatedAt := formatTime(snap.GeneratedAt)
	for _, p := range snap.Placements {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO placements (task_id, task_name, strategy, chunk_size_min, break_min, buffer_min,
			chunk_count, chunks_scheduled, skipped, generated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.TaskID, p.TaskName, string(p.Strategy), p.ChunkSizeMin, p.BreakMin, p.BufferMin,
			p.ChunkCount, p.ChunksScheduled, boolToInt(p.Skipped), generatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting placement for %s: %w", p.TaskName, err)
		}
	}
	return nil
}

func (r *SQLiteScheduleRepo) ListBlocks(ctx context.Context) ([]domain.ScheduleBlock, error) {
	return r.queryBlocks(ctx, `SELECT `+blockColumns+` FROM schedule_blocks ORDER BY start_at, rowid`)
}

// ListBlocksBetween returns blocks starting in [from, to).
func (r *SQLiteScheduleRepo) ListBlocksBetween(ctx context.Context, from, to time.Time) ([]domain.ScheduleBlock, error) {
	return r.queryBlocks(ctx,
		`SELECT `+blockColumns+` FROM schedule_blocks WHERE start_at >= ? AND start_at < ? ORDER BY start_at, rowid`,
		formatTime(from), formatTime(to))
}

func (r *SQLiteScheduleRepo) queryBlocks(ctx context.Context, query string, args ...any) ([]domain.ScheduleBlock, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing schedule blocks: %w", err)
	}
	defer rows.Close()

	var blocks []domain.ScheduleBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule block row: %w", err)
		}
		blocks = append(blocks, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule blocks: %w", err)
	}
	return blocks, nil
}

func (r *SQLiteScheduleRepo) GetBlock(ctx context.Context, id string) (*domain.ScheduleBlock, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+blockColumns+` FROM schedule_blocks WHERE id = ?`, id)
	b, err := scanBlock(row)
	if err != nil {
		return nil, notFound("schedule block", err)
	}
	return b, nil
}

func (r *SQLiteScheduleRepo) UpdateBlock(ctx context.Context, b *domain.ScheduleBlock) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE schedule_blocks SET start_at = ?, end_at = ?, is_weekend = ? WHERE id = ?`,
		formatTime(b.Start), formatTime(b.End), boolToInt(b.IsWeekend), b.ID)
	if err != nil {
		return fmt.Errorf("updating schedule block: %w", err)
	}
	return requireAffected(res, "schedule block")
}

func (r *SQLiteScheduleRepo) DeleteForTask(ctx context.Context, taskID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_blocks WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("deleting schedule blocks: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM placements WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("deleting placement: %w", err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) ListFixed(ctx context.Context) ([]domain.FixedBlock, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, category, start_at, end_at FROM fixed_blocks ORDER BY start_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing fixed blocks: %w", err)
	}
	defer rows.Close()

	var blocks []domain.FixedBlock
	for rows.Next() {
		var f domain.FixedBlock
		var category, start, end string
		if err := rows.Scan(&f.ID, &f.Label, &category, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning fixed block row: %w", err)
		}
		f.Category = domain.FixedCategory(category)
		if f.Start, err = parseTime("start_at", start); err != nil {
			return nil, err
		}
		if f.End, err = parseTime("end_at", end); err != nil {
			return nil, err
		}
		blocks = append(blocks, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fixed blocks: %w", err)
	}
	return blocks, nil
}

func (r *SQLiteScheduleRepo) ListPlacements(ctx context.Context) ([]domain.TaskPlacement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, task_name, strategy, chunk_size_min, break_min, buffer_min,
		chunk_count, chunks_scheduled, skipped FROM placements ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing placements: %w", err)
	}
	defer rows.Close()

	var placements []domain.TaskPlacement
	for rows.Next() {
		var p domain.TaskPlacement
		var strategy string
		var skipped int
		if err := rows.Scan(&p.TaskID, &p.TaskName, &strategy, &p.ChunkSizeMin, &p.BreakMin, &p.BufferMin,
			&p.ChunkCount, &p.ChunksScheduled, &skipped); err != nil {
			return nil, fmt.Errorf("scanning placement row: %w", err)
		}
		p.Strategy = domain.StrategyKind(strategy)
		p.Skipped = intToBool(skipped)
		placements = append(placements, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating placements: %w", err)
	}
	return placements, nil
}

func scanBlock(row rowScanner) (*domain.ScheduleBlock, error) {
	var b domain.ScheduleBlock
	var priority, start, end string
	var weekend int
	if err := row.Scan(&b.ID, &b.TaskID, &b.TaskName, &priority, &b.Category, &start, &end, &weekend); err != nil {
		return nil, err
	}
	b.Priority = domain.Priority(priority)
	b.IsWeekend = intToBool(weekend)
	var err error
	if b.Start, err = parseTime("start_at", start); err != nil {
		return nil, err
	}
	if b.End, err = parseTime("end_at", end); err != nil {
		return nil, err
	}
	return &b, nil
}
