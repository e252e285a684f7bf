package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/planwise/internal/domain"
)

const (
	scheduleSheet   = "Schedule"
	placementsSheet = "Placements"
)

var (
	scheduleHeader   = []any{"Date", "Day", "Start", "End", "Minutes", "Task", "Priority", "Category", "Weekend"}
	placementsHeader = []any{"Task", "Strategy", "Chunk (min)", "Break (min)", "Buffer (min)", "Chunks", "Scheduled", "Status"}
)

// WriteXLSX writes a workbook with the task blocks on a "Schedule" sheet and
// the placement report on a "Placements" sheet.
func WriteXLSX(w io.Writer, blocks []domain.ScheduleBlock, placements []domain.TaskPlacement) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	idx, err := f.NewSheet(scheduleSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if _, err := f.NewSheet(placementsSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	rows := [][]any{scheduleHeader}
	for _, b := range blocks {
		rows = append(rows, []any{
			b.Start.Format(domain.DateLayout),
			b.Start.Format("Mon"),
			b.Start.Format("15:04"),
			b.End.Format("15:04"),
			int(b.Duration().Minutes()),
			b.TaskName,
			string(b.Priority),
			b.Category,
			yesNo(b.IsWeekend),
		})
	}
	if err := writeRows(f, scheduleSheet, rows, headerStyle); err != nil {
		return err
	}

	rows = [][]any{placementsHeader}
	for _, p := range placements {
		rows = append(rows, []any{
			p.TaskName,
			string(p.Strategy),
			p.ChunkSizeMin,
			p.BreakMin,
			p.BufferMin,
			p.ChunkCount,
			p.ChunksScheduled,
			placementStatus(p),
		})
	}
	if err := writeRows(f, placementsSheet, rows, headerStyle); err != nil {
		return err
	}

	f.SetColWidth(scheduleSheet, "A", "A", 12)
	f.SetColWidth(scheduleSheet, "F", "F", 32)
	f.SetColWidth(scheduleSheet, "G", "G", 26)
	f.SetColWidth(placementsSheet, "A", "A", 32)
	f.SetColWidth(placementsSheet, "B", "B", 16)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	last, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func placementStatus(p domain.TaskPlacement) string {
	switch {
	case p.Skipped:
		return "skipped"
	case p.Complete():
		return "complete"
	default:
		return fmt.Sprintf("short by %d", p.Deficit())
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
