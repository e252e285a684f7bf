package export

import (
	"bytes"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/planwise/internal/domain"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 6, day, hour, minute, 0, 0, time.UTC)
}

var (
	testBlocks = []domain.ScheduleBlock{
		{ID: "b1", TaskID: "t1", TaskName: "Essay", Priority: domain.PriorityUrgentImportant, Category: "study", Start: at(16, 9, 0), End: at(16, 9, 30)},
		{ID: "b2", TaskID: "t1", TaskName: "Essay", Priority: domain.PriorityUrgentImportant, Category: "study", Start: at(21, 10, 0), End: at(21, 10, 45), IsWeekend: true},
	}
	testFixed = []domain.FixedBlock{
		{ID: "f1", Label: "Lecture", Category: domain.FixedRoutine, Start: at(16, 10, 0), End: at(16, 12, 0)},
	}
	testPlacements = []domain.TaskPlacement{
		{TaskID: "t1", TaskName: "Essay", Strategy: domain.StrategyBalanced, ChunkSizeMin: 30, ChunkCount: 2, ChunksScheduled: 2},
		{TaskID: "t2", TaskName: "Lab report", Strategy: domain.StrategyBalanced, ChunkSizeMin: 30, ChunkCount: 4, ChunksScheduled: 1},
		{TaskID: "t3", TaskName: "Late", Strategy: domain.StrategyBalanced, ChunkCount: 2, Skipped: true},
	}
)

func TestWriteICS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, testBlocks, testFixed, at(15, 8, 0)))

	cal, err := ics.ParseCalendar(&buf)
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 3)

	byID := make(map[string]*ics.VEvent)
	for _, ev := range events {
		byID[ev.Id()] = ev
	}
	essay := byID["task-b1@planwise"]
	require.NotNil(t, essay)
	assert.Equal(t, "Essay", essay.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "20250616T090000Z", essay.GetProperty(ics.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20250616T093000Z", essay.GetProperty(ics.ComponentPropertyDtEnd).Value)

	lecture := byID["fixed-f1@planwise"]
	require.NotNil(t, lecture)
	assert.Equal(t, "Lecture", lecture.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "routine", lecture.GetProperty(ics.ComponentPropertyCategories).Value)
}

func TestWriteICS_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, nil, nil, at(15, 8, 0)))
	assert.Contains(t, buf.String(), "BEGIN:VCALENDAR")
	assert.NotContains(t, buf.String(), "BEGIN:VEVENT")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testBlocks, testPlacements))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{scheduleSheet, placementsSheet}, f.GetSheetList())

	rows, err := f.GetRows(scheduleSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, []string{"2025-06-16", "Mon", "09:00", "09:30", "30", "Essay", "Urgent & Important", "study", "no"}, rows[1])
	assert.Equal(t, "Sat", rows[2][1])
	assert.Equal(t, "45", rows[2][4])
	assert.Equal(t, "yes", rows[2][8])

	rows, err = f.GetRows(placementsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "complete", rows[1][7])
	assert.Equal(t, "short by 3", rows[2][7])
	assert.Equal(t, "skipped", rows[3][7])
}
