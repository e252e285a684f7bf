package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

type agendaEntry struct {
	start, end time.Time
	line       string
}

// FormatAgenda renders task and fixed blocks grouped by day, each day in
// start order. Times are printed in the blocks' own location.
func FormatAgenda(blocks []domain.ScheduleBlock, fixed []domain.FixedBlock, goalColors map[string]string) string {
	days := make(map[string][]agendaEntry)
	var keys []string
	add := func(e agendaEntry) {
		key := e.start.Format(domain.DateLayout)
		if _, ok := days[key]; !ok {
			keys = append(keys, key)
		}
		days[key] = append(days[key], e)
	}

	for _, b := range blocks {
		add(agendaEntry{
			start: b.Start,
			end:   b.End,
			line: fmt.Sprintf("%s  %s  %s  %s",
				PriorityBadge(b.Priority),
				Bold(b.TaskName),
				CategoryStyle(b.Category, goalColors).Render(b.Category),
				Dim(ShortID(b.ID))),
		})
	}
	for _, f := range fixed {
		add(agendaEntry{
			start: f.Start,
			end:   f.End,
			line:  Dim(fmt.Sprintf("     %s (%s)", f.Label, f.Category)),
		})
	}

	if len(keys) == 0 {
		return Dim("Nothing scheduled.") + "\n"
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		entries := days[key]
		sort.SliceStable(entries, func(a, c int) bool { return entries[a].start.Before(entries[c].start) })
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(entries[0].start.Format("Monday, Jan 2")) + "\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "  %s-%s  %s\n", e.start.Format("15:04"), e.end.Format("15:04"), e.line)
		}
	}
	return b.String()
}

// FormatPlacementReport lists how each task was placed.
func FormatPlacementReport(placements []domain.TaskPlacement) string {
	headers := []string{"TASK", "STRATEGY", "CHUNK", "BREAK", "BUFFER", "SCHEDULED", "STATUS"}
	rows := make([][]string, 0, len(placements))
	for _, p := range placements {
		rows = append(rows, []string{
			Truncate(p.TaskName, 36),
			string(p.Strategy),
			fmt.Sprintf("%dm", p.ChunkSizeMin),
			fmt.Sprintf("%dm", p.BreakMin),
			fmt.Sprintf("%dm", p.BufferMin),
			fmt.Sprintf("%d/%d", p.ChunksScheduled, p.ChunkCount),
			placementStatus(p),
		})
	}
	return RenderTable(headers, rows)
}

func placementStatus(p domain.TaskPlacement) string {
	switch {
	case p.Skipped:
		return StyleRed.Render("skipped: no days before deadline")
	case p.Complete():
		return StyleGreen.Render("complete")
	default:
		return StyleYellow.Render(fmt.Sprintf("short by %d", p.Deficit()))
	}
}

// FormatGenerateSummary is the one-line outcome of a generation run.
func FormatGenerateSummary(blocks int, placements []domain.TaskPlacement) string {
	partial := 0
	for _, p := range placements {
		if !p.Complete() {
			partial++
		}
	}
	msg := fmt.Sprintf("Scheduled %d blocks for %d tasks.", blocks, len(placements))
	if partial > 0 {
		msg += " " + StyleYellow.Render(fmt.Sprintf("%d could not be fully placed.", partial))
	}
	return msg
}
