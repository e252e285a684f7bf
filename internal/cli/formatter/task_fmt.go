package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/planwise/internal/domain"
)

// ShortID is the first eight characters of an ID, enough for the task
// resolver's prefix match.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatHours prints a duration in hours without trailing zeros.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// FormatTaskList renders tasks in the given order. goalColors maps a
// category slug to its goal color.
func FormatTaskList(tasks []*domain.Task, goalColors map[string]string) string {
	headers := []string{"ID", "TASK", "PRIORITY", "CATEGORY", "DUE", "HOURS", ""}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskRow(t, goalColors))
	}
	return RenderTable(headers, rows)
}

// FormatRankedTasks numbers tasks in placement order.
func FormatRankedTasks(tasks []*domain.Task, goalColors map[string]string) string {
	headers := []string{"#", "ID", "TASK", "PRIORITY", "CATEGORY", "DUE", "HOURS", ""}
	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, append([]string{strconv.Itoa(i + 1)}, taskRow(t, goalColors)...))
	}
	return RenderTable(headers, rows)
}

func taskRow(t *domain.Task, goalColors map[string]string) []string {
	var flags []string
	if t.ComputerRequired {
		flags = append(flags, "computer")
	}
	name := Truncate(t.Name, 40)
	if t.Completed {
		flags = append(flags, "done")
		name = StyleDim.Render(name)
	}
	return []string{
		Dim(ShortID(t.ID)),
		name,
		PriorityBadge(t.Priority),
		CategoryStyle(t.EffectiveCategory(), goalColors).Render(t.EffectiveCategory()),
		t.Deadline + " " + t.EffectiveDeadlineTime(),
		FormatHours(t.DurationHours),
		Dim(strings.Join(flags, ",")),
	}
}

// FormatTask renders one task with every field.
func FormatTask(t *domain.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(t.Name), Dim("("+t.ID+")"))
	fmt.Fprintf(&b, "  Priority:  %s\n", PriorityStyle(t.Priority).Render(string(t.Priority)))
	fmt.Fprintf(&b, "  Category:  %s\n", t.EffectiveCategory())
	fmt.Fprintf(&b, "  Deadline:  %s %s\n", t.Deadline, t.EffectiveDeadlineTime())
	fmt.Fprintf(&b, "  Duration:  %s\n", FormatHours(t.DurationHours))
	if t.ComputerRequired {
		b.WriteString("  Computer required\n")
	}
	if t.Completed {
		b.WriteString("  " + StyleGreen.Render("Completed") + "\n")
	}
	return b.String()
}

// FormatGoalList renders goals with a color swatch and their category slug.
func FormatGoalList(goals []*domain.Goal) string {
	headers := []string{"", "GOAL", "CATEGORY", "ID"}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			CategoryStyle(g.Slug(), map[string]string{g.Slug(): g.Color}).Render("■"),
			g.Name,
			g.Slug(),
			Dim(ShortID(g.ID)),
		})
	}
	return RenderTable(headers, rows)
}

// GoalColors maps each goal's category slug to its color.
func GoalColors(goals []*domain.Goal) map[string]string {
	out := make(map[string]string, len(goals))
	for _, g := range goals {
		out[g.Slug()] = g.Color
	}
	return out
}
