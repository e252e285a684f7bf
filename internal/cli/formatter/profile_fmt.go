package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planwise/internal/domain"
)

func orUnset(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("not set")
	}
	return s
}

// FormatProfile renders the questionnaire answers, commitments included.
func FormatProfile(p *domain.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name:             %s\n", orUnset(p.Name))
	fmt.Fprintf(&b, "Age group:        %s\n", orUnset(p.AgeGroup))
	fmt.Fprintf(&b, "Sleep:            weekdays %s, weekends %s\n", orUnset(p.SleepWeekdays), orUnset(p.SleepWeekends))
	fmt.Fprintf(&b, "Breaks:           %s\n", orUnset(p.BreakTimesText))

	procrastinator := "no"
	if p.IsProcrastinator {
		procrastinator = "yes"
		if p.ProcrastinatorType != domain.ProcrastinatorUnset {
			procrastinator += " (" + string(p.ProcrastinatorType) + ")"
		}
	}
	fmt.Fprintf(&b, "Procrastinator:   %s\n", procrastinator)
	fmt.Fprintf(&b, "Hard to finish:   %s\n", orUnset(string(p.TroubleFinishing)))
	fmt.Fprintf(&b, "Work style:       %s\n", orUnset(p.WorkStyle.Label()))
	fmt.Fprintf(&b, "Productive time:  %s\n", orUnset(string(p.ProductiveTime)))
	fmt.Fprintf(&b, "Study method:     %s\n", orUnset(p.StudyMethod))
	fmt.Fprintf(&b, "Personal time:    %s per week\n", FormatHours(p.WeeklyPersonalHours))
	fmt.Fprintf(&b, "Review time:      %s per week\n", FormatHours(p.WeeklyReviewHours))

	b.WriteString("\n" + Header("Weekly commitments") + "\n")
	b.WriteString(commitmentLines(p.WeeklySchedule, domain.Weekdays, domain.DefaultCommitmentLabel))
	b.WriteString("\n" + Header("Weekend activities") + "\n")
	b.WriteString(commitmentLines(p.WeekendSchedule, domain.WeekendDays, domain.DefaultWeekendLabel))

	return RenderBox("Profile", strings.TrimRight(b.String(), "\n"))
}

func commitmentLines(schedule map[string][]domain.Commitment, days []string, fallback string) string {
	var b strings.Builder
	for _, day := range days {
		for _, c := range schedule[day] {
			line := fmt.Sprintf("  %-9s %-13s %s", day, c.Time, c.Label(fallback))
			if c.Description != "" {
				line += " " + Dim(c.Description)
			}
			if len(c.Ranges) == 0 {
				line += " " + StyleYellow.Render("(no valid time range)")
			}
			b.WriteString(line + "\n")
		}
	}
	if b.Len() == 0 {
		return "  " + Dim("none") + "\n"
	}
	return b.String()
}
