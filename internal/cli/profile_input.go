package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/importer"
)

var clockRange = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})`)

// parseCommitment splits "Lecture 09:00-10:30, 14:00-15:00" into a name and
// the time ranges it mentions.
func parseCommitment(text string) (domain.Commitment, error) {
	matches := clockRange.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return domain.Commitment{}, fmt.Errorf("no HH:MM-HH:MM range in %q", text)
	}
	ranges := make([]string, 0, len(matches))
	for _, m := range matches {
		ranges = append(ranges, m[1]+"-"+m[2])
	}
	name := clockRange.ReplaceAllString(text, " ")
	name = strings.Trim(strings.Join(strings.Fields(name), " "), " ,;")
	c := domain.NewCommitment(name, strings.Join(ranges, ";"), "")
	if len(c.Ranges) == 0 {
		return domain.Commitment{}, fmt.Errorf("no valid time range in %q", text)
	}
	return c, nil
}

// dayKey maps "monday", "Mon" or "mon." onto the matching key in days.
func dayKey(input string, days []string) (string, bool) {
	in := strings.ToLower(strings.Trim(strings.TrimSpace(input), "."))
	if len(in) < 3 {
		return "", false
	}
	for _, d := range days {
		if strings.HasPrefix(fullDayName(d), in) {
			return d, true
		}
	}
	return "", false
}

var dayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func fullDayName(key string) string {
	k := strings.ToLower(key)
	for _, name := range dayNames {
		if strings.HasPrefix(name, k) {
			return name
		}
	}
	return k
}

// parseWeekdayFlag reads one --weekday value of the form "Mon=Lecture 09:00-12:00".
func parseWeekdayFlag(v string) (string, domain.Commitment, error) {
	dayText, rest, ok := strings.Cut(v, "=")
	if !ok {
		return "", domain.Commitment{}, fmt.Errorf("weekday %q: want DAY=NAME HH:MM-HH:MM", v)
	}
	day, ok := dayKey(dayText, domain.Weekdays)
	if !ok {
		return "", domain.Commitment{}, fmt.Errorf("weekday %q: day must be one of %s", v, strings.Join(domain.Weekdays, ", "))
	}
	c, err := parseCommitment(rest)
	if err != nil {
		return "", domain.Commitment{}, fmt.Errorf("weekday %q: %w", v, err)
	}
	return day, c, nil
}

// parseWeekdayLines reads one commitment per line, each starting with its
// day: "Mon Lecture 09:00-12:00". Blank lines are skipped.
func parseWeekdayLines(text string) (map[string][]domain.Commitment, error) {
	out := make(map[string][]domain.Commitment)
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		first, rest, _ := strings.Cut(line, " ")
		day, ok := dayKey(first, domain.Weekdays)
		if !ok {
			return nil, fmt.Errorf("line %d: %q does not start with a weekday", i+1, line)
		}
		c, err := parseCommitment(rest)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out[day] = append(out[day], c)
	}
	return out, nil
}

// parseWeekendText accepts the same free text older versions stored, such
// as "Saturday 10:00-12:00 soccer; Sun 09:00-10:00".
func parseWeekendText(text string) map[string][]domain.Commitment {
	out := make(map[string][]domain.Commitment)
	for day, list := range importer.ParseWeekendText(text) {
		for _, c := range list {
			out[day] = append(out[day], domain.NewCommitment(c.Name, c.Time, c.Description))
		}
	}
	return out
}

// formatWeekdayLines is the inverse of parseWeekdayLines.
func formatWeekdayLines(schedule map[string][]domain.Commitment) string {
	var lines []string
	for _, day := range domain.Weekdays {
		for _, c := range schedule[day] {
			lines = append(lines, strings.TrimSpace(day+" "+c.Name+" "+c.Time))
		}
	}
	return strings.Join(lines, "\n")
}

func formatWeekendText(schedule map[string][]domain.Commitment) string {
	var lines []string
	for _, day := range domain.WeekendDays {
		for _, c := range schedule[day] {
			lines = append(lines, strings.TrimSpace(day+" "+c.Time+" "+c.Name))
		}
	}
	return strings.Join(lines, "\n")
}

func parseHours(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || h < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number of hours, got %q", field, s)
	}
	return h, nil
}
