package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/google/uuid"
)

var legacyProcrastinatorTypes = map[string]domain.ProcrastinatorType{
	"Perfectionist":               domain.ProcrastinatorPerfectionist,
	"Deadline-driven":             domain.ProcrastinatorDeadlineDriven,
	"Works better under pressure": domain.ProcrastinatorDeadlineDriven,
	"Dreamer":                     domain.ProcrastinatorLackOfMotivation,
	"Fear-based":                  domain.ProcrastinatorOverwhelmed,
	"Decision-fatigue":            domain.ProcrastinatorOverwhelmed,
	"Distraction":                 domain.ProcrastinatorDistraction,
	"Lack-of-motivation":          domain.ProcrastinatorLackOfMotivation,
	"Avoidant":                    domain.ProcrastinatorAvoidant,
	"Overwhelmed":                 domain.ProcrastinatorOverwhelmed,
}

var (
	weekendLineSeparator = regexp.MustCompile(`\n|;`)
	weekendDayPatterns   = []struct {
		day     string
		pattern *regexp.Regexp
	}{
		{"Saturday", regexp.MustCompile(`(?i)^(saturday|sat)\b`)},
		{"Sunday", regexp.MustCompile(`(?i)^(sunday|sun)\b`)},
	}
	weekendRangePattern = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})`)
)

// MigrateLegacy rewrites fields written by older versions into the current
// form, in place. It returns one note per change so callers can report what
// was touched.
func MigrateLegacy(state *State) ([]string, error) {
	var notes []string

	if p := state.Profile; p != nil {
		weekly, changed, err := migrateSchedule(p.WeeklySchedule, domain.DefaultCommitmentLabel, nil)
		if err != nil {
			return nil, fmt.Errorf("profile.weekly_schedule: %w", err)
		}
		if changed {
			notes = append(notes, "profile.weekly_schedule: converted legacy text entries")
		}
		p.WeeklySchedule = weekly

		weekend, changed, err := migrateSchedule(p.WeekendSchedule, "", ParseWeekendText)
		if err != nil {
			return nil, fmt.Errorf("profile.weekend_schedule: %w", err)
		}
		if changed {
			notes = append(notes, "profile.weekend_schedule: parsed legacy text")
		}
		p.WeekendSchedule = weekend

		if old := string(p.ProcrastinatorType); old != "" {
			updated := MigrateProcrastinatorType(old)
			if string(updated) != old {
				p.ProcrastinatorType = FlexString(updated)
				notes = append(notes, fmt.Sprintf("profile.procrastinator_type: %q -> %q", old, updated))
			}
		}

		if p.WorksBest != nil {
			p.WorksBest = nil
			notes = append(notes, "profile.works_best: removed")
		}
	}

	for i := range state.Tasks {
		t := &state.Tasks[i]
		if t.ID == "" {
			t.ID = uuid.New().String()
			notes = append(notes, fmt.Sprintf("tasks[%d]: generated id", i))
		}
		if t.Completed == nil {
			done := false
			t.Completed = &done
			notes = append(notes, fmt.Sprintf("tasks[%d]: completed defaulted to false", i))
		}
	}
	for i := range state.Goals {
		if state.Goals[i].ID == "" {
			state.Goals[i].ID = uuid.New().String()
			notes = append(notes, fmt.Sprintf("goals[%d]: generated id", i))
		}
	}

	return notes, nil
}

// MigrateProcrastinatorType maps questionnaire labels from older versions to
// the current type names. Unknown labels are lower-cased.
func MigrateProcrastinatorType(label string) domain.ProcrastinatorType {
	if t, ok := legacyProcrastinatorTypes[label]; ok {
		return t
	}
	return domain.ProcrastinatorType(strings.ToLower(label))
}

// migrateSchedule normalizes a schedule into the day -> []CommitmentDoc form.
// A day whose value is a string becomes a single commitment named
// stringLabel. A schedule that is itself a string is handed to parseText,
// or rejected when parseText is nil.
func migrateSchedule(raw json.RawMessage, stringLabel string, parseText func(string) ScheduleDoc) (json.RawMessage, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage(`{}`), false, nil
	}

	if trimmed[0] == '"' {
		if parseText == nil {
			return nil, false, fmt.Errorf("expected an object keyed by day")
		}
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil, false, err
		}
		out, err := json.Marshal(parseText(text))
		return out, true, err
	}

	var days map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &days); err != nil {
		return nil, false, fmt.Errorf("expected an object keyed by day: %w", err)
	}

	changed := false
	schedule := make(ScheduleDoc, len(days))
	for day, value := range days {
		v := bytes.TrimSpace(value)
		switch {
		case bytes.Equal(v, []byte("null")):
			schedule[day] = []CommitmentDoc{}
			changed = true
		case len(v) > 0 && v[0] == '"':
			var text string
			if err := json.Unmarshal(v, &text); err != nil {
				return nil, false, fmt.Errorf("%s: %w", day, err)
			}
			schedule[day] = []CommitmentDoc{}
			if strings.TrimSpace(text) != "" {
				schedule[day] = append(schedule[day], CommitmentDoc{Name: stringLabel, Time: text})
			}
			changed = true
		default:
			var list []CommitmentDoc
			if err := json.Unmarshal(v, &list); err != nil {
				return nil, false, fmt.Errorf("%s: %w", day, err)
			}
			if list == nil {
				list = []CommitmentDoc{}
			}
			schedule[day] = list
		}
	}

	out, err := json.Marshal(schedule)
	return out, changed, err
}

// ParseWeekendText reads free text such as "Saturday 10:00-12:00 soccer;
// Sun 09:00-10:00" into Saturday and Sunday commitments. Lines are split on
// newlines and semicolons; a line needs a leading day name and a time range,
// and whatever text remains becomes the commitment name.
func ParseWeekendText(text string) ScheduleDoc {
	schedule := ScheduleDoc{"Saturday": {}, "Sunday": {}}
	for _, raw := range weekendLineSeparator.Split(text, -1) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		day := ""
		rest := line
		for _, dp := range weekendDayPatterns {
			if loc := dp.pattern.FindStringIndex(line); loc != nil {
				day = dp.day
				rest = strings.TrimSpace(line[loc[1]:])
				break
			}
		}
		if day == "" {
			continue
		}

		m := weekendRangePattern.FindStringSubmatchIndex(rest)
		if m == nil {
			continue
		}
		timeText := rest[m[2]:m[3]] + "-" + rest[m[4]:m[5]]
		label := strings.TrimSpace(rest[:m[0]] + rest[m[1]:])
		schedule[day] = append(schedule[day], CommitmentDoc{Name: label, Time: timeText})
	}
	return schedule
}
