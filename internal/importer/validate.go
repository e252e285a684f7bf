package importer

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

var validFixedCategories = map[string]bool{
	string(domain.FixedRoutine): true,
	string(domain.FixedBreak):   true,
	string(domain.FixedWeekend): true,
}

// ValidateState checks a migrated state document before conversion.
// Returns a slice of all validation errors found.
func ValidateState(state *State) []error {
	var errs []error

	if state.Profile != nil {
		errs = append(errs, validateProfile(state.Profile)...)
	}

	taskIDs := make(map[string]bool)
	errs = append(errs, validateTasks(state.Tasks, taskIDs)...)
	errs = append(errs, validateGoals(state.Goals)...)
	errs = append(errs, validateBlocks(state.Schedule, state.FixedBlocks, taskIDs)...)

	return errs
}

func validateProfile(p *ProfileDoc) []error {
	var errs []error

	errs = append(errs, validateScheduleKeys("profile.weekly_schedule", p.WeeklySchedule, domain.Weekdays)...)
	errs = append(errs, validateScheduleKeys("profile.weekend_schedule", p.WeekendSchedule, domain.WeekendDays)...)

	switch strings.ToLower(string(p.IsProcrastinator)) {
	case "", "yes", "no":
	default:
		errs = append(errs, fmt.Errorf("profile.is_procrastinator: invalid value %q (expected yes or no)", p.IsProcrastinator))
	}
	if _, err := domain.ParseProcrastinatorType(string(p.ProcrastinatorType)); err != nil {
		errs = append(errs, fmt.Errorf("profile.procrastinator_type: %w", err))
	}
	if _, err := domain.ParseTroubleFinishing(string(p.HasTroubleFinishing)); err != nil {
		errs = append(errs, fmt.Errorf("profile.has_trouble_finishing: %w", err))
	}
	if _, err := domain.ParseWorkStyle(string(p.PreferredWorkStyle)); err != nil {
		errs = append(errs, fmt.Errorf("profile.preferred_work_style: %w", err))
	}
	if _, err := domain.ParseProductiveTime(string(p.MostProductiveTime)); err != nil {
		errs = append(errs, fmt.Errorf("profile.most_productive_time: %w", err))
	}
	if p.WeeklyPersonalTime < 0 {
		errs = append(errs, fmt.Errorf("profile.weekly_personal_time must not be negative"))
	}
	if p.WeeklyReviewHours < 0 {
		errs = append(errs, fmt.Errorf("profile.weekly_review_hours must not be negative"))
	}

	return errs
}

func validateScheduleKeys(field string, raw json.RawMessage, allowed []string) []error {
	if len(raw) == 0 {
		return nil
	}
	var schedule ScheduleDoc
	if err := json.Unmarshal(raw, &schedule); err != nil {
		return []error{fmt.Errorf("%s: %w (run MigrateLegacy first)", field, err)}
	}
	var errs []error
	for day := range schedule {
		if !slices.Contains(allowed, day) {
			errs = append(errs, fmt.Errorf("%s: unknown day %q (expected one of %s)", field, day, strings.Join(allowed, ", ")))
		}
	}
	slices.SortFunc(errs, func(a, b error) int { return strings.Compare(a.Error(), b.Error()) })
	return errs
}

func validateTasks(tasks []TaskDoc, ids map[string]bool) []error {
	var errs []error

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if t.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[t.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, t.ID))
		} else {
			ids[t.ID] = true
		}

		if strings.TrimSpace(t.TaskName) == "" {
			errs = append(errs, fmt.Errorf("%s.task_name is required", prefix))
		}
		if _, err := domain.ParsePriority(t.TaskPriority); err != nil {
			errs = append(errs, fmt.Errorf("%s.task_priority: %w", prefix, err))
		}
		if t.TaskDeadline == "" {
			errs = append(errs, fmt.Errorf("%s.task_deadline is required", prefix))
		} else if _, err := time.Parse(domain.DateLayout, t.TaskDeadline); err != nil {
			errs = append(errs, fmt.Errorf("%s.task_deadline: invalid date format %q (expected YYYY-MM-DD)", prefix, t.TaskDeadline))
		}
		if t.TaskDeadlineTime != "" {
			if _, ok := domain.ParseClock(t.TaskDeadlineTime); !ok {
				errs = append(errs, fmt.Errorf("%s.task_deadline_time: invalid time %q (expected HH:MM)", prefix, t.TaskDeadlineTime))
			}
		}
		if t.TaskDurationHours <= 0 {
			errs = append(errs, fmt.Errorf("%s.task_duration_hours must be positive", prefix))
		}
	}

	return errs
}

func validateGoals(goals []GoalDoc) []error {
	var errs []error
	names := make(map[string]bool)

	for i, g := range goals {
		prefix := fmt.Sprintf("goals[%d]", i)
		name := strings.ToLower(strings.TrimSpace(g.Name))
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
			continue
		}
		if names[name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate goal %q", prefix, g.Name))
		}
		names[name] = true
	}

	return errs
}

func validateBlocks(schedule, fixed []BlockDoc, taskIDs map[string]bool) []error {
	var errs []error

	for i, b := range schedule {
		prefix := fmt.Sprintf("schedule[%d]", i)
		if b.Kind != "" && b.Kind != "task" {
			errs = append(errs, fmt.Errorf("%s.kind: expected \"task\", got %q", prefix, b.Kind))
		}
		if b.TaskID == "" {
			errs = append(errs, fmt.Errorf("%s.taskId is required", prefix))
		} else if !taskIDs[b.TaskID] {
			errs = append(errs, fmt.Errorf("%s.taskId: task %q not found in tasks", prefix, b.TaskID))
		}
		errs = append(errs, validateInterval(prefix, b)...)
	}

	for i, b := range fixed {
		prefix := fmt.Sprintf("fixedBlocks[%d]", i)
		if b.Kind != "" && b.Kind != "fixed" {
			errs = append(errs, fmt.Errorf("%s.kind: expected \"fixed\", got %q", prefix, b.Kind))
		}
		if !validFixedCategories[b.Category] {
			errs = append(errs, fmt.Errorf("%s.category: invalid value %q", prefix, b.Category))
		}
		errs = append(errs, validateInterval(prefix, b)...)
	}

	return errs
}

func validateInterval(prefix string, b BlockDoc) []error {
	start, startErr := time.Parse(time.RFC3339, b.Start)
	end, endErr := time.Parse(time.RFC3339, b.End)

	var errs []error
	if startErr != nil {
		errs = append(errs, fmt.Errorf("%s.start: invalid timestamp %q", prefix, b.Start))
	}
	if endErr != nil {
		errs = append(errs, fmt.Errorf("%s.end: invalid timestamp %q", prefix, b.End))
	}
	if startErr == nil && endErr == nil && !end.After(start) {
		errs = append(errs, fmt.Errorf("%s: end %q must be after start %q", prefix, b.End, b.Start))
	}
	return errs
}
