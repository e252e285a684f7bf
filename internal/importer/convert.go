package importer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

// Bundle holds the domain objects decoded from a state document.
type Bundle struct {
	Profile     *domain.Profile
	Tasks       []*domain.Task
	Goals       []*domain.Goal
	Schedule    []domain.ScheduleBlock
	FixedBlocks []domain.FixedBlock
}

// Convert transforms a migrated, validated State into domain objects.
// Call MigrateLegacy and ValidateState first; Convert assumes both ran.
// Block timestamps are converted into loc. The rankedTasks list is derived
// data and is not read back.
func Convert(state *State, loc *time.Location) (*Bundle, error) {
	now := time.Now().UTC()
	b := &Bundle{}

	if state.Profile != nil {
		p, err := convertProfile(state.Profile)
		if err != nil {
			return nil, err
		}
		p.UpdatedAt = now
		b.Profile = p
	}

	for i, t := range state.Tasks {
		priority, err := domain.ParsePriority(t.TaskPriority)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		task := &domain.Task{
			ID:               t.ID,
			Name:             strings.TrimSpace(t.TaskName),
			Priority:         priority,
			Category:         t.TaskCategory,
			Deadline:         t.TaskDeadline,
			DeadlineTime:     t.TaskDeadlineTime,
			DurationHours:    float64(t.TaskDurationHours),
			ComputerRequired: t.ComputerRequired,
			Completed:        t.Completed != nil && *t.Completed,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		task.Category = task.EffectiveCategory()
		task.DeadlineTime = task.EffectiveDeadlineTime()
		b.Tasks = append(b.Tasks, task)
	}

	for _, g := range state.Goals {
		b.Goals = append(b.Goals, &domain.Goal{
			ID:        g.ID,
			Name:      strings.TrimSpace(g.Name),
			Color:     string(g.Color),
			CreatedAt: now,
		})
	}

	for i, blk := range state.Schedule {
		start, end, err := parseInterval(blk, loc)
		if err != nil {
			return nil, fmt.Errorf("schedule[%d]: %w", i, err)
		}
		category := blk.Category
		if category == "" {
			category = domain.DefaultCategory
		}
		b.Schedule = append(b.Schedule, domain.ScheduleBlock{
			ID:        blk.ID,
			TaskID:    blk.TaskID,
			TaskName:  blk.TaskName,
			Priority:  domain.Priority(blk.Priority),
			Category:  category,
			Start:     start,
			End:       end,
			IsWeekend: blk.IsWeekend,
		})
	}

	for i, blk := range state.FixedBlocks {
		start, end, err := parseInterval(blk, loc)
		if err != nil {
			return nil, fmt.Errorf("fixedBlocks[%d]: %w", i, err)
		}
		b.FixedBlocks = append(b.FixedBlocks, domain.FixedBlock{
			ID:       blk.ID,
			Label:    blk.Label,
			Category: domain.FixedCategory(blk.Category),
			Start:    start,
			End:      end,
		})
	}

	return b, nil
}

func convertProfile(doc *ProfileDoc) (*domain.Profile, error) {
	p := domain.NewProfile()
	p.Name = doc.UserName
	p.AgeGroup = doc.UserAgeGroup
	p.SleepWeekdays = doc.SleepWeekdays
	p.SleepWeekends = doc.SleepWeekends
	p.SetBreakTimes(doc.BreakTimes)
	p.IsProcrastinator = strings.EqualFold(string(doc.IsProcrastinator), "yes")
	p.StudyMethod = doc.PreferredStudyMethod
	p.WeeklyPersonalHours = float64(doc.WeeklyPersonalTime)
	p.WeeklyReviewHours = float64(doc.WeeklyReviewHours)

	var err error
	if p.WeeklySchedule, err = decodeSchedule(doc.WeeklySchedule); err != nil {
		return nil, fmt.Errorf("profile.weekly_schedule: %w", err)
	}
	if p.WeekendSchedule, err = decodeSchedule(doc.WeekendSchedule); err != nil {
		return nil, fmt.Errorf("profile.weekend_schedule: %w", err)
	}
	if p.ProcrastinatorType, err = domain.ParseProcrastinatorType(string(doc.ProcrastinatorType)); err != nil {
		return nil, fmt.Errorf("profile.procrastinator_type: %w", err)
	}
	if p.TroubleFinishing, err = domain.ParseTroubleFinishing(string(doc.HasTroubleFinishing)); err != nil {
		return nil, fmt.Errorf("profile.has_trouble_finishing: %w", err)
	}
	if p.WorkStyle, err = domain.ParseWorkStyle(string(doc.PreferredWorkStyle)); err != nil {
		return nil, fmt.Errorf("profile.preferred_work_style: %w", err)
	}
	if p.ProductiveTime, err = domain.ParseProductiveTime(string(doc.MostProductiveTime)); err != nil {
		return nil, fmt.Errorf("profile.most_productive_time: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeSchedule(raw json.RawMessage) (map[string][]domain.Commitment, error) {
	out := make(map[string][]domain.Commitment)
	if len(raw) == 0 {
		return out, nil
	}
	var doc ScheduleDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for day, list := range doc {
		commitments := make([]domain.Commitment, 0, len(list))
		for _, c := range list {
			commitments = append(commitments, domain.NewCommitment(c.Name, c.Time, c.Description))
		}
		out[day] = commitments
	}
	return out, nil
}

func parseInterval(b BlockDoc, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, b.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, b.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing end: %w", err)
	}
	return start.In(loc), end.In(loc), nil
}

// FromDomain builds a state document from stored data. Work style is written
// as its questionnaire label so older readers keep working.
func FromDomain(
	profile *domain.Profile,
	tasks []*domain.Task,
	ranked []*domain.Task,
	schedule []domain.ScheduleBlock,
	fixed []domain.FixedBlock,
	goals []*domain.Goal,
) (*State, error) {
	state := &State{
		Tasks:       make([]TaskDoc, 0, len(tasks)),
		RankedTasks: make([]TaskDoc, 0, len(ranked)),
		Schedule:    make([]BlockDoc, 0, len(schedule)),
		FixedBlocks: make([]BlockDoc, 0, len(fixed)),
		Goals:       make([]GoalDoc, 0, len(goals)),
	}

	if profile != nil {
		doc, err := profileDoc(profile)
		if err != nil {
			return nil, err
		}
		state.Profile = doc
	}
	for _, t := range tasks {
		state.Tasks = append(state.Tasks, taskDoc(t))
	}
	for _, t := range ranked {
		state.RankedTasks = append(state.RankedTasks, taskDoc(t))
	}
	for _, b := range schedule {
		state.Schedule = append(state.Schedule, BlockDoc{
			Kind:      b.Kind(),
			ID:        b.ID,
			TaskID:    b.TaskID,
			TaskName:  b.TaskName,
			Priority:  string(b.Priority),
			Category:  b.Category,
			Start:     b.Start.Format(time.RFC3339),
			End:       b.End.Format(time.RFC3339),
			IsWeekend: b.IsWeekend,
		})
	}
	for _, f := range fixed {
		state.FixedBlocks = append(state.FixedBlocks, BlockDoc{
			Kind:     f.Kind(),
			ID:       f.ID,
			Label:    f.Label,
			Category: string(f.Category),
			Start:    f.Start.Format(time.RFC3339),
			End:      f.End.Format(time.RFC3339),
		})
	}
	for _, g := range goals {
		state.Goals = append(state.Goals, GoalDoc{ID: g.ID, Name: g.Name, Color: GoalColor(g.Color)})
	}
	return state, nil
}

func profileDoc(p *domain.Profile) (*ProfileDoc, error) {
	weekly, err := encodeSchedule(p.WeeklySchedule)
	if err != nil {
		return nil, fmt.Errorf("encoding weekly schedule: %w", err)
	}
	weekend, err := encodeSchedule(p.WeekendSchedule)
	if err != nil {
		return nil, fmt.Errorf("encoding weekend schedule: %w", err)
	}

	isProcrastinator := FlexString("no")
	if p.IsProcrastinator {
		isProcrastinator = "yes"
	}
	return &ProfileDoc{
		UserName:             p.Name,
		UserAgeGroup:         p.AgeGroup,
		WeeklySchedule:       weekly,
		WeekendSchedule:      weekend,
		SleepWeekdays:        p.SleepWeekdays,
		SleepWeekends:        p.SleepWeekends,
		BreakTimes:           p.BreakTimesText,
		IsProcrastinator:     isProcrastinator,
		ProcrastinatorType:   FlexString(p.ProcrastinatorType),
		HasTroubleFinishing:  FlexString(p.TroubleFinishing),
		PreferredWorkStyle:   FlexString(p.WorkStyle.Label()),
		MostProductiveTime:   FlexString(p.ProductiveTime),
		PreferredStudyMethod: p.StudyMethod,
		WeeklyPersonalTime:   FlexNumber(p.WeeklyPersonalHours),
		WeeklyReviewHours:    FlexNumber(p.WeeklyReviewHours),
	}, nil
}

func encodeSchedule(schedule map[string][]domain.Commitment) (json.RawMessage, error) {
	doc := make(ScheduleDoc, len(schedule))
	for day, list := range schedule {
		entries := make([]CommitmentDoc, 0, len(list))
		for _, c := range list {
			entries = append(entries, CommitmentDoc{Name: c.Name, Time: c.Time, Description: c.Description})
		}
		doc[day] = entries
	}
	return json.Marshal(doc)
}

func taskDoc(t *domain.Task) TaskDoc {
	completed := t.Completed
	return TaskDoc{
		ID:                t.ID,
		TaskName:          t.Name,
		TaskPriority:      string(t.Priority),
		TaskCategory:      t.EffectiveCategory(),
		TaskDeadline:      t.Deadline,
		TaskDeadlineTime:  t.EffectiveDeadlineTime(),
		TaskDurationHours: FlexNumber(t.DurationHours),
		ComputerRequired:  t.ComputerRequired,
		Completed:         &completed,
	}
}
