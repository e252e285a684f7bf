package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommitment(t *testing.T) {
	tests := []struct {
		in         string
		wantName   string
		wantTime   string
		wantRanges int
		wantErr    bool
	}{
		{in: "Lecture 09:00-12:00", wantName: "Lecture", wantTime: "09:00-12:00", wantRanges: 1},
		{in: "Lab 13:00 - 15:00, 16:00-17:00", wantName: "Lab", wantTime: "13:00-15:00;16:00-17:00", wantRanges: 2},
		{in: "09:00-10:00", wantName: "", wantTime: "09:00-10:00", wantRanges: 1},
		{in: "Lecture", wantErr: true},
		{in: "Night 25:00-26:00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := parseCommitment(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name)
			assert.Equal(t, tt.wantTime, c.Time)
			assert.Len(t, c.Ranges, tt.wantRanges)
		})
	}
}

func TestDayKey(t *testing.T) {
	tests := []struct {
		in   string
		days []string
		want string
		ok   bool
	}{
		{"Mon", domain.Weekdays, "Mon", true},
		{"monday", domain.Weekdays, "Mon", true},
		{"THU.", domain.Weekdays, "Thu", true},
		{"wednes", domain.Weekdays, "Wed", true},
		{"mo", domain.Weekdays, "", false},
		{"sat", domain.Weekdays, "", false},
		{"sat", domain.WeekendDays, "Saturday", true},
		{"Sunday", domain.WeekendDays, "Sunday", true},
		{"tuesdays", domain.Weekdays, "", false},
	}
	for _, tt := range tests {
		got, ok := dayKey(tt.in, tt.days)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseWeekdayLines(t *testing.T) {
	got, err := parseWeekdayLines("Mon Lecture 09:00-12:00\n\n  tuesday Gym 18:00-19:00\nMon Lab 14:00-16:00\n")
	require.NoError(t, err)
	require.Len(t, got["Mon"], 2)
	assert.Equal(t, "Lecture", got["Mon"][0].Name)
	assert.Equal(t, "Lab", got["Mon"][1].Name)
	require.Len(t, got["Tue"], 1)
	assert.Equal(t, "Gym", got["Tue"][0].Name)

	_, err = parseWeekdayLines("Lecture 09:00-12:00")
	assert.ErrorContains(t, err, "line 1")

	_, err = parseWeekdayLines("Mon Lecture 09:00-12:00\nFri Lecture")
	assert.ErrorContains(t, err, "line 2")

	empty, err := parseWeekdayLines("  \n")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProfileAnswers_RoundTrip(t *testing.T) {
	p := domain.NewProfile()
	p.Name = "Ada"
	p.WeeklySchedule["Mon"] = []domain.Commitment{domain.NewCommitment("Lecture", "09:00-12:00", "")}
	p.WeeklySchedule["Wed"] = []domain.Commitment{domain.NewCommitment("Lab", "13:00-15:00;16:00-17:00", "")}
	p.WeekendSchedule["Saturday"] = []domain.Commitment{domain.NewCommitment("soccer", "10:00-12:00", "")}
	p.SetBreakTimes("12:00-12:30")
	p.IsProcrastinator = true
	p.ProcrastinatorType = domain.ProcrastinatorAvoidant
	p.WorkStyle = domain.WorkStyleMixed
	p.ProductiveTime = domain.ProductiveEvening
	p.WeeklyPersonalHours = 6.5

	a := newProfileAnswers(p)
	assert.Equal(t, "Mon Lecture 09:00-12:00\nWed Lab 13:00-15:00;16:00-17:00", a.Weekdays)
	assert.Equal(t, "Saturday 10:00-12:00 soccer", a.Weekend)
	assert.Equal(t, "6.5", a.PersonalHours)

	got := domain.NewProfile()
	require.NoError(t, a.apply(got))
	assert.Equal(t, "Ada", got.Name)
	require.Len(t, got.WeeklySchedule["Wed"], 1)
	assert.Equal(t, "Lab", got.WeeklySchedule["Wed"][0].Name)
	assert.Len(t, got.WeeklySchedule["Wed"][0].Ranges, 2)
	require.Len(t, got.WeekendSchedule["Saturday"], 1)
	assert.Equal(t, "soccer", got.WeekendSchedule["Saturday"][0].Name)
	assert.Equal(t, "12:00-12:30", got.BreakTimesText)
	assert.Equal(t, domain.ProcrastinatorAvoidant, got.ProcrastinatorType)
	assert.Equal(t, domain.WorkStyleMixed, got.WorkStyle)
	assert.Equal(t, domain.ProductiveEvening, got.ProductiveTime)
	assert.Equal(t, 6.5, got.WeeklyPersonalHours)
}

func TestProfileAnswers_ApplyRejectsBadInput(t *testing.T) {
	a := newProfileAnswers(domain.NewProfile())
	a.PersonalHours = "lots"
	assert.ErrorContains(t, a.apply(domain.NewProfile()), "personal time")

	a = newProfileAnswers(domain.NewProfile())
	a.Weekdays = "Someday Lecture 09:00-10:00"
	assert.ErrorContains(t, a.apply(domain.NewProfile()), "weekday commitments")
}

func TestProfileAnswers_TypeClearedWhenNotProcrastinator(t *testing.T) {
	a := newProfileAnswers(domain.NewProfile())
	a.ProcrastinatorType = string(domain.ProcrastinatorPerfectionist)

	p := domain.NewProfile()
	require.NoError(t, a.apply(p))
	assert.False(t, p.IsProcrastinator)
	assert.Equal(t, domain.ProcrastinatorUnset, p.ProcrastinatorType)
}

func TestTaskAnswers(t *testing.T) {
	now := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

	a := newTaskAnswers(&domain.Task{}, now)
	assert.Equal(t, string(domain.PriorityImportantNotUrgent), a.Priority)
	assert.Equal(t, domain.DefaultCategory, a.Category)
	assert.Equal(t, "2025-06-23", a.Deadline)
	assert.Equal(t, domain.DefaultDeadlineTime, a.DeadlineTime)
	assert.Empty(t, a.Hours)

	a.Name = "Essay"
	a.Hours = " 1.5 "
	a.ComputerRequired = true
	task := &domain.Task{ID: "keep-me"}
	require.NoError(t, a.apply(task))
	assert.Equal(t, "keep-me", task.ID)
	assert.Equal(t, "Essay", task.Name)
	assert.Equal(t, 1.5, task.DurationHours)
	assert.True(t, task.ComputerRequired)
	require.NoError(t, task.Validate())

	a.Hours = "two"
	assert.Error(t, a.apply(task))
}

func TestFormValidators(t *testing.T) {
	assert.NoError(t, requireText("name")("Essay"))
	assert.EqualError(t, requireText("name")("  "), "name is required")
	assert.NoError(t, validateDate("2025-06-19"))
	assert.Error(t, validateDate("19.06.2025"))
	assert.NoError(t, validateClock("23:59"))
	assert.Error(t, validateClock("7pm"))
	assert.NoError(t, validatePositiveHours("0.5"))
	assert.Error(t, validatePositiveHours("0"))
	assert.Error(t, validatePositiveHours("x"))
}
