package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/planwise/internal/cli/formatter"
	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// planwiseTheme is huh's base theme recolored with the formatter palette.
func planwiseTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// profileAnswers is the wizard's raw input.
type profileAnswers struct {
	Name, AgeGroup               string
	Weekdays, Weekend            string
	SleepWeekdays, SleepWeekends string
	Breaks                       string
	Procrastinator               bool
	ProcrastinatorType           string
	TroubleFinishing             string
	WorkStyle, ProductiveTime    string
	StudyMethod                  string
	PersonalHours, ReviewHours   string
}

func newProfileAnswers(p *domain.Profile) *profileAnswers {
	return &profileAnswers{
		Name:               p.Name,
		AgeGroup:           p.AgeGroup,
		Weekdays:           formatWeekdayLines(p.WeeklySchedule),
		Weekend:            formatWeekendText(p.WeekendSchedule),
		SleepWeekdays:      p.SleepWeekdays,
		SleepWeekends:      p.SleepWeekends,
		Breaks:             p.BreakTimesText,
		Procrastinator:     p.IsProcrastinator,
		ProcrastinatorType: string(p.ProcrastinatorType),
		TroubleFinishing:   string(p.TroubleFinishing),
		WorkStyle:          string(p.WorkStyle),
		ProductiveTime:     string(p.ProductiveTime),
		StudyMethod:        p.StudyMethod,
		PersonalHours:      strconv.FormatFloat(p.WeeklyPersonalHours, 'f', -1, 64),
		ReviewHours:        strconv.FormatFloat(p.WeeklyReviewHours, 'f', -1, 64),
	}
}

// apply copies validated answers onto p.
func (a *profileAnswers) apply(p *domain.Profile) error {
	weekly, err := parseWeekdayLines(a.Weekdays)
	if err != nil {
		return fmt.Errorf("weekday commitments: %w", err)
	}
	personal, err := parseHours("personal time", a.PersonalHours)
	if err != nil {
		return err
	}
	review, err := parseHours("review time", a.ReviewHours)
	if err != nil {
		return err
	}

	p.Name = strings.TrimSpace(a.Name)
	p.AgeGroup = strings.TrimSpace(a.AgeGroup)
	p.WeeklySchedule = weekly
	p.WeekendSchedule = parseWeekendText(a.Weekend)
	p.SleepWeekdays = a.SleepWeekdays
	p.SleepWeekends = a.SleepWeekends
	p.SetBreakTimes(a.Breaks)
	p.IsProcrastinator = a.Procrastinator
	p.ProcrastinatorType = domain.ProcrastinatorUnset
	if a.Procrastinator {
		p.ProcrastinatorType = domain.ProcrastinatorType(a.ProcrastinatorType)
	}
	p.TroubleFinishing = domain.TroubleFinishing(a.TroubleFinishing)
	p.WorkStyle = domain.WorkStyle(a.WorkStyle)
	p.ProductiveTime = domain.ProductiveTime(a.ProductiveTime)
	p.StudyMethod = strings.TrimSpace(a.StudyMethod)
	p.WeeklyPersonalHours = personal
	p.WeeklyReviewHours = review
	return nil
}

func profileForm(a *profileAnswers) *huh.Form {
	procrastinatorOptions := []huh.Option[string]{huh.NewOption("Not sure", "")}
	for _, t := range domain.ProcrastinatorTypes {
		procrastinatorOptions = append(procrastinatorOptions, huh.NewOption(string(t), string(t)))
	}
	workStyleOptions := []huh.Option[string]{
		huh.NewOption("No preference", ""),
		huh.NewOption(domain.WorkStyleShortBursts.Label(), string(domain.WorkStyleShortBursts)),
		huh.NewOption(domain.WorkStyleLongSessions.Label(), string(domain.WorkStyleLongSessions)),
		huh.NewOption(domain.WorkStyleMixed.Label(), string(domain.WorkStyleMixed)),
	}
	productiveOptions := []huh.Option[string]{huh.NewOption("No preference", "")}
	for _, pt := range domain.ProductiveTimes {
		productiveOptions = append(productiveOptions, huh.NewOption(string(pt), string(pt)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Your name").Value(&a.Name),
			huh.NewInput().Title("Age group").Placeholder("18-24").Value(&a.AgeGroup),
		).Title("About you"),
		huh.NewGroup(
			huh.NewText().
				Title("Weekday commitments").
				Description("One per line: DAY NAME HH:MM-HH:MM, e.g. 'Mon Lecture 09:00-12:00'").
				Lines(6).
				Value(&a.Weekdays).
				Validate(func(s string) error { _, err := parseWeekdayLines(s); return err }),
			huh.NewText().
				Title("Weekend activities").
				Description("e.g. 'Saturday 10:00-12:00 soccer'").
				Lines(3).
				Value(&a.Weekend),
			huh.NewInput().Title("Daily breaks").Placeholder("12:00-12:30; 18:00-19:00").Value(&a.Breaks),
			huh.NewInput().Title("Weekday sleep").Placeholder("23:00-07:00").Value(&a.SleepWeekdays),
			huh.NewInput().Title("Weekend sleep").Placeholder("00:00-09:00").Value(&a.SleepWeekends),
		).Title("Your week"),
		huh.NewGroup(
			huh.NewConfirm().Title("Do you tend to procrastinate?").Value(&a.Procrastinator),
			huh.NewSelect[string]().Title("What kind of procrastinator?").Options(procrastinatorOptions...).Value(&a.ProcrastinatorType),
			huh.NewSelect[string]().Title("Do you have trouble finishing tasks?").
				Options(huh.NewOption("Not sure", ""), huh.NewOption("Yes", "yes"), huh.NewOption("No", "no")).
				Value(&a.TroubleFinishing),
		).Title("Habits"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("How do you prefer to work?").Options(workStyleOptions...).Value(&a.WorkStyle),
			huh.NewSelect[string]().Title("When are you most productive?").Options(productiveOptions...).Value(&a.ProductiveTime),
			huh.NewInput().Title("Study method").Placeholder("50 min work, 10 min break").Value(&a.StudyMethod),
			huh.NewInput().Title("Personal time (hours per week)").Value(&a.PersonalHours).
				Validate(func(s string) error { _, err := parseHours("personal time", s); return err }),
			huh.NewInput().Title("Review time (hours per week)").Value(&a.ReviewHours).
				Validate(func(s string) error { _, err := parseHours("review time", s); return err }),
		).Title("Work style"),
	).WithTheme(planwiseTheme())
}

// taskAnswers backs the interactive task form.
type taskAnswers struct {
	Name, Priority, Category string
	Deadline, DeadlineTime   string
	Hours                    string
	ComputerRequired         bool
}

func newTaskAnswers(t *domain.Task, now time.Time) *taskAnswers {
	a := &taskAnswers{
		Name:             t.Name,
		Priority:         string(t.Priority),
		Category:         t.Category,
		Deadline:         t.Deadline,
		DeadlineTime:     t.DeadlineTime,
		ComputerRequired: t.ComputerRequired,
	}
	if a.Priority == "" {
		a.Priority = string(domain.PriorityImportantNotUrgent)
	}
	if a.Category == "" {
		a.Category = domain.DefaultCategory
	}
	if a.Deadline == "" {
		a.Deadline = now.AddDate(0, 0, 7).Format(domain.DateLayout)
	}
	if a.DeadlineTime == "" {
		a.DeadlineTime = domain.DefaultDeadlineTime
	}
	if t.DurationHours > 0 {
		a.Hours = strconv.FormatFloat(t.DurationHours, 'f', -1, 64)
	}
	return a
}

func (a *taskAnswers) apply(t *domain.Task) error {
	hours, err := strconv.ParseFloat(strings.TrimSpace(a.Hours), 64)
	if err != nil {
		return fmt.Errorf("duration %q is not a number of hours", a.Hours)
	}
	t.Name = a.Name
	t.Priority = domain.Priority(a.Priority)
	t.Category = strings.TrimSpace(a.Category)
	t.Deadline = strings.TrimSpace(a.Deadline)
	t.DeadlineTime = strings.TrimSpace(a.DeadlineTime)
	t.DurationHours = hours
	t.ComputerRequired = a.ComputerRequired
	return nil
}

// taskForm asks for every task field. categories are offered as choices.
func taskForm(a *taskAnswers, categories []string) *huh.Form {
	priorityOptions := make([]huh.Option[string], 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		priorityOptions = append(priorityOptions, huh.NewOption(string(p), string(p)))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(&a.Name).Validate(requireText("task name")),
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions...).Value(&a.Priority),
			huh.NewSelect[string]().Title("Category").Options(huh.NewOptions(categories...)...).Value(&a.Category),
			huh.NewInput().Title("Deadline (YYYY-MM-DD)").Value(&a.Deadline).Validate(validateDate),
			huh.NewInput().Title("Deadline time (HH:MM)").Value(&a.DeadlineTime).Validate(validateClock),
			huh.NewInput().Title("Estimated hours").Placeholder("2").Value(&a.Hours).Validate(validatePositiveHours),
			huh.NewConfirm().Title("Needs a computer?").Value(&a.ComputerRequired),
		),
	).WithTheme(planwiseTheme()).WithShowHelp(false)
}

func requireText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateClock(s string) error {
	if _, ok := domain.ParseClock(s); !ok {
		return fmt.Errorf("use HH:MM")
	}
	return nil
}

func validatePositiveHours(s string) error {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || h <= 0 {
		return fmt.Errorf("enter a positive number of hours")
	}
	return nil
}
