package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/planwise/internal/cli/formatter"
	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/service"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your scheduling profile",
	}
	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileSetCmd(app),
		newProfileWizardCmd(app),
	)
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
}

// currentProfile returns the stored profile, or an empty one when none is
// saved yet.
func currentProfile(ctx context.Context, app *App) (*domain.Profile, error) {
	p, err := app.Profiles.Get(ctx)
	if errors.Is(err, service.ErrProfileNotFound) {
		return domain.NewProfile(), nil
	}
	return p, err
}

type profileFlags struct {
	name, ageGroup               string
	weekdays, weekend            []string
	sleepWeekdays, sleepWeekends string
	breaks                       string
	procrastinator               bool
	procrastinatorType           string
	troubleFinishing             string
	workStyle, productiveTime    string
	studyMethod                  string
	personalHours, reviewHours   float64
}

func newProfileSetCmd(app *App) *cobra.Command {
	var f profileFlags

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields from flags",
		Long: "Update profile fields from flags. Only the flags you pass change.\n" +
			"Passing --weekday or --weekend replaces that whole schedule.",
		Example: `  planwise profile set --name Ada --work-style short-bursts \
    --weekday 'Mon=Lecture 09:00-12:00' --weekday 'Wed=Lab 13:00-16:00' \
    --weekend 'Saturday 10:00-12:00 soccer' --breaks '12:00-12:30'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := currentProfile(ctx, app)
			if err != nil {
				return err
			}
			if err := f.apply(cmd, p); err != nil {
				return err
			}
			if err := app.Profiles.Save(ctx, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile saved.")
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "your name")
	fl.StringVar(&f.ageGroup, "age-group", "", "age group, e.g. 18-24")
	fl.StringArrayVar(&f.weekdays, "weekday", nil, "weekday commitment DAY=NAME HH:MM-HH:MM (repeatable)")
	fl.StringArrayVar(&f.weekend, "weekend", nil, "weekend activity such as 'Saturday 10:00-12:00 soccer' (repeatable)")
	fl.StringVar(&f.sleepWeekdays, "sleep-weekdays", "", "weekday sleep window, informational")
	fl.StringVar(&f.sleepWeekends, "sleep-weekends", "", "weekend sleep window, informational")
	fl.StringVar(&f.breaks, "breaks", "", "daily breaks, e.g. '12:00-12:30; 18:00-19:00'")
	fl.BoolVar(&f.procrastinator, "procrastinator", false, "you tend to procrastinate")
	fl.StringVar(&f.procrastinatorType, "procrastinator-type", "",
		"one of "+joinProcrastinatorTypes())
	fl.StringVar(&f.troubleFinishing, "trouble-finishing", "", "yes or no")
	fl.StringVar(&f.workStyle, "work-style", "", "short-bursts, long-sessions or mixed")
	fl.StringVar(&f.productiveTime, "productive-time", "", "Early Morning, Morning, Afternoon, Evening or Late Night")
	fl.StringVar(&f.studyMethod, "study-method", "", "free text, e.g. '50 min work, 10 min break'")
	fl.Float64Var(&f.personalHours, "personal-hours", 0, "hours per week kept free for yourself")
	fl.Float64Var(&f.reviewHours, "review-hours", 0, "hours per week for review")

	return cmd
}

func joinProcrastinatorTypes() string {
	names := make([]string, 0, len(domain.ProcrastinatorTypes))
	for _, t := range domain.ProcrastinatorTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func (f *profileFlags) apply(cmd *cobra.Command, p *domain.Profile) error {
	changed := cmd.Flags().Changed
	var err error

	if changed("name") {
		p.Name = strings.TrimSpace(f.name)
	}
	if changed("age-group") {
		p.AgeGroup = strings.TrimSpace(f.ageGroup)
	}
	if changed("weekday") {
		schedule := make(map[string][]domain.Commitment)
		for _, v := range f.weekdays {
			day, c, err := parseWeekdayFlag(v)
			if err != nil {
				return err
			}
			schedule[day] = append(schedule[day], c)
		}
		p.WeeklySchedule = schedule
	}
	if changed("weekend") {
		schedule := make(map[string][]domain.Commitment)
		for _, v := range f.weekend {
			parsed := parseWeekendText(v)
			if len(parsed) == 0 {
				return fmt.Errorf("weekend %q: want 'Saturday|Sunday HH:MM-HH:MM NAME'", v)
			}
			for day, list := range parsed {
				schedule[day] = append(schedule[day], list...)
			}
		}
		p.WeekendSchedule = schedule
	}
	if changed("sleep-weekdays") {
		p.SleepWeekdays = f.sleepWeekdays
	}
	if changed("sleep-weekends") {
		p.SleepWeekends = f.sleepWeekends
	}
	if changed("breaks") {
		p.SetBreakTimes(f.breaks)
	}
	if changed("procrastinator") {
		p.IsProcrastinator = f.procrastinator
	}
	if changed("procrastinator-type") {
		if p.ProcrastinatorType, err = domain.ParseProcrastinatorType(f.procrastinatorType); err != nil {
			return err
		}
		if p.ProcrastinatorType != domain.ProcrastinatorUnset && !changed("procrastinator") {
			p.IsProcrastinator = true
		}
	}
	if changed("trouble-finishing") {
		if p.TroubleFinishing, err = domain.ParseTroubleFinishing(f.troubleFinishing); err != nil {
			return err
		}
	}
	if changed("work-style") {
		if p.WorkStyle, err = domain.ParseWorkStyle(f.workStyle); err != nil {
			return err
		}
	}
	if changed("productive-time") {
		if p.ProductiveTime, err = domain.ParseProductiveTime(f.productiveTime); err != nil {
			return err
		}
	}
	if changed("study-method") {
		p.StudyMethod = f.studyMethod
	}
	if changed("personal-hours") {
		p.WeeklyPersonalHours = f.personalHours
	}
	if changed("review-hours") {
		p.WeeklyReviewHours = f.reviewHours
	}
	return nil
}

func newProfileWizardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Answer the profile questionnaire interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive("profile wizard", "planwise profile set")
			}
			ctx := cmd.Context()
			p, err := currentProfile(ctx, app)
			if err != nil {
				return err
			}

			answers := newProfileAnswers(p)
			if err := profileForm(answers).RunWithContext(ctx); err != nil {
				return err
			}
			if err := answers.apply(p); err != nil {
				return err
			}
			if err := app.Profiles.Save(ctx, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile saved.")
			return nil
		},
	}
}

func errNotInteractive(what, alternative string) error {
	return fmt.Errorf("%s needs an interactive terminal; use '%s' instead", what, alternative)
}
