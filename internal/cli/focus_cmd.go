package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/focus"
	"github.com/alexanderramin/planwise/internal/scheduler"
	"github.com/alexanderramin/planwise/internal/service"
	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	var (
		minutes  int
		markDone bool
	)

	cmd := &cobra.Command{
		Use:   "focus <task>",
		Short: "Run a focus timer for a task",
		Long: "Run a focus timer for a task. The session length follows your study\n" +
			"method or work style unless --minutes is given.\n" +
			"Space pauses and resumes; q stops.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("focus needs an interactive terminal")
			}
			ctx := cmd.Context()
			t, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			d := time.Duration(minutes) * time.Minute
			if minutes <= 0 {
				d, err = app.Schedule.FocusDuration(ctx)
				if errors.Is(err, service.ErrProfileNotFound) {
					d, err = scheduler.FocusDuration(domain.NewProfile()), nil
				}
				if err != nil {
					return err
				}
			}

			run := app.Focus
			if run == nil {
				run = focus.Run
			}
			res, err := run(ctx, t.Name, d, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Completed {
				fmt.Fprintf(out, "Stopped after %s on %s.\n", res.Elapsed.Round(time.Second), t.Name)
				return nil
			}
			fmt.Fprintf(out, "Session complete: %d min on %s.\n", int(d.Minutes()), t.Name)
			if markDone {
				if err := app.Tasks.MarkDone(ctx, t.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Marked %s done.\n", t.Name)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "session length in minutes")
	cmd.Flags().BoolVar(&markDone, "done", false, "mark the task done when the session completes")
	return cmd
}
