package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planwise/internal/cli/formatter"
	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/service"
	"github.com/spf13/cobra"
)

// moveLayout is how move targets are typed: local date and clock time.
const moveLayout = "2006-01-02T15:04"

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"sched"},
		Short:   "Generate and inspect your schedule",
	}
	cmd.AddCommand(
		newScheduleGenerateCmd(app),
		newScheduleShowCmd(app),
		newScheduleMoveCmd(app),
	)
	return cmd
}

func newScheduleGenerateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Place open tasks into the next two weeks, replacing the stored schedule",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Schedule.Generate(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatGenerateSummary(len(res.Schedule), res.Placements))
			if len(res.Placements) > 0 {
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatPlacementReport(res.Placements))
			}
			return nil
		},
	}
}

func newScheduleShowCmd(app *App) *cobra.Command {
	var (
		day    string
		days   int
		report bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var from, to time.Time
			if day != "" {
				d, err := time.ParseInLocation(domain.DateLayout, day, app.location())
				if err != nil {
					return fmt.Errorf("invalid --day %q: use YYYY-MM-DD", day)
				}
				if days < 1 {
					days = 1
				}
				from, to = d, d.AddDate(0, 0, days)
			}

			ctx := cmd.Context()
			agenda, err := app.Schedule.Agenda(ctx, from, to)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatAgenda(agenda.Blocks, agenda.FixedBlocks, goalColors(ctx, app)))
			if report && len(agenda.Placements) > 0 {
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatPlacementReport(agenda.Placements))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "only show this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 1, "with --day, how many days to show")
	cmd.Flags().BoolVar(&report, "report", false, "also print the placement report")
	return cmd
}

func newScheduleMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <block-id> <YYYY-MM-DDTHH:MM>",
		Short: "Move one scheduled block to a new start time",
		Long: "Move one scheduled block to a new start time, keeping its length.\n" +
			"The move is refused if it overlaps a commitment or another block,\n" +
			"or ends after the task's deadline. Other blocks are not replanned.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBlockID(ctx, app, args[0])
			if err != nil {
				return err
			}
			start, err := time.ParseInLocation(moveLayout, args[1], app.location())
			if err != nil {
				return fmt.Errorf("invalid start %q: use YYYY-MM-DDTHH:MM", args[1])
			}

			moved, err := app.Schedule.Move(ctx, id, start)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s %s-%s\n",
				moved.TaskName,
				moved.Start.Format("Mon Jan 2"),
				moved.Start.Format("15:04"),
				moved.End.Format("15:04"))
			return nil
		},
	}
}

// resolveBlockID expands a block ID prefix, as printed by "schedule show".
func resolveBlockID(ctx context.Context, app *App, ref string) (string, error) {
	agenda, err := app.Schedule.Agenda(ctx, time.Time{}, time.Time{})
	if err != nil {
		return "", err
	}
	var matches []string
	for _, b := range agenda.Blocks {
		if b.ID == ref {
			return b.ID, nil
		}
		if strings.HasPrefix(b.ID, ref) {
			matches = append(matches, b.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", service.ErrBlockNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("block ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}
