package cli

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/planwise/internal/focus"
	"github.com/alexanderramin/planwise/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and environment hooks the commands use.
type App struct {
	Profiles service.ProfileService
	Tasks    service.TaskService
	Goals    service.GoalService
	Schedule service.ScheduleService
	Import   service.ImportService
	Export   service.ExportService
	Sync     service.SyncService

	// Location is the zone dates typed on the command line are read in.
	Location *time.Location

	// Calendar connects to Google Calendar. With login set it runs the
	// browser authorization even when a cached token exists.
	Calendar func(ctx context.Context, login bool, out io.Writer) (service.CalendarGateway, error)

	// Focus runs the countdown UI. Nil means focus.Run.
	Focus func(ctx context.Context, task string, d time.Duration, in io.Reader, out io.Writer) (focus.Result, error)

	// IsInteractive reports whether stdin is a terminal. Wizards refuse to
	// run without one.
	IsInteractive func() bool
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "planwise" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planwise",
		Short: "Personalized task scheduler",
		Long: "PlanWise places your tasks into the free time around your commitments,\n" +
			"sized and timed to how you work.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Read by main before the command tree is built; declared here so
	// cobra accepts it.
	root.PersistentFlags().String("config", "", "config file (default ~/.planwise/config.yaml)")

	root.AddCommand(
		newProfileCmd(app),
		newTaskCmd(app),
		newGoalCmd(app),
		newScheduleCmd(app),
		newFocusCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newSyncCmd(app),
	)
	return root
}
