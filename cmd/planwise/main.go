package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/planwise/internal/cli"
	"github.com/alexanderramin/planwise/internal/config"
	"github.com/alexanderramin/planwise/internal/db"
	"github.com/alexanderramin/planwise/internal/gcal"
	"github.com/alexanderramin/planwise/internal/logger"
	"github.com/alexanderramin/planwise/internal/repository"
	"github.com/alexanderramin/planwise/internal/scheduler"
	"github.com/alexanderramin/planwise/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath picks --config out of the arguments before cobra sees them,
// since the services have to exist before the command tree is built.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("planwise", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func run() error {
	cfg, err := config.Load(configPath(os.Args[1:]), "")
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	lg, err := logger.New(logger.Options{
		Dir:   cfg.Log.Dir,
		Level: cfg.Log.Level,
		Debug: cfg.Log.Debug,
	})
	if err != nil {
		return fmt.Errorf("starting logger: %w", err)
	}
	defer lg.Close()

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	lg.Debug("database opened", "path", cfg.DB.Path, "timezone", loc.String())

	profileRepo := repository.NewSQLiteProfileRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	goalRepo := repository.NewSQLiteGoalRepo(database)
	scheduleRepo := repository.NewSQLiteScheduleRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	engine := scheduler.NewEngine(loc)
	observer := service.NewLogUseCaseObserver(lg.Logger)

	calendar := gcal.Settings{
		CredentialsPath: cfg.Calendar.Credentials,
		TokenPath:       cfg.Calendar.Token,
		CalendarName:    cfg.Calendar.Name,
	}

	app := &cli.App{
		Profiles: service.NewProfileService(profileRepo),
		Tasks:    service.NewTaskService(taskRepo, uow),
		Goals:    service.NewGoalService(goalRepo, uow),
		Schedule: service.NewScheduleService(profileRepo, taskRepo, scheduleRepo, uow, engine, lg.Logger, observer),
		Import:   service.NewImportService(uow, loc, observer),
		Export:   service.NewExportService(profileRepo, taskRepo, goalRepo, scheduleRepo, loc),
		Sync:     service.NewSyncService(scheduleRepo, observer),
		Location: loc,
		Calendar: func(ctx context.Context, login bool, out io.Writer) (service.CalendarGateway, error) {
			return gcal.Connect(ctx, calendar, login, out)
		},
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
