package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/planwise/internal/cli/formatter"
	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskEditCmd(app),
		newTaskShowCmd(app),
		newTaskRemoveCmd(app),
		newTaskDoneCmd(app),
		newTaskListCmd(app),
		newTaskRankCmd(app),
	)
	return cmd
}

type taskFlags struct {
	name, priority, category string
	deadline, deadlineTime   string
	hours                    float64
	computer                 bool
}

func (f *taskFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "task name")
	fl.StringVarP(&f.priority, "priority", "p", "", "priority label or 1-4 (1 = Urgent & Important)")
	fl.StringVarP(&f.category, "category", "c", "", "category or goal name (default study)")
	fl.StringVarP(&f.deadline, "deadline", "d", "", "deadline date YYYY-MM-DD")
	fl.StringVar(&f.deadlineTime, "deadline-time", "", "deadline time HH:MM (default 23:59)")
	fl.Float64VarP(&f.hours, "hours", "H", 0, "estimated duration in hours")
	fl.BoolVar(&f.computer, "computer", false, "the task needs a computer")
}

func (f *taskFlags) any(cmd *cobra.Command) bool {
	for _, name := range []string{"name", "priority", "category", "deadline", "deadline-time", "hours", "computer"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply copies the flags that were set onto t.
func (f *taskFlags) apply(ctx context.Context, app *App, cmd *cobra.Command, t *domain.Task) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		t.Name = f.name
	}
	if changed("priority") {
		p, err := domain.ParsePriority(f.priority)
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if changed("category") {
		c, err := resolveCategory(ctx, app, f.category)
		if err != nil {
			return err
		}
		t.Category = c
	}
	if changed("deadline") {
		t.Deadline = strings.TrimSpace(f.deadline)
	}
	if changed("deadline-time") {
		t.DeadlineTime = strings.TrimSpace(f.deadlineTime)
	}
	if changed("hours") {
		t.DurationHours = f.hours
	}
	if changed("computer") {
		t.ComputerRequired = f.computer
	}
	return nil
}

// categories lists the built-in categories followed by goal slugs.
func categories(ctx context.Context, app *App) ([]string, error) {
	out := slices.Clone(domain.StandardCategories)
	goals, err := app.Goals.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		if !slices.Contains(out, g.Slug()) {
			out = append(out, g.Slug())
		}
	}
	return out, nil
}

// resolveCategory accepts a built-in category, a goal name or a goal slug.
func resolveCategory(ctx context.Context, app *App, input string) (string, error) {
	slug := domain.GoalSlug(input)
	if slug == "" {
		return domain.DefaultCategory, nil
	}
	all, err := categories(ctx, app)
	if err != nil {
		return "", err
	}
	if slices.Contains(all, slug) {
		return slug, nil
	}
	return "", fmt.Errorf("unknown category %q (known: %s; add one with 'planwise goal add')", input, strings.Join(all, ", "))
}

func runTaskForm(ctx context.Context, app *App, t *domain.Task) error {
	cats, err := categories(ctx, app)
	if err != nil {
		return err
	}
	if t.Category != "" && !slices.Contains(cats, t.Category) {
		cats = append(cats, t.Category)
	}
	answers := newTaskAnswers(t, time.Now().In(app.location()))
	if err := taskForm(answers, cats).RunWithContext(ctx); err != nil {
		return err
	}
	return answers.apply(t)
}

func newTaskAddCmd(app *App) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task",
		Example: `  planwise task add "Essay draft" -p 1 -d 2025-06-19 -H 2
  planwise task add   # interactive form`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t := &domain.Task{Priority: domain.PriorityImportantNotUrgent}
			if len(args) == 1 {
				t.Name = args[0]
			}
			if err := f.apply(ctx, app, cmd, t); err != nil {
				return err
			}

			if t.Name == "" && !f.any(cmd) {
				if !app.interactive() {
					return fmt.Errorf("task name is required")
				}
				if err := runTaskForm(ctx, app, t); err != nil {
					return err
				}
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s [%s]\n", t.Name, formatter.ShortID(t.ID))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newTaskEditCmd(app *App) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "Change a task; without flags opens the form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if f.any(cmd) {
				err = f.apply(ctx, app, cmd, t)
			} else if app.interactive() {
				err = runTaskForm(ctx, app, t)
			} else {
				err = fmt.Errorf("nothing to change; pass flags such as --deadline or --hours")
			}
			if err != nil {
				return err
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s [%s]\n", t.Name, formatter.ShortID(t.ID))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task>",
		Short: "Print one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tasks.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTask(t))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task and its scheduled blocks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", t.Name)
			return nil
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.MarkDone(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s. Run 'planwise schedule generate' to replan.\n", t.Name)
			return nil
		},
	}
}

func goalColors(ctx context.Context, app *App) map[string]string {
	goals, err := app.Goals.List(ctx)
	if err != nil {
		return nil
	}
	return formatter.GoalColors(goals)
}

func newTaskListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tasks, err := app.Tasks.List(ctx, all)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, goalColors(ctx, app)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")
	return cmd
}

func newTaskRankCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Show incomplete tasks in the order they are scheduled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ranked, err := app.Tasks.Ranked(ctx)
			if err != nil {
				return err
			}
			if len(ranked) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No open tasks.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRankedTasks(ranked, goalColors(ctx, app)))
			return nil
		},
	}
}
