package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planwise/internal/cli/formatter"
	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals, the custom task categories",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create a goal",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				g, err := app.Goals.Create(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added goal %s; use --category %s on tasks.\n", g.Name, g.Slug())
				return nil
			},
		},
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List goals",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				goals, err := app.Goals.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(goals) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No goals yet.")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGoalList(goals))
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm <goal>",
			Aliases: []string{"remove", "delete"},
			Short:   "Delete a goal; its tasks move back to study",
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ref := strings.Join(args, " ")
				moved, err := app.Goals.Delete(cmd.Context(), ref)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %s (%d tasks moved to %s)\n", ref, moved, domain.DefaultCategory)
				return nil
			},
		},
	)
	return cmd
}
