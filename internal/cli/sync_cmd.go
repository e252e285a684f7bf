package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	var login bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push scheduled blocks to Google Calendar",
		Long: "Push scheduled blocks to Google Calendar. Events created by earlier\n" +
			"syncs are updated or removed to match the stored schedule; other\n" +
			"events in the calendar are left alone.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Calendar == nil {
				return fmt.Errorf("calendar sync is not configured")
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cal, err := app.Calendar(ctx, login, out)
			if err != nil {
				return err
			}
			res, err := app.Sync.Sync(ctx, cal)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Calendar synced: %d added, %d updated, %d removed.\n",
				res.Inserted, res.Updated, res.Deleted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&login, "login", false, "authorize with Google before syncing")
	return cmd
}
