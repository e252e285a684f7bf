package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/planwise/internal/export"
	"github.com/alexanderramin/planwise/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <state.json>",
		Short: "Load a saved state file, including files from older versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportState(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			profile := "no profile"
			if res.ProfileImported {
				profile = "profile"
			}
			fmt.Fprintf(out, "Imported %s, %d tasks, %d goals, %d blocks, %d fixed blocks.\n",
				profile, res.TaskCount, res.GoalCount, res.BlockCount, res.FixedCount)
			for _, note := range res.Migrations {
				fmt.Fprintf(out, "  migrated %s\n", note)
			}
			return nil
		},
	}
}

var exportFormats = []string{"json", "ics", "xlsx"}

// exportFormat picks the format from the flag, then from the output file
// extension, then falls back to json.
func exportFormat(flag, path string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(flag))
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		switch f {
		case "ics", "xlsx":
		default:
			f = "json"
		}
	}
	for _, known := range exportFormats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want %s)", flag, strings.Join(exportFormats, ", "))
}

func newExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write your data as a state file, an iCalendar file or a workbook",
		Example: `  planwise export -o backup.json
  planwise export --format ics -o schedule.ics
  planwise export --format xlsx -o schedule.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			f, err := exportFormat(format, output)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer func() {
					if cerr := file.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}()
				w = file
			}

			if err := writeExport(cmd.Context(), app, f, w); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json, ics or xlsx (default from the -o extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func writeExport(ctx context.Context, app *App, format string, w io.Writer) error {
	if format == "json" {
		state, err := app.Export.State(ctx)
		if err != nil {
			return err
		}
		return importer.WriteState(w, state)
	}

	data, err := app.Export.Collect(ctx)
	if err != nil {
		return err
	}
	if format == "ics" {
		return export.WriteICS(w, data.Schedule, data.FixedBlocks, time.Now().UTC())
	}
	return export.WriteXLSX(w, data.Schedule, data.Placements)
}
