package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/settings"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change user settings",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings and recent files",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Settings
			rows := [][]string{
				{"time_units", string(s.TimeUnits)},
				{"max_recent_files", strconv.Itoa(s.MaxRecentFiles)},
			}
			for i, p := range s.RecentFiles {
				rows = append(rows, []string{fmt.Sprintf("recent[%d]", i), p})
			}
			fmt.Fprint(app.out(cmd), formatter.RenderTable([]string{"SETTING", "VALUE"}, rows))
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change a setting (time_units, max_recent_files)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			switch key {
			case "time_units":
				u, err := settings.ParseTimeUnit(value)
				if err != nil {
					return err
				}
				app.Settings.TimeUnits = u
			case "max_recent_files":
				n, err := strconv.Atoi(value)
				if err != nil || n <= 0 {
					return fmt.Errorf("max_recent_files must be a positive integer, got %q", value)
				}
				app.Settings.MaxRecentFiles = n
				if len(app.Settings.RecentFiles) > n {
					app.Settings.RecentFiles = app.Settings.RecentFiles[:n]
				}
			default:
				return fmt.Errorf("unknown setting %q", key)
			}
			app.persistSettings(cmd.Context())
			fmt.Fprintf(app.out(cmd), "Set %s = %s\n", key, value)
			return nil
		},
	}
}
