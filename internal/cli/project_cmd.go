package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/model"
	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	var minutesPerDay int

	cmd := &cobra.Command{
		Use:   "new DESCRIPTION",
		Short: "Create a project file with a single root task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.file == "" {
				return fmt.Errorf("--file is required for a new project")
			}
			ctx := cmd.Context()
			m, err := app.newModel(cmd)
			if err != nil {
				return err
			}
			defer m.Discard()

			if err := m.NewProject(app.file, args[0]); err != nil {
				return err
			}
			if cmd.Flags().Changed("minutes-per-day") {
				if err := m.SetMinutesPerWorkDay(minutesPerDay); err != nil {
					return err
				}
			}
			if err := m.Save(ctx); err != nil {
				return err
			}
			if err := m.Close(ctx); err != nil {
				return err
			}
			app.remember(ctx, app.file)

			fmt.Fprintf(app.out(cmd), "Created project %q in %s\n", args[0], app.file)
			return nil
		},
	}

	cmd.Flags().IntVar(&minutesPerDay, "minutes-per-day", 0, "Working minutes in a day (default 450)")

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show the estimate tree, or one task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.viewProject(cmd, func(ctx context.Context, m *model.Model) error {
				if len(args) == 0 {
					fmt.Fprint(app.out(cmd), formatter.FormatEstimate(m.Root(), app.unit()))
					return nil
				}
				id, err := parseTaskID(args[0])
				if err != nil {
					return err
				}
				n, err := m.Node(id)
				if err != nil {
					return err
				}
				fmt.Fprint(app.out(cmd), formatter.FormatTask(n, app.unit()))
				return nil
			})
		},
	}
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect and configure the project file",
	}

	cmd.AddCommand(
		newProjectInfoCmd(app),
		newProjectMinutesCmd(app),
		newProjectSaveAsCmd(app),
	)

	return cmd
}

func newProjectInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show project file details",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.viewProject(cmd, func(ctx context.Context, m *model.Model) error {
				versions, err := m.ProjectVersions(ctx)
				if err != nil {
					return err
				}
				start := "--"
				if d := m.StartDate(); d != nil {
					start = d.Format("2006-01-02")
				}
				rows := [][]string{
					{"File", m.Path()},
					{"Root", m.Root().Description()},
					{"Start date", start},
					{"Work day", formatter.FormatSpan(m.MinutesPerWorkDay())},
					{"Work days", strconv.Itoa(len(m.WorkDays()))},
					{"Versions", strconv.Itoa(len(versions))},
				}
				fmt.Fprintln(app.out(cmd), formatter.RenderBox(m.Root().Description(), formatter.RenderTable([]string{"PROJECT", ""}, rows)))
				return nil
			})
		},
	}
}

func newProjectMinutesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "minutes N",
		Short: "Set the working minutes in a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid minutes %q: %w", args[0], err)
			}
			return app.editProject(cmd, func(ctx context.Context, m *model.Model) error {
				if err := m.SetMinutesPerWorkDay(n); err != nil {
					return err
				}
				fmt.Fprintf(app.out(cmd), "Work day is now %s\n", formatter.FormatSpan(n))
				return nil
			})
		},
	}
}

func newProjectSaveAsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save-as PATH",
		Short: "Copy the project into a new file and use that file from now on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			return app.viewProject(cmd, func(ctx context.Context, m *model.Model) error {
				if err := m.SaveAs(ctx, target); err != nil {
					return err
				}
				if err := m.Close(ctx); err != nil {
					return err
				}
				app.remember(ctx, target)
				fmt.Fprintf(app.out(cmd), "Saved project as %s\n", target)
				return nil
			})
		},
	}
}

func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
