package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/model"
	"github.com/spf13/cobra"
)

func newWorkDayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workday",
		Aliases: []string{"day"},
		Short:   "Log work days and their progress",
	}

	cmd.AddCommand(
		newWorkDayAddCmd(app),
		newWorkDayProgressCmd(app),
		newWorkDayListCmd(app),
	)

	return cmd
}

func newWorkDayAddCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a work day, snapshotting the time spent so far",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := app.Now()
			if date != "" {
				parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
				day = parsed
			}
			return app.editProject(cmd, func(ctx context.Context, m *model.Model) error {
				d, err := m.AddWorkDay(day)
				if err != nil {
					return err
				}
				fmt.Fprint(app.out(cmd), formatter.FormatWorkDayLogged(d))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day worked (YYYY-MM-DD, default today)")

	return cmd
}

func newWorkDayProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress PERCENT",
		Short: "Record progress for the latest work day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid percent %q: %w", args[0], err)
			}
			return app.editProject(cmd, func(ctx context.Context, m *model.Model) error {
				if err := m.RecordProgress(pct); err != nil {
					return err
				}
				fmt.Fprintf(app.out(cmd), "Work day #%d progress set to %d\n", m.CurrentWorkDayID(), pct)
				return nil
			})
		},
	}
}

func newWorkDayListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List logged work days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.viewProject(cmd, func(ctx context.Context, m *model.Model) error {
				fmt.Fprint(app.out(cmd), formatter.FormatWorkDays(m.WorkDays(), app.Now()))
				return nil
			})
		},
	}
}
