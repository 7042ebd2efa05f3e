package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/estimator/internal/burndown"
	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/model"
	"github.com/spf13/cobra"
)

func newBurnDownCmd(app *App) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "burndown",
		Short: "Chart ideal against actual progress per work day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.viewProject(cmd, func(ctx context.Context, m *model.Model) error {
				var chart burndown.Chart
				recalc := burndown.NewRecalculator(func(c burndown.Chart) { chart = c })
				recalc.Recalculate(ctx, burndown.Input{
					EstimatedMinutes:  m.Root().EstimatedMinutes(),
					MinutesPerWorkDay: m.MinutesPerWorkDay(),
					Days:              m.WorkDays(),
				})
				recalc.Wait()
				fmt.Fprint(app.out(cmd), formatter.FormatBurnDown(chart, width))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", 20, "Bar width")

	return cmd
}

func newVersionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List saved project versions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.viewProject(cmd, func(ctx context.Context, m *model.Model) error {
				versions, err := m.ProjectVersions(ctx)
				if err != nil {
					return err
				}
				fmt.Fprint(app.out(cmd), formatter.FormatVersions(versions, app.Now()))
				return nil
			})
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history ID",
		Short: "Show the archived states of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return app.viewProject(cmd, func(ctx context.Context, m *model.Model) error {
				rows, err := m.History(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprint(app.out(cmd), formatter.FormatHistory(rows, app.unit()))
				return nil
			})
		},
	}
}
