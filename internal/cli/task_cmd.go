package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/model"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage estimate tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskEditCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

// taskFields are the editable task values shared by add and edit.
type taskFields struct {
	description string
	estimated   int
	minimum     int
	maximum     int
	spent       int
	percent     int
}

func (f *taskFields) register(cmd *cobra.Command, app *App) {
	cmd.Flags().StringVar(&f.description, "description", "", "Task description")
	cmd.Flags().Var(newMinutesValue(app.unit, &f.estimated), "estimate", "Estimated time")
	cmd.Flags().Var(newMinutesValue(app.unit, &f.minimum), "min", "Minimum time")
	cmd.Flags().Var(newMinutesValue(app.unit, &f.maximum), "max", "Maximum time")
	cmd.Flags().Var(newMinutesValue(app.unit, &f.spent), "spent", "Time spent so far")
	cmd.Flags().IntVar(&f.percent, "percent", 0, "Percent complete (0-100)")
}

// apply sets every flag the user passed on n.
func (f *taskFields) apply(cmd *cobra.Command, n *domain.TaskNode) error {
	if cmd.Flags().Changed("description") {
		n.SetDescription(f.description)
	}
	setters := []struct {
		flag string
		set  func(int) error
		v    int
	}{
		{"estimate", n.SetEstimatedMinutes, f.estimated},
		{"min", n.SetMinimumMinutes, f.minimum},
		{"max", n.SetMaximumMinutes, f.maximum},
		{"spent", n.SetTimeSpentMinutes, f.spent},
		{"percent", n.SetPercentComplete, f.percent},
	}
	for _, s := range setters {
		if !cmd.Flags().Changed(s.flag) {
			continue
		}
		if err := s.set(s.v); err != nil {
			return fmt.Errorf("--%s: %w", s.flag, err)
		}
	}
	return nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var fields taskFields
	var parent int

	cmd := &cobra.Command{
		Use:   "add DESCRIPTION",
		Short: "Add a task under a parent task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.editProject(cmd, func(ctx context.Context, m *model.Model) error {
				if parent == 0 {
					parent = m.Root().ID()
				}
				n, err := m.AddNode(parent, args[0])
				if err != nil {
					return err
				}
				if err := fields.apply(cmd, n); err != nil {
					return err
				}
				fmt.Fprintf(app.out(cmd), "Added task #%d %q under #%d\n", n.ID(), n.Description(), parent)
				return nil
			})
		},
	}

	fields.register(cmd, app)
	cmd.Flags().IntVar(&parent, "parent", 0, "Parent task ID (default the root)")

	return cmd
}

func newTaskEditCmd(app *App) *cobra.Command {
	var fields taskFields

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a task's values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return app.editProject(cmd, func(ctx context.Context, m *model.Model) error {
				edited, err := m.Snapshot(id)
				if err != nil {
					return err
				}
				if err := fields.apply(cmd, edited); err != nil {
					return err
				}
				if err := m.ApplyEdit(edited); err != nil {
					return err
				}
				if !m.ModelChanged() {
					fmt.Fprintf(app.out(cmd), "Task #%d unchanged\n", id)
					return nil
				}
				fmt.Fprintf(app.out(cmd), "Updated task #%d\n", id)
				return nil
			})
		},
	}

	fields.register(cmd, app)

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task and its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return app.editProject(cmd, func(ctx context.Context, m *model.Model) error {
				if err := m.DeleteNode(id); err != nil {
					return err
				}
				fmt.Fprintf(app.out(cmd), "Removed task #%d\n", id)
				return nil
			})
		},
	}
}
