package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/estimator/internal/model"
	"github.com/alexanderramin/estimator/internal/settings"
	"github.com/spf13/cobra"
)

// App holds the collaborators CLI commands run against.
type App struct {
	Opener   model.StoreOpener
	Settings *settings.Settings
	// Saver persists Settings after a command changes them. Nil disables
	// persistence.
	Saver    *settings.Saver
	Observer model.UseCaseObserver
	Logger   *slog.Logger
	Now      func() time.Time

	file    string
	verbose bool
}

// NewRootCmd creates the top-level "estimator" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Settings == nil {
		app.Settings = settings.Default()
	}
	if app.Now == nil {
		app.Now = time.Now
	}

	root := &cobra.Command{
		Use:           "estimator",
		Short:         "Hierarchical task estimates with work-day burn-down",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Saver != nil {
				app.Saver.Wait()
			}
		},
	}
	root.PersistentFlags().StringVarP(&app.file, "file", "f", "", "Project file (defaults to the most recently used)")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Log project operations to stderr")

	root.AddCommand(
		newNewCmd(app),
		newShowCmd(app),
		newTaskCmd(app),
		newWorkDayCmd(app),
		newBurnDownCmd(app),
		newVersionsCmd(app),
		newHistoryCmd(app),
		newProjectCmd(app),
		newConfigCmd(app),
	)

	return root
}

// projectFile resolves the file a command operates on.
func (app *App) projectFile() (string, error) {
	if app.file != "" {
		return app.file, nil
	}
	if recent := app.Settings.MostRecent(); recent != "" {
		return recent, nil
	}
	return "", fmt.Errorf("no project file: pass --file or create one with `estimator new`")
}

func (app *App) newModel(cmd *cobra.Command) (*model.Model, error) {
	observer, logger := app.Observer, app.Logger
	if app.verbose {
		observer = model.NewLogUseCaseObserver(cmd.ErrOrStderr())
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	}
	return model.New(app.Opener,
		model.WithObserver(observer),
		model.WithLogger(logger),
		model.WithClock(func() time.Time { return app.Now().UTC() }),
	)
}

// viewProject loads the project, runs view, and closes it without saving.
func (app *App) viewProject(cmd *cobra.Command, view func(ctx context.Context, m *model.Model) error) error {
	ctx := cmd.Context()
	path, err := app.projectFile()
	if err != nil {
		return err
	}
	m, err := app.newModel(cmd)
	if err != nil {
		return err
	}
	defer m.Discard()

	if err := m.Load(ctx, path); err != nil {
		return err
	}
	app.remember(ctx, path)
	return view(ctx, m)
}

// editProject loads the project, applies mutate, saves and closes.
func (app *App) editProject(cmd *cobra.Command, mutate func(ctx context.Context, m *model.Model) error) error {
	return app.viewProject(cmd, func(ctx context.Context, m *model.Model) error {
		if err := mutate(ctx, m); err != nil {
			return err
		}
		if err := m.Save(ctx); err != nil {
			return err
		}
		return m.Close(ctx)
	})
}

// remember moves path to the front of the recent files and persists settings.
func (app *App) remember(ctx context.Context, path string) {
	app.Settings.Touch(path)
	app.persistSettings(ctx)
}

func (app *App) persistSettings(ctx context.Context) {
	if app.Saver != nil {
		app.Saver.Save(ctx, app.Settings)
	}
}

func (app *App) unit() settings.TimeUnit { return app.Settings.TimeUnits }

func (app *App) out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
