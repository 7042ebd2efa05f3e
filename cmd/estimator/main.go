package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/estimator/internal/cli"
	"github.com/alexanderramin/estimator/internal/model"
	"github.com/alexanderramin/estimator/internal/settings"
	"github.com/alexanderramin/estimator/internal/store"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine settings path: env var or default ~/.estimator/settings.yaml
	settingsPath := os.Getenv("ESTIMATOR_SETTINGS")
	if settingsPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		settingsPath = filepath.Join(home, ".estimator", "settings.yaml")
	}

	prefs, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}

	// Plain output when piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	app := &cli.App{
		Opener:   store.NewOpener(),
		Settings: prefs,
		Saver: settings.NewSaver(settingsPath, func(err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: saving settings: %v\n", err)
			}
		}),
	}

	if enabled, _ := strconv.ParseBool(os.Getenv("ESTIMATOR_LOG")); enabled {
		app.Observer = model.NewLogUseCaseObserver(os.Stderr)
		app.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	return cli.NewRootCmd(app).Execute()
}
