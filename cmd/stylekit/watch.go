package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stylekit/internal/watch"
)

func newWatchCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]...",
		Short: "Revalidate family documents whenever they change",
		Long: `Watch observes family files, or directories containing *.yaml and *.yml
family files, and validates each changed document. Press Ctrl+C to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runWatch(cmd, app, args)
		},
	}

	return cmd
}

func runWatch(cmd *cobra.Command, app *appContext, paths []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	log := app.logger("watch")

	w, err := watch.New(watch.Config{
		Paths:    paths,
		Debounce: app.settings.Watch.Debounce,
		Logger:   log,
		OnChange: func(_ context.Context, changed []string) error {
			for _, path := range changed {
				if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
					fmt.Fprintf(out, "- %s: removed\n", path)
					continue
				}
				lib, err := app.loadLibrary(path)
				if err != nil {
					log.WithFields(map[string]any{"path": path}).Error(err, "family invalid")
					fmt.Fprintf(out, "✗ %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "✓ %s: %s\n", path, summarize(lib))
			}
			return nil
		},
	})
	if err != nil {
		return newCommandError("watch", "registering paths", err, "Check that every path exists.")
	}

	log.WithFields(map[string]any{"paths": paths}).Info("watching family documents")
	if err := w.Run(ctx); err != nil {
		return newCommandError("watch", "watching for changes", err, "Restart the watch command.")
	}
	return nil
}
