package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stylekit/internal/render"
	"github.com/alexisbeaulieu97/stylekit/pkg/diff"
)

type snapshotOptions struct {
	dir    string
	format string
	update bool
}

func newSnapshotCmd(app *appContext) *cobra.Command {
	opts := &snapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot <family-file>",
		Short: "Compare every example of a family with its golden file",
		Long: `Snapshot renders each example of the family and compares the output with
<dir>/<family>.<example>.<ext>. Use --update to rewrite the golden files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Golden file directory (defaults to __snapshots__ next to the family file)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: html or tree (defaults to the format setting)")
	cmd.Flags().BoolVarP(&opts.update, "update", "u", false, "Rewrite golden files instead of comparing")

	return cmd
}

func runSnapshot(cmd *cobra.Command, app *appContext, path string, opts *snapshotOptions) error {
	format, err := app.format(opts.format)
	if err != nil {
		return newCommandError("snapshot", fmt.Sprintf("format %q", opts.format), err, "Use --format html or --format tree.")
	}

	lib, err := app.loadLibrary(path)
	if err != nil {
		return newCommandError("snapshot", fmt.Sprintf("loading family %q", path), err, "Run 'stylekit validate' on the file for details.")
	}

	dir := opts.dir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(path), "__snapshots__")
	}
	if opts.update {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return newCommandError("snapshot", fmt.Sprintf("creating %q", dir), err, "Check that the directory is writable.")
		}
	}

	out := cmd.OutOrStdout()
	log := app.logger("snapshot")
	failed := 0
	for _, example := range lib.ExampleNames() {
		actual, err := app.renderExample(lib, example, format, render.Options{})
		if err != nil {
			return newCommandError("snapshot", fmt.Sprintf("rendering example %q", example), err, "Check the example's component and slot references.")
		}

		golden := filepath.Join(dir, fmt.Sprintf("%s.%s.%s", lib.Name(), example, extension(format)))
		if opts.update {
			if err := os.WriteFile(golden, actual, 0o644); err != nil {
				return newCommandError("snapshot", fmt.Sprintf("writing %q", golden), err, "Check that the directory is writable.")
			}
			fmt.Fprintf(out, "updated %s\n", golden)
			continue
		}

		expected, err := os.ReadFile(golden)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			failed++
			fmt.Fprintf(out, "✗ %s: missing %s\n", example, golden)
			continue
		case err != nil:
			return newCommandError("snapshot", fmt.Sprintf("reading %q", golden), err, "Check file permissions.")
		}

		if d := diff.Unified(expected, actual, golden, example+" (rendered)"); d != "" {
			failed++
			fmt.Fprintf(out, "✗ %s\n%s", example, d)
			continue
		}
		fmt.Fprintf(out, "✓ %s\n", example)
	}

	log.WithFields(map[string]any{"family": lib.Name(), "examples": len(lib.ExampleNames()), "failed": failed}).Debug("snapshots compared")
	if failed > 0 {
		return newCommandError("snapshot", fmt.Sprintf("%d of %d snapshots differ", failed, len(lib.ExampleNames())), errors.New("rendered output does not match golden files"), "Review the diff and rerun with --update if the change is intended.")
	}
	return nil
}

func extension(format render.Format) string {
	if format == render.FormatTree {
		return "txt"
	}
	return "html"
}
