package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stylekit/internal/family"
)

func newValidateCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <family-file>...",
		Short: "Check family documents for schema and reference errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, app, args)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, app *appContext, paths []string) error {
	out := cmd.OutOrStdout()
	log := app.logger("validate")

	var errs []error
	for _, path := range paths {
		lib, err := app.loadLibrary(path)
		if err != nil {
			errs = append(errs, err)
			log.WithFields(map[string]any{"path": path}).Error(err, "family invalid")
			fmt.Fprintf(out, "✗ %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "✓ %s: %s\n", path, summarize(lib))
	}

	if len(errs) > 0 {
		return newCommandError("validate", fmt.Sprintf("%d of %d family files are invalid", len(errs), len(paths)), errors.Join(errs...), "Fix the reported fields and run validate again.")
	}
	return nil
}

func summarize(lib *family.Library) string {
	fam := lib.Family()
	return fmt.Sprintf("%s (%d components, %d composites, %d examples)", fam.Name, len(fam.Components), len(fam.Composites), len(fam.Examples))
}
