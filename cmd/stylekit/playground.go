package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stylekit/internal/playground"
	"github.com/alexisbeaulieu97/stylekit/internal/render"
)

func newPlaygroundCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playground <family-file>",
		Short: "Interactively cycle variant values and watch the class string change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.loadLibrary(args[0])
			if err != nil {
				return newCommandError("open playground", fmt.Sprintf("loading family %q", args[0]), err, "Run 'stylekit validate' on the file for details.")
			}

			theme := render.NewTheme(lipgloss.NewRenderer(cmd.OutOrStdout()))
			err = playground.Run(cmd.Context(), lib, playground.Options{Theme: &theme},
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if err != nil {
				return newCommandError("open playground", "running the terminal UI", err, "Run the playground in an interactive terminal.")
			}
			return nil
		},
	}

	return cmd
}
