package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := &appContext{}

	cmd := &cobra.Command{
		Use:           "stylekit",
		Short:         "Stylekit builds variant-driven styled components from family documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd, flags)
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Settings file (defaults to ~/.config/stylekit/config.yaml)")

	cmd.AddCommand(newResolveCmd(app))
	cmd.AddCommand(newRenderCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newSnapshotCmd(app))
	cmd.AddCommand(newWatchCmd(app))
	cmd.AddCommand(newPlaygroundCmd(app))
	cmd.AddCommand(newFetchCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
