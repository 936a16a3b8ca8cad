package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stylekit/internal/source"
)

type fetchOptions struct {
	ref   string
	depth int
	name  string
}

func newFetchCmd(app *appContext) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch <repository-url>",
		Short: "Clone or update a repository of shared family documents in the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.ref, "ref", "", "Branch to check out (defaults to the remote HEAD)")
	cmd.Flags().IntVar(&opts.depth, "depth", 1, "Clone depth; 0 fetches the full history")
	cmd.Flags().StringVar(&opts.name, "name", "", "Cache directory name (derived from the URL by default)")

	return cmd
}

func runFetch(cmd *cobra.Command, app *appContext, url string, opts *fetchOptions) error {
	log := app.logger("fetch").WithFields(map[string]any{"url": url})
	log.Debug("fetching family repository")

	res, err := source.Fetch(cmd.Context(), source.Request{
		URL:      url,
		Ref:      opts.ref,
		Depth:    opts.depth,
		CacheDir: app.settings.CacheDir,
		Name:     opts.name,
	})
	if err != nil {
		return newCommandError("fetch", fmt.Sprintf("repository %q", url), err, "Check the URL and your network access, then retry.")
	}

	action := "Updated"
	if res.Cloned {
		action = "Cloned"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s into %s (%s)\n", action, url, res.Path, res.Head)
	for _, fam := range res.Families {
		fmt.Fprintf(out, "  %s\n", fam)
	}
	log.WithFields(map[string]any{"path": res.Path, "families": len(res.Families)}).Info("family repository ready")
	return nil
}
