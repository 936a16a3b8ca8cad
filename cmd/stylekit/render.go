package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stylekit/internal/family"
	"github.com/alexisbeaulieu97/stylekit/internal/render"
	"github.com/alexisbeaulieu97/stylekit/pkg/styled"
)

type renderOptions struct {
	example  string
	format   string
	document bool
	indent   int
	output   string
}

func newRenderCmd(app *appContext) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <family-file>",
		Short: "Render an example of a family as HTML or as an outline",
		Example: `  stylekit render card.yaml --example large
  stylekit render card.yaml --example large --format tree`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.example, "example", "e", "", "Example to render (optional when the family has one example)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: html or tree (defaults to the format setting)")
	cmd.Flags().BoolVar(&opts.document, "document", false, "Wrap HTML output in a complete document")
	cmd.Flags().IntVar(&opts.indent, "indent", 0, "Indent nested HTML elements by this many spaces")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, app *appContext, path string, opts *renderOptions) error {
	format, err := app.format(opts.format)
	if err != nil {
		return newCommandError("render", fmt.Sprintf("format %q", opts.format), err, "Use --format html or --format tree.")
	}

	lib, err := app.loadLibrary(path)
	if err != nil {
		return newCommandError("render", fmt.Sprintf("loading family %q", path), err, "Run 'stylekit validate' on the file for details.")
	}

	example, err := pickExample(lib, opts.example)
	if err != nil {
		return newCommandError("render", fmt.Sprintf("family %q", lib.Name()), err, "Pass --example with one of the family's examples.")
	}

	var theme *render.Theme
	if opts.output == "" && format == render.FormatTree && isTerminal(cmd.OutOrStdout()) {
		t := render.NewTheme(lipgloss.NewRenderer(cmd.OutOrStdout()))
		theme = &t
	}

	out, err := app.renderExample(lib, example, format, render.Options{
		HTML: render.HTMLOptions{
			Document: opts.document,
			Title:    render.Title(lib.Name() + " " + example),
			Indent:   strings.Repeat(" ", max(opts.indent, 0)),
		},
		Theme: theme,
	})
	if err != nil {
		return newCommandError("render", fmt.Sprintf("example %q", example), err, "Check the example's component and slot references.")
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0o644); err != nil {
			return newCommandError("render", fmt.Sprintf("writing %q", opts.output), err, "Check that the directory exists and is writable.")
		}
		app.logger("render").WithFields(map[string]any{"example": example, "output": opts.output}).Info("example rendered")
		return nil
	}

	_, err = io.Copy(cmd.OutOrStdout(), bytes.NewReader(out))
	return err
}

// format resolves a --format flag, falling back to the format setting.
func (a *appContext) format(flag string) (render.Format, error) {
	if flag == "" {
		flag = a.settings.Format
	}
	return render.ParseFormat(flag)
}

// renderExample expands the named example and returns its output, always newline terminated.
func (a *appContext) renderExample(lib *family.Library, example string, format render.Format, opts render.Options) ([]byte, error) {
	node, err := lib.Example(example)
	if err != nil {
		return nil, err
	}

	ctx := styled.NewRenderContext(format.Adapter()).WithLogger(*a.logger("render").Zerolog())

	var buf bytes.Buffer
	if err := render.Write(ctx, &buf, format, node, opts); err != nil {
		return nil, err
	}
	if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func pickExample(lib *family.Library, name string) (string, error) {
	names := lib.ExampleNames()
	if name == "" {
		switch len(names) {
		case 0:
			return "", fmt.Errorf("family has no examples")
		case 1:
			return names[0], nil
		default:
			return "", fmt.Errorf("family has %d examples: %s", len(names), strings.Join(names, ", "))
		}
	}
	for _, candidate := range names {
		if candidate == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown example %q (available: %s)", name, strings.Join(names, ", "))
}
