package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/stylekit/pkg/styled"
	"github.com/alexisbeaulieu97/stylekit/pkg/variant"
)

type resolveOptions struct {
	set     []string
	class   string
	explain bool
}

func newResolveCmd(app *appContext) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve <family-file> <component>",
		Short: "Print the class string a component renders for the given variant values",
		Example: `  stylekit resolve card.yaml CardFrame --set size=lg --set elevated=true
  stylekit resolve card.yaml Badge --class uppercase --explain`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, app, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.set, "set", "s", nil, "Variant value as name=value (repeatable)")
	cmd.Flags().StringVar(&opts.class, "class", "", "Caller className merged last")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "Show the fragment each variant contributed")

	return cmd
}

func runResolve(cmd *cobra.Command, app *appContext, path, name string, opts *resolveOptions) error {
	lib, err := app.loadLibrary(path)
	if err != nil {
		return newCommandError("resolve", fmt.Sprintf("loading family %q", path), err, "Run 'stylekit validate' on the file for details.")
	}

	component, ok := lib.Styled(name)
	if !ok {
		if _, isComposite := lib.Composite(name); isComposite {
			return newCommandError("resolve", fmt.Sprintf("component %q", name), errors.New("composites have no variants of their own"), "Resolve the composite's frame component instead.")
		}
		return newCommandError("resolve", fmt.Sprintf("component %q", name), errors.New("not found"), "Available components: "+strings.Join(lib.ComponentNames(), ", "))
	}

	in, err := parseAssignments(opts.set)
	if err != nil {
		return newCommandError("resolve", "parsing --set values", err, "Use --set name=value, e.g. --set size=lg.")
	}
	if def := component.Context(); def != nil {
		for key, value := range in {
			if _, declared := def.Domain(key); declared && !def.Validate(key, value) {
				return newCommandError("resolve", fmt.Sprintf("value %v for %q", value, key), errors.New("value is outside the context domain"), "Use one of the values declared for the context.")
			}
		}
	}
	if opts.class != "" {
		in[styled.ClassNameProp] = opts.class
	}

	if log := app.logger("resolve"); log.Enabled(zerolog.DebugLevel) {
		log.WithFields(map[string]any{"name": name, "props": fmt.Sprint(in)}).Debug("resolving class")
	}

	out := cmd.OutOrStdout()
	if opts.explain {
		writeTrace(out, component.Explain(in))
	}
	class, err := renderedClass(component, in)
	if err != nil {
		return newCommandError("resolve", fmt.Sprintf("rendering %q", name), err, "Check the component's target chain.")
	}
	_, err = fmt.Fprintln(out, class)
	return err
}

// renderedClass renders component through its target chain and returns the class of the
// resulting element.
func renderedClass(component *styled.StyledComponent, in styled.Props) (string, error) {
	node, err := styled.Expand(styled.DefaultContext(), styled.El(component, in))
	if err != nil {
		return "", err
	}
	if el, ok := node.(*styled.Element); ok {
		return el.ClassName(), nil
	}
	return component.ClassName(in), nil
}

// parseAssignments turns name=value pairs into props. Values are decoded as YAML scalars so
// true and 2 become a bool and a number.
func parseAssignments(pairs []string) (styled.Props, error) {
	out := make(styled.Props, len(pairs))
	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid assignment %q", pair)
		}

		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("decode value of %q: %w", key, err)
		}
		switch value.(type) {
		case nil, map[string]any, []any:
			value = raw
		}
		out[key] = value
	}
	return out, nil
}

func writeTrace(w io.Writer, trace variant.Trace) {
	rows := [][2]string{{"base", trace.Base}}
	for _, f := range trace.Fragments {
		value := "-"
		if key, ok := variant.Key(f.Value); ok {
			value = key
		}
		rows = append(rows, [2]string{f.Variant + "=" + value, f.Class})
	}
	if trace.Compound >= 0 {
		rows = append(rows, [2]string{fmt.Sprintf("compound #%d", trace.Compound), trace.CompoundClass})
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}
	for _, row := range rows {
		class := row[1]
		if class == "" {
			class = "-"
		}
		fmt.Fprintf(w, "%-*s  %s\n", width, row[0], class)
	}
}
