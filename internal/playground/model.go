// Package playground is an interactive terminal view for trying variant values of a family's
// styled components.
package playground

import (
	"context"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/stylekit/internal/family"
	"github.com/alexisbeaulieu97/stylekit/internal/render"
	"github.com/alexisbeaulieu97/stylekit/pkg/props"
	"github.com/alexisbeaulieu97/stylekit/pkg/styled"
	"github.com/alexisbeaulieu97/stylekit/pkg/variant"
)

// Options configure a Model.
type Options struct {
	Theme *render.Theme
	Keys  *KeyMap
}

// entry is one styled component and the values chosen for it so far.
type entry struct {
	name      string
	component *styled.StyledComponent
	rows      []row
}

// row is one variant of a component. choice indexes options; 0 leaves the variant unset.
type row struct {
	name    string
	options []any
	choice  int
}

// Model is the playground state.
type Model struct {
	library *family.Library
	entries []entry
	current int
	cursor  int
	explain bool
	theme   render.Theme
	keys    KeyMap
	width   int
	height  int
}

// New builds a model over the styled components of lib. Composites have no variants of their
// own and are not listed.
func New(lib *family.Library, opts Options) (Model, error) {
	m := Model{library: lib, theme: render.PlainTheme(), keys: DefaultKeyMap()}
	if opts.Theme != nil {
		m.theme = *opts.Theme
	}
	if opts.Keys != nil {
		m.keys = *opts.Keys
	}

	for _, name := range lib.ComponentNames() {
		component, ok := lib.Styled(name)
		if !ok {
			continue
		}
		m.entries = append(m.entries, entry{name: name, component: component, rows: rowsFor(component)})
	}
	if len(m.entries) == 0 {
		return Model{}, fmt.Errorf("family %q has no styled components", lib.Name())
	}
	return m, nil
}

func rowsFor(component *styled.StyledComponent) []row {
	table := component.Variants()
	rows := make([]row, 0, table.Len())
	for _, v := range table.Variants() {
		rows = append(rows, row{name: v.Name, options: append([]any{nil}, optionsFor(component.Context(), v)...)})
	}
	return rows
}

// optionsFor lists the values offered for v: the context domain when it enumerates values,
// otherwise the keys of the class map.
func optionsFor(def *props.Definition, v variant.Variant) []any {
	if def != nil {
		if domain, ok := def.Domain(v.Name); ok {
			switch domain.Kind() {
			case props.KindOneOf, props.KindLiteral:
				return domain.Values()
			case props.KindBool:
				return []any{true, false}
			case props.KindNumber:
				if v.IsFunc() {
					return []any{0, 1, 2, 4, 8}
				}
			}
		}
	}

	keys := make([]string, 0, len(v.Classes))
	for k := range v.Classes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the name of the component being edited.
func (m Model) Selected() string {
	return m.entries[m.current].name
}

// Props returns the variant props chosen for the current component.
func (m Model) Props() styled.Props {
	out := styled.Props{}
	for _, r := range m.entries[m.current].rows {
		if r.choice > 0 {
			out[r.name] = r.options[r.choice]
		}
	}
	return out
}

// ClassName returns the class string the current component renders with the chosen props.
func (m Model) ClassName() string {
	return m.entries[m.current].component.ClassName(m.Props())
}

// Run starts the playground on the terminal and blocks until it exits or ctx is done.
func Run(ctx context.Context, lib *family.Library, opts Options, programOpts ...tea.ProgramOption) error {
	m, err := New(lib, opts)
	if err != nil {
		return err
	}
	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, programOpts...)
	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		return fmt.Errorf("run playground: %w", err)
	}
	return nil
}
