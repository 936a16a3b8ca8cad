package family

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/stylekit/pkg/classmerge"
	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
	"github.com/alexisbeaulieu97/stylekit/pkg/props"
	"github.com/alexisbeaulieu97/stylekit/pkg/styled"
	"github.com/alexisbeaulieu97/stylekit/pkg/variant"
)

// Options tune how a family is built.
type Options struct {
	// Merge replaces classmerge.Merge in every built component.
	Merge classmerge.MergeFunc
	// Logger receives construction diagnostics.
	Logger *zerolog.Logger
}

// Library holds the definitions and components built from one family document.
type Library struct {
	family      *Family
	definitions map[string]*props.Definition
	styled      map[string]*styled.StyledComponent
	composites  map[string]*styled.Composite
}

// Build validates fam and constructs its definitions, styled components and composites.
func Build(fam *Family, opts Options) (*Library, error) {
	if err := Validate(fam); err != nil {
		return nil, err
	}

	lib := &Library{
		family:      fam,
		definitions: make(map[string]*props.Definition, len(fam.Contexts)),
		styled:      make(map[string]*styled.StyledComponent, len(fam.Components)),
		composites:  make(map[string]*styled.Composite, len(fam.Composites)),
	}

	for _, ctx := range fam.Contexts {
		lib.definitions[ctx.Name] = definitionFor(ctx)
	}

	for _, comp := range fam.Components {
		lib.buildComponent(comp.Name, opts)
	}

	for _, comp := range fam.Composites {
		slots := make(map[string]styled.Component, len(comp.Slots))
		for slot, target := range comp.Slots {
			slots[slot] = lib.styled[target]
		}
		lib.composites[comp.Name] = styled.Slots(lib.styled[comp.Frame], styled.SlotConfig{
			Context: lib.definitions[comp.Context],
			Slots:   slots,
		})
	}

	return lib, nil
}

// buildComponent builds name and, first, any component it targets. Target cycles are rejected
// by Validate.
func (l *Library) buildComponent(name string, opts Options) *styled.StyledComponent {
	if built, ok := l.styled[name]; ok {
		return built
	}
	spec, _ := findComponent(l.family, name)

	var target styled.Component = styled.Tag(spec.Target)
	if _, ok := findComponent(l.family, spec.Target); ok {
		target = l.buildComponent(spec.Target, opts)
	}

	variants := make([]variant.Variant, 0, len(spec.Variants))
	for _, v := range spec.Variants {
		if v.Pattern != "" {
			variants = append(variants, variant.Computed(v.Name, patternFunc(v.Pattern)))
			continue
		}
		variants = append(variants, variant.Classes(v.Name, v.Classes))
	}

	compound := make([]variant.Compound, 0, len(spec.Compound))
	for _, rule := range spec.Compound {
		compound = append(compound, variant.Compound{
			When:      variant.Props(rule.When),
			Class:     rule.Class,
			DefaultTo: propsOrNil(rule.DefaultTo),
		})
	}

	built := styled.New(target, styled.Config{
		Name:            spec.Name,
		Context:         l.definitions[spec.Context],
		Base:            spec.Base,
		Variants:        variant.NewTable(variants...),
		StyleOnly:       spec.StyleOnly,
		DefaultProps:    variant.Props(spec.DefaultProps),
		DefaultVariants: propsOrNil(spec.DefaultVariants),
		Compound:        compound,
		Merge:           opts.Merge,
		Logger:          opts.Logger,
	})
	l.styled[name] = built
	return built
}

// patternFunc substitutes the normalized prop value into pattern. Undefined values emit nothing.
func patternFunc(pattern string) variant.Func {
	return func(value any, _ variant.Props, _ variant.Table) string {
		key, ok := variant.Key(value)
		if !ok || key == "" {
			return ""
		}
		return strings.ReplaceAll(pattern, ValuePlaceholder, key)
	}
}

func propsOrNil(m map[string]any) variant.Props {
	if m == nil {
		return nil
	}
	return variant.Props(m)
}

// definitionFor builds the props definition a context declares.
func definitionFor(ctx Context) *props.Definition {
	fields := make([]props.Field, 0, len(ctx.Fields))
	for _, f := range ctx.Fields {
		fields = append(fields, props.F(f.Name, f.Domain()))
	}
	return props.Define(fields...)
}

// Name returns the family name.
func (l *Library) Name() string {
	return l.family.Name
}

// Family returns the source document.
func (l *Library) Family() *Family {
	return l.family
}

// Definition returns the definition built for the named context.
func (l *Library) Definition(name string) (*props.Definition, bool) {
	def, ok := l.definitions[name]
	return def, ok
}

// Component returns the named styled component or composite.
func (l *Library) Component(name string) (styled.Component, bool) {
	if c, ok := l.styled[name]; ok {
		return c, true
	}
	if c, ok := l.composites[name]; ok {
		return c, true
	}
	return nil, false
}

// Styled returns the named styled component.
func (l *Library) Styled(name string) (*styled.StyledComponent, bool) {
	c, ok := l.styled[name]
	return c, ok
}

// Composite returns the named composite.
func (l *Library) Composite(name string) (*styled.Composite, bool) {
	c, ok := l.composites[name]
	return c, ok
}

// ComponentNames lists styled components then composites in document order.
func (l *Library) ComponentNames() []string {
	names := make([]string, 0, len(l.family.Components)+len(l.family.Composites))
	for _, comp := range l.family.Components {
		names = append(names, comp.Name)
	}
	for _, comp := range l.family.Composites {
		names = append(names, comp.Name)
	}
	return names
}

// ExampleNames lists examples in document order.
func (l *Library) ExampleNames() []string {
	names := make([]string, 0, len(l.family.Examples))
	for _, ex := range l.family.Examples {
		names = append(names, ex.Name)
	}
	return names
}

// Example builds the render tree of the named example.
func (l *Library) Example(name string) (styled.Node, error) {
	for _, ex := range l.family.Examples {
		if ex.Name == name {
			return l.Node(ex.Root)
		}
	}
	return nil, stylekiterrors.NewRenderError("", fmt.Sprintf("unknown example %q", name), nil)
}

// Node builds a render tree from a node spec.
func (l *Library) Node(spec NodeSpec) (styled.Node, error) {
	return l.node(spec, nil)
}

func (l *Library) node(spec NodeSpec, composites []Composite) (styled.Node, error) {
	if spec.Text != "" {
		return styled.Text(spec.Text), nil
	}

	var component styled.Component
	switch {
	case spec.Component != "":
		c, ok := l.Component(spec.Component)
		if !ok {
			return nil, stylekiterrors.NewRenderError(spec.Component, "unknown component", nil)
		}
		component = c
		if composite, ok := findComposite(l.family, spec.Component); ok {
			composites = append(composites, composite)
		}
	case spec.Slot != "":
		owner, slot, err := resolveSlot(l.family, spec.Slot, composites)
		if err != nil {
			return nil, stylekiterrors.NewRenderError(spec.Slot, "unknown slot", err)
		}
		component = l.composites[owner.Name].Slot(slot)
	}

	children := make([]styled.Node, 0, len(spec.Children))
	for _, child := range spec.Children {
		node, err := l.node(child, composites)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}

	p := variant.Props(spec.Props).Clone()
	if component == nil {
		return styled.H(spec.Tag, p, children...), nil
	}
	return styled.El(component, p, children...), nil
}
