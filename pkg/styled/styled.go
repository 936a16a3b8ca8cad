// Package styled builds components whose class attribute is computed from variant props.
//
// # Styled components
//
// New wraps a target (a primitive Tag or another Component) with a variant table, default
// variants and compound rules. Each render partitions the incoming props into variant props and
// pass-through props, evaluates the class string, and renders the target with the pass-through
// props plus the computed className:
//
//	button := styled.Button.Styled("inline-flex rounded", styled.Config{
//		Variants: variant.NewTable(
//			variant.Classes("size", map[string]string{"sm": "text-sm", "lg": "text-lg"}),
//		),
//		DefaultVariants: styled.Props{"size": "sm"},
//	})
//
// # Slots
//
// Slots binds a frame component to named slot components. Slots built from the same
// props.Definition as the composite receive the frame's props underneath their own:
//
//	card := styled.Slots(frame, styled.SlotConfig{
//		Context: cardProps,
//		Slots:   map[string]styled.Component{"Title": title, "Icon": icon},
//	})
//	tree := styled.El(card, styled.Props{"size": "lg"},
//		styled.El(card.Slot("Title"), nil, styled.Text("Hello")),
//	)
//
// # Rendering
//
// Expand renders a tree of instances into host elements. Captured slot props travel down the
// tree inside the RenderContext of that pass only, so concurrent renders never share them.
package styled

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/stylekit/pkg/classmerge"
	"github.com/alexisbeaulieu97/stylekit/pkg/props"
	"github.com/alexisbeaulieu97/stylekit/pkg/variant"
)

// Config describes a styled component. It is read once by New.
type Config struct {
	// Name overrides the derived display name.
	Name string
	// Context declares the prop vocabulary; its identity drives slot propagation and its
	// defaults are used when DefaultVariants is nil.
	Context *props.Definition
	Base    string
	// Variants is the variant table. An empty table yields base class plus caller className.
	Variants variant.Table
	// StyleOnly names variants never forwarded to a component target.
	StyleOnly       []string
	DefaultProps    Props
	DefaultVariants Props
	Compound        []variant.Compound
	// Merge replaces classmerge.Merge.
	Merge classmerge.MergeFunc
	// Logger receives construction diagnostics. Nil disables them.
	Logger *zerolog.Logger
}

// StyledComponent is an immutable component produced by New.
type StyledComponent struct {
	name         string
	target       Component
	primitive    bool
	context      *props.Definition
	base         string
	table        variant.Table
	variantKeys  map[string]struct{}
	styleOnly    map[string]struct{}
	defaultProps Props
	defaults     Props
	compound     []variant.Compound
	merge        classmerge.MergeFunc
}

var _ Component = (*StyledComponent)(nil)
var _ Contextual = (*StyledComponent)(nil)

// New builds a styled component around target.
func New(target Component, cfg Config) *StyledComponent {
	c := &StyledComponent{
		target:       target,
		context:      cfg.Context,
		base:         cfg.Base,
		table:        cfg.Variants,
		variantKeys:  make(map[string]struct{}, cfg.Variants.Len()),
		styleOnly:    make(map[string]struct{}, len(cfg.StyleOnly)),
		defaultProps: cfg.DefaultProps.Clone(),
		compound:     append([]variant.Compound(nil), cfg.Compound...),
		merge:        cfg.Merge,
	}
	if c.merge == nil {
		c.merge = classmerge.Merge
	}
	_, c.primitive = target.(Tag)

	for _, name := range cfg.Variants.Names() {
		c.variantKeys[name] = struct{}{}
	}
	for _, name := range cfg.StyleOnly {
		if c.isVariant(name) {
			c.styleOnly[name] = struct{}{}
		}
	}

	switch {
	case cfg.DefaultVariants != nil:
		c.defaults = cfg.DefaultVariants.Clone()
	case cfg.Context != nil:
		c.defaults = Props{}
		for name, value := range cfg.Context.Defaults() {
			if c.isVariant(name) {
				c.defaults[name] = value
			}
		}
	default:
		c.defaults = Props{}
	}

	c.name = displayName(cfg.Name, target)
	c.reportUnknownNames(cfg)
	return c
}

func displayName(name string, target Component) string {
	switch {
	case name != "":
		return name
	case target == nil:
		return "styled(Component)"
	}
	if tag, ok := target.(Tag); ok {
		return "styled." + string(tag)
	}
	return "styled(" + target.DisplayName() + ")"
}

// reportUnknownNames logs names that reference no variant. They are ignored at render time.
func (c *StyledComponent) reportUnknownNames(cfg Config) {
	if cfg.Logger == nil {
		return
	}
	log := cfg.Logger.With().Str("component", c.name).Logger()

	var unknown []string
	for name := range cfg.DefaultVariants {
		if !c.isVariant(name) {
			unknown = append(unknown, "default_variants."+name)
		}
	}
	for _, name := range cfg.StyleOnly {
		if !c.isVariant(name) {
			unknown = append(unknown, "style_only."+name)
		}
	}
	for _, rule := range cfg.Compound {
		for name := range rule.When {
			if !c.isVariant(name) {
				unknown = append(unknown, "compound."+name)
			}
		}
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	log.Debug().Strs("names", unknown).Msg("names do not match any variant")
}

func (c *StyledComponent) isVariant(name string) bool {
	_, ok := c.variantKeys[name]
	return ok
}

// DisplayName implements Component.
func (c *StyledComponent) DisplayName() string {
	return c.name
}

// Context implements Contextual.
func (c *StyledComponent) Context() *props.Definition {
	return c.context
}

// Target returns the configured render target.
func (c *StyledComponent) Target() Component {
	return c.target
}

// Variants returns the variant table.
func (c *StyledComponent) Variants() variant.Table {
	return c.table
}

// DefaultVariants returns a copy of the effective default variants.
func (c *StyledComponent) DefaultVariants() Props {
	return c.defaults.Clone()
}

// Resolve returns the final variant props for in: defaults overlaid with the explicit variant
// props. Non-variant keys are dropped.
func (c *StyledComponent) Resolve(in Props) Props {
	variants, _ := c.partition(in)
	return c.defaults.Merge(variants)
}

// ClassName computes the class string a render with in would produce, caller className included.
func (c *StyledComponent) ClassName(in Props) string {
	variants, _ := c.partition(in)
	return c.className(variants, in)
}

// Explain returns the evaluation trace for in, excluding the caller className.
func (c *StyledComponent) Explain(in Props) variant.Trace {
	variants, _ := c.partition(in)
	return variant.Explain(c.merge, c.defaults.Merge(variants), c.table, c.defaults, c.compound, c.base)
}

// Render implements Component.
func (c *StyledComponent) Render(ctx RenderContext, in Props, children []Node) Node {
	variants, rest := c.partition(in)
	class := c.className(variants, in)

	target := c.target
	if override := asTarget(in[AsProp]); override != nil {
		target = override
	}
	target = ctx.Adapter().Adapt(target)

	forward := rest
	if !c.primitive {
		for name, value := range variants {
			if _, hidden := c.styleOnly[name]; !hidden {
				forward[name] = value
			}
		}
	}

	out := c.defaultProps.Merge(forward)
	for name := range out {
		if c.hiddenFromTarget(name) {
			delete(out, name)
		}
	}
	if class != "" {
		out[ClassNameProp] = class
	} else {
		delete(out, ClassNameProp)
	}
	return &Instance{Component: target, Props: out, Children: children}
}

// hiddenFromTarget reports whether name must not reach the target: any variant for a primitive
// target, a style-only variant for a component target.
func (c *StyledComponent) hiddenFromTarget(name string) bool {
	if c.primitive {
		return c.isVariant(name)
	}
	_, hidden := c.styleOnly[name]
	return hidden
}

func (c *StyledComponent) className(variants Props, in Props) string {
	final := c.defaults.Merge(variants)
	computed := variant.EvaluateWith(c.merge, final, c.table, c.defaults, c.compound, c.base)
	caller := ""
	if v, ok := in.Value(ClassNameProp); ok {
		caller, _ = variant.Key(v)
	}
	return c.merge(computed, caller)
}

// partition splits in into variant props and pass-through props. as and className are
// consumed and appear in neither.
func (c *StyledComponent) partition(in Props) (Props, Props) {
	variants := make(Props, len(c.variantKeys))
	rest := make(Props, len(in))
	for key, value := range in {
		switch {
		case key == AsProp || key == ClassNameProp:
		case c.isVariant(key):
			variants[key] = value
		default:
			rest[key] = value
		}
	}
	return variants, rest
}

func asTarget(v any) Component {
	switch t := v.(type) {
	case Component:
		return t
	case string:
		if t == "" {
			return nil
		}
		return Tag(t)
	default:
		return nil
	}
}
