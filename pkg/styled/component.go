package styled

import (
	"github.com/alexisbeaulieu97/stylekit/pkg/props"
)

// Component renders props and children into a node for one render pass.
type Component interface {
	Render(ctx RenderContext, props Props, children []Node) Node
	DisplayName() string
}

// Contextual is implemented by components built from a props.Definition.
type Contextual interface {
	Context() *props.Definition
}

// Tag is a primitive element kind. Rendering a Tag yields an *Element.
type Tag string

// Primitive element kinds with dedicated shortcuts.
const (
	A        Tag = "a"
	Button   Tag = "button"
	Div      Tag = "div"
	H1       Tag = "h1"
	H2       Tag = "h2"
	H3       Tag = "h3"
	H4       Tag = "h4"
	H5       Tag = "h5"
	H6       Tag = "h6"
	Img      Tag = "img"
	Input    Tag = "input"
	Label    Tag = "label"
	Li       Tag = "li"
	Nav      Tag = "nav"
	Ol       Tag = "ol"
	P        Tag = "p"
	Span     Tag = "span"
	Svg      Tag = "svg"
	Textarea Tag = "textarea"
	Ul       Tag = "ul"
)

// Tags lists the shortcut tags.
var Tags = []Tag{A, Button, Div, H1, H2, H3, H4, H5, H6, Img, Input, Label, Li, Nav, Ol, P, Span, Svg, Textarea, Ul}

// Render implements Component.
func (t Tag) Render(_ RenderContext, p Props, children []Node) Node {
	return &Element{Tag: string(t), Props: p, Children: children}
}

// DisplayName implements Component.
func (t Tag) DisplayName() string {
	return string(t)
}

// Styled builds a styled component rendering this tag with base as its base class.
func (t Tag) Styled(base string, cfg Config) *StyledComponent {
	cfg.Base = base
	return New(t, cfg)
}

// RenderFunc adapts a function to the Component interface.
type RenderFunc func(ctx RenderContext, props Props, children []Node) Node

// Func names a RenderFunc.
func Func(name string, fn RenderFunc) Component {
	return funcComponent{name: name, fn: fn}
}

type funcComponent struct {
	name string
	fn   RenderFunc
}

func (f funcComponent) Render(ctx RenderContext, p Props, children []Node) Node {
	if f.fn == nil {
		return nil
	}
	return f.fn(ctx, p, children)
}

func (f funcComponent) DisplayName() string {
	if f.name == "" {
		return "Component"
	}
	return f.name
}
