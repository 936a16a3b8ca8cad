package styled

import (
	"github.com/rs/zerolog"
)

const (
	// ClassNameProp is the prop carrying class strings between components.
	ClassNameProp = "className"
	// ClassAttr is the HTML attribute ClassAttrAdapter writes.
	ClassAttr = "class"
	// AsProp overrides the rendered target for a single render.
	AsProp = "as"
)

// Adapter adapts a render target to the host platform. It is chosen once when the root
// RenderContext is built and applied to every target a styled component renders.
type Adapter interface {
	Adapt(target Component) Component
}

// AdapterFunc adapts a function to the Adapter interface.
type AdapterFunc func(target Component) Component

// Adapt implements Adapter.
func (f AdapterFunc) Adapt(target Component) Component {
	return f(target)
}

// IdentityAdapter returns targets unchanged.
var IdentityAdapter Adapter = AdapterFunc(func(target Component) Component { return target })

// ClassAttrAdapter renames className to the HTML class attribute on primitive targets.
var ClassAttrAdapter Adapter = AdapterFunc(func(target Component) Component {
	if tag, ok := target.(Tag); ok {
		return classAttrTag{tag: tag}
	}
	return target
})

type classAttrTag struct {
	tag Tag
}

func (c classAttrTag) Render(ctx RenderContext, p Props, children []Node) Node {
	if v, ok := p[ClassNameProp]; ok {
		p = p.Without(ClassNameProp)
		p[ClassAttr] = v
	}
	return c.tag.Render(ctx, p, children)
}

func (c classAttrTag) DisplayName() string {
	return c.tag.DisplayName()
}

// scopeFrame is one captured composite render in the current render pass.
type scopeFrame struct {
	owner  *Composite
	props  Props
	parent *scopeFrame
}

// RenderContext carries per-pass rendering state. It is a value; With* methods return copies and
// never affect renders sharing the original.
type RenderContext struct {
	adapter Adapter
	logger  *zerolog.Logger
	scopes  *scopeFrame
	depth   int
}

// DefaultContext returns a context with the identity adapter and a disabled logger.
func DefaultContext() RenderContext {
	return RenderContext{adapter: IdentityAdapter}
}

// NewRenderContext returns a root context using adapter.
func NewRenderContext(adapter Adapter) RenderContext {
	return DefaultContext().WithAdapter(adapter)
}

// WithAdapter returns a copy using adapter. A nil adapter selects IdentityAdapter.
func (r RenderContext) WithAdapter(adapter Adapter) RenderContext {
	if adapter == nil {
		adapter = IdentityAdapter
	}
	r.adapter = adapter
	return r
}

// WithLogger returns a copy logging render diagnostics to logger.
func (r RenderContext) WithLogger(logger zerolog.Logger) RenderContext {
	r.logger = &logger
	return r
}

// Adapter returns the configured adapter.
func (r RenderContext) Adapter() Adapter {
	if r.adapter == nil {
		return IdentityAdapter
	}
	return r.adapter
}

// Logger returns the diagnostics logger, a disabled one when none was set.
func (r RenderContext) Logger() *zerolog.Logger {
	if r.logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return r.logger
}

// Depth returns the component nesting depth of the current render.
func (r RenderContext) Depth() int {
	return r.depth
}

func (r RenderContext) withScope(owner *Composite, p Props) RenderContext {
	r.scopes = &scopeFrame{owner: owner, props: p, parent: r.scopes}
	return r
}

// captured returns the props captured by the nearest enclosing render of owner.
func (r RenderContext) captured(owner *Composite) (Props, bool) {
	for frame := r.scopes; frame != nil; frame = frame.parent {
		if frame.owner == owner {
			return frame.props, true
		}
	}
	return nil, false
}
