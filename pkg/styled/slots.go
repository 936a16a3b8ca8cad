package styled

import (
	"sort"

	"github.com/alexisbeaulieu97/stylekit/pkg/props"
)

// SlotConfig describes the slots of a composite.
type SlotConfig struct {
	// Context is compared by identity with each slot's own definition.
	Context *props.Definition
	Slots   map[string]Component
}

// Composite renders a frame component and exposes named slot components that can inherit the
// frame's props.
type Composite struct {
	name    string
	frame   Component
	context *props.Definition
	slots   map[string]*Slot
}

var _ Component = (*Composite)(nil)

// Slots binds frame to the configured slot components.
func Slots(frame Component, cfg SlotConfig) *Composite {
	c := &Composite{
		frame:   frame,
		context: cfg.Context,
		slots:   make(map[string]*Slot, len(cfg.Slots)),
	}

	frameName := "Frame"
	if frame != nil {
		frameName = frame.DisplayName()
	}
	c.name = "StyledSlots(" + frameName + ")"

	for name, component := range cfg.Slots {
		inner := "Component"
		if component != nil {
			inner = component.DisplayName()
		}
		c.slots[name] = &Slot{
			name:        name + "(" + inner + ")",
			composite:   c,
			component:   component,
			propagating: sharesContext(component, cfg.Context),
		}
	}
	return c
}

func sharesContext(component Component, context *props.Definition) bool {
	contextual, ok := component.(Contextual)
	if !ok {
		return false
	}
	return props.SameContext(contextual.Context(), context)
}

// DisplayName implements Component.
func (c *Composite) DisplayName() string {
	return c.name
}

// Context returns the composite's declared definition.
func (c *Composite) Context() *props.Definition {
	return c.context
}

// Frame returns the frame component.
func (c *Composite) Frame() Component {
	return c.frame
}

// Slot returns the named slot wrapper, or nil when no slot has that name.
func (c *Composite) Slot(name string) *Slot {
	return c.slots[name]
}

// Lookup returns the named slot wrapper.
func (c *Composite) Lookup(name string) (*Slot, bool) {
	s, ok := c.slots[name]
	return s, ok
}

// SlotNames returns the slot names in sorted order.
func (c *Composite) SlotNames() []string {
	names := make([]string, 0, len(c.slots))
	for name := range c.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render captures a copy of p for this render pass and renders the frame with p unchanged.
func (c *Composite) Render(_ RenderContext, p Props, children []Node) Node {
	return &scoped{
		owner: c,
		props: p.Clone(),
		child: &Instance{Component: c.frame, Props: p, Children: children},
	}
}

// Slot wraps a slot component of a Composite.
type Slot struct {
	name        string
	composite   *Composite
	component   Component
	propagating bool
}

var _ Component = (*Slot)(nil)

// DisplayName implements Component.
func (s *Slot) DisplayName() string {
	return s.name
}

// Component returns the wrapped slot component.
func (s *Slot) Component() Component {
	return s.component
}

// Propagates reports whether the slot receives the composite's props.
func (s *Slot) Propagates() bool {
	return s.propagating
}

// Render renders the wrapped component. When the slot shares the composite's context, the props
// captured by the nearest enclosing composite render sit underneath p.
func (s *Slot) Render(ctx RenderContext, p Props, children []Node) Node {
	final := p
	if s.propagating {
		if parent, ok := ctx.captured(s.composite); ok {
			final = parent.Merge(p)
		}
	}
	return &Instance{Component: s.component, Props: final, Children: children}
}
