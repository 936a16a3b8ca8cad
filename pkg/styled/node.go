package styled

import (
	"github.com/alexisbeaulieu97/stylekit/pkg/variant"
)

// Props is the prop bag passed to components.
type Props = variant.Props

// Node is an element of a render tree. After Expand a tree only contains *Element, Text and
// Fragment values.
type Node interface {
	isNode()
}

// Element is a primitive host element.
type Element struct {
	Tag      string
	Props    Props
	Children []Node
}

// Text is literal text content.
type Text string

// Fragment groups nodes without a wrapping element.
type Fragment []Node

// Instance is an unrendered component invocation.
type Instance struct {
	Component Component
	Props     Props
	Children  []Node
}

// scoped exposes captured composite props to the nodes below it during Expand.
type scoped struct {
	owner *Composite
	props Props
	child Node
}

func (*Element) isNode()  {}
func (Text) isNode()      {}
func (Fragment) isNode()  {}
func (*Instance) isNode() {}
func (*scoped) isNode()   {}

// El creates an Instance of component.
func El(component Component, props Props, children ...Node) *Instance {
	return &Instance{Component: component, Props: props, Children: children}
}

// H creates a host element directly.
func H(tag string, props Props, children ...Node) *Element {
	return &Element{Tag: tag, Props: props, Children: children}
}

// ClassName returns the className prop of the element as a string.
func (e *Element) ClassName() string {
	if e == nil {
		return ""
	}
	for _, key := range []string{ClassNameProp, ClassAttr} {
		if v, ok := e.Props.Value(key); ok {
			s, _ := variant.Key(v)
			return s
		}
	}
	return ""
}
