package styled

import (
	"fmt"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

// MaxDepth bounds component nesting during Expand.
const MaxDepth = 256

// Expand renders every Instance in node depth-first and returns a tree made only of *Element,
// Text and Fragment values. Nested fragments are flattened into their parent's children.
func Expand(ctx RenderContext, node Node) (Node, error) {
	nodes, err := expand(ctx, node)
	if err != nil {
		return nil, err
	}
	switch len(nodes) {
	case 0:
		return nil, nil
	case 1:
		return nodes[0], nil
	default:
		return Fragment(nodes), nil
	}
}

func expand(ctx RenderContext, node Node) ([]Node, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil
	case Text:
		return []Node{n}, nil
	case *Element:
		if n == nil {
			return nil, nil
		}
		children, err := expandAll(ctx, n.Children)
		if err != nil {
			return nil, err
		}
		return []Node{&Element{Tag: n.Tag, Props: n.Props.Clone(), Children: children}}, nil
	case Fragment:
		return expandAll(ctx, n)
	case *scoped:
		return expand(ctx.withScope(n.owner, n.props), n.child)
	case *Instance:
		if n == nil {
			return nil, nil
		}
		if n.Component == nil {
			return nil, stylekiterrors.NewRenderError("", "instance has no component", nil)
		}
		if slot, ok := n.Component.(*Slot); ok && slot == nil {
			return nil, stylekiterrors.NewRenderError("", "unknown slot", nil)
		}
		name := n.Component.DisplayName()
		if ctx.depth >= MaxDepth {
			return nil, stylekiterrors.NewRenderError(name, fmt.Sprintf("component nesting exceeds %d", MaxDepth), nil)
		}
		ctx.depth++
		if ctx.logger != nil {
			ctx.logger.Trace().Str("component", name).Int("depth", ctx.depth).Msg("render")
		}
		return expand(ctx, n.Component.Render(ctx, n.Props.Clone(), n.Children))
	default:
		return nil, stylekiterrors.NewRenderError("", fmt.Sprintf("unsupported node type %T", node), nil)
	}
}

func expandAll(ctx RenderContext, nodes []Node) ([]Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]Node, 0, len(nodes))
	for _, child := range nodes {
		expanded, err := expand(ctx, child)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}
