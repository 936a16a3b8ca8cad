package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
	"github.com/alexisbeaulieu97/stylekit/pkg/styled"
	"github.com/alexisbeaulieu97/stylekit/pkg/variant"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	guideMid   = "│   "
	guideLast  = "    "
)

// WriteTree writes an expanded tree as an indented outline: one line per element with its
// class string and remaining attributes, text nodes quoted.
func WriteTree(w io.Writer, node styled.Node, theme Theme) error {
	roots, err := flatten(node)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, root := range roots {
		writeTreeNode(&b, root, "", "", theme)
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func writeTreeNode(b *strings.Builder, node styled.Node, prefix, branch string, theme Theme) {
	b.WriteString(theme.Paint(theme.Guide, prefix+branch))
	b.WriteString(treeLabel(node, theme))
	b.WriteByte('\n')

	el, ok := node.(*styled.Element)
	if !ok {
		return
	}
	children, _ := flatten(styled.Fragment(el.Children))

	childPrefix := prefix
	switch branch {
	case branchMid:
		childPrefix += guideMid
	case branchLast:
		childPrefix += guideLast
	}

	for i, child := range children {
		next := branchMid
		if i == len(children)-1 {
			next = branchLast
		}
		writeTreeNode(b, child, childPrefix, next, theme)
	}
}

func treeLabel(node styled.Node, theme Theme) string {
	switch n := node.(type) {
	case styled.Text:
		return theme.Paint(theme.Text, strconv.Quote(string(n)))
	case *styled.Element:
		parts := []string{theme.Paint(theme.Tag, "<"+n.Tag+">")}
		if class := n.ClassName(); class != "" {
			parts = append(parts, theme.Paint(theme.ClassName, class))
		}
		if attrs := treeAttrs(n.Props); attrs != "" {
			parts = append(parts, theme.Paint(theme.Attr, attrs))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%T", node)
	}
}

func treeAttrs(p styled.Props) string {
	keys := make([]string, 0, len(p))
	for key := range p {
		if key == styled.ClassNameProp || key == styled.ClassAttr {
			continue
		}
		if _, skip := skipProps[key]; skip {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		s, ok := variant.Key(p[key])
		if !ok {
			continue
		}
		parts = append(parts, key+"="+s)
	}
	return strings.Join(parts, " ")
}

// flatten lists the printable nodes of node, expanding fragments.
func flatten(node styled.Node) ([]styled.Node, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil
	case styled.Text:
		return []styled.Node{n}, nil
	case *styled.Element:
		if n == nil {
			return nil, nil
		}
		return []styled.Node{n}, nil
	case styled.Fragment:
		var out []styled.Node
		for _, child := range n {
			flat, err := flatten(child)
			if err != nil {
				return nil, err
			}
			out = append(out, flat...)
		}
		return out, nil
	case *styled.Instance:
		return nil, stylekiterrors.NewRenderError("", "tree is not expanded", nil)
	default:
		return nil, stylekiterrors.NewRenderError("", fmt.Sprintf("unsupported node type %T", node), nil)
	}
}
