package render

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/net/html"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
	"github.com/alexisbeaulieu97/stylekit/pkg/styled"
	"github.com/alexisbeaulieu97/stylekit/pkg/variant"
)

// HTMLOptions control HTML output.
type HTMLOptions struct {
	// Document wraps the output in a complete HTML document.
	Document bool
	// Title is the document title. Ignored unless Document is set.
	Title string
	// Indent, when set, puts element-only children on their own lines.
	Indent string
}

// Props that never become attributes.
var skipProps = map[string]struct{}{
	"ref":         {},
	"key":         {},
	"children":    {},
	styled.AsProp: {},
}

// Prop names that differ from their attribute.
var attrNames = map[string]string{
	styled.ClassNameProp: styled.ClassAttr,
	"htmlFor":            "for",
}

// WriteHTML writes an expanded tree as HTML.
func WriteHTML(w io.Writer, node styled.Node, opts HTMLOptions) error {
	nodes, err := ToHTML(node)
	if err != nil {
		return err
	}

	if opts.Indent != "" {
		for _, n := range nodes {
			indent(n, opts.Indent, 0)
		}
	}

	if opts.Document {
		nodes = []*html.Node{document(opts.Title, nodes)}
	}

	var buf bytes.Buffer
	for i, n := range nodes {
		if i > 0 && opts.Indent != "" {
			buf.WriteByte('\n')
		}
		if err := html.Render(&buf, n); err != nil {
			return stylekiterrors.NewRenderError(n.Data, "write html", err)
		}
	}
	if opts.Indent != "" || opts.Document {
		buf.WriteByte('\n')
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// ToHTML converts an expanded tree to detached html nodes.
func ToHTML(node styled.Node) ([]*html.Node, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil
	case styled.Text:
		return []*html.Node{{Type: html.TextNode, Data: string(n)}}, nil
	case styled.Fragment:
		var out []*html.Node
		for _, child := range n {
			converted, err := ToHTML(child)
			if err != nil {
				return nil, err
			}
			out = append(out, converted...)
		}
		return out, nil
	case *styled.Element:
		if n == nil {
			return nil, nil
		}
		el := &html.Node{Type: html.ElementNode, Data: n.Tag, Attr: attributes(n.Props)}
		for _, child := range n.Children {
			converted, err := ToHTML(child)
			if err != nil {
				return nil, err
			}
			for _, c := range converted {
				el.AppendChild(c)
			}
		}
		return []*html.Node{el}, nil
	case *styled.Instance:
		name := ""
		if n != nil && n.Component != nil {
			name = n.Component.DisplayName()
		}
		return nil, stylekiterrors.NewRenderError(name, "tree is not expanded", nil)
	default:
		return nil, stylekiterrors.NewRenderError("", fmt.Sprintf("unsupported node type %T", node), nil)
	}
}

// attributes converts props to attributes sorted by name. False and nil values are omitted;
// true renders as an empty attribute.
func attributes(p styled.Props) []html.Attribute {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]html.Attribute, 0, len(keys))
	for _, key := range keys {
		if _, skip := skipProps[key]; skip {
			continue
		}
		name := key
		if renamed, ok := attrNames[key]; ok {
			name = renamed
		}

		switch v := p[key].(type) {
		case nil:
		case bool:
			if v {
				attrs = append(attrs, html.Attribute{Key: name})
			}
		case styled.Component, styled.Node:
		default:
			if reflect.ValueOf(v).Kind() == reflect.Func {
				continue
			}
			s, _ := variant.Key(v)
			if name == styled.ClassAttr && strings.TrimSpace(s) == "" {
				continue
			}
			attrs = append(attrs, html.Attribute{Key: name, Val: s})
		}
	}
	return attrs
}

// indent inserts whitespace text nodes between children of elements that hold only elements.
func indent(n *html.Node, unit string, depth int) {
	if n.Type != html.ElementNode || n.FirstChild == nil {
		return
	}

	elementsOnly := true
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			elementsOnly = false
		}
		indent(c, unit, depth+1)
	}
	if !elementsOnly {
		return
	}

	inner := "\n" + strings.Repeat(unit, depth+1)
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	for _, c := range children {
		n.InsertBefore(&html.Node{Type: html.TextNode, Data: inner}, c)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: "\n" + strings.Repeat(unit, depth)})
}

func document(title string, body []*html.Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := &html.Node{Type: html.ElementNode, Data: "html", Attr: []html.Attribute{{Key: "lang", Val: "en"}}}
	head := &html.Node{Type: html.ElementNode, Data: "head"}
	head.AppendChild(&html.Node{Type: html.ElementNode, Data: "meta", Attr: []html.Attribute{{Key: "charset", Val: "utf-8"}}})
	if title != "" {
		t := &html.Node{Type: html.ElementNode, Data: "title"}
		t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
		head.AppendChild(t)
	}
	bodyEl := &html.Node{Type: html.ElementNode, Data: "body"}
	for _, n := range body {
		bodyEl.AppendChild(n)
	}

	root.AppendChild(head)
	root.AppendChild(bodyEl)
	doc.AppendChild(root)
	return doc
}
