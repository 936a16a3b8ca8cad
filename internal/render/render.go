// Package render writes expanded styled trees as HTML or as a terminal outline.
package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alexisbeaulieu97/stylekit/pkg/styled"
)

// Format selects an output writer.
type Format string

const (
	FormatHTML Format = "html"
	FormatTree Format = "tree"
)

// Formats lists the supported formats.
var Formats = []Format{FormatHTML, FormatTree}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatTree:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected html or tree)", s)
	}
}

// Adapter returns the host adapter matching the format. HTML output renames className to class
// when primitives render; the outline keeps component prop names.
func (f Format) Adapter() styled.Adapter {
	if f == FormatHTML {
		return styled.ClassAttrAdapter
	}
	return styled.IdentityAdapter
}

// Options configure Write.
type Options struct {
	HTML  HTMLOptions
	Theme *Theme
}

// Write expands node with ctx and writes it in format.
func Write(ctx styled.RenderContext, w io.Writer, format Format, node styled.Node, opts Options) error {
	expanded, err := styled.Expand(ctx, node)
	if err != nil {
		return err
	}

	switch format {
	case FormatTree:
		theme := opts.Theme
		if theme == nil {
			t := PlainTheme()
			theme = &t
		}
		return WriteTree(w, expanded, *theme)
	default:
		return WriteHTML(w, expanded, opts.HTML)
	}
}

// Title turns a family or example name such as "large-card" into "Large Card".
func Title(name string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(strings.Join(strings.Fields(words), " "))
}
