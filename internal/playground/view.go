package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/stylekit/internal/render"
	"github.com/alexisbeaulieu97/stylekit/pkg/variant"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Paint(m.theme.Heading, render.Title(m.library.Name())+" playground"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderRows())
	b.WriteString("\n")
	b.WriteString(m.theme.Paint(m.theme.Muted, "class "))
	b.WriteString(m.theme.Paint(m.theme.ClassName, m.ClassName()))
	b.WriteString("\n")
	if m.explain {
		b.WriteString("\n")
		b.WriteString(m.renderTrace())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(m.entries))
	for i, e := range m.entries {
		if i == m.current {
			tabs[i] = m.theme.Paint(m.theme.Selected, "["+e.name+"]")
			continue
		}
		tabs[i] = m.theme.Paint(m.theme.Muted, e.name)
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderRows() string {
	rows := m.entries[m.current].rows
	if len(rows) == 0 {
		return m.theme.Paint(m.theme.Muted, "  no variants") + "\n"
	}

	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.name))
	}

	var b strings.Builder
	for i, r := range rows {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		name := r.name + strings.Repeat(" ", width-lipgloss.Width(r.name))
		value := describe(r.options[r.choice])
		if i == m.cursor {
			b.WriteString(m.theme.Paint(m.theme.Selected, marker+name) + "  " + m.theme.Paint(m.theme.Selected, "‹ "+value+" ›"))
		} else {
			b.WriteString(marker + name + "  " + m.theme.Paint(m.theme.Attr, "  "+value))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTrace() string {
	trace := m.entries[m.current].component.Explain(m.Props())

	var b strings.Builder
	line := func(label, class string) {
		if class == "" {
			class = "-"
		}
		fmt.Fprintf(&b, "  %s %s\n", m.theme.Paint(m.theme.Muted, label), m.theme.Paint(m.theme.ClassName, class))
	}

	line("base", trace.Base)
	for _, f := range trace.Fragments {
		line(fragmentLabel(f), f.Class)
	}
	if trace.Compound >= 0 {
		line(fmt.Sprintf("compound #%d", trace.Compound), trace.CompoundClass)
	}
	return b.String()
}

func fragmentLabel(f variant.Fragment) string {
	return f.Variant + "=" + describe(f.Value)
}

func (m Model) renderFooter() string {
	parts := make([]string, 0, len(m.keys.footer()))
	for _, binding := range m.keys.footer() {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, m.theme.Paint(m.theme.Tag, help.Key)+" "+m.theme.Paint(m.theme.Muted, help.Desc))
	}
	return strings.Join(parts, "  ")
}

func describe(value any) string {
	if value == nil {
		return "default"
	}
	if key, ok := variant.Key(value); ok {
		return key
	}
	return fmt.Sprint(value)
}
