package render

import (
	"github.com/charmbracelet/lipgloss"
)

// ColourSet represents a semantic colour with a light and dark terminal variant.
type ColourSet struct {
	Base  lipgloss.AdaptiveColor
	Muted lipgloss.AdaptiveColor
}

// Palette describes the semantic colour slots of the outline.
type Palette struct {
	Primary ColourSet
	Accent  ColourSet
	Neutral ColourSet
	Success ColourSet
}

// Theme holds the styles used by the outline writer and the playground.
type Theme struct {
	Palette   Palette
	Tag       lipgloss.Style
	ClassName lipgloss.Style
	Attr      lipgloss.Style
	Text      lipgloss.Style
	Guide     lipgloss.Style
	Heading   lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	// Plain writes text without passing it through the styles.
	Plain bool
}

// Paint renders text with style unless the theme is plain.
func (t Theme) Paint(style lipgloss.Style, text string) string {
	if t.Plain || text == "" {
		return text
	}
	return style.Render(text)
}

// StyleApplier applies part of a theme to a style.
type StyleApplier interface {
	Apply(base lipgloss.Style, palette Palette) lipgloss.Style
}

// StyleFunc implements StyleApplier for a function type.
type StyleFunc func(lipgloss.Style, Palette) lipgloss.Style

// Apply implements StyleApplier.
func (fn StyleFunc) Apply(base lipgloss.Style, palette Palette) lipgloss.Style {
	return fn(base, palette)
}

// PaletteSlot selects a colour set from a palette.
type PaletteSlot func(Palette) ColourSet

var (
	PalettePrimary PaletteSlot = func(p Palette) ColourSet { return p.Primary }
	PaletteAccent  PaletteSlot = func(p Palette) ColourSet { return p.Accent }
	PaletteNeutral PaletteSlot = func(p Palette) ColourSet { return p.Neutral }
	PaletteSuccess PaletteSlot = func(p Palette) ColourSet { return p.Success }
)

// Style applies a series of modifiers to create a final style.
func Style(base lipgloss.Style, palette Palette, appliers ...StyleApplier) lipgloss.Style {
	for _, applier := range appliers {
		base = applier.Apply(base, palette)
	}
	return base
}

// Foreground colours text with the slot's base colour.
func Foreground(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, palette Palette) lipgloss.Style {
		return base.Foreground(slot(palette).Base)
	}
}

// MutedForeground colours text with the slot's muted colour.
func MutedForeground(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, palette Palette) lipgloss.Style {
		return base.Foreground(slot(palette).Muted)
	}
}

// Bold makes text bold.
func Bold() StyleFunc {
	return func(base lipgloss.Style, _ Palette) lipgloss.Style {
		return base.Bold(true)
	}
}

// DefaultPalette returns the stylekit colours.
func DefaultPalette() Palette {
	ac := func(light, dark string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: light, Dark: dark}
	}

	return Palette{
		Primary: ColourSet{Base: ac("#2563eb", "#60a5fa"), Muted: ac("#1d4ed8", "#93c5fd")},
		Accent:  ColourSet{Base: ac("#9333ea", "#c084fc"), Muted: ac("#7c3aed", "#d8b4fe")},
		Neutral: ColourSet{Base: ac("#475569", "#94a3b8"), Muted: ac("#64748b", "#64748b")},
		Success: ColourSet{Base: ac("#16a34a", "#4ade80"), Muted: ac("#15803d", "#86efac")},
	}
}

// NewTheme builds the coloured theme for r. Colours degrade to plain text when r's output has
// no colour support.
func NewTheme(r *lipgloss.Renderer) Theme {
	palette := DefaultPalette()
	base := r.NewStyle()

	return Theme{
		Palette:   palette,
		Tag:       Style(base, palette, Foreground(PalettePrimary), Bold()),
		ClassName: Style(base, palette, Foreground(PaletteAccent)),
		Attr:      Style(base, palette, MutedForeground(PaletteNeutral)),
		Text:      Style(base, palette, Foreground(PaletteSuccess)),
		Guide:     Style(base, palette, MutedForeground(PaletteNeutral)),
		Heading:   Style(base, palette, Foreground(PalettePrimary), Bold()).MarginBottom(1),
		Selected:  Style(base, palette, Foreground(PaletteAccent), Bold()),
		Muted:     Style(base, palette, MutedForeground(PaletteNeutral)),
	}
}

// PlainTheme returns a theme without any styling.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Palette:   DefaultPalette(),
		Tag:       plain,
		ClassName: plain,
		Attr:      plain,
		Text:      plain,
		Guide:     plain,
		Heading:   plain,
		Selected:  plain,
		Muted:     plain,
		Plain:     true,
	}
}
