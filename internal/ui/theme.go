package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wholefoodlabs/larder/internal/prefs"
)

// Palette holds the raw colors for one theme variant.
type Palette struct {
	Name string

	Text      string
	Muted     string
	Accent    string
	Success   string
	Warning   string
	Danger    string
	Selection string
	Border    string
}

func darkPalette() Palette {
	return Palette{
		Name:      "dark",
		Text:      "#cdcecf",
		Muted:     "#71839b",
		Accent:    "#86abdc",
		Success:   "#81b29a",
		Warning:   "#dbc074",
		Danger:    "#c94f6d",
		Selection: "#2b3b51",
		Border:    "#39506d",
	}
}

func lightPalette() Palette {
	return Palette{
		Name:      "light",
		Text:      "#3760bf",
		Muted:     "#848cb5",
		Accent:    "#2e7de9",
		Success:   "#587539",
		Warning:   "#8c6c3e",
		Danger:    "#f52a65",
		Selection: "#b7c1e3",
		Border:    "#a8aecb",
	}
}

// ResolvePalette maps a theme-mode preference to a concrete palette. The
// system mode follows the terminal's reported background.
func ResolvePalette(mode prefs.Mode) Palette {
	switch mode {
	case prefs.ModeLight:
		return lightPalette()
	case prefs.ModeDark:
		return darkPalette()
	default:
		if lipgloss.HasDarkBackground() {
			return darkPalette()
		}
		return lightPalette()
	}
}

// Styles contains pre-built lipgloss styles for a palette.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Danger   lipgloss.Style
	Footer   lipgloss.Style
}

// Styles builds the style set for this palette.
func (p Palette) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color(p.Border)),

		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			PaddingLeft(2),

		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Background(lipgloss.Color(p.Selection)).
			PaddingLeft(1).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success)).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Warning)),

		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Danger)).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			PaddingTop(1),
	}
}
