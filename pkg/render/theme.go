package render

import "github.com/charmbracelet/lipgloss"

// Theme defines the styles and glyphs used to paint a stat-bar scene.
type Theme struct {
	Name string

	Label     lipgloss.Style // widget caption
	Value     lipgloss.Style // numeric readout and tick labels
	Backdrop  lipgloss.Style
	Range     lipgloss.Style // min/max band
	Current   lipgloss.Style
	Mean      lipgloss.Style
	Tick      lipgloss.Style
	TickFaint lipgloss.Style
	History   lipgloss.Style

	Glyphs Glyphs
}

// Glyphs maps each paint class to the rune used to fill it.
type Glyphs struct {
	Backdrop  rune
	Range     rune
	Current   rune
	Mean      rune
	Tick      rune
	TickFaint rune
	History   rune
}

// DefaultTheme returns the vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:      "default",
		Label:     lipgloss.NewStyle().Bold(true),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")), // light gray
		Backdrop:  lipgloss.NewStyle().Foreground(lipgloss.Color("236")), // near black
		Range:     lipgloss.NewStyle().Foreground(lipgloss.Color("52")),  // dark red
		Current:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Mean:      lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Tick:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		TickFaint: lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		History:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Glyphs: Glyphs{
			Backdrop:  '░',
			Range:     '▒',
			Current:   '█',
			Mean:      '▓',
			Tick:      '│',
			TickFaint: '┆',
			History:   '▪',
		},
	}
}

// MonoTheme returns a colorless theme with plain ASCII glyphs; renderer
// output under it is byte-for-byte predictable, which the tests rely on.
func MonoTheme() Theme {
	return Theme{
		Name: "mono",
		Glyphs: Glyphs{
			Backdrop:  '.',
			Range:     ':',
			Current:   '#',
			Mean:      '=',
			Tick:      '|',
			TickFaint: '\'',
			History:   '*',
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
