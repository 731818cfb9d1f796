// Package theme defines color themes for the greencarbon terminal UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the UI.
type Theme struct {
	Name        string
	Background  lipgloss.Color // Main app background
	Surface     lipgloss.Color // Card backgrounds
	Border      lipgloss.Color // Card borders
	BorderFocus lipgloss.Color // Focused field / active card
	TextDim     lipgloss.Color // Hints, disabled controls
	TextMuted   lipgloss.Color // Labels, metadata
	TextPrimary lipgloss.Color // Primary content text
	Brand       lipgloss.Color // Leaf green: titles, badges, buttons
	BrandBright lipgloss.Color
	BrandSoft   lipgloss.Color // Badge and chip backgrounds
	Error       lipgloss.Color
	Warning     lipgloss.Color
}

// Active is the currently selected theme.
var Active = ForestDark

// ForestDark is the default theme: deep green surfaces with leaf accents.
var ForestDark = Theme{
	Name:        "forest-dark",
	Background:  lipgloss.Color("#0F1A12"),
	Surface:     lipgloss.Color("#16251A"),
	Border:      lipgloss.Color("#2B4231"),
	BorderFocus: lipgloss.Color("#43A047"),
	TextDim:     lipgloss.Color("#4F6654"),
	TextMuted:   lipgloss.Color("#8FA894"),
	TextPrimary: lipgloss.Color("#E8F5E9"),
	Brand:       lipgloss.Color("#43A047"),
	BrandBright: lipgloss.Color("#66BB6A"),
	BrandSoft:   lipgloss.Color("#1E3A23"),
	Error:       lipgloss.Color("#E57373"),
	Warning:     lipgloss.Color("#FFB74D"),
}

// ForestLight mirrors the original web page's palette.
var ForestLight = Theme{
	Name:        "forest-light",
	Background:  lipgloss.Color("#F6FBF7"),
	Surface:     lipgloss.Color("#FFFFFF"),
	Border:      lipgloss.Color("#E5EFE7"),
	BorderFocus: lipgloss.Color("#2E7D32"),
	TextDim:     lipgloss.Color("#A3B5A7"),
	TextMuted:   lipgloss.Color("#6B7F6F"),
	TextPrimary: lipgloss.Color("#1C2B1F"),
	Brand:       lipgloss.Color("#2E7D32"),
	BrandBright: lipgloss.Color("#43A047"),
	BrandSoft:   lipgloss.Color("#E8F5E9"),
	Error:       lipgloss.Color("#C62828"),
	Warning:     lipgloss.Color("#EF6C00"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:        "terminal",
	Background:  lipgloss.Color("0"),
	Surface:     lipgloss.Color("0"),
	Border:      lipgloss.Color("8"),
	BorderFocus: lipgloss.Color("2"),
	TextDim:     lipgloss.Color("8"),
	TextMuted:   lipgloss.Color("7"),
	TextPrimary: lipgloss.Color("15"),
	Brand:       lipgloss.Color("2"),
	BrandBright: lipgloss.Color("10"),
	BrandSoft:   lipgloss.Color("0"),
	Error:       lipgloss.Color("1"),
	Warning:     lipgloss.Color("3"),
}

// All available themes.
var All = []Theme{ForestDark, ForestLight, Terminal}

// ByName returns a theme by its name, defaulting to ForestDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return ForestDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
