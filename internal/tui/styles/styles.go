// SPDX-License-Identifier: GPL-3.0-or-later
package styles

import "github.com/charmbracelet/lipgloss"

// ColorScheme holds colors for a theme
type ColorScheme struct {
	Primary     lipgloss.Color
	Secondary   lipgloss.Color
	Success     lipgloss.Color
	Error       lipgloss.Color
	Muted       lipgloss.Color
	Placeholder lipgloss.Color
	Foreground  lipgloss.Color
	Border      lipgloss.Color
	ChipDark    lipgloss.Color // Text on light chips
	ChipLight   lipgloss.Color // Text on dark chips
}

// DarkColors returns the dark theme color scheme
func DarkColors() ColorScheme {
	return ColorScheme{
		Primary:     lipgloss.Color("#7C3AED"), // Purple
		Secondary:   lipgloss.Color("#06B6D4"), // Cyan
		Success:     lipgloss.Color("#10B981"), // Emerald
		Error:       lipgloss.Color("#EF4444"), // Red
		Muted:       lipgloss.Color("#9CA3AF"), // Gray (lighter for dark bg)
		Placeholder: lipgloss.Color("#9CA3AF"),
		Foreground:  lipgloss.Color("#F9FAFB"),
		Border:      lipgloss.Color("#6B7280"),
		ChipDark:    lipgloss.Color("#374151"),
		ChipLight:   lipgloss.Color("#F9FAFB"),
	}
}

// LightColors returns the light theme color scheme
func LightColors() ColorScheme {
	return ColorScheme{
		Primary:     lipgloss.Color("#6D28D9"), // Purple (darker for light bg)
		Secondary:   lipgloss.Color("#0891B2"), // Cyan (darker)
		Success:     lipgloss.Color("#059669"),
		Error:       lipgloss.Color("#DC2626"),
		Muted:       lipgloss.Color("#6B7280"),
		Placeholder: lipgloss.Color("#9CA3AF"),
		Foreground:  lipgloss.Color("#111827"),
		Border:      lipgloss.Color("#6B7280"),
		ChipDark:    lipgloss.Color("#374151"),
		ChipLight:   lipgloss.Color("#FFFFFF"),
	}
}

// Styles contains all the application styles
type Styles struct {
	Colors ColorScheme

	Header      lipgloss.Style
	Title       lipgloss.Style
	Label       lipgloss.Style
	Required    lipgloss.Style
	Placeholder lipgloss.Style
	Border      lipgloss.Style
	BorderOpen  lipgloss.Style
	BorderError lipgloss.Style
	Control     lipgloss.Style
	Help        lipgloss.Style
	HelpError   lipgloss.Style
	Disabled    lipgloss.Style
	Muted       lipgloss.Style
	StatusBar   lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
}

// DefaultStyles returns styles based on auto-detected terminal background
func DefaultStyles() *Styles {
	if lipgloss.HasDarkBackground() {
		return NewStyles(DarkColors())
	}
	return NewStyles(LightColors())
}

// ForTheme returns styles for "dark", "light" or anything else (auto)
func ForTheme(theme string) *Styles {
	switch theme {
	case "dark":
		return NewStyles(DarkColors())
	case "light":
		return NewStyles(LightColors())
	default:
		return DefaultStyles()
	}
}

// NewStyles creates styles from a color scheme
func NewStyles(c ColorScheme) *Styles {
	return &Styles{
		Colors: c,

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(c.Primary).
			Bold(true).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(c.Foreground).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(c.Foreground),

		Required: lipgloss.NewStyle().
			Foreground(c.Error).
			Bold(true),

		Placeholder: lipgloss.NewStyle().
			Foreground(c.Placeholder),

		Border: lipgloss.NewStyle().
			Foreground(c.Border),

		BorderOpen: lipgloss.NewStyle().
			Foreground(c.Primary),

		BorderError: lipgloss.NewStyle().
			Foreground(c.Error),

		Control: lipgloss.NewStyle().
			Foreground(c.Placeholder),

		Help: lipgloss.NewStyle().
			Foreground(c.Muted).
			Italic(true),

		HelpError: lipgloss.NewStyle().
			Foreground(c.Error),

		Disabled: lipgloss.NewStyle().
			Foreground(c.Muted).
			Faint(true),

		Muted: lipgloss.NewStyle().
			Foreground(c.Muted),

		StatusBar: lipgloss.NewStyle().
			Foreground(c.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(c.Secondary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(c.Muted),

		Error: lipgloss.NewStyle().
			Foreground(c.Error),

		Success: lipgloss.NewStyle().
			Foreground(c.Success),
	}
}

// Chip returns the style for an option chip painted in color
func (s *Styles) Chip(color string, light bool) lipgloss.Style {
	fg := s.Colors.ChipLight
	if light {
		fg = s.Colors.ChipDark
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(fg)
}
