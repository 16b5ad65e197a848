package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme is the palette the upload and results panels are drawn with
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor // titles, labels, enabled button
	Secondary lipgloss.AdaptiveColor // captions, drop zone border
	Accent    lipgloss.AdaptiveColor // primary prediction card
	Error     lipgloss.AdaptiveColor // error dialog

	Border     lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor

	Progress lipgloss.AdaptiveColor // filled bar cells, spinner
	Track    lipgloss.AdaptiveColor // empty bar cells, disabled button
	Disabled lipgloss.AdaptiveColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Available themes
var (
	DefaultTheme = Theme{
		Name:       "default",
		Primary:    adaptive("#1E40AF", "#3B82F6"),
		Secondary:  adaptive("#6B7280", "#9CA3AF"),
		Accent:     adaptive("#7C3AED", "#A855F7"),
		Error:      adaptive("#DC2626", "#EF4444"),
		Border:     adaptive("#D1D5DB", "#374151"),
		Background: adaptive("#FFFFFF", "#111827"),
		Foreground: adaptive("#111827", "#F9FAFB"),
		Muted:      adaptive("#6B7280", "#9CA3AF"),
		Progress:   adaptive("#2563EB", "#60A5FA"),
		Track:      adaptive("#E5E7EB", "#374151"),
		Disabled:   adaptive("#9CA3AF", "#4B5563"),
	}

	HighContrastTheme = Theme{
		Name:       "high-contrast",
		Primary:    adaptive("#000000", "#FFFFFF"),
		Secondary:  adaptive("#666666", "#BBBBBB"),
		Accent:     adaptive("#000080", "#8080FF"),
		Error:      adaptive("#CC0000", "#FF4444"),
		Border:     adaptive("#000000", "#FFFFFF"),
		Background: adaptive("#FFFFFF", "#000000"),
		Foreground: adaptive("#000000", "#FFFFFF"),
		Muted:      adaptive("#666666", "#BBBBBB"),
		Progress:   adaptive("#000000", "#FFFFFF"),
		Track:      adaptive("#CCCCCC", "#333333"),
		Disabled:   adaptive("#999999", "#666666"),
	}

	MinimalTheme = Theme{
		Name:       "minimal",
		Primary:    adaptive("#2D3748", "#E2E8F0"),
		Secondary:  adaptive("#718096", "#A0AEC0"),
		Accent:     adaptive("#4A5568", "#CBD5E0"),
		Error:      adaptive("#C53030", "#FC8181"),
		Border:     adaptive("#E2E8F0", "#2D3748"),
		Background: adaptive("#FFFFFF", "#1A202C"),
		Foreground: adaptive("#2D3748", "#F7FAFC"),
		Muted:      adaptive("#A0AEC0", "#718096"),
		Progress:   adaptive("#4A5568", "#CBD5E0"),
		Track:      adaptive("#EDF2F7", "#2D3748"),
		Disabled:   adaptive("#CBD5E0", "#4A5568"),
	}
)

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// NextTheme switches to the theme after the current one and returns its name
func NextTheme() string {
	names := GetAvailableThemes()
	next := names[0]
	for i, name := range names {
		if name == currentTheme.Name {
			next = names[(i+1)%len(names)]
			break
		}
	}
	SetThemeByName(next)
	return next
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// ApplyColorMode configures lipgloss for auto, always or never
func ApplyColorMode(mode string) {
	switch {
	case mode == "never" || IsColorDisabled():
		lipgloss.SetColorProfile(termenv.Ascii)
	case mode == "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// GetStyles builds the styles for the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Primary).
			Bold(true).
			Padding(0, 2),

		ButtonDisabled: lipgloss.NewStyle().
			Foreground(theme.Disabled).
			Background(theme.Track).
			Padding(0, 2),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Progress).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		DropZone: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Secondary).
			Padding(1, 2).
			Align(lipgloss.Center),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Error).
			Padding(1, 3).
			Align(lipgloss.Center),

		PrimaryCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Padding(0, 1),

		Label: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Value: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		BarFilled: lipgloss.NewStyle().
			Foreground(theme.Progress),

		BarEmpty: lipgloss.NewStyle().
			Foreground(theme.Track),
	}
}

// Styles are the lipgloss styles derived from the current theme
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style

	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Spinner        lipgloss.Style

	Panel    lipgloss.Style
	DropZone lipgloss.Style
	Dialog   lipgloss.Style

	PrimaryCard lipgloss.Style
	Card        lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	BarFilled   lipgloss.Style
	BarEmpty    lipgloss.Style
}
