package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Help          lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ModalBox      lipgloss.Style
	ModalTitle    lipgloss.Style
	StatusError   lipgloss.Style
	Spinner       lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Error         lipgloss.Color
}

func newTheme(primary, muted, border, foreground, onPrimary, errColor lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Muted:      muted,
		Border:     border,
		Foreground: foreground,
		Error:      errColor,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground).
			MarginBottom(1),
		Normal: lipgloss.NewStyle().
			Foreground(foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground),
		Help: lipgloss.NewStyle().
			Foreground(muted),

		Button: lipgloss.NewStyle().
			Foreground(foreground).
			Background(border).
			Padding(0, 3),
		ButtonFocused: lipgloss.NewStyle().
			Foreground(onPrimary).
			Background(primary).
			Bold(true).
			Padding(0, 3),

		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 3),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		Spinner: lipgloss.NewStyle().
			Foreground(primary),
	}
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#ef4444"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#1e1e2e"),
	lipgloss.Color("#f38ba8"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
