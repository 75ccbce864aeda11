package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	// Overlay is the base overlay container style
	Overlay lipgloss.Style
	// Title is the overlay title style
	Title lipgloss.Style
	// MenuItem is the default menu item style
	MenuItem lipgloss.Style
	// MenuItemActive is the highlighted/selected menu item style
	MenuItemActive lipgloss.Style
	// MenuKey is the style for keybinding hints
	MenuKey lipgloss.Style
	// MenuHeader is the style for menu section headers
	MenuHeader lipgloss.Style
	// Separator is the style for divider lines
	Separator lipgloss.Style
	// Footer is the style for overlay footer text
	Footer lipgloss.Style
	// Label names a field in detail views
	Label lipgloss.Style
	// Muted renders placeholders for empty values
	Muted lipgloss.Style
	// Danger highlights destructive prompts
	Danger lipgloss.Style
	// Search is the search bar style
	Search lipgloss.Style
}

// New creates a new Styles instance using the Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.Surface2).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(styles.Mauve).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(styles.Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(styles.Yellow).
			Bold(true),

		MenuHeader: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(styles.Surface1),

		Footer: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			MarginTop(1),

		Label: lipgloss.NewStyle().
			Foreground(styles.Teal).
			Width(12),

		Muted: lipgloss.NewStyle().
			Foreground(styles.Overlay0).
			Italic(true),

		Danger: lipgloss.NewStyle().
			Foreground(styles.Red).
			Bold(true),

		Search: lipgloss.NewStyle().
			Foreground(styles.Text).
			Background(styles.Surface0),
	}
}
