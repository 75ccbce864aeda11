package compact

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/ui/styles"
)

// Styles holds the styling for the compact list view
type Styles struct {
	// Table structure
	HeaderCell lipgloss.Style
	Separator  lipgloss.Style

	// Row styles
	Row       lipgloss.Style
	RowActive lipgloss.Style

	// Column styles
	ColID       lipgloss.Style
	ColColumn   lipgloss.Style
	ColAssignee lipgloss.Style
	ColDue      lipgloss.Style
	ColOverdue  lipgloss.Style

	// Indicators
	Cursor lipgloss.Style
	Empty  lipgloss.Style
}

// NewStyles creates a new Styles instance with Catppuccin Macchiato theme
func NewStyles() *Styles {
	return &Styles{
		HeaderCell: lipgloss.NewStyle().
			Foreground(styles.Text).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(styles.Surface1),

		Row: lipgloss.NewStyle().
			Foreground(styles.Subtext1),

		RowActive: lipgloss.NewStyle().
			Foreground(styles.Text).
			Background(styles.Surface0).
			Bold(true),

		ColID: lipgloss.NewStyle().
			Foreground(styles.Overlay1).
			Bold(true),

		ColColumn: lipgloss.NewStyle().
			Foreground(styles.Blue),

		ColAssignee: lipgloss.NewStyle().
			Foreground(styles.Teal),

		ColDue: lipgloss.NewStyle().
			Foreground(styles.Sky),

		ColOverdue: lipgloss.NewStyle().
			Foreground(styles.Red).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(styles.Lavender).
			Bold(true),

		Empty: lipgloss.NewStyle().
			Foreground(styles.Overlay0).
			Italic(true),
	}
}

// priorityStyle colors a priority cell like the board badges
func priorityStyle(level int) lipgloss.Style {
	c := styles.PriorityColors[max(0, min(level, len(styles.PriorityColors)-1))]
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
