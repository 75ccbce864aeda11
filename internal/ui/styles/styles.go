package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Board
	Header             lipgloss.Style
	Column             lipgloss.Style
	ColumnActive       lipgloss.Style
	ColumnHeader       lipgloss.Style
	ColumnHeaderActive lipgloss.Style
	ColumnCount        lipgloss.Style
	Empty              lipgloss.Style

	// Cards
	Card            lipgloss.Style
	CardActive      lipgloss.Style
	TaskID          lipgloss.Style
	TaskTitle       lipgloss.Style
	TaskDescription lipgloss.Style
	TaskMeta        lipgloss.Style
	DueDate         lipgloss.Style
	DueDateOverdue  lipgloss.Style

	// Badges
	PriorityBadge func(level int) lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusMode   lipgloss.Style
	StatusHint   lipgloss.Style
	StatusInfo   lipgloss.Style
	StatusFilter lipgloss.Style

	// Overlays
	Overlay        lipgloss.Style
	OverlayTitle   lipgloss.Style
	MenuItem       lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuKey        lipgloss.Style
	Separator      lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	// Stats
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	cardBase := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Padding(0, 1)

	columnBase := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface0).
		Padding(0, 1)

	toast := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Foreground(c).
			Padding(0, 1)
	}

	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(Mauve).
			Bold(true).
			Padding(0, 1),

		Column:       columnBase,
		ColumnActive: columnBase.BorderForeground(Blue),

		ColumnHeader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true),

		ColumnHeaderActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true).
			Underline(true),

		ColumnCount: lipgloss.NewStyle().
			Foreground(Overlay0),

		Empty: lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true),

		Card:       cardBase,
		CardActive: cardBase.BorderForeground(Lavender),

		TaskID: lipgloss.NewStyle().
			Foreground(Overlay1).
			Bold(true),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		TaskDescription: lipgloss.NewStyle().
			Foreground(Subtext0),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Overlay1),

		DueDate: lipgloss.NewStyle().
			Foreground(Sky),

		DueDateOverdue: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		PriorityBadge: func(level int) lipgloss.Style {
			color := PriorityColors[max(0, min(level, len(PriorityColors)-1))]
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(color).
				Padding(0, 1).
				Bold(true)
		},

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		StatusFilter: lipgloss.NewStyle().
			Foreground(Peach).
			Bold(true),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		ToastInfo:    toast(Blue),
		ToastSuccess: toast(Green),
		ToastWarning: toast(Yellow),
		ToastError:   toast(Red),

		ProgressFilled: lipgloss.NewStyle().
			Foreground(Green),

		ProgressEmpty: lipgloss.NewStyle().
			Foreground(Surface1),
	}
}

// Priority returns the badge style for a task priority
func (s *Styles) Priority(p domain.Priority) lipgloss.Style {
	return s.PriorityBadge(p.Level())
}
