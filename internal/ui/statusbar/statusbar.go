// Package statusbar renders the single-line mode and hint bar under the board.
package statusbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/types"
	"github.com/riordanpawley/kanban/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	width  int
	styles *styles.Styles
	info   string
	filter string
	hints  string
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithInfo sets the right-aligned summary, e.g. task counts
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// WithFilter sets the active filter description shown after the hints
func (sb StatusBar) WithFilter(filter string) StatusBar {
	sb.filter = filter
	return sb
}

// WithHints replaces the default hints of the mode, e.g. with a rendered
// key help line
func (sb StatusBar) WithHints(hints string) StatusBar {
	sb.hints = hints
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")
	separator := sb.styles.StatusHint.Render(" │ ")

	parts := []string{modeBadge}
	hints := sb.hints
	if hints == "" {
		hints = sb.styles.StatusHint.Render(GetHints(sb.mode))
	}
	if lipgloss.Width(hints) > 0 {
		parts = append(parts, separator, hints)
	}
	if sb.filter != "" {
		parts = append(parts, separator, sb.styles.StatusFilter.Render(sb.filter))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Left, parts...)

	content := left
	if sb.info != "" {
		right := sb.styles.StatusInfo.Render(sb.info)
		// Horizontal padding of the bar takes two cells
		gap := sb.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
		if gap > 0 {
			content = lipgloss.JoinHorizontal(lipgloss.Left, left, lipgloss.NewStyle().Width(gap).Render(""), right)
		}
	}

	return sb.styles.StatusBar.Width(sb.width).MaxHeight(1).Render(content)
}
