// Package board renders the kanban columns side by side.
package board

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/ui/styles"
)

// Render renders the entire kanban board, one column per entry
func Render(columns []Column, cursor Cursor, s *styles.Styles, opts Options) string {
	if len(columns) == 0 {
		return ""
	}

	columnWidth := max(opts.Width/len(columns), 12)

	columnStrings := make([]string, 0, len(columns))
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = cursor.Task
		}

		columnStr := renderColumn(col, i, cursorTask, isActive, columnWidth, opts.Height, opts, s)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(columnWidth).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
