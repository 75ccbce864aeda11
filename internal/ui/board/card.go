package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/ui/styles"
)

// renderCard renders a task card
func renderCard(task domain.Task, isCursor bool, width int, opts Options, s *styles.Styles) string {
	cardStyle := s.Card
	if isCursor {
		cardStyle = s.CardActive
	}
	cardStyle = cardStyle.Width(width)

	// Border (2) and padding (2)
	inner := max(width-4, 1)

	// Cursor indicator (▶ symbol when cursor is on this card)
	cursor := ""
	if isCursor {
		cursor = "▶ "
	}

	badge := s.Priority(task.Priority).Render(task.Priority.String())
	id := s.TaskID.Render(fmt.Sprintf("#%d", task.ID))
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Left, cursor, badge, " ", id),
		s.TaskTitle.Width(inner).Render(task.Title),
	}

	if task.Description != "" {
		lines = append(lines, s.TaskDescription.Width(inner).Render(task.Preview(opts.Preview)))
	}

	var meta []string
	if task.Assignee != "" {
		meta = append(meta, s.TaskMeta.Render("@"+task.Assignee))
	}
	if task.DueDate != nil && !task.DueDate.IsZero() {
		dueStyle := s.DueDate
		if !opts.Now.IsZero() && task.Overdue(opts.Now) {
			dueStyle = s.DueDateOverdue
		}
		meta = append(meta, dueStyle.Render(task.DueDate.Display()))
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, "  "))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderCard is the exported version for testing
func RenderCard(task domain.Task, isCursor bool, width int, opts Options, s *styles.Styles) string {
	return renderCard(task, isCursor, width, opts, s)
}
