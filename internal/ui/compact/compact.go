// Package compact renders every task on the board as one table, an
// alternative to the column view.
package compact

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/ui/board"
)

// Row is a task with the display name of its column
type Row struct {
	Task       domain.Task
	ColumnName string
}

// RowsFromColumns flattens the view columns into rows, in board order
func RowsFromColumns(columns []board.Column) []Row {
	var rows []Row
	for _, c := range columns {
		for _, t := range c.Tasks {
			rows = append(rows, Row{Task: t, ColumnName: c.Title})
		}
	}
	return rows
}

// CompactView is a scrollable table of tasks
type CompactView struct {
	rows   []Row
	cursor int
	styles *Styles
	width  int
	height int
	now    time.Time

	scrollOffset int
}

// NewCompactView creates a new CompactView with the given rows and dimensions
func NewCompactView(rows []Row, width, height int) *CompactView {
	return &CompactView{
		rows:   rows,
		styles: NewStyles(),
		width:  width,
		height: height,
	}
}

// SetRows updates the rows and keeps the cursor in range
func (cv *CompactView) SetRows(rows []Row) {
	cv.rows = rows
	cv.SetCursor(cv.cursor)
}

// SetNow sets the day used to flag overdue tasks
func (cv *CompactView) SetNow(now time.Time) {
	cv.now = now
}

// SetCursor sets the cursor position, clamped to the rows
func (cv *CompactView) SetCursor(index int) {
	cv.cursor = max(0, min(index, len(cv.rows)-1))
	cv.ensureCursorVisible()
}

// Cursor returns the current cursor position
func (cv *CompactView) Cursor() int {
	return cv.cursor
}

// MoveUp moves cursor up by n positions
func (cv *CompactView) MoveUp(n int) {
	cv.SetCursor(cv.cursor - n)
}

// MoveDown moves cursor down by n positions
func (cv *CompactView) MoveDown(n int) {
	cv.SetCursor(cv.cursor + n)
}

// GotoTop moves cursor to the first task
func (cv *CompactView) GotoTop() {
	cv.SetCursor(0)
}

// GotoBottom moves cursor to the last task
func (cv *CompactView) GotoBottom() {
	cv.SetCursor(len(cv.rows) - 1)
}

// Current returns the row at the cursor, if any
func (cv *CompactView) Current() (Row, bool) {
	if cv.cursor < 0 || cv.cursor >= len(cv.rows) {
		return Row{}, false
	}
	return cv.rows[cv.cursor], true
}

// SelectTask moves the cursor to the task with id. It reports false when the
// task is not listed.
func (cv *CompactView) SelectTask(id int) bool {
	for i, r := range cv.rows {
		if r.Task.ID == id {
			cv.SetCursor(i)
			return true
		}
	}
	return false
}

// SetDimensions updates the view dimensions
func (cv *CompactView) SetDimensions(width, height int) {
	cv.width = width
	cv.height = height
	cv.ensureCursorVisible()
}

// Render renders the full compact view
func (cv *CompactView) Render() string {
	if len(cv.rows) == 0 {
		return cv.styles.Empty.
			Width(cv.width).
			Align(lipgloss.Center).
			Render("Nenhuma tarefa\n\nPressione 'c' para criar ou Esc para limpar os filtros")
	}

	var b strings.Builder
	b.WriteString(cv.renderHeader())
	b.WriteString("\n")
	b.WriteString(cv.styles.Separator.Render(strings.Repeat("─", max(cv.width, 1))))
	b.WriteString("\n")

	start := cv.scrollOffset
	end := min(start+cv.visibleRows(), len(cv.rows))
	for i := start; i < end; i++ {
		b.WriteString(cv.renderRow(i, cv.rows[i]))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < len(cv.rows) {
		b.WriteString("\n")
		b.WriteString(cv.styles.Separator.Render(fmt.Sprintf(" ↓ mais %d tarefas ↓ ", len(cv.rows)-end)))
	}

	return b.String()
}

func (cv *CompactView) renderHeader() string {
	w := cv.columnWidths()
	cell := cv.styles.HeaderCell
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell.Width(w.cursor).Render(""),
		cell.Width(w.id).Render("#"),
		cell.Width(w.title).Render("Título"),
		cell.Width(w.column).Render("Coluna"),
		cell.Width(w.priority).Render("Prior."),
		cell.Width(w.assignee).Render("Responsável"),
		cell.Width(w.due).Render("Prazo"),
	)
}

func (cv *CompactView) renderRow(index int, r Row) string {
	w := cv.columnWidths()
	active := index == cv.cursor

	rowStyle := cv.styles.Row
	indicator := "  "
	if active {
		rowStyle = cv.styles.RowActive
		indicator = cv.styles.Cursor.Render("▶ ")
	}

	due := ""
	dueStyle := cv.styles.ColDue
	if r.Task.DueDate != nil && !r.Task.DueDate.IsZero() {
		due = r.Task.DueDate.Display()
		if !cv.now.IsZero() && r.Task.Overdue(cv.now) {
			dueStyle = cv.styles.ColOverdue
		}
	}

	cells := []string{
		lipgloss.NewStyle().Width(w.cursor).Render(indicator),
		cv.styles.ColID.Width(w.id).Render(fmt.Sprintf("%d", r.Task.ID)),
		rowStyle.Width(w.title).Render(truncateString(r.Task.Title, w.title-1)),
		cv.styles.ColColumn.Width(w.column).Render(truncateString(r.ColumnName, w.column-1)),
		priorityStyle(r.Task.Priority.Level()).Width(w.priority).Render(r.Task.Priority.String()),
		cv.styles.ColAssignee.Width(w.assignee).Render(truncateString(r.Task.Assignee, w.assignee-1)),
		dueStyle.Width(w.due).Render(due),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// columnWidths holds the calculated column widths
type columnWidths struct {
	cursor   int
	id       int
	title    int
	column   int
	priority int
	assignee int
	due      int
}

// columnWidths gives the title whatever the fixed columns leave over
func (cv *CompactView) columnWidths() columnWidths {
	const (
		cursorWidth   = 2
		idWidth       = 6
		columnWidth   = 14
		priorityWidth = 8
		assigneeWidth = 14
		dueWidth      = 11
	)

	fixed := cursorWidth + idWidth + columnWidth + priorityWidth + assigneeWidth + dueWidth
	return columnWidths{
		cursor:   cursorWidth,
		id:       idWidth,
		title:    max(20, cv.width-fixed),
		column:   columnWidth,
		priority: priorityWidth,
		assignee: assigneeWidth,
		due:      dueWidth,
	}
}

// visibleRows is the height left after the header and separator
func (cv *CompactView) visibleRows() int {
	return max(cv.height-2, 1)
}

// ensureCursorVisible adjusts scroll offset to keep cursor visible
func (cv *CompactView) ensureCursorVisible() {
	visible := cv.visibleRows()

	if cv.cursor < cv.scrollOffset {
		cv.scrollOffset = cv.cursor
	}
	if cv.cursor >= cv.scrollOffset+visible {
		cv.scrollOffset = cv.cursor - visible + 1
	}

	maxOffset := max(0, len(cv.rows)-visible)
	cv.scrollOffset = max(0, min(cv.scrollOffset, maxOffset))
}

// truncateString cuts s to width runes, ending in "..." when cut
func truncateString(s string, width int) string {
	if width <= 3 {
		return strings.Repeat(".", max(width, 0))
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
