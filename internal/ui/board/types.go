package board

import (
	"time"

	"github.com/riordanpawley/kanban/internal/domain"
)

// Column represents a kanban column with the tasks that pass the filter
type Column struct {
	Key   string
	Title string
	Tasks []domain.Task
	// Total counts every task in the column, filtered or not
	Total int
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index
	Task   int // Task index within the visible tasks of the column
}

// Options controls card rendering
type Options struct {
	Width  int
	Height int
	// Preview is the number of description runes shown on a card
	Preview int
	// Now decides which due dates are overdue
	Now time.Time
}

// FromBoard builds the view columns of b, in board order. A nil filter shows
// every task.
func FromBoard(b *domain.Board, f *domain.Filter) []Column {
	if b == nil {
		return nil
	}
	columns := make([]Column, 0, len(b.Columns))
	for _, c := range b.Columns {
		tasks := c.Tasks
		if f != nil {
			tasks = f.Apply(c.Tasks)
		}
		columns = append(columns, Column{
			Key:   c.Key,
			Title: c.Name,
			Tasks: tasks,
			Total: len(c.Tasks),
		})
	}
	return columns
}
