// Package navigation tracks the board cursor by task ID so that the
// selection survives filtering, moves and reloads.
package navigation

import (
	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/ui/board"
)

// Position represents a computed position in the board
type Position struct {
	Column int  // Column index
	Task   int  // Index within the visible tasks of the column
	Valid  bool // Whether a task is under the cursor
}

// Cursor tracks the selected task by ID. Task IDs start at 1, so zero means
// nothing is selected.
type Cursor struct {
	TaskID         int
	FallbackColumn int // Column to use when TaskID is not visible
}

// FindPosition computes the position of the cursor's task in the given columns
func (c *Cursor) FindPosition(columns []board.Column) Position {
	if c.TaskID != 0 {
		for colIdx, col := range columns {
			for taskIdx, task := range col.Tasks {
				if task.ID == c.TaskID {
					return Position{Column: colIdx, Task: taskIdx, Valid: true}
				}
			}
		}
	}

	// Nothing selected or the task is filtered out
	col := c.FallbackColumn
	if col >= len(columns) || col < 0 {
		col = 0
	}
	if col < len(columns) && len(columns[col].Tasks) > 0 {
		return Position{Column: col, Task: 0, Valid: true}
	}
	return Position{Column: col, Task: 0, Valid: false}
}

// SetTask updates the cursor to point to a specific task
func (c *Cursor) SetTask(taskID int, column int) {
	c.TaskID = taskID
	c.FallbackColumn = column
}

// MoveVertical moves up or down within a column, returns new task ID
func (c *Cursor) MoveVertical(columns []board.Column, delta int) int {
	pos := c.FindPosition(columns)
	if !pos.Valid || pos.Column >= len(columns) {
		return c.TaskID
	}

	col := columns[pos.Column]
	newIdx := max(0, min(pos.Task+delta, len(col.Tasks)-1))
	c.TaskID = col.Tasks[newIdx].ID
	c.FallbackColumn = pos.Column
	return c.TaskID
}

// MoveHorizontal moves left or right to adjacent column
func (c *Cursor) MoveHorizontal(columns []board.Column, delta int) int {
	pos := c.FindPosition(columns)
	return c.jump(columns, pos, pos.Column+delta)
}

// JumpToStart moves to first task in current column
func (c *Cursor) JumpToStart(columns []board.Column) int {
	pos := c.FindPosition(columns)
	if pos.Column < len(columns) && len(columns[pos.Column].Tasks) > 0 {
		c.SetTask(columns[pos.Column].Tasks[0].ID, pos.Column)
	}
	return c.TaskID
}

// JumpToEnd moves to last task in current column
func (c *Cursor) JumpToEnd(columns []board.Column) int {
	pos := c.FindPosition(columns)
	if pos.Column < len(columns) {
		tasks := columns[pos.Column].Tasks
		if len(tasks) > 0 {
			c.SetTask(tasks[len(tasks)-1].ID, pos.Column)
		}
	}
	return c.TaskID
}

// JumpToColumn moves to a specific column, keeping relative row position
func (c *Cursor) JumpToColumn(columns []board.Column, colIdx int) int {
	return c.jump(columns, c.FindPosition(columns), colIdx)
}

func (c *Cursor) jump(columns []board.Column, from Position, colIdx int) int {
	if len(columns) == 0 {
		return c.TaskID
	}
	colIdx = max(0, min(colIdx, len(columns)-1))
	c.FallbackColumn = colIdx

	tasks := columns[colIdx].Tasks
	if len(tasks) == 0 {
		c.TaskID = 0
		return 0
	}
	c.TaskID = tasks[min(from.Task, len(tasks)-1)].ID
	return c.TaskID
}

// Service manages navigation state
type Service struct {
	cursor Cursor
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{}
}

// GetCursor returns the current cursor (for read access)
func (s *Service) GetCursor() *Cursor {
	return &s.cursor
}

// GetPosition returns the computed position of the cursor in the given columns
func (s *Service) GetPosition(columns []board.Column) Position {
	return s.cursor.FindPosition(columns)
}

// CurrentTask returns the task under the cursor
func (s *Service) CurrentTask(columns []board.Column) (domain.Task, bool) {
	pos := s.cursor.FindPosition(columns)
	if !pos.Valid || pos.Column >= len(columns) {
		return domain.Task{}, false
	}
	col := columns[pos.Column]
	if pos.Task >= len(col.Tasks) {
		return domain.Task{}, false
	}
	return col.Tasks[pos.Task], true
}

// CurrentColumn returns the column under the cursor, even when it is empty
func (s *Service) CurrentColumn(columns []board.Column) (board.Column, bool) {
	pos := s.cursor.FindPosition(columns)
	if pos.Column < 0 || pos.Column >= len(columns) {
		return board.Column{}, false
	}
	return columns[pos.Column], true
}

// MoveDown moves cursor down in current column
func (s *Service) MoveDown(columns []board.Column) {
	s.cursor.MoveVertical(columns, 1)
}

// MoveUp moves cursor up in current column
func (s *Service) MoveUp(columns []board.Column) {
	s.cursor.MoveVertical(columns, -1)
}

// MoveLeft moves cursor to left column
func (s *Service) MoveLeft(columns []board.Column) {
	s.cursor.MoveHorizontal(columns, -1)
}

// MoveRight moves cursor to right column
func (s *Service) MoveRight(columns []board.Column) {
	s.cursor.MoveHorizontal(columns, 1)
}

// HalfPageDown moves cursor half a page down
func (s *Service) HalfPageDown(columns []board.Column, halfPage int) {
	s.cursor.MoveVertical(columns, halfPage)
}

// HalfPageUp moves cursor half a page up
func (s *Service) HalfPageUp(columns []board.Column, halfPage int) {
	s.cursor.MoveVertical(columns, -halfPage)
}

// GotoTop moves cursor to first task in column
func (s *Service) GotoTop(columns []board.Column) {
	s.cursor.JumpToStart(columns)
}

// GotoBottom moves cursor to last task in column
func (s *Service) GotoBottom(columns []board.Column) {
	s.cursor.JumpToEnd(columns)
}

// GotoFirstColumn moves cursor to first column
func (s *Service) GotoFirstColumn(columns []board.Column) {
	s.cursor.JumpToColumn(columns, 0)
}

// GotoLastColumn moves cursor to last column
func (s *Service) GotoLastColumn(columns []board.Column) {
	s.cursor.JumpToColumn(columns, len(columns)-1)
}

// SelectTask directly sets the cursor to a specific task
func (s *Service) SelectTask(taskID int, column int) {
	s.cursor.SetTask(taskID, column)
}

// JumpToTaskByID finds and selects a task by ID
func (s *Service) JumpToTaskByID(columns []board.Column, taskID int) bool {
	for colIdx, col := range columns {
		for _, task := range col.Tasks {
			if task.ID == taskID {
				s.cursor.SetTask(task.ID, colIdx)
				return true
			}
		}
	}
	return false
}

// FlatIndex converts the cursor position to an index over all visible tasks
// in board order
func (s *Service) FlatIndex(columns []board.Column) int {
	pos := s.cursor.FindPosition(columns)
	index := 0
	for i := 0; i < pos.Column && i < len(columns); i++ {
		index += len(columns[i].Tasks)
	}
	return index + pos.Task
}
