package navigation

import (
	"testing"

	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/ui/board"
)

func makeTestColumns() []board.Column {
	return []board.Column{
		{
			Key:   domain.ColumnBacklog,
			Title: "Backlog",
			Tasks: []domain.Task{
				{ID: 1, Title: "Task 1", Column: domain.ColumnBacklog},
				{ID: 2, Title: "Task 2", Column: domain.ColumnBacklog},
			},
		},
		{
			Key:   domain.ColumnToDo,
			Title: "A Fazer",
			Tasks: []domain.Task{
				{ID: 3, Title: "Task 3", Column: domain.ColumnToDo},
			},
		},
		{
			Key:   domain.ColumnInProgress,
			Title: "Em Progresso",
			Tasks: []domain.Task{},
		},
		{
			Key:   domain.ColumnDone,
			Title: "Concluído",
			Tasks: []domain.Task{
				{ID: 5, Title: "Task 5", Column: domain.ColumnDone},
			},
		},
	}
}

func TestNewService(t *testing.T) {
	svc := NewService()
	if svc == nil {
		t.Fatal("NewService returned nil")
	}
	if svc.GetCursor() == nil {
		t.Fatal("GetCursor returned nil")
	}
}

func TestService_GetPosition(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Initially, cursor has no task selected
	pos := svc.GetPosition(columns)
	if !pos.Valid {
		t.Error("Expected valid position with tasks available")
	}
	if pos.Column != 0 {
		t.Errorf("Expected column 0, got %d", pos.Column)
	}

	svc.SelectTask(3, 1)
	pos = svc.GetPosition(columns)
	if pos.Column != 1 || pos.Task != 0 {
		t.Errorf("Expected (1,0), got (%d,%d)", pos.Column, pos.Task)
	}
}

func TestService_MoveDownUp(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()
	svc.SelectTask(1, 0)

	svc.MoveDown(columns)
	if pos := svc.GetPosition(columns); pos.Task != 1 {
		t.Errorf("Expected task 1 after MoveDown, got %d", pos.Task)
	}

	// Boundary: stays on the last task
	svc.MoveDown(columns)
	if pos := svc.GetPosition(columns); pos.Task != 1 {
		t.Errorf("Expected task 1 at boundary, got %d", pos.Task)
	}

	svc.MoveUp(columns)
	svc.MoveUp(columns)
	if pos := svc.GetPosition(columns); pos.Task != 0 {
		t.Errorf("Expected task 0 at boundary, got %d", pos.Task)
	}
}

func TestService_MoveLeftRight(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()
	svc.SelectTask(2, 0)

	svc.MoveRight(columns)
	pos := svc.GetPosition(columns)
	if pos.Column != 1 {
		t.Errorf("Expected column 1 after MoveRight, got %d", pos.Column)
	}
	// Row clamps to the shorter column
	if svc.GetCursor().TaskID != 3 {
		t.Errorf("Expected task 3, got %d", svc.GetCursor().TaskID)
	}

	svc.MoveLeft(columns)
	svc.MoveLeft(columns)
	if pos := svc.GetPosition(columns); pos.Column != 0 {
		t.Errorf("Expected column 0 at boundary, got %d", pos.Column)
	}
}

func TestService_MoveIntoEmptyColumn(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()
	svc.SelectTask(3, 1)

	svc.MoveRight(columns)

	pos := svc.GetPosition(columns)
	if pos.Column != 2 || pos.Valid {
		t.Errorf("Expected invalid position in column 2, got %+v", pos)
	}
	if _, ok := svc.CurrentTask(columns); ok {
		t.Error("Expected no task in empty column")
	}
	col, ok := svc.CurrentColumn(columns)
	if !ok || col.Key != domain.ColumnInProgress {
		t.Errorf("Expected in_progress column, got %q", col.Key)
	}

	// Moving on from the empty column keeps working
	svc.MoveRight(columns)
	if task, ok := svc.CurrentTask(columns); !ok || task.ID != 5 {
		t.Errorf("Expected task 5, got %+v", task)
	}
}

func TestService_GotoTopBottom(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()
	svc.SelectTask(2, 0)

	svc.GotoTop(columns)
	if pos := svc.GetPosition(columns); pos.Task != 0 {
		t.Errorf("Expected task 0 after GotoTop, got %d", pos.Task)
	}

	svc.GotoBottom(columns)
	if pos := svc.GetPosition(columns); pos.Task != 1 {
		t.Errorf("Expected task 1 after GotoBottom, got %d", pos.Task)
	}
}

func TestService_GotoFirstLastColumn(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()
	svc.SelectTask(3, 1)

	svc.GotoFirstColumn(columns)
	if pos := svc.GetPosition(columns); pos.Column != 0 {
		t.Errorf("Expected column 0, got %d", pos.Column)
	}

	svc.GotoLastColumn(columns)
	if pos := svc.GetPosition(columns); pos.Column != 3 {
		t.Errorf("Expected column 3, got %d", pos.Column)
	}
}

func TestService_JumpToTaskByID(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	if !svc.JumpToTaskByID(columns, 5) {
		t.Error("Expected to find task 5")
	}
	if pos := svc.GetPosition(columns); pos.Column != 3 {
		t.Errorf("Expected column 3, got %d", pos.Column)
	}

	if svc.JumpToTaskByID(columns, 99) {
		t.Error("Should not find task 99")
	}
}

func TestService_CurrentTask(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()
	svc.SelectTask(3, 1)

	task, ok := svc.CurrentTask(columns)
	if !ok {
		t.Fatal("Expected a task under the cursor")
	}
	if task.ID != 3 {
		t.Errorf("Expected task 3, got %d", task.ID)
	}
}

func TestService_FlatIndex(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	tests := []struct {
		taskID int
		column int
		want   int
	}{
		{1, 0, 0},
		{2, 0, 1},
		{3, 1, 2},
		{5, 3, 3},
	}

	for _, tt := range tests {
		svc.SelectTask(tt.taskID, tt.column)
		if got := svc.FlatIndex(columns); got != tt.want {
			t.Errorf("task %d: expected flat index %d, got %d", tt.taskID, tt.want, got)
		}
	}
}

func TestService_HalfPageScroll(t *testing.T) {
	tasks := make([]domain.Task, 10)
	for i := range tasks {
		tasks[i] = domain.Task{ID: i + 1}
	}
	columns := []board.Column{{Key: domain.ColumnBacklog, Tasks: tasks}}

	svc := NewService()
	svc.SelectTask(1, 0)

	svc.HalfPageDown(columns, 3)
	if pos := svc.GetPosition(columns); pos.Task != 3 {
		t.Errorf("Expected task 3, got %d", pos.Task)
	}

	svc.HalfPageUp(columns, 3)
	if pos := svc.GetPosition(columns); pos.Task != 0 {
		t.Errorf("Expected task 0, got %d", pos.Task)
	}
}

func TestCursor_EmptyColumns(t *testing.T) {
	columns := []board.Column{{Title: "Empty", Tasks: []domain.Task{}}}

	svc := NewService()
	if pos := svc.GetPosition(columns); pos.Valid {
		t.Error("Expected invalid position for empty columns")
	}
}

func TestCursor_TaskNotFound(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Deleted or filtered out task falls back to its column
	svc.SelectTask(42, 3)

	if pos := svc.GetPosition(columns); pos.Column != 3 {
		t.Errorf("Expected fallback to column 3, got %d", pos.Column)
	}
}
