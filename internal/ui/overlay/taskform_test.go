package overlay

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/kanban/internal/domain"
)

func submitted(t *testing.T, cmd tea.Cmd) TaskSubmittedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(TaskSubmittedMsg)
	require.True(t, ok, "expected TaskSubmittedMsg")
	return msg
}

func TestNewCreateTaskForm_Defaults(t *testing.T) {
	f := NewCreateTaskForm(domain.DefaultColumns(), domain.ColumnReview)

	assert.Equal(t, "Nova tarefa", f.Title())
	assert.Equal(t, domain.DefaultPriority, f.fb.priority)
	assert.Equal(t, domain.ColumnReview, f.fb.column)
	assert.False(t, f.edit)
}

func TestTaskForm_SubmitCreate(t *testing.T) {
	f := NewCreateTaskForm(domain.DefaultColumns(), domain.ColumnBacklog)
	f.fb.title = "Pintar faixa"
	f.fb.description = "Rua Augusta"
	f.fb.priority = domain.PriorityHigh
	f.fb.assignee = "Ana"
	f.fb.dueDate = "2025-11-03"
	f.fb.column = domain.ColumnToDo

	msg := submitted(t, f.submit())

	assert.False(t, msg.Edit)
	assert.Equal(t, domain.ColumnToDo, msg.Column)
	assert.Equal(t, "Pintar faixa", msg.Fields.Title)
	assert.Equal(t, domain.PriorityHigh, msg.Fields.Priority)
	assert.Equal(t, "Ana", msg.Fields.Assignee)
	require.NotNil(t, msg.Fields.DueDate)
	assert.Equal(t, "2025-11-03", msg.Fields.DueDate.String())
}

func TestTaskForm_SubmitCreateWithoutDate(t *testing.T) {
	f := NewCreateTaskForm(domain.DefaultColumns(), domain.ColumnBacklog)
	f.fb.title = "x"

	msg := submitted(t, f.submit())

	assert.Nil(t, msg.Fields.DueDate)
}

func TestNewEditTaskForm_Prefilled(t *testing.T) {
	due := domain.NewDate(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
	task := domain.Task{
		ID:          9,
		Title:       "Sinalizar obra",
		Description: "Av. Paulista",
		Priority:    domain.PriorityLow,
		Assignee:    "Rui",
		DueDate:     &due,
		Column:      domain.ColumnInProgress,
	}

	f := NewEditTaskForm(task)

	assert.Equal(t, "Editar tarefa", f.Title())
	assert.Equal(t, "Sinalizar obra", f.fb.title)
	assert.Equal(t, "2025-12-01", f.fb.dueDate)
	assert.Equal(t, domain.PriorityLow, f.fb.priority)
}

func TestNewEditTaskForm_InvalidPriorityFallsBack(t *testing.T) {
	f := NewEditTaskForm(domain.Task{ID: 1, Title: "x", Priority: "urgent"})

	assert.Equal(t, domain.DefaultPriority, f.fb.priority)
}

func TestTaskForm_SubmitEdit(t *testing.T) {
	due := domain.NewDate(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
	f := NewEditTaskForm(domain.Task{ID: 9, Title: "Old", DueDate: &due, Column: domain.ColumnDone})
	f.fb.title = "New"
	f.fb.dueDate = ""

	msg := submitted(t, f.submit())

	assert.True(t, msg.Edit)
	assert.Equal(t, 9, msg.TaskID)
	assert.Equal(t, domain.ColumnDone, msg.Column)
	require.NotNil(t, msg.Patch.Title)
	assert.Equal(t, "New", *msg.Patch.Title)
	assert.True(t, msg.Patch.ClearDueDate)
	assert.Nil(t, msg.Patch.DueDate)
}

func TestTaskForm_EscCloses(t *testing.T) {
	f := NewCreateTaskForm(domain.DefaultColumns(), domain.ColumnBacklog)

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.IsType(t, CloseOverlayMsg{}, cmd())
}

func TestValidateOptionalDate(t *testing.T) {
	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("  "))
	assert.NoError(t, validateOptionalDate("2025-02-28"))
	assert.Error(t, validateOptionalDate("28/02/2025"))
	assert.Error(t, validateOptionalDate("2025-02-30"))
}
