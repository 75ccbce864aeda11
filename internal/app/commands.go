package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/renameio/v2"

	"github.com/riordanpawley/kanban/internal/domain"
)

// serviceTimeout bounds every store round trip started from the UI
const serviceTimeout = 5 * time.Second

// TaskService is the part of the task repository the board drives
type TaskService interface {
	Board(ctx context.Context) (*domain.Board, error)
	Stats(ctx context.Context) (domain.Stats, error)
	Create(ctx context.Context, column string, f domain.TaskFields) (domain.Task, error)
	MoveAdjacent(ctx context.Context, id int, from string, delta int) (domain.Task, error)
	Edit(ctx context.Context, id int, column string, p domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, id int, column string) (bool, error)
	Reset(ctx context.Context) (*domain.Board, error)
	Export(ctx context.Context) ([]byte, error)
}

type boardLoadedMsg struct {
	board *domain.Board
}

// taskSavedMsg reports a created, edited or moved task
type taskSavedMsg struct {
	op   string
	task domain.Task
}

type taskDeletedMsg struct {
	id      int
	removed bool
}

type boardResetMsg struct {
	board *domain.Board
}

type exportedMsg struct {
	path string
}

type statsLoadedMsg struct {
	stats domain.Stats
}

type opErrorMsg struct {
	op  string
	err error
}

type tickMsg time.Time

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadBoardCmd() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		b, err := svc.Board(ctx)
		if err != nil {
			return opErrorMsg{op: "load", err: err}
		}
		return boardLoadedMsg{board: b}
	}
}

func (m Model) createTaskCmd(column string, f domain.TaskFields) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		t, err := svc.Create(ctx, column, f)
		if err != nil {
			return opErrorMsg{op: "create", err: err}
		}
		return taskSavedMsg{op: "create", task: t}
	}
}

func (m Model) editTaskCmd(id int, column string, p domain.TaskPatch) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		t, err := svc.Edit(ctx, id, column, p)
		if err != nil {
			return opErrorMsg{op: "edit", err: err}
		}
		return taskSavedMsg{op: "edit", task: t}
	}
}

func (m Model) moveTaskCmd(id int, from string, delta int) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		t, err := svc.MoveAdjacent(ctx, id, from, delta)
		if err != nil {
			return opErrorMsg{op: "move", err: err}
		}
		return taskSavedMsg{op: "move", task: t}
	}
}

func (m Model) deleteTaskCmd(id int, column string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		removed, err := svc.Delete(ctx, id, column)
		if err != nil {
			return opErrorMsg{op: "delete", err: err}
		}
		return taskDeletedMsg{id: id, removed: removed}
	}
}

func (m Model) resetBoardCmd() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		b, err := svc.Reset(ctx)
		if err != nil {
			return opErrorMsg{op: "reset", err: err}
		}
		return boardResetMsg{board: b}
	}
}

// exportCmd writes the persisted document verbatim to path
func (m Model) exportCmd(path string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		data, err := svc.Export(ctx)
		if err != nil {
			return opErrorMsg{op: "export", err: err}
		}
		if err := renameio.WriteFile(path, data, 0644); err != nil {
			return opErrorMsg{op: "export", err: &domain.StoreError{Op: "export", Path: path, Err: err}}
		}
		return exportedMsg{path: path}
	}
}

func (m Model) loadStatsCmd() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		stats, err := svc.Stats(ctx)
		if err != nil {
			return opErrorMsg{op: "stats", err: err}
		}
		return statsLoadedMsg{stats: stats}
	}
}

var opLabels = map[string]string{
	"load":   "carregar o quadro",
	"create": "criar a tarefa",
	"edit":   "editar a tarefa",
	"move":   "mover a tarefa",
	"delete": "excluir a tarefa",
	"reset":  "reiniciar o quadro",
	"export": "exportar o quadro",
	"stats":  "calcular estatísticas",
}

// errorToast maps a failed operation to a toast level and message
func errorToast(op string, err error) (ToastLevel, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyTitle):
		return ToastError, "O título é obrigatório"
	case errors.Is(err, domain.ErrInvalidPriority):
		return ToastError, "Prioridade inválida"
	case errors.Is(err, domain.ErrInvalidDate):
		return ToastError, "Data inválida, use AAAA-MM-DD"
	case errors.Is(err, domain.ErrNoAdjacentColumn):
		return ToastWarning, "Não há coluna nessa direção"
	case errors.Is(err, domain.ErrNotFound):
		return ToastWarning, "Tarefa não encontrada"
	case errors.Is(err, domain.ErrUnknownColumn):
		return ToastError, "Coluna desconhecida"
	case errors.Is(err, context.DeadlineExceeded):
		return ToastError, fmt.Sprintf("Tempo esgotado ao %s", label(op))
	}
	return ToastError, fmt.Sprintf("Erro ao %s: %v", label(op), err)
}

func label(op string) string {
	if l, ok := opLabels[op]; ok {
		return l
	}
	return op
}
