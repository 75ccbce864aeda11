// Package app contains the main application model and TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/config"
	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/services/editor"
	"github.com/riordanpawley/kanban/internal/services/navigation"
	"github.com/riordanpawley/kanban/internal/types"
	"github.com/riordanpawley/kanban/internal/ui/board"
	"github.com/riordanpawley/kanban/internal/ui/compact"
	"github.com/riordanpawley/kanban/internal/ui/overlay"
	"github.com/riordanpawley/kanban/internal/ui/styles"
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

const (
	toastTTL      = 3 * time.Second
	errorToastTTL = 6 * time.Second
	tickInterval  = time.Second
)

// Model is the main application state
type Model struct {
	// Core data, nil until the first load
	board *domain.Board

	// Navigation (cursor by task ID)
	nav *navigation.Service

	// Editor state (mode, filter, view)
	editor *editor.Service

	// UI state
	overlayStack  *overlay.Stack
	overlayStyles *overlay.Styles
	toasts        []Toast

	// Terminal size
	width  int
	height int

	styles *styles.Styles
	keys   *KeyMap
	help   help.Model

	config *config.Config

	// Loading state
	loading bool
	spinner spinner.Model

	service TaskService
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a new application model backed by svc
func New(cfg *config.Config, svc TaskService, logger *slog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.Lavender)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(styles.Subtext0)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(styles.Surface2)

	return Model{
		nav:           navigation.NewService(),
		editor:        editor.NewService(),
		overlayStack:  overlay.NewStack(),
		overlayStyles: overlay.New(),
		toasts:        []Toast{},
		styles:        styles.New(),
		keys:          DefaultKeyMap(),
		help:          h,
		config:        cfg,
		loading:       true,
		spinner:       s,
		service:       svc,
		logger:        logger,
		now:           time.Now,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadBoardCmd(),
		tickEvery(tickInterval),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			cmd := m.overlayStack.Update(msg)
			m.syncMode()
			return m, cmd
		}
		return m.handleKey(msg)

	case tickMsg:
		m.toasts = types.PruneToasts(m.toasts, m.now())
		return m, tickEvery(tickInterval)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		m.syncMode()
		return m, nil

	case overlay.ConfirmMsg:
		m.overlayStack.Pop()
		m.syncMode()
		return m.handleConfirm(msg)

	case overlay.TaskSubmittedMsg:
		m.overlayStack.Pop()
		m.syncMode()
		if msg.Edit {
			return m, m.editTaskCmd(msg.TaskID, msg.Column, msg.Patch)
		}
		return m, m.createTaskCmd(msg.Column, msg.Fields)

	case overlay.EditRequestMsg:
		m.overlayStack.Pop()
		cmd := m.overlayStack.Push(overlay.NewEditTaskForm(msg.Task))
		m.syncMode()
		return m, cmd

	case overlay.SearchMsg:
		m.editor.SetSearchQuery(msg.Query)
		if search, ok := m.overlayStack.Current().(*overlay.SearchOverlay); ok {
			search.SetMatchCount(m.visibleCount())
		}
		return m, nil

	case overlay.FilterChangedMsg:
		// The filter menu edits the filter in place
		return m, nil

	// Service results
	case boardLoadedMsg:
		m.board = msg.board
		m.loading = false
		return m, nil

	case taskSavedMsg:
		m.focusTask(msg.task)
		m.addToast(ToastSuccess, m.savedMessage(msg))
		return m, m.loadBoardCmd()

	case taskDeletedMsg:
		if msg.removed {
			m.addToast(ToastSuccess, fmt.Sprintf("Tarefa #%d excluída", msg.id))
		} else {
			m.addToast(ToastWarning, fmt.Sprintf("Tarefa #%d não está mais nesta coluna", msg.id))
		}
		return m, m.loadBoardCmd()

	case boardResetMsg:
		m.board = msg.board
		m.nav.SelectTask(0, 0)
		m.addToast(ToastSuccess, "Quadro reiniciado")
		return m, nil

	case exportedMsg:
		m.addToast(ToastSuccess, "Quadro exportado para "+msg.path)
		return m, nil

	case statsLoadedMsg:
		cmd := m.overlayStack.Push(overlay.NewStatsOverlay(msg.stats, m.columnDefs()))
		m.syncMode()
		return m, cmd

	case opErrorMsg:
		if msg.op == "load" {
			m.loading = false
		}
		level, text := errorToast(msg.op, msg.err)
		m.logger.Debug("board operation failed", "op", msg.op, "error", msg.err)
		m.addToast(level, text)
		return m, nil
	}

	// Forward everything else (blinks, form internals) to the open overlay
	if !m.overlayStack.IsEmpty() {
		return m, m.overlayStack.Update(msg)
	}
	return m, nil
}

// handleKey processes keyboard input on the board
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	columns := m.buildColumns()
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	// Vertical navigation
	case key.Matches(msg, k.Down):
		m.moveVertical(columns, 1)
	case key.Matches(msg, k.Up):
		m.moveVertical(columns, -1)
	case key.Matches(msg, k.HalfDown):
		m.moveVertical(columns, m.halfPage())
	case key.Matches(msg, k.HalfUp):
		m.moveVertical(columns, -m.halfPage())
	case key.Matches(msg, k.Top):
		m.gotoEdge(columns, false)
	case key.Matches(msg, k.Bottom):
		m.gotoEdge(columns, true)

	// Horizontal navigation
	case key.Matches(msg, k.Left):
		m.nav.MoveLeft(columns)
	case key.Matches(msg, k.Right):
		m.nav.MoveRight(columns)
	case key.Matches(msg, k.FirstColumn):
		m.nav.GotoFirstColumn(columns)
	case key.Matches(msg, k.LastColumn):
		m.nav.GotoLastColumn(columns)

	// Tasks
	case key.Matches(msg, k.Create):
		column := m.firstColumnKey()
		if col, ok := m.nav.CurrentColumn(columns); ok {
			column = col.Key
		}
		return m.push(overlay.NewCreateTaskForm(m.columnDefs(), column))

	case key.Matches(msg, k.Edit):
		if task, ok := m.nav.CurrentTask(columns); ok {
			return m.push(overlay.NewEditTaskForm(task))
		}

	case key.Matches(msg, k.MoveLeft):
		if task, ok := m.nav.CurrentTask(columns); ok {
			return m, m.moveTaskCmd(task.ID, task.Column, -1)
		}

	case key.Matches(msg, k.MoveRight):
		if task, ok := m.nav.CurrentTask(columns); ok {
			return m, m.moveTaskCmd(task.ID, task.Column, 1)
		}

	case key.Matches(msg, k.Delete):
		if task, ok := m.nav.CurrentTask(columns); ok {
			return m.push(overlay.NewConfirmDialog(
				"Excluir tarefa",
				fmt.Sprintf("Excluir a tarefa #%d \"%s\"?", task.ID, task.Title),
				overlay.ConfirmDelete,
				task,
			))
		}

	case key.Matches(msg, k.Detail):
		if task, ok := m.nav.CurrentTask(columns); ok {
			return m.push(overlay.NewDetailPanel(task, m.columnName(task.Column)))
		}

	// Board
	case key.Matches(msg, k.Search):
		search := overlay.NewSearchOverlay(m.editor.GetFilter().SearchQuery)
		search.SetMatchCount(m.visibleCount())
		cmd := m.overlayStack.Push(search)
		m.editor.EnterSearch()
		return m, cmd

	case key.Matches(msg, k.CycleFilter):
		m.editor.CyclePriorityFilter()
		if p, ok := m.editor.GetFilter().ActivePriority(); ok {
			m.addToast(ToastInfo, "Filtro: prioridade "+p.String())
		} else {
			m.addToast(ToastInfo, "Filtro de prioridade removido")
		}

	case key.Matches(msg, k.FilterMenu):
		return m.push(overlay.NewFilterMenu(m.editor.GetFilter()))

	case key.Matches(msg, k.ClearFilters):
		if m.editor.IsFilterActive() {
			m.editor.ClearFilters()
			m.addToast(ToastInfo, "Filtros limpos")
		}

	case key.Matches(msg, k.ToggleView):
		view := m.editor.ToggleView()
		m.addToast(ToastInfo, "Visualização em "+view.String())

	case key.Matches(msg, k.Stats):
		return m, m.loadStatsCmd()

	case key.Matches(msg, k.Export):
		return m, m.exportCmd(m.config.Storage.ExportName)

	case key.Matches(msg, k.Reload):
		return m, m.loadBoardCmd()

	case key.Matches(msg, k.Reset):
		return m.push(overlay.NewConfirmDialog(
			"Reiniciar quadro",
			"Todas as tarefas serão apagadas. Continuar?",
			overlay.ConfirmReset,
			nil,
		))

	case key.Matches(msg, k.Help):
		return m.push(overlay.NewHelpOverlay())
	}

	return m, nil
}

// handleConfirm runs the operation a confirmation dialog agreed to
func (m Model) handleConfirm(msg overlay.ConfirmMsg) (tea.Model, tea.Cmd) {
	if !msg.Confirmed {
		return m, nil
	}
	switch msg.Action {
	case overlay.ConfirmDelete:
		task, ok := msg.Payload.(domain.Task)
		if !ok {
			return m, nil
		}
		return m, m.deleteTaskCmd(task.ID, task.Column)
	case overlay.ConfirmReset:
		return m, m.resetBoardCmd()
	}
	return m, nil
}

// push opens a dialog overlay
func (m Model) push(o overlay.Overlay) (tea.Model, tea.Cmd) {
	cmd := m.overlayStack.Push(o)
	m.syncMode()
	return m, cmd
}

// syncMode derives the editor mode from the open overlay
func (m *Model) syncMode() {
	switch m.overlayStack.Current().(type) {
	case nil:
		m.editor.EnterNormal()
	case *overlay.SearchOverlay:
		m.editor.EnterSearch()
	default:
		m.editor.EnterDialog()
	}
}

// buildColumns converts the board into view columns, applying the filter
func (m Model) buildColumns() []board.Column {
	return board.FromBoard(m.board, m.editor.GetFilter())
}

// moveVertical moves within the column, or along the list in list view
func (m *Model) moveVertical(columns []board.Column, delta int) {
	if m.editor.GetView() == editor.ViewBoard {
		m.nav.GetCursor().MoveVertical(columns, delta)
		return
	}
	rows := compact.RowsFromColumns(columns)
	if len(rows) == 0 {
		return
	}
	idx := max(0, min(m.nav.FlatIndex(columns)+delta, len(rows)-1))
	m.selectRow(columns, rows[idx])
}

// gotoEdge jumps to the first or last task of the column, or of the list
func (m *Model) gotoEdge(columns []board.Column, bottom bool) {
	if m.editor.GetView() == editor.ViewBoard {
		if bottom {
			m.nav.GotoBottom(columns)
		} else {
			m.nav.GotoTop(columns)
		}
		return
	}
	rows := compact.RowsFromColumns(columns)
	if len(rows) == 0 {
		return
	}
	row := rows[0]
	if bottom {
		row = rows[len(rows)-1]
	}
	m.selectRow(columns, row)
}

func (m *Model) selectRow(columns []board.Column, row compact.Row) {
	for i, c := range columns {
		if c.Key == row.Task.Column {
			m.nav.SelectTask(row.Task.ID, i)
			return
		}
	}
}

// focusTask puts the cursor on t in its current column
func (m *Model) focusTask(t domain.Task) {
	column := 0
	if m.board != nil {
		column = max(m.board.ColumnIndex(t.Column), 0)
	}
	m.nav.SelectTask(t.ID, column)
}

func (m Model) savedMessage(msg taskSavedMsg) string {
	switch msg.op {
	case "create":
		return fmt.Sprintf("Tarefa #%d criada", msg.task.ID)
	case "move":
		return fmt.Sprintf("Tarefa #%d movida para %s", msg.task.ID, m.columnName(msg.task.Column))
	default:
		return fmt.Sprintf("Tarefa #%d atualizada", msg.task.ID)
	}
}

// columnName returns the display name of the column with key
func (m Model) columnName(key string) string {
	if m.board != nil {
		if c, ok := m.board.Column(key); ok {
			return c.Name
		}
	}
	return key
}

// columnDefs returns the board columns, or the configured ones before the
// first load
func (m Model) columnDefs() []domain.ColumnDef {
	if m.board == nil {
		return m.config.Board.ColumnDefs()
	}
	return m.board.Defs()
}

func (m Model) firstColumnKey() string {
	defs := m.columnDefs()
	if len(defs) == 0 {
		return domain.ColumnBacklog
	}
	return defs[0].Key
}

// visibleCount counts the tasks passing the filter
func (m Model) visibleCount() int {
	n := 0
	for _, c := range m.buildColumns() {
		n += len(c.Tasks)
	}
	return n
}

// halfPage calculates half-page scroll distance based on terminal height
func (m Model) halfPage() int {
	// Cards are about five lines tall
	cards := m.mainHeight(0) / 5
	return max(cards/2, 1)
}

// addToast adds a toast notification to the list
func (m *Model) addToast(level ToastLevel, message string) {
	ttl := toastTTL
	if level == ToastError {
		ttl = errorToastTTL
	}
	m.toasts = append(m.toasts, Toast{
		Level:   level,
		Message: message,
		Expires: m.now().Add(ttl),
	})
}
