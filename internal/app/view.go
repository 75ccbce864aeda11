package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/services/editor"
	"github.com/riordanpawley/kanban/internal/ui/board"
	"github.com/riordanpawley/kanban/internal/ui/compact"
	"github.com/riordanpawley/kanban/internal/ui/overlay"
	"github.com/riordanpawley/kanban/internal/ui/statusbar"
	"github.com/riordanpawley/kanban/internal/ui/toast"
)

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Carregando..."
	}

	// Show loading spinner if loading
	if m.loading {
		return m.renderLoading()
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()

	current := m.overlayStack.Current()
	if current != nil {
		if w, _ := current.Size(); w > 0 {
			// Modal dialogs take the whole area above the status bar
			body := overlay.Place(current, m.overlayStyles, m.width, m.height-lipgloss.Height(statusBar))
			return lipgloss.JoinVertical(lipgloss.Left, body, statusBar)
		}
	}

	// Bottom bars: the search bar and the toasts sit between the board and
	// the status bar
	var bottom []string
	if current != nil {
		bottom = append(bottom, current.View())
	}
	if len(m.toasts) > 0 {
		toastView := toast.New(m.styles).Render(m.toasts, m.width)
		if toastView != "" {
			bottom = append(bottom, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toastView))
		}
	}
	extra := 0
	for _, b := range bottom {
		extra += lipgloss.Height(b)
	}

	mainHeight := m.mainHeight(extra)
	var mainView string
	if m.editor.GetView() == editor.ViewList {
		mainView = m.renderCompactView(mainHeight)
	} else {
		mainView = m.renderBoardView(mainHeight)
	}
	mainView = lipgloss.NewStyle().Height(mainHeight).MaxHeight(mainHeight).Render(mainView)

	parts := []string{header, mainView}
	parts = append(parts, bottom...)
	parts = append(parts, statusBar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// mainHeight is the height left for the board after the header, the status
// bar and extra lines
func (m Model) mainHeight(extra int) int {
	return max(m.height-2-extra, 1)
}

func (m Model) renderHeader() string {
	title := m.config.Board.Title
	if m.editor.GetView() == editor.ViewList {
		title += " · lista"
	}
	return m.styles.Header.Width(m.width).MaxHeight(1).Render(title)
}

func (m Model) renderStatusBar() string {
	sb := statusbar.New(m.editor.GetMode(), m.width, m.styles)
	if m.editor.IsNormal() {
		sb = sb.WithHints(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	if m.board != nil {
		sb = sb.WithInfo(m.summary())
	}
	if desc := filterDescription(m.editor.GetFilter()); desc != "" {
		sb = sb.WithFilter(desc)
	}
	return sb.Render()
}

// summary reports visible and total task counts
func (m Model) summary() string {
	total := m.board.TaskCount()
	visible := m.visibleCount()
	if visible == total {
		return fmt.Sprintf("%d tarefas", total)
	}
	return fmt.Sprintf("%d de %d tarefas", visible, total)
}

// filterDescription describes the active filter for the status bar
func filterDescription(f *domain.Filter) string {
	if f == nil || !f.IsActive() {
		return ""
	}
	var parts []string
	var priorities []string
	for _, p := range domain.Priorities() {
		if f.Priority[p] {
			priorities = append(priorities, p.String())
		}
	}
	if len(priorities) > 0 {
		parts = append(parts, "prioridade: "+strings.Join(priorities, ", "))
	}
	if f.SearchQuery != "" {
		parts = append(parts, fmt.Sprintf("busca: %q", f.SearchQuery))
	}
	return strings.Join(parts, "  ")
}

// renderLoading renders a centered loading spinner with message
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.spinner.View(),
		"Carregando quadro...",
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderBoardView renders the kanban board view
func (m Model) renderBoardView(height int) string {
	if m.board == nil {
		return m.styles.Empty.Width(m.width).Align(lipgloss.Center).
			Render("Não foi possível carregar o quadro. Pressione 'r' para tentar de novo.")
	}

	columns := m.buildColumns()
	pos := m.nav.GetPosition(columns)

	return board.Render(
		columns,
		board.Cursor{Column: pos.Column, Task: pos.Task},
		m.styles,
		board.Options{
			Width:   m.width,
			Height:  height,
			Preview: m.config.UI.DescriptionPreview,
			Now:     m.now(),
		},
	)
}

// renderCompactView renders the compact list view
func (m Model) renderCompactView(height int) string {
	columns := m.buildColumns()

	cv := compact.NewCompactView(compact.RowsFromColumns(columns), m.width, height)
	cv.SetNow(m.now())
	cv.SetCursor(m.nav.FlatIndex(columns))

	return cv.Render()
}
