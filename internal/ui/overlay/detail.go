package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/domain"
)

const (
	detailWidth       = 70
	detailDescHeight  = 10
	detailDescPadding = 4
)

// EditRequestMsg asks the board to open the edit form for Task
type EditRequestMsg struct {
	Task domain.Task
}

// DetailPanel displays full task details with scrollable description
type DetailPanel struct {
	task       domain.Task
	columnName string
	desc       viewport.Model
	styles     *Styles
}

// NewDetailPanel creates a new detail panel for the task. columnName is the
// display name of the column holding it.
func NewDetailPanel(task domain.Task, columnName string) *DetailPanel {
	vp := viewport.New(detailWidth-detailDescPadding-2, detailDescHeight)
	desc := task.Description
	if desc != "" {
		desc = lipgloss.NewStyle().Width(vp.Width).Render(desc)
	}
	vp.SetContent(desc)

	return &DetailPanel{
		task:       task,
		columnName: columnName,
		desc:       vp,
		styles:     New(),
	}
}

// Init initializes the detail panel
func (d *DetailPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *DetailPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "enter":
			return d, closeOverlay
		case "e":
			task := d.task
			return d, func() tea.Msg { return EditRequestMsg{Task: task} }
		case "g":
			d.desc.GotoTop()
			return d, nil
		case "G":
			d.desc.GotoBottom()
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.desc, cmd = d.desc.Update(msg)
	return d, cmd
}

// View renders the detail panel
func (d *DetailPanel) View() string {
	var b strings.Builder

	b.WriteString(d.styles.MenuHeader.Render(fmt.Sprintf("#%d %s", d.task.ID, d.task.Title)))
	b.WriteString("\n\n")

	due := ""
	if d.task.DueDate != nil && !d.task.DueDate.IsZero() {
		due = d.task.DueDate.Display()
	}
	created := ""
	if !d.task.CreatedAt.IsZero() {
		created = d.task.CreatedAt.Format("02/01/2006 15:04")
	}

	rows := []struct{ label, value string }{
		{"Coluna", d.columnName},
		{"Prioridade", d.task.Priority.String()},
		{"Responsável", d.task.Assignee},
		{"Prazo", due},
		{"Criada em", created},
	}
	for _, r := range rows {
		b.WriteString(d.styles.Label.Render(r.label))
		b.WriteString("  ")
		b.WriteString(d.value(r.value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(d.styles.MenuHeader.Render("Descrição"))
	b.WriteString("\n")
	if d.task.Description == "" {
		b.WriteString(d.styles.Muted.Render("sem descrição"))
	} else {
		b.WriteString(d.desc.View())
		if !d.desc.AtTop() || !d.desc.AtBottom() {
			b.WriteString("\n")
			b.WriteString(d.styles.Footer.Render(fmt.Sprintf("[j/k to scroll] %3.f%%", d.desc.ScrollPercent()*100)))
		}
	}

	b.WriteString("\n")
	b.WriteString(d.styles.Footer.Render("e: editar • Esc: fechar"))
	return b.String()
}

func (d *DetailPanel) value(s string) string {
	if s == "" {
		return d.styles.Muted.Render("—")
	}
	return d.styles.MenuItem.Render(s)
}

// Title returns the overlay title
func (d *DetailPanel) Title() string {
	return "Detalhes da tarefa"
}

// Size returns the overlay dimensions
func (d *DetailPanel) Size() (width, height int) {
	return detailWidth, detailDescHeight + 16
}
