package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/domain"
)

// FilterChangedMsg is emitted after the filter menu changes the filter
type FilterChangedMsg struct{}

func filterChanged() tea.Msg { return FilterChangedMsg{} }

// priorityKeys binds a key to each priority in the filter menu
var priorityKeys = []struct {
	key      string
	priority domain.Priority
}{
	{"a", domain.PriorityHigh},
	{"m", domain.PriorityMedium},
	{"b", domain.PriorityLow},
}

// FilterMenu toggles the priority filter of the board. It edits the filter in
// place.
type FilterMenu struct {
	filter *domain.Filter
	styles *Styles
}

// NewFilterMenu creates a new filter menu for the given filter
func NewFilterMenu(filter *domain.Filter) *FilterMenu {
	return &FilterMenu{
		filter: filter,
		styles: New(),
	}
}

// Init initializes the menu
func (m *FilterMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *FilterMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := key.String(); k {
	case "esc", "q", "enter", "F":
		return m, closeOverlay
	case "c":
		m.filter.Clear()
		return m, filterChanged
	default:
		for _, pk := range priorityKeys {
			if pk.key == k {
				m.filter.TogglePriority(pk.priority)
				return m, filterChanged
			}
		}
	}
	return m, nil
}

// View renders the menu
func (m *FilterMenu) View() string {
	var b strings.Builder

	b.WriteString(m.styles.MenuHeader.Render("Prioridade"))
	b.WriteString("\n")
	for _, pk := range priorityKeys {
		check := "[ ]"
		style := m.styles.MenuItem
		if m.filter.Priority[pk.priority] {
			check = "[x]"
			style = m.styles.MenuItemActive
		}
		b.WriteString("  ")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
			m.styles.MenuKey.Render(pk.key), " ", style.Render(check+" "+pk.priority.String())))
		b.WriteString("\n")
	}

	if q := m.filter.SearchQuery; q != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.MenuHeader.Render("Busca"))
		b.WriteString("\n  ")
		b.WriteString(m.styles.MenuItem.Render(q))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("c: limpar tudo • Esc: fechar"))
	return b.String()
}

// Title returns the menu title
func (m *FilterMenu) Title() string {
	return "Filtros"
}

// Size returns the menu dimensions
func (m *FilterMenu) Size() (width, height int) {
	return 40, 12
}
