package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/ui/styles"
)

// StatsOverlay shows task counts and overall progress
type StatsOverlay struct {
	stats   domain.Stats
	columns []domain.ColumnDef
	bar     progress.Model
	styles  *Styles
}

// NewStatsOverlay creates a stats panel listing columns in board order
func NewStatsOverlay(stats domain.Stats, columns []domain.ColumnDef) *StatsOverlay {
	bar := progress.New(
		progress.WithSolidFill(string(styles.Green)),
		progress.WithWidth(36),
		progress.WithoutPercentage(),
	)
	return &StatsOverlay{
		stats:   stats,
		columns: columns,
		bar:     bar,
		styles:  New(),
	}
}

// Init initializes the overlay
func (s *StatsOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (s *StatsOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "enter", "s":
			return s, closeOverlay
		}
	}
	return s, nil
}

// View renders the stats
func (s *StatsOverlay) View() string {
	var b strings.Builder

	row := func(label string, n int) {
		b.WriteString(s.styles.Label.Width(16).Render(label))
		b.WriteString(s.styles.MenuItem.Render(fmt.Sprintf("%4d", n)))
		b.WriteString("\n")
	}

	row("Total", s.stats.Total)
	row("Concluídas", s.stats.Done)
	row("Em andamento", s.stats.InProgress)
	row("Pendentes", s.stats.Pending)

	b.WriteString("\n")
	b.WriteString(s.bar.ViewAs(s.stats.Progress / 100))
	b.WriteString(s.styles.MenuKey.Render(fmt.Sprintf(" %.1f%%", s.stats.Progress)))
	b.WriteString("\n\n")

	b.WriteString(s.styles.MenuHeader.Render("Por coluna"))
	b.WriteString("\n")
	for _, c := range s.columns {
		row("  "+c.Name, s.stats.PerColumn[c.Key])
	}

	b.WriteString(s.styles.Footer.Render("Esc: fechar"))
	return b.String()
}

// Title returns the overlay title
func (s *StatsOverlay) Title() string {
	return "Estatísticas"
}

// Size returns the overlay dimensions
func (s *StatsOverlay) Size() (width, height int) {
	return 50, len(s.columns) + 14
}
