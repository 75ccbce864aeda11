package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/types"
)

func viewLines(m Model) []string {
	return strings.Split(strings.TrimRight(m.View(), "\n"), "\n")
}

func TestViewHeight(t *testing.T) {
	m, _ := newTestModel(t)
	m.width = 80
	m.height = 24

	t.Run("normal view", func(t *testing.T) {
		lines := viewLines(m)
		if len(lines) > m.height {
			t.Errorf("Normal view is too tall: got %d lines, want %d", len(lines), m.height)
		}
	})

	t.Run("with overlay", func(t *testing.T) {
		m.overlayStack.Push(&testOverlay{})
		lines := viewLines(m)
		if len(lines) > m.height {
			t.Errorf("View with overlay is too tall: got %d lines, want %d", len(lines), m.height)
		}
		m.overlayStack.Pop()
	})

	t.Run("with toasts", func(t *testing.T) {
		m.toasts = append(m.toasts, types.Toast{
			Message: "test toast",
			Expires: time.Now().Add(time.Hour),
		})
		lines := viewLines(m)
		if len(lines) > m.height {
			t.Errorf("View with toasts is too tall: got %d lines, want %d", len(lines), m.height)
		}
	})

	t.Run("list view", func(t *testing.T) {
		m.editor.ToggleView()
		lines := viewLines(m)
		if len(lines) > m.height {
			t.Errorf("List view is too tall: got %d lines, want %d", len(lines), m.height)
		}
		m.editor.ToggleView()
	})
}

func TestView_Content(t *testing.T) {
	m, _ := newTestModel(t)

	out := ansi.Strip(m.View())

	assert.Contains(t, out, "Kanban Turis Tráfego")
	for _, col := range domain.DefaultColumns() {
		assert.Contains(t, out, col.Name)
	}
	assert.Contains(t, out, "Fix signage")
	assert.Contains(t, out, "@Ana")
	assert.Contains(t, out, "NORMAL")
	assert.Contains(t, out, "3 tarefas")
}

func TestView_FilterInStatusBar(t *testing.T) {
	m, _ := newTestModel(t)
	m.width = 200
	m, _ = update(t, m, press("f"))

	out := ansi.Strip(m.View())

	assert.Contains(t, out, "prioridade: Alta")
	assert.Contains(t, out, "1 de 3 tarefas")
}

func TestView_SearchBarAtBottom(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, press("/"))

	lines := viewLines(m)
	out := ansi.Strip(strings.Join(lines, "\n"))

	assert.Contains(t, out, "SEARCH")
	assert.Contains(t, ansi.Strip(lines[len(lines)-2]), "/ ")
}

func TestView_Loading(t *testing.T) {
	m := New(nil, newFakeService(), nil)
	m.width = 40
	m.height = 10

	assert.Contains(t, m.View(), "Carregando quadro...")
}

func TestFilterDescription(t *testing.T) {
	f := domain.NewFilter()
	assert.Empty(t, filterDescription(f))

	f.TogglePriority(domain.PriorityLow)
	f.TogglePriority(domain.PriorityHigh)
	f.SearchQuery = "cone"
	assert.Equal(t, `prioridade: Alta, Baixa  busca: "cone"`, filterDescription(f))
}

type testOverlay struct{}

func (o *testOverlay) View() string                            { return "test overlay" }
func (o *testOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return o, nil }
func (o *testOverlay) Init() tea.Cmd                           { return nil }
func (o *testOverlay) Title() string                           { return "Test" }
func (o *testOverlay) Size() (int, int)                        { return 20, 10 }
