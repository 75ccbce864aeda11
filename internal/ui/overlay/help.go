package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// Categories lists every board keybinding, grouped for the help screen
var Categories = []KeyCategory{
	{
		Name: "Navegação",
		Bindings: []KeyBinding{
			{Key: "h/l ←/→", Description: "Coluna anterior/seguinte"},
			{Key: "j/k ↓/↑", Description: "Tarefa abaixo/acima"},
			{Key: "g/G", Description: "Topo/fim da coluna"},
			{Key: "0/$", Description: "Primeira/última coluna"},
		},
	},
	{
		Name: "Tarefas",
		Bindings: []KeyBinding{
			{Key: "c", Description: "Nova tarefa na coluna"},
			{Key: "e", Description: "Editar tarefa"},
			{Key: "H/L", Description: "Mover para coluna anterior/seguinte"},
			{Key: "d", Description: "Excluir tarefa"},
			{Key: "Enter", Description: "Detalhes"},
		},
	},
	{
		Name: "Quadro",
		Bindings: []KeyBinding{
			{Key: "/", Description: "Buscar"},
			{Key: "f", Description: "Alternar filtro de prioridade"},
			{Key: "F", Description: "Menu de filtros"},
			{Key: "Esc", Description: "Limpar filtros"},
			{Key: "s", Description: "Estatísticas"},
			{Key: "x", Description: "Exportar JSON"},
			{Key: "R", Description: "Zerar quadro"},
			{Key: "r", Description: "Recarregar do disco"},
		},
	},
	{
		Name: "Outros",
		Bindings: []KeyBinding{
			{Key: "Tab", Description: "Alternar quadro/lista"},
			{Key: "?", Description: "Ajuda (esta tela)"},
			{Key: "q", Description: "Sair"},
		},
	},
}

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles     *Styles
	scroll     int
	viewHeight int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		styles:     New(),
		viewHeight: 20,
	}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch key.String() {
	case "esc", "q", "?":
		return h, closeOverlay
	case "j", "down":
		h.scroll = min(h.scroll+1, h.maxScroll())
	case "k", "up":
		h.scroll = max(h.scroll-1, 0)
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll()
	}
	return h, nil
}

func (h *HelpOverlay) lines() []string {
	var lines []string
	for i, cat := range Categories {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, h.styles.MenuHeader.Render(cat.Name+":"))
		for _, binding := range cat.Bindings {
			key := h.styles.MenuKey.Width(9).Render(binding.Key)
			lines = append(lines, "  "+key+" "+h.styles.MenuItem.Render(binding.Description))
		}
	}
	return lines
}

func (h *HelpOverlay) maxScroll() int {
	return max(0, len(h.lines())-h.viewHeight)
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	lines := h.lines()
	start := min(h.scroll, h.maxScroll())
	end := min(start+h.viewHeight, len(lines))

	result := strings.Join(lines[start:end], "\n")
	if h.maxScroll() > 0 {
		result += "\n" + h.styles.Footer.Render("[j/k to scroll, g/G to jump]")
	}
	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Ajuda"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return 56, h.viewHeight + 6
}
