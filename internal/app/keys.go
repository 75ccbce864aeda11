package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the board keybindings
type KeyMap struct {
	// Navigation
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	FirstColumn key.Binding
	LastColumn  key.Binding
	HalfDown    key.Binding
	HalfUp      key.Binding

	// Tasks
	Create    key.Binding
	Edit      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Delete    key.Binding
	Detail    key.Binding

	// Board
	Search       key.Binding
	CycleFilter  key.Binding
	FilterMenu   key.Binding
	ClearFilters key.Binding
	ToggleView   key.Binding
	Stats        key.Binding
	Export       key.Binding
	Reload       key.Binding
	Reset        key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/l", "colunas"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "próxima coluna"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "acima"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/k", "tarefas"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "topo"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "fim"),
		),
		FirstColumn: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "primeira coluna"),
		),
		LastColumn: key.NewBinding(
			key.WithKeys("$"),
			key.WithHelp("$", "última coluna"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "meia página abaixo"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "meia página acima"),
		),
		Create: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "nova"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "editar"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "mover ←"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("H/L", "mover"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "excluir"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "detalhes"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "buscar"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "prioridade"),
		),
		FilterMenu: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "filtros"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "limpar filtros"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "quadro/lista"),
		),
		Stats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "estatísticas"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "exportar"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recarregar"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reiniciar"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ajuda"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "sair"),
		),
	}
}

// ShortHelp returns the keybindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Left, k.Down, k.Create, k.MoveRight,
		k.Search, k.Help, k.Quit,
	}
}

// FullHelp returns all keybindings grouped by category.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Top, k.Bottom, k.FirstColumn, k.LastColumn, k.HalfDown, k.HalfUp},
		{k.Create, k.Edit, k.MoveLeft, k.MoveRight, k.Delete, k.Detail},
		{k.Search, k.CycleFilter, k.FilterMenu, k.ClearFilters, k.ToggleView, k.Stats, k.Export, k.Reload, k.Reset},
		{k.Help, k.Quit},
	}
}
