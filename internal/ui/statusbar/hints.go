package statusbar

import "github.com/riordanpawley/kanban/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "h/l: colunas  j/k: tarefas  c: nova  H/L: mover  ?: ajuda  q: sair"
	case types.ModeSearch:
		return "Digite para buscar  Enter: confirmar  Esc: cancelar"
	case types.ModeDialog:
		// Dialogs render their own hints
		return ""
	default:
		return ""
	}
}
