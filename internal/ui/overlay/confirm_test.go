package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewConfirmDialog(t *testing.T) {
	dialog := NewConfirmDialog("Excluir tarefa", "Excluir #3?", ConfirmDelete, 3)

	if dialog.Title() != "Excluir tarefa" {
		t.Errorf("expected title %q, got %q", "Excluir tarefa", dialog.Title())
	}
	if dialog.Action() != ConfirmDelete {
		t.Errorf("expected action %q, got %q", ConfirmDelete, dialog.Action())
	}
	if dialog.selected {
		t.Error("expected default selection to be No")
	}
}

func TestConfirmDialog_Size(t *testing.T) {
	dialog := NewConfirmDialog("Title", "line one\nline two", ConfirmReset, nil)

	width, height := dialog.Size()
	if width != 56 {
		t.Errorf("expected width 56, got %d", width)
	}
	if height != 8 {
		t.Errorf("expected height 8, got %d", height)
	}
}

func TestConfirmDialog_Keys(t *testing.T) {
	tests := []struct {
		name string
		msgs []tea.KeyMsg
		want bool
	}{
		{"lowercase y", []tea.KeyMsg{keyRune('y')}, true},
		{"uppercase Y", []tea.KeyMsg{keyRune('Y')}, true},
		{"lowercase n", []tea.KeyMsg{keyRune('n')}, false},
		{"escape", []tea.KeyMsg{{Type: tea.KeyEsc}}, false},
		{"enter defaults to no", []tea.KeyMsg{{Type: tea.KeyEnter}}, false},
		{"tab then enter", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}}, true},
		{"l then h then enter", []tea.KeyMsg{keyRune('l'), keyRune('h'), {Type: tea.KeyEnter}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialog := NewConfirmDialog("Zerar quadro", "Apagar tudo?", ConfirmReset, "payload")

			var cmd tea.Cmd
			for _, m := range tt.msgs {
				_, cmd = dialog.Update(m)
			}
			if cmd == nil {
				t.Fatal("expected command, got nil")
			}

			msg, ok := cmd().(ConfirmMsg)
			if !ok {
				t.Fatalf("expected ConfirmMsg, got %T", cmd())
			}
			if msg.Confirmed != tt.want {
				t.Errorf("Confirmed = %v, want %v", msg.Confirmed, tt.want)
			}
			if msg.Action != ConfirmReset {
				t.Errorf("Action = %q, want %q", msg.Action, ConfirmReset)
			}
			if msg.Payload != "payload" {
				t.Errorf("Payload = %v, want payload", msg.Payload)
			}
		})
	}
}

func TestConfirmDialog_IgnoresOtherInput(t *testing.T) {
	dialog := NewConfirmDialog("Title", "Message", ConfirmDelete, nil)

	if _, cmd := dialog.Update(keyRune('x')); cmd != nil {
		t.Error("unbound key should not produce a command")
	}
	if _, cmd := dialog.Update(tea.WindowSizeMsg{Width: 80}); cmd != nil {
		t.Error("non-key message should not produce a command")
	}
}

func TestConfirmDialog_View(t *testing.T) {
	dialog := NewConfirmDialog("Title", "Excluir #3 \"Pintar faixa\"?", ConfirmDelete, 3)

	view := ansi.Strip(dialog.View())

	for _, want := range []string{"Pintar faixa", "[Y] Sim", "[N] Não", "Esc: Cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
