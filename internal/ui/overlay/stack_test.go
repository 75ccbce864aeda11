package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// mockOverlay is a simple overlay implementation for testing
type mockOverlay struct {
	title   string
	width   int
	height  int
	presses int
}

func (m mockOverlay) Init() tea.Cmd {
	return nil
}

func (m mockOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "esc" {
			return m, closeOverlay
		}
		m.presses++
	}
	return m, nil
}

func (m mockOverlay) View() string {
	return "body of " + m.title
}

func (m mockOverlay) Title() string {
	return m.title
}

func (m mockOverlay) Size() (width, height int) {
	return m.width, m.height
}

var _ Overlay = mockOverlay{}

func TestStack_PushPop(t *testing.T) {
	stack := NewStack()
	if !stack.IsEmpty() || stack.Len() != 0 {
		t.Fatal("new stack should be empty")
	}
	if stack.Pop() != nil {
		t.Error("Pop on empty stack should return nil")
	}
	if stack.Current() != nil {
		t.Error("Current on empty stack should return nil")
	}

	stack.Push(mockOverlay{title: "one"})
	stack.Push(mockOverlay{title: "two"})

	if stack.Len() != 2 {
		t.Errorf("Len = %d, want 2", stack.Len())
	}
	if got := stack.Current().Title(); got != "two" {
		t.Errorf("Current = %q, want two", got)
	}
	if got := stack.Pop().Title(); got != "two" {
		t.Errorf("Pop = %q, want two", got)
	}
	if got := stack.Current().Title(); got != "one" {
		t.Errorf("Current after pop = %q, want one", got)
	}
}

func TestStack_Clear(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "one"})
	stack.Push(mockOverlay{title: "two"})

	stack.Clear()

	if !stack.IsEmpty() {
		t.Error("stack should be empty after Clear")
	}
}

func TestStack_UpdateReplacesTop(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "one"})

	stack.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	stack.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	top := stack.Current().(mockOverlay)
	if top.presses != 2 {
		t.Errorf("value overlay should be stored back, presses = %d", top.presses)
	}
}

func TestStack_CloseOverlayMsgPops(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "one"})
	stack.Push(mockOverlay{title: "two"})

	cmd := stack.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should produce a close command")
	}
	stack.Update(cmd())

	if stack.Len() != 1 || stack.Current().Title() != "one" {
		t.Errorf("close should pop only the top overlay, len = %d", stack.Len())
	}
}

func TestStack_UpdateEmpty(t *testing.T) {
	if cmd := NewStack().Update(CloseOverlayMsg{}); cmd != nil {
		t.Error("empty stack should ignore messages")
	}
}

func TestStack_View(t *testing.T) {
	stack := NewStack()
	s := New()
	if stack.View(s, 80, 24) != "" {
		t.Error("empty stack should render nothing")
	}

	stack.Push(mockOverlay{title: "Ajuda", width: 30})
	view := stack.View(s, 80, 24)

	plain := ansi.Strip(view)
	if !strings.Contains(plain, "Ajuda") || !strings.Contains(plain, "body of Ajuda") {
		t.Errorf("view should contain title and body, got:\n%s", plain)
	}
	if lines := strings.Split(view, "\n"); len(lines) != 24 {
		t.Errorf("overlay should be placed on a 24 line screen, got %d lines", len(lines))
	}
}
