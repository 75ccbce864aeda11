// Package overlay holds the modal dialogs drawn over the board.
package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

func closeOverlay() tea.Msg { return CloseOverlayMsg{} }

// Frame draws the overlay inside a bordered box headed by its title. A zero
// width from Size lets the content decide.
func Frame(o Overlay, s *Styles) string {
	body := o.View()
	if title := o.Title(); title != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, s.Title.Render(title), body)
	}

	box := s.Overlay
	if w, _ := o.Size(); w > 0 {
		box = box.Width(w)
	}
	return box.Render(body)
}

// Place centers the framed overlay on a width x height screen
func Place(o Overlay, s *Styles, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, Frame(o, s))
}
