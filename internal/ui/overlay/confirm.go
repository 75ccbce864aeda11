package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmAction names the operation waiting on a confirmation
type ConfirmAction string

const (
	ConfirmDelete ConfirmAction = "delete"
	ConfirmReset  ConfirmAction = "reset"
)

// ConfirmMsg carries the answer of a confirmation dialog. The receiver closes
// the dialog.
type ConfirmMsg struct {
	Action    ConfirmAction
	Payload   any
	Confirmed bool
}

// ConfirmDialog is a confirmation dialog overlay with Yes/No options
type ConfirmDialog struct {
	title    string
	message  string
	action   ConfirmAction
	payload  any
	styles   *Styles
	selected bool // true = Yes, false = No
}

// NewConfirmDialog creates a dialog that answers action. Payload travels back
// untouched in the ConfirmMsg.
func NewConfirmDialog(title, message string, action ConfirmAction, payload any) *ConfirmDialog {
	return &ConfirmDialog{
		title:   title,
		message: message,
		action:  action,
		payload: payload,
		styles:  New(),
	}
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key.String() {
	case "y", "Y":
		return c, c.answer(true)
	case "n", "N", "esc", "q":
		return c, c.answer(false)
	case "enter":
		return c, c.answer(c.selected)
	case "left", "h", "right", "l", "tab", "shift+tab":
		c.selected = !c.selected
	}
	return c, nil
}

func (c *ConfirmDialog) answer(yes bool) tea.Cmd {
	msg := ConfirmMsg{Action: c.action, Payload: c.payload, Confirmed: yes}
	return func() tea.Msg { return msg }
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		b.WriteString(c.styles.Danger.Render(c.message))
		b.WriteString("\n\n")
	}

	yesStyle, noStyle := c.styles.MenuItem, c.styles.MenuItemActive
	if c.selected {
		yesStyle, noStyle = c.styles.MenuItemActive, c.styles.MenuItem
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
		yesStyle.Render("[Y] Sim"), "    ", noStyle.Render("[N] Não")))
	b.WriteString("\n")
	b.WriteString(c.styles.Footer.Render("← → / Tab: Switch • Enter: Confirm • Esc: Cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Action returns the operation the dialog confirms
func (c *ConfirmDialog) Action() ConfirmAction {
	return c.action
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	messageLines := len(strings.Split(c.message, "\n"))
	return 56, messageLines + 6
}
