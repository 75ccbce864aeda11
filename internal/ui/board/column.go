package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/kanban/internal/ui/styles"
)

// renderColumn renders a kanban column with header and task cards
func renderColumn(
	col Column,
	index int,
	cursorTask int,
	isActive bool,
	width int,
	height int,
	opts Options,
	s *styles.Styles,
) string {
	headerStyle := s.ColumnHeader.Foreground(styles.ColumnColor(index))
	if isActive {
		headerStyle = s.ColumnHeaderActive
	}

	count := fmt.Sprintf("%d", col.Total)
	if len(col.Tasks) != col.Total {
		count = fmt.Sprintf("%d/%d", len(col.Tasks), col.Total)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		headerStyle.Render(col.Title), " ", s.ColumnCount.Render("("+count+")"))

	// Column border (2) and padding (2)
	cardWidth := max(width-4, 8)
	// Header line and column border
	available := max(height-3, 1)

	var body string
	if len(col.Tasks) == 0 {
		body = s.Empty.Render("empty")
	} else {
		cards := make([]string, len(col.Tasks))
		for i, task := range col.Tasks {
			cards[i] = renderCard(task, isActive && i == cursorTask, cardWidth, opts, s)
		}
		body = strings.Join(visibleCards(cards, cursorTask, available), "\n")
	}

	columnStyle := s.Column
	if isActive {
		columnStyle = s.ColumnActive
	}
	content := columnStyle.Width(width - 2).Height(available).MaxHeight(available + 2).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

// visibleCards returns the window of cards that fits in height lines while
// keeping the cursor card on screen
func visibleCards(cards []string, cursor, height int) []string {
	cursor = max(0, min(cursor, len(cards)-1))

	start := 0
	for start < cursor && linesOf(cards[start:cursor+1]) > height {
		start++
	}

	end := start
	used := 0
	for end < len(cards) {
		h := lipgloss.Height(cards[end])
		if end > start && used+h > height {
			break
		}
		used += h
		end++
	}
	return cards[start:end]
}

func linesOf(cards []string) int {
	n := 0
	for _, c := range cards {
		n += lipgloss.Height(c)
	}
	return n
}
