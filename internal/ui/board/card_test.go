package board

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/ui/styles"
)

// stripANSI removes ANSI escape codes from a string for testing
func stripANSI(s string) string {
	return ansi.Strip(s)
}

func testOptions() Options {
	return Options{
		Width:   120,
		Height:  30,
		Preview: 80,
		Now:     time.Date(2025, 10, 16, 9, 0, 0, 0, time.Local),
	}
}

func date(y int, m time.Month, d int) *domain.Date {
	v := domain.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &v
}

func TestRenderCard_Basic(t *testing.T) {
	s := styles.New()
	task := domain.Task{
		ID:       7,
		Title:    "Fix signage",
		Priority: domain.PriorityHigh,
		Column:   domain.ColumnBacklog,
	}

	stripped := stripANSI(RenderCard(task, false, 30, testOptions(), s))

	if !strings.Contains(stripped, "Fix signage") {
		t.Errorf("Card should contain task title, got: %s", stripped)
	}
	if !strings.Contains(stripped, "Alta") {
		t.Errorf("Card should contain priority badge, got: %s", stripped)
	}
	if !strings.Contains(stripped, "#7") {
		t.Errorf("Card should contain task id, got: %s", stripped)
	}
	if strings.Contains(stripped, "▶") {
		t.Errorf("Non-cursor card should not show cursor, got: %s", stripped)
	}
}

func TestRenderCard_Cursor(t *testing.T) {
	s := styles.New()
	task := domain.Task{ID: 1, Title: "Walk", Priority: domain.PriorityLow}

	stripped := stripANSI(RenderCard(task, true, 30, testOptions(), s))

	if !strings.Contains(stripped, "▶") {
		t.Errorf("Cursor card should show cursor, got: %s", stripped)
	}
}

func TestRenderCard_Details(t *testing.T) {
	s := styles.New()
	task := domain.Task{
		ID:          3,
		Title:       "Paint crossing",
		Description: strings.Repeat("x", 100),
		Priority:    domain.PriorityMedium,
		Assignee:    "Ana",
		DueDate:     date(2025, 10, 20),
	}
	opts := testOptions()
	opts.Preview = 10

	stripped := stripANSI(RenderCard(task, false, 40, opts, s))

	if !strings.Contains(stripped, "xxxxxxxxxx...") {
		t.Errorf("Card should contain truncated description, got: %s", stripped)
	}
	if strings.Contains(stripped, strings.Repeat("x", 11)) {
		t.Errorf("Description should be cut at the preview length, got: %s", stripped)
	}
	if !strings.Contains(stripped, "@Ana") {
		t.Errorf("Card should contain assignee, got: %s", stripped)
	}
	if !strings.Contains(stripped, "20/10/2025") {
		t.Errorf("Card should contain due date as dd/mm/YYYY, got: %s", stripped)
	}
}

func TestRenderCard_OmitsEmptyFields(t *testing.T) {
	s := styles.New()
	task := domain.Task{ID: 1, Title: "Bare", Priority: domain.PriorityMedium}

	result := RenderCard(task, false, 30, testOptions(), s)

	// Border, badge line and title
	if got := lipgloss.Height(result); got != 4 {
		t.Errorf("Bare card height = %d, want 4\n%s", got, stripANSI(result))
	}
}

func TestRenderCard_Width(t *testing.T) {
	s := styles.New()
	task := domain.Task{ID: 1, Title: "A very long title that certainly needs to wrap across lines", Priority: domain.PriorityHigh}

	result := RenderCard(task, false, 24, testOptions(), s)

	for _, line := range strings.Split(result, "\n") {
		if w := lipgloss.Width(line); w > 24 {
			t.Errorf("card line wider than 24: %d %q", w, stripANSI(line))
		}
	}
}
