package domain

import (
	"strings"
)

// Filter represents task filtering state
type Filter struct {
	Priority    map[Priority]bool
	SearchQuery string
}

// NewFilter creates a new empty filter
func NewFilter() *Filter {
	return &Filter{
		Priority: make(map[Priority]bool),
	}
}

// IsActive returns true if any filter is active
func (f *Filter) IsActive() bool {
	return len(f.Priority) > 0 || f.SearchQuery != ""
}

// Apply filters a list of tasks
func (f *Filter) Apply(tasks []Task) []Task {
	if !f.IsActive() {
		return tasks
	}

	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			result = append(result, task)
		}
	}
	return result
}

// Matches returns true if the task passes all active filters
// Uses AND logic between filter types, OR logic within filter types
func (f *Filter) Matches(t Task) bool {
	if len(f.Priority) > 0 && !f.Priority[t.Priority] {
		return false
	}

	// Search query (case-insensitive, matches title, description or assignee)
	if f.SearchQuery != "" {
		query := strings.ToLower(f.SearchQuery)
		if !strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) &&
			!strings.Contains(strings.ToLower(t.Assignee), query) {
			return false
		}
	}

	return true
}

// Clear resets all filters
func (f *Filter) Clear() {
	f.Priority = make(map[Priority]bool)
	f.SearchQuery = ""
}

// TogglePriority toggles a priority filter
func (f *Filter) TogglePriority(p Priority) {
	if f.Priority[p] {
		delete(f.Priority, p)
	} else {
		f.Priority[p] = true
	}
}

// CyclePriority steps through no filter, then each single priority
func (f *Filter) CyclePriority() {
	all := Priorities()
	next := 0
	if len(f.Priority) == 1 {
		for i, p := range all {
			if f.Priority[p] {
				next = i + 1
			}
		}
	}
	f.Priority = make(map[Priority]bool)
	if next < len(all) {
		f.Priority[all[next]] = true
	}
}

// ActivePriority returns the single selected priority, if exactly one is set
func (f *Filter) ActivePriority() (Priority, bool) {
	if len(f.Priority) != 1 {
		return "", false
	}
	for p := range f.Priority {
		return p, true
	}
	return "", false
}
