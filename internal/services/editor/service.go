// Package editor provides editing mode and view state management
package editor

import (
	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/types"
)

// Re-export Mode type for convenience
type Mode = types.Mode

// Mode constants
const (
	ModeNormal = types.ModeNormal
	ModeSearch = types.ModeSearch
	ModeDialog = types.ModeDialog
)

// ViewMode selects how the board is drawn
type ViewMode int

const (
	ViewBoard ViewMode = iota
	ViewList
)

// String returns the display name of the view
func (v ViewMode) String() string {
	if v == ViewList {
		return "lista"
	}
	return "quadro"
}

// Service manages editing state (mode, filter, view)
type Service struct {
	mode   Mode
	filter *domain.Filter
	view   ViewMode
}

// NewService creates a new editor service with defaults
func NewService() *Service {
	return &Service{
		mode:   ModeNormal,
		filter: domain.NewFilter(),
		view:   ViewBoard,
	}
}

// GetMode returns the current mode
func (s *Service) GetMode() Mode {
	return s.mode
}

// SetMode sets the current mode
func (s *Service) SetMode(mode Mode) {
	s.mode = mode
}

// EnterNormal switches to normal mode
func (s *Service) EnterNormal() {
	s.mode = ModeNormal
}

// EnterSearch switches to search mode
func (s *Service) EnterSearch() {
	s.mode = ModeSearch
}

// EnterDialog switches to dialog mode
func (s *Service) EnterDialog() {
	s.mode = ModeDialog
}

// IsNormal returns true if in normal mode
func (s *Service) IsNormal() bool {
	return s.mode == ModeNormal
}

// IsSearch returns true if in search mode
func (s *Service) IsSearch() bool {
	return s.mode == ModeSearch
}

// Filter management

// GetFilter returns the current filter
func (s *Service) GetFilter() *domain.Filter {
	return s.filter
}

// SetSearchQuery updates the search query in the filter
func (s *Service) SetSearchQuery(query string) {
	s.filter.SearchQuery = query
}

// ClearSearch clears the search query
func (s *Service) ClearSearch() {
	s.filter.SearchQuery = ""
}

// TogglePriorityFilter toggles a priority in the filter
func (s *Service) TogglePriorityFilter(priority domain.Priority) {
	s.filter.TogglePriority(priority)
}

// CyclePriorityFilter steps the filter through each single priority and back
// to none
func (s *Service) CyclePriorityFilter() {
	s.filter.CyclePriority()
}

// ClearFilters clears all filters
func (s *Service) ClearFilters() {
	s.filter.Clear()
}

// IsFilterActive returns true if any filter is active
func (s *Service) IsFilterActive() bool {
	return s.filter.IsActive()
}

// ApplyFilter filters a list of tasks
func (s *Service) ApplyFilter(tasks []domain.Task) []domain.Task {
	return s.filter.Apply(tasks)
}

// View management

// GetView returns the current view mode
func (s *Service) GetView() ViewMode {
	return s.view
}

// ToggleView switches between the board and the list and returns the new view
func (s *Service) ToggleView() ViewMode {
	if s.view == ViewBoard {
		s.view = ViewList
	} else {
		s.view = ViewBoard
	}
	return s.view
}
