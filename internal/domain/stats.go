package domain

// Stats summarizes progress across the board
type Stats struct {
	Total      int            `json:"total"`
	Done       int            `json:"done"`
	InProgress int            `json:"in_progress"`
	Pending    int            `json:"pending"`
	Progress   float64        `json:"progress"`
	PerColumn  map[string]int `json:"per_column"`
}

// Stats counts tasks per workflow stage. In progress covers in_progress and
// review, pending covers backlog and to_do.
func (b *Board) Stats() Stats {
	s := Stats{PerColumn: make(map[string]int, len(b.Columns))}
	for _, c := range b.Columns {
		n := len(c.Tasks)
		s.Total += n
		s.PerColumn[c.Key] = n
		switch c.Key {
		case ColumnDone:
			s.Done += n
		case ColumnInProgress, ColumnReview:
			s.InProgress += n
		case ColumnBacklog, ColumnToDo:
			s.Pending += n
		}
	}
	if s.Total > 0 {
		s.Progress = float64(s.Done) / float64(s.Total) * 100
	}
	return s
}
