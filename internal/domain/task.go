package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Task is a card on the board
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Assignee    string    `json:"assignee"`
	DueDate     *Date     `json:"due_date"`
	CreatedAt   Timestamp `json:"created_at"`
	Column      string    `json:"column"`
}

// Preview returns the description cut to n runes, with "..." appended when
// anything was cut
func (t Task) Preview(n int) string {
	r := []rune(t.Description)
	if n <= 0 || len(r) <= n {
		return t.Description
	}
	return string(r[:n]) + "..."
}

// Overdue reports whether the due date is before the day of now
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// TaskFields holds the user-supplied fields of a new task
type TaskFields struct {
	Title       string
	Description string
	Priority    Priority
	Assignee    string
	DueDate     *Date
}

// TaskPatch describes a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Assignee    *string
	DueDate     *Date
	// ClearDueDate removes the due date. It wins over DueDate.
	ClearDueDate bool
}

// IsEmpty reports whether the patch changes nothing
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Priority == nil &&
		p.Assignee == nil &&
		p.DueDate == nil &&
		!p.ClearDueDate
}

// Priority is one of the fixed urgency levels
type Priority string

const (
	PriorityHigh   Priority = "Alta"
	PriorityMedium Priority = "Média"
	PriorityLow    Priority = "Baixa"
)

// DefaultPriority is used when a task is created without one
const DefaultPriority = PriorityMedium

// Priorities returns all priorities from most to least urgent
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Level returns 0 for the most urgent priority
func (p Priority) Level() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// String returns the display string
func (p Priority) String() string {
	return string(p)
}

// ParsePriority accepts the stored names plus a few common aliases,
// case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alta", "high", "h":
		return PriorityHigh, nil
	case "média", "media", "medium", "m":
		return PriorityMedium, nil
	case "baixa", "low", "l":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Date is a calendar date without time of day, stored as YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate returns the date part of t
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD. A full timestamp is accepted and truncated.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return Date{t}, nil
	}
	if ts, err := ParseTimestamp(s); err == nil {
		return NewDate(ts.Time), nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// Display formats the date as dd/mm/YYYY
func (d Date) Display() string {
	return d.Format("02/01/2006")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads YYYY-MM-DD. An empty string decodes to the zero
// date, which Board.Normalize clears.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Timestamp is a wall-clock time with microseconds included only when
// non-zero. Local times are serialized without a zone; a time parsed with
// a foreign offset keeps it.
type Timestamp struct {
	time.Time
}

const timestampLayout = "2006-01-02T15:04:05"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	timestampLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// NewTimestamp truncates t to microseconds in local time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.In(time.Local).Truncate(time.Microsecond)}
}

// ParseTimestamp accepts RFC 3339 and zone-less ISO timestamps
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

// String formats the timestamp as YYYY-MM-DDTHH:MM:SS[.ffffff][±HH:MM]
func (ts Timestamp) String() string {
	s := ts.Format(timestampLayout)
	if us := ts.Nanosecond() / int(time.Microsecond); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	if ts.Location() != time.Local {
		s += ts.Format("Z07:00")
	}
	return s
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
