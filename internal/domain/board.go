package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Well-known column keys of the default board
const (
	ColumnBacklog    = "backlog"
	ColumnToDo       = "to_do"
	ColumnInProgress = "in_progress"
	ColumnReview     = "review"
	ColumnDone       = "done"
)

// ColumnDef names a column without its tasks
type ColumnDef struct {
	Key  string
	Name string
}

// DefaultColumns returns the standard five-stage workflow
func DefaultColumns() []ColumnDef {
	return []ColumnDef{
		{Key: ColumnBacklog, Name: "Backlog"},
		{Key: ColumnToDo, Name: "A Fazer"},
		{Key: ColumnInProgress, Name: "Em Progresso"},
		{Key: ColumnReview, Name: "Revisão"},
		{Key: ColumnDone, Name: "Concluído"},
	}
}

// Column is a named, ordered bucket of tasks
type Column struct {
	Key   string `json:"-"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// Board is the persisted aggregate. Column order is display order.
type Board struct {
	Columns Columns `json:"columns"`
	LastID  int     `json:"last_id"`
}

// NewBoard returns an empty board with the given columns
func NewBoard(defs []ColumnDef) *Board {
	b := &Board{Columns: make(Columns, 0, len(defs))}
	for _, d := range defs {
		b.Columns = append(b.Columns, Column{Key: d.Key, Name: d.Name, Tasks: []Task{}})
	}
	return b
}

// ColumnIndex returns the position of the column with key, or -1
func (b *Board) ColumnIndex(key string) int {
	for i := range b.Columns {
		if b.Columns[i].Key == key {
			return i
		}
	}
	return -1
}

// Column returns the column with key
func (b *Board) Column(key string) (*Column, bool) {
	i := b.ColumnIndex(key)
	if i < 0 {
		return nil, false
	}
	return &b.Columns[i], true
}

// Defs returns the column keys and names in order
func (b *Board) Defs() []ColumnDef {
	defs := make([]ColumnDef, len(b.Columns))
	for i, c := range b.Columns {
		defs[i] = ColumnDef{Key: c.Key, Name: c.Name}
	}
	return defs
}

// Neighbor returns the key of the column delta positions away from key
func (b *Board) Neighbor(key string, delta int) (string, error) {
	i := b.ColumnIndex(key)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	j := i + delta
	if j < 0 || j >= len(b.Columns) {
		return "", ErrNoAdjacentColumn
	}
	return b.Columns[j].Key, nil
}

// FindTask locates a task anywhere on the board
func (b *Board) FindTask(id int) (Task, bool) {
	for _, c := range b.Columns {
		for _, t := range c.Tasks {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Task{}, false
}

// TaskCount returns the number of tasks across all columns
func (b *Board) TaskCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Tasks)
	}
	return n
}

func (b *Board) column(key string) (*Column, error) {
	c, ok := b.Column(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	return c, nil
}

// CreateTask mints the next id and appends a new task to the column
func (b *Board) CreateTask(key string, f TaskFields, now time.Time) (Task, error) {
	c, err := b.column(key)
	if err != nil {
		return Task{}, err
	}
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	priority := f.Priority
	if priority == "" {
		priority = DefaultPriority
	}
	if !priority.Valid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	b.LastID++
	t := Task{
		ID:          b.LastID,
		Title:       title,
		Description: f.Description,
		Priority:    priority,
		Assignee:    f.Assignee,
		DueDate:     f.DueDate,
		CreatedAt:   NewTimestamp(now),
		Column:      key,
	}
	c.Tasks = append(c.Tasks, t)
	return t, nil
}

// MoveTask removes the task from one column and appends it to another
func (b *Board) MoveTask(id int, from, to string) (Task, error) {
	src, err := b.column(from)
	if err != nil {
		return Task{}, err
	}
	dst, err := b.column(to)
	if err != nil {
		return Task{}, err
	}
	i := indexOf(src.Tasks, id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: task %d in %s", ErrNotFound, id, from)
	}

	t := src.Tasks[i]
	src.Tasks = slices.Delete(src.Tasks, i, i+1)
	t.Column = to
	dst.Tasks = append(dst.Tasks, t)
	return t, nil
}

// EditTask applies patch to the task in the given column
func (b *Board) EditTask(id int, key string, p TaskPatch) (Task, error) {
	c, err := b.column(key)
	if err != nil {
		return Task{}, err
	}
	i := indexOf(c.Tasks, id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: task %d in %s", ErrNotFound, id, key)
	}

	t := c.Tasks[i]
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return Task{}, ErrEmptyTitle
		}
		t.Title = title
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, *p.Priority)
		}
		t.Priority = *p.Priority
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.ClearDueDate {
		t.DueDate = nil
	}
	c.Tasks[i] = t
	return t, nil
}

// DeleteTask removes the task from the column and reports whether it was there
func (b *Board) DeleteTask(id int, key string) (bool, error) {
	c, err := b.column(key)
	if err != nil {
		return false, err
	}
	n := len(c.Tasks)
	c.Tasks = slices.DeleteFunc(c.Tasks, func(t Task) bool { return t.ID == id })
	return len(c.Tasks) != n, nil
}

func indexOf(tasks []Task, id int) int {
	return slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
}

// Repair describes one fix applied by Normalize
type Repair struct {
	TaskID int
	Reason string
}

// Normalize restores board invariants after loading untrusted data
func (b *Board) Normalize() []Repair {
	var repairs []Repair
	seen := make(map[int]bool)
	maxID := 0
	for _, c := range b.Columns {
		for _, t := range c.Tasks {
			maxID = max(maxID, t.ID)
		}
	}
	if b.LastID < maxID {
		repairs = append(repairs, Repair{Reason: fmt.Sprintf("last_id %d raised to %d", b.LastID, maxID)})
		b.LastID = maxID
	}

	for ci := range b.Columns {
		c := &b.Columns[ci]
		if c.Tasks == nil {
			c.Tasks = []Task{}
		}
		for ti := range c.Tasks {
			t := &c.Tasks[ti]
			if seen[t.ID] || t.ID <= 0 {
				old := t.ID
				b.LastID++
				t.ID = b.LastID
				repairs = append(repairs, Repair{TaskID: t.ID, Reason: fmt.Sprintf("duplicate id %d reassigned", old)})
			}
			seen[t.ID] = true
			if t.Column != c.Key {
				repairs = append(repairs, Repair{TaskID: t.ID, Reason: fmt.Sprintf("column %q set to %q", t.Column, c.Key)})
				t.Column = c.Key
			}
			if t.DueDate != nil && t.DueDate.IsZero() {
				repairs = append(repairs, Repair{TaskID: t.ID, Reason: "empty due_date cleared"})
				t.DueDate = nil
			}
			if !t.Priority.Valid() {
				repairs = append(repairs, Repair{TaskID: t.ID, Reason: fmt.Sprintf("priority %q set to %q", t.Priority, DefaultPriority)})
				t.Priority = DefaultPriority
			}
		}
	}
	return repairs
}

// Columns keeps column order when encoded as a JSON object
type Columns []Column

func (cs Columns) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range cs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(c.Key)
		if err != nil {
			return nil, err
		}
		tasks := c.Tasks
		if tasks == nil {
			tasks = []Task{}
		}
		value, err := encodeJSON(struct {
			Name  string `json:"name"`
			Tasks []Task `json:"tasks"`
		}{c.Name, tasks})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (cs *Columns) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("columns: expected object, got %v", tok)
	}

	var out Columns
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("columns: expected key, got %v", tok)
		}
		var c Column
		if err := dec.Decode(&c); err != nil {
			return fmt.Errorf("columns[%s]: %w", key, err)
		}
		c.Key = key
		out = append(out, c)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*cs = out
	return nil
}

// encodeJSON marshals v without HTML escaping or a trailing newline
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
