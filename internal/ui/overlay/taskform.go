package overlay

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/riordanpawley/kanban/internal/domain"
)

// TaskSubmittedMsg is emitted when the task form is completed. The receiver
// closes the form. Fields is set for new tasks, Patch for edits.
type TaskSubmittedMsg struct {
	Edit   bool
	TaskID int
	Column string
	Fields domain.TaskFields
	Patch  domain.TaskPatch
}

// formBindings holds the field values on the heap so that huh's Value()
// pointers stay valid while the overlay is copied around
type formBindings struct {
	title       string
	description string
	priority    domain.Priority
	assignee    string
	dueDate     string
	column      string
}

// TaskForm creates or edits a task
type TaskForm struct {
	form   *huh.Form
	fb     *formBindings
	edit   bool
	taskID int
	// origin is the column the edited task lives in
	origin string
}

// NewCreateTaskForm returns a form for a new task. The column select starts
// on column.
func NewCreateTaskForm(columns []domain.ColumnDef, column string) *TaskForm {
	f := &TaskForm{
		fb: &formBindings{
			priority: domain.DefaultPriority,
			column:   column,
		},
	}
	f.form = f.build(columns)
	return f
}

// NewEditTaskForm returns a form prefilled with task
func NewEditTaskForm(task domain.Task) *TaskForm {
	fb := &formBindings{
		title:       task.Title,
		description: task.Description,
		priority:    task.Priority,
		assignee:    task.Assignee,
		column:      task.Column,
	}
	if !fb.priority.Valid() {
		fb.priority = domain.DefaultPriority
	}
	if task.DueDate != nil && !task.DueDate.IsZero() {
		fb.dueDate = task.DueDate.String()
	}

	f := &TaskForm{
		fb:     fb,
		edit:   true,
		taskID: task.ID,
		origin: task.Column,
	}
	f.form = f.build(nil)
	return f
}

func (f *TaskForm) build(columns []domain.ColumnDef) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("title").
			Title("Título").
			Placeholder("O que precisa ser feito?").
			CharLimit(200).
			Value(&f.fb.title),
		huh.NewText().
			Key("description").
			Title("Descrição").
			Placeholder("Detalhes opcionais...").
			CharLimit(2000).
			Lines(4).
			Value(&f.fb.description),
		huh.NewSelect[domain.Priority]().
			Key("priority").
			Title("Prioridade").
			Options(priorityOptions()...).
			Value(&f.fb.priority),
		huh.NewInput().
			Key("assignee").
			Title("Responsável").
			Value(&f.fb.assignee),
		huh.NewInput().
			Key("due_date").
			Title("Prazo").
			Placeholder("YYYY-MM-DD (opcional)").
			Value(&f.fb.dueDate).
			Validate(validateOptionalDate),
	}

	if len(columns) > 0 {
		opts := make([]huh.Option[string], len(columns))
		for i, c := range columns {
			opts[i] = huh.NewOption(c.Name, c.Key)
		}
		fields = append(fields, huh.NewSelect[string]().
			Key("column").
			Title("Coluna").
			Options(opts...).
			Value(&f.fb.column))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithShowHelp(true).
		WithWidth(60)
}

func priorityOptions() []huh.Option[domain.Priority] {
	ps := domain.Priorities()
	opts := make([]huh.Option[domain.Priority], len(ps))
	for i, p := range ps {
		opts[i] = huh.NewOption(p.String(), p)
	}
	return opts
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return errors.New("use o formato YYYY-MM-DD")
	}
	return nil
}

// Init initializes the form
func (f *TaskForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update handles messages
func (f *TaskForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, closeOverlay
	}

	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}

	switch f.form.State {
	case huh.StateCompleted:
		return f, f.submit()
	case huh.StateAborted:
		return f, closeOverlay
	}
	return f, cmd
}

// submit turns the bindings into a TaskSubmittedMsg. Title rules are left to
// the board so the form and the other surfaces report the same error.
func (f *TaskForm) submit() tea.Cmd {
	var due *domain.Date
	if s := strings.TrimSpace(f.fb.dueDate); s != "" {
		if d, err := domain.ParseDate(s); err == nil {
			due = &d
		}
	}

	msg := TaskSubmittedMsg{Edit: f.edit, TaskID: f.taskID}
	if f.edit {
		title, desc, assignee, priority := f.fb.title, f.fb.description, f.fb.assignee, f.fb.priority
		msg.Column = f.origin
		msg.Patch = domain.TaskPatch{
			Title:        &title,
			Description:  &desc,
			Priority:     &priority,
			Assignee:     &assignee,
			DueDate:      due,
			ClearDueDate: due == nil,
		}
	} else {
		msg.Column = f.fb.column
		msg.Fields = domain.TaskFields{
			Title:       f.fb.title,
			Description: f.fb.description,
			Priority:    f.fb.priority,
			Assignee:    f.fb.assignee,
			DueDate:     due,
		}
	}
	return func() tea.Msg { return msg }
}

// View renders the form
func (f *TaskForm) View() string {
	return f.form.View()
}

// Title returns the form title
func (f *TaskForm) Title() string {
	if f.edit {
		return "Editar tarefa"
	}
	return "Nova tarefa"
}

// Size returns the form dimensions
func (f *TaskForm) Size() (width, height int) {
	return 66, 24
}
