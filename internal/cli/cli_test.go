package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/kanban/internal/config"
	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/store"
)

type testEnv struct {
	dir        string
	configPath string
	dataPath   string
	confirm    func(string) (bool, error)
	tuiRuns    int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, config.FileName),
		dataPath:   filepath.Join(dir, "kanban_data.json"),
		confirm:    func(string) (bool, error) { return false, errors.New("unexpected prompt") },
	}

	cfg := config.DefaultConfig()
	cfg.Storage.Path = env.dataPath
	cfg.Log.Level = "error"
	require.NoError(t, config.SaveConfig(cfg, env.configPath))
	return env
}

// run executes the command line and returns stdout
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	r := &runner{
		confirm: func(title string) (bool, error) { return e.confirm(title) },
		runTUI: func(*Dependencies) error {
			e.tuiRuns++
			return nil
		},
	}
	cmd := newRootCommand(r)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err)
	return out
}

func (e *testEnv) board(t *testing.T) *domain.Board {
	t.Helper()
	data, err := os.ReadFile(e.dataPath)
	require.NoError(t, err)
	codec, err := store.NewCodec(domain.DefaultColumns())
	require.NoError(t, err)
	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	return decoded.Board
}

func TestRoot_RunsTUI(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t)
	assert.Equal(t, 1, env.tuiRuns)
}

func TestAdd(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "add", "Revisar", "rotas", "--priority", "alta", "--assignee", "Ana", "--due", "2025-12-01")
	assert.Equal(t, "Tarefa #1 criada em Backlog\n", out)

	out = env.mustRun(t, "add", "Outra", "--column", domain.ColumnDone)
	assert.Equal(t, "Tarefa #2 criada em Concluído\n", out)

	b := env.board(t)
	task, ok := b.FindTask(1)
	require.True(t, ok)
	assert.Equal(t, "Revisar rotas", task.Title)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, "Ana", task.Assignee)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2025-12-01", task.DueDate.String())
	assert.Equal(t, 2, b.LastID)
}

func TestAdd_UsesStoredColumnsAfterConfigChange(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "list")

	cfg, err := config.LoadFile(env.configPath)
	require.NoError(t, err)
	cfg.Board.Columns = []config.ColumnConfig{{Key: "inbox", Name: "Entrada"}, {Key: "closed", Name: "Fechado"}}
	require.NoError(t, config.SaveConfig(cfg, env.configPath))

	out := env.mustRun(t, "add", "Depois da troca")
	assert.Equal(t, "Tarefa #1 criada em Backlog\n", out)

	out = env.mustRun(t, "move", "1", domain.ColumnReview)
	assert.Equal(t, "Tarefa #1 movida para Revisão\n", out)

	task, ok := env.board(t).FindTask(1)
	require.True(t, ok)
	assert.Equal(t, domain.ColumnReview, task.Column)
}

func TestAdd_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"blank title", []string{"add", "  "}, domain.ErrEmptyTitle},
		{"bad priority", []string{"add", "x", "--priority", "urgente"}, domain.ErrInvalidPriority},
		{"bad date", []string{"add", "x", "--due", "amanhã"}, domain.ErrInvalidDate},
		{"unknown column", []string{"add", "x", "--column", "archive"}, domain.ErrUnknownColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.run(t, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "list")
	assert.Contains(t, out, "Nenhuma tarefa")

	env.mustRun(t, "add", "Primeira")
	env.mustRun(t, "add", "Segunda", "--column", domain.ColumnReview, "--assignee", "Bia")

	out = env.mustRun(t, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TÍTULO")
	assert.Contains(t, lines[1], "Primeira")
	assert.Contains(t, lines[2], "Revisão")
	assert.Contains(t, lines[2], "Bia")

	out = env.mustRun(t, "list", "--column", domain.ColumnReview)
	assert.NotContains(t, out, "Primeira")
	assert.Contains(t, out, "Segunda")

	_, err := env.run(t, "list", "--column", "archive")
	assert.ErrorIs(t, err, domain.ErrUnknownColumn)
}

func TestMove(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Mover")

	out := env.mustRun(t, "move", "1", domain.ColumnInProgress)
	assert.Equal(t, "Tarefa #1 movida para Em Progresso\n", out)

	task, ok := env.board(t).FindTask(1)
	require.True(t, ok)
	assert.Equal(t, domain.ColumnInProgress, task.Column)

	_, err := env.run(t, "move", "9", domain.ColumnDone)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.run(t, "move", "abc", domain.ColumnDone)
	assert.Error(t, err)
}

func TestEdit(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Antigo", "--assignee", "Ana", "--due", "2025-11-01")

	env.mustRun(t, "edit", "1", "--title", "Novo", "--clear-due")

	task, ok := env.board(t).FindTask(1)
	require.True(t, ok)
	assert.Equal(t, "Novo", task.Title)
	assert.Equal(t, "Ana", task.Assignee, "unset flags are kept")
	assert.Nil(t, task.DueDate)

	_, err := env.run(t, "edit", "1")
	assert.Error(t, err, "an edit without flags is refused")

	_, err = env.run(t, "edit", "1", "--title", "")
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Apagar")

	out := env.mustRun(t, "delete", "1")
	assert.Equal(t, "Tarefa #1 excluída\n", out)

	b := env.board(t)
	assert.Equal(t, 0, b.TaskCount())
	assert.Equal(t, 1, b.LastID)

	_, err := env.run(t, "delete", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Exportar")

	stored, err := os.ReadFile(env.dataPath)
	require.NoError(t, err)

	out := env.mustRun(t, "export")
	assert.Equal(t, string(stored), out)

	target := filepath.Join(env.dir, "export.json")
	env.mustRun(t, "export", "-o", target)
	exported, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, stored, exported)
}

func TestReset(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		confirm   func(string) (bool, error)
		wantErr   bool
		wantTasks int
	}{
		{
			name:      "yes flag skips the prompt",
			args:      []string{"reset", "--yes"},
			wantTasks: 0,
		},
		{
			name:      "confirmed",
			args:      []string{"reset"},
			confirm:   func(string) (bool, error) { return true, nil },
			wantTasks: 0,
		},
		{
			name:      "declined",
			args:      []string{"reset"},
			confirm:   func(string) (bool, error) { return false, nil },
			wantTasks: 1,
		},
		{
			name:      "not a terminal",
			args:      []string{"reset"},
			confirm:   func(string) (bool, error) { return false, errNotInteractive },
			wantErr:   true,
			wantTasks: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.mustRun(t, "add", "Manter?")
			if tt.confirm != nil {
				env.confirm = tt.confirm
			}

			_, err := env.run(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			b := env.board(t)
			assert.Equal(t, tt.wantTasks, b.TaskCount())
			if tt.wantTasks == 0 {
				assert.Equal(t, 0, b.LastID)
			}
		})
	}
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "a")
	env.mustRun(t, "add", "b", "--column", domain.ColumnDone)

	out := env.mustRun(t, "stats")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "50.0%")
}

func TestImport(t *testing.T) {
	env := newTestEnv(t)
	legacy := filepath.Join(env.dir, "legacy.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{"columns": [{"id": "DONE", "title": "Feito"}], "cards": [{"id": "u1", "title": "Antigo", "column_id": "DONE"}]}`), 0644))

	out := env.mustRun(t, "import", legacy)
	assert.Contains(t, out, "1 tarefas importadas")
	assert.Contains(t, out, "Migrado")

	task, ok := env.board(t).FindTask(1)
	require.True(t, ok)
	assert.Equal(t, domain.ColumnDone, task.Column)

	_, err := env.run(t, "import", filepath.Join(env.dir, "missing.json"))
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	r := &runner{}

	cmd := newRootCommand(r)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, cmd.Execute())

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Board.Title, cfg.Board.Title)

	cmd = newRootCommand(r)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "config", "init"})
	assert.Error(t, cmd.Execute(), "existing file needs --force")

	cmd = newRootCommand(r)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "config", "init", "--force"})
	assert.NoError(t, cmd.Execute())
}

func TestLogLevelFlag(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "--log-level", "loud", "list")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "curto", truncate("curto", 10))
	assert.Equal(t, "ação...", truncate("ação longa demais", 7))
}
