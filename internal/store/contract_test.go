package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/kanban/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec(domain.DefaultColumns())
	require.NoError(t, err)
	codec.now = func() time.Time { return time.Date(2025, 10, 16, 12, 0, 0, 0, time.Local) }
	return codec
}

type storeFactory func(t *testing.T) Store

func backends() map[string]storeFactory {
	return map[string]storeFactory{
		"file": func(t *testing.T) Store {
			return NewFileStore(filepath.Join(t.TempDir(), "kanban_data.json"), testCodec(t), testLogger())
		},
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kanban.db"), testCodec(t), testLogger())
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, s.Close()) })
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Run("empty store loads default board", func(t *testing.T) {
				s := newStore(t)
				b, err := s.Load(context.Background())
				require.NoError(t, err)
				require.Len(t, b.Columns, 5)
				assert.Equal(t, 0, b.LastID)
				assert.Equal(t, 0, b.TaskCount())

				data, err := s.Export(context.Background())
				require.NoError(t, err)
				assert.Contains(t, string(data), `"last_id": 0`)
			})

			t.Run("save then load", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)
				b, err := s.Load(ctx)
				require.NoError(t, err)
				task, err := b.CreateTask(domain.ColumnReview, domain.TaskFields{Title: "Revisar orçamento", Priority: domain.PriorityHigh}, time.Now())
				require.NoError(t, err)
				require.NoError(t, s.Save(ctx, b))

				loaded, err := s.Load(ctx)
				require.NoError(t, err)
				got, ok := loaded.FindTask(task.ID)
				require.True(t, ok)
				assert.Equal(t, task, got)
				assert.Equal(t, 1, loaded.LastID)
			})

			t.Run("save then load round-trips bytes", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)
				b, err := s.Load(ctx)
				require.NoError(t, err)
				_, err = b.CreateTask(domain.ColumnToDo, domain.TaskFields{Title: "a <b> & c"}, time.Now())
				require.NoError(t, err)
				require.NoError(t, s.Save(ctx, b))

				before, err := s.Export(ctx)
				require.NoError(t, err)
				loaded, err := s.Load(ctx)
				require.NoError(t, err)
				require.NoError(t, s.Save(ctx, loaded))
				after, err := s.Export(ctx)
				require.NoError(t, err)
				assert.Equal(t, string(before), string(after))
			})

			t.Run("reset discards tasks", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)
				b, err := s.Load(ctx)
				require.NoError(t, err)
				_, err = b.CreateTask(domain.ColumnDone, domain.TaskFields{Title: "x"}, time.Now())
				require.NoError(t, err)
				require.NoError(t, s.Save(ctx, b))

				reset, err := s.Reset(ctx)
				require.NoError(t, err)
				assert.Equal(t, 0, reset.TaskCount())
				assert.Equal(t, 0, reset.LastID)

				loaded, err := s.Load(ctx)
				require.NoError(t, err)
				assert.Equal(t, 0, loaded.TaskCount())
			})

			t.Run("canceled context", func(t *testing.T) {
				s := newStore(t)
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				_, err := s.Load(ctx)
				assert.ErrorIs(t, err, context.Canceled)
			})
		})
	}
}
