// Package tasks implements the task repository: every operation loads the
// board, applies one mutation and persists the result.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/store"
)

// Decoder parses an external board document
type Decoder interface {
	Decode(data []byte) (*store.Decoded, error)
}

// Service runs board mutations against a store
type Service struct {
	store   store.Store
	decoder Decoder
	logger  *slog.Logger
	now     func() time.Time

	// mu serializes load-mutate-save cycles within the process
	mu sync.Mutex
}

// NewService creates a new task service with dependency injection
func NewService(st store.Store, decoder Decoder, logger *slog.Logger) *Service {
	return &Service{
		store:   st,
		decoder: decoder,
		logger:  logger,
		now:     time.Now,
	}
}

// Board returns the current board
func (s *Service) Board(ctx context.Context) (*domain.Board, error) {
	return s.store.Load(ctx)
}

// Stats returns progress counts for the current board
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	b, err := s.store.Load(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return b.Stats(), nil
}

// Locate finds a task by id in any column
func (s *Service) Locate(ctx context.Context, id int) (domain.Task, error) {
	b, err := s.store.Load(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	t, ok := b.FindTask(id)
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: task %d", domain.ErrNotFound, id)
	}
	return t, nil
}

// Create appends a new task to the column
func (s *Service) Create(ctx context.Context, column string, f domain.TaskFields) (domain.Task, error) {
	var created domain.Task
	err := s.mutate(ctx, "create", func(b *domain.Board) (bool, error) {
		t, err := b.CreateTask(column, f, s.now())
		if err != nil {
			return false, err
		}
		created = t
		return true, nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	s.logger.Info("task created", "id", created.ID, "column", column, "title", created.Title)
	return created, nil
}

// Move takes the task out of from and appends it to to
func (s *Service) Move(ctx context.Context, id int, from, to string) (domain.Task, error) {
	var moved domain.Task
	err := s.mutate(ctx, "move", func(b *domain.Board) (bool, error) {
		t, err := b.MoveTask(id, from, to)
		if err != nil {
			return false, err
		}
		moved = t
		return true, nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	s.logger.Info("task moved", "id", id, "from", from, "to", to)
	return moved, nil
}

// MoveAdjacent moves the task one column left (delta < 0) or right
func (s *Service) MoveAdjacent(ctx context.Context, id int, from string, delta int) (domain.Task, error) {
	var moved domain.Task
	var to string
	err := s.mutate(ctx, "move", func(b *domain.Board) (bool, error) {
		var err error
		to, err = b.Neighbor(from, delta)
		if err != nil {
			return false, err
		}
		moved, err = b.MoveTask(id, from, to)
		if err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	s.logger.Info("task moved", "id", id, "from", from, "to", to)
	return moved, nil
}

// Edit applies a partial update to the task in column
func (s *Service) Edit(ctx context.Context, id int, column string, p domain.TaskPatch) (domain.Task, error) {
	var edited domain.Task
	err := s.mutate(ctx, "edit", func(b *domain.Board) (bool, error) {
		t, err := b.EditTask(id, column, p)
		if err != nil {
			return false, err
		}
		edited = t
		return true, nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	s.logger.Info("task edited", "id", id, "column", column)
	return edited, nil
}

// Delete removes the task from column. Nothing is written when the task
// is not there.
func (s *Service) Delete(ctx context.Context, id int, column string) (bool, error) {
	var removed bool
	err := s.mutate(ctx, "delete", func(b *domain.Board) (bool, error) {
		var err error
		removed, err = b.DeleteTask(id, column)
		return removed, err
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.Info("task deleted", "id", id, "column", column)
	} else {
		s.logger.Debug("delete skipped, task not in column", "id", id, "column", column)
	}
	return removed, nil
}

// Reset discards every task
func (s *Service) Reset(ctx context.Context) (*domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Reset(ctx)
}

// Export returns the persisted document verbatim
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	return s.store.Export(ctx)
}

// Import replaces the board with a decoded document, migrating older
// schemas. Unlike Load, decoding failures are returned.
func (s *Service) Import(ctx context.Context, data []byte) (*store.Decoded, error) {
	decoded, err := s.decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to import board: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, decoded.Board); err != nil {
		return nil, err
	}
	s.logger.Info("board imported",
		"from_version", decoded.FromVersion,
		"tasks", decoded.Board.TaskCount(),
		"repairs", len(decoded.Repairs))
	return decoded, nil
}

// mutate loads the board, applies fn and saves only when fn reports a change
func (s *Service) mutate(ctx context.Context, op string, fn func(*domain.Board) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	changed, err := fn(b)
	if err != nil {
		s.logger.Debug("task operation rejected", "op", op, "error", err)
		return err
	}
	if !changed {
		return nil
	}
	if err := s.store.Save(ctx, b); err != nil {
		s.logger.Error("failed to save board", "op", op, "error", err)
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}
