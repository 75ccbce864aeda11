// Package store persists the board as a single canonical JSON document,
// either in a plain file or in a SQLite database.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riordanpawley/kanban/internal/config"
	"github.com/riordanpawley/kanban/internal/domain"
)

// Store loads and saves the whole board.
//
// Load never reports a damaged document: it falls back to a fresh default
// board and persists it. Save, Reset and Export propagate I/O failures.
type Store interface {
	Load(ctx context.Context) (*domain.Board, error)
	Save(ctx context.Context, b *domain.Board) error
	Reset(ctx context.Context) (*domain.Board, error)
	Export(ctx context.Context) ([]byte, error)
	Close() error
}

// Open returns the store selected by cfg.Storage.Backend
func Open(cfg *config.Config, logger *slog.Logger) (Store, error) {
	codec, err := NewCodec(cfg.Board.ColumnDefs())
	if err != nil {
		return nil, err
	}

	switch cfg.Storage.Backend {
	case config.BackendJSON, "":
		return NewFileStore(cfg.Storage.Path, codec, logger), nil
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.Storage.Path, codec, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
