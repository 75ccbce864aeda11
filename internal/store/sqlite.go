package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/riordanpawley/kanban/internal/domain"
)

// SQLiteStore keeps the board document in a single-row SQLite table
type SQLiteStore struct {
	db     *sqlx.DB
	path   string
	codec  *Codec
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string, codec *Codec, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, path: dbPath, codec: codec, logger: logger}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range sqliteMigrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		s.logger.Debug("applied sqlite migration", "version", m.version)
	}

	return nil
}

// Load reads the stored document, replacing a missing or damaged one with a default board
func (s *SQLiteStore) Load(ctx context.Context) (*domain.Board, error) {
	data, err := s.document(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Info("board not found, creating default", "path", s.path)
		return s.initialize(ctx)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("board unreadable, using default", "path", s.path, "error", err)
		return s.initialize(ctx)
	}

	decoded, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Warn("board document corrupt, replacing with default", "path", s.path, "error", err)
		return s.initialize(ctx)
	}
	if decoded.Migrated() {
		s.logger.Info("migrating board document", "path", s.path, "from_version", decoded.FromVersion)
		if err := s.Save(ctx, decoded.Board); err != nil {
			return nil, err
		}
	}
	for _, r := range decoded.Repairs {
		s.logger.Warn("repaired board", "path", s.path, "task_id", r.TaskID, "reason", r.Reason)
	}
	return decoded.Board, nil
}

// Save replaces the stored document in one statement
func (s *SQLiteStore) Save(ctx context.Context, b *domain.Board) error {
	data, err := s.codec.Encode(b)
	if err != nil {
		return &domain.StoreError{Op: "save", Path: s.path, Err: err}
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO board (id, document, updated_at) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return &domain.StoreError{Op: "save", Path: s.path, Err: err}
	}
	s.logger.Debug("saved board", "path", s.path, "bytes", len(data))
	return nil
}

// Reset overwrites the document with an empty default board
func (s *SQLiteStore) Reset(ctx context.Context) (*domain.Board, error) {
	b := s.codec.DefaultBoard()
	if err := s.Save(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("board reset", "path", s.path)
	return b, nil
}

// Export returns the stored document verbatim
func (s *SQLiteStore) Export(ctx context.Context) ([]byte, error) {
	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}
	data, err := s.document(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "export", Path: s.path, Err: err}
	}
	return data, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) document(ctx context.Context) ([]byte, error) {
	var doc string
	if err := s.db.GetContext(ctx, &doc, "SELECT document FROM board WHERE id = 1"); err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

func (s *SQLiteStore) initialize(ctx context.Context) (*domain.Board, error) {
	b := s.codec.DefaultBoard()
	if err := s.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
