package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/riordanpawley/kanban/internal/domain"
)

const (
	corruptSuffix = ".corrupt"
	legacySuffix  = ".legacy"
	filePerm      = 0o644
)

// FileStore keeps the board in a single JSON file
type FileStore struct {
	path   string
	codec  *Codec
	logger *slog.Logger
}

// NewFileStore creates a store for the file at path. The file is created
// on first load.
func NewFileStore(path string, codec *Codec, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, codec: codec, logger: logger}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the board, replacing a missing or damaged file with a default board
func (s *FileStore) Load(ctx context.Context) (*domain.Board, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("board file not found, creating default", "path", s.path)
		return s.initialize(ctx)
	}
	if err != nil {
		s.logger.Warn("board file unreadable, using default", "path", s.path, "error", err)
		return s.initialize(ctx)
	}

	decoded, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Warn("board file corrupt, replacing with default", "path", s.path, "error", err)
		s.backup(data, corruptSuffix)
		return s.initialize(ctx)
	}

	if decoded.Migrated() {
		s.logger.Info("migrating board file",
			"path", s.path,
			"from_version", decoded.FromVersion,
			"tasks", decoded.Board.TaskCount())
		s.backup(data, legacySuffix)
		if err := s.Save(ctx, decoded.Board); err != nil {
			return nil, err
		}
	}
	for _, r := range decoded.Repairs {
		s.logger.Warn("repaired board", "path", s.path, "task_id", r.TaskID, "reason", r.Reason)
	}

	s.logger.Debug("loaded board", "path", s.path, "tasks", decoded.Board.TaskCount())
	return decoded.Board, nil
}

// Save atomically replaces the file with the encoded board
func (s *FileStore) Save(ctx context.Context, b *domain.Board) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.codec.Encode(b)
	if err != nil {
		return &domain.StoreError{Op: "save", Path: s.path, Err: err}
	}
	if err := s.write(s.path, data); err != nil {
		return &domain.StoreError{Op: "save", Path: s.path, Err: err}
	}
	s.logger.Debug("saved board", "path", s.path, "bytes", len(data))
	return nil
}

// Reset overwrites the file with an empty default board
func (s *FileStore) Reset(ctx context.Context) (*domain.Board, error) {
	b := s.codec.DefaultBoard()
	if err := s.Save(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("board reset", "path", s.path)
	return b, nil
}

// Export returns the file contents verbatim
func (s *FileStore) Export(ctx context.Context) ([]byte, error) {
	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &domain.StoreError{Op: "export", Path: s.path, Err: err}
	}
	return data, nil
}

// Close is a no-op for files
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) initialize(ctx context.Context) (*domain.Board, error) {
	b := s.codec.DefaultBoard()
	if err := s.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *FileStore) write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return renameio.WriteFile(path, data, filePerm)
}

// backup keeps a copy of a file that is about to be overwritten
func (s *FileStore) backup(data []byte, suffix string) {
	path := s.path + suffix
	if err := s.write(path, data); err != nil {
		s.logger.Error("failed to back up board file", "path", path, "error", err)
		return
	}
	s.logger.Info("backed up board file", "path", path)
}
