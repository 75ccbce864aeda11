package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound         = errors.New("not found")
	ErrEmptyTitle       = errors.New("title is required")
	ErrUnknownColumn    = errors.New("unknown column")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidDate      = errors.New("invalid date")
	ErrNoAdjacentColumn = errors.New("no adjacent column")
)

// StoreError represents a failure reading or writing the persisted board
type StoreError struct {
	Op   string // Operation: "load", "save", "reset", "export"
	Path string // Optional: file or database path
	Err  error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("store %s [%s]: %v", e.Op, e.Path, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s failed", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err was caused by bad user input
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrInvalidPriority) ||
		errors.Is(err, ErrInvalidDate)
}
