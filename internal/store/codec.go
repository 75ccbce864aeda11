package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/riordanpawley/kanban/internal/domain"
)

//go:embed schema/board.schema.json
var boardSchema []byte

const boardSchemaURL = "board.schema.json"

// ErrCorrupt marks a document that cannot be turned into a board
var ErrCorrupt = errors.New("corrupt board document")

// SchemaError is a single JSON schema violation
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("schema: %s", e.Message)
	}
	return fmt.Sprintf("schema: %s: %s", e.Path, e.Message)
}

// Decoded is the result of decoding a stored document
type Decoded struct {
	Board       *domain.Board
	FromVersion int
	Repairs     []domain.Repair
}

// Migrated reports whether the document was in an older schema
func (d *Decoded) Migrated() bool {
	return d.FromVersion < CurrentVersion
}

// Codec converts between boards and their canonical JSON document
type Codec struct {
	schema  *jsonschema.Schema
	columns []domain.ColumnDef
	now     func() time.Time
}

// NewCodec compiles the embedded board schema. columns are used for new
// boards and as the target of legacy migrations.
func NewCodec(columns []domain.ColumnDef) (*Codec, error) {
	if len(columns) == 0 {
		columns = domain.DefaultColumns()
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(boardSchemaURL, bytes.NewReader(boardSchema)); err != nil {
		return nil, fmt.Errorf("add board schema: %w", err)
	}
	schema, err := compiler.Compile(boardSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile board schema: %w", err)
	}
	return &Codec{schema: schema, columns: columns, now: time.Now}, nil
}

// DefaultBoard returns an empty board with the configured columns
func (c *Codec) DefaultBoard() *domain.Board {
	return domain.NewBoard(c.columns)
}

// Encode renders b with two-space indentation and raw non-ASCII text
func (c *Codec) Encode(b *domain.Board) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses data, migrating older schemas and repairing the result
func (c *Codec) Decode(data []byte) (*Decoded, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is not an object", ErrCorrupt)
	}

	version := DetectVersion(doc)
	if version > CurrentVersion {
		return nil, fmt.Errorf("%w: version %d is newer than supported version %d", ErrCorrupt, version, CurrentVersion)
	}
	if version < CurrentVersion {
		migrated, err := ApplyMigrations(data, version, MigrateOptions{Columns: c.columns, Now: c.now()})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		data = migrated
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}

	if err := c.schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, schemaError(err))
	}

	var b domain.Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return &Decoded{Board: &b, FromVersion: version, Repairs: b.Normalize()}, nil
}

// schemaError reduces a validation error to its first leaf cause
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &SchemaError{Path: pointerToPath(ve.InstanceLocation), Message: ve.Message}
}

// pointerToPath turns "/columns/backlog/tasks/0" into "columns.backlog.tasks[0]"
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
