package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/riordanpawley/kanban/internal/domain"
)

// Document schema versions
const (
	// VersionUnknown is anything that is neither legacy nor canonical
	VersionUnknown = 0
	// VersionLegacy has a column list and a flat card list with UUID ids
	VersionLegacy = 1
	// CurrentVersion has fixed columns holding their tasks
	CurrentVersion = 2
)

// MigrateOptions carries what migrations need from the running store
type MigrateOptions struct {
	Columns []domain.ColumnDef
	Now     time.Time
}

// Migration converts a document from one schema version to the next
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data []byte, opts MigrateOptions) ([]byte, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	{
		FromVersion: VersionLegacy,
		ToVersion:   CurrentVersion,
		Migrate:     migrateLegacy,
	},
}

// DetectVersion infers the schema version of a decoded document
func DetectVersion(doc map[string]any) int {
	switch doc["columns"].(type) {
	case map[string]any:
		return CurrentVersion
	case []any:
		if _, ok := doc["cards"]; ok {
			return VersionLegacy
		}
	}
	return VersionUnknown
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data []byte, fromVersion int, opts MigrateOptions) ([]byte, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data, opts)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}

type legacyColumn struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type legacyCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ColumnID    string `json:"column_id"`
	Priority    string `json:"priority"`
	Color       string `json:"color"`
}

type legacyDocument struct {
	Columns []legacyColumn `json:"columns"`
	Cards   []legacyCard   `json:"cards"`
}

// legacyColumnKeys maps the stage ids of the dynamic-columns board
var legacyColumnKeys = map[string]string{
	"TODO":   domain.ColumnToDo,
	"DEV":    domain.ColumnInProgress,
	"TEST":   domain.ColumnReview,
	"REVIEW": domain.ColumnReview,
	"DONE":   domain.ColumnDone,
}

// migrateLegacy rebuilds a dynamic-columns document on the fixed columns.
// Cards get sequential ids in document order; colors are dropped.
func migrateLegacy(data []byte, opts MigrateOptions) ([]byte, error) {
	var doc legacyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse legacy document: %w", err)
	}

	columns := opts.Columns
	if len(columns) == 0 {
		columns = domain.DefaultColumns()
	}
	b := domain.NewBoard(columns)
	titles := make(map[string]string, len(doc.Columns))
	for _, c := range doc.Columns {
		titles[c.ID] = c.Title
	}
	created := domain.NewTimestamp(opts.Now)

	for _, card := range doc.Cards {
		key := legacyColumnKey(b, card.ColumnID, titles[card.ColumnID])
		col, _ := b.Column(key)

		priority, err := domain.ParsePriority(card.Priority)
		if err != nil {
			priority = domain.DefaultPriority
		}
		title := strings.TrimSpace(card.Title)
		if title == "" {
			title = card.ID
		}
		if title == "" {
			title = "untitled"
		}

		b.LastID++
		col.Tasks = append(col.Tasks, domain.Task{
			ID:          b.LastID,
			Title:       title,
			Description: card.Description,
			Priority:    priority,
			CreatedAt:   created,
			Column:      key,
		})
	}

	return json.Marshal(b)
}

// legacyColumnKey resolves a legacy column id to a key on b, falling back
// to the first column.
func legacyColumnKey(b *domain.Board, id, title string) string {
	if key, ok := legacyColumnKeys[strings.ToUpper(id)]; ok && b.ColumnIndex(key) >= 0 {
		return key
	}
	if key := strings.ToLower(id); b.ColumnIndex(key) >= 0 {
		return key
	}
	for _, c := range b.Columns {
		if title != "" && strings.EqualFold(c.Name, title) {
			return c.Key
		}
	}
	return b.Columns[0].Key
}
