package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/riordanpawley/kanban/internal/domain"
)

// FileName is the project-local config file
const FileName = ".kanban.json"

// EnvPrefix prefixes environment overrides, e.g. KANBAN_STORAGE_PATH
const EnvPrefix = "KANBAN"

// Storage backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config represents the full kanban configuration
type Config struct {
	Board   BoardConfig   `mapstructure:"board" json:"board"`
	Storage StorageConfig `mapstructure:"storage" json:"storage"`
	Log     LogConfig     `mapstructure:"log" json:"log"`
	Server  ServerConfig  `mapstructure:"server" json:"server"`
	UI      UIConfig      `mapstructure:"ui" json:"ui"`
}

// BoardConfig describes the board created on first run or reset
type BoardConfig struct {
	Title   string         `mapstructure:"title" json:"title"`
	Columns []ColumnConfig `mapstructure:"columns" json:"columns"`
}

// ColumnConfig is one workflow stage
type ColumnConfig struct {
	Key  string `mapstructure:"key" json:"key"`
	Name string `mapstructure:"name" json:"name"`
}

// StorageConfig selects where the board lives
type StorageConfig struct {
	Backend    string `mapstructure:"backend" json:"backend"`
	Path       string `mapstructure:"path" json:"path"`
	ExportName string `mapstructure:"export_name" json:"export_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
	File   string `mapstructure:"file" json:"file"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Addr               string `mapstructure:"addr" json:"addr"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" json:"shutdown_timeout_sec"`
}

// UIConfig contains terminal UI settings
type UIConfig struct {
	DescriptionPreview int  `mapstructure:"description_preview" json:"description_preview"`
	AltScreen          bool `mapstructure:"alt_screen" json:"alt_screen"`
}

// ColumnDefs converts the configured columns for the domain layer
func (b BoardConfig) ColumnDefs() []domain.ColumnDef {
	defs := make([]domain.ColumnDef, len(b.Columns))
	for i, c := range b.Columns {
		defs[i] = domain.ColumnDef{Key: c.Key, Name: c.Name}
	}
	return defs
}

// DefaultConfig returns a Config with all default values
func DefaultConfig() *Config {
	columns := make([]ColumnConfig, 0, 5)
	for _, d := range domain.DefaultColumns() {
		columns = append(columns, ColumnConfig{Key: d.Key, Name: d.Name})
	}

	return &Config{
		Board: BoardConfig{
			Title:   "Kanban Turis Tráfego",
			Columns: columns,
		},
		Storage: StorageConfig{
			Backend:    BackendJSON,
			Path:       "kanban_data.json",
			ExportName: "kanban_turis_trafego.json",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:               ":8080",
			ShutdownTimeoutSec: 5,
		},
		UI: UIConfig{
			DescriptionPreview: 80,
			AltScreen:          true,
		},
	}
}

// setDefaults registers scalar defaults so environment overrides resolve
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("board.title", cfg.Board.Title)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.export_name", cfg.Storage.ExportName)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.shutdown_timeout_sec", cfg.Server.ShutdownTimeoutSec)
	v.SetDefault("ui.description_preview", cfg.UI.DescriptionPreview)
	v.SetDefault("ui.alt_screen", cfg.UI.AltScreen)
}

// LoadConfig loads configuration from project path with priority:
// 1. KANBAN_* environment variables
// 2. .kanban.json in project root
// 3. Defaults
func LoadConfig(projectPath string) (*Config, error) {
	return LoadFile(filepath.Join(projectPath, FileName))
}

// LoadFile loads configuration from an explicit file. A missing file
// yields defaults plus environment overrides.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if v.IsSet("board.columns") {
		cfg.Board.Columns = nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports every problem with the configuration
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend))
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, errors.New("storage.path is required"))
	}

	if len(c.Board.Columns) == 0 {
		errs = append(errs, errors.New("board.columns must not be empty"))
	}
	seen := make(map[string]bool, len(c.Board.Columns))
	for i, col := range c.Board.Columns {
		switch {
		case col.Key == "":
			errs = append(errs, fmt.Errorf("board.columns[%d].key is required", i))
		case seen[col.Key]:
			errs = append(errs, fmt.Errorf("board.columns[%d].key %q is duplicated", i, col.Key))
		}
		seen[col.Key] = true
		if strings.TrimSpace(col.Name) == "" {
			errs = append(errs, fmt.Errorf("board.columns[%d].name is required", i))
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}

	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text, json or logfmt, got %q", c.Log.Format))
	}

	if c.UI.DescriptionPreview <= 0 {
		errs = append(errs, errors.New("ui.description_preview must be positive"))
	}

	return errors.Join(errs...)
}

// SaveConfig writes cfg as indented JSON
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
