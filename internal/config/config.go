package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/tabboard/internal/logging"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the user configuration.
type Config struct {
	Version int         `yaml:"version" toml:"version" json:"version"`
	Board   BoardConfig `yaml:"board" toml:"board" json:"board"`
	TUI     TUIConfig   `yaml:"tui" toml:"tui" json:"tui"`
	Log     LogConfig   `yaml:"log" toml:"log" json:"log"`

	// path is the file the config was loaded from (not serialized).
	path string `yaml:"-" toml:"-"`
}

// BoardConfig selects the board file.
type BoardConfig struct {
	File string `yaml:"file" toml:"file" json:"file"`
}

// TUIConfig holds interactive display settings.
type TUIConfig struct {
	ColumnsOffset int   `yaml:"columns_offset" toml:"columns_offset" json:"columns_offset"`
	Markdown      *bool `yaml:"markdown,omitempty" toml:"markdown,omitempty" json:"markdown,omitempty"`
	Clipboard     *bool `yaml:"clipboard,omitempty" toml:"clipboard,omitempty" json:"clipboard,omitempty"`
}

// LogConfig holds logging settings. An empty File means the default log
// file in the config directory.
type LogConfig struct {
	Level string `yaml:"level" toml:"level" json:"level"`
	File  string `yaml:"file,omitempty" toml:"file,omitempty" json:"file,omitempty"`
}

// NewDefault creates a Config with default values, bound to path.
func NewDefault(path string) *Config {
	return &Config{
		Version: CurrentVersion,
		Board:   BoardConfig{File: DefaultBoardFile},
		TUI: TUIConfig{
			ColumnsOffset: DefaultColumnsOffset,
			Markdown:      boolPtr(true),
			Clipboard:     boolPtr(true),
		},
		Log:  LogConfig{Level: DefaultLogLevel},
		path: path,
	}
}

// DefaultDir returns ~/.config/tabboard (or the platform equivalent).
func DefaultDir() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(root, AppName), nil
}

// DefaultPath returns the config file to use when none is given: config.toml
// if it exists in the config directory, config.yml otherwise.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	tomlPath := filepath.Join(dir, TOMLConfigFileName)
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory holding the config file.
func (c *Config) Dir() string {
	return filepath.Dir(c.path)
}

// LogPath returns the TUI log file path.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Dir(), LogFileName)
}

// ActivityPath returns the activity journal path.
func (c *Config) ActivityPath() string {
	return filepath.Join(c.Dir(), ActivityFileName)
}

// BoardFile returns the board file path.
func (c *Config) BoardFile() string {
	if c.Board.File == "" {
		return DefaultBoardFile
	}
	return c.Board.File
}

// ColumnsOffset returns the number of visible TUI columns.
func (c *Config) ColumnsOffset() int {
	if c.TUI.ColumnsOffset == 0 {
		return DefaultColumnsOffset
	}
	return c.TUI.ColumnsOffset
}

// Markdown reports whether card descriptions are rendered as markdown.
func (c *Config) Markdown() bool {
	return c.TUI.Markdown == nil || *c.TUI.Markdown
}

// Clipboard reports whether the TUI may write to the system clipboard.
func (c *Config) Clipboard() bool {
	return c.TUI.Clipboard == nil || *c.TUI.Clipboard
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if strings.TrimSpace(c.Board.File) == "" {
		return fmt.Errorf("%w: board.file is required", ErrInvalid)
	}
	if c.TUI.ColumnsOffset < minColumnsOffset || c.TUI.ColumnsOffset > maxColumnsOffset {
		return fmt.Errorf("%w: tui.columns_offset must be between %d and %d",
			ErrInvalid, minColumnsOffset, maxColumnsOffset)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	return nil
}

// ApplyEnv overrides values from the environment, read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvFile); v != "" {
		c.Board.File = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Load reads, migrates and validates the config at path. A missing file
// yields the defaults. Environment overrides are not applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(path), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Config{path: path}
	if err := decode(path, data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := migrate(&cfg); err != nil {
		return nil, err
	}
	if cfg.Board.File == "" {
		cfg.Board.File = DefaultBoardFile
	}
	if cfg.TUI.ColumnsOffset == 0 {
		cfg.TUI.ColumnsOffset = DefaultColumnsOffset
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to its file in the format its extension selects.
func (c *Config) Save() error {
	data, err := encode(c.path, c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(c.Dir(), dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(c.path, data, fileMode)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func decode(path string, data []byte, cfg *Config) error {
	if isTOML(path) {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func encode(path string, cfg *Config) ([]byte, error) {
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(cfg)
}
