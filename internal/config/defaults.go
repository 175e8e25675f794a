// Package config handles tabboard's user configuration.
package config

const (
	// AppName names the config directory under the user config root.
	AppName = "tabboard"

	// DefaultBoardFile is the board path used when none is given.
	DefaultBoardFile = "kanban"
	// DefaultColumnsOffset is the number of columns the TUI shows at once.
	DefaultColumnsOffset = 3
	// DefaultLogLevel is the level for CLI and TUI logs.
	DefaultLogLevel = "warn"

	// ConfigFileName is the YAML config file name.
	ConfigFileName = "config.yml"
	// TOMLConfigFileName is the alternative TOML config file name.
	TOMLConfigFileName = "config.toml"
	// LogFileName is the TUI log file name inside the config directory.
	LogFileName = "tabboard.log"
	// ActivityFileName is the activity journal name inside the config directory.
	ActivityFileName = "activity.jsonl"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2

	minColumnsOffset = 1
	maxColumnsOffset = 10
)

// Environment variables overriding config values.
const (
	EnvConfig   = "TABBOARD_CONFIG"
	EnvFile     = "TABBOARD_FILE"
	EnvLogLevel = "TABBOARD_LOG_LEVEL"
)

func boolPtr(v bool) *bool { return &v }
