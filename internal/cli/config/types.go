// Package config provides configuration management for the Quarterdeck CLI.
// Values are loaded with koanf using the precedence
// flags > environment > config file > defaults.
package config

// UIConfig holds configuration for the web console server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	PageSize      int    `koanf:"page_size"`
	SessionSecret string `koanf:"session_secret"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:     8780,
		AutoOpen: true,
		Watch:    true,
		PageSize: DefaultPageSize,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = 8780
	}
	if ui.PageSize == 0 {
		ui.PageSize = DefaultPageSize
	}
	return ui
}

// Config holds all CLI configuration options.
type Config struct {
	// DataPath is the local SQLite database backing the console in
	// development.
	DataPath string `koanf:"data_path"`
	// Demo switches the console to the fixture record provider instead of
	// the SQLite store.
	Demo bool `koanf:"demo"`
	// FixturesDir overrides the embedded demo fixtures with JSON files.
	FixturesDir string `koanf:"fixtures_dir"`

	Verbose      bool      `koanf:"verbose"`
	OutputFormat string    `koanf:"output"`
	UI           *UIConfig `koanf:"ui"`
}

// Default configuration values.
const (
	DefaultDataPath = ".quarterdeck/console.db"
	DefaultPageSize = 10
	DefaultOutput   = "table"
)
