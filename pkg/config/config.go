package config

import (
	"time"
)

// Config represents the complete tether configuration
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// BackendConfig describes how the backend server is found and launched
type BackendConfig struct {
	Interpreter      string        `mapstructure:"interpreter"`  // Prefixed to the entry, e.g. "node". Empty runs the entry directly
	Entry            string        `mapstructure:"entry"`        // Relative to ResourceDir unless absolute
	ResourceDir      string        `mapstructure:"resource_dir"` // Empty means <executable dir>/resources
	Args             []string      `mapstructure:"args"`
	Workdir          string        `mapstructure:"workdir"`
	Env              []string      `mapstructure:"env"`                // KEY=VALUE pairs appended to the host environment
	PortScanInterval time.Duration `mapstructure:"port_scan_interval"` // 0 disables port discovery
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level           LogLevelConfig `mapstructure:"level"`
	TimestampFormat string         `mapstructure:"timestamp_format"`
	Color           bool           `mapstructure:"color"`
	File            LogFileConfig  `mapstructure:"file"`
}

// LogLevelConfig contains log levels for each component
type LogLevelConfig struct {
	Global  string `mapstructure:"global"`
	Host    string `mapstructure:"host"`
	Backend string `mapstructure:"backend"`
}

// LogFileConfig contains file logging settings
type LogFileConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// UIConfig contains host window preferences
type UIConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	MaxLogLines int  `mapstructure:"max_log_lines"`
	WrapWidth   int  `mapstructure:"wrap_width"` // 0 wraps at the viewport width
}
