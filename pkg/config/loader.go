package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Load loads configuration from file with the following priority:
// 1. Explicit path via configPath parameter
// 2. ./tether.yaml (current directory)
// 3. ./config/tether.yaml
// 4. ~/.tether/tether.yaml (user home)
// 5. /etc/tether/tether.yaml (system-wide)
// Falls back to defaults if no config file is found
func Load(configPath string, logger zerolog.Logger) (*Config, error) {
	v := viper.New()

	v.SetConfigName("tether")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tether"))
		}
		v.AddConfigPath("/etc/tether")
	}

	// Environment variables use the TETHER_ prefix and underscore separators,
	// e.g. TETHER_BACKEND_INTERPRETER=bun, TETHER_LOGGING_LEVEL_BACKEND=debug
	v.SetEnvPrefix("TETHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := DefaultConfig()
	// Unmarshal only sees keys viper knows about, so register every default
	// to let environment overrides apply without a config file.
	setDefaults(v, cfg)

	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading config file")
		}
		logger.Debug().
			Str("searchPaths", "., ./config, ~/.tether, /etc/tether").
			Msg("No config file found in search paths, using defaults")
	} else {
		configFileUsed = v.ConfigFileUsed()
		logger.Debug().Str("configFile", configFileUsed).Msg("Config file loaded")
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	applyLogLevelInheritance(cfg)

	logger.Info().
		Bool("configFileFound", configFileUsed != "").
		Str("configFile", configFileUsed).
		Interface("backend", cfg.Backend).
		Interface("logging", cfg.Logging).
		Interface("ui", cfg.UI).
		Msg("Complete effective configuration")

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("backend.interpreter", cfg.Backend.Interpreter)
	v.SetDefault("backend.entry", cfg.Backend.Entry)
	v.SetDefault("backend.resource_dir", cfg.Backend.ResourceDir)
	v.SetDefault("backend.args", cfg.Backend.Args)
	v.SetDefault("backend.workdir", cfg.Backend.Workdir)
	v.SetDefault("backend.env", cfg.Backend.Env)
	v.SetDefault("backend.port_scan_interval", cfg.Backend.PortScanInterval)

	v.SetDefault("logging.level.global", cfg.Logging.Level.Global)
	v.SetDefault("logging.level.host", cfg.Logging.Level.Host)
	v.SetDefault("logging.level.backend", cfg.Logging.Level.Backend)
	v.SetDefault("logging.timestamp_format", cfg.Logging.TimestampFormat)
	v.SetDefault("logging.color", cfg.Logging.Color)
	v.SetDefault("logging.file.enabled", cfg.Logging.File.Enabled)
	v.SetDefault("logging.file.path", cfg.Logging.File.Path)

	v.SetDefault("ui.enabled", cfg.UI.Enabled)
	v.SetDefault("ui.max_log_lines", cfg.UI.MaxLogLines)
	v.SetDefault("ui.wrap_width", cfg.UI.WrapWidth)
}

// applyLogLevelInheritance fills empty component levels from the global level
func applyLogLevelInheritance(cfg *Config) {
	if cfg.Logging.Level.Host == "" {
		cfg.Logging.Level.Host = cfg.Logging.Level.Global
	}
	if cfg.Logging.Level.Backend == "" {
		cfg.Logging.Level.Backend = cfg.Logging.Level.Global
	}
}
