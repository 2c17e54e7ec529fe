package config

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// validate validates the configuration
func validate(cfg *Config) error {
	if err := validateBackend(cfg.Backend); err != nil {
		return err
	}

	if err := validateLogging(cfg.Logging); err != nil {
		return err
	}

	if err := validateUI(cfg.UI); err != nil {
		return err
	}

	return nil
}

// validateBackend validates the backend launch settings
func validateBackend(b BackendConfig) error {
	if strings.TrimSpace(b.Entry) == "" {
		return errors.New("backend.entry must not be empty")
	}
	if b.PortScanInterval < 0 {
		return errors.Newf("invalid backend.port_scan_interval %s: must not be negative", b.PortScanInterval)
	}
	for _, kv := range b.Env {
		key, _, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return errors.Newf("invalid backend.env entry %q: must be KEY=VALUE", kv)
		}
	}
	return nil
}

// validateLogging validates log levels and the log file
func validateLogging(logging LoggingConfig) error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	checkLevel := func(level, component string) error {
		if level == "" {
			return nil // Empty is valid (inherits)
		}
		if !validLevels[strings.ToLower(level)] {
			return errors.Newf("invalid log level '%s' for %s: must be one of: trace, debug, info, warn, error, fatal", level, component)
		}
		return nil
	}

	if err := checkLevel(logging.Level.Global, "global"); err != nil {
		return err
	}
	if err := checkLevel(logging.Level.Host, "host"); err != nil {
		return err
	}
	if err := checkLevel(logging.Level.Backend, "backend"); err != nil {
		return err
	}

	if logging.File.Enabled && strings.TrimSpace(logging.File.Path) == "" {
		return errors.New("logging.file.path must be set when file logging is enabled")
	}

	return nil
}

// validateUI validates UI configuration
func validateUI(ui UIConfig) error {
	if ui.MaxLogLines < 1 {
		return errors.New("ui.max_log_lines must be at least 1")
	}
	if ui.WrapWidth < 0 {
		return errors.New("ui.wrap_width must not be negative")
	}
	return nil
}
