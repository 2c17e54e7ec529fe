package config

import "time"

// DefaultConfig returns a Config matching the desktop shell: node running server/index.js
// from the resource directory
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Interpreter:      "node",
			Entry:            "server/index.js",
			ResourceDir:      "", // resolved next to the executable
			Args:             []string{},
			Workdir:          "",
			Env:              []string{},
			PortScanInterval: 2 * time.Second,
		},
		Logging: LoggingConfig{
			Level: LogLevelConfig{
				Global:  "info",
				Host:    "", // inherits global
				Backend: "", // inherits global
			},
			TimestampFormat: "15:04:05",
			Color:           true,
			File: LogFileConfig{
				Enabled: false,
				Path:    "tether.log",
			},
		},
		UI: UIConfig{
			Enabled:     true,
			MaxLogLines: 10000,
			WrapWidth:   0,
		},
	}
}
