package logs

import (
	"io"
	"os"
	"strings"

	"github.com/bjartek/tether/pkg/config"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// New creates the host logger. Output goes to out through a console writer and, when
// file logging is enabled, also to the configured file without colours. The returned
// closer releases the file and is never nil.
func New(cfg config.LoggingConfig, out io.Writer) (zerolog.Logger, io.Closer, error) {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: cfg.TimestampFormat,
		NoColor:    !cfg.Color,
	}

	var closer io.Closer = nopCloser{}
	var w io.Writer = consoleWriter

	if cfg.File.Enabled {
		logFile, err := os.OpenFile(cfg.File.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Logger{}, closer, errors.Wrapf(err, "open log file %s", cfg.File.Path)
		}
		fileWriter := zerolog.ConsoleWriter{
			Out:        logFile,
			TimeFormat: cfg.TimestampFormat,
			NoColor:    true,
		}
		w = zerolog.MultiLevelWriter(consoleWriter, fileWriter)
		closer = logFile
	}

	logger := zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(ParseLevel(cfg.Level.Global))

	return logger, closer, nil
}

// Component returns a child logger tagged with the component name and its own level.
func Component(logger zerolog.Logger, name, level string) zerolog.Logger {
	return logger.With().
		Str("component", name).
		Logger().
		Level(ParseLevel(level))
}

// ParseLevel parses a configured level, falling back to info.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
