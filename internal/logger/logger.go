// Package logger holds the process-wide zerolog logger used by the commands
// and the preview server.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	SetConsoleWriter(os.Stderr, false)
}

// Log returns the shared logger.
func Log() *zerolog.Logger {
	return &log
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// SetJSONWriter switches the shared logger to newline-delimited JSON on w.
func SetJSONWriter(w io.Writer) {
	log = zerolog.New(w).Level(log.GetLevel()).With().Timestamp().Logger()
}

// SetLevel parses a zerolog level name ("debug", "info", ...) and applies it.
func SetLevel(level string) error {
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log = log.Level(l)
	return nil
}

// Setup configures the writer ("console" or "json") and the level.
func Setup(format, level string) error {
	switch format {
	case "", "console":
		SetConsoleWriter(os.Stderr, false)
	case "json":
		SetJSONWriter(os.Stderr)
	default:
		return fmt.Errorf("log format %q: want console or json", format)
	}
	if level == "" {
		return nil
	}
	return SetLevel(level)
}
