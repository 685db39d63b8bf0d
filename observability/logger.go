// Package observability wires structured logging and prometheus metrics.
package observability

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// InitLogger builds the process logger on stderr and installs it as
// log.Logger. Stdout stays free for command output.
func InitLogger(app, level, format string) (zerolog.Logger, error) {
	logger, err := NewLogger(os.Stderr, app, level, format)
	if err != nil {
		return logger, err
	}
	log.Logger = logger
	return logger, nil
}

// NewLogger builds a logger writing to out without touching log.Logger.
func NewLogger(out io.Writer, app, level, format string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	switch strings.ToLower(format) {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Str("app", app).Logger(), nil
}

// ParseLevel maps a level name to zerolog. Empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}
