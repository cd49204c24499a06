// Package logging configures the zerolog logger shared by every command.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvLevel overrides the default level when no flag is given.
const EnvLevel = "MBUDGET_LOG_LEVEL"

// Options selects the log level and destination.
type Options struct {
	Quiet   bool
	Verbose bool
	// Level is an explicit zerolog level name; it wins over Quiet/Verbose.
	Level string
	Out   io.Writer
	// JSON disables the console writer.
	JSON bool
}

// New builds a logger. Without flags the level comes from MBUDGET_LOG_LEVEL,
// falling back to warn so normal command output stays clean.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).With().Timestamp().Logger().Level(resolveLevel(opts))
}

func resolveLevel(opts Options) zerolog.Level {
	if lvl, ok := parseLevel(opts.Level); ok {
		return lvl
	}
	switch {
	case opts.Quiet:
		return zerolog.ErrorLevel
	case opts.Verbose:
		return zerolog.DebugLevel
	}
	if lvl, ok := parseLevel(os.Getenv(EnvLevel)); ok {
		return lvl
	}
	return zerolog.WarnLevel
}

func parseLevel(s string) (zerolog.Level, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zerolog.NoLevel, false
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, false
	}
	return lvl, true
}

// Component returns a child logger tagged with the component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
