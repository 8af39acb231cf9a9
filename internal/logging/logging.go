// Package logging provides the process-wide structured logger.
//
// Everything goes to stderr: stdout is reserved for hook protocol JSON, and
// a stray log line there would corrupt the agent's view of the decision.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the shared logger instance. Setup replaces it; the zero-config
// default logs at info level to stderr.
var Logger zerolog.Logger

// Setup configures the shared logger. Level strings are case-insensitive
// ("debug", "info", "warn", "error"); anything unrecognized falls back to
// info. Pretty switches to human-readable console output for interactive
// use.
func Setup(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	Logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Debug starts a debug-level log event.
func Debug() *zerolog.Event { return Logger.Debug() }

// Info starts an info-level log event.
func Info() *zerolog.Event { return Logger.Info() }

// Warn starts a warn-level log event.
func Warn() *zerolog.Event { return Logger.Warn() }

// Error starts an error-level log event.
func Error() *zerolog.Event { return Logger.Error() }

func init() {
	Setup("info", false)
}
