package shared

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

func level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// SetupLogger configures zerolog with console output on stderr.
func SetupLogger(debug bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level(debug)).
		With().
		Timestamp().
		Logger()
}

// SetupStructuredLogger configures zerolog for JSON output on stderr.
func SetupStructuredLogger(debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(os.Stderr).
		Level(level(debug)).
		With().
		Timestamp().
		Logger()
}

// NewLogger picks the console or JSON logger.
func NewLogger(debug, jsonLogs bool) zerolog.Logger {
	if jsonLogs {
		return SetupStructuredLogger(debug)
	}
	return SetupLogger(debug)
}
