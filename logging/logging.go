// Package logging configures the diagnostic logger shared by all packages.
//
// Operator-facing output (conversion reports, errors) is printed by main;
// this logger carries the -v/-vv traces.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger for the given verbosity and writes
// human-readable lines to w.
func Setup(verbosity int, w io.Writer, color bool) {
	zerolog.SetGlobalLevel(Level(verbosity))

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !color,
	}
	log.Logger = zerolog.New(console).With().Timestamp().Logger()

	// Caller information only helps when debugging.
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Msg("Logger initialized")
}

// Level maps a -v count to a zerolog level.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Get returns a logger tagged with the component name.
func Get(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// Start logs the beginning of an operation and returns a function that logs
// its completion with the elapsed time.
func Start(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
