// Package logging provides structured logging for the republisher using zerolog.
// Console output is used when writing to a terminal, JSON otherwise, so the
// same binary produces readable output locally and machine-parseable output
// when run as a scheduled job.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("unit", "Gemeente Aalst").Msg("Loading document set")
//
//	ctx := logging.WithUnit(ctx, unit.ID)
//	logging.FromContext(ctx).Debug().Msg("Cleaning sessions")
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger serves code running without a context logger.
var defaultLogger zerolog.Logger

func init() {
	cfg := DefaultConfig()
	cfg.Level = envLevel()
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	defaultLogger = NewLoggerFromConfig(cfg)
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

func envLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	if os.Getenv("DEBUG") != "" {
		return "debug"
	}
	return "info"
}
