// Package logger provides the process-wide structured logger used by
// the binaries and the service layer. Library packages stay log-free.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var root = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// Init configures the global logger. Production gets JSON on stderr,
// everything else gets the human console writer.
func Init(environment string, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	var w io.Writer = os.Stderr
	if environment != "production" {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	root = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// With returns a child zerolog logger carrying the given component
// name, for packages that hold their own logger.
func With(component string) zerolog.Logger {
	return root.With().Str("component", component).Logger()
}

// Debug logs at debug level with alternating key/value fields.
func Debug(msg string, keyvals ...interface{}) {
	root.Debug().Fields(keyvals).Msg(msg)
}

// Info logs at info level with alternating key/value fields.
func Info(msg string, keyvals ...interface{}) {
	root.Info().Fields(keyvals).Msg(msg)
}

// Warn logs at warn level with alternating key/value fields.
func Warn(msg string, keyvals ...interface{}) {
	root.Warn().Fields(keyvals).Msg(msg)
}

// Error logs an error with alternating key/value fields.
func Error(msg string, err error, keyvals ...interface{}) {
	root.Error().Err(err).Fields(keyvals).Msg(msg)
}

// Fatal logs an error and exits the process.
func Fatal(msg string, err error, keyvals ...interface{}) {
	root.Fatal().Err(err).Fields(keyvals).Msg(msg)
}
