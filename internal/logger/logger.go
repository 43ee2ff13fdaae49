// Package logger provides a thin wrapper around zerolog.Logger used
// throughout the Pathao SDK.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
// SDK components receive a *Logger at construction time; tests pass
// [Nop] to silence output.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing
// the SDK to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a *Logger for the given component label
// (e.g. "pathao-sdk", "webhook").
//
// The logger writes JSON to os.Stderr with a "component" field and a
// timestamp on every entry. The level defaults to Info so that the SDK
// stays quiet inside host applications; callers may lower it via
// [Logger.Level].
func NewLogger(component string) *Logger {
	l := zerolog.New(os.Stderr).
		Level(zerolog.InfoLevel).
		With().
		Str("component", component).
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all log output.
// It is intended for tests and for callers that want a silent SDK.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
