// Package logging configures the zerolog logger shared by opsview packages.
//
// The terminal belongs to the UI, so log output goes to a file. When the file
// cannot be opened logging is discarded instead of corrupting the screen.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at path and returns a close func for the file.
// verbose enables debug-level output.
func Setup(path string, verbose bool) (func() error, error) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	file, err := openLogFile(path)
	if err != nil {
		log.Logger = zerolog.New(io.Discard)
		return func() error { return nil }, err
	}

	log.Logger = zerolog.New(file).With().Timestamp().Logger()
	log.Debug().Str("logFile", path).Msg("Logger initialized")
	return file.Close, nil
}

// SetOutput redirects the global logger to w. Tests use it to capture output.
func SetOutput(w io.Writer) {
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// For returns a logger tagged with the given component name.
func For(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
