// Package log configures structured logging for aligns using log/slog.
//
// Serve and export log to stderr. The terminal UI owns the screen, so it
// only logs when --debug points it at a file.
package log

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Setup configures the default slog logger based on verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
func Setup(verbose, quiet bool) {
	SetupWriter(os.Stderr, verbose, quiet)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, verbose, quiet bool) {
	var level slog.Level
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// Discard drops all log output.
func Discard() {
	SetupWriter(io.Discard, false, true)
}

// EnableFile sends debug-level logs to path, truncating it.
func EnableFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	SetupWriter(f, true, false)

	slog.Debug("debug logging enabled", "path", path)
	return nil
}

// Close closes the debug log file, if any, and silences logging.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		Discard()
		_ = logFile.Close()
		logFile = nil
	}
}

// Active reports whether a debug log file is open.
func Active() bool {
	mu.Lock()
	defer mu.Unlock()
	return logFile != nil
}

// Timed logs the duration of an operation at debug level. Usage:
//
//	defer log.Timed("render")()
func Timed(name string) func() {
	start := time.Now()
	return func() {
		slog.Debug("timed", "op", name, "elapsed", time.Since(start))
	}
}
