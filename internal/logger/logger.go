// Package logger writes binview's diagnostics to a file, since the terminal
// belongs to the chart while it runs.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// DefaultLogPath is used when Init is never called.
const DefaultLogPath = "/tmp/binview.log"

var (
	slogLogger *slog.Logger
	levelVar   = new(slog.LevelVar)
	logFile    *os.File
	mu         sync.Mutex
	initDone   bool
	// explicit is set once Init or SetOutput chose the destination; output
	// opened lazily at defaultPath can still be replaced.
	explicit    bool
	defaultPath = DefaultLogPath
)

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens path for appending and sends all further output there, even if
// something was already logged to the default file. Calling it again after a
// successful call is a no-op.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if explicit {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	setOutput(f)
	explicit = true
	slogLogger.Info("Logger initialized", "path", path)
	return nil
}

// SetOutput sends log output to w. Tests use it to capture lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	setOutput(w)
	explicit = true
}

func setOutput(w io.Writer) {
	slogLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
	initDone = true
}

// Close closes the log file opened by Init.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	initDone = false
	explicit = false
	slogLogger = nil
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func ensureInit() {
	if initDone {
		return
	}
	f, err := os.OpenFile(defaultPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// Print to stderr since we can't log
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file %s: %v\n", defaultPath, err)
		setOutput(io.Discard)
		return
	}
	logFile = f
	setOutput(f)
}

func logWithLevel(level slog.Level, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	if !slogLogger.Enabled(context.Background(), level) {
		return
	}
	slogLogger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debug logs at debug level.
func Debug(format string, args ...interface{}) {
	logWithLevel(slog.LevelDebug, format, args...)
}

// Info logs at info level.
func Info(format string, args ...interface{}) {
	logWithLevel(slog.LevelInfo, format, args...)
}

// Warn logs at warn level.
func Warn(format string, args ...interface{}) {
	logWithLevel(slog.LevelWarn, format, args...)
}

// Error logs at error level.
func Error(format string, args ...interface{}) {
	logWithLevel(slog.LevelError, format, args...)
}
