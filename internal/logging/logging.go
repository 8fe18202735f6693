// Package logging provides the application's structured logger. The TUI owns the terminal, so by default logs go to a dated file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// Logger is the global logger instance. It discards output until Init or SetLogger is called.
	Logger = log.New(io.Discard)

	logFile *os.File
)

// New creates a logger writing to w at the named level ("debug", "info", "warn", "error").
// Unknown level names fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
	})
}

// Init opens today's log file under dir and installs a file-backed global logger.
func Init(dir, level string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(dir, fmt.Sprintf("ytlc-%s.log", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f
	Logger = New(f, level)
	Logger.Info("ytlc started", "log", logPath)
	return nil
}

// SetLogger replaces the global logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		Logger = l
	}
}

// Close closes the log file, if one was opened.
func Close() {
	if logFile != nil {
		Logger.Info("ytlc shutting down")
		_ = logFile.Close()
		logFile = nil
	}
}

// DefaultDir returns $XDG_STATE_HOME/ytlc/logs, falling back to ~/.local/state.
func DefaultDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		homeDir, _ := os.UserHomeDir()
		stateHome = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateHome, "ytlc", "logs")
}

// Info logs an info message
func Info(msg string, keyvals ...any) {
	Logger.Info(msg, keyvals...)
}

// Debug logs a debug message
func Debug(msg string, keyvals ...any) {
	Logger.Debug(msg, keyvals...)
}

// Warn logs a warning message
func Warn(msg string, keyvals ...any) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message
func Error(msg string, keyvals ...any) {
	Logger.Error(msg, keyvals...)
}
