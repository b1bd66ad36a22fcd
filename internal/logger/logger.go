// Package logger provides the process-wide structured logger built on
// log/slog. Level, format and output destination can be reconfigured at
// runtime; packages grab a scoped logger with With.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config holds logger configuration.
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
	Output string // stdout, stderr, or a file path
}

var (
	mu      sync.RWMutex
	level             = new(slog.LevelVar)
	format            = "text"
	output  io.Writer = os.Stderr
	slogger *slog.Logger
)

func init() {
	rebuild()
}

// rebuild recreates the slog handler from the current settings.
// Callers must hold mu.
func rebuild() {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	slogger = slog.New(handler)
}

// Init configures the package logger. Output can be "stdout", "stderr" or a
// file path, which is opened in append mode.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %w", cfg.Output, err)
		}
		output = f
	}

	if cfg.Level != "" {
		level.Set(parseLevel(cfg.Level))
	}
	if cfg.Format != "" {
		f := strings.ToLower(cfg.Format)
		if f != "text" && f != "json" {
			return fmt.Errorf("invalid log format %q (must be text or json)", cfg.Format)
		}
		format = f
	}

	rebuild()
	return nil
}

// InitWithWriter points the logger at a custom writer. Primarily for tests.
func InitWithWriter(w io.Writer, lvl, fmtName string) {
	mu.Lock()
	defer mu.Unlock()

	output = w
	if lvl != "" {
		level.Set(parseLevel(lvl))
	}
	if fmtName != "" {
		format = strings.ToLower(fmtName)
	}
	rebuild()
}

// SetLevel sets the minimum log level. Invalid levels are ignored.
func SetLevel(lvl string) {
	mu.Lock()
	defer mu.Unlock()
	level.Set(parseLevel(lvl))
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToUpper(lvl) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return slogger
}

// With returns a logger carrying the given key/value attributes.
func With(args ...any) *slog.Logger {
	return get().With(args...)
}

// Debug logs at debug level with structured fields.
func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

// Info logs at info level with structured fields.
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Warn logs at warn level with structured fields.
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// Error logs at error level with structured fields.
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}
