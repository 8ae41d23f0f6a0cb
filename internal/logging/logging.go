// Package logging builds the process logger. Output goes to stderr or a
// file, never stdout, which carries the MCP stdio stream.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// Config selects the level, destination and encoding.
type Config struct {
	Level  string // debug, info, warn, error
	File   string // empty logs to stderr
	Format string // text or json
}

// Levels lists the accepted level names.
var Levels = []string{"debug", "info", "warn", "error"}

// Formats lists the accepted formatter names.
var Formats = []string{"text", "json"}

// New creates a logger. The returned closer releases the log file and is
// a no-op when logging to stderr.
func New(cfg Config) (*clog.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	}
	return NewWriter(w, cfg), closer, nil
}

// NewWriter creates a logger writing to w.
func NewWriter(w io.Writer, cfg Config) *clog.Logger {
	l := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           ParseLevel(cfg.Level),
		Prefix:          "win-ctrl",
	})
	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(clog.JSONFormatter)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *clog.Logger {
	return clog.New(io.Discard)
}

// ParseLevel maps a level name to a clog.Level, defaulting to info.
func ParseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
