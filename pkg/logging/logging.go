// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	level, err := logging.ParseLevel("debug")
//	logging.Setup(os.Stderr, level)
//
// Color is disabled when the writer is not a terminal.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// DefaultLevel keeps the interactive shell quiet unless asked otherwise.
const DefaultLevel = slog.LevelWarn

// Setup installs a tint logger writing to w at level as the slog default.
func Setup(w io.Writer, level slog.Level) {
	slog.SetDefault(New(w, level, NoColor(w)))
}

// NoColor reports whether w should receive plain output: anything that is not
// a terminal file.
func NoColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// New returns a tint logger writing to w.
func New(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    noColor,
	}))
}

// ParseLevel maps a level name to a slog.Level. An empty name yields DefaultLevel.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return DefaultLevel, fmt.Errorf("unknown log level %q", name)
	}
}
