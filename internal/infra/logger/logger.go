package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// EnvLevel overrides the log level (debug, info, warn, error).
const EnvLevel = "LICBOM_LOG"

type Config struct {
	// Debug lowers the level to DEBUG and adds source locations.
	Debug bool
	// Level is one of debug, info, warn, error. Empty means warn, or the
	// value of LICBOM_LOG when set.
	Level string
	// File switches to JSON records appended to this path.
	File string
	// Stderr receives text records when File is empty. Defaults to os.Stderr.
	Stderr io.Writer
}

var (
	mu      sync.RWMutex
	global  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logFile *os.File
	logPath string
)

// Setup replaces the process-wide logger. The returned cleanup closes the log
// file, if any, and restores the default stderr logger.
func Setup(cfg Config) (func() error, error) {
	level, err := resolveLevel(cfg)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				t := a.Value.Time().UTC()
				a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var (
		h    slog.Handler
		f    *os.File
		path string
	)
	if cfg.File != "" {
		path = filepath.Clean(cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, err
		}
		h = slog.NewJSONHandler(f, opts)
	} else {
		w := cfg.Stderr
		if w == nil {
			w = os.Stderr
		}
		h = slog.NewTextHandler(w, opts)
	}

	l := slog.New(h)

	mu.Lock()
	prevFile := logFile
	global = l
	logFile = f
	logPath = path
	mu.Unlock()
	if prevFile != nil {
		_ = prevFile.Close()
	}

	l.Debug("logger.initialized", "level", level.String(), "file", path)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		logPath = ""
		global = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		return cerr
	}

	return cleanup, nil
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Path returns the active log file, or "" when logging to stderr.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

func resolveLevel(cfg Config) (slog.Level, error) {
	if cfg.Debug {
		return slog.LevelDebug, nil
	}
	name := cfg.Level
	if name == "" {
		name = os.Getenv(EnvLevel)
	}
	return ParseLevel(name)
}

// ParseLevel maps a level name to a slog level. The empty string is warn.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return slog.LevelWarn, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}
