package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Digni/xidle/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

const redactedValue = "[REDACTED]"

type Role string

const (
	RoleQuery  Role = "query"
	RoleConfig Role = "config"
)

// Bootstrap builds the logger for role and installs it as the slog default.
// Records only ever go to the role's log file. warn receives at most one
// line, when the file can not be set up or written.
func Bootstrap(cfg config.LoggingConfig, role Role, warn io.Writer) *slog.Logger {
	var sink io.Writer = io.Discard
	if cfg.Enabled {
		sink = openRoleFile(cfg, role, warn)
	}

	logger := NewWithWriter(cfg, role, warn, sink)
	slog.SetDefault(logger)
	return logger
}

// NewWithWriter returns a JSON logger on w. The first failed write prints a
// warning to warn and every later record is dropped.
func NewWithWriter(cfg config.LoggingConfig, role Role, warn io.Writer, w io.Writer) *slog.Logger {
	if !cfg.Enabled || w == io.Discard {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if warn == nil {
		warn = os.Stderr
	}

	handler := slog.NewJSONHandler(&fileSink{w: w, warn: warn, name: string(role)}, &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		ReplaceAttr: redactAttr,
	})
	return slog.New(handler).With("role", string(role))
}

func openRoleFile(cfg config.LoggingConfig, role Role, warn io.Writer) io.Writer {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		if warn != nil {
			fmt.Fprintf(warn, "warning: unable to initialize log directory %q: %v; logging disabled\n", cfg.Dir, err)
		}
		return io.Discard
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, string(role)+".log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
}

func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// fileSink never returns an error to the handler. slog serializes writes,
// so broken needs no locking.
type fileSink struct {
	w      io.Writer
	warn   io.Writer
	name   string
	broken bool
}

func (s *fileSink) Write(p []byte) (int, error) {
	if s.broken {
		return len(p), nil
	}
	if _, err := s.w.Write(p); err != nil {
		s.broken = true
		fmt.Fprintf(s.warn, "warning: %s log file unavailable (%v); logging disabled\n", s.name, err)
	}
	return len(p), nil
}

func redactAttr(_ []string, attr slog.Attr) slog.Attr {
	switch {
	case attr.Key == slog.TimeKey:
		return slog.String(slog.TimeKey, attr.Value.Time().UTC().Format(time.RFC3339))
	case isSensitiveKey(attr.Key):
		return slog.String(attr.Key, redactedValue)
	default:
		return attr
	}
}

// isSensitiveKey catches X authority material (MIT-MAGIC-COOKIE data,
// XAUTHORITY contents) along with the usual credential names.
func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(key)
	for _, marker := range []string{"cookie", "auth", "token", "secret", "password"} {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}
