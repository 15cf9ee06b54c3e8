package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	appName         = "xidle"
	relativeLogsDir = "logs"
)

type logDirResolverOptions struct {
	GOOS        string
	getenv      func(string) string
	userHomeDir func() (string, error)
}

func defaultLogDir() string {
	return resolveDefaultLogDir(logDirResolverOptions{})
}

// resolveDefaultLogDir follows the XDG state directory on unix-likes, where
// X servers live, and the user library on macOS for XQuartz sessions.
func resolveDefaultLogDir(opts logDirResolverOptions) string {
	goos := strings.TrimSpace(opts.GOOS)
	if goos == "" {
		goos = runtime.GOOS
	}

	getenv := opts.getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	userHomeDir := opts.userHomeDir
	if userHomeDir == nil {
		userHomeDir = os.UserHomeDir
	}

	home, homeErr := userHomeDir()
	if homeErr != nil || strings.TrimSpace(home) == "" {
		home = ""
	}

	if goos == "darwin" {
		if home == "" {
			return relativeLogsDir
		}
		return filepath.Join(home, "Library", "Logs", appName)
	}

	if stateHome := strings.TrimSpace(getenv("XDG_STATE_HOME")); stateHome != "" {
		return filepath.Join(stateHome, appName, "logs")
	}
	if home == "" {
		return relativeLogsDir
	}
	return filepath.Join(home, ".local", "state", appName, "logs")
}

// normalizeLoggingDir maps an empty or bare "logs" dir to the platform
// default so the log file never lands in whatever directory xidle ran from.
func normalizeLoggingDir(dir string) string {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return defaultLogDir()
	}
	if !filepath.IsAbs(trimmed) && filepath.Clean(trimmed) == relativeLogsDir {
		return defaultLogDir()
	}
	return trimmed
}
