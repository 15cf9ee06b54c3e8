package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

type resolveFileState int

const (
	resolveFilePresent resolveFileState = iota
	resolveFileMissing
	resolveFileUnreadable
)

type ResolveOptions struct {
	EnvPath     string
	DefaultPath string
	inspectFile func(path string) (resolveFileState, error)
}

func inspectConfigFile(path string) (resolveFileState, error) {
	f, err := os.Open(path)
	if err == nil {
		_ = f.Close()
		return resolveFilePresent, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return resolveFileMissing, nil
	}

	if errors.Is(err, fs.ErrPermission) {
		return resolveFileUnreadable, nil
	}

	return resolveFileMissing, fmt.Errorf("inspect config file %q: %w", path, err)
}

// ResolveConfigSource returns a single deterministic config winner without parsing.
// An explicit environment path always wins, even when the file is missing,
// so a typo surfaces as a read error instead of silently using defaults.
func ResolveConfigSource(opts ResolveOptions) (SourceSelection, error) {
	if envPath := strings.TrimSpace(opts.EnvPath); envPath != "" {
		return SourceSelection{Type: SourceEnvironment, Path: envPath, Reason: "selected by " + EnvConfigPath}, nil
	}

	inspect := opts.inspectFile
	if inspect == nil {
		inspect = inspectConfigFile
	}

	path := opts.DefaultPath
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return SourceSelection{Type: SourceDefaults, Reason: "config directory unavailable"}, nil
		}
	}

	state, err := inspect(path)
	if err != nil {
		return SourceSelection{}, err
	}

	switch state {
	case resolveFilePresent:
		return SourceSelection{Type: SourceConfigFile, Path: path, Reason: "selected config path"}, nil
	case resolveFileUnreadable:
		return SourceSelection{Type: SourceDefaults, Path: path, Reason: "config file is unreadable"}, nil
	default:
		return SourceSelection{Type: SourceDefaults, Reason: "no config file or environment path found"}, nil
	}
}
