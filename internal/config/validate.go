package config

import (
	"fmt"
	"strings"
)

// Validate checks the logging block. A disabled logger still needs a
// parseable level so turning it on later never fails on an old file.
func Validate(cfg Config) error {
	return validateLogging(cfg.Logging)
}

func validateLogging(logging LoggingConfig) error {
	switch strings.ToLower(strings.TrimSpace(logging.Level)) {
	case "error", "warn", "info", "debug":
		// valid
	default:
		return fmt.Errorf("logging.level must be one of error, warn, info, debug")
	}

	if !logging.Enabled {
		return nil
	}

	if logging.MaxSizeMB <= 0 {
		return fmt.Errorf("logging.max_size_mb must be greater than 0")
	}

	if logging.MaxBackups <= 0 {
		return fmt.Errorf("logging.max_backups must be greater than 0")
	}

	if strings.TrimSpace(logging.Dir) == "" {
		return fmt.Errorf("logging.dir is required when logging.enabled is true")
	}

	return nil
}
