package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "XIDLE_CONFIG"

type Config struct {
	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

type SourceType string

const (
	SourceConfigFile  SourceType = "config_file"
	SourceEnvironment SourceType = "environment"
	SourceDefaults    SourceType = "defaults"
)

// SourceSelection records where the effective config came from.
type SourceSelection struct {
	Type   SourceType
	Path   string
	Reason string
}

type LoadResult struct {
	Config Config
	Source SourceSelection
}

func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			Dir:        defaultLogDir(),
			MaxSizeMB:  5,
			MaxBackups: 3,
			Compress:   false,
		},
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(configDir, "xidle"), nil
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFromBytes overlays YAML data onto the defaults.
func LoadFromBytes(data []byte) (Config, error) {
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}

	cfg.Logging.Dir = normalizeLoggingDir(cfg.Logging.Dir)

	if err := Validate(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadWithSource resolves the config source and parses it. On error the
// returned result still carries usable defaults.
func LoadWithSource(opts ResolveOptions) (LoadResult, error) {
	result := LoadResult{Config: DefaultConfig()}

	source, err := ResolveConfigSource(opts)
	if err != nil {
		result.Source = SourceSelection{Type: SourceDefaults, Reason: "config source could not be resolved"}
		return result, err
	}
	result.Source = source

	if source.Type == SourceDefaults {
		return result, nil
	}

	data, err := os.ReadFile(source.Path)
	if err != nil {
		return result, fmt.Errorf("read config %s: %w", source.Path, err)
	}

	cfg, err := LoadFromBytes(data)
	if err != nil {
		return result, fmt.Errorf("%s: %w", source.Path, err)
	}

	result.Config = cfg
	return result, nil
}

// Init creates a default config file at $XIDLE_CONFIG, or at ConfigPath
// when that is unset. An existing file is never overwritten.
func Init() (string, error) {
	path := strings.TrimSpace(os.Getenv(EnvConfigPath))
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return "", err
		}
	}
	return InitAt(path)
}

// InitAt writes the default config to path, refusing to overwrite.
func InitAt(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config already exists at %s", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	data, err := Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	return path, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
