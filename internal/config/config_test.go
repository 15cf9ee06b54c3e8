package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Logging.Enabled {
		t.Errorf("Logging.Enabled: got true, want false")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.MaxSizeMB != 5 {
		t.Errorf("Logging.MaxSizeMB: got %d, want 5", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("Logging.MaxBackups: got %d, want 3", cfg.Logging.MaxBackups)
	}
	if cfg.Logging.Dir == "" {
		t.Errorf("Logging.Dir: got empty, want platform default")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(DefaultConfig()) = %v, want nil", err)
	}
}

func TestLoadFromBytes_EmptyData(t *testing.T) {
	cfg, err := LoadFromBytes([]byte{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := DefaultConfig()
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadFromBytes_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
logging:
  enabled: true
  level: debug
  dir: ` + dir + `
`)
	cfg, err := LoadFromBytes(yaml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Logging.Enabled {
		t.Errorf("Logging.Enabled: got false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Dir != dir {
		t.Errorf("Logging.Dir: got %q, want %q", cfg.Logging.Dir, dir)
	}

	// Non-overridden fields stay at defaults
	if cfg.Logging.MaxSizeMB != 5 {
		t.Errorf("Logging.MaxSizeMB: got %d, want default 5", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("Logging.MaxBackups: got %d, want default 3", cfg.Logging.MaxBackups)
	}
}

func TestLoadFromBytes_RelativeLogsDirNormalized(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("logging:\n  dir: logs\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.Dir != defaultLogDir() {
		t.Errorf("Logging.Dir: got %q, want %q", cfg.Logging.Dir, defaultLogDir())
	}
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte(":\tinvalid: yaml: {"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("error %q does not contain %q", err.Error(), "parse config")
	}
}

func TestLoadFromBytes_InvalidLevel(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("logging:\n  level: chatty\n"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("error %q does not mention logging.level", err.Error())
	}
	if cfg != DefaultConfig() {
		t.Errorf("config on error = %+v, want defaults", cfg)
	}
}

func TestLoadWithSource_EnvironmentFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xidle.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	result, err := LoadWithSource(ResolveOptions{EnvPath: path})
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if result.Source.Type != SourceEnvironment {
		t.Fatalf("source type = %q, want %q", result.Source.Type, SourceEnvironment)
	}
	if result.Config.Logging.Level != "warn" {
		t.Fatalf("Logging.Level = %q, want %q", result.Config.Logging.Level, "warn")
	}
}

func TestLoadWithSource_MissingEnvironmentFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	result, err := LoadWithSource(ResolveOptions{EnvPath: path})
	if err == nil {
		t.Fatal("expected read error, got nil")
	}
	if !strings.Contains(err.Error(), "read config") {
		t.Fatalf("error %q does not contain %q", err.Error(), "read config")
	}
	if result.Config != DefaultConfig() {
		t.Fatalf("config on error = %+v, want defaults", result.Config)
	}
}

func TestLoadWithSource_NoFileUsesDefaults(t *testing.T) {
	result, err := LoadWithSource(ResolveOptions{
		DefaultPath: filepath.Join(t.TempDir(), "config.yaml"),
	})
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if result.Source.Type != SourceDefaults {
		t.Fatalf("source type = %q, want %q", result.Source.Type, SourceDefaults)
	}
	if result.Config != DefaultConfig() {
		t.Fatalf("config = %+v, want defaults", result.Config)
	}
}

func TestInitAt_WritesDefaultsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	got, err := InitAt(path)
	if err != nil {
		t.Fatalf("InitAt() error = %v", err)
	}
	if got != path {
		t.Fatalf("InitAt() = %q, want %q", got, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written config: %v", err)
	}
	cfg, err := LoadFromBytes(data)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("written config = %+v, want defaults", cfg)
	}

	if _, err := InitAt(path); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("second InitAt() error = %v, want already exists", err)
	}
}

func TestInit_UsesEnvironmentPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env", "xidle.yaml")
	t.Setenv(EnvConfigPath, path)

	got, err := Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if got != path {
		t.Fatalf("Init() = %q, want %q", got, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written at %s: %v", path, err)
	}
}
