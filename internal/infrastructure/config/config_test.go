package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
site:
  id: "lab"
  name: "Lab fleet"
paths:
  devices_file: "config/devices.yaml"
  data_dir: "/tmp/roadm/data"
  checkup_dir: "/tmp/roadm/checkup"
database:
  path: "/tmp/roadm/runs.db"
  wal_mode: true
  busy_timeout: 5
logging:
  level: "debug"
  format: "text"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Site.ID != "lab" {
		t.Errorf("Site.ID = %q, want %q", cfg.Site.ID, "lab")
	}
	if cfg.Paths.DataDir != "/tmp/roadm/data" {
		t.Errorf("Paths.DataDir = %q, want %q", cfg.Paths.DataDir, "/tmp/roadm/data")
	}
	if cfg.Database.Path != "/tmp/roadm/runs.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/roadm/runs.db")
	}
	// Unset sections keep their defaults.
	if cfg.Paths.ConfigDir != "config" {
		t.Errorf("Paths.ConfigDir = %q, want default %q", cfg.Paths.ConfigDir, "config")
	}
	if cfg.Output.XMLIndent != "  " {
		t.Errorf("Output.XMLIndent = %q, want two spaces", cfg.Output.XMLIndent)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "invalid: [yaml: content")); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
site:
  id: ""
logging:
  level: "verbose"
`
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Error("Load() expected validation error, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ROADM_DATABASE_PATH", "/override/runs.db")
	t.Setenv("ROADM_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, `site: {id: "lab"}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/override/runs.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want env override", cfg.Logging.Level)
	}
}
