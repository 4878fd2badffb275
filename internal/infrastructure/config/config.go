package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for roadmctl.
// All configuration is loaded from YAML and can be overridden by
// environment variables.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Paths    PathsConfig    `yaml:"paths"`
	Output   OutputConfig   `yaml:"output"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig identifies the deployment this fleet belongs to.
type SiteConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// PathsConfig locates the operator- and runner-facing files.
//
// The automation runner drops each device's channel-plan and
// media-channels replies into DataDir (<name>_channel_plan.xml,
// <name>_media_channels.xml) and picks the rendered config back up
// from the same directory (<name>.xml). Per-device proposals live in
// ConfigDir (<name>.yaml) next to the devices file.
type PathsConfig struct {
	// DevicesFile is the operator's device list.
	DevicesFile string `yaml:"devices_file"`

	// InventoryFile is where the runner inventory is written.
	InventoryFile string `yaml:"inventory_file"`

	// ConfigDir holds per-device proposal documents.
	ConfigDir string `yaml:"config_dir"`

	// DataDir holds fetched device documents and rendered configs.
	DataDir string `yaml:"data_dir"`

	// CheckupDir receives the per-device summary documents.
	CheckupDir string `yaml:"checkup_dir"`
}

// OutputConfig contains document formatting settings. These are
// passed down to the renderers; nothing in the core reads them from
// package state.
type OutputConfig struct {
	// XMLIndent is the per-level indentation of rendered configs.
	XMLIndent string `yaml:"xml_indent"`

	// YAMLIndent is the indent width of summary documents.
	YAMLIndent int `yaml:"yaml_indent"`
}

// DatabaseConfig contains SQLite database settings for the run
// history.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern ROADM_SECTION_KEY, for
// example ROADM_DATABASE_PATH or ROADM_LOG_LEVEL.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ID:   "site-001",
			Name: "ROADM fleet",
		},
		Paths: PathsConfig{
			DevicesFile:   "config/devices.yaml",
			InventoryFile: "playbooks/inventory.yaml",
			ConfigDir:     "config",
			DataDir:       "data",
			CheckupDir:    "checkup",
		},
		Output: OutputConfig{
			XMLIndent:  "  ",
			YAMLIndent: 2,
		},
		Database: DatabaseConfig{
			Path:        "./data/roadmctl.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables follow the pattern ROADM_SECTION_KEY.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ROADM_DEVICES_FILE"); v != "" {
		cfg.Paths.DevicesFile = v
	}
	if v := os.Getenv("ROADM_DATA_DIR"); v != "" {
		cfg.Paths.DataDir = v
	}
	if v := os.Getenv("ROADM_CHECKUP_DIR"); v != "" {
		cfg.Paths.CheckupDir = v
	}
	if v := os.Getenv("ROADM_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("ROADM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Site.ID == "" {
		errs = append(errs, "site.id is required")
	}
	if c.Paths.DevicesFile == "" {
		errs = append(errs, "paths.devices_file is required")
	}
	if c.Paths.ConfigDir == "" {
		errs = append(errs, "paths.config_dir is required")
	}
	if c.Paths.DataDir == "" {
		errs = append(errs, "paths.data_dir is required")
	}
	if c.Paths.CheckupDir == "" {
		errs = append(errs, "paths.checkup_dir is required")
	}
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}
	if c.Output.YAMLIndent < 0 {
		errs = append(errs, "output.yaml_indent must not be negative")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q is not recognised", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
