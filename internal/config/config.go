// Package config loads dirnum settings from a config file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by LoadFile.
const (
	EnvDatabaseURL = "DIRNUM_DATABASE_URL"
	EnvTableName   = "DIRNUM_TABLE_NAME"
	EnvRoot        = "DIRNUM_CREATE_ROOT"
	EnvLogLevel    = "DIRNUM_LOG_LEVEL"
	EnvConfigPath  = "DIRNUM_CONFIG"
)

// Prompt styles.
const (
	PromptLine = "line"
	PromptForm = "form"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrInvalidTable is returned when a table name is not a plain SQL identifier.
var ErrInvalidTable = errors.New("invalid table name")

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Config holds all dirnum configuration.
type Config struct {
	Database   DatabaseConfig   `toml:"database" yaml:"database"`
	General    GeneralConfig    `toml:"general" yaml:"general"`
	Appearance AppearanceConfig `toml:"appearance" yaml:"appearance"`
	Log        LogConfig        `toml:"log" yaml:"log"`
}

// DatabaseConfig points at the counter table.
type DatabaseConfig struct {
	URL   string `toml:"url,omitempty" yaml:"url,omitempty"`
	Table string `toml:"table,omitempty" yaml:"table,omitempty"`
}

// GeneralConfig holds session defaults.
type GeneralConfig struct {
	Root string `toml:"root" yaml:"root"`
}

// AppearanceConfig controls terminal output.
type AppearanceConfig struct {
	Color  string `toml:"color" yaml:"color"`
	Prompt string `toml:"prompt" yaml:"prompt"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Root: ".",
		},
		Appearance: AppearanceConfig{
			Color:  ColorAuto,
			Prompt: PromptLine,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dirnum")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dirnum")
}

// ConfigPath returns the config file in effect: DIRNUM_CONFIG if set,
// otherwise config.toml under ConfigDir.
func ConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads the given config file, returning defaults if it doesn't
// exist, then applies environment overrides. Files ending in .yaml or .yml
// are decoded as YAML, everything else as TOML.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, &cfg); err != nil {
			return cfg, err
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv(EnvTableName); v != "" {
		cfg.Database.Table = v
	}
	if v := os.Getenv(EnvRoot); v != "" {
		cfg.General.Root = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// Save writes the config to path, as YAML for .yaml/.yml files and TOML
// otherwise.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := toml.NewEncoder(f)
		return enc.Encode(cfg)
	}
}

// Validate checks that a session can start with cfg.
func (c Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database URL is required (--database or %s)", EnvDatabaseURL)
	}
	if c.Database.Table == "" {
		return fmt.Errorf("table name is required (--table or %s)", EnvTableName)
	}
	if err := ValidateTable(c.Database.Table); err != nil {
		return err
	}
	switch c.Appearance.Prompt {
	case PromptLine, PromptForm:
	default:
		return fmt.Errorf("unknown prompt style %q (want %s or %s)", c.Appearance.Prompt, PromptLine, PromptForm)
	}
	switch c.Appearance.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q", c.Appearance.Color)
	}
	return nil
}

// ValidateTable reports whether name can be spliced into SQL as a table
// identifier. Values are always bound as parameters; only the table name is
// interpolated, so it is restricted to letters, digits and underscores.
func ValidateTable(name string) error {
	if !tableNameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, name)
	}
	return nil
}
