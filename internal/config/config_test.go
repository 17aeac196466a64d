package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDatabaseURL, EnvTableName, EnvRoot, EnvLogLevel, EnvConfigPath} {
		t.Setenv(k, "")
	}
}

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile_TOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[database]
url = "sqlite:./numbers.db"
table = "numbers"

[general]
root = "/srv/projects"

[appearance]
prompt = "form"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "sqlite:./numbers.db", cfg.Database.URL)
	require.Equal(t, "numbers", cfg.Database.Table)
	require.Equal(t, "/srv/projects", cfg.General.Root)
	require.Equal(t, PromptForm, cfg.Appearance.Prompt)
	require.Equal(t, ColorAuto, cfg.Appearance.Color, "unset keys keep defaults")
}

func TestLoadFile_YAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "database:\n  url: duckdb:counters.duckdb\n  table: counters\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "duckdb:counters.duckdb", cfg.Database.URL)
	require.Equal(t, "counters", cfg.Database.Table)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, ".", cfg.General.Root)
}

func TestLoadFile_Malformed(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[database\nurl="), 0o600))

	_, err := LoadFile(path)
	require.ErrorContains(t, err, "parsing config")
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[database]\nurl = \"a.db\"\ntable = \"from_file\"\n"), 0o600))

	t.Setenv(EnvTableName, "from_env")
	t.Setenv(EnvRoot, "/tmp/root")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a.db", cfg.Database.URL)
	require.Equal(t, "from_env", cfg.Database.Table)
	require.Equal(t, "/tmp/root", cfg.General.Root)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Database.URL = "sqlite:x.db"
	cfg.Database.Table = "dirs"
	require.NoError(t, Save(path, cfg))

	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestConfigPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/dirnum.yaml")
	require.Equal(t, "/etc/dirnum.yaml", ConfigPath())

	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	require.Equal(t, filepath.Join("/xdg", "dirnum", "config.toml"), ConfigPath())
}

func TestValidateTable(t *testing.T) {
	valid := []string{"numbers", "_t", "Dir_Counters2"}
	for _, name := range valid {
		require.NoError(t, ValidateTable(name), name)
	}

	invalid := []string{"", "1abc", "numbers; DROP TABLE x", `a"b`, "a-b", "a.b", "tab le"}
	for _, name := range invalid {
		err := ValidateTable(name)
		require.Error(t, err, name)
		require.True(t, errors.Is(err, ErrInvalidTable), name)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.ErrorContains(t, cfg.Validate(), "database URL is required")

	cfg.Database.URL = "sqlite:x.db"
	require.ErrorContains(t, cfg.Validate(), "table name is required")

	cfg.Database.Table = "bad name"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidTable)

	cfg.Database.Table = "numbers"
	require.NoError(t, cfg.Validate())

	cfg.Appearance.Prompt = "dialog"
	require.ErrorContains(t, cfg.Validate(), "unknown prompt style")

	cfg.Appearance.Prompt = PromptLine
	cfg.Appearance.Color = "sometimes"
	require.ErrorContains(t, cfg.Validate(), "unknown color mode")
}

func TestSaveRoundTrip_YAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := DefaultConfig()
	cfg.Database.URL = "duckdb:c.duckdb"
	cfg.Database.Table = "counters"
	cfg.Appearance.Prompt = PromptForm
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "table: counters")

	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
