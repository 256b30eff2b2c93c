package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WritesTemplateAndUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.Equal(t, filepath.Join(dir, "kundli.db"), cfg.Storage.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "mock", cfg.Ephemeris.Provider)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.True(t, cfg.Validation.Strict)
}

func TestLoad_ReadsTemplateBack(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.NoError(t, err)

	// Second load parses the template written by the first.
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	content := `
[server]
port = 9090

[logging]
level = "debug"
file = false

[ephemeris]
provider = "file"
chart_file = "/tmp/lagna.yaml"

[batch]
concurrency = 8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Logging.File)
	assert.Equal(t, "file", cfg.Ephemeris.Provider)
	assert.Equal(t, "/tmp/lagna.yaml", cfg.Ephemeris.ChartFile)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	// untouched sections keep their defaults
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KUNDLI_DB_PATH", filepath.Join(dir, "other.db"))
	t.Setenv("KUNDLI_PORT", "7070")
	t.Setenv("KUNDLI_LOG_LEVEL", "warn")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "other.db"), cfg.Storage.Path)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[logging]\nlevel = \"loud\"\n"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage:   StorageConfig{Path: "k.db"},
			Server:    ServerConfig{Port: 8080},
			Logging:   LoggingConfig{Level: "info"},
			Ephemeris: EphemerisConfig{Provider: "mock"},
			Batch:     BatchConfig{Concurrency: 1},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no storage path", func(c *Config) { c.Storage.Path = "" }},
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"negative timeout", func(c *Config) { c.Server.ReadTimeout = -time.Second }},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }},
		{"bad provider", func(c *Config) { c.Ephemeris.Provider = "swiss" }},
		{"file provider without file", func(c *Config) { c.Ephemeris.Provider = "file" }},
		{"zero concurrency", func(c *Config) { c.Batch.Concurrency = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
