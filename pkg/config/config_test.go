package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Standardizer.MaxRangeExpansion)
	assert.False(t, cfg.Standardizer.StrictRanges)
	assert.Empty(t, cfg.Standardizer.DictionaryPath)
	assert.Equal(t, "localhost", cfg.DBCreds.Host)
	assert.Equal(t, "5432", cfg.DBCreds.Port)
	assert.Equal(t, "address_keys", cfg.DBCreds.KeysTable)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Batch.Workers)
	assert.Equal(t, 1000, cfg.Batch.BatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
standardizer:
  dictionary_path: /etc/addresskey/dict.yaml
  max_range_expansion: 50
  strict_ranges: true
db_creds:
  host: db.internal
  source_table: customers
server:
  port: 9090
batch:
  workers: 4
log:
  format: console
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/etc/addresskey/dict.yaml", cfg.Standardizer.DictionaryPath)
	assert.Equal(t, 50, cfg.Standardizer.MaxRangeExpansion)
	assert.True(t, cfg.Standardizer.StrictRanges)
	assert.Equal(t, "db.internal", cfg.DBCreds.Host)
	assert.Equal(t, "customers", cfg.DBCreds.SourceTable)
	assert.Equal(t, "runs", cfg.DBCreds.RunsTable)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, 1000, cfg.Batch.BatchSize)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("ADDRESSKEY_DB_CREDS_HOST", "pg.example.com")
	t.Setenv("ADDRESSKEY_BATCH_WORKERS", "3")

	cfg, err := LoadConfig(writeConfig(t, "db_creds:\n  host: ignored\n"))
	require.NoError(t, err)

	assert.Equal(t, "pg.example.com", cfg.DBCreds.Host)
	assert.Equal(t, 3, cfg.Batch.Workers)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "batch:\n  workers: 0\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Standardizer: StandardizerConfig{MaxRangeExpansion: 1000},
			Server:       ServerConfig{Port: 8080},
			Batch:        BatchConfig{Workers: 1, BatchSize: 1},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"expansion limit", func(c *Config) { c.Standardizer.MaxRangeExpansion = 0 }},
		{"workers", func(c *Config) { c.Batch.Workers = -1 }},
		{"batch size", func(c *Config) { c.Batch.BatchSize = 0 }},
		{"port", func(c *Config) { c.Server.Port = 70000 }},
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
