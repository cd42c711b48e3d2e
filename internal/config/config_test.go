package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "lineage.toml", `
[server]
port = "9090"

[parser]
max_records = 5000
date_strategy = "event"

[matches]
delimiter = ";"

[memgraph]
uri = "bolt://graph:7687"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5000, cfg.Parser.MaxRecords)
	assert.Equal(t, "event", cfg.Parser.DateStrategy)
	assert.Equal(t, ";", cfg.Matches.Delimiter)
	assert.Equal(t, "bolt://graph:7687", cfg.Memgraph.URI)
	// Untouched sections keep their defaults.
	assert.Equal(t, []string{"name", "match name", "display name"}, cfg.Matches.NameAliases)
	assert.True(t, cfg.Store.InMemory)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "lineage.yaml", `
llm:
  provider: openai
  model: gpt-4o-mini
  max_tokens: 400
  temperature: 0.2
clustering:
  algorithm: components
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 400, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, "components", cfg.Clustering.Algorithm)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.toml", "[server\nport ="))
	assert.ErrorContains(t, err, "failed to parse TOML")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("MEMGRAPH_URI", "bolt://env:7687")
	t.Setenv("LLM_PROVIDER", "claude")
	t.Setenv("LINEAGE_STORE_PATH", "/var/lib/lineage")
	t.Setenv("LINEAGE_MAX_RECORDS", "42")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "bolt://env:7687", cfg.Memgraph.URI)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "/var/lib/lineage", cfg.Store.Path)
	assert.False(t, cfg.Store.InMemory)
	assert.Equal(t, 42, cfg.Parser.MaxRecords)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non numeric port", func(c *Config) { c.Server.Port = "http" }},
		{"unknown date strategy", func(c *Config) { c.Parser.DateStrategy = "lunar" }},
		{"negative max records", func(c *Config) { c.Parser.MaxRecords = -1 }},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "eliza" }},
		{"negative max tokens", func(c *Config) { c.LLM.MaxTokens = -5 }},
		{"temperature above two", func(c *Config) { c.LLM.Temperature = 2.5 }},
		{"unknown algorithm", func(c *Config) { c.Clustering.Algorithm = "louvain" }},
		{"blank alias", func(c *Config) { c.Matches.NameAliases = []string{"name", ""} }},
		{"disk store without path", func(c *Config) { c.Store.InMemory = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}
