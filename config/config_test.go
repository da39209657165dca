package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig(t)

	assert.Equal(t, "chora.db", cfg.Database.Path)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "default", cfg.Server.GraphName)
	assert.Equal(t, 14.0, cfg.Decay.HalfLifeDays)
	assert.Equal(t, 3, cfg.Practices.MinOccurrences)
	assert.Equal(t, 30, cfg.Practices.TimeWindowDays)
	assert.Equal(t, 0.5, cfg.Practices.MinRegularity)
	assert.Equal(t, 3, cfg.Liminality.MinTransitions)
	assert.Equal(t, 50.0, cfg.Extraction.ClusterRadiusM)
	assert.False(t, cfg.Validation.Strict)
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := defaultConfig(t)
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"huge port", func(c *Config) { c.Server.Port = 70000 }},
		{"zero half-life", func(c *Config) { c.Decay.HalfLifeDays = 0 }},
		{"negative half-life", func(c *Config) { c.Decay.HalfLifeDays = -1 }},
		{"zero min occurrences", func(c *Config) { c.Practices.MinOccurrences = 0 }},
		{"regularity above one", func(c *Config) { c.Practices.MinRegularity = 1.5 }},
		{"zero cluster radius", func(c *Config) { c.Extraction.ClusterRadiusM = 0 }},
		{"negative rate limit", func(c *Config) { c.Ingest.RequestsPerSecond = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chora.toml")
	content := `
[database]
path = "/tmp/platial.db"

[server]
port = 9000

[decay]
half_life_days = 7.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/platial.db", cfg.Database.Path)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 7.0, cfg.Decay.HalfLifeDays)

	// Unset keys fall back to defaults.
	assert.Equal(t, 3, cfg.Practices.MinOccurrences)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chora.toml")

	cfg := defaultConfig(t)
	cfg.Server.Port = 9100
	cfg.Decay.HalfLifeDays = 21.0
	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, loaded.Server.Port)
	assert.Equal(t, 21.0, loaded.Decay.HalfLifeDays)
}

func TestSaveRefusesInvalidConfig(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Server.Port = -1
	err := Save(cfg, filepath.Join(t.TempDir(), "chora.toml"))
	assert.Error(t, err)
}

func TestSaveRotatesBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chora.toml")
	cfg := defaultConfig(t)

	require.NoError(t, Save(cfg, path))
	require.NoError(t, Save(cfg, path))

	_, err := os.Stat(path + ".back1")
	assert.NoError(t, err)
}

func TestWriteDefaultConfigRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chora.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
	assert.Error(t, WriteDefaultConfig(path))
}

func TestSaveMarksOwnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chora.toml")
	cfg := defaultConfig(t)

	// First save creates the file so the watcher has something to attach to
	require.NoError(t, Save(cfg, path))

	watcher, err := NewConfigWatcher(path)
	require.NoError(t, err)
	defer watcher.Stop()

	SetGlobalWatcher(watcher)
	defer SetGlobalWatcher(nil)

	require.NoError(t, Save(cfg, path))
	assert.True(t, watcher.checkOwnWrite(), "a programmatic save must flag the watcher so it skips the reload")
	assert.False(t, watcher.checkOwnWrite(), "the own-write flag is consumed after one check")
}
