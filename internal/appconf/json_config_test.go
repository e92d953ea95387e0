package appconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_ValidConfig(t *testing.T) {
	config, err := LoadFromFile("../../testdata/config_valid.json")
	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify explicitly set values
	assert.Equal(t, 3000, config.Port)
	assert.Equal(t, "development", config.Env)

	// Verify defaults were applied
	assert.Equal(t, []string{"test"}, config.ApiKeys)
	assert.Equal(t, 100, config.RateLimit)
	assert.Equal(t, "./popmatch.db", config.DBPath)
	assert.Equal(t, "", config.DataPath, "no seed file unless one is configured")
	assert.Equal(t, "0 0 * * *", config.NormalizeSchedule)
}

func TestLoadFromFile_FullConfig(t *testing.T) {
	config, err := LoadFromFile("../../testdata/config_full.json")
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "production", config.Env)
	assert.Equal(t, []string{"key1", "key2", "key3"}, config.ApiKeys)
	assert.Equal(t, 50, config.RateLimit)
	assert.Equal(t, "/data/popmatch.db", config.DBPath)
	assert.Equal(t, "/data/seed.json", config.DataPath)
	assert.Equal(t, "30 2 * * *", config.NormalizeSchedule)
}

func TestLoadFromFile_MalformedJSON(t *testing.T) {
	config, err := LoadFromFile("../../testdata/config_malformed.json")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse JSON config")
}

func TestLoadFromFile_InvalidConfig(t *testing.T) {
	config, err := LoadFromFile("../../testdata/config_invalid.json")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "port")
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	config, err := LoadFromFile("../../testdata/does_not_exist.json")
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestToConfig(t *testing.T) {
	fc := &FileConfig{
		Port:      8080,
		Env:       "production",
		ApiKeys:   []string{"k"},
		RateLimit: 10,
	}
	cfg := fc.ToConfig()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, Production, cfg.Env)
	assert.Equal(t, []string{"k"}, cfg.ApiKeys)
	assert.Equal(t, 10, cfg.RateLimit)
}
