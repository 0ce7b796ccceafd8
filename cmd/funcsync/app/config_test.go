package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/funcsync/pkg/pipeline"
)

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultConfig(), config.Pipeline)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.LogLevel)
	assert.Empty(t, config.ConfigFile)
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("FUNCSYNC_DIR", "/data/logs")
	t.Setenv("FUNCSYNC_FLAVOURS", "a,l,x")
	t.Setenv("FUNCSYNC_KEY_FIELD", "meta.name")
	t.Setenv("FUNCSYNC_CONCURRENCY", "8")
	t.Setenv("FUNCSYNC_DRY_RUN", "true")
	t.Setenv("FUNCSYNC_FORMAT", "json")
	t.Setenv("FUNCSYNC_VERBOSE", "true")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/data/logs", config.Pipeline.Dir)
	assert.Equal(t, []string{"a", "l", "x"}, config.Pipeline.Flavours)
	assert.Equal(t, "meta.name", config.Pipeline.KeyField)
	assert.Equal(t, 8, config.Pipeline.Concurrency)
	assert.True(t, config.Pipeline.DryRun)
	assert.Equal(t, "json", config.Format)
	assert.True(t, config.Verbose)
}

func TestLoadConfigDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("FUNCSYNC_SUFFIX=.env-suffix\nFUNCSYNC_OUTPUT_DIR=/from/env\n"), 0o644))
	require.NoError(t, os.WriteFile(".env.local", []byte("FUNCSYNC_SUFFIX=.local\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("FUNCSYNC_SUFFIX")
		os.Unsetenv("FUNCSYNC_OUTPUT_DIR")
	})

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ".local", config.Pipeline.Suffix, ".env.local wins over .env")
	assert.Equal(t, "/from/env", config.Pipeline.OutputDir)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	content := `
dir: /data/logs
levels: [O0, O3]
primary_pattern: "calls_{flavour}_{level}.jsonl"
log_level: debug
`
	require.NoError(t, os.WriteFile(".funcsync.yaml", []byte(content), 0o644))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/data/logs", config.Pipeline.Dir)
	assert.Equal(t, []string{"O0", "O3"}, config.Pipeline.Levels)
	assert.Equal(t, "calls_{flavour}_{level}.jsonl", config.Pipeline.PrimaryPattern)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, ".funcsync.yaml", filepath.Base(config.ConfigFile))

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv("FUNCSYNC_DIR", "/override")
		config, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "/override", config.Pipeline.Dir)
	})
}

func TestLoadConfigBrokenFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("levels: [O0\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "configuration error")
}

func TestUpdateFromFlags(t *testing.T) {
	c := &Config{Format: "yaml", LogLevel: "debug"}
	c.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, c.Verbose)
	assert.True(t, c.NoColor)
	assert.Equal(t, "yaml", c.Format)
	assert.Equal(t, "debug", c.LogLevel)

	c.UpdateFromFlags(false, true, false, "json", "error")
	assert.Equal(t, "json", c.Format)
	assert.Equal(t, "error", c.LogLevel)
}
