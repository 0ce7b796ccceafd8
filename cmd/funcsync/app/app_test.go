package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/funcsync/pkg/logging"
	"github.com/agentstation/funcsync/pkg/pipeline"
)

// isolate keeps tests away from the developer's config, env and .env files.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	logging.DisableLoggingForTest(t)
}

func newTestApp(t *testing.T, out *bytes.Buffer) *App {
	t.Helper()
	nop := zerolog.Nop()
	a, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithLogger(&nop),
		WithOutput(out),
	)
	require.NoError(t, err)
	return a
}

func writeFamily(t *testing.T, dir string) {
	t.Helper()
	for _, name := range []string{"a_O0", "a_O1", "l_O0", "l_O1"} {
		primary := "{\"function\":\"main\"}\n{\"function\":\"main\"}\n{\"function\":\"" + name + "\"}\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "function_logs_"+name+".jsonl"), []byte(primary), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "edit_distances_"+name+".txt"), []byte("1\n2\n3\n"), 0o644))
	}
}

func TestNew(t *testing.T) {
	isolate(t)

	a, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2024-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Logger())
	assert.Equal(t, pipeline.DefaultConfig(), a.Settings())
}

func TestSettingsReturnsCopy(t *testing.T) {
	isolate(t)
	a := newTestApp(t, &bytes.Buffer{})

	s := a.Settings()
	s.Levels[0] = "changed"
	s.Dir = "/elsewhere"

	assert.Equal(t, "O0", a.Settings().Levels[0])
	assert.Equal(t, ".", a.Settings().Dir)
}

func TestPipelineUsesSettings(t *testing.T) {
	isolate(t)
	a := newTestApp(t, &bytes.Buffer{})

	cfg := a.Settings()
	cfg.Levels = []string{"O2"}
	p, err := a.Pipeline(cfg)
	require.NoError(t, err)
	assert.Len(t, p.Streams(), 2)

	cfg.Concurrency = 0
	_, err = a.Pipeline(cfg)
	assert.Error(t, err)
}

func TestExecuteVersion(t *testing.T) {
	isolate(t)
	var out bytes.Buffer
	a := newTestApp(t, &out)

	require.NoError(t, a.Execute(context.Background(), []string{"version", "-o", "yaml", "--log-level", "error"}))
	assert.Contains(t, out.String(), "1.0.0")
	assert.Contains(t, out.String(), "commit: abc123")
	assert.Contains(t, out.String(), "built_by: test")
}

func TestExecuteCleanThenVerify(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFamily(t, dir)

	var out bytes.Buffer
	a := newTestApp(t, &out)
	require.NoError(t, a.Execute(context.Background(), []string{"clean", "--dir", dir, "--levels", "O0,O1", "-q"}))
	assert.Contains(t, out.String(), "Done. All 4 cleaned outputs")

	out.Reset()
	require.NoError(t, a.Execute(context.Background(), []string{"verify", "--dir", dir, "--levels", "O0,O1", "-q"}))
	assert.Contains(t, out.String(), "All 4 cleaned outputs share identical per-key composition (1 keys, 2 rows each).")
}

func TestExecuteCleanMissingStreams(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFamily(t, dir)

	// the default levels include O2 and O3, which are absent here
	err := newTestApp(t, &bytes.Buffer{}).Execute(context.Background(), []string{"clean", "--dir", dir, "-q"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExecuteConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFamily(t, dir)

	configPath := filepath.Join(t.TempDir(), "funcsync.yaml")
	config := "dir: " + dir + "\nlevels: [O0, O1]\nlog_level: error\n"
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	var out bytes.Buffer
	a := newTestApp(t, &out)
	require.NoError(t, a.Execute(context.Background(), []string{"clean", "--config", configPath}))
	assert.Contains(t, out.String(), "Done. All 4 cleaned outputs")

	out.Reset()
	require.NoError(t, a.Execute(context.Background(), []string{"verify", "--config", configPath, "-o", "json"}))
	assert.Contains(t, out.String(), `"consistent": true`)
}

func TestExecuteMissingConfigFile(t *testing.T) {
	isolate(t)
	a := newTestApp(t, &bytes.Buffer{})

	err := a.Execute(context.Background(), []string{"quota", "--config", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.ErrorContains(t, err, "configuration error")
}

func TestShutdown(t *testing.T) {
	isolate(t)
	a := newTestApp(t, &bytes.Buffer{})
	assert.NoError(t, a.Shutdown(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, a.Shutdown(ctx), context.Canceled)
}
