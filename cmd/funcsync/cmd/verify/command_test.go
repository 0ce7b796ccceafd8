package verify

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/funcsync/internal/cmd/application"
	"github.com/agentstation/funcsync/pkg/logging"
	"github.com/agentstation/funcsync/pkg/pipeline"
)

func settings(dir string) func() pipeline.Config {
	return func() pipeline.Config {
		cfg := pipeline.DefaultConfig()
		cfg.Dir = dir
		cfg.Flavours = []string{"a"}
		cfg.Levels = []string{"O0", "O1"}
		return cfg
	}
}

func writeCleaned(t *testing.T, dir, name, primary, aux string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "function_logs_"+name+".jsonl.cleaned"), []byte(primary), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "edit_distances_"+name+".txt.cleaned"), []byte(aux), 0o644))
}

func run(t *testing.T, dir string) (string, error) {
	t.Helper()
	return runApp(t, &application.Mock{SettingsFunc: settings(dir)})
}

func runApp(t *testing.T, app application.Application) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVerifyCommandConsistent(t *testing.T) {
	dir := t.TempDir()
	writeCleaned(t, dir, "a_O0", "{\"function\":\"x\"}\n{\"function\":\"y\"}\n", "1\n2\n")
	writeCleaned(t, dir, "a_O1", "{\"function\":\"y\"}\n{\"function\":\"x\"}\n", "3\n4\n")

	out, err := run(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "All 2 cleaned outputs share identical per-key composition (2 keys, 2 rows each).")
}

func TestVerifyCommandInconsistent(t *testing.T) {
	dir := t.TempDir()
	writeCleaned(t, dir, "a_O0", "{\"function\":\"x\"}\n{\"function\":\"y\"}\n", "1\n2\n")
	writeCleaned(t, dir, "a_O1", "{\"function\":\"x\"}\n{\"function\":\"x\"}\n", "3\n4\n")

	tl := logging.NewTestLogger(t)
	out, err := runApp(t, &application.Mock{
		SettingsFunc: settings(dir),
		LoggerFunc:   func() *zerolog.Logger { return tl.Logger },
	})
	assert.ErrorContains(t, err, "not consistent")
	assert.Contains(t, out, "NOT consistent")
	var warned []string
	for _, line := range tl.Lines() {
		if strings.Contains(line, "Cleaned stream differs from the reference") {
			warned = append(warned, line)
		}
	}
	require.Len(t, warned, 1, tl.Output())
	assert.Contains(t, warned[0], `"stream":"a/O1"`)
	assert.Contains(t, warned[0], `"matches":false`)
}

func TestVerifyCommandMissingOutputs(t *testing.T) {
	_, err := run(t, t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
