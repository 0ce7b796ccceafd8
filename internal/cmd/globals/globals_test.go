package globals

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/funcsync/pkg/pipeline"
)

func TestStreamFlagsApply(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := AddStreamFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--dir", "/logs", "--levels", "O1,O3", "-j", "2"}))

	base := pipeline.DefaultConfig()
	base.KeyField = "name"

	got := flags.Apply(cmd, base)
	assert.Equal(t, "/logs", got.Dir)
	assert.Equal(t, []string{"O1", "O3"}, got.Levels)
	assert.Equal(t, 2, got.Concurrency)

	// untouched flags keep the configured values
	assert.Equal(t, base.Flavours, got.Flavours)
	assert.Equal(t, "name", got.KeyField)
	assert.Equal(t, base.Suffix, got.Suffix)
}

func TestStreamFlagsExplicitEmptySuffix(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := AddStreamFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--suffix=", "--output-dir", "/out"}))

	got := flags.Apply(cmd, pipeline.DefaultConfig())
	assert.Equal(t, "", got.Suffix)
	assert.Equal(t, "/out", got.OutputDir)
}
