package pipeline_test

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/funcsync/pkg/errors"
	"github.com/agentstation/funcsync/pkg/pipeline"
	"github.com/agentstation/funcsync/pkg/streams"
)

func TestDefaultConfig(t *testing.T) {
	cfg := pipeline.DefaultConfig()

	p, err := pipeline.New(cfg.Options()...)
	require.NoError(t, err)
	assert.Len(t, p.Streams(), 8)
	assert.Equal(t, streams.DefaultLayout("."), p.Layout())
}

func TestConfigFromYAML(t *testing.T) {
	src := `
dir: /data/logs
output_dir: /data/cleaned
flavours: [a, l, x]
levels: [O0, O2]
primary_pattern: "calls_{flavour}_{level}.jsonl"
aux_pattern: "dist_{flavour}_{level}.txt"
key_field: meta.name
suffix: ""
concurrency: 2
`
	cfg := pipeline.DefaultConfig()
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))

	p, err := pipeline.New(cfg.Options()...)
	require.NoError(t, err)
	assert.Len(t, p.Streams(), 6)

	files := p.Layout().Files(streams.ID{Flavour: "x", Level: "O2"})
	assert.Equal(t, "/data/logs/calls_x_O2.jsonl", files.Primary)
	assert.Equal(t, "/data/cleaned/dist_x_O2.txt", files.CleanedAux)
}

func TestConfigOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*pipeline.Config)
	}{
		{"no levels", func(c *pipeline.Config) { c.Levels = nil }},
		{"blank flavours", func(c *pipeline.Config) { c.Flavours = []string{" ", ""} }},
		{"empty key field", func(c *pipeline.Config) { c.KeyField = "" }},
		{"zero concurrency", func(c *pipeline.Config) { c.Concurrency = 0 }},
		{"empty suffix in place", func(c *pipeline.Config) { c.Suffix = "" }},
		{"pattern without level", func(c *pipeline.Config) { c.AuxPattern = "edit_{flavour}.txt" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := pipeline.DefaultConfig()
			tt.mutate(&cfg)
			_, err := pipeline.New(cfg.Options()...)
			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}
