// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/funcsync/pkg/pipeline"
)

// StreamFlags holds the flags that select and lay out the record streams.
// Each flag overrides the configured value only when it was set explicitly.
type StreamFlags struct {
	Dir         string
	OutputDir   string
	Flavours    []string
	Levels      []string
	KeyField    string
	Suffix      string
	Concurrency int
}

// AddStreamFlags adds stream selection flags to a command.
func AddStreamFlags(cmd *cobra.Command) *StreamFlags {
	flags := &StreamFlags{}

	cmd.Flags().StringVarP(&flags.Dir, "dir", "d", "",
		"Directory holding the primary and auxiliary streams")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", "",
		"Write cleaned files here instead of next to the inputs")
	cmd.Flags().StringSliceVar(&flags.Flavours, "flavours", nil,
		"Stream flavours (comma separated)")
	cmd.Flags().StringSliceVar(&flags.Levels, "levels", nil,
		"Stream levels (comma separated)")
	cmd.Flags().StringVar(&flags.KeyField, "key-field", "",
		"JSON field holding the record key (dotted paths allowed)")
	cmd.Flags().StringVar(&flags.Suffix, "suffix", "",
		"Suffix appended to cleaned file names")
	cmd.Flags().IntVarP(&flags.Concurrency, "concurrency", "j", 0,
		"Number of streams processed at once")

	return flags
}

// Apply overlays explicitly set flags onto cfg and returns the result.
func (f *StreamFlags) Apply(cmd *cobra.Command, cfg pipeline.Config) pipeline.Config {
	changed := cmd.Flags().Changed
	if changed("dir") {
		cfg.Dir = f.Dir
	}
	if changed("output-dir") {
		cfg.OutputDir = f.OutputDir
	}
	if changed("flavours") {
		cfg.Flavours = f.Flavours
	}
	if changed("levels") {
		cfg.Levels = f.Levels
	}
	if changed("key-field") {
		cfg.KeyField = f.KeyField
	}
	if changed("suffix") {
		cfg.Suffix = f.Suffix
	}
	if changed("concurrency") {
		cfg.Concurrency = f.Concurrency
	}
	return cfg
}
