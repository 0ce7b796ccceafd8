package pipeline

import (
	"github.com/agentstation/funcsync/pkg/constants"
	"github.com/agentstation/funcsync/pkg/streams"
)

// Config is the declarative form of a pipeline, as loaded from a config
// file or environment.
type Config struct {
	Dir            string   `mapstructure:"dir" json:"dir" yaml:"dir"`
	OutputDir      string   `mapstructure:"output_dir" json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	Flavours       []string `mapstructure:"flavours" json:"flavours" yaml:"flavours"`
	Levels         []string `mapstructure:"levels" json:"levels" yaml:"levels"`
	PrimaryPattern string   `mapstructure:"primary_pattern" json:"primary_pattern" yaml:"primary_pattern"`
	AuxPattern     string   `mapstructure:"aux_pattern" json:"aux_pattern" yaml:"aux_pattern"`
	KeyField       string   `mapstructure:"key_field" json:"key_field" yaml:"key_field"`
	Suffix         string   `mapstructure:"suffix" json:"suffix" yaml:"suffix"`
	Concurrency    int      `mapstructure:"concurrency" json:"concurrency" yaml:"concurrency"`
	DryRun         bool     `mapstructure:"dry_run" json:"dry_run" yaml:"dry_run"`
}

// DefaultConfig returns the configuration of the compiler experiment logs in
// the current directory.
func DefaultConfig() Config {
	return Config{
		Dir:            ".",
		Flavours:       append([]string(nil), constants.DefaultFlavours...),
		Levels:         append([]string(nil), constants.DefaultLevels...),
		PrimaryPattern: constants.DefaultPrimaryPattern,
		AuxPattern:     constants.DefaultAuxPattern,
		KeyField:       constants.DefaultKeyField,
		Suffix:         constants.DefaultCleanedSuffix,
		Concurrency:    constants.DefaultConcurrency,
	}
}

// Layout returns the file layout described by the config.
func (c Config) Layout() streams.Layout {
	return streams.Layout{
		Dir:            c.Dir,
		OutputDir:      c.OutputDir,
		PrimaryPattern: c.PrimaryPattern,
		AuxPattern:     c.AuxPattern,
		Suffix:         c.Suffix,
	}
}

// Options converts the config into pipeline options. Validation happens
// when the options are applied by New.
func (c Config) Options() []Option {
	return []Option{
		WithStreams(streams.Flavours(c.Flavours), streams.Levels(c.Levels)),
		WithLayout(c.Layout()),
		WithKeyField(c.KeyField),
		WithConcurrency(c.Concurrency),
		WithDryRun(c.DryRun),
	}
}
