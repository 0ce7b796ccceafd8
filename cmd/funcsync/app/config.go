package app

import (
	"errors"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	pkgerrors "github.com/agentstation/funcsync/pkg/errors"
	"github.com/agentstation/funcsync/pkg/pipeline"
)

// EnvPrefix prefixes every environment variable read by funcsync.
const EnvPrefix = "FUNCSYNC"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Pipeline settings shared by all commands
	Pipeline pipeline.Config

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (FUNCSYNC_*)
// 3. .env files
// 4. Config file (configFile, or .funcsync.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first so they are visible to the env binding
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".funcsync")
	}

	// A missing default config file is fine, an explicit or broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, pkgerrors.NewConfigError("config file", err.Error(), err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	if err := v.Unmarshal(&config.Pipeline); err != nil {
		return nil, pkgerrors.NewConfigError("pipeline", "cannot decode settings", err)
	}

	return config, nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := pipeline.DefaultConfig()
	v.SetDefault("dir", d.Dir)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("flavours", d.Flavours)
	v.SetDefault("levels", d.Levels)
	v.SetDefault("primary_pattern", d.PrimaryPattern)
	v.SetDefault("aux_pattern", d.AuxPattern)
	v.SetDefault("key_field", d.KeyField)
	v.SetDefault("suffix", d.Suffix)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("dry_run", d.DryRun)

	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// Settings returns a copy of the pipeline settings that callers may modify.
func (c *Config) Settings() pipeline.Config {
	s := c.Pipeline
	s.Flavours = slices.Clone(s.Flavours)
	s.Levels = slices.Clone(s.Levels)
	return s
}

// loadEnvFiles loads environment variables from .env files.
// Variables already present in the environment are not overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
