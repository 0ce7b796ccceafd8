// Package app provides the application context and dependency management
// for the funcsync CLI. It centralizes configuration, logging and the
// construction of cleaning pipelines for the commands.
package app

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/funcsync/internal/cmd/application"
	"github.com/agentstation/funcsync/pkg/logging"
	"github.com/agentstation/funcsync/pkg/pipeline"
)

// App represents the funcsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// out receives command output; nil means stdout
	out io.Writer
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations and can be replaced
// using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Settings returns a copy of the configured pipeline settings.
func (a *App) Settings() pipeline.Config {
	return a.config.Settings()
}

// Pipeline builds a cleaning pipeline from cfg with the app logger attached.
func (a *App) Pipeline(cfg pipeline.Config, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	all := append(cfg.Options(), pipeline.WithLogger(a.logger))
	p, err := pipeline.New(append(all, opts...)...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("dir", cfg.Dir).
		Strs("flavours", cfg.Flavours).
		Strs("levels", cfg.Levels).
		Str("key_field", cfg.KeyField).
		Int("concurrency", cfg.Concurrency).
		Bool("dry_run", cfg.DryRun).
		Msg("Pipeline configured")
	return p, nil
}

// Shutdown performs graceful shutdown of the application. Cleaning runs hold
// no background workers once Execute returns, so only the log is flushed.
func (a *App) Shutdown(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logging.FromContext(logging.WithLogger(ctx, a.logger)).Debug().Msg("Shutdown complete")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithOutput sends command output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
