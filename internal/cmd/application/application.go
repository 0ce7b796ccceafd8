// Package application provides the application interface for funcsync commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested with Mock.
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, _ []string) error {
//	            p, err := app.Pipeline(app.Settings())
//	            if err != nil {
//	                return err
//	            }
//	            _, err = p.Run(cmd.Context())
//	            return err
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/funcsync/pkg/pipeline"
)

// Application provides what commands need from the running app.
type Application interface {
	// Settings returns a copy of the configured pipeline settings.
	// Commands overlay their own flags on the copy.
	Settings() pipeline.Config

	// Pipeline builds a pipeline from cfg using the app logger.
	// Extra options are applied after those derived from cfg.
	Pipeline(cfg pipeline.Config, opts ...pipeline.Option) (*pipeline.Pipeline, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
