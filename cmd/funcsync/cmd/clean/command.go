// Package clean implements the clean command.
package clean

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/funcsync/internal/cmd/application"
	"github.com/agentstation/funcsync/internal/cmd/globals"
	"github.com/agentstation/funcsync/internal/cmd/output"
	"github.com/agentstation/funcsync/pkg/pipeline"
)

// NewCommand creates the clean command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		streamFlags *globals.StreamFlags
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:     "clean",
		GroupID: "core",
		Short:   "Reduce every stream to the rows common to all streams",
		Long: `Clean reads every primary/auxiliary stream pair, computes the multiset of
keys common to all streams and writes cleaned copies that keep, per key,
exactly the common count of rows. The first occurrences of a key win.

Cleaned files carry the input name plus the configured suffix. Inputs are
never modified. Nothing is written if any pair is misaligned or if the
streams share no key.`,
		Example: `  funcsync clean --dir ./logs
  funcsync clean --dir ./logs --levels O0,O2 --output-dir ./cleaned --suffix=
  funcsync clean --dry-run -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := streamFlags.Apply(cmd, app.Settings())
			if cmd.Flags().Changed("dry-run") {
				cfg.DryRun = dryRun
			}
			return run(cmd, app, cfg)
		},
	}

	streamFlags = globals.AddStreamFlags(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the selection without writing any file")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, cfg pipeline.Config) error {
	format, err := output.ResolveFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	p, err := app.Pipeline(cfg)
	if err != nil {
		return err
	}

	result, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}

	return output.FormatResult(cmd.OutOrStdout(), format, result)
}
