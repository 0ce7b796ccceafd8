// Package quota implements the quota command.
package quota

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/funcsync/internal/cmd/application"
	"github.com/agentstation/funcsync/internal/cmd/globals"
	"github.com/agentstation/funcsync/internal/cmd/output"
)

// NewCommand creates the quota command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var streamFlags *globals.StreamFlags

	cmd := &cobra.Command{
		Use:     "quota",
		GroupID: "core",
		Short:   "Show the keys common to all streams and their counts",
		Long: `Quota reads every stream pair, checks pairing and prints the common-key
quota a clean run would apply, sorted by key. No file is written.

Use -o wide to also list per-stream line and malformed counts.`,
		Example: `  funcsync quota --dir ./logs
  funcsync quota --dir ./logs -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ResolveFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			p, err := app.Pipeline(streamFlags.Apply(cmd, app.Settings()))
			if err != nil {
				return err
			}

			plan, err := p.Plan(cmd.Context())
			if err != nil {
				return fmt.Errorf("quota failed: %w", err)
			}
			return output.FormatPlan(cmd.OutOrStdout(), format, plan)
		},
	}

	streamFlags = globals.AddStreamFlags(cmd)
	return cmd
}
