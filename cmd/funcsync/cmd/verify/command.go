// Package verify implements the verify command.
package verify

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/funcsync/internal/cmd/application"
	"github.com/agentstation/funcsync/internal/cmd/globals"
	"github.com/agentstation/funcsync/internal/cmd/output"
)

// NewCommand creates the verify command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var streamFlags *globals.StreamFlags

	cmd := &cobra.Command{
		Use:     "verify",
		GroupID: "management",
		Short:   "Check that existing cleaned outputs are consistent",
		Long: `Verify reads the cleaned outputs of every stream and confirms that each
pair is line-aligned, has no key-less rows and that all streams share
identical per-key composition. It exits with status 1 otherwise.`,
		Example: `  funcsync verify --dir ./logs
  funcsync verify --output-dir ./cleaned --suffix= -o json`,
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

			v, err := p.Verify(cmd.Context())
			if err != nil {
				return fmt.Errorf("verify failed: %w", err)
			}
			if err := output.FormatVerification(cmd.OutOrStdout(), format, v); err != nil {
				return err
			}
			if !v.Consistent {
				logger := app.Logger()
				for _, s := range v.Streams {
					if s.Paired && s.Matches && s.Malformed == 0 {
						continue
					}
					logger.Warn().
						Stringer("stream", s.ID).
						Bool("paired", s.Paired).
						Bool("matches", s.Matches).
						Int("malformed", s.Malformed).
						Msg("Cleaned stream differs from the reference")
				}
				return fmt.Errorf("cleaned outputs are not consistent across %d streams", len(v.Streams))
			}
			return nil
		},
	}

	streamFlags = globals.AddStreamFlags(cmd)
	return cmd
}
