package output

import (
	"fmt"
	"io"

	"github.com/agentstation/funcsync/internal/cmd/table"
	"github.com/agentstation/funcsync/pkg/pipeline"
	"github.com/agentstation/funcsync/pkg/quota"
)

// CleanReport is the structured form of a cleaning run.
type CleanReport struct {
	Streams       []pipeline.StreamResult `json:"streams" yaml:"streams"`
	Quota         []quota.Entry           `json:"quota" yaml:"quota"`
	Keys          int                     `json:"keys" yaml:"keys"`
	RowsPerStream int                     `json:"rows_per_stream" yaml:"rows_per_stream"`
	DryRun        bool                    `json:"dry_run" yaml:"dry_run"`
	Duration      string                  `json:"duration" yaml:"duration"`
	Summary       string                  `json:"summary" yaml:"summary"`
}

// QuotaReport is the structured form of a quota computation.
type QuotaReport struct {
	Streams       []pipeline.StreamInfo `json:"streams" yaml:"streams"`
	Quota         []quota.Entry         `json:"quota" yaml:"quota"`
	Keys          int                   `json:"keys" yaml:"keys"`
	RowsPerStream int                   `json:"rows_per_stream" yaml:"rows_per_stream"`
}

// VerifyReport is the structured form of a verification.
type VerifyReport struct {
	Streams    []pipeline.VerifiedStream `json:"streams" yaml:"streams"`
	Reference  []quota.Entry             `json:"reference" yaml:"reference"`
	Consistent bool                      `json:"consistent" yaml:"consistent"`
}

// IsTable reports whether format renders as a table.
func IsTable(format Format) bool {
	switch format {
	case FormatTable, FormatWide, "":
		return true
	}
	return false
}

// FormatResult writes a cleaning run. Table output ends with the summary line.
func FormatResult(w io.Writer, format Format, result *pipeline.Result) error {
	if !IsTable(format) {
		return NewFormatter(format).Format(w, CleanReport{
			Streams:       result.Streams,
			Quota:         result.Quota.Entries(),
			Keys:          result.Quota.Len(),
			RowsPerStream: result.Quota.Total(),
			DryRun:        result.Metadata.DryRun,
			Duration:      result.Metadata.Duration.String(),
			Summary:       result.Summary(),
		})
	}

	data := table.StreamResultsToTableData(result.Streams, format == FormatWide)
	if err := NewFormatter(format).Format(w, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", result.Summary())
	return err
}

// FormatPlan writes a computed quota. Wide tables also list the streams.
func FormatPlan(w io.Writer, format Format, plan *pipeline.Plan) error {
	if !IsTable(format) {
		return NewFormatter(format).Format(w, QuotaReport{
			Streams:       plan.Streams,
			Quota:         plan.Quota.Entries(),
			Keys:          plan.Quota.Len(),
			RowsPerStream: plan.Quota.Total(),
		})
	}

	formatter := NewFormatter(format)
	if format == FormatWide {
		if err := formatter.Format(w, table.PlanToTableData(plan, true)); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	if err := formatter.Format(w, table.QuotaToTableData(plan.Quota)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d common keys, %d rows per stream across %d streams\n",
		plan.Quota.Len(), plan.Quota.Total(), len(plan.Streams))
	return err
}

// FormatVerification writes a verification.
func FormatVerification(w io.Writer, format Format, v *pipeline.Verification) error {
	if !IsTable(format) {
		return NewFormatter(format).Format(w, VerifyReport{
			Streams:    v.Streams,
			Reference:  v.Reference.Entries(),
			Consistent: v.Consistent,
		})
	}

	if err := NewFormatter(format).Format(w, table.VerificationToTableData(v, format == FormatWide)); err != nil {
		return err
	}
	var err error
	if v.Consistent {
		_, err = fmt.Fprintf(w, "\nAll %d cleaned outputs share identical per-key composition (%d keys, %d rows each).\n",
			len(v.Streams), v.Reference.Len(), v.Reference.Total())
	} else {
		_, err = fmt.Fprintf(w, "\nCleaned outputs are NOT consistent across %d streams.\n", len(v.Streams))
	}
	return err
}

// ResolveFormat validates an explicit format and falls back to detection
// when none is given.
func ResolveFormat(explicit string) (Format, error) {
	format, err := ParseFormat(explicit)
	if err != nil {
		return "", err
	}
	return DetectFormat(string(format)), nil
}
