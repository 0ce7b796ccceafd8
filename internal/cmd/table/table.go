// Package table converts cleaning results into rows for table output.
package table

import (
	"strconv"

	"github.com/agentstation/funcsync/internal/cmd/emoji"
	"github.com/agentstation/funcsync/pkg/pipeline"
	"github.com/agentstation/funcsync/pkg/quota"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// StreamResultsToTableData converts per-stream cleaning results to table format.
// Wide output adds the cleaned file paths.
func StreamResultsToTableData(rows []pipeline.StreamResult, wide bool) Data {
	headers := []string{"Stream", "Lines", "Malformed", "Retained", "Dropped", "Written"}
	align := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignCenter}
	if wide {
		headers = append(headers, "Primary Output", "Aux Output")
		align = append(align, AlignLeft, AlignLeft)
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{
			r.ID.String(),
			strconv.Itoa(r.Lines),
			strconv.Itoa(r.Malformed),
			strconv.Itoa(r.Retained),
			strconv.Itoa(r.Dropped()),
			status(r.Written),
		}
		if wide {
			row = append(row, r.Files.CleanedPrimary, r.Files.CleanedAux)
		}
		out = append(out, row)
	}

	return Data{Headers: headers, Rows: out, ColumnAlignment: align}
}

// QuotaToTableData lists the common keys with their per-stream count,
// sorted by key.
func QuotaToTableData(q quota.Quota) Data {
	entries := q.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Key, strconv.Itoa(e.Count)})
	}
	return Data{
		Headers:         []string{"Key", "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// PlanToTableData summarizes the loaded streams of a plan.
func PlanToTableData(plan *pipeline.Plan, wide bool) Data {
	headers := []string{"Stream", "Lines", "Malformed", "Distinct Keys", "Retained"}
	align := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight}
	if wide {
		headers = append(headers, "Primary", "Aux")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(plan.Streams))
	for _, s := range plan.Streams {
		row := []string{
			s.ID.String(),
			strconv.Itoa(s.Stats.Lines),
			strconv.Itoa(s.Stats.Malformed),
			strconv.Itoa(s.DistinctKeys),
			strconv.Itoa(plan.Quota.Total()),
		}
		if wide {
			row = append(row, s.Files.Primary, s.Files.Aux)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// VerificationToTableData converts a verification to table format.
func VerificationToTableData(v *pipeline.Verification, wide bool) Data {
	headers := []string{"Stream", "Lines", "Aux Lines", "Malformed", "Keys", "Paired", "Composition"}
	align := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignCenter, AlignCenter}
	if wide {
		headers = append(headers, "Primary")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(v.Streams))
	for _, s := range v.Streams {
		row := []string{
			s.ID.String(),
			strconv.Itoa(s.Lines),
			strconv.Itoa(s.AuxLines),
			strconv.Itoa(s.Malformed),
			strconv.Itoa(s.Keys),
			status(s.Paired),
			status(s.Matches),
		}
		if wide {
			row = append(row, s.Primary)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

func status(ok bool) string {
	if ok {
		return emoji.Success
	}
	return emoji.Error
}
