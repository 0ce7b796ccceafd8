package pipeline

import (
	"fmt"
	"time"

	"github.com/agentstation/funcsync/pkg/quota"
	"github.com/agentstation/funcsync/pkg/record"
	"github.com/agentstation/funcsync/pkg/streams"
)

// Plan is the outcome of the read and intersect steps.
type Plan struct {
	Quota   quota.Quota
	Streams []StreamInfo

	loaded []*loaded
}

// StreamInfo describes one loaded stream pair.
type StreamInfo struct {
	ID           streams.ID    `json:"stream" yaml:"stream"`
	Files        streams.Files `json:"files" yaml:"files"`
	Stats        record.Stats  `json:"stats" yaml:"stats"`
	DistinctKeys int           `json:"distinct_keys" yaml:"distinct_keys"`
}

func newPlan(all []*loaded, q quota.Quota) *Plan {
	infos := make([]StreamInfo, len(all))
	for i, s := range all {
		infos[i] = StreamInfo{
			ID:           s.id,
			Files:        s.files,
			Stats:        s.stats,
			DistinctKeys: len(s.counter),
		}
	}
	return &Plan{Quota: q, Streams: infos, loaded: all}
}

// Result represents the outcome of a cleaning run.
type Result struct {
	Streams  []StreamResult
	Quota    quota.Quota
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the run.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	DryRun    bool
}

// StreamResult reports what happened to one stream pair.
type StreamResult struct {
	ID        streams.ID    `json:"stream" yaml:"stream"`
	Files     streams.Files `json:"files" yaml:"files"`
	Lines     int           `json:"lines" yaml:"lines"`
	Malformed int           `json:"malformed" yaml:"malformed"`
	Retained  int           `json:"retained" yaml:"retained"`
	Written   bool          `json:"written" yaml:"written"`

	composition quota.Counter
}

// Dropped returns the number of rows removed from the stream.
func (s StreamResult) Dropped() int {
	return s.Lines - s.Retained
}

func newResult(dryRun bool) *Result {
	return &Result{
		Metadata: ResultMetadata{
			StartTime: time.Now(),
			DryRun:    dryRun,
		},
	}
}

func (r *Result) finish() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}

// TotalRetained sums retained rows over all streams.
func (r *Result) TotalRetained() int {
	total := 0
	for _, s := range r.Streams {
		total += s.Retained
	}
	return total
}

// Consistent reports whether every stream retained exactly the quota's
// per-key composition.
func (r *Result) Consistent() bool {
	if len(r.Streams) == 0 {
		return false
	}
	for _, s := range r.Streams {
		if !r.Quota.Matches(s.composition) {
			return false
		}
	}
	return true
}

// Summary returns the final confirmation line of a run.
func (r *Result) Summary() string {
	if !r.Consistent() {
		return fmt.Sprintf("Cleaned outputs are NOT consistent across %d streams", len(r.Streams))
	}
	if r.Metadata.DryRun {
		return fmt.Sprintf("Dry run completed. All %d streams would keep %d rows covering %d common keys.",
			len(r.Streams), r.Quota.Total(), r.Quota.Len())
	}
	return fmt.Sprintf("Done. All %d cleaned outputs now share identical per-key composition (%d keys, %d rows each).",
		len(r.Streams), r.Quota.Len(), r.Quota.Total())
}
