package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/funcsync/pkg/logging"
	"github.com/agentstation/funcsync/pkg/quota"
	"github.com/agentstation/funcsync/pkg/record"
	"github.com/agentstation/funcsync/pkg/streams"
)

// Verification is the outcome of checking existing cleaned outputs.
type Verification struct {
	Streams    []VerifiedStream
	Reference  quota.Quota
	Consistent bool
}

// VerifiedStream describes one cleaned output pair.
type VerifiedStream struct {
	ID        streams.ID `json:"stream" yaml:"stream"`
	Primary   string     `json:"primary" yaml:"primary"`
	Lines     int        `json:"lines" yaml:"lines"`
	AuxLines  int        `json:"aux_lines" yaml:"aux_lines"`
	Malformed int        `json:"malformed" yaml:"malformed"`
	Keys      int        `json:"keys" yaml:"keys"`
	Paired    bool       `json:"paired" yaml:"paired"`
	Matches   bool       `json:"matches" yaml:"matches"`
}

// Verify reads the cleaned outputs of every stream and checks that they are
// paired, free of key-less rows and share one per-key composition. The first
// stream's composition is the reference.
func (p *Pipeline) Verify(ctx context.Context) (*Verification, error) {
	ctx = p.context(ctx)

	rows := make([]VerifiedStream, len(p.ids))
	counters := make([]quota.Counter, len(p.ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, id := range p.ids {
		g.Go(func() error {
			sctx := logging.WithOperation(logging.WithStream(gctx, id.String()), "verify")
			files := p.layout.Files(id)
			records, err := record.ReadFile(sctx, files.CleanedPrimary, p.extractor)
			if err != nil {
				return err
			}
			aux, err := record.ReadLinesFile(sctx, files.CleanedAux)
			if err != nil {
				return err
			}
			stats := record.Summarize(records)
			counters[i] = quota.Count(records)
			rows[i] = VerifiedStream{
				ID:        id,
				Primary:   files.CleanedPrimary,
				Lines:     len(records),
				AuxLines:  len(aux),
				Malformed: stats.Malformed,
				Keys:      len(counters[i]),
				Paired:    len(records) == len(aux),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reference := quota.FromMap(counters[0])
	v := &Verification{Streams: rows, Reference: reference, Consistent: true}
	for i := range rows {
		rows[i].Matches = reference.Matches(counters[i])
		if !rows[i].Matches || !rows[i].Paired || rows[i].Malformed > 0 {
			v.Consistent = false
		}
	}

	event := logging.FromContext(ctx).Info()
	if !v.Consistent {
		event = logging.FromContext(ctx).Warn()
	}
	event.
		Int("streams", len(rows)).
		Bool("consistent", v.Consistent).
		Msg("Verified cleaned outputs")
	return v, nil
}
