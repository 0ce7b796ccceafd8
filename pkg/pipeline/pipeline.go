// Package pipeline drives a cleaning run across a family of record streams.
//
// A run reads every stream pair, checks that primary and auxiliary files are
// index-aligned, intersects the per-stream key counts into a single quota
// and then, per stream, selects and writes exactly the quota's rows. Reading
// and cleaning are fanned out over streams; the quota is shared read-only.
package pipeline

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/agentstation/funcsync/pkg/errors"
	"github.com/agentstation/funcsync/pkg/logging"
	"github.com/agentstation/funcsync/pkg/quota"
	"github.com/agentstation/funcsync/pkg/record"
	"github.com/agentstation/funcsync/pkg/selector"
	"github.com/agentstation/funcsync/pkg/streams"
	"github.com/agentstation/funcsync/pkg/writer"
)

// Pipeline is a configured cleaning run. It holds no state between runs.
type Pipeline struct {
	ids         []streams.ID
	layout      streams.Layout
	extractor   record.Extractor
	concurrency int
	dryRun      bool
	logger      *zerolog.Logger
}

// New creates a Pipeline with options.
func New(opts ...Option) (*Pipeline, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	ids, err := streams.Product(o.flavours, o.levels)
	if err != nil {
		return nil, err
	}
	if err := o.layout.Validate(); err != nil {
		return nil, err
	}
	if err := o.layout.CheckDistinct(ids); err != nil {
		return nil, err
	}
	return &Pipeline{
		ids:         ids,
		layout:      o.layout,
		extractor:   o.extractor,
		concurrency: o.concurrency,
		dryRun:      o.dryRun,
		logger:      o.logger,
	}, nil
}

// Streams returns the stream identities in processing order.
func (p *Pipeline) Streams() []streams.ID {
	return append([]streams.ID(nil), p.ids...)
}

// Layout returns the file layout.
func (p *Pipeline) Layout() streams.Layout {
	return p.layout
}

// loaded is one stream pair held in memory.
type loaded struct {
	id      streams.ID
	files   streams.Files
	records []record.Record
	aux     []string
	counter quota.Counter
	stats   record.Stats
}

// Plan runs the read and intersect steps without selecting or writing.
func (p *Pipeline) Plan(ctx context.Context) (*Plan, error) {
	ctx = p.context(ctx)
	logger := logging.FromContext(logging.WithOperation(ctx, "intersect"))

	// Step 1: read every stream pair
	all, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	// Step 2: integrity check, in stream order so the reported pair is stable
	for _, s := range all {
		if len(s.records) != len(s.aux) {
			return nil, pkgerrors.NewPairingError(s.id.String(), s.files.Primary, s.files.Aux, len(s.records), len(s.aux))
		}
	}

	// Step 3: global multiset intersection
	counters := make([]quota.Counter, len(all))
	for i, s := range all {
		counters[i] = s.counter
	}
	q, err := quota.Intersect(counters...)
	if err != nil {
		var empty *pkgerrors.EmptyIntersectionError
		if errors.As(err, &empty) {
			empty.Streams = idStrings(p.ids)
		}
		return nil, err
	}

	logger.Info().
		Int("streams", len(all)).
		Int("keys", q.Len()).
		Int("rows_per_stream", q.Total()).
		Msg("Computed common quota")

	return newPlan(all, q), nil
}

// Run executes a full cleaning run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx = p.context(ctx)
	result := newResult(p.dryRun)

	plan, err := p.Plan(ctx)
	if err != nil {
		return nil, err
	}
	result.Quota = plan.Quota

	// Step 4: select and write each stream against the shared quota
	rows := make([]StreamResult, len(plan.loaded))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, s := range plan.loaded {
		g.Go(func() error {
			row, err := p.clean(gctx, s, plan.Quota)
			rows[i] = row
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Streams = rows

	// Step 5: every cleaned stream must carry the quota's composition
	if !result.Consistent() {
		return nil, &pkgerrors.QuotaError{Keys: plan.Quota.Keys()}
	}

	result.finish()
	logging.FromContext(ctx).Info().
		Int("streams", len(rows)).
		Int("retained", result.TotalRetained()).
		Bool("dry_run", p.dryRun).
		Dur("duration", result.Metadata.Duration).
		Msg("Cleaning run finished")
	return result, nil
}

// clean selects and writes one stream.
func (p *Pipeline) clean(ctx context.Context, s *loaded, q quota.Quota) (StreamResult, error) {
	ctx = logging.WithStream(ctx, s.id.String())
	row := StreamResult{
		ID:        s.id,
		Files:     s.files,
		Lines:     s.stats.Lines,
		Malformed: s.stats.Malformed,
	}

	keep, err := selector.Select(s.records, q)
	if err != nil {
		var qe *pkgerrors.QuotaError
		if errors.As(err, &qe) {
			qe.Stream = s.id.String()
		}
		return row, err
	}
	row.Retained = keep.Len()
	row.composition = keep.KeyCounts()
	logging.FromContext(logging.WithOperation(ctx, "select")).Debug().
		Int("retained", row.Retained).
		Int("dropped", row.Lines-row.Retained).
		Msg("Selected quota rows")

	if !p.dryRun {
		in := writer.Pair{Primary: s.files.Primary, Aux: s.files.Aux}
		out := writer.Pair{Primary: s.files.CleanedPrimary, Aux: s.files.CleanedAux}
		wctx := logging.WithOperation(ctx, "write")
		if _, err := writer.Files(wctx, in, out, s.records, s.aux, keep); err != nil {
			return row, err
		}
		row.Written = true
	}

	logging.FromContext(ctx).Info().
		Int("lines", row.Lines).
		Int("malformed", row.Malformed).
		Int("retained", row.Retained).
		Str("output", s.files.CleanedPrimary).
		Msg("Stream cleaned")
	return row, nil
}

// load reads all stream pairs with bounded parallelism.
func (p *Pipeline) load(ctx context.Context) ([]*loaded, error) {
	all := make([]*loaded, len(p.ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, id := range p.ids {
		g.Go(func() error {
			sctx := logging.WithOperation(logging.WithStream(gctx, id.String()), "load")
			s, err := p.loadStream(sctx, id)
			all[i] = s
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

func (p *Pipeline) loadStream(ctx context.Context, id streams.ID) (*loaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files := p.layout.Files(id)

	records, err := record.ReadFile(ctx, files.Primary, p.extractor)
	if err != nil {
		return nil, err
	}
	aux, err := record.ReadLinesFile(ctx, files.Aux)
	if err != nil {
		return nil, err
	}
	return &loaded{
		id:      id,
		files:   files,
		records: records,
		aux:     aux,
		counter: quota.Count(records),
		stats:   record.Summarize(records),
	}, nil
}

// context attaches the configured logger unless the caller supplied one.
func (p *Pipeline) context(ctx context.Context) context.Context {
	if p.logger == nil {
		return ctx
	}
	if logging.FromContext(ctx) != logging.Default() {
		return ctx
	}
	return logging.WithLogger(ctx, p.logger)
}

func idStrings(ids []streams.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
