// Package selector chooses which rows of a stream survive cleaning.
//
// Selection is a single forward pass: a row is retained while its key still
// has quota left, so earlier rows always win over later duplicates. The
// result depends only on the row order and the quota, which makes it
// deterministic across runs.
package selector

import (
	"slices"

	"github.com/agentstation/funcsync/pkg/errors"
	"github.com/agentstation/funcsync/pkg/quota"
	"github.com/agentstation/funcsync/pkg/record"
)

// Retention is the ordered set of retained row indices of one stream.
type Retention struct {
	indices []int
	member  map[int]struct{}
	kept    quota.Counter
}

// Select walks records in order and retains at most quota[key] rows per key.
// Rows without a key and rows whose key is not in the quota are skipped.
// Every quota key must be filled exactly; a shortfall is a QuotaError.
func Select(records []record.Record, q quota.Quota) (*Retention, error) {
	r := &Retention{
		indices: make([]int, 0, q.Total()),
		member:  make(map[int]struct{}, q.Total()),
		kept:    make(quota.Counter, q.Len()),
	}

	for i, rec := range records {
		key, ok := rec.Key.Get()
		if !ok {
			continue
		}
		limit, ok := q.Get(key)
		if !ok || r.kept[key] >= limit {
			continue
		}
		r.kept[key]++
		r.indices = append(r.indices, i)
		r.member[i] = struct{}{}
	}

	if short := r.shortfall(q); len(short) > 0 {
		return r, &errors.QuotaError{Keys: short}
	}
	return r, nil
}

// shortfall lists quota keys, sorted, that were not filled completely.
func (r *Retention) shortfall(q quota.Quota) []string {
	var short []string
	for _, key := range q.Keys() {
		want, _ := q.Get(key)
		if r.kept[key] != want {
			short = append(short, key)
		}
	}
	return short
}

// Contains reports whether row i is retained.
func (r *Retention) Contains(i int) bool {
	_, ok := r.member[i]
	return ok
}

// Len returns the number of retained rows.
func (r *Retention) Len() int {
	return len(r.indices)
}

// Indices returns the retained row indices in ascending order.
func (r *Retention) Indices() []int {
	return slices.Clone(r.indices)
}

// KeyCounts returns how many rows were retained per key.
func (r *Retention) KeyCounts() quota.Counter {
	out := make(quota.Counter, len(r.kept))
	for k, v := range r.kept {
		out[k] = v
	}
	return out
}
