// Package quota computes the multiset intersection of several record streams.
//
// Each stream is summarized by a Counter of key occurrences. The Quota is the
// key-wise minimum over all counters, restricted to keys that occur at least
// once in every stream. It is built once per run and never mutated, so any
// number of selectors may read it concurrently.
package quota

import (
	"maps"
	"slices"

	"github.com/agentstation/funcsync/pkg/errors"
	"github.com/agentstation/funcsync/pkg/record"
)

// Counter maps a key to the number of records bearing it.
type Counter map[string]int

// Count builds the occurrence counter of a stream. Records without a key
// are not counted.
func Count(records []record.Record) Counter {
	c := make(Counter)
	for _, rec := range records {
		if key, ok := rec.Key.Get(); ok {
			c[key]++
		}
	}
	return c
}

// Quota is an immutable key -> count mapping.
type Quota struct {
	counts map[string]int
	total  int
}

// Intersect returns the multiset intersection of counters. A key appears
// in the result only if its count is positive in every counter, with the
// minimum of those counts. An empty result is an EmptyIntersectionError.
func Intersect(counters ...Counter) (Quota, error) {
	if len(counters) == 0 {
		return Quota{}, errors.NewValidationError("counters", nil, "at least one stream is required")
	}

	// Keys missing from the smallest counter cannot survive.
	smallest := counters[0]
	for _, c := range counters[1:] {
		if len(c) < len(smallest) {
			smallest = c
		}
	}

	counts := make(map[string]int, len(smallest))
	total := 0
	for key := range smallest {
		lowest := 0
		for i, c := range counters {
			n := c[key]
			if i == 0 || n < lowest {
				lowest = n
			}
			if lowest <= 0 {
				break
			}
		}
		if lowest > 0 {
			counts[key] = lowest
			total += lowest
		}
	}

	if len(counts) == 0 {
		return Quota{}, errors.NewEmptyIntersectionError(nil)
	}
	return Quota{counts: counts, total: total}, nil
}

// FromMap builds a quota from explicit counts, dropping non-positive entries.
func FromMap(m map[string]int) Quota {
	counts := make(map[string]int, len(m))
	total := 0
	for k, v := range m {
		if v > 0 {
			counts[k] = v
			total += v
		}
	}
	return Quota{counts: counts, total: total}
}

// Get returns the quota of key and whether key is part of the intersection.
func (q Quota) Get(key string) (int, bool) {
	n, ok := q.counts[key]
	return n, ok
}

// Has reports whether key is part of the intersection.
func (q Quota) Has(key string) bool {
	_, ok := q.counts[key]
	return ok
}

// Len returns the number of distinct keys.
func (q Quota) Len() int {
	return len(q.counts)
}

// Total returns the number of rows every cleaned stream will hold.
func (q Quota) Total() int {
	return q.total
}

// IsEmpty reports whether the quota holds no key.
func (q Quota) IsEmpty() bool {
	return len(q.counts) == 0
}

// Keys returns the keys in sorted order.
func (q Quota) Keys() []string {
	return slices.Sorted(maps.Keys(q.counts))
}

// Map returns a copy of the underlying counts.
func (q Quota) Map() map[string]int {
	return maps.Clone(q.counts)
}

// Entry is one row of a quota listing.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Entries returns the quota as key-sorted rows.
func (q Quota) Entries() []Entry {
	keys := q.Keys()
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Key: k, Count: q.counts[k]}
	}
	return entries
}

// Matches reports whether c has exactly the quota's composition.
func (q Quota) Matches(c Counter) bool {
	if len(c) != len(q.counts) {
		return false
	}
	for k, n := range c {
		if q.counts[k] != n {
			return false
		}
	}
	return true
}
