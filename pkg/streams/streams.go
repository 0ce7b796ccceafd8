// Package streams names the record streams a cleaning run operates on.
//
// A stream is identified by a (flavour, level) pair drawn from two small
// enumerations. Each identity owns exactly one primary file of structured
// records and one auxiliary file of index-aligned payload lines. A Layout
// maps identities to those files and derives the cleaned output names.
package streams

import (
	"fmt"
	"strings"

	"github.com/agentstation/funcsync/pkg/errors"
)

// Flavour is the first coordinate of a stream identity (e.g. "a", "l").
type Flavour string

// Level is the second coordinate of a stream identity (e.g. "O0").
type Level string

// ID identifies one primary/auxiliary stream pair.
type ID struct {
	Flavour Flavour `json:"flavour" yaml:"flavour"`
	Level   Level   `json:"level" yaml:"level"`
}

// String returns the "flavour/level" form used in logs and reports.
func (id ID) String() string {
	return string(id.Flavour) + "/" + string(id.Level)
}

// Product returns the Cartesian product of flavours and levels in
// flavour-major order. Both enumerations must be non-empty and free of
// duplicates.
func Product(flavours []Flavour, levels []Level) ([]ID, error) {
	if len(flavours) == 0 {
		return nil, errors.NewValidationError("flavours", flavours, "at least one flavour is required")
	}
	if len(levels) == 0 {
		return nil, errors.NewValidationError("levels", levels, "at least one level is required")
	}
	if dup, ok := firstDuplicate(flavours); ok {
		return nil, errors.NewValidationError("flavours", flavours, fmt.Sprintf("duplicate flavour %q", dup))
	}
	if dup, ok := firstDuplicate(levels); ok {
		return nil, errors.NewValidationError("levels", levels, fmt.Sprintf("duplicate level %q", dup))
	}

	ids := make([]ID, 0, len(flavours)*len(levels))
	for _, f := range flavours {
		for _, l := range levels {
			ids = append(ids, ID{Flavour: f, Level: l})
		}
	}
	return ids, nil
}

// Flavours converts plain strings into flavours, trimming whitespace.
func Flavours(values []string) []Flavour {
	out := make([]Flavour, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, Flavour(v))
		}
	}
	return out
}

// Levels converts plain strings into levels, trimming whitespace.
func Levels(values []string) []Level {
	out := make([]Level, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, Level(v))
		}
	}
	return out
}

func firstDuplicate[T ~string](values []T) (T, bool) {
	seen := make(map[T]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return v, true
		}
		seen[v] = struct{}{}
	}
	var zero T
	return zero, false
}
