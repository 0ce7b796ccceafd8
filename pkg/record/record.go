// Package record reads line-oriented record streams.
//
// A primary stream holds one structured record per line; every line becomes a
// Record carrying the raw text and an optional key. Lines whose key cannot be
// extracted are kept with an absent key so that index alignment with the
// auxiliary stream never changes. Auxiliary streams are read as opaque lines.
package record

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/agentstation/funcsync/pkg/constants"
	"github.com/agentstation/funcsync/pkg/errors"
	"github.com/agentstation/funcsync/pkg/logging"
)

// Record is one line of a primary stream.
type Record struct {
	// Raw is the original line including its terminator, written back verbatim.
	Raw string
	// Key is absent when extraction failed.
	Key Key
}

// Stats summarizes a primary stream.
type Stats struct {
	Lines     int `json:"lines" yaml:"lines"`
	Malformed int `json:"malformed" yaml:"malformed"`
}

// ReadLines reads every line of r, keeping line terminators. A final line
// without a terminator is returned as is.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReaderSize(r, constants.ReadBufferSize)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// ReadRecords reads a primary stream and extracts a key from every line.
// Extraction failures never fail the stream; the line is kept with None.
func ReadRecords(r io.Reader, ex Extractor) ([]Record, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	records := make([]Record, len(lines))
	for i, line := range lines {
		records[i] = Record{Raw: line, Key: extract(ex, line)}
	}
	return records, nil
}

// ReadFile reads the primary stream at path.
func ReadFile(ctx context.Context, path string, ex Extractor) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f, ex)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	stats := Summarize(records)
	logger := logging.FromContext(logging.WithFile(ctx, path))
	if stats.Malformed > 0 {
		logger.Warn().
			Int("lines", stats.Lines).
			Int("malformed", stats.Malformed).
			Msg("Primary stream has lines without a usable key")
	} else {
		logger.Debug().
			Int("lines", stats.Lines).
			Msg("Read primary stream")
	}
	return records, nil
}

// ReadLinesFile reads the auxiliary stream at path.
func ReadLinesFile(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	logging.FromContext(logging.WithFile(ctx, path)).Debug().
		Int("lines", len(lines)).
		Msg("Read auxiliary stream")
	return lines, nil
}

// Summarize counts total and key-less lines.
func Summarize(records []Record) Stats {
	stats := Stats{Lines: len(records)}
	for _, rec := range records {
		if !rec.Key.IsSome() {
			stats.Malformed++
		}
	}
	return stats
}

func extract(ex Extractor, line string) Key {
	key, err := ex.Extract(line)
	if err != nil {
		return None()
	}
	return Some(key)
}
