package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/funcsync/internal/cmd/table"
	"github.com/agentstation/funcsync/pkg/pipeline"
	"github.com/agentstation/funcsync/pkg/quota"
	"github.com/agentstation/funcsync/pkg/streams"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"wide", FormatWide, false},
		{"", "", false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, quota.Entry{Key: "main", Count: 2}))
	assert.JSONEq(t, `{"key":"main","count":2}`, buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, []quota.Entry{{Key: "main", Count: 2}}))

	var got []quota.Entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []quota.Entry{{Key: "main", Count: 2}}, got)
}

func TestTableFormatterData(t *testing.T) {
	var buf bytes.Buffer
	data := table.Data{
		Headers:         []string{"Key", "Count"},
		Rows:            [][]string{{"main", "2"}, {"qsort", "1"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "COUNT")
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "qsort")
}

func TestTableFormatterStruct(t *testing.T) {
	type info struct {
		Name    string `json:"stream_name"`
		Count   int
		Skipped string `json:"-"`
		hidden  string
	}
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, &info{Name: "a/O0", Count: 3, Skipped: "x", hidden: "secret"}))

	out := strings.ToUpper(buf.String())
	assert.Contains(t, out, "PROPERTY")
	assert.Contains(t, out, "STREAM NAME")
	assert.Contains(t, out, "A/O0")
	assert.Contains(t, out, "SKIPPED")
	assert.NotContains(t, out, "SECRET")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []string{"main", "qsort"}))

	var got []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"main", "qsort"}, got)
}

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		Quota: quota.FromMap(map[string]int{"main": 1, "qsort": 2}),
		Streams: []pipeline.StreamResult{
			{ID: streams.ID{Flavour: "a", Level: "O0"}, Lines: 10, Malformed: 1, Retained: 3, Written: true},
		},
	}
}

func TestFormatResultJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatResult(&buf, FormatJSON, sampleResult()))

	var report struct {
		Streams []struct {
			Stream   streams.ID `json:"stream"`
			Retained int        `json:"retained"`
		} `json:"streams"`
		Quota         []quota.Entry `json:"quota"`
		RowsPerStream int           `json:"rows_per_stream"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	require.Len(t, report.Streams, 1)
	assert.Equal(t, "a/O0", report.Streams[0].Stream.String())
	assert.Equal(t, 3, report.RowsPerStream)
	assert.Equal(t, []quota.Entry{{Key: "main", Count: 1}, {Key: "qsort", Count: 2}}, report.Quota)
}

func TestFormatPlanTable(t *testing.T) {
	plan := &pipeline.Plan{
		Quota: quota.FromMap(map[string]int{"main": 1, "qsort": 2}),
		Streams: []pipeline.StreamInfo{
			{ID: streams.ID{Flavour: "a", Level: "O0"}, DistinctKeys: 4},
			{ID: streams.ID{Flavour: "l", Level: "O0"}, DistinctKeys: 2},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatPlan(&buf, FormatWide, plan))
	out := buf.String()
	assert.Contains(t, out, "qsort")
	assert.Contains(t, out, "l/O0")
	assert.Contains(t, out, "2 common keys, 3 rows per stream across 2 streams")
}

func TestFormatVerificationInconsistent(t *testing.T) {
	v := &pipeline.Verification{
		Streams:   []pipeline.VerifiedStream{{ID: streams.ID{Flavour: "a", Level: "O0"}, Lines: 2, AuxLines: 1}},
		Reference: quota.FromMap(map[string]int{"f": 2}),
	}

	var buf bytes.Buffer
	require.NoError(t, FormatVerification(&buf, FormatTable, v))
	assert.Contains(t, buf.String(), "NOT consistent")
}
