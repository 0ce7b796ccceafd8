package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/funcsync/pkg/errors"
)

// Extractor pulls the key out of one primary line.
type Extractor interface {
	Extract(line string) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(line string) (string, error)

// Extract implements Extractor.
func (f ExtractorFunc) Extract(line string) (string, error) {
	return f(line)
}

// JSONField extracts a string field from a one-line JSON object.
// Nested fields are addressed with a dotted path ("meta.name").
type JSONField struct {
	path []string
}

// NewJSONField returns an extractor for the given dotted field path.
func NewJSONField(field string) (*JSONField, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, errors.NewValidationError("key_field", field, "cannot be empty")
	}
	path := strings.Split(field, ".")
	for _, p := range path {
		if p == "" {
			return nil, errors.NewValidationError("key_field", field, "contains an empty path segment")
		}
	}
	return &JSONField{path: path}, nil
}

// Field returns the dotted field path.
func (j *JSONField) Field() string {
	return strings.Join(j.path, ".")
}

// Extract implements Extractor. Only JSON strings are accepted as keys;
// null, numbers, objects and arrays are rejected. A key holding invalid UTF-8
// is rejected too, since decoding would fold distinct byte sequences into
// U+FFFD.
func (j *JSONField) Extract(line string) (string, error) {
	raw := json.RawMessage(bytes.TrimSpace([]byte(line)))
	if len(raw) == 0 {
		return "", errors.NewParseError("json", "", "empty line", nil)
	}

	for i, name := range j.path {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", errors.WrapParse("json", "", err)
		}
		if obj == nil {
			return "", errors.NewParseError("json", "", fmt.Sprintf("%s is null", j.prefix(i)), nil)
		}
		next, ok := obj[name]
		if !ok {
			return "", errors.NewParseError("json", "", fmt.Sprintf("missing field %q", j.prefix(i+1)), nil)
		}
		raw = next
	}

	var key string
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", errors.NewParseError("json", "", fmt.Sprintf("field %q is null", j.Field()), nil)
	}
	if !utf8.Valid(raw) {
		return "", errors.NewParseError("json", "", fmt.Sprintf("field %q is not valid UTF-8", j.Field()), nil)
	}
	if err := json.Unmarshal(raw, &key); err != nil {
		return "", errors.NewParseError("json", "", fmt.Sprintf("field %q is not a string", j.Field()), err)
	}
	return key, nil
}

func (j *JSONField) prefix(n int) string {
	if n == 0 {
		return "document"
	}
	return strings.Join(j.path[:n], ".")
}
