package store

import (
	"encoding/json"
	"time"
)

// Document is a schema-less JSON payload as fetched from the upstream API.
// Known fields are read through the typed accessors; callers must not
// assume any particular shape beyond the field they ask for.
type Document map[string]any

func (d Document) String(key string) (string, bool) {
	v, ok := d[key].(string)
	return v, ok
}

// Int64 reads a numeric field. JSON numbers decode as float64, but ids
// fed in programmatically may be native ints.
func (d Document) Int64(key string) (int64, bool) {
	switch v := d[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func (d Document) Sub(key string) (Document, bool) {
	v, ok := d[key].(map[string]any)
	if !ok {
		return nil, false
	}
	return Document(v), true
}

func (d Document) Docs(key string) ([]Document, bool) {
	items, ok := d[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]Document, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Document(m))
	}
	return out, true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an ISO 8601 string such as a campaign expiresAt
// value. Naive timestamps are taken as UTC. Returns false when the string
// cannot be parsed.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func marshalDocument(d Document) ([]byte, error) {
	return json.Marshal(d)
}

func unmarshalDocument(raw []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d, nil
}
