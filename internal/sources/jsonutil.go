package sources

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/okian/statsboard/internal/domain/dataset"
)

// rawValue converts one JSON value into a cell. Numbers keep their literal
// text; nested arrays and objects are kept as compact JSON text.
func rawValue(raw json.RawMessage) (dataset.Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return dataset.Null(), nil
	}
	switch raw[0] {
	case 'n':
		return dataset.Null(), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return dataset.Value{}, err
		}
		return dataset.Bool(b), nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return dataset.Value{}, err
		}
		return dataset.Text(s), nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return dataset.Value{}, err
		}
		return dataset.Text(buf.String()), nil
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return dataset.Value{}, err
		}
		return dataset.Text(n.String()), nil
	}
}

// decodeObject reads a JSON object keeping its key order.
func decodeObject(raw json.RawMessage) ([]string, map[string]dataset.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	vals := make(map[string]dataset.Value)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected key, got %v", tok)
		}
		var field json.RawMessage
		if err := dec.Decode(&field); err != nil {
			return nil, nil, err
		}
		v, err := rawValue(field)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}
		if _, dup := vals[key]; !dup {
			keys = append(keys, key)
		}
		vals[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, vals, nil
}
