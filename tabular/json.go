package tabular

import (
	"bytes"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
)

// Field is one key/value pair of a JSON object, value kept raw.
type Field struct {
	Key string
	Raw []byte
}

// FromJSON reads a table from a JSON array of flat objects. Object key
// order becomes column order (first seen wins); numbers keep their source
// literal, so an id of 9.0 stays "9.0".
func FromJSON(r io.Reader) (*Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(b, &elements); err != nil {
		return nil, fmt.Errorf("json array: %w", err)
	}
	t := New()
	for i, element := range elements {
		fields, err := ObjectFields(element)
		if err != nil {
			return nil, fmt.Errorf("json object %d: %w", i, err)
		}
		rec := make(Record, len(fields))
		for _, f := range fields {
			v, err := scalarValue(f.Raw)
			if err != nil {
				return nil, fmt.Errorf("json object %d, key %s: %w", i, f.Key, err)
			}
			t.EnsureColumn(f.Key)
			rec[f.Key] = v
		}
		t.Append(rec)
	}
	return t, nil
}

// scalarValue converts a raw JSON scalar into a cell value.
func scalarValue(raw []byte) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Null(), nil
	}
	switch raw[0] {
	case 'n': // null
		return Null(), nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Null(), err
		}
		if s == "" {
			return Null(), nil
		}
		return String(s), nil
	case '{', '[':
		return Null(), fmt.Errorf("nested values are not supported")
	default: // number, true, false: keep the literal
		return String(string(raw)), nil
	}
}

// ObjectFields scans a flat JSON object and returns its key/value pairs in
// document order. The standard decoder loses key order in maps, which the
// table schema needs to preserve.
func ObjectFields(data []byte) ([]Field, error) {
	var (
		fields []Field
		i      = skipSpace(data, 0)
	)
	if i >= len(data) || data[i] != '{' {
		return nil, fmt.Errorf("expected object")
	}
	i = skipSpace(data, i+1)
	if i < len(data) && data[i] == '}' {
		return fields, nil
	}
	for {
		if i >= len(data) || data[i] != '"' {
			return nil, fmt.Errorf("expected key at offset %d", i)
		}
		end, err := scanString(data, i)
		if err != nil {
			return nil, err
		}
		var key string
		if err := json.Unmarshal(data[i:end], &key); err != nil {
			return nil, err
		}
		i = skipSpace(data, end)
		if i >= len(data) || data[i] != ':' {
			return nil, fmt.Errorf("expected colon at offset %d", i)
		}
		i = skipSpace(data, i+1)
		vend, err := scanValue(data, i)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Key: key, Raw: data[i:vend]})
		i = skipSpace(data, vend)
		if i >= len(data) {
			return nil, fmt.Errorf("unterminated object")
		}
		switch data[i] {
		case ',':
			i = skipSpace(data, i+1)
		case '}':
			return fields, nil
		default:
			return nil, fmt.Errorf("unexpected byte %q at offset %d", data[i], i)
		}
	}
}

func skipSpace(data []byte, i int) int {
	for i < len(data) {
		switch data[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

// scanString returns the index just past a JSON string starting at i.
func scanString(data []byte, i int) (int, error) {
	i++ // opening quote
	for i < len(data) {
		switch data[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1, nil
		default:
			i++
		}
	}
	return 0, fmt.Errorf("unterminated string")
}

// scanValue returns the index just past the JSON value starting at i.
func scanValue(data []byte, i int) (int, error) {
	if i >= len(data) {
		return 0, fmt.Errorf("expected value")
	}
	switch data[i] {
	case '"':
		return scanString(data, i)
	case '{', '[':
		depth := 0
		for i < len(data) {
			switch data[i] {
			case '"':
				end, err := scanString(data, i)
				if err != nil {
					return 0, err
				}
				i = end
			case '{', '[':
				depth++
				i++
			case '}', ']':
				depth--
				i++
				if depth == 0 {
					return i, nil
				}
			default:
				i++
			}
		}
		return 0, fmt.Errorf("unterminated composite value")
	default:
		for i < len(data) {
			switch data[i] {
			case ',', '}', ']', ' ', '\t', '\n', '\r':
				return i, nil
			}
			i++
		}
		return i, nil
	}
}
