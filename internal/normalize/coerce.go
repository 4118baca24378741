package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// coerceSection parses a raw section value into candidate lines.
//
// The accepted grammar at the top level is a JSON string or an array of
// strings/objects. Strings that themselves carry a serialized array or
// object (a quirk of the upstream payload) are re-parsed and flattened;
// objects flatten to "Key: Value" lines. If a string fails to parse as the
// structure it resembles, it is kept unchanged as a single line. Any other
// value shape yields no lines, which the caller treats as "no data for this
// section" rather than an error.
func coerceSection(raw json.RawMessage) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil
	}

	switch t := tok.(type) {
	case string:
		return flattenString(t)
	case json.Delim:
		if t != '[' {
			return nil
		}
		lines, err := flattenArray(dec)
		if err != nil {
			return nil
		}
		return lines
	default:
		return nil
	}
}

// flattenString turns a scalar string into lines. Strings that look like a
// serialized JSON array or object are flattened recursively; on parse
// failure the original string survives as a single line.
func flattenString(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		dec := json.NewDecoder(strings.NewReader(trimmed))
		dec.UseNumber()
		if lines, err := flattenValue(dec); err == nil && len(lines) > 0 {
			return lines
		}
	}

	return []string{trimmed}
}

// flattenValue consumes one JSON value from the decoder and renders it as
// lines: strings and numbers become single lines, arrays concatenate their
// elements' lines, objects become one "Key: Value" line per key.
func flattenValue(dec *json.Decoder) ([]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case string:
		return flattenString(t), nil
	case json.Number:
		return []string{t.String()}, nil
	case bool:
		return []string{fmt.Sprintf("%t", t)}, nil
	case nil:
		return nil, nil
	case json.Delim:
		switch t {
		case '[':
			return flattenArray(dec)
		case '{':
			return flattenObject(dec)
		}
	}
	return nil, fmt.Errorf("unsupported token %v", tok)
}

// flattenArray consumes the remainder of an array whose '[' has been read.
func flattenArray(dec *json.Decoder) ([]string, error) {
	var lines []string
	for dec.More() {
		elem, err := flattenValue(dec)
		if err != nil {
			return nil, err
		}
		lines = append(lines, elem...)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return lines, nil
}

// flattenObject consumes the remainder of an object whose '{' has been
// read, producing "Key: Value" lines in key order. Multi-line values are
// joined with commas so one object key stays one line.
func flattenObject(dec *json.Decoder) ([]string, error) {
	var lines []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
		}

		valueLines, err := flattenValue(dec)
		if err != nil {
			return nil, err
		}

		value := strings.Join(valueLines, ", ")
		if strings.TrimSpace(value) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", strings.TrimSpace(key), value))
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return lines, nil
}
