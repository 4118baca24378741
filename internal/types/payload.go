package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawPayload is the resume payload shape handed over by the data source.
type RawPayload struct {
	ParsedResumes ParsedResumes `json:"parsed_resumes"`
}

// ParsedResumes pairs the user's pre-existing resume with the enhanced one.
type ParsedResumes struct {
	CurrentResumes SectionMap `json:"current_resumes"`
	EnhancedResume SectionMap `json:"enhanced_resume"`
}

// SectionEntry is one named section of a raw resume. The value is either a
// JSON string or an array; anything else is skipped by the normalizer.
type SectionEntry struct {
	Name  string
	Value json.RawMessage
}

// SectionMap is a raw resume's section mapping. It preserves the JSON
// object's key order, which encoding/json maps would lose: the enhanced
// document's section order is the canonical order for the whole feature.
type SectionMap struct {
	Entries []SectionEntry
}

// IsEmpty reports whether the map has no sections.
func (m *SectionMap) IsEmpty() bool {
	return m == nil || len(m.Entries) == 0
}

// UnmarshalJSON decodes a JSON object into ordered entries. A JSON null
// decodes to an empty map.
func (m *SectionMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode section map: %w", err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("section map must be a JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode section name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("section name must be a string, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode section %q: %w", name, err)
		}
		m.Entries = append(m.Entries, SectionEntry{Name: name, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to decode section map: %w", err)
	}
	return nil
}

// MarshalJSON encodes the entries back into a JSON object in order.
func (m SectionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range m.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		if len(entry.Value) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(entry.Value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
