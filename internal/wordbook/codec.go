package wordbook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	errNotObject      = errors.New("top-level value must be an object")
	errNonStringValue = errors.New("values must be strings")
	errTrailingData   = errors.New("unexpected data after the top-level object")
)

// decodeEntries reads a JSON object of string to string, keeping the key order of the input.
// Duplicate keys keep the position of their first occurrence and the value of the last.
func decodeEntries(r io.Reader) ([]Entry, error) {
	decoder := json.NewDecoder(r)

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("decoder.Token() > %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	var entries []Entry
	positions := make(map[string]int)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("decoder.Token() > %w", err)
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", token)
		}

		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoder.Decode(%q) > %w", key, err)
		}
		raw = bytes.TrimSpace(raw)
		var value string
		if len(raw) == 0 || raw[0] != '"' {
			return nil, fmt.Errorf("key %q: %w", key, errNonStringValue)
		}
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("json.Unmarshal(%q) > %w", key, err)
		}

		if i, ok := positions[key]; ok {
			entries[i].Definition = value
			continue
		}
		positions[key] = len(entries)
		entries = append(entries, Entry{Word: key, Definition: value})
	}

	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("decoder.Token() > %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return entries, nil
}

// encodeEntries writes entries as an indented JSON object without escaping HTML or non-ASCII text.
func encodeEntries(w io.Writer, entries []Entry) error {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, entry := range entries {
		if i > 0 {
			compact.WriteByte(',')
		}
		if err := writeString(&compact, entry.Word); err != nil {
			return err
		}
		compact.WriteByte(':')
		if err := writeString(&compact, entry.Definition); err != nil {
			return err
		}
	}
	compact.WriteByte('}')

	var indented bytes.Buffer
	if err := json.Indent(&indented, compact.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("json.Indent > %w", err)
	}
	indented.WriteByte('\n')
	if _, err := w.Write(indented.Bytes()); err != nil {
		return fmt.Errorf("w.Write > %w", err)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var encoded bytes.Buffer
	encoder := json.NewEncoder(&encoded)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("encoder.Encode > %w", err)
	}
	buf.Write(bytes.TrimSuffix(encoded.Bytes(), []byte("\n")))
	return nil
}
