package wordbook

import (
	"fmt"
	"io"
	"maps"
	"slices"
)

// Merge inserts or overwrites every entry of other and returns how many entries were merged.
// Words and definitions are stored exactly as given.
//
// other may be a map[string]string, a map[string]any holding only strings, a []Entry or a *Store.
// Any other shape, a non-string value or an empty word fails with a *ValidationError
// and leaves the store unchanged.
func (s *Store) Merge(other any) (int, error) {
	entries, err := toEntries(other)
	if err != nil {
		return 0, err
	}

	for _, entry := range entries {
		if entry.Word == "" {
			return 0, &ValidationError{Field: "entries", Reason: "word must not be empty"}
		}
	}

	for _, entry := range entries {
		s.put(entry.Word, entry.Definition)
	}
	return len(entries), nil
}

// Import decodes a JSON object of words to definitions from r and merges it into the store.
func (s *Store) Import(r io.Reader) (int, error) {
	entries, err := decodeEntries(r)
	if err != nil {
		return 0, &ValidationError{
			Field:  "entries",
			Reason: "must be a JSON object mapping words to definitions",
			Err:    err,
		}
	}
	return s.Merge(entries)
}

func toEntries(other any) ([]Entry, error) {
	switch v := other.(type) {
	case []Entry:
		return v, nil
	case *Store:
		if v == nil {
			return nil, nil
		}
		return v.Entries(), nil
	case map[string]string:
		entries := make([]Entry, 0, len(v))
		for _, word := range slices.Sorted(maps.Keys(v)) {
			entries = append(entries, Entry{Word: word, Definition: v[word]})
		}
		return entries, nil
	case map[string]any:
		entries := make([]Entry, 0, len(v))
		for _, word := range slices.Sorted(maps.Keys(v)) {
			value := v[word]
			definition, ok := value.(string)
			if !ok {
				return nil, &ValidationError{
					Field:  "entries",
					Reason: fmt.Sprintf("definition of %q must be a string, got %T", word, value),
				}
			}
			entries = append(entries, Entry{Word: word, Definition: definition})
		}
		return entries, nil
	default:
		return nil, &ValidationError{
			Field:  "entries",
			Reason: fmt.Sprintf("must be a mapping of words to definitions, got %T", other),
		}
	}
}
