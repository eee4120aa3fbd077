// Package wordbook provides the word/definition store and its JSON file persistence.
package wordbook

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// Entry is a single word and its definition.
type Entry struct {
	Word       string `json:"word" yaml:"word"`
	Definition string `json:"definition" yaml:"definition"`
}

// Store maps words to definitions and remembers the order in which words were first added.
// A Store is not safe for concurrent use.
type Store struct {
	definitions map[string]string
	order       []string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		definitions: make(map[string]string),
	}
}

// Load reads a store from a JSON file.
// A missing file yields an empty store. A file that is not an object of strings yields a *LoadError.
func Load(fsys afero.Fs, path string) (*Store, error) {
	file, err := fsys.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	entries, err := decodeEntries(file)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	store := New()
	for _, entry := range entries {
		if entry.Word == "" {
			return nil, &LoadError{Path: path, Err: errors.New("empty word key")}
		}
		store.put(entry.Word, entry.Definition)
	}
	return store, nil
}

// Save writes the store as JSON to path.
// The content goes to a temporary file in the same directory first and is renamed over path.
func (s *Store) Save(fsys afero.Fs, path string) error {
	if err := writeFile(fsys, path, func(f afero.File) error {
		return encodeEntries(f, s.Entries())
	}); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

func writeFile(fsys afero.Fs, path string, write func(f afero.File) error) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fs.MkdirAll > %w", err)
	}

	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("afero.TempFile > %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = fsys.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("file.Sync > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	mode := fs.FileMode(0o644)
	if info, err := fsys.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := fsys.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("fs.Chmod > %w", err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		return fmt.Errorf("fs.Rename > %w", err)
	}
	committed = true
	return nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.order)
}

// Entries returns all entries in insertion order.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, word := range s.order {
		entries = append(entries, Entry{Word: word, Definition: s.definitions[word]})
	}
	return entries
}

// ListWords returns the words sorted case-insensitively.
// A non-empty filter keeps only words containing it, ignoring case.
func (s *Store) ListWords(filter string) []string {
	needle := strings.ToLower(filter)
	words := make([]string, 0, len(s.order))
	for _, word := range s.order {
		if needle != "" && !strings.Contains(strings.ToLower(word), needle) {
			continue
		}
		words = append(words, word)
	}
	slices.SortFunc(words, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return words
}

// Get returns the definition of word. Matching is exact.
func (s *Store) Get(word string) (string, bool) {
	definition, ok := s.definitions[word]
	return definition, ok
}

// Set inserts or overwrites the definition of word. Both values are trimmed.
// An empty definition is stored as-is; asking the user about it is up to the caller.
func (s *Store) Set(word, definition string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return &ValidationError{Field: "word", Reason: "must not be empty"}
	}
	s.put(word, strings.TrimSpace(definition))
	return nil
}

// Delete removes word. Deleting a missing word does nothing.
func (s *Store) Delete(word string) {
	if _, ok := s.definitions[word]; !ok {
		return
	}
	delete(s.definitions, word)
	s.order = slices.DeleteFunc(s.order, func(w string) bool {
		return w == word
	})
}

func (s *Store) put(word, definition string) {
	if _, ok := s.definitions[word]; !ok {
		s.order = append(s.order, word)
	}
	s.definitions[word] = definition
}
