// Package cli holds the terminal front end state and the interactive shell.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/at-ishikawa/wordbook/internal/wordbook"
)

// ErrNoSelection is returned when an operation needs a word but none is given or selected.
var ErrNoSelection = errors.New("no word selected")

// Session is the state of one front end over a dictionary file.
// The primary file is written after SaveEntry, Delete and Import succeed.
type Session struct {
	store     *wordbook.Store
	fs        afero.Fs
	path      string
	filter    string
	selected  string
	confirmer Confirmer
	loadErr   error
}

func NewSession(fsys afero.Fs, path string, store *wordbook.Store, confirmer Confirmer) *Session {
	return &Session{
		store:     store,
		fs:        fsys,
		path:      path,
		confirmer: confirmer,
	}
}

// OpenSession loads path. A file that cannot be parsed is reported through LoadWarning
// and the session starts with an empty dictionary.
func OpenSession(fsys afero.Fs, path string, confirmer Confirmer) (*Session, error) {
	store, err := wordbook.Load(fsys, path)
	if err == nil {
		return NewSession(fsys, path, store, confirmer), nil
	}

	var loadErr *wordbook.LoadError
	if !errors.As(err, &loadErr) {
		return nil, fmt.Errorf("wordbook.Load() > %w", err)
	}
	slog.Warn("failed to load the dictionary, starting with an empty one", "path", path, "error", err)
	session := NewSession(fsys, path, wordbook.New(), confirmer)
	session.loadErr = loadErr
	return session, nil
}

// LoadWarning returns the error that made OpenSession fall back to an empty dictionary.
func (s *Session) LoadWarning() error {
	return s.loadErr
}

func (s *Session) Store() *wordbook.Store {
	return s.store
}

func (s *Session) Path() string {
	return s.path
}

func (s *Session) Filter() string {
	return s.filter
}

func (s *Session) Selected() string {
	return s.selected
}

// Words lists the words matching the current filter.
func (s *Session) Words() []string {
	return s.store.ListWords(s.filter)
}

// Search replaces the current filter with query and lists the matching words.
func (s *Session) Search(query string) []string {
	s.filter = strings.TrimSpace(query)
	return s.Words()
}

// Select makes word the current selection and returns its definition.
func (s *Session) Select(word string) (string, bool) {
	definition, ok := s.store.Get(word)
	if !ok {
		return "", false
	}
	s.selected = word
	return definition, true
}

// Clear drops the selection and the filter.
func (s *Session) Clear() {
	s.selected = ""
	s.filter = ""
}

// SaveEntry stores a definition for word and writes the dictionary file.
// It returns false without an error when the confirmer declines an empty definition.
func (s *Session) SaveEntry(word, definition string) (bool, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return false, &wordbook.ValidationError{Field: "word", Reason: "must not be empty"}
	}
	if strings.TrimSpace(definition) == "" {
		ok, err := s.confirmer.ConfirmEmptyDefinition(word)
		if err != nil {
			return false, fmt.Errorf("confirmer.ConfirmEmptyDefinition() > %w", err)
		}
		if !ok {
			return false, nil
		}
	}

	if err := s.store.Set(word, definition); err != nil {
		return false, fmt.Errorf("store.Set() > %w", err)
	}
	s.selected = word
	if err := s.Save(); err != nil {
		return true, err
	}
	return true, nil
}

// Delete removes word, or the selected word when word is empty, after confirmation.
func (s *Session) Delete(word string) (bool, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		word = s.selected
	}
	if word == "" {
		return false, ErrNoSelection
	}

	ok, err := s.confirmer.ConfirmDelete(word)
	if err != nil {
		return false, fmt.Errorf("confirmer.ConfirmDelete() > %w", err)
	}
	if !ok {
		return false, nil
	}

	s.store.Delete(word)
	if s.selected == word {
		s.selected = ""
	}
	if err := s.Save(); err != nil {
		return true, err
	}
	return true, nil
}

// Import merges the dictionary file at path and writes the primary file.
// The filter is cleared so that the imported words are listed.
func (s *Session) Import(path string) (int, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("fs.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	count, err := s.store.Import(f)
	if err != nil {
		return 0, fmt.Errorf("store.Import(%s) > %w", path, err)
	}
	s.filter = ""
	if err := s.Save(); err != nil {
		return count, err
	}
	return count, nil
}

// Export writes the dictionary to path without touching the primary file.
func (s *Session) Export(path string, format wordbook.Format) error {
	if err := s.store.Export(s.fs, path, format); err != nil {
		return fmt.Errorf("store.Export(%s) > %w", path, err)
	}
	return nil
}

// Save writes the dictionary to the primary file.
func (s *Session) Save() error {
	if err := s.store.Save(s.fs, s.path); err != nil {
		return fmt.Errorf("store.Save() > %w", err)
	}
	return nil
}
