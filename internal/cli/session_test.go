package cli

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"

	mock_cli "github.com/at-ishikawa/wordbook/internal/mocks/cli"
	"github.com/at-ishikawa/wordbook/internal/wordbook"
)

const dictionaryPath = "dictionary.json"

func newTestSession(t *testing.T, confirmer Confirmer, contents string) (*Session, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if contents != "" {
		require.NoError(t, afero.WriteFile(fsys, dictionaryPath, []byte(contents), 0o644))
	}
	session, err := OpenSession(fsys, dictionaryPath, confirmer)
	require.NoError(t, err)
	return session, fsys
}

func readDictionary(t *testing.T, fsys afero.Fs) string {
	t.Helper()
	b, err := afero.ReadFile(fsys, dictionaryPath)
	require.NoError(t, err)
	return string(b)
}

func TestOpenSession(t *testing.T) {
	tests := []struct {
		name        string
		contents    string
		wantWords   []string
		wantWarning bool
	}{
		{
			name:      "missing file",
			wantWords: []string{},
		},
		{
			name:      "valid file",
			contents:  `{"banana": "a yellow fruit", "Apple": "a fruit"}`,
			wantWords: []string{"Apple", "banana"},
		},
		{
			name:        "corrupt file falls back to an empty dictionary",
			contents:    `{"apple": `,
			wantWords:   []string{},
			wantWarning: true,
		},
		{
			name:        "non-string definition falls back to an empty dictionary",
			contents:    `{"apple": 1}`,
			wantWords:   []string{},
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, _ := newTestSession(t, AlwaysConfirm{}, tt.contents)
			assert.Equal(t, tt.wantWords, session.Words())

			if !tt.wantWarning {
				assert.NoError(t, session.LoadWarning())
				return
			}
			var loadErr *wordbook.LoadError
			assert.ErrorAs(t, session.LoadWarning(), &loadErr)
		})
	}
}

func TestSession_SearchAndSelect(t *testing.T) {
	session, _ := newTestSession(t, AlwaysConfirm{}, `{"cat": "an animal", "Catalog": "a list", "dog": "an animal"}`)

	assert.Equal(t, []string{"cat", "Catalog"}, session.Search("  CAT "))
	assert.Equal(t, "CAT", session.Filter())
	assert.Equal(t, []string{"cat", "Catalog"}, session.Words())

	definition, ok := session.Select("dog")
	assert.True(t, ok)
	assert.Equal(t, "an animal", definition)
	assert.Equal(t, "dog", session.Selected())

	_, ok = session.Select("Dog")
	assert.False(t, ok)
	assert.Equal(t, "dog", session.Selected())

	session.Clear()
	assert.Empty(t, session.Selected())
	assert.Empty(t, session.Filter())
	assert.Equal(t, []string{"cat", "Catalog", "dog"}, session.Words())
}

func TestSession_SaveEntry(t *testing.T) {
	tests := []struct {
		name       string
		word       string
		definition string
		setup      func(confirmer *mock_cli.MockConfirmer)
		wantSaved  bool
		wantErr    bool
		wantFile   string
	}{
		{
			name:       "new word is saved and persisted",
			word:       " apple ",
			definition: "a fruit",
			setup:      func(*mock_cli.MockConfirmer) {},
			wantSaved:  true,
			wantFile:   "{\n  \"apple\": \"a fruit\"\n}\n",
		},
		{
			name:       "empty definition confirmed",
			word:       "apple",
			definition: "  ",
			setup: func(confirmer *mock_cli.MockConfirmer) {
				confirmer.EXPECT().ConfirmEmptyDefinition("apple").Return(true, nil)
			},
			wantSaved: true,
			wantFile:  "{\n  \"apple\": \"\"\n}\n",
		},
		{
			name:       "empty definition declined",
			word:       "apple",
			definition: "",
			setup: func(confirmer *mock_cli.MockConfirmer) {
				confirmer.EXPECT().ConfirmEmptyDefinition("apple").Return(false, nil)
			},
		},
		{
			name:       "confirmer fails",
			word:       "apple",
			definition: "",
			setup: func(confirmer *mock_cli.MockConfirmer) {
				confirmer.EXPECT().ConfirmEmptyDefinition("apple").Return(false, errors.New("closed"))
			},
			wantErr: true,
		},
		{
			name:       "empty word is rejected before asking",
			word:       "   ",
			definition: "",
			setup:      func(*mock_cli.MockConfirmer) {},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			confirmer := mock_cli.NewMockConfirmer(ctrl)
			tt.setup(confirmer)
			session, fsys := newTestSession(t, confirmer, "")

			saved, err := session.SaveEntry(tt.word, tt.definition)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantSaved, saved)

			exists, statErr := afero.Exists(fsys, dictionaryPath)
			require.NoError(t, statErr)
			if tt.wantFile == "" {
				assert.False(t, exists)
				assert.Zero(t, session.Store().Len())
				return
			}
			assert.Equal(t, tt.wantFile, readDictionary(t, fsys))
			assert.Equal(t, "apple", session.Selected())
		})
	}
}

func TestSession_SaveEntry_EmptyWordIsValidationError(t *testing.T) {
	session, _ := newTestSession(t, AlwaysConfirm{}, "")

	_, err := session.SaveEntry("", "a fruit")
	var validationErr *wordbook.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSession_SaveEntry_SaveError(t *testing.T) {
	store := wordbook.New()
	session := NewSession(afero.NewReadOnlyFs(afero.NewMemMapFs()), dictionaryPath, store, AlwaysConfirm{})

	saved, err := session.SaveEntry("apple", "a fruit")
	assert.True(t, saved)
	var saveErr *wordbook.SaveError
	assert.ErrorAs(t, err, &saveErr)

	definition, ok := store.Get("apple")
	assert.True(t, ok)
	assert.Equal(t, "a fruit", definition)
}

func TestSession_Delete(t *testing.T) {
	const contents = `{"apple": "a fruit", "banana": "a yellow fruit"}`

	tests := []struct {
		name        string
		word        string
		selected    string
		setup       func(confirmer *mock_cli.MockConfirmer)
		wantDeleted bool
		wantErr     error
		wantWords   []string
	}{
		{
			name: "given word",
			word: "banana",
			setup: func(confirmer *mock_cli.MockConfirmer) {
				confirmer.EXPECT().ConfirmDelete("banana").Return(true, nil)
			},
			wantDeleted: true,
			wantWords:   []string{"apple"},
		},
		{
			name:     "falls back to the selection",
			selected: "apple",
			setup: func(confirmer *mock_cli.MockConfirmer) {
				confirmer.EXPECT().ConfirmDelete("apple").Return(true, nil)
			},
			wantDeleted: true,
			wantWords:   []string{"banana"},
		},
		{
			name: "declined",
			word: "apple",
			setup: func(confirmer *mock_cli.MockConfirmer) {
				confirmer.EXPECT().ConfirmDelete("apple").Return(false, nil)
			},
			wantWords: []string{"apple", "banana"},
		},
		{
			name:      "nothing selected",
			setup:     func(*mock_cli.MockConfirmer) {},
			wantErr:   ErrNoSelection,
			wantWords: []string{"apple", "banana"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			confirmer := mock_cli.NewMockConfirmer(ctrl)
			tt.setup(confirmer)
			session, fsys := newTestSession(t, confirmer, contents)
			if tt.selected != "" {
				_, ok := session.Select(tt.selected)
				require.True(t, ok)
			}

			deleted, err := session.Delete(tt.word)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantDeleted, deleted)
			assert.Equal(t, tt.wantWords, session.Words())

			if tt.wantDeleted {
				assert.Empty(t, session.Selected())
				reloaded, err := wordbook.Load(fsys, dictionaryPath)
				require.NoError(t, err)
				assert.Equal(t, tt.wantWords, reloaded.ListWords(""))
			}
		})
	}
}

func TestSession_Import(t *testing.T) {
	tests := []struct {
		name      string
		imported  *string
		wantCount int
		wantErr   bool
		wantWords []string
	}{
		{
			name:      "merges and persists",
			imported:  ptr(`{"banana": "a yellow fruit", "apple": "a red fruit"}`),
			wantCount: 2,
			wantWords: []string{"apple", "banana"},
		},
		{
			name:      "invalid file changes nothing",
			imported:  ptr(`{"banana": "a yellow fruit", "cherry": 3}`),
			wantErr:   true,
			wantWords: []string{"apple"},
		},
		{
			name:      "missing file",
			wantErr:   true,
			wantWords: []string{"apple"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, fsys := newTestSession(t, AlwaysConfirm{}, `{"apple": "a fruit"}`)
			if tt.imported != nil {
				require.NoError(t, afero.WriteFile(fsys, "other.json", []byte(*tt.imported), 0o644))
			}
			session.Search("zzz")

			count, err := session.Import("other.json")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, "zzz", session.Filter())
				assert.Equal(t, "{\"apple\": \"a fruit\"}", readDictionary(t, fsys))
			} else {
				require.NoError(t, err)
				assert.Empty(t, session.Filter())
				reloaded, err := wordbook.Load(fsys, dictionaryPath)
				require.NoError(t, err)
				assert.Equal(t, tt.wantWords, reloaded.ListWords(""))
			}
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantWords, session.Store().ListWords(""))
		})
	}
}

func TestSession_Export(t *testing.T) {
	session, fsys := newTestSession(t, AlwaysConfirm{}, `{"apple": "a fruit"}`)
	_, err := session.Store().Merge(map[string]string{"banana": "a yellow fruit"})
	require.NoError(t, err)

	require.NoError(t, session.Export("backup.yaml", wordbook.FormatYAML))

	exported, err := afero.ReadFile(fsys, "backup.yaml")
	require.NoError(t, err)
	var decoded map[string]string
	require.NoError(t, yaml.Unmarshal(exported, &decoded))
	assert.Equal(t, map[string]string{"apple": "a fruit", "banana": "a yellow fruit"}, decoded)
	assert.Equal(t, `{"apple": "a fruit"}`, readDictionary(t, fsys))

	assert.Error(t, session.Export("backup.txt", wordbook.Format("csv")))
}

func ptr(s string) *string {
	return &s
}
