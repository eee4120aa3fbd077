// Package testutil provides shared test helpers for creating config files and dictionary fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbook/internal/wordbook"
)

// DictionaryFileName is the name of the dictionary file that SetupTestConfig points the store at.
const DictionaryFileName = "dictionary.json"

// SetupTestConfig creates a minimal config file and the dictionary cache directory for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()
	return SetupTestConfigWithExportFormat(t, tmpDir, wordbook.FormatJSON)
}

// SetupTestConfigWithExportFormat creates a config file whose default export format is format.
func SetupTestConfigWithExportFormat(t *testing.T, tmpDir string, format wordbook.Format) string {
	t.Helper()

	cacheDir := filepath.Join(tmpDir, "dictionaries", "rapidapi")
	require.NoError(t, os.MkdirAll(cacheDir, 0755))

	configContent := fmt.Sprintf(`store:
  path: %s
  export_format: %s
dictionaries:
  rapidapi:
    cache_directory: %s
    retry_attempts: 0
`,
		filepath.Join(tmpDir, DictionaryFileName),
		format,
		cacheDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// CreateDictionary writes entries to path in the dictionary file format and returns the store.
func CreateDictionary(t *testing.T, path string, entries ...wordbook.Entry) *wordbook.Store {
	t.Helper()

	store := wordbook.New()
	_, err := store.Merge(entries)
	require.NoError(t, err)
	require.NoError(t, store.Save(afero.NewOsFs(), path))
	return store
}
