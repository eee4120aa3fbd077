package dictionary

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileCache stores raw API responses as <expression>.json files.
// An empty root directory disables caching.
type FileCache struct {
	fs      afero.Fs
	rootDir string
}

func NewFileCache(fsys afero.Fs, cacheDirectory string) *FileCache {
	return &FileCache{
		fs:      fsys,
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(expression string) string {
	name := strings.ReplaceAll(strings.ToLower(expression), string(filepath.Separator), "_")
	return filepath.Join(f.rootDir, name+".json")
}

func (cache *FileCache) cache(expression string, f func() ([]byte, error)) ([]byte, error) {
	if cache.rootDir == "" {
		return f()
	}

	contents, err := cache.read(expression)
	if err == nil {
		return contents, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cache.read > %w", err)
	}

	contents, err = f()
	if err != nil {
		return nil, err
	}

	if err := cache.fs.MkdirAll(cache.rootDir, 0o755); err != nil {
		return contents, fmt.Errorf("fs.MkdirAll > %w", err)
	}
	if err := afero.WriteFile(cache.fs, cache.filePath(expression), contents, 0o644); err != nil {
		return contents, fmt.Errorf("afero.WriteFile > %w", err)
	}
	return contents, nil
}

func (cache *FileCache) read(expression string) ([]byte, error) {
	contents, err := afero.ReadFile(cache.fs, cache.filePath(expression))
	if err != nil {
		return nil, fmt.Errorf("afero.ReadFile > %w", err)
	}
	return contents, nil
}
