// Package datasync provides import/export orchestration between the dictionary file and the database.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/wordbook/internal/wordbook"
)

// ImportResult tracks counts for an import into the database.
type ImportResult struct {
	New     int
	Updated int
	Skipped int
	Deleted int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
	// Prune deletes database entries that are not in the dictionary file.
	Prune bool
}

// Importer writes dictionary entries to the database.
type Importer struct {
	entryRepo wordbook.EntryRepository
	writer    io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(entryRepo wordbook.EntryRepository, writer io.Writer) *Importer {
	return &Importer{
		entryRepo: entryRepo,
		writer:    writer,
	}
}

// ImportEntries upserts entries into the database. Entries whose definition is unchanged are skipped.
func (imp *Importer) ImportEntries(ctx context.Context, entries []wordbook.Entry, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult

	records, err := imp.entryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindAll() > %w", err)
	}
	existing := make(map[string]string, len(records))
	for _, record := range records {
		existing[record.Word] = record.Definition
	}

	for _, entry := range entries {
		definition, ok := existing[entry.Word]
		switch {
		case ok && definition == entry.Definition:
			result.Skipped++
			continue
		case ok:
			fmt.Fprintf(imp.writer, "  [UPDATE]  %q\n", entry.Word)
			result.Updated++
		default:
			fmt.Fprintf(imp.writer, "  [NEW]  %q\n", entry.Word)
			result.New++
		}

		if opts.DryRun {
			continue
		}
		if err := imp.entryRepo.Upsert(ctx, entry); err != nil {
			return nil, fmt.Errorf("Upsert(%s) > %w", entry.Word, err)
		}
	}

	if !opts.Prune {
		return &result, nil
	}

	inFile := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		inFile[entry.Word] = struct{}{}
	}
	for _, record := range records {
		if _, ok := inFile[record.Word]; ok {
			continue
		}
		fmt.Fprintf(imp.writer, "  [DELETE]  %q\n", record.Word)
		result.Deleted++
		if opts.DryRun {
			continue
		}
		if err := imp.entryRepo.Delete(ctx, record.Word); err != nil {
			return nil, fmt.Errorf("Delete(%s) > %w", record.Word, err)
		}
	}

	return &result, nil
}

// Exporter reads entries back from the database.
type Exporter struct {
	entryRepo wordbook.EntryRepository
}

// NewExporter creates a new Exporter.
func NewExporter(entryRepo wordbook.EntryRepository) *Exporter {
	return &Exporter{
		entryRepo: entryRepo,
	}
}

// Export returns all database entries.
func (e *Exporter) Export(ctx context.Context) ([]wordbook.Entry, error) {
	records, err := e.entryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("entryRepo.FindAll() > %w", err)
	}

	entries := make([]wordbook.Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, wordbook.Entry{Word: record.Word, Definition: record.Definition})
	}
	return entries, nil
}

// ExportTo merges all database entries into store and returns how many were merged.
func (e *Exporter) ExportTo(ctx context.Context, store *wordbook.Store) (int, error) {
	entries, err := e.Export(ctx)
	if err != nil {
		return 0, err
	}
	count, err := store.Merge(entries)
	if err != nil {
		return 0, fmt.Errorf("store.Merge() > %w", err)
	}
	return count, nil
}
