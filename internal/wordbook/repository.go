package wordbook

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/wordbook/mock_repository.go -package=mock_wordbook

// EntryRecord is an entry as stored in the database mirror.
type EntryRecord struct {
	Word       string    `db:"word"`
	Definition string    `db:"definition"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// EntryRepository defines operations for mirroring entries in a database.
type EntryRepository interface {
	FindAll(ctx context.Context) ([]EntryRecord, error)
	Upsert(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, word string) error
}

// DBEntryRepository implements EntryRepository using MySQL.
type DBEntryRepository struct {
	db *sqlx.DB
}

// NewDBEntryRepository creates a new DBEntryRepository.
func NewDBEntryRepository(db *sqlx.DB) *DBEntryRepository {
	return &DBEntryRepository{db: db}
}

// FindAll returns all entries ordered by word.
func (r *DBEntryRepository) FindAll(ctx context.Context) ([]EntryRecord, error) {
	var records []EntryRecord
	if err := r.db.SelectContext(ctx, &records, "SELECT word, definition, created_at, updated_at FROM entries ORDER BY word"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(entries) > %w", err)
	}
	return records, nil
}

// Upsert inserts or updates an entry.
func (r *DBEntryRepository) Upsert(ctx context.Context, entry Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (word, definition)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE definition = VALUES(definition)`,
		entry.Word, entry.Definition)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert entry) > %w", err)
	}
	return nil
}

// Delete removes the entry for word. Missing entries are ignored.
func (r *DBEntryRepository) Delete(ctx context.Context, word string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM entries WHERE word = ?", word); err != nil {
		return fmt.Errorf("db.ExecContext(delete entry) > %w", err)
	}
	return nil
}
