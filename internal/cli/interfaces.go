package cli

import (
	"context"

	"github.com/at-ishikawa/wordbook/internal/dictionary/rapidapi"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/cli/mock_interfaces.go -package=mock_cli

// Confirmer asks the user before a session stores an empty definition or deletes a word.
type Confirmer interface {
	ConfirmEmptyDefinition(word string) (bool, error)
	ConfirmDelete(word string) (bool, error)
}

// DefinitionLookup suggests definitions for a word.
type DefinitionLookup interface {
	Lookup(ctx context.Context, word string) (rapidapi.Response, error)
}
