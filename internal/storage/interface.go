package storage

import (
	"context"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
)

// GameStore persists games by ID. GetGame returns model.ErrGameNotFound for
// an unknown ID; deleting one is not an error.
type GameStore interface {
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGames(ctx context.Context) ([]*model.Game, error)
}

// WordStore keeps the lexicon's word list so a restart can skip the word
// file. Until words are saved, GetDictionaryWords returns
// model.ErrDictionaryNotLoaded.
type WordStore interface {
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}

// Storage is a backend holding both
type Storage interface {
	GameStore
	WordStore
}
