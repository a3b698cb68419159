package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Games are
// stored as encoded snapshots so callers never share a board with the store.
type Storage struct {
	mu sync.RWMutex

	games           map[model.GameID][]byte
	dictionaryWords []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games: make(map[model.GameID][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = data
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	data, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return decodeGame(data)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, data := range s.games {
		game, err := decodeGame(data)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

func decodeGame(data []byte) (*model.Game, error) {
	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}
