package board

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/C0deSamurai/verdant-ecstasy/internal/dependencies/clock"
	"github.com/C0deSamurai/verdant-ecstasy/internal/dependencies/random"
	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/scoring"
	"github.com/C0deSamurai/verdant-ecstasy/internal/storage"
)

const (
	gameIDLength   = 8
	gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Config holds settings for the board service
type Config struct {
	// ValidateWords rejects moves forming words missing from the lexicon
	ValidateWords bool
}

// DefaultConfig returns the default board service configuration
func DefaultConfig() Config {
	return Config{ValidateWords: true}
}

// Notifier is told about every change to a stored game. Calls happen after
// the change is saved, while the service lock is still held, so they must not
// call back into the service.
type Notifier interface {
	GameUpdated(ctx context.Context, game *model.Game)
	GameDeleted(ctx context.Context, id model.GameID)
}

type nopNotifier struct{}

func (nopNotifier) GameUpdated(context.Context, *model.Game) {}
func (nopNotifier) GameDeleted(context.Context, model.GameID) {}

// Service manages stored games: a board, its move history and running score
type Service struct {
	storage  storage.GameStore
	scoring  *scoring.Service
	clock    clock.Clock
	random   random.Random
	cfg      Config
	logger   *slog.Logger
	notifier Notifier

	// mu serialises read-modify-write cycles on stored games
	mu sync.Mutex
}

// New creates a new BoardService
func New(
	storage storage.GameStore,
	scoring *scoring.Service,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:  storage,
		scoring:  scoring,
		clock:    clock,
		random:   random,
		cfg:      cfg,
		logger:   logger,
		notifier: nopNotifier{},
	}
}

// SetNotifier registers the receiver of game change notifications. A nil
// notifier turns notifications off.
func (s *Service) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n == nil {
		n = nopNotifier{}
	}
	s.notifier = n
}

// PlayResult is the outcome of an accepted move
type PlayResult struct {
	Game   *model.Game      `json:"game"`
	Record model.PlayRecord `json:"record"`
	Result *scoring.Result  `json:"result"`
}

// CreateGame starts a game on an empty board
func (s *Service) CreateGame(ctx context.Context) (*model.Game, error) {
	id := model.GameID(s.random.String(gameIDLength, gameIDAlphabet))
	game := model.NewGame(id, s.clock.Now())

	if err := s.storage.SaveGame(ctx, game); err != nil {
		s.logger.Error("failed to save game",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("game created", slog.String("game_id", string(id)))
	return game, nil
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, id)
}

// ListGames returns a summary of every stored game, most recently updated
// first
func (s *Service) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	games, err := s.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.GameSummary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, g.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].UpdatedAt.Equal(summaries[j].UpdatedAt) {
			return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

// DeleteGame removes a game
func (s *Service) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.storage.GetGame(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteGame(ctx, id); err != nil {
		return err
	}

	s.logger.Info("game deleted", slog.String("game_id", string(id)))
	s.notifier.GameDeleted(ctx, id)
	return nil
}

// PreviewMove scores a move against a game without playing it
func (s *Service) PreviewMove(ctx context.Context, id model.GameID, coord, word string) (*scoring.Result, error) {
	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	move, err := parseMove(coord, word)
	if err != nil {
		return nil, err
	}

	return s.scoring.Evaluate(game.Board, move)
}

// PlayMove places a move on a game's board and records its score
func (s *Service) PlayMove(ctx context.Context, id model.GameID, coord, word string) (*PlayResult, error) {
	move, err := parseMove(coord, word)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.scoring.Evaluate(game.Board, move)
	if err != nil {
		s.logger.Debug("move rejected",
			slog.String("game_id", string(id)),
			slog.String("move", move.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if s.cfg.ValidateWords && !result.Valid() {
		s.logger.Debug("move rejected",
			slog.String("game_id", string(id)),
			slog.String("move", move.String()),
			slog.Any("invalid_words", result.InvalidWords),
		)
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidWord, strings.Join(result.InvalidWords, ", "))
	}

	if err := game.Board.Place(move); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	record := model.PlayRecord{
		Coordinate: move.Anchor(),
		Word:       move.Text(),
		Score:      result.Total,
		Words:      result.Words(),
		Bingo:      result.Bingo,
		PlayedAt:   now,
	}
	game.History = append(game.History, record)
	game.TotalScore += record.Score
	game.UpdatedAt = now

	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("move played",
		slog.String("game_id", string(id)),
		slog.String("move", move.String()),
		slog.Int("score", record.Score),
		slog.Int("total_score", game.TotalScore),
	)
	s.notifier.GameUpdated(ctx, game)

	return &PlayResult{Game: game, Record: record, Result: result}, nil
}

// UndoLastMove takes the most recent move back off the board
func (s *Service) UndoLastMove(ctx context.Context, id model.GameID) (*model.Game, model.PlayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, model.PlayRecord{}, err
	}

	last, ok := game.LastMove()
	if !ok {
		return nil, model.PlayRecord{}, model.ErrNoMovesToUndo
	}
	move, err := last.Move()
	if err != nil {
		return nil, model.PlayRecord{}, err
	}

	game.Board.Remove(move)
	game.History = game.History[:len(game.History)-1]
	game.TotalScore -= last.Score
	game.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, model.PlayRecord{}, err
	}

	s.logger.Info("move undone",
		slog.String("game_id", string(id)),
		slog.String("move", move.String()),
		slog.Int("total_score", game.TotalScore),
	)
	s.notifier.GameUpdated(ctx, game)

	return game, last, nil
}

// DrawRack draws up to size tiles at random from those not yet on the game's
// board. The rack is shorter than size only when the bag runs out.
func (s *Service) DrawRack(ctx context.Context, id model.GameID, size int) ([]model.Tile, error) {
	if size < 1 || size > model.BingoTiles {
		return nil, fmt.Errorf("%w: %d, want 1 to %d", model.ErrInvalidRack, size, model.BingoTiles)
	}

	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	bag := game.Board.Unplayed()
	size = min(size, len(bag))
	for i := 0; i < size; i++ {
		j := i + s.random.Intn(len(bag)-i)
		bag[i], bag[j] = bag[j], bag[i]
	}

	rack := bag[:size]
	model.SortTiles(rack)
	return rack, nil
}

func parseMove(coord, word string) (model.Move, error) {
	anchor, err := model.ParseCoordinate(strings.TrimSpace(coord))
	if err != nil {
		return model.Move{}, err
	}
	return model.ParseMove(strings.TrimSpace(word), anchor)
}

// ServiceInterface is the game API used by the HTTP layers
type ServiceInterface interface {
	CreateGame(ctx context.Context) (*model.Game, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]model.GameSummary, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	PreviewMove(ctx context.Context, id model.GameID, coord, word string) (*scoring.Result, error)
	PlayMove(ctx context.Context, id model.GameID, coord, word string) (*PlayResult, error)
	UndoLastMove(ctx context.Context, id model.GameID) (*model.Game, model.PlayRecord, error)
	DrawRack(ctx context.Context, id model.GameID, size int) ([]model.Tile, error)
}

var _ ServiceInterface = (*Service)(nil)
