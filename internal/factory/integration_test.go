package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/lexicon"
	"github.com/C0deSamurai/verdant-ecstasy/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestDictionary())
}

func (s *IntegrationSuite) TearDownTest() {
	s.app.Close()
}

func (s *IntegrationSuite) newGame() model.GameID {
	s.app.MockRandom.QueueString("GAME0001")
	game, err := s.app.BoardService.CreateGame(s.ctx)
	s.Require().NoError(err)
	return game.ID
}

func (s *IntegrationSuite) play(id model.GameID, coord, word string) model.PlayRecord {
	result, err := s.app.BoardService.PlayMove(s.ctx, id, coord, word)
	s.Require().NoError(err, "%s %s", coord, word)
	return result.Record
}

// Test: a whole game replayed move by move
func (s *IntegrationSuite) TestReplayGame() {
	id := s.newGame()

	moves := []struct {
		coord string
		word  string
		score int
		words []string
		bingo bool
	}{
		{"8H", "HARPING", 78, []string{"HARPING"}, true},
		{"9G", "ZAX", 59, []string{"ZAX", "HA", "AX"}, false},
		{"N8", "(G)ARNETS", 20, []string{"GARNETS"}, false},
		{"14H", "SEQUIN(S)", 36, []string{"SEQUINS"}, false},
	}

	total := 0
	for _, m := range moves {
		s.app.MockClock.Advance(time.Minute)
		record := s.play(id, m.coord, m.word)
		total += m.score

		s.Equal(m.score, record.Score, m.word)
		s.Equal(m.words, record.Words, m.word)
		s.Equal(m.bingo, record.Bingo, m.word)
	}

	game, err := s.app.BoardService.GetGame(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(193, total)
	s.Equal(total, game.TotalScore)
	s.Equal(4, game.MoveCount())

	rows := game.Board.Rows()
	s.Equal("*******HARPING*", rows[7])
	s.Equal("******ZAX****A*", rows[8])
	s.Equal("*******SEQUINS*", rows[13])
	s.Equal(7+3+6+6, game.Board.TileCount())
}

// Test: a move forming an unknown cross word is rejected and leaves no trace
func (s *IntegrationSuite) TestInvalidCrossWordRejected() {
	id := s.newGame()
	s.play(id, "8H", "HARPING")

	preview, err := s.app.BoardService.PreviewMove(s.ctx, id, "O7", "AT")
	s.Require().NoError(err)
	s.Equal(48, preview.Total)
	s.Equal([]string{"HARPINGT"}, preview.InvalidWords)

	_, err = s.app.BoardService.PlayMove(s.ctx, id, "O7", "AT")
	s.ErrorIs(err, model.ErrInvalidWord)

	game, err := s.app.BoardService.GetGame(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(1, game.MoveCount())
	s.Equal(78, game.TotalScore)
	s.Equal(7, game.Board.TileCount())
}

// Test: preview and play agree, in both directions
func (s *IntegrationSuite) TestPreviewMatchesPlay() {
	id := s.newGame()
	s.play(id, "H8", "HARPING")

	preview, err := s.app.BoardService.PreviewMove(s.ctx, id, "I7", "ZAX")
	s.Require().NoError(err)
	s.Empty(preview.InvalidWords)

	record := s.play(id, "I7", "ZAX")
	s.Equal(59, record.Score)
	s.Equal(preview.Total, record.Score)
	s.Equal(preview.Words(), record.Words)
}

// Test: undoing every move returns to an empty board
func (s *IntegrationSuite) TestUndoEverything() {
	id := s.newGame()
	s.play(id, "8H", "HARPING")
	s.play(id, "9G", "ZAX")
	s.play(id, "N8", "(G)ARNETS")

	for i := 0; i < 3; i++ {
		_, _, err := s.app.BoardService.UndoLastMove(s.ctx, id)
		s.Require().NoError(err)
	}
	_, _, err := s.app.BoardService.UndoLastMove(s.ctx, id)
	s.ErrorIs(err, model.ErrNoMovesToUndo)

	game, err := s.app.BoardService.GetGame(s.ctx, id)
	s.Require().NoError(err)
	s.True(game.Board.Equal(model.NewBoard()))
	s.Zero(game.TotalScore)
}

// Test: the word list survives a restart through storage
func (s *IntegrationSuite) TestLexiconReloadsFromStorage() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("# test list\nharping\nzax\n\nha\n"), 0o600))

	s.Require().NoError(s.app.LexiconService.LoadFromFile(s.ctx, path))
	s.Equal(3, s.app.LexiconService.WordCount())

	reloaded := lexicon.New(s.app.Storage, testutil.NopLogger())
	s.Require().NoError(reloaded.LoadFromStorage(s.ctx))
	s.True(reloaded.IsValidWord("harping"))
	s.False(reloaded.IsValidWord("garnets"))
}

func TestNewLoadsDictionary(t *testing.T) {
	app, err := New(Config{DictionaryPath: "../../data/words.txt", ValidateWords: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Close()

	if !app.LexiconService.IsValidWord("harping") {
		t.Error("expected HARPING in the bundled word list")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown storage", Config{StorageType: "sqlite"}},
		{"redis without config", Config{StorageType: StorageTypeRedis}},
		{"missing dictionary", Config{DictionaryPath: "does-not-exist.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
