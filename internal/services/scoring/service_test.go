package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/lexicon"
	"github.com/C0deSamurai/verdant-ecstasy/internal/storage/memory"
	"github.com/C0deSamurai/verdant-ecstasy/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	lexicon *lexicon.Service
	service *Service
	board   *model.Board
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.lexicon = lexicon.New(memory.New(), testutil.NopLogger())
	s.service = New(s.lexicon)
	s.board = model.NewBoard()
}

func (s *ServiceSuite) loadDictionary(words ...string) {
	s.Require().NoError(s.lexicon.LoadWords(words))
}

// fixedFinder returns the same candidate list for any rack
type fixedFinder struct {
	moves []model.Move
	racks [][]model.Tile
}

func (f *fixedFinder) FindAllMoves(rack []model.Tile, board *model.Board) []model.Move {
	f.racks = append(f.racks, rack)
	return f.moves
}

func (s *ServiceSuite) TestEvaluateWithoutDictionary() {
	result, err := s.service.Evaluate(s.board, model.MustMove("8H HARPING"))
	s.Require().NoError(err)

	s.Equal(78, result.Total)
	s.True(result.Bingo)
	s.True(result.Valid())
}

func (s *ServiceSuite) TestEvaluateValidWords() {
	s.loadDictionary("harping", "zax", "ha", "ax")
	s.Require().NoError(s.board.Place(model.MustMove("8H HARPING")))

	result, err := s.service.Evaluate(s.board, model.MustMove("9G ZAX"))
	s.Require().NoError(err)

	s.Equal(59, result.Total)
	s.Empty(result.InvalidWords)
	s.True(result.Valid())
}

func (s *ServiceSuite) TestEvaluateReportsInvalidCrossWords() {
	s.loadDictionary("harping", "zax")
	s.Require().NoError(s.board.Place(model.MustMove("8H HARPING")))

	result, err := s.service.Evaluate(s.board, model.MustMove("9G ZAX"))
	s.Require().NoError(err)

	s.Equal([]string{"HA", "AX"}, result.InvalidWords)
	s.False(result.Valid())
	s.Equal(59, result.Total)
}

func (s *ServiceSuite) TestEvaluateIllegalMove() {
	_, err := s.service.Evaluate(s.board, model.MustMove("8J HARPING"))
	s.ErrorIs(err, model.ErrIllegalMove)
}

func (s *ServiceSuite) TestEvaluateLeavesBoardUnchanged() {
	before := s.board.Clone()

	_, err := s.service.Evaluate(s.board, model.MustMove("8H HARPING"))
	s.Require().NoError(err)

	s.True(s.board.Equal(before))
}

func (s *ServiceSuite) TestScoreMovesRanksAndDropsIllegal() {
	moves := []model.Move{
		model.MustMove("8H HARPING"),
		model.MustMove("8J HARPING"),
		model.MustMove("8A HARPING"),
		model.MustMove("8H (H)AT"),
		model.MustMove("8G AX"),
	}

	ranked := s.service.ScoreMoves(s.board, moves)

	s.Require().Len(ranked, 3)
	s.Equal("8A HARPING", ranked[0].Move.String())
	s.Equal(98, ranked[0].Score)
	s.Equal("8H HARPING", ranked[1].Move.String())
	s.Equal(78, ranked[1].Score)
	s.Equal("8G AX", ranked[2].Move.String())
	s.Equal(0, s.board.TileCount())
}

func (s *ServiceSuite) TestScoreMovesKeepsOrderOnTies() {
	ranked := s.service.ScoreMoves(s.board, []model.Move{
		model.MustMove("H8 HARPING"),
		model.MustMove("8H HARPING"),
	})

	s.Require().Len(ranked, 2)
	s.Equal(ranked[0].Score, ranked[1].Score)
	s.Equal("H8 HARPING", ranked[0].Move.String())
}

func (s *ServiceSuite) TestBestMoves() {
	finder := &fixedFinder{moves: []model.Move{
		model.MustMove("8G AX"),
		model.MustMove("8A HARPING"),
		model.MustMove("8H HARPING"),
	}}
	rack, err := model.TilesFromRack("HARPING")
	s.Require().NoError(err)

	best := s.service.BestMoves(s.board, finder, rack, 2)

	s.Require().Len(best, 2)
	s.Equal(98, best[0].Score)
	s.Equal(78, best[1].Score)
	s.Require().Len(finder.racks, 1)
	s.Len(finder.racks[0], 7)

	s.Len(s.service.BestMoves(s.board, finder, rack, 0), 3)
}
