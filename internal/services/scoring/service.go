package scoring

import (
	"sort"

	"github.com/samber/lo"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/lexicon"
)

// Service scores moves and checks the words they form
type Service struct {
	lexicon *lexicon.Service
}

// New creates a new ScoringService
func New(lexicon *lexicon.Service) *Service {
	return &Service{
		lexicon: lexicon,
	}
}

// Result is a scored move together with any words the lexicon rejected
type Result struct {
	model.Evaluation
	InvalidWords []string `json:"invalid_words"`
}

// Valid returns true if every word formed is in the lexicon
func (r *Result) Valid() bool {
	return len(r.InvalidWords) == 0
}

// Evaluate scores a move on board without changing it. Words are only
// checked once the lexicon is loaded.
func (s *Service) Evaluate(board *model.Board, move model.Move) (*Result, error) {
	e, err := board.Evaluate(move)
	if err != nil {
		return nil, err
	}

	result := &Result{Evaluation: e, InvalidWords: []string{}}
	if s.lexicon.IsLoaded() {
		result.InvalidWords = s.lexicon.InvalidWords(e.Words())
	}
	return result, nil
}

// RankedMove is a candidate move and its score
type RankedMove struct {
	Move  model.Move
	Score int
}

// ScoreMoves scores every legal candidate and returns them highest first.
// Illegal candidates are dropped; ties keep their input order.
func (s *Service) ScoreMoves(board *model.Board, moves []model.Move) []RankedMove {
	ranked := lo.FilterMap(moves, func(m model.Move, _ int) (RankedMove, bool) {
		score, err := board.Score(m)
		if err != nil {
			return RankedMove{}, false
		}
		return RankedMove{Move: m, Score: score}, true
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// BestMoves asks finder for every move the rack allows and returns the top
// limit of them. A limit of zero or less returns them all.
func (s *Service) BestMoves(board *model.Board, finder model.MoveFinder, rack []model.Tile, limit int) []RankedMove {
	ranked := s.ScoreMoves(board, finder.FindAllMoves(rack, board))
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// ServiceInterface is the scoring API used by other services
type ServiceInterface interface {
	Evaluate(board *model.Board, move model.Move) (*Result, error)
	ScoreMoves(board *model.Board, moves []model.Move) []RankedMove
	BestMoves(board *model.Board, finder model.MoveFinder, rack []model.Tile, limit int) []RankedMove
}

var _ ServiceInterface = (*Service)(nil)
