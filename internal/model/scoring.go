package model

import (
	"strings"

	"github.com/samber/lo"
)

// BingoBonus is awarded for playing exactly BingoTiles tiles in one move
const (
	BingoBonus = 50
	BingoTiles = 7
)

// WordScore is a word formed by a move and the points it earned
type WordScore struct {
	Word  string     `json:"word"`
	Start Coordinate `json:"start"`
	Score int        `json:"score"`
}

// Evaluation is the breakdown of a move's score
type Evaluation struct {
	Main  WordScore   `json:"main"`
	Cross []WordScore `json:"cross,omitempty"`
	Bingo bool        `json:"bingo"`
	Total int         `json:"total"`
}

// Words returns the main word followed by every cross word
func (e Evaluation) Words() []string {
	words := []string{e.Main.Word}
	for _, c := range e.Cross {
		words = append(words, c.Word)
	}
	return words
}

// Score returns the points the move earns, including cross words and the
// bingo bonus. The board is left exactly as it was found: a move that is not
// already on the board is placed for the duration of the call only.
func (b *Board) Score(m Move) (int, error) {
	e, err := b.Evaluate(m)
	if err != nil {
		return 0, err
	}
	return e.Total, nil
}

// Words returns every word the move forms, main word first
func (b *Board) Words(m Move) ([]string, error) {
	e, err := b.Evaluate(m)
	if err != nil {
		return nil, err
	}
	return e.Words(), nil
}

// Evaluate scores a move and reports the words it forms. Vertical moves are
// scored by reflecting both board and move so that only the horizontal case
// is ever computed.
func (b *Board) Evaluate(m Move) (Evaluation, error) {
	if m.Direction() == Vertical {
		e, err := b.Flip().Evaluate(m.Flip())
		if err != nil {
			return Evaluation{}, err
		}
		return e.flipped(), nil
	}

	if !b.IsPresent(m) {
		if err := b.Place(m); err != nil {
			return Evaluation{}, err
		}
		defer b.Remove(m)
	}

	e := Evaluation{Main: b.countMove(m)}
	e.Cross = b.crossPlays(m)
	e.Bingo = m.PlacedCount() == BingoTiles
	e.Total = e.Main.Score + lo.SumBy(e.Cross, func(w WordScore) int { return w.Score })
	if e.Bingo {
		e.Total += BingoBonus
	}
	return e, nil
}

// countMove scores the main word of a horizontal move already on the board.
// Letter bonuses apply to newly placed tiles only; word bonuses multiply the
// whole sum once.
func (b *Board) countMove(m Move) WordScore {
	var sb strings.Builder
	sum, wordMultiplier := 0, 1
	c, ok := m.anchor, true
	for i := 0; i < m.Len() && ok; i++ {
		t, _ := b.Get(c)
		sb.WriteRune(t.Face())
		if m.IsPlaced(i) {
			sum += t.Value() * b.LetterMultiplier(c)
			wordMultiplier *= b.WordMultiplier(c)
		} else {
			sum += t.Value()
		}
		c, ok = c.TryStep()
	}
	return WordScore{Word: sb.String(), Start: m.anchor, Score: sum * wordMultiplier}
}

// crossPlays scores the vertical words formed through each newly placed tile
// of a horizontal move already on the board.
func (b *Board) crossPlays(m Move) []WordScore {
	var words []WordScore
	c, ok := m.anchor, true
	for i := 0; i < m.Len() && ok; i++ {
		if m.IsPlaced(i) {
			if w, found := b.crossWord(c); found {
				words = append(words, w)
			}
		}
		c, ok = c.TryStep()
	}
	return words
}

// crossWord walks up and down from anchor. Neighbouring tiles were placed on
// earlier turns, so they count at face value; only the anchor cell's bonuses
// apply.
func (b *Board) crossWord(anchor Coordinate) (WordScore, bool) {
	_, above := b.TryGet(anchor.TryUp())
	_, below := b.TryGet(anchor.TryDown())
	if !above && !below {
		return WordScore{}, false
	}

	t, _ := b.Get(anchor)
	sum := t.Value() * b.LetterMultiplier(anchor)

	top := anchor
	var prefix []rune
	for c, ok := anchor.TryUp(); ok; c, ok = c.TryUp() {
		n, occupied := b.Get(c)
		if !occupied {
			break
		}
		sum += n.Value()
		prefix = append(prefix, n.Face())
		top = c
	}

	var sb strings.Builder
	for i := len(prefix) - 1; i >= 0; i-- {
		sb.WriteRune(prefix[i])
	}
	sb.WriteRune(t.Face())

	for c, ok := anchor.TryDown(); ok; c, ok = c.TryDown() {
		n, occupied := b.Get(c)
		if !occupied {
			break
		}
		sum += n.Value()
		sb.WriteRune(n.Face())
	}

	return WordScore{
		Word:  sb.String(),
		Start: top.WithDirection(Vertical),
		Score: sum * b.WordMultiplier(anchor),
	}, true
}

// flipped maps the start coordinates of an evaluation computed on a flipped
// board back to the original orientation.
func (e Evaluation) flipped() Evaluation {
	out := e
	out.Main.Start = e.Main.Start.Flip()
	out.Cross = lo.Map(e.Cross, func(w WordScore, _ int) WordScore {
		w.Start = w.Start.Flip()
		return w
	})
	return out
}
