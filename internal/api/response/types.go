package response

import (
	"strings"
	"time"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/scoring"
)

// Play is a recorded move in API responses
type Play struct {
	Coordinate string    `json:"coordinate"`
	Word       string    `json:"word"`
	Score      int       `json:"score"`
	Words      []string  `json:"words"`
	Bingo      bool      `json:"bingo"`
	PlayedAt   time.Time `json:"played_at"`
}

// PlayFromModel converts model.PlayRecord
func PlayFromModel(r model.PlayRecord) Play {
	return Play{
		Coordinate: r.Coordinate.String(),
		Word:       r.Word,
		Score:      r.Score,
		Words:      r.Words,
		Bingo:      r.Bingo,
		PlayedAt:   r.PlayedAt,
	}
}

// Game represents a game in API responses. Rows hold one string per board
// row: '*' for an empty cell, lowercase for a blank.
type Game struct {
	ID         string    `json:"id"`
	Rows       []string  `json:"rows"`
	History    []Play    `json:"history"`
	TotalScore int       `json:"total_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GameFromModel converts model.Game
func GameFromModel(g *model.Game) Game {
	history := make([]Play, len(g.History))
	for i, r := range g.History {
		history[i] = PlayFromModel(r)
	}
	return Game{
		ID:         string(g.ID),
		Rows:       g.Board.Rows(),
		History:    history,
		TotalScore: g.TotalScore,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

// GameSummary is a game in list responses
type GameSummary struct {
	ID         string    `json:"id"`
	MoveCount  int       `json:"move_count"`
	TotalScore int       `json:"total_score"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(g model.GameSummary) GameSummary {
	return GameSummary{
		ID:         string(g.ID),
		MoveCount:  g.MoveCount,
		TotalScore: g.TotalScore,
		UpdatedAt:  g.UpdatedAt,
	}
}

// GameList is the response for listing games
type GameList struct {
	Games []GameSummary `json:"games"`
}

// WordScore is one word formed by a move
type WordScore struct {
	Word  string `json:"word"`
	Start string `json:"start"`
	Score int    `json:"score"`
}

func wordScoreFromModel(w model.WordScore) WordScore {
	return WordScore{Word: w.Word, Start: w.Start.String(), Score: w.Score}
}

// Evaluation is the score breakdown of a move
type Evaluation struct {
	Main         WordScore   `json:"main"`
	Cross        []WordScore `json:"cross"`
	Bingo        bool        `json:"bingo"`
	Total        int         `json:"total"`
	InvalidWords []string    `json:"invalid_words"`
}

// EvaluationFromResult converts a scoring.Result
func EvaluationFromResult(r *scoring.Result) Evaluation {
	cross := make([]WordScore, len(r.Cross))
	for i, w := range r.Cross {
		cross[i] = wordScoreFromModel(w)
	}
	invalid := r.InvalidWords
	if invalid == nil {
		invalid = []string{}
	}
	return Evaluation{
		Main:         wordScoreFromModel(r.Main),
		Cross:        cross,
		Bingo:        r.Bingo,
		Total:        r.Total,
		InvalidWords: invalid,
	}
}

// PlayResponse is the response after playing a move
type PlayResponse struct {
	Play       Play       `json:"play"`
	Evaluation Evaluation `json:"evaluation"`
	Game       Game       `json:"game"`
}

// UndoResponse is the response after undoing a move
type UndoResponse struct {
	Undone Play `json:"undone"`
	Game   Game `json:"game"`
}

// Rack is a drawn practice rack. Letters uses '?' for a blank.
type Rack struct {
	Letters string `json:"letters"`
	Values  []int  `json:"values"`
}

// RackFromTiles converts drawn tiles
func RackFromTiles(tiles []model.Tile) Rack {
	var sb strings.Builder
	values := make([]int, len(tiles))
	for i, t := range tiles {
		sb.WriteString(t.String())
		values[i] = t.Value()
	}
	return Rack{Letters: sb.String(), Values: values}
}

// WordCheck is the response for a single word lookup
type WordCheck struct {
	Word  string `json:"word"`
	Valid bool   `json:"valid"`
}

// WordList is the response for anagram and pattern queries
type WordList struct {
	Query string   `json:"query"`
	Words []string `json:"words"`
	Count int      `json:"count"`
}

// NewWordList builds a WordList, never encoding a null list
func NewWordList(query string, words []string) WordList {
	if words == nil {
		words = []string{}
	}
	return WordList{Query: query, Words: words, Count: len(words)}
}

// Hooks is the response for a hook query
type Hooks struct {
	Word  string `json:"word"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Health is the response for the health check
type Health struct {
	Status          string `json:"status"`
	DictionaryWords int    `json:"dictionary_words"`
}
