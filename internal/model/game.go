package model

import "time"

// GameID uniquely identifies a stored game
type GameID string

// PlayRecord is one accepted move in a game's history
type PlayRecord struct {
	Coordinate Coordinate `json:"coordinate"`
	Word       string     `json:"word"`
	Score      int        `json:"score"`
	Words      []string   `json:"words"`
	Bingo      bool       `json:"bingo,omitempty"`
	PlayedAt   time.Time  `json:"played_at"`
}

// Move rebuilds the move this record was created from
func (r PlayRecord) Move() (Move, error) {
	return ParseMove(r.Word, r.Coordinate)
}

// Game is a board together with the moves played on it
type Game struct {
	ID         GameID       `json:"id"`
	Board      *Board       `json:"board"`
	History    []PlayRecord `json:"history"`
	TotalScore int          `json:"total_score"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// NewGame creates a game with an empty board
func NewGame(id GameID, now time.Time) *Game {
	return &Game{
		ID:        id,
		Board:     NewBoard(),
		History:   []PlayRecord{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MoveCount returns the number of moves played
func (g *Game) MoveCount() int {
	return len(g.History)
}

// LastMove returns the most recent play, or false if none have been made
func (g *Game) LastMove() (PlayRecord, bool) {
	if len(g.History) == 0 {
		return PlayRecord{}, false
	}
	return g.History[len(g.History)-1], true
}

// GameSummary is the listing form of a game
type GameSummary struct {
	ID         GameID    `json:"id"`
	MoveCount  int       `json:"move_count"`
	TotalScore int       `json:"total_score"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Summary returns the listing form of the game
func (g *Game) Summary() GameSummary {
	return GameSummary{
		ID:         g.ID,
		MoveCount:  g.MoveCount(),
		TotalScore: g.TotalScore,
		UpdatedAt:  g.UpdatedAt,
	}
}
