package model

// MoveFinder enumerates candidate moves for a rack. Implementations may only
// use the public Board API (Get, IsLegal, Place, Remove, Score).
type MoveFinder interface {
	FindAllMoves(rack []Tile, board *Board) []Move
}
