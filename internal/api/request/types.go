package request

// MoveRequest is the request body for playing or previewing a move
type MoveRequest struct {
	// Coordinate is the anchor in board notation, e.g. "8H" or "H8"
	Coordinate string `json:"coordinate"`
	// Word uses move syntax, e.g. "PORt(MANTEaU)X"
	Word string `json:"word"`
}
