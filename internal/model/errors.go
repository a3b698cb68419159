package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Coordinate and notation errors
	ErrOutOfBounds   = errors.New("coordinate out of bounds")
	ErrInvalidSyntax = errors.New("invalid syntax")
	ErrMalformedMove = fmt.Errorf("malformed move: %w", ErrInvalidSyntax)

	// Tile errors
	ErrInvalidTileKind = errors.New("invalid tile kind")
	ErrNotBlank        = errors.New("tile is not a blank")
	ErrInvalidFace     = errors.New("invalid tile face")
	ErrFaceAlreadySet  = fmt.Errorf("blank face already assigned: %w", ErrInvalidFace)

	// Placement errors
	ErrIllegalMove = errors.New("illegal move")

	// Game errors
	ErrGameNotFound  = errors.New("game not found")
	ErrNoMovesToUndo = errors.New("no moves to undo")
	ErrInvalidWord   = errors.New("word not in dictionary")
	ErrInvalidRack   = errors.New("invalid rack size")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
