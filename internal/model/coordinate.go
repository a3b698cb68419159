package model

import (
	"fmt"
	"regexp"
	"strconv"
)

// BoardSize is the number of rows and columns on the board
const BoardSize = 15

// columnLetters maps column indices to their notation letter
const columnLetters = "ABCDEFGHIJKLMNO"

// Direction is the direction a word is played in
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "invalid"
	}
}

// Flip returns the other direction
func (d Direction) Flip() Direction {
	if d == Horizontal {
		return Vertical
	}
	return Horizontal
}

var (
	verticalNotation   = regexp.MustCompile(`^([A-Z])([0-9]+)$`)
	horizontalNotation = regexp.MustCompile(`^([0-9]+)([A-Z])$`)
)

// Coordinate is a cell on the board together with the direction of a play
// anchored there. Letter-first notation ("A8") is vertical, number-first
// notation ("8A") is horizontal. Column is the letter, row is the number.
type Coordinate struct {
	col int
	row int
	dir Direction
}

// NewCoordinate creates a coordinate from 0-indexed column and row
func NewCoordinate(col, row int, dir Direction) (Coordinate, error) {
	if col < 0 || col >= BoardSize || row < 0 || row >= BoardSize {
		return Coordinate{}, fmt.Errorf("%w: col %d row %d", ErrOutOfBounds, col, row)
	}
	if dir != Horizontal && dir != Vertical {
		return Coordinate{}, fmt.Errorf("%w: direction %d", ErrOutOfBounds, dir)
	}
	return Coordinate{col: col, row: row, dir: dir}, nil
}

// MustCoordinate is like ParseCoordinate but panics on invalid notation
func MustCoordinate(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCoordinate parses "A8" (vertical) or "8A" (horizontal) notation
func ParseCoordinate(s string) (Coordinate, error) {
	var letter, number string
	var dir Direction
	if m := verticalNotation.FindStringSubmatch(s); m != nil {
		letter, number, dir = m[1], m[2], Vertical
	} else if m := horizontalNotation.FindStringSubmatch(s); m != nil {
		number, letter, dir = m[1], m[2], Horizontal
	} else {
		return Coordinate{}, fmt.Errorf("%w: coordinate %q", ErrInvalidSyntax, s)
	}

	if len(number) > 1 && number[0] == '0' {
		return Coordinate{}, fmt.Errorf("%w: coordinate %q has a leading zero", ErrInvalidSyntax, s)
	}
	row, err := strconv.Atoi(number)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: coordinate %q", ErrInvalidSyntax, s)
	}
	col := int(letter[0] - 'A')

	c, err := NewCoordinate(col, row-1, dir)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: coordinate %q", ErrOutOfBounds, s)
	}
	return c, nil
}

// String returns the coordinate in board notation
func (c Coordinate) String() string {
	if c.dir == Horizontal {
		return fmt.Sprintf("%d%c", c.row+1, columnLetters[c.col])
	}
	return fmt.Sprintf("%c%d", columnLetters[c.col], c.row+1)
}

// Col returns the 0-indexed column
func (c Coordinate) Col() int {
	return c.col
}

// Row returns the 0-indexed row
func (c Coordinate) Row() int {
	return c.row
}

// Direction returns the play direction
func (c Coordinate) Direction() Direction {
	return c.dir
}

// IsHorizontal returns true for an across play
func (c Coordinate) IsHorizontal() bool {
	return c.dir == Horizontal
}

// Flip reflects the coordinate about the main diagonal: row and column are
// swapped and the direction is inverted.
func (c Coordinate) Flip() Coordinate {
	return Coordinate{col: c.row, row: c.col, dir: c.dir.Flip()}
}

// WithDirection returns the same cell with the given direction
func (c Coordinate) WithDirection(dir Direction) Coordinate {
	return Coordinate{col: c.col, row: c.row, dir: dir}
}

func (c Coordinate) offset(dCol, dRow int) (Coordinate, error) {
	next, err := NewCoordinate(c.col+dCol, c.row+dRow, c.dir)
	if err != nil {
		return Coordinate{}, fmt.Errorf("stepping from %s: %w", c, err)
	}
	return next, nil
}

func (c Coordinate) tryOffset(dCol, dRow int) (Coordinate, bool) {
	col, row := c.col+dCol, c.row+dRow
	if col < 0 || col >= BoardSize || row < 0 || row >= BoardSize {
		return Coordinate{}, false
	}
	return Coordinate{col: col, row: row, dir: c.dir}, true
}

func (c Coordinate) stepDelta() (int, int) {
	if c.dir == Horizontal {
		return 1, 0
	}
	return 0, 1
}

// Step moves one cell along the coordinate's direction
func (c Coordinate) Step() (Coordinate, error) {
	return c.offset(c.stepDelta())
}

// TryStep is like Step but reports false instead of failing at the edge
func (c Coordinate) TryStep() (Coordinate, bool) {
	return c.tryOffset(c.stepDelta())
}

// Up moves one row up, keeping the direction
func (c Coordinate) Up() (Coordinate, error) {
	return c.offset(0, -1)
}

// Down moves one row down, keeping the direction
func (c Coordinate) Down() (Coordinate, error) {
	return c.offset(0, 1)
}

// Left moves one column left, keeping the direction
func (c Coordinate) Left() (Coordinate, error) {
	return c.offset(-1, 0)
}

// Right moves one column right, keeping the direction
func (c Coordinate) Right() (Coordinate, error) {
	return c.offset(1, 0)
}

// TryUp is the total form of Up
func (c Coordinate) TryUp() (Coordinate, bool) {
	return c.tryOffset(0, -1)
}

// TryDown is the total form of Down
func (c Coordinate) TryDown() (Coordinate, bool) {
	return c.tryOffset(0, 1)
}

// TryLeft is the total form of Left
func (c Coordinate) TryLeft() (Coordinate, bool) {
	return c.tryOffset(-1, 0)
}

// TryRight is the total form of Right
func (c Coordinate) TryRight() (Coordinate, bool) {
	return c.tryOffset(1, 0)
}

// MarshalText encodes the coordinate in board notation
func (c Coordinate) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes board notation
func (c *Coordinate) UnmarshalText(text []byte) error {
	parsed, err := ParseCoordinate(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
