package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// EmptyCellMarker marks an empty cell in the text form of a board
const EmptyCellMarker = '*'

// Board is the 15x15 grid of tiles. Cells hold tiles by value; the zero Tile
// marks an empty cell. The bonus layout is shared by every board.
//
// A Board has no internal locking. Place, Remove and Score all mutate the
// grid, so callers sharing a board must serialise access.
type Board struct {
	cells [BoardSize][BoardSize]Tile
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{}
}

// Get returns the tile at c, or false if the cell is empty
func (b *Board) Get(c Coordinate) (Tile, bool) {
	t := b.cells[c.row][c.col]
	return t, !t.IsZero()
}

// TryGet is Get for the result of a Try* step: an absent coordinate reads
// as an empty cell. It is meant to be called as b.TryGet(c.TryUp()).
func (b *Board) TryGet(c Coordinate, ok bool) (Tile, bool) {
	if !ok {
		return Tile{}, false
	}
	return b.Get(c)
}

// IsEmpty returns true if the cell at c has no tile
func (b *Board) IsEmpty(c Coordinate) bool {
	return b.cells[c.row][c.col].IsZero()
}

// Bonus returns the bonus printed on the cell at c
func (b *Board) Bonus(c Coordinate) Bonus {
	return BonusAt(c)
}

// LetterMultiplier returns the letter multiplier of the cell at c
func (b *Board) LetterMultiplier(c Coordinate) int {
	return BonusAt(c).LetterMultiplier()
}

// WordMultiplier returns the word multiplier of the cell at c
func (b *Board) WordMultiplier(c Coordinate) int {
	return BonusAt(c).WordMultiplier()
}

// TileCount returns the number of tiles on the board
func (b *Board) TileCount() int {
	n := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if !b.cells[row][col].IsZero() {
				n++
			}
		}
	}
	return n
}

// Unplayed returns the tiles of a full set that are not on the board, sorted.
// Blanks on the board are matched by kind, whatever face they show.
func (b *Board) Unplayed() []Tile {
	remaining := make(map[rune]int, len(Distribution))
	for kind, n := range Distribution {
		remaining[kind] = n
	}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if t := b.cells[row][col]; !t.IsZero() {
				remaining[t.kind]--
			}
		}
	}

	var tiles []Tile
	for kind, n := range remaining {
		for i := 0; i < n; i++ {
			tiles = append(tiles, Tile{kind: kind, face: kind})
		}
	}
	SortTiles(tiles)
	return tiles
}

// CheckLegal reports why a move cannot be placed, or nil if it can. Placed
// slots need an empty cell, Existing slots need an occupied one, and every
// slot must be on the board.
func (b *Board) CheckLegal(m Move) error {
	if m.Len() == 0 {
		return fmt.Errorf("%w: move has no tiles", ErrIllegalMove)
	}
	coords, err := m.Coordinates()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	for i, c := range coords {
		if t := m.slots[i].Tile; m.IsPlaced(i) && (t.IsZero() || t.Face() == BlankKind) {
			return fmt.Errorf("%w: slot %d has no letter to place on %s", ErrIllegalMove, i, c)
		}
		empty := b.IsEmpty(c)
		if m.IsPlaced(i) && !empty {
			return fmt.Errorf("%w: %s is already occupied", ErrIllegalMove, c)
		}
		if !m.IsPlaced(i) && empty {
			return fmt.Errorf("%w: no tile on %s to play through", ErrIllegalMove, c)
		}
	}
	return nil
}

// IsLegal returns true if the move can be placed
func (b *Board) IsLegal(m Move) bool {
	return b.CheckLegal(m) == nil
}

// Place puts every Placed slot of the move on the board. An illegal move is
// rejected with ErrIllegalMove and the board is left unchanged.
func (b *Board) Place(m Move) error {
	if err := b.CheckLegal(m); err != nil {
		return err
	}
	coords, _ := m.Coordinates()
	for i, c := range coords {
		if m.IsPlaced(i) {
			b.cells[c.row][c.col] = m.slots[i].Tile
		}
	}
	return nil
}

// Remove clears every cell the move placed a tile on. Existing slots are left
// alone, and slots that would fall off the board are ignored.
func (b *Board) Remove(m Move) {
	c, ok := m.anchor, true
	for i := 0; i < m.Len() && ok; i++ {
		if m.IsPlaced(i) {
			b.cells[c.row][c.col] = Tile{}
		}
		c, ok = c.TryStep()
	}
}

// IsPresent returns true if the move is already on the board: every Placed
// slot's cell holds that slot's tile and every Existing slot's cell is
// occupied. Existing slots are held to the same rule as in CheckLegal, so the
// letter they carry does not have to match the board.
func (b *Board) IsPresent(m Move) bool {
	if m.Len() == 0 {
		return false
	}
	c, ok := m.anchor, true
	for i := 0; i < m.Len(); i++ {
		if !ok {
			return false
		}
		t, occupied := b.Get(c)
		if !occupied || (m.IsPlaced(i) && t != m.slots[i].Tile) {
			return false
		}
		c, ok = c.TryStep()
	}
	return true
}

// Flip returns a copy of the board reflected about the main diagonal: the
// tile at (row, col) moves to (col, row).
func (b *Board) Flip() *Board {
	flipped := &Board{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			flipped.cells[col][row] = b.cells[row][col]
		}
	}
	return flipped
}

// Clone returns a copy of the board
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Equal returns true if both boards hold the same tiles
func (b *Board) Equal(other *Board) bool {
	return b.cells == other.cells
}

// Rows returns one string per row, '*' for empty cells and lowercase for
// blanks
func (b *Board) Rows() []string {
	rows := make([]string, BoardSize)
	for row := 0; row < BoardSize; row++ {
		var sb strings.Builder
		for col := 0; col < BoardSize; col++ {
			t := b.cells[row][col]
			if t.IsZero() {
				sb.WriteRune(EmptyCellMarker)
			} else {
				sb.WriteString(t.String())
			}
		}
		rows[row] = sb.String()
	}
	return rows
}

// String renders the board one row per line
func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n") + "\n"
}

// ParseBoard reads the text form produced by String
func ParseBoard(text string) (*Board, error) {
	lines := strings.Fields(text)
	if len(lines) != BoardSize {
		return nil, fmt.Errorf("%w: board has %d rows, want %d", ErrInvalidSyntax, len(lines), BoardSize)
	}
	return boardFromRows(lines)
}

func boardFromRows(rows []string) (*Board, error) {
	if len(rows) != BoardSize {
		return nil, fmt.Errorf("%w: board has %d rows, want %d", ErrInvalidSyntax, len(rows), BoardSize)
	}
	b := &Board{}
	for row, line := range rows {
		if len(line) != BoardSize {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSyntax, row+1, len(line), BoardSize)
		}
		for col, r := range line {
			switch {
			case r == EmptyCellMarker:
			case r >= 'A' && r <= 'Z':
				b.cells[row][col] = Tile{kind: r, face: r}
			case r >= 'a' && r <= 'z':
				b.cells[row][col] = Tile{kind: BlankKind, face: unicode.ToUpper(r)}
			default:
				return nil, fmt.Errorf("%w: unexpected %q in row %d", ErrInvalidSyntax, r, row+1)
			}
		}
	}
	return b, nil
}

// MarshalJSON encodes the board as its row strings
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Rows())
}

// UnmarshalJSON decodes the row strings written by MarshalJSON
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := boardFromRows(rows)
	if err != nil {
		return err
	}
	b.cells = parsed.cells
	return nil
}
