package model

import (
	"fmt"
	"strings"
	"unicode"
)

// SlotKind tells whether a move slot puts a new tile down or plays through a
// tile already on the board
type SlotKind uint8

const (
	Placed SlotKind = iota
	Existing
)

// Slot is one cell of a move. For Existing slots the tile is the tile the
// move expects to find on the board; it is never written.
type Slot struct {
	Kind SlotKind
	Tile Tile
}

// PlacedSlot returns a slot placing t from the rack
func PlacedSlot(t Tile) Slot {
	return Slot{Kind: Placed, Tile: t}
}

// ExistingSlot returns a slot playing through t on the board
func ExistingSlot(t Tile) Slot {
	return Slot{Kind: Existing, Tile: t}
}

// Move is a single play: an anchor coordinate and the slots laid out from it
// in the anchor's direction
type Move struct {
	anchor Coordinate
	slots  []Slot
}

// NewMove creates a move from explicit slots
func NewMove(anchor Coordinate, slots []Slot) Move {
	s := make([]Slot, len(slots))
	copy(s, slots)
	return Move{anchor: anchor, slots: s}
}

// ParseMove parses move syntax such as "PORt(MANTEaU)X". Uppercase letters
// are rack tiles, lowercase letters are blanks, and parenthesised runs are
// tiles already on the board.
func ParseMove(word string, anchor Coordinate) (Move, error) {
	if word == "" {
		return Move{}, fmt.Errorf("%w: empty word", ErrMalformedMove)
	}

	var slots []Slot
	inRun := false
	runLen := 0
	for i, r := range word {
		switch {
		case r == '(':
			if inRun {
				return Move{}, fmt.Errorf("%w: nested '(' at %d in %q", ErrMalformedMove, i, word)
			}
			inRun, runLen = true, 0
		case r == ')':
			if !inRun {
				return Move{}, fmt.Errorf("%w: unbalanced ')' at %d in %q", ErrMalformedMove, i, word)
			}
			if runLen == 0 {
				return Move{}, fmt.Errorf("%w: empty parentheses in %q", ErrMalformedMove, word)
			}
			inRun = false
		case r >= 'A' && r <= 'Z':
			slots = append(slots, Slot{Kind: slotKind(inRun), Tile: Tile{kind: r, face: r}})
			runLen++
		case r >= 'a' && r <= 'z':
			slots = append(slots, Slot{Kind: slotKind(inRun), Tile: Tile{kind: BlankKind, face: unicode.ToUpper(r)}})
			runLen++
		default:
			return Move{}, fmt.Errorf("%w: unexpected %q in %q", ErrMalformedMove, r, word)
		}
	}
	if inRun {
		return Move{}, fmt.Errorf("%w: unbalanced '(' in %q", ErrMalformedMove, word)
	}
	return Move{anchor: anchor, slots: slots}, nil
}

// ParseNotation parses a move log entry such as "8H HARPING"
func ParseNotation(s string) (Move, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Move{}, fmt.Errorf("%w: move %q must be \"<coordinate> <word>\"", ErrInvalidSyntax, s)
	}
	coord, err := ParseCoordinate(fields[0])
	if err != nil {
		return Move{}, err
	}
	return ParseMove(fields[1], coord)
}

// MustMove is like ParseNotation but panics on error
func MustMove(s string) Move {
	m, err := ParseNotation(s)
	if err != nil {
		panic(err)
	}
	return m
}

func slotKind(existing bool) SlotKind {
	if existing {
		return Existing
	}
	return Placed
}

// Anchor returns the coordinate the move starts at
func (m Move) Anchor() Coordinate {
	return m.anchor
}

// Direction returns the play direction
func (m Move) Direction() Direction {
	return m.anchor.Direction()
}

// Len returns the number of slots, including tiles already on the board
func (m Move) Len() int {
	return len(m.slots)
}

// Slot returns the slot at index i
func (m Move) Slot(i int) Slot {
	return m.slots[i]
}

// Slots returns a copy of the slots in play order
func (m Move) Slots() []Slot {
	s := make([]Slot, len(m.slots))
	copy(s, m.slots)
	return s
}

// IsPlaced returns true if slot i puts a new tile on the board
func (m Move) IsPlaced(i int) bool {
	return m.slots[i].Kind == Placed
}

// PlacedCount returns the number of tiles the move takes from the rack
func (m Move) PlacedCount() int {
	n := 0
	for _, s := range m.slots {
		if s.Kind == Placed {
			n++
		}
	}
	return n
}

// PlacedTiles returns the tiles the move takes from the rack
func (m Move) PlacedTiles() []Tile {
	var tiles []Tile
	for _, s := range m.slots {
		if s.Kind == Placed {
			tiles = append(tiles, s.Tile)
		}
	}
	return tiles
}

// Coordinates returns the cell of every slot. It fails with ErrOutOfBounds
// when the move runs off the board.
func (m Move) Coordinates() ([]Coordinate, error) {
	coords := make([]Coordinate, 0, len(m.slots))
	c := m.anchor
	for i := range m.slots {
		if i > 0 {
			next, err := c.Step()
			if err != nil {
				return nil, fmt.Errorf("move %s: %w", m, err)
			}
			c = next
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// Word returns the faces of every slot as a plain uppercase word
func (m Move) Word() string {
	var sb strings.Builder
	for _, s := range m.slots {
		sb.WriteRune(s.Tile.Face())
	}
	return sb.String()
}

// Text renders the move syntax, merging adjacent existing slots into one
// parenthesised run
func (m Move) Text() string {
	var sb strings.Builder
	inRun := false
	for _, s := range m.slots {
		if s.Kind == Existing && !inRun {
			sb.WriteByte('(')
			inRun = true
		} else if s.Kind == Placed && inRun {
			sb.WriteByte(')')
			inRun = false
		}
		sb.WriteString(s.Tile.String())
	}
	if inRun {
		sb.WriteByte(')')
	}
	return sb.String()
}

// String renders the move as a log entry, e.g. "8H HARPING"
func (m Move) String() string {
	return m.anchor.String() + " " + m.Text()
}

// Flip returns the same move anchored at the reflected coordinate
func (m Move) Flip() Move {
	return NewMove(m.anchor.Flip(), m.slots)
}

// Equal compares anchor and slots
func (m Move) Equal(other Move) bool {
	if m.anchor != other.anchor || len(m.slots) != len(other.slots) {
		return false
	}
	for i := range m.slots {
		if m.slots[i] != other.slots[i] {
			return false
		}
	}
	return true
}
