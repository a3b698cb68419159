package model

import (
	"fmt"
	"sort"
	"unicode"
)

// BlankKind is the kind of a blank tile, and the face of a blank that has
// not been assigned a letter yet
const BlankKind = '?'

// Alphabet lists every letter a tile can show
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var tileValues = map[rune]int{
	BlankKind: 0,
	'A': 1, 'E': 1, 'I': 1, 'O': 1, 'U': 1, 'L': 1, 'N': 1, 'S': 1, 'T': 1, 'R': 1,
	'D': 2, 'G': 2,
	'B': 3, 'C': 3, 'M': 3, 'P': 3,
	'F': 4, 'H': 4, 'V': 4, 'W': 4, 'Y': 4,
	'K': 5,
	'J': 8, 'X': 8,
	'Q': 10, 'Z': 10,
}

// Distribution is the number of each tile kind in a standard set
var Distribution = map[rune]int{
	'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3, 'H': 2, 'I': 9,
	'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6, 'O': 8, 'P': 2, 'Q': 1, 'R': 6,
	'S': 4, 'T': 6, 'U': 4, 'V': 2, 'W': 2, 'X': 1, 'Y': 2, 'Z': 1,
	BlankKind: 2,
}

// Tile is a single letter tile. The zero value is not a valid tile and is
// used by the board to mark an empty cell.
type Tile struct {
	kind rune
	face rune
}

// NewTile creates a tile of the given kind (A-Z or '?' for a blank)
func NewTile(kind rune) (Tile, error) {
	if _, ok := tileValues[kind]; !ok {
		return Tile{}, fmt.Errorf("%w: %q", ErrInvalidTileKind, kind)
	}
	return Tile{kind: kind, face: kind}, nil
}

// NewBlank creates a blank tile already showing the given face
func NewBlank(face rune) (Tile, error) {
	t := Tile{kind: BlankKind, face: BlankKind}
	if err := t.SetFace(face); err != nil {
		return Tile{}, err
	}
	return t, nil
}

// MustTile is like NewTile but panics on an invalid kind
func MustTile(kind rune) Tile {
	t, err := NewTile(kind)
	if err != nil {
		panic(err)
	}
	return t
}

// SetFace assigns the letter shown by a blank. It can only be done once.
func (t *Tile) SetFace(face rune) error {
	if t.kind != BlankKind {
		return ErrNotBlank
	}
	if face < 'A' || face > 'Z' {
		return fmt.Errorf("%w: %q", ErrInvalidFace, face)
	}
	if t.face != BlankKind {
		return ErrFaceAlreadySet
	}
	t.face = face
	return nil
}

// Kind returns the tile kind, '?' for blanks
func (t Tile) Kind() rune {
	return t.kind
}

// Face returns the letter the tile displays
func (t Tile) Face() rune {
	return t.face
}

// Value returns the point value of the tile
func (t Tile) Value() int {
	return tileValues[t.kind]
}

// IsBlank returns true for blank tiles
func (t Tile) IsBlank() bool {
	return t.kind == BlankKind
}

// IsZero returns true for the zero Tile, which is not a real tile
func (t Tile) IsZero() bool {
	return t.kind == 0
}

// String returns the face, lowercase for blanks
func (t Tile) String() string {
	if t.IsZero() {
		return ""
	}
	if t.IsBlank() && t.face != BlankKind {
		return string(unicode.ToLower(t.face))
	}
	return string(t.face)
}

// Less orders tiles by face, with blanks after letter tiles of the same face
func (t Tile) Less(other Tile) bool {
	if t.face != other.face {
		return t.face < other.face
	}
	return !t.IsBlank() && other.IsBlank()
}

// SortTiles sorts tiles in place using Tile.Less
func SortTiles(tiles []Tile) {
	sort.SliceStable(tiles, func(i, j int) bool {
		return tiles[i].Less(tiles[j])
	})
}

// TilesFromRack builds tiles from rack letters, '?' being a blank
func TilesFromRack(letters string) ([]Tile, error) {
	tiles := make([]Tile, 0, len(letters))
	for _, r := range letters {
		t, err := NewTile(unicode.ToUpper(r))
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// FullTileSet returns every tile of a standard set, sorted
func FullTileSet() []Tile {
	var tiles []Tile
	for kind, count := range Distribution {
		for i := 0; i < count; i++ {
			tiles = append(tiles, Tile{kind: kind, face: kind})
		}
	}
	SortTiles(tiles)
	return tiles
}
