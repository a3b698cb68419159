package model

// Bonus is the bonus printed on a board cell
type Bonus uint8

const (
	BonusNone Bonus = iota
	BonusDoubleLetter
	BonusDoubleWord
	BonusTripleLetter
	BonusTripleWord
)

func (b Bonus) String() string {
	switch b {
	case BonusDoubleLetter:
		return "DL"
	case BonusDoubleWord:
		return "DW"
	case BonusTripleLetter:
		return "TL"
	case BonusTripleWord:
		return "TW"
	default:
		return ""
	}
}

// LetterMultiplier returns 2 for DL, 3 for TL and 1 otherwise
func (b Bonus) LetterMultiplier() int {
	switch b {
	case BonusDoubleLetter:
		return 2
	case BonusTripleLetter:
		return 3
	default:
		return 1
	}
}

// WordMultiplier returns 2 for DW, 3 for TW and 1 otherwise
func (b Bonus) WordMultiplier() int {
	switch b {
	case BonusDoubleWord:
		return 2
	case BonusTripleWord:
		return 3
	default:
		return 1
	}
}

// standardLayout is the bonus layout of the standard board, one string per
// row: '=' TW, '-' DW, '"' TL, '\'' DL, '.' none. It is symmetric about the
// main diagonal, which is what lets vertical plays be scored on a flipped
// board.
var standardLayout = [BoardSize]string{
	`=..'...=...'..=`,
	`.-..."..."...-.`,
	`..-...'.'...-..`,
	`'..-...'...-..'`,
	`....-.....-....`,
	`."..."..."...".`,
	`..'...'.'...'..`,
	`=..'...-...'..=`,
	`..'...'.'...'..`,
	`."..."..."...".`,
	`....-.....-....`,
	`'..-...'...-..'`,
	`..-...'.'...-..`,
	`.-..."..."...-.`,
	`=..'...=...'..=`,
}

var bonusLayout = buildLayout()

func buildLayout() [BoardSize][BoardSize]Bonus {
	var layout [BoardSize][BoardSize]Bonus
	for row, line := range standardLayout {
		for col := 0; col < BoardSize; col++ {
			switch line[col] {
			case '=':
				layout[row][col] = BonusTripleWord
			case '-':
				layout[row][col] = BonusDoubleWord
			case '"':
				layout[row][col] = BonusTripleLetter
			case '\'':
				layout[row][col] = BonusDoubleLetter
			}
		}
	}
	return layout
}

// BonusAt returns the bonus of a cell on the standard layout
func BonusAt(c Coordinate) Bonus {
	return bonusLayout[c.row][c.col]
}
