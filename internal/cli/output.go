package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api/response"
	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
)

// Output formats command results as text or JSON
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		_, _ = fmt.Fprintln(o.errW, string(data))
		return
	}
	_, _ = fmt.Fprintf(o.errW, "Error: %s\n", err)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
		return
	}
	_, _ = fmt.Fprintln(o.w, msg)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Health:
		o.printf("Status: %s\n", v.Status)
		o.printf("Dictionary: %d words\n", v.DictionaryWords)
	case response.Game:
		o.printGame(v)
	case response.GameList:
		o.printGameList(v)
	case response.PlayResponse:
		o.printPlay(v.Play)
		o.printf("Total: %d\n\n", v.Game.TotalScore)
		o.printBoard(v.Game.Rows)
	case response.Evaluation:
		o.printEvaluation(v)
	case response.UndoResponse:
		o.printf("Undid %s %s (-%d)\n", v.Undone.Coordinate, v.Undone.Word, v.Undone.Score)
		o.printf("Total: %d\n\n", v.Game.TotalScore)
		o.printBoard(v.Game.Rows)
	case response.Rack:
		o.printf("Rack: %s\n", v.Letters)
	case response.WordCheck:
		if v.Valid {
			o.printf("%s is valid\n", v.Word)
		} else {
			o.printf("%s is not valid\n", v.Word)
		}
	case response.WordList:
		o.printf("%s: %d words\n", v.Query, v.Count)
		for _, w := range v.Words {
			o.printf("  %s\n", w)
		}
	case response.Hooks:
		o.printf("Front hooks: %s\n", orNone(v.Front))
		o.printf("Back hooks: %s\n", orNone(v.Back))
	case ReplayResult:
		o.printReplay(v)
	default:
		o.printJSON(data)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return strings.Join(strings.Split(s, ""), " ")
}

func (o *Output) printGame(g response.Game) {
	o.printf("Game: %s\n", g.ID)
	o.printf("Moves: %d\n", len(g.History))
	o.printf("Total: %d\n", g.TotalScore)
	for i, p := range g.History {
		o.printf("  %2d. ", i+1)
		o.printPlay(p)
	}
	o.printf("\n")
	o.printBoard(g.Rows)
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		o.printf("No games\n")
		return
	}
	for _, g := range l.Games {
		o.printf("%s  %3d moves  %4d points  updated %s\n",
			g.ID, g.MoveCount, g.TotalScore, g.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func (o *Output) printPlay(p response.Play) {
	bingo := ""
	if p.Bingo {
		bingo = " (bingo)"
	}
	o.printf("%s %s scored %d%s\n", p.Coordinate, p.Word, p.Score, bingo)
}

func (o *Output) printEvaluation(e response.Evaluation) {
	o.printf("%s (%s) %d\n", e.Main.Word, e.Main.Start, e.Main.Score)
	for _, c := range e.Cross {
		o.printf("  %s (%s) %d\n", c.Word, c.Start, c.Score)
	}
	if e.Bingo {
		o.printf("Bingo: +%d\n", model.BingoBonus)
	}
	o.printf("Total: %d\n", e.Total)
	if len(e.InvalidWords) > 0 {
		o.printf("Invalid words: %s\n", strings.Join(e.InvalidWords, ", "))
	}
}

// printBoard draws board rows with column letters and row numbers. Empty
// cells show as '.', blanks stay lowercase.
func (o *Output) printBoard(rows []string) {
	if len(rows) == 0 {
		return
	}

	o.printf("   ")
	for col := 0; col < len(rows[0]); col++ {
		o.printf(" %c", 'A'+col)
	}
	o.printf("\n")

	for i, row := range rows {
		o.printf("%2d ", i+1)
		for _, cell := range row {
			if cell == model.EmptyCellMarker {
				cell = '.'
			}
			o.printf(" %c", cell)
		}
		o.printf("\n")
	}
}
