package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/lexicon"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/scoring"
	"github.com/C0deSamurai/verdant-ecstasy/internal/storage/memory"
)

// ReplayMove is one scored line of a move log
type ReplayMove struct {
	Line         int      `json:"line"`
	Coordinate   string   `json:"coordinate"`
	Word         string   `json:"word"`
	Score        int      `json:"score"`
	Bingo        bool     `json:"bingo"`
	InvalidWords []string `json:"invalid_words,omitempty"`
}

// ReplayResult is a whole move log played out on an empty board
type ReplayResult struct {
	Moves []ReplayMove `json:"moves"`
	Total int          `json:"total"`
	Rows  []string     `json:"rows"`
}

func newReplayCmd() *cobra.Command {
	var dictionary string
	var strict bool

	cmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "Score a move log on a local board",
		Long: `Play every move of a log on an empty board without a server and print
each move's score, the total and the final board.

The log has one "<coordinate> <word>" move per line, e.g. "8H HARPING".
Blank lines and lines starting with '#' are skipped. With no file, or "-",
the log is read from standard input.

With --dictionary every word formed is checked, and --strict stops at the
first move forming a word the dictionary does not have.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			lex := lexicon.New(memory.New(), logger)
			if dictionary != "" {
				if err := lex.LoadFromFile(cmd.Context(), dictionary); err != nil {
					return err
				}
			}

			result, err := Replay(cmd.Context(), in, scoring.New(lex), strict)
			if err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dictionary, "dictionary", "d", "", "Word list to check words against")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject moves forming words missing from the dictionary")
	return cmd
}

// Replay plays a move log on an empty board. A line that does not parse or
// cannot be placed stops the replay with an error naming the line.
func Replay(ctx context.Context, r io.Reader, scorer *scoring.Service, strict bool) (ReplayResult, error) {
	board := model.NewBoard()
	result := ReplayResult{Moves: []ReplayMove{}}

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return ReplayResult{}, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		move, err := model.ParseNotation(line)
		if err != nil {
			return ReplayResult{}, fmt.Errorf("line %d: %w", n, err)
		}
		scored, err := scorer.Evaluate(board, move)
		if err != nil {
			return ReplayResult{}, fmt.Errorf("line %d: %w", n, err)
		}
		if strict && !scored.Valid() {
			return ReplayResult{}, fmt.Errorf("line %d: %w: %s", n, model.ErrInvalidWord, strings.Join(scored.InvalidWords, ", "))
		}
		if err := board.Place(move); err != nil {
			return ReplayResult{}, fmt.Errorf("line %d: %w", n, err)
		}

		logger.Debug("replayed move", slog.Int("line", n), slog.String("move", move.String()), slog.Int("score", scored.Total))
		result.Moves = append(result.Moves, ReplayMove{
			Line:         n,
			Coordinate:   move.Anchor().String(),
			Word:         move.Text(),
			Score:        scored.Total,
			Bingo:        scored.Bingo,
			InvalidWords: scored.InvalidWords,
		})
		result.Total += scored.Total
	}
	if err := scanner.Err(); err != nil {
		return ReplayResult{}, err
	}

	result.Rows = board.Rows()
	return result, nil
}

func (o *Output) printReplay(r ReplayResult) {
	for _, m := range r.Moves {
		bingo := ""
		if m.Bingo {
			bingo = " (bingo)"
		}
		o.printf("%3d  %-4s %-16s %4d%s\n", m.Line, m.Coordinate, m.Word, m.Score, bingo)
		if len(m.InvalidWords) > 0 {
			o.printf("       not in dictionary: %s\n", strings.Join(m.InvalidWords, ", "))
		}
	}
	o.printf("Total: %d\n\n", r.Total)
	o.printBoard(r.Rows)
}
