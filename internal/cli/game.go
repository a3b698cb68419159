package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api/request"
	"github.com/C0deSamurai/verdant-ecstasy/internal/api/response"
	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
)

var errNoGame = errors.New("no game given: pass a game ID, --game or SCRABBLE_GAME")

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.PersistentFlags().StringVarP(&cfg.Game, "game", "g", cfg.Game, "Game ID (env: SCRABBLE_GAME)")

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGamePreviewCmd())
	cmd.AddCommand(newGameUndoCmd())
	cmd.AddCommand(newGameRackCmd())
	cmd.AddCommand(newGameWatchCmd())

	return cmd
}

// gameID takes the game from the first argument, falling back to --game
func gameID(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Game != "" {
		return cfg.Game, nil
	}
	return "", errNoGame
}

func gamePath(id string, parts ...string) string {
	p := "/api/v1/games/" + url.PathEscape(id)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Start a game on an empty board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Post(cmd.Context(), "/api/v1/games", nil, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games, most recently played first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList
			if err := client.Get(cmd.Context(), "/api/v1/games", &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [game-id]",
		Short: "Show a game's board and move log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameID(args)
			if err != nil {
				return err
			}

			var result response.Game
			if err := client.Get(cmd.Context(), gamePath(id), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [game-id]",
		Short: "Delete a game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameID(args)
			if err != nil {
				return err
			}

			if err := client.Delete(cmd.Context(), gamePath(id), nil); err != nil {
				return err
			}

			newOutput(cmd).PrintMessage(fmt.Sprintf("Deleted game %s", id))
			return nil
		},
	}
}

func newGamePlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <coordinate> <word>",
		Short: "Play a move",
		Long: `Play a move on the game given by --game.

The coordinate is the first cell of the word: number first ("8H") plays
across, letter first ("H8") plays down. The word spells every cell the move
covers. Letters already on the board go in parentheses and blanks are
lowercase, e.g. "PORt(MANTEaU)X".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameID(nil)
			if err != nil {
				return err
			}

			req := request.MoveRequest{Coordinate: args[0], Word: args[1]}
			var result response.PlayResponse
			if err := client.Post(cmd.Context(), gamePath(id, "moves"), req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGamePreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <coordinate> <word>",
		Short: "Score a move without playing it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameID(nil)
			if err != nil {
				return err
			}

			req := request.MoveRequest{Coordinate: args[0], Word: args[1]}
			var result response.Evaluation
			if err := client.Post(cmd.Context(), gamePath(id, "preview"), req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGameUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo [game-id]",
		Short: "Take back the last move",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameID(args)
			if err != nil {
				return err
			}

			var result response.UndoResponse
			if err := client.Delete(cmd.Context(), gamePath(id, "moves", "last"), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGameRackCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "rack [game-id]",
		Short: "Draw a practice rack from the tiles not yet played",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameID(args)
			if err != nil {
				return err
			}

			path := fmt.Sprintf("%s?size=%d", gamePath(id, "rack"), size)
			var result response.Rack
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", model.BingoTiles, "Number of tiles to draw")
	return cmd
}
