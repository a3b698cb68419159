package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api/response"
	"github.com/C0deSamurai/verdant-ecstasy/internal/factory"
	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/server"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/lexicon"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/scoring"
	"github.com/C0deSamurai/verdant-ecstasy/internal/storage/memory"
	"github.com/C0deSamurai/verdant-ecstasy/internal/testutil"
)

const gameLog = `# HARPING opens through the centre
8H HARPING
9G ZAX

N8 (G)ARNETS
14H SEQUIN(S)
`

func startServer(t *testing.T) (*httptest.Server, *factory.App) {
	t.Helper()
	t.Setenv("SCRABBLE_GAME", "")

	app, err := factory.New(factory.Config{ValidateWords: true})
	require.NoError(t, err)
	require.NoError(t, app.LexiconService.LoadFromFile(t.Context(), "../../data/words.txt"))

	srv := httptest.NewServer(server.NewHandler(app, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(func() {
		app.Close()
		srv.Close()
	})
	return srv, app
}

// run executes the CLI against srv and returns what it printed
func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--server", srv.URL}, args...))

	err := root.Execute()
	return out.String(), err
}

func createGame(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	out, err := run(t, srv, "-o", "json", "game", "create")
	require.NoError(t, err)

	var game response.Game
	require.NoError(t, json.Unmarshal([]byte(out), &game))
	require.NotEmpty(t, game.ID)
	return game.ID
}

func TestHealth(t *testing.T) {
	srv, _ := startServer(t)

	out, err := run(t, srv, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: ok")
}

func TestPlayShowUndo(t *testing.T) {
	srv, _ := startServer(t)
	id := createGame(t, srv)

	out, err := run(t, srv, "game", "play", "-g", id, "8H", "HARPING")
	require.NoError(t, err)
	assert.Contains(t, out, "8H HARPING scored 78 (bingo)")
	assert.Contains(t, out, "Total: 78")
	assert.Contains(t, out, " 8  . . . . . . . H A R P I N G .")

	out, err = run(t, srv, "-o", "json", "game", "preview", "-g", id, "9G", "ZAX")
	require.NoError(t, err)
	var eval response.Evaluation
	require.NoError(t, json.Unmarshal([]byte(out), &eval))
	assert.Equal(t, 59, eval.Total)
	assert.Len(t, eval.Cross, 2)

	out, err = run(t, srv, "game", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Game: "+id)
	assert.Contains(t, out, "Moves: 1")

	out, err = run(t, srv, "game", "undo", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Undid 8H HARPING (-78)")
	assert.Contains(t, out, "Total: 0")
}

func TestGameFromEnvironment(t *testing.T) {
	srv, _ := startServer(t)
	id := createGame(t, srv)
	t.Setenv("SCRABBLE_GAME", id)

	out, err := run(t, srv, "game", "play", "H8", "HAT")
	require.NoError(t, err)
	assert.Contains(t, out, "H8 HAT scored")
}

func TestGameNeedsAnID(t *testing.T) {
	srv, _ := startServer(t)

	_, err := run(t, srv, "game", "show")
	assert.ErrorIs(t, err, errNoGame)
}

func TestRejectedMoveReturnsAPIError(t *testing.T) {
	srv, _ := startServer(t)
	id := createGame(t, srv)

	_, err := run(t, srv, "game", "play", "-g", id, "8H", "HARPX")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, "INVALID_WORD", apiErr.Code)
	assert.Equal(t, 422, apiErr.Status)
}

func TestRackAndDelete(t *testing.T) {
	srv, _ := startServer(t)
	id := createGame(t, srv)

	out, err := run(t, srv, "-o", "json", "game", "rack", id, "-n", "3")
	require.NoError(t, err)
	var rack response.Rack
	require.NoError(t, json.Unmarshal([]byte(out), &rack))
	assert.Len(t, rack.Letters, 3)

	out, err = run(t, srv, "game", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted game "+id)

	_, err = run(t, srv, "game", "show", id)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "GAME_NOT_FOUND", apiErr.Code)
}

func TestListGames(t *testing.T) {
	srv, _ := startServer(t)

	out, err := run(t, srv, "game", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No games")

	id := createGame(t, srv)
	out, err = run(t, srv, "game", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
}

func TestWordCommands(t *testing.T) {
	srv, _ := startServer(t)

	out, err := run(t, srv, "word", "check", "hat")
	require.NoError(t, err)
	assert.Contains(t, out, "HAT is valid")

	out, err = run(t, srv, "word", "check", "hatx")
	require.NoError(t, err)
	assert.Contains(t, out, "HATX is not valid")

	out, err = run(t, srv, "-o", "json", "word", "anagram", "aet")
	require.NoError(t, err)
	var list response.WordList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Subset(t, list.Words, []string{"ATE", "EAT", "TEA"})

	out, err = run(t, srv, "-o", "json", "word", "pattern", "HARP*")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Contains(t, list.Words, "HARPING")

	out, err = run(t, srv, "word", "hooks", "at")
	require.NoError(t, err)
	assert.Contains(t, out, "Front hooks:")
	assert.Contains(t, out, "H")
}

func TestUnknownOutputFormat(t *testing.T) {
	srv, _ := startServer(t)

	_, err := run(t, srv, "-o", "yaml", "health")
	assert.Error(t, err)
}

func TestWatchFollowsGame(t *testing.T) {
	srv, app := startServer(t)
	cfg = DefaultConfig()
	cfg.ServerURL = srv.URL

	game, err := app.BoardService.CreateGame(t.Context())
	require.NoError(t, err)

	var out bytes.Buffer
	done := make(chan error, 1)
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	go func() {
		done <- watchGame(ctx, string(game.ID), &out)
	}()

	require.Eventually(t, func() bool {
		hub := app.HubManager.GetHub(game.ID)
		return hub != nil && hub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err = app.BoardService.PlayMove(t.Context(), game.ID, "8H", "HARPING")
	require.NoError(t, err)
	require.NoError(t, app.BoardService.DeleteGame(t.Context(), game.ID))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("watch did not stop after the game was deleted")
	}

	text := out.String()
	assert.Contains(t, text, "watching game "+string(game.ID))
	assert.Contains(t, text, "board updated: total 78 after 1 moves")
	assert.Contains(t, text, "game "+string(game.ID)+" was deleted")
}

func TestReadEvents(t *testing.T) {
	stream := "event: connected\ndata: ABC\n\n: keepalive\n\nevent: board-update\ndata: <p>one</p>\ndata: <p>two</p>\n\nevent: game-deleted\ndata: ABC\n\nevent: never-read\ndata: x\n\n"

	var names, data []string
	stopped, err := readEvents(strings.NewReader(stream), func(name, d string) bool {
		names = append(names, name)
		data = append(data, d)
		return name != eventGameDeleted
	})

	require.NoError(t, err)
	assert.True(t, stopped)
	assert.Equal(t, []string{"connected", "board-update", "game-deleted"}, names)
	assert.Equal(t, "<p>one</p>\n<p>two</p>", data[1])
}

func TestParseGameEvent(t *testing.T) {
	html := `<div id="board"><p>Total <span id="total-score">137</span> after <span id="move-count">2</span> moves</p></div>`

	evt := parseGameEvent("G1", eventBoardUpdate, html)
	assert.Equal(t, "137", evt.Total)
	assert.Equal(t, "2", evt.Moves)

	evt = parseGameEvent("G1", eventConnected, "G1")
	assert.Empty(t, evt.Total)
}

func newScorer(t *testing.T, words ...string) *scoring.Service {
	t.Helper()
	lex := lexicon.New(memory.New(), testutil.NopLogger())
	if len(words) > 0 {
		require.NoError(t, lex.LoadWords(words))
	}
	return scoring.New(lex)
}

func TestReplay(t *testing.T) {
	result, err := Replay(t.Context(), strings.NewReader(gameLog), newScorer(t), false)
	require.NoError(t, err)

	require.Len(t, result.Moves, 4)
	assert.Equal(t, []int{78, 59, 20, 36}, []int{
		result.Moves[0].Score, result.Moves[1].Score, result.Moves[2].Score, result.Moves[3].Score,
	})
	assert.True(t, result.Moves[0].Bingo)
	assert.Equal(t, 2, result.Moves[0].Line)
	assert.Equal(t, 5, result.Moves[2].Line)
	assert.Equal(t, "N8", result.Moves[2].Coordinate)
	assert.Equal(t, 193, result.Total)
	assert.Equal(t, "*******HARPING*", result.Rows[7])
}

func TestReplayReportsInvalidWords(t *testing.T) {
	scorer := newScorer(t, "harping", "at")
	log := "8H HARPING\nO7 AT\n"

	result, err := Replay(t.Context(), strings.NewReader(log), scorer, false)
	require.NoError(t, err)
	require.Len(t, result.Moves, 2)
	assert.Equal(t, 48, result.Moves[1].Score)
	assert.Equal(t, []string{"HARPINGT"}, result.Moves[1].InvalidWords)

	_, err = Replay(t.Context(), strings.NewReader(log), scorer, true)
	assert.ErrorIs(t, err, model.ErrInvalidWord)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReplayErrorsNameTheLine(t *testing.T) {
	tests := []struct {
		name string
		log  string
		want error
	}{
		{"bad coordinate", "8H HARPING\nH-8 AT\n", model.ErrInvalidSyntax},
		{"occupied cell", "8H HARPING\n8H HARPING\n", model.ErrIllegalMove},
		{"missing word", "8H\n", model.ErrInvalidSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Replay(t.Context(), strings.NewReader(tt.log), newScorer(t), false)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "line ")
		})
	}
}

func TestReplayCommandReadsStdin(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(gameLog))
	root.SetArgs([]string{"replay"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Total: 193")
	assert.Contains(t, out.String(), "HARPING")
}
