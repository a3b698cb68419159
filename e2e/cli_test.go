package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api/response"
	"github.com/C0deSamurai/verdant-ecstasy/internal/factory"
	"github.com/C0deSamurai/verdant-ecstasy/internal/server"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "scrabble-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/scrabble")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

// run executes the CLI with JSON output and returns stdout and stderr
// separately
func (r *cliRunner) run(stdin string, args ...string) (string, string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "SCRABBLE_GAME=")
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	projectRoot := findProjectRoot(t)
	app, err := factory.New(factory.Config{
		DictionaryPath: filepath.Join(projectRoot, "data/words.txt"),
		ValidateWords:  true,
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := &http.Server{
		Addr:    addr,
		Handler: server.NewHandler(app, logger),
	}

	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: srv,
		addr:   serverURL,
		shutdown: func() {
			app.HubManager.Shutdown()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
			app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

type errorOutput struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type replayOutput struct {
	Moves []struct {
		Coordinate string `json:"coordinate"`
		Word       string `json:"word"`
		Score      int    `json:"score"`
		Bingo      bool   `json:"bingo"`
	} `json:"moves"`
	Total int      `json:"total"`
	Rows  []string `json:"rows"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	stdout, stderr, err := cli.run("", "health")
	require.NoError(t, err, "stderr: %s", stderr)

	var resp response.Health
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Positive(t, resp.DictionaryWords)
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	stdout, stderr, err := cli.run("", "game", "create")
	require.NoError(t, err, "stderr: %s", stderr)
	var game response.Game
	require.NoError(t, json.Unmarshal([]byte(stdout), &game))
	id := game.ID
	t.Logf("Created game: %s", id)

	moves := []struct {
		coordinate string
		word       string
		score      int
		total      int
	}{
		{"8H", "HARPING", 78, 78},
		{"9G", "ZAX", 59, 137},
		{"N8", "(G)ARNETS", 20, 157},
		{"14H", "SEQUIN(S)", 36, 193},
	}

	for _, m := range moves {
		stdout, stderr, err = cli.run("", "game", "play", "-g", id, m.coordinate, m.word)
		require.NoError(t, err, "stderr: %s", stderr)

		var play response.PlayResponse
		require.NoError(t, json.Unmarshal([]byte(stdout), &play))
		assert.Equal(t, m.score, play.Play.Score, "%s %s", m.coordinate, m.word)
		assert.Equal(t, m.total, play.Game.TotalScore)
	}

	stdout, stderr, err = cli.run("", "game", "show", id)
	require.NoError(t, err, "stderr: %s", stderr)
	require.NoError(t, json.Unmarshal([]byte(stdout), &game))
	assert.Len(t, game.History, 4)
	assert.Equal(t, "*******HARPING*", game.Rows[7])

	stdout, stderr, err = cli.run("", "game", "undo", id)
	require.NoError(t, err, "stderr: %s", stderr)
	var undo response.UndoResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &undo))
	assert.Equal(t, "SEQUIN(S)", undo.Undone.Word)
	assert.Equal(t, 157, undo.Game.TotalScore)

	_, stderr, err = cli.run("", "game", "delete", id)
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = cli.run("", "game", "show", id)
	require.Error(t, err)
	var errOut errorOutput
	require.NoError(t, json.Unmarshal([]byte(stderr), &errOut))
	assert.Contains(t, errOut.Error.Message, "GAME_NOT_FOUND")
}

func TestCLI_RejectedMove(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	stdout, _, err := cli.run("", "game", "create")
	require.NoError(t, err)
	var game response.Game
	require.NoError(t, json.Unmarshal([]byte(stdout), &game))

	_, stderr, err := cli.run("", "game", "play", "-g", game.ID, "8H", "QQQ")
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, stderr, "INVALID_WORD")
}

func TestCLI_WordQueries(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	stdout, stderr, err := cli.run("", "word", "check", "quixote")
	require.NoError(t, err, "stderr: %s", stderr)
	var check response.WordCheck
	require.NoError(t, json.Unmarshal([]byte(stdout), &check))
	assert.True(t, check.Valid)
	assert.Equal(t, "QUIXOTE", check.Word)

	stdout, stderr, err = cli.run("", "word", "anagram", "aet")
	require.NoError(t, err, "stderr: %s", stderr)
	var list response.WordList
	require.NoError(t, json.Unmarshal([]byte(stdout), &list))
	assert.Subset(t, list.Words, []string{"ATE", "EAT", "TEA"})
}

func TestCLI_ReplayOffline(t *testing.T) {
	// Replay needs no server; point the CLI somewhere unreachable
	cli := newCLIRunner(t, "http://127.0.0.1:1")

	log := "8H HARPING\n9G ZAX\nN8 (G)ARNETS\n14H SEQUIN(S)\n"
	stdout, stderr, err := cli.run(log, "replay")
	require.NoError(t, err, "stderr: %s", stderr)

	var out replayOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Moves, 4)
	assert.True(t, out.Moves[0].Bingo)
	assert.Equal(t, 193, out.Total)
	assert.Len(t, out.Rows, 15)
}

func TestCLI_ReplayStrictUsesDictionary(t *testing.T) {
	cli := newCLIRunner(t, "http://127.0.0.1:1")
	dictionary := filepath.Join(findProjectRoot(t), "data/words.txt")

	_, stderr, err := cli.run("8H HARPING\nO7 AT\n", "replay", "--strict", "--dictionary", dictionary)
	require.Error(t, err)
	assert.Contains(t, stderr, "line 2")
	assert.Contains(t, stderr, "HARPINGT")
}
