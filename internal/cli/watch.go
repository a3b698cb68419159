package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
)

// Event names pushed on a game's event stream
const (
	eventConnected   = "connected"
	eventBoardUpdate = "board-update"
	eventGameDeleted = "game-deleted"
)

func newGameWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [game-id]",
		Short: "Follow a game's live updates",
		Long: `Connect to the game's event stream and print every change as it
happens: moves played, moves undone, and deletion of the game.

Press Ctrl+C to disconnect.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameID(args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watchGame(ctx, id, cmd.OutOrStdout())
		},
	}
}

// GameEvent is one event from a game's stream. Total and Moves are read from
// the board fragment of board-update events.
type GameEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Game  string    `json:"game"`
	Total string    `json:"total,omitempty"`
	Moves string    `json:"moves,omitempty"`
}

func watchGame(ctx context.Context, id string, w io.Writer) error {
	// The stream is served by the web router, not the API
	streamURL := cfg.ServerURL + "/games/" + url.PathEscape(id) + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No timeout: the stream stays open until either side closes it
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("game %s not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	done, err := readEvents(resp.Body, func(name, data string) bool {
		printGameEvent(w, parseGameEvent(id, name, data))
		return name != eventGameDeleted
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	if !done && cfg.Output != "json" {
		_, _ = fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

// readEvents parses an event stream, calling handle for each complete event
// until handle returns false or the stream ends. It reports whether handle
// stopped the stream.
func readEvents(r io.Reader, handle func(name, data string) bool) (bool, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var name string
	var data []string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		case line == "":
			if name != "" && !handle(name, strings.Join(data, "\n")) {
				return true, nil
			}
			name, data = "", nil
		}
	}
	return false, scanner.Err()
}

func parseGameEvent(id, name, data string) GameEvent {
	evt := GameEvent{Time: time.Now(), Event: name, Game: id}
	if name != eventBoardUpdate {
		return evt
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(data))
	if err != nil {
		return evt
	}
	evt.Total = strings.TrimSpace(doc.Find("#total-score").Text())
	evt.Moves = strings.TrimSpace(doc.Find("#move-count").Text())
	return evt
}

func printGameEvent(w io.Writer, evt GameEvent) {
	if cfg.Output == "json" {
		data, _ := json.Marshal(evt)
		_, _ = fmt.Fprintln(w, string(data))
		return
	}

	ts := evt.Time.Format("15:04:05")
	switch evt.Event {
	case eventConnected:
		_, _ = fmt.Fprintf(w, "[%s] watching game %s\n", ts, evt.Game)
	case eventBoardUpdate:
		_, _ = fmt.Fprintf(w, "[%s] board updated: total %s after %s moves\n", ts, evt.Total, evt.Moves)
	case eventGameDeleted:
		_, _ = fmt.Fprintf(w, "[%s] game %s was deleted\n", ts, evt.Game)
	default:
		_, _ = fmt.Fprintf(w, "[%s] %s\n", ts, evt.Event)
	}
}
