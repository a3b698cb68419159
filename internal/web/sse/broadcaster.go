package sse

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/board"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/templates"
)

// Event names pushed to game viewers
const (
	EventConnected   = "connected"
	EventBoardUpdate = "board-update"
	EventGameDeleted = "game-deleted"
)

// Broadcaster turns board service notifications into SSE events
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

var _ board.Notifier = (*Broadcaster)(nil)

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// GameUpdated pushes the re-rendered board to everyone watching the game
func (b *Broadcaster) GameUpdated(ctx context.Context, game *model.Game) {
	hub := b.hubManager.GetHub(game.ID)
	if hub == nil {
		return
	}

	var buf bytes.Buffer
	if err := templates.Board(game).Render(ctx, &buf); err != nil {
		b.logger.Error("sse failed to render board",
			slog.String("game_id", string(game.ID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(EventBoardUpdate, buf.String())
}

// GameDeleted tells viewers the game is gone and closes its hub
func (b *Broadcaster) GameDeleted(_ context.Context, id model.GameID) {
	hub := b.hubManager.GetHub(id)
	if hub == nil {
		return
	}
	hub.BroadcastEvent(EventGameDeleted, string(id))
	b.hubManager.RemoveHub(id)
}
