package handler

import (
	"log/slog"
	"net/http"

	"github.com/C0deSamurai/verdant-ecstasy/internal/services/board"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/middleware"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/templates"
)

// HomeHandler handles the game list page
type HomeHandler struct {
	boardService board.ServiceInterface
	logger       *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(boardService board.ServiceInterface, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// Home renders the list of games
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	games, err := h.boardService.ListGames(r.Context())
	if err != nil {
		h.logger.Error("failed to list games", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	render(w, r, h.logger, http.StatusOK, templates.PageHome, templates.HomeData{
		PageData: templates.PageData{
			Title: "Games",
			Flash: middleware.GetFlash(r.Context()),
		},
		Games: games,
	})
}
