package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/board"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/middleware"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/sse"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/templates"
)

// GameHandler handles the board page and its form actions
type GameHandler struct {
	boardService board.ServiceInterface
	hubManager   *sse.HubManager
	logger       *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(boardService board.ServiceInterface, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		boardService: boardService,
		hubManager:   hubManager,
		logger:       logger,
	}
}

// View renders the board and move log
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	g, err := h.boardService.GetGame(r.Context(), id)
	if err != nil {
		h.notFoundOr500(w, r, id, err)
		return
	}

	render(w, r, h.logger, http.StatusOK, templates.PageGame, templates.GameData{
		PageData: templates.PageData{
			Title: "Game " + string(g.ID),
			Flash: middleware.GetFlash(r.Context()),
		},
		Game:  g,
		Board: templates.NewBoardView(g),
	})
}

// Create starts a new game and redirects to it
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	g, err := h.boardService.CreateGame(r.Context())
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Could not create game")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Game "+string(g.ID)+" created")
	http.Redirect(w, r, gamePath(g.ID), http.StatusSeeOther)
}

// Play handles the move form
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
		return
	}

	coordinate := r.FormValue("coordinate")
	word := r.FormValue("word")
	if coordinate == "" || word == "" {
		middleware.SetFlash(w, middleware.FlashError, "Enter a coordinate and a word")
		http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
		return
	}

	result, err := h.boardService.PlayMove(r.Context(), id, coordinate, word)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			h.notFoundOr500(w, r, id, err)
			return
		}
		middleware.SetFlash(w, middleware.FlashError, "Could not play "+coordinate+" "+word+": "+err.Error())
		http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
		return
	}

	msg := fmt.Sprintf("%s %s scored %d", result.Record.Coordinate, result.Record.Word, result.Record.Score)
	if result.Record.Bingo {
		msg += " (bingo)"
	}
	middleware.SetFlash(w, middleware.FlashSuccess, msg)
	http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
}

// Undo takes back the last move
func (h *GameHandler) Undo(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	_, undone, err := h.boardService.UndoLastMove(r.Context(), id)
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		h.notFoundOr500(w, r, id, err)
		return
	case errors.Is(err, model.ErrNoMovesToUndo):
		middleware.SetFlash(w, middleware.FlashInfo, "There is no move to undo")
	case err != nil:
		middleware.SetFlash(w, middleware.FlashError, "Could not undo: "+err.Error())
	default:
		middleware.SetFlash(w, middleware.FlashSuccess, fmt.Sprintf("Undid %s %s", undone.Coordinate, undone.Word))
	}
	http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
}

// Delete removes the game and returns to the list
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := h.boardService.DeleteGame(r.Context(), id); err != nil {
		h.notFoundOr500(w, r, id, err)
		return
	}

	middleware.SetFlash(w, middleware.FlashInfo, "Game "+string(id)+" deleted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Events streams live board updates for the game
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if _, err := h.boardService.GetGame(r.Context(), id); err != nil {
		h.notFoundOr500(w, r, id, err)
		return
	}

	sse.ServeSSE(w, r, h.hubManager, id)
}

func (h *GameHandler) notFoundOr500(w http.ResponseWriter, r *http.Request, id model.GameID, err error) {
	if errors.Is(err, model.ErrGameNotFound) {
		render(w, r, h.logger, http.StatusNotFound, templates.PageNotFound, templates.NotFoundData{
			PageData: templates.PageData{
				Title: "Not found",
				Flash: middleware.GetFlash(r.Context()),
			},
			What: "Game " + string(id),
		})
		return
	}

	h.logger.Error("game request failed",
		slog.String("game_id", string(id)),
		slog.Any("error", err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func gamePath(id model.GameID) string {
	return "/games/" + string(id)
}
