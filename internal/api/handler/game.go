package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api/request"
	"github.com/C0deSamurai/verdant-ecstasy/internal/api/response"
	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/board"
)

// GameHandler handles game endpoints
type GameHandler struct {
	boardService board.ServiceInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(boardService board.ServiceInterface) *GameHandler {
	return &GameHandler{
		boardService: boardService,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	g, err := h.boardService.CreateGame(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.boardService.ListGames(r.Context())
	if err != nil {
		fail(w, err)
		return
	}

	resp := response.GameList{Games: make([]response.GameSummary, len(games))}
	for i, g := range games {
		resp.Games[i] = response.GameSummaryFromModel(g)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.boardService.GetGame(r.Context(), gameID(r))
	if err != nil {
		fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.boardService.DeleteGame(r.Context(), gameID(r)); err != nil {
		fail(w, err)
		return
	}
	response.NoContent(w)
}

// Play handles POST /api/v1/games/{id}/moves
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMove(w, r)
	if !ok {
		return
	}

	result, err := h.boardService.PlayMove(r.Context(), gameID(r), req.Coordinate, req.Word)
	if err != nil {
		fail(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayResponse{
		Play:       response.PlayFromModel(result.Record),
		Evaluation: response.EvaluationFromResult(result.Result),
		Game:       response.GameFromModel(result.Game),
	})
}

// Preview handles POST /api/v1/games/{id}/preview
func (h *GameHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMove(w, r)
	if !ok {
		return
	}

	result, err := h.boardService.PreviewMove(r.Context(), gameID(r), req.Coordinate, req.Word)
	if err != nil {
		fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EvaluationFromResult(result))
}

// Undo handles DELETE /api/v1/games/{id}/moves/last
func (h *GameHandler) Undo(w http.ResponseWriter, r *http.Request) {
	g, undone, err := h.boardService.UndoLastMove(r.Context(), gameID(r))
	if err != nil {
		fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.UndoResponse{
		Undone: response.PlayFromModel(undone),
		Game:   response.GameFromModel(g),
	})
}

// Rack handles GET /api/v1/games/{id}/rack?size=N
func (h *GameHandler) Rack(w http.ResponseWriter, r *http.Request) {
	size := model.BingoTiles
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(w, "size must be a number")
			return
		}
		size = n
	}

	tiles, err := h.boardService.DrawRack(r.Context(), gameID(r), size)
	if err != nil {
		fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RackFromTiles(tiles))
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func decodeMove(w http.ResponseWriter, r *http.Request) (request.MoveRequest, bool) {
	var req request.MoveRequest
	if err := decodeBody(w, r, &req); err != nil {
		badRequest(w, "invalid move body: %v", err)
		return req, false
	}
	if req.Coordinate == "" || req.Word == "" {
		badRequest(w, "coordinate and word are required")
		return req, false
	}
	return req, true
}
