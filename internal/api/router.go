package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api/handler"
	"github.com/C0deSamurai/verdant-ecstasy/internal/api/middleware"
	"github.com/C0deSamurai/verdant-ecstasy/internal/api/response"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/board"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/lexicon"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	BoardService   *board.Service
	LexiconService *lexicon.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.BoardService)
	wordHandler := handler.NewWordHandler(cfg.LexiconService)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Games
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/moves", gameHandler.Play).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/moves/last", gameHandler.Undo).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/preview", gameHandler.Preview).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/rack", gameHandler.Rack).Methods(http.MethodGet)

	// Word queries
	api.HandleFunc("/words/{word}", wordHandler.Check).Methods(http.MethodGet)
	api.HandleFunc("/anagrams", wordHandler.Anagrams).Methods(http.MethodGet)
	api.HandleFunc("/patterns", wordHandler.Patterns).Methods(http.MethodGet)
	api.HandleFunc("/hooks/{word}", wordHandler.Hooks).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler(cfg.LexiconService)).Methods(http.MethodGet)

	return r
}

func healthHandler(lex *lexicon.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{
			Status:          "ok",
			DictionaryWords: lex.WordCount(),
		})
	}
}
