package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/C0deSamurai/verdant-ecstasy/internal/services/board"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/handler"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/middleware"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger       *slog.Logger
	BoardService *board.Service
	HubManager   *sse.HubManager
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler(cfg.BoardService, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.BoardService, hubManager, cfg.Logger)

	// Event streams skip the flash middleware so they never consume a
	// message meant for the next page load
	r.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Flash())

	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}", gameHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/games/{id}/moves", gameHandler.Play).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}/undo", gameHandler.Undo).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}/delete", gameHandler.Delete).Methods(http.MethodPost)

	return r
}
