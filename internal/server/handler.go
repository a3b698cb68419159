package server

import (
	"log/slog"
	"net/http"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api"
	"github.com/C0deSamurai/verdant-ecstasy/internal/factory"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web"
)

// NewHandler mounts the JSON API under /api/ and the web pages everywhere
// else
func NewHandler(app *factory.App, logger *slog.Logger) http.Handler {
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		BoardService:   app.BoardService,
		LexiconService: app.LexiconService,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:       logger,
		BoardService: app.BoardService,
		HubManager:   app.HubManager,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)
	return mux
}
