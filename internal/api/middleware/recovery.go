package middleware

import (
	"log/slog"
	"net/http"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api/apierr"
	"github.com/C0deSamurai/verdant-ecstasy/internal/middleware"
)

// Recovery answers a handler panic with the INTERNAL_ERROR JSON body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
