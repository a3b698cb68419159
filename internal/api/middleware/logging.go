package middleware

import (
	"log/slog"
	"net/http"

	"github.com/C0deSamurai/verdant-ecstasy/internal/middleware"
)

// Logging logs API requests tagged with surface=api
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("surface", "api")))
}
