package middleware

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/C0deSamurai/verdant-ecstasy/internal/middleware"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/templates"
)

// Recovery turns a handler panic into the error page
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, renderPanicPage)
}

func renderPanicPage(w http.ResponseWriter, r *http.Request, _ any) {
	page, err := templates.Page(templates.PageError, templates.ErrorData{
		PageData: templates.PageData{Title: "Error"},
		Message:  "The page could not be shown. The game itself is unchanged.",
	})
	var buf bytes.Buffer
	if err == nil {
		err = page.Render(r.Context(), &buf)
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = buf.WriteTo(w)
}
