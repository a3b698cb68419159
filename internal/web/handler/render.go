package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/C0deSamurai/verdant-ecstasy/internal/web/templates"
)

// render buffers the page so a template error can still produce a clean 500
func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, page string, data any) {
	component, err := templates.Page(page, data)
	var buf bytes.Buffer
	if err == nil {
		err = component.Render(r.Context(), &buf)
	}
	if err != nil {
		logger.Error("failed to render page", slog.String("page", page), slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
