package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status. v is encoded before the header goes
// out, so a value that cannot be encoded still gets a clean 500.
func JSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"Internal server error"}}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// NoContent writes a 204
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
