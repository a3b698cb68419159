package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api/apierr"
)

// maxBodyBytes bounds request bodies; a move request is a few dozen bytes
const maxBodyBytes = 4 << 10

func fail(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

func badRequest(w http.ResponseWriter, format string, args ...any) {
	apierr.WriteError(w, apierr.NewInvalidRequestError(fmt.Sprintf(format, args...)))
}

// decodeBody reads a single JSON object, rejecting fields it does not know
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
