package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api/response"
	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/lexicon"
)

// WordHandler handles lexicon queries
type WordHandler struct {
	lexicon lexicon.ServiceInterface
}

// NewWordHandler creates a new word handler
func NewWordHandler(lexicon lexicon.ServiceInterface) *WordHandler {
	return &WordHandler{
		lexicon: lexicon,
	}
}

// Check handles GET /api/v1/words/{word}
func (h *WordHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !h.lexicon.IsLoaded() {
		fail(w, model.ErrDictionaryNotLoaded)
		return
	}
	word := strings.ToUpper(mux.Vars(r)["word"])
	response.JSON(w, http.StatusOK, response.WordCheck{
		Word:  word,
		Valid: h.lexicon.IsValidWord(word),
	})
}

// Anagrams handles GET /api/v1/anagrams?letters=...&sub=true
func (h *WordHandler) Anagrams(w http.ResponseWriter, r *http.Request) {
	letters := r.URL.Query().Get("letters")
	if letters == "" {
		badRequest(w, "letters is required")
		return
	}
	if !h.lexicon.IsLoaded() {
		fail(w, model.ErrDictionaryNotLoaded)
		return
	}

	var words []string
	if r.URL.Query().Get("sub") == "true" {
		words = h.lexicon.Subanagrams(letters)
	} else {
		words = h.lexicon.Anagrams(letters)
	}
	response.JSON(w, http.StatusOK, response.NewWordList(strings.ToUpper(letters), words))
}

// Patterns handles GET /api/v1/patterns?q=...
func (h *WordHandler) Patterns(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("q")
	if !h.lexicon.IsLoaded() {
		fail(w, model.ErrDictionaryNotLoaded)
		return
	}

	words, err := h.lexicon.PatternMatch(pattern)
	if err != nil {
		badRequest(w, "%s", err.Error())
		return
	}
	response.JSON(w, http.StatusOK, response.NewWordList(strings.ToUpper(pattern), words))
}

// Hooks handles GET /api/v1/hooks/{word}
func (h *WordHandler) Hooks(w http.ResponseWriter, r *http.Request) {
	if !h.lexicon.IsLoaded() {
		fail(w, model.ErrDictionaryNotLoaded)
		return
	}
	word := strings.ToUpper(mux.Vars(r)["word"])
	response.JSON(w, http.StatusOK, response.Hooks{
		Word:  word,
		Front: h.lexicon.FrontHooks(word),
		Back:  h.lexicon.BackHooks(word),
	})
}
