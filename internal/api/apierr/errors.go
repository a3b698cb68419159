package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
)

// APIError is the body of every error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidCoordinate = "INVALID_COORDINATE"
	CodeMalformedMove     = "MALFORMED_MOVE"
	CodeIllegalMove       = "ILLEGAL_MOVE"
	CodeInvalidWord       = "INVALID_WORD"
	CodeGameNotFound      = "GAME_NOT_FOUND"
	CodeNoMoves           = "NO_MOVES"
	CodeInvalidRack       = "INVALID_RACK"
	CodeDictionaryMissing = "DICTIONARY_NOT_LOADED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// statusError is an error that already knows its response
type statusError struct {
	status int
	body   APIError
}

func (e *statusError) Error() string {
	return e.body.Message
}

// mappings are tried in order, so wrapping errors come before the errors
// they wrap: ErrIllegalMove can wrap ErrOutOfBounds and ErrMalformedMove
// wraps ErrInvalidSyntax. An empty message passes the error text through so
// clients see which cell or word was at fault.
var mappings = []struct {
	target  error
	status  int
	code    string
	message string
}{
	{model.ErrGameNotFound, http.StatusNotFound, CodeGameNotFound, "Game not found"},
	{model.ErrNoMovesToUndo, http.StatusConflict, CodeNoMoves, "No moves to undo"},
	{model.ErrIllegalMove, http.StatusUnprocessableEntity, CodeIllegalMove, ""},
	{model.ErrInvalidWord, http.StatusUnprocessableEntity, CodeInvalidWord, ""},
	{model.ErrMalformedMove, http.StatusBadRequest, CodeMalformedMove, ""},
	{model.ErrOutOfBounds, http.StatusBadRequest, CodeInvalidCoordinate, ""},
	{model.ErrInvalidSyntax, http.StatusBadRequest, CodeInvalidCoordinate, ""},
	{model.ErrInvalidRack, http.StatusBadRequest, CodeInvalidRack, ""},
	{model.ErrDictionaryNotLoaded, http.StatusServiceUnavailable, CodeDictionaryMissing, "Dictionary not loaded"},
}

func resolve(err error) *statusError {
	var se *statusError
	if errors.As(err, &se) {
		return se
	}
	for _, m := range mappings {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.message
		if msg == "" {
			msg = err.Error()
		}
		return &statusError{m.status, APIError{m.code, msg}}
	}
	return NewInternalError().(*statusError)
}

// WriteError writes err as a JSON error response. Errors outside the domain
// become INTERNAL_ERROR without their text.
func WriteError(w http.ResponseWriter, err error) {
	se := resolve(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(se.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: se.body})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return resolve(err).status
}

// NewInvalidRequestError is a 400 for a request the handler could not read
func NewInvalidRequestError(message string) error {
	return &statusError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError is the 500 used for unexpected failures
func NewInternalError() error {
	return &statusError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
