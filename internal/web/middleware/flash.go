package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/C0deSamurai/verdant-ecstasy/internal/web/templates"
)

// Flash kinds, used as CSS class suffixes by the layout
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

const flashCookie = "flash"

type flashKey struct{}

// GetFlash returns the message carried over from the previous response, or
// nil
func GetFlash(ctx context.Context) *templates.FlashMessage {
	msg, _ := ctx.Value(flashKey{}).(*templates.FlashMessage)
	return msg
}

// SetFlash stores a message for the page the client is redirected to. The
// message travels base64-encoded so any text survives the cookie.
func SetFlash(w http.ResponseWriter, kind, message string) {
	raw, err := json.Marshal(templates.FlashMessage{Type: kind, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(w, flashCookieWith(base64.RawURLEncoding.EncodeToString(raw), 60))
}

// Flash moves a pending message from its cookie into the request context and
// expires the cookie, so each message is shown once.
func Flash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(flashCookie)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			http.SetCookie(w, flashCookieWith("", -1))
			if msg := decodeFlash(c.Value); msg != nil {
				r = r.WithContext(context.WithValue(r.Context(), flashKey{}, msg))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func flashCookieWith(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// decodeFlash drops anything it cannot read rather than show garbage
func decodeFlash(value string) *templates.FlashMessage {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var msg templates.FlashMessage
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Message == "" {
		return nil
	}
	if msg.Type == "" {
		msg.Type = FlashInfo
	}
	return &msg
}
