package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C0deSamurai/verdant-ecstasy/internal/testutil"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/templates"
)

func TestRecoveryRendersErrorPage(t *testing.T) {
	h := Recovery(testutil.NopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("template exploded")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/games/ABC", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, "Something went wrong", doc.Find("h1").Text())
	assert.NotContains(t, doc.Text(), "template exploded")
}

func TestLoggingTagsSurface(t *testing.T) {
	logger, buf := testutil.BufferLogger()
	h := Logging(logger)(http.NotFoundHandler())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "web", entry["surface"])
	assert.EqualValues(t, http.StatusNotFound, entry["status"])
}

// flashRoundTrip sets a flash on one response and reads it on the next request
func flashRoundTrip(t *testing.T, set func(http.ResponseWriter)) (*templates.FlashMessage, *httptest.ResponseRecorder) {
	t.Helper()

	first := httptest.NewRecorder()
	set(first)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range first.Result().Cookies() {
		req.AddCookie(c)
	}

	var got *templates.FlashMessage
	second := httptest.NewRecorder()
	Flash()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = GetFlash(r.Context())
	})).ServeHTTP(second, req)
	return got, second
}

func TestFlashRoundTrip(t *testing.T) {
	msg, rr := flashRoundTrip(t, func(w http.ResponseWriter) {
		SetFlash(w, FlashError, "Could not play 8H ZAXX: ZAXX: invalid word, \"really\"")
	})

	require.NotNil(t, msg)
	assert.Equal(t, FlashError, msg.Type)
	assert.Equal(t, "Could not play 8H ZAXX: ZAXX: invalid word, \"really\"", msg.Message)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "flash", cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestFlashDropsUnreadableCookie(t *testing.T) {
	msg, rr := flashRoundTrip(t, func(w http.ResponseWriter) {
		http.SetCookie(w, &http.Cookie{Name: "flash", Value: "not-base64!"})
	})

	assert.Nil(t, msg)
	require.Len(t, rr.Result().Cookies(), 1)
}

func TestNoFlashCookie(t *testing.T) {
	msg, rr := flashRoundTrip(t, func(http.ResponseWriter) {})

	assert.Nil(t, msg)
	assert.Empty(t, rr.Result().Cookies())
}
