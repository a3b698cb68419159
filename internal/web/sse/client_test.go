package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C0deSamurai/verdant-ecstasy/internal/testutil"
)

func streamUntilDone(t *testing.T, hub *Hub, keepalive time.Duration, during func()) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/games/GAME0001/events", nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		serveStream(rec, req, hub, keepalive)
	}()

	during()
	hub.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after the hub closed")
	}
	return rec
}

func TestServeStreamSendsEvents(t *testing.T) {
	hub := NewHub("GAME0001", testutil.NopLogger())
	go hub.Run()

	rec := streamUntilDone(t, hub, time.Hour, func() {
		waitForClients(t, hub, 1)
		hub.BroadcastEvent(EventBoardUpdate, "<div>board</div>")
	})

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "event: connected\ndata: GAME0001\n\n"), body)
	assert.Contains(t, body, "event: board-update\ndata: <div>board</div>\n\n")
}

func TestServeStreamKeepalive(t *testing.T) {
	hub := NewHub("GAME0001", testutil.NopLogger())
	go hub.Run()

	rec := streamUntilDone(t, hub, 10*time.Millisecond, func() {
		waitForClients(t, hub, 1)
		time.Sleep(50 * time.Millisecond)
	})

	assert.Contains(t, rec.Body.String(), ": keepalive\n\n")
}

func TestServeStreamClosedHub(t *testing.T) {
	hub := NewHub("GAME0001", testutil.NopLogger())
	hub.Close()

	rec := httptest.NewRecorder()
	assert.False(t, serveStream(rec, httptest.NewRequest(http.MethodGet, "/", nil), hub, time.Hour))
	assert.Zero(t, rec.Body.Len())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestServeSSEGoneWhenHubStaysClosed(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Shutdown()
	manager.GetOrCreateHub("GAME0001").Close()

	rec := httptest.NewRecorder()
	ServeSSE(rec, httptest.NewRequest(http.MethodGet, "/games/GAME0001/events", nil), manager, "GAME0001")

	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestServeSSEReconnectsAfterIdleHubRemoved(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Shutdown()

	for i := 0; i < 2; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/games/GAME0001/events", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		done := make(chan struct{})
		go func() {
			defer close(done)
			ServeSSE(rec, req, manager, "GAME0001")
		}()

		require.Eventually(t, func() bool {
			hub := manager.GetHub("GAME0001")
			return hub != nil && hub.ClientCount() == 1
		}, time.Second, 5*time.Millisecond, "connection %d", i)
		cancel()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("connection %d did not end after the request was cancelled", i)
		}
		require.Eventually(t, func() bool {
			return manager.GetHub("GAME0001") == nil
		}, time.Second, 5*time.Millisecond, "connection %d", i)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "event: connected\ndata: GAME0001\n\n"))
	}
}
