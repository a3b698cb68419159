package sse

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
)

const (
	keepaliveInterval = 30 * time.Second
	clientBuffer      = 16
)

var streamSeq atomic.Uint64

// Client is one open event stream
type Client struct {
	id     string
	send   chan []byte
	joined time.Time
}

// NewClient creates a client with a buffered outbox
func NewClient(id string) *Client {
	return &Client{
		id:     id,
		send:   make(chan []byte, clientBuffer),
		joined: time.Now(),
	}
}

// ServeSSE streams a game's events to the client until either side goes
// away. A hub closes itself once its last client leaves, so a request that
// raced with that close is retried on a fresh hub.
func ServeSSE(w http.ResponseWriter, r *http.Request, hubs *HubManager, gameID model.GameID) {
	for attempt := 0; attempt < 2; attempt++ {
		if serveStream(w, r, hubs.GetOrCreateHub(gameID), keepaliveInterval) {
			return
		}
	}
	http.Error(w, "game is no longer being watched", http.StatusGone)
}

// serveStream reports false, having written nothing, if the hub closed before
// the client could register.
func serveStream(w http.ResponseWriter, r *http.Request, hub *Hub, keepalive time.Duration) bool {
	client := NewClient(fmt.Sprintf("%s#%d", r.RemoteAddr, streamSeq.Add(1)))
	if !hub.Register(client) {
		return false
	}
	defer hub.Unregister(client)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	send := func(b []byte) bool {
		if _, err := w.Write(b); err != nil {
			return false
		}
		return rc.Flush() == nil
	}

	if !send(formatSSEMessage(EventConnected, string(hub.gameID))) {
		return true
	}

	tick := time.NewTicker(keepalive)
	defer tick.Stop()
	for {
		select {
		case msg, open := <-client.send:
			if !open || !send(msg) {
				return true
			}
		case <-tick.C:
			if !send([]byte(": keepalive\n\n")) {
				return true
			}
		case <-r.Context().Done():
			return true
		}
	}
}
