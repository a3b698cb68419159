package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
)

const broadcastBufferSize = 64

// Hub fans events out to every client watching one game
type Hub struct {
	gameID  model.GameID
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once

	// onIdle runs on the hub goroutine when the last client leaves
	onIdle func()
}

// NewHub creates a new Hub for a game
func NewHub(gameID model.GameID, logger *slog.Logger) *Hub {
	return &Hub{
		gameID:     gameID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("game_id", string(gameID))),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBufferSize),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop. It returns once Close is called.
func (h *Hub) Run() {
	h.logger.Debug("sse hub started")
	for {
		select {
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				count := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("sse client unregistered",
					slog.String("client", client.id),
					slog.Duration("connection_duration", time.Since(client.joined)),
					slog.Int("total_clients", count))
				if count == 0 && h.onIdle != nil {
					h.onIdle()
					if h.closed() {
						h.stop()
						return
					}
				}
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("sse messages dropped, client buffers full", slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.stop()
			return
		}
	}
}

func (h *Hub) closed() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// stop delivers what is still queued and disconnects every client
func (h *Hub) stop() {
	h.flush()
	h.mu.Lock()
	count := len(h.clients)
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()
	h.logger.Debug("sse hub stopped", slog.Int("disconnected_clients", count))
}

// flush delivers whatever is still queued so a final event sent just before
// Close reaches the clients
func (h *Hub) flush() {
	for {
		select {
		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
				}
			}
			h.mu.RUnlock()
		default:
			return
		}
	}
}

// Register adds a client to the hub. It reports false if the hub is closed.
// Clients are added under the lock so stop and closeIfIdle never miss one.
func (h *Hub) Register(client *Client) bool {
	h.mu.Lock()
	if h.closed() {
		h.mu.Unlock()
		return false
	}
	h.clients[client] = true
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("sse client registered",
		slog.String("client", client.id),
		slog.Int("total_clients", count))
	return true
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a raw message for every client
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped, hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// Close shuts down the hub and disconnects its clients
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// closeIfIdle closes the hub unless a client is connected
func (h *Hub) closeIfIdle() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) > 0 {
		return false
	}
	h.Close()
	return true
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an event for the wire. Every line of data gets
// its own "data: " prefix.
func formatSSEMessage(eventName, data string) []byte {
	var sb strings.Builder
	sb.WriteString("event: " + eventName + "\n")
	for _, line := range splitLines(data) {
		sb.WriteString("data: " + line + "\n")
	}
	sb.WriteString("\n")
	return []byte(sb.String())
}

// splitLines splits on \n, dropping \r and a trailing empty line
func splitLines(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r", ""), "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// HubManager owns one hub per watched game
type HubManager struct {
	hubs   map[model.GameID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.GameID]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a game, starting one if needed
func (m *HubManager) GetOrCreateHub(gameID model.GameID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[gameID]; ok {
		return hub
	}

	hub := NewHub(gameID, m.logger)
	hub.onIdle = func() { m.removeIdle(gameID, hub) }
	m.hubs[gameID] = hub
	go hub.Run()
	return hub
}

// removeIdle forgets a hub whose last client has left. A client that registers
// first keeps it open.
func (m *HubManager) removeIdle(gameID model.GameID, hub *Hub) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hubs[gameID] != hub || !hub.closeIfIdle() {
		return
	}
	delete(m.hubs, gameID)
	m.logger.Debug("sse idle hub removed", slog.String("game_id", string(gameID)))
}

// GetHub returns the hub for a game, or nil if nobody is watching it
func (m *HubManager) GetHub(gameID model.GameID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[gameID]
}

// RemoveHub closes and forgets a game's hub
func (m *HubManager) RemoveHub(gameID model.GameID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[gameID]; ok {
		hub.Close()
		delete(m.hubs, gameID)
		m.logger.Info("sse hub removed", slog.String("game_id", string(gameID)))
	}
}

// Shutdown closes every hub
func (m *HubManager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}
