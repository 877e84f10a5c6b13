// Package websocket fans scored samples out to dashboard clients.
// All hub state is owned by a single goroutine; interaction happens through
// commands on a channel, so no locks are needed.
package websocket

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/langxubai/Sentiment-Compass-app/internal/metrics"
	"github.com/langxubai/Sentiment-Compass-app/internal/sentiment"
)

const (
	writeTimeout   = 5 * time.Second
	sendBufferSize = 16
)

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	sessionID uuid.UUID
	conn      *websocket.Conn
	errCh     chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	sessionID uuid.UUID
	conn      *websocket.Conn
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	sessionID uuid.UUID
	data      []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		sendCh: make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg, ok := <-cw.sendCh:
			if !ok {
				return
			}
			cw.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	cw.conn.Close()
}

// --- Hub ---

// Hub tracks dashboard connections per browser session and pushes each
// newly scored sample to every client of that session.
type Hub struct {
	cmdCh    chan hubCmd
	clients  map[uuid.UUID]map[*websocket.Conn]*clientWriter
	maxConns int
	total    int
	stopped  chan struct{}
}

func NewHub(maxConns int) *Hub {
	hub := &Hub{
		cmdCh:    make(chan hubCmd, 256),
		clients:  make(map[uuid.UUID]map[*websocket.Conn]*clientWriter),
		maxConns: maxConns,
		stopped:  make(chan struct{}),
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.sessionID, c.conn)
		case cmdBroadcast:
			h.handleBroadcast(c)
		case cmdClientCount:
			c.replyCh <- h.total
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	if h.total >= h.maxConns {
		slog.Warn("Rejecting websocket client: connection limit reached", "limit", h.maxConns)
		metrics.WebSocketConnectionsTotal.WithLabelValues("rejected").Inc()
		c.conn.Close()
		c.errCh <- ErrConnectionLimit
		return
	}

	clients, exists := h.clients[c.sessionID]
	if !exists {
		clients = make(map[*websocket.Conn]*clientWriter)
		h.clients[c.sessionID] = clients
	}
	clients[c.conn] = newClientWriter(c.conn)
	h.total++

	metrics.WebSocketConnectionsTotal.WithLabelValues("success").Inc()
	metrics.WebSocketConnectionsCurrent.Set(float64(h.total))
	slog.Debug("Websocket client registered", "session_id", c.sessionID, "session_clients", len(clients))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(sessionID uuid.UUID, conn *websocket.Conn) {
	clients, exists := h.clients[sessionID]
	if !exists {
		return
	}
	cw, exists := clients[conn]
	if !exists {
		return
	}

	cw.stop()
	delete(clients, conn)
	h.total--
	if len(clients) == 0 {
		delete(h.clients, sessionID)
	}
	metrics.WebSocketConnectionsCurrent.Set(float64(h.total))
}

func (h *Hub) handleBroadcast(c cmdBroadcast) {
	clients, exists := h.clients[c.sessionID]
	if !exists {
		return
	}

	var slow []*websocket.Conn
	for conn, cw := range clients {
		select {
		case cw.sendCh <- c.data:
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Evicting slow websocket client", "session_id", c.sessionID)
		metrics.WebSocketSlowClientsEvicted.Inc()
		h.handleUnregister(c.sessionID, conn)
	}
}

func (h *Hub) handleStop() {
	for sessionID, clients := range h.clients {
		for conn, cw := range clients {
			cw.stop()
			delete(clients, conn)
		}
		delete(h.clients, sessionID)
	}
	h.total = 0
	metrics.WebSocketConnectionsCurrent.Set(0)
	close(h.stopped)
}

// Register adds a connection for the session. It returns ErrConnectionLimit
// when the global cap is reached; the connection is closed in that case.
func (h *Hub) Register(sessionID uuid.UUID, conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- cmdRegister{sessionID: sessionID, conn: conn, errCh: errCh}
	return <-errCh
}

// Unregister removes a connection for the session.
func (h *Hub) Unregister(sessionID uuid.UUID, conn *websocket.Conn) {
	h.cmdCh <- cmdUnregister{sessionID: sessionID, conn: conn}
}

// BroadcastSample pushes a scored sample to all clients of the session.
func (h *Hub) BroadcastSample(sessionID uuid.UUID, sample sentiment.Sample) {
	data, err := json.Marshal(sample)
	if err != nil {
		slog.Error("Failed to marshal sample for broadcast", "error", err)
		return
	}
	h.cmdCh <- cmdBroadcast{sessionID: sessionID, data: data}
}

// ClientCount returns the number of connected clients across all sessions.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdClientCount{replyCh: replyCh}
	return <-replyCh
}

// Stop closes all connections and shuts the hub down.
func (h *Hub) Stop() {
	h.cmdCh <- cmdStop{}
	<-h.stopped
}
