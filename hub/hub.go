// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/survey-tally/models"
)

const writeWait = 5 * time.Second

// Hub fans out aggregate snapshots to live dashboard connections.
// Writes happen under the hub lock since a websocket allows one writer.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func New() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

// Add sends the initial snapshot and registers the connection.
func (h *Hub) Add(conn *websocket.Conn, initial models.Aggregate) error {
	data, err := encode(initial)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := write(conn, data); err != nil {
		return err
	}
	h.conns[conn] = true
	slog.Info("stream client connected", "clients", len(h.conns))
	return nil
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[conn] {
		delete(h.conns, conn)
		slog.Info("stream client disconnected", "clients", len(h.conns))
	}
	conn.Close()
}

// Broadcast pushes agg to every client, dropping the ones that fail.
func (h *Hub) Broadcast(agg models.Aggregate) {
	data, err := encode(agg)
	if err != nil {
		slog.Error("failed to encode stream message", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := write(conn, data); err != nil {
			slog.Warn("stream write failed", "error", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		delete(h.conns, conn)
	}
}

func encode(agg models.Aggregate) ([]byte, error) {
	return json.Marshal(models.StreamMessage{Type: "stats", Data: agg})
}

func write(conn *websocket.Conn, data []byte) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
