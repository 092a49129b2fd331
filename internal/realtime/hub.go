// Package realtime fans out community alerts and chat messages to
// connected websocket clients.
package realtime

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"neighborhood-share/internal/model"
	"neighborhood-share/internal/session"
)

const (
	writeDeadline = 5 * time.Second
	readDeadline  = 60 * time.Second
	pingInterval  = 25 * time.Second
	readLimit     = 4 << 10
	sendBuffer    = 16
)

type client struct {
	sessionID string
	conn      *websocket.Conn
	send      chan model.RealtimeEvent
}

// Hub owns the set of connected clients. All client bookkeeping happens in
// the Run goroutine.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan model.RealtimeEvent
	stats      chan chan int
	done       chan struct{}
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan model.RealtimeEvent, 64),
		stats:      make(chan chan int),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Run serves the hub until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	clients := make(map[*client]struct{})
	defer func() {
		close(h.done)
		for c := range clients {
			close(c.send)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			clients[c] = struct{}{}
			h.logger.Debug("ws register", zap.String("session", c.sessionID), zap.Int("clients", len(clients)))
		case c := <-h.unregister:
			if _, ok := clients[c]; ok {
				delete(clients, c)
				close(c.send)
				h.logger.Debug("ws unregister", zap.String("session", c.sessionID))
			}
		case reply := <-h.stats:
			reply <- len(clients)
		case evt := <-h.broadcast:
			for c := range clients {
				select {
				case c.send <- evt:
				default:
					// slow consumer; drop it rather than stall the hub
					delete(clients, c)
					close(c.send)
					h.logger.Warn("ws client too slow, disconnecting", zap.String("session", c.sessionID))
				}
			}
		}
	}
}

// Broadcast queues evt for every connected client. Events sent after the
// hub stopped are dropped.
func (h *Hub) Broadcast(evt model.RealtimeEvent) {
	select {
	case h.broadcast <- evt:
	case <-h.done:
	}
}

// Connected returns the number of attached clients, or 0 once the hub has
// stopped.
func (h *Hub) Connected() int {
	reply := make(chan int, 1)
	select {
	case h.stats <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	c := &client{
		sessionID: session.ID(r.Context()),
		conn:      conn,
		send:      make(chan model.RealtimeEvent, sendBuffer),
	}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go h.writePump(c)
	go h.readPump(c)
}

// readPump discards client frames; it exists to process pongs and notice
// disconnects.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	})
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case evt, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(evt); err != nil {
				h.logger.Debug("ws write failed", zap.String("session", c.sessionID), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
