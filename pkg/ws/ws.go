// Package ws implements the broadcast-only WebSocket feed behind
// /ws/admin/orders. The server relays order lifecycle events into
// Hub.Broadcast and every connected dashboard receives them.
package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shashiranjanraj/drivehub/pkg/logger"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingEvery    = 54 * time.Second
	readLimit    = 64 * 1024
	sendBuffer   = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default. Restrict in production.
	CheckOrigin: func(*http.Request) bool { return true },
}

// SetCheckOrigin replaces the allow-all origin check.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// Hub tracks connected clients and fans Broadcast out to all of them.
// Clients that cannot keep up are dropped rather than backing up the feed.
type Hub struct {
	Broadcast chan []byte

	clients map[*client]struct{}
	join    chan *client
	leave   chan *client
}

func NewHub() *Hub {
	return &Hub{
		Broadcast: make(chan []byte, sendBuffer),
		clients:   make(map[*client]struct{}),
		join:      make(chan *client),
		leave:     make(chan *client),
	}
}

// Run owns the client set. Start it in its own goroutine before serving.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.join:
			h.clients[c] = struct{}{}
			logger.Info("ws: client connected", "total", len(h.clients))

		case c := <-h.leave:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				logger.Info("ws: client disconnected", "total", len(h.clients))
			}

		case msg := <-h.Broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Upgrade switches the HTTP connection to WebSocket and attaches it to hub.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}
	c := &client{hub: hub, conn: conn, send: make(chan []byte, sendBuffer)}
	hub.join <- c
	go c.writeLoop()
	go c.readLoop()
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// readLoop discards inbound frames (the feed is one-way) but keeps the
// pong deadline fresh so dead connections get reaped.
func (c *client) readLoop() {
	defer func() {
		c.hub.leave <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			return
		}
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
