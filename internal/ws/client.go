package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/worldsmp/worlds-server/internal/model"
)

const (
	// sendBuffer is the per-client outbound queue size; frames are dropped
	// when a slow client falls this far behind.
	sendBuffer = 256

	// sidLength is how much of the connection id becomes the handshake sid.
	sidLength = 20

	writeTimeout = 10 * time.Second
)

// Client is one live websocket connection. It satisfies the session engine's
// Conn interface; writes go through a buffered queue drained by a single
// writer goroutine.
type Client struct {
	id   model.ConnID
	sid  string
	conn *websocket.Conn

	send      chan string
	closeOnce sync.Once
	done      chan struct{}

	mu        sync.RWMutex
	username  string
	token     string
	connected bool

	logger *slog.Logger
}

// NewClient wraps an upgraded websocket connection.
func NewClient(conn *websocket.Conn, id model.ConnID, logger *slog.Logger) *Client {
	sid := string(id)
	if len(sid) > sidLength {
		sid = sid[:sidLength]
	}
	return &Client{
		id:     id,
		sid:    sid,
		conn:   conn,
		send:   make(chan string, sendBuffer),
		done:   make(chan struct{}),
		logger: logger.With(slog.String("conn", string(id))),
	}
}

// ID returns the connection id.
func (c *Client) ID() model.ConnID { return c.id }

// SID returns the handshake session id.
func (c *Client) SID() string { return c.sid }

// Emit queues an application event for this client.
func (c *Client) Emit(event model.EventType, payload any) {
	frame, err := EncodeEvent(event, payload)
	if err != nil {
		c.logger.Error("failed to encode event",
			slog.String("event", string(event)),
			slog.String("error", err.Error()))
		return
	}
	c.enqueue(frame)
}

// SetIdentity records the authenticated username and session token.
func (c *Client) SetIdentity(username, token string) {
	c.mu.Lock()
	c.username = username
	c.token = token
	c.mu.Unlock()
}

// Identity returns the authenticated username and token, empty before login.
func (c *Client) Identity() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username, c.token
}

// SetConnected marks the namespace handshake as completed.
func (c *Client) SetConnected(connected bool) {
	c.mu.Lock()
	c.connected = connected
	c.mu.Unlock()
}

// Connected reports whether the namespace handshake completed. Broadcasts
// only reach connected clients.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// enqueue queues a raw text frame, dropping it when the client is closed or
// its queue is full.
func (c *Client) enqueue(frame string) {
	select {
	case <-c.done:
	case c.send <- frame:
	default:
		c.logger.Warn("send queue full, dropping frame")
	}
}

// WritePump drains the send queue onto the websocket until the client closes.
// Run it in its own goroutine.
func (c *Client) WritePump() {
	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
	}
}

// Close stops the writer and closes the underlying connection. Safe to call
// more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}
