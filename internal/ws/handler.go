package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/worldsmp/worlds-server/internal/dependencies/random"
	"github.com/worldsmp/worlds-server/internal/model"
	"github.com/worldsmp/worlds-server/internal/services/session"
)

const (
	connIDLength   = 32
	connIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	maxMessageSize = 1 << 20
)

// Engine handles decoded application events and connection teardown.
type Engine interface {
	Dispatch(ctx context.Context, conn session.Conn, name string, payload json.RawMessage)
	Disconnect(ctx context.Context, conn session.Conn)
}

// Handler upgrades HTTP requests to websocket sessions and runs their read
// loops.
type Handler struct {
	hub      *Hub
	engine   Engine
	random   random.Random
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates the websocket endpoint handler.
func NewHandler(hub *Hub, engine Engine, rnd random.Random, logger *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		engine: engine,
		random: rnd,
		logger: logger.With(slog.String("component", "ws")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Game clients connect from arbitrary origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	id := model.ConnID(h.random.String(connIDLength, connIDAlphabet))
	client := NewClient(conn, id, h.logger)
	h.hub.Add(client)

	h.logger.Info("connection opened", slog.String("conn", string(id)))

	go client.WritePump()
	h.readLoop(r.Context(), client)
}

// readLoop consumes frames until the connection drops, then runs teardown.
func (h *Handler) readLoop(ctx context.Context, client *Client) {
	defer func() {
		h.engine.Disconnect(ctx, client)
		h.hub.Remove(client.ID())
		client.Close()
		h.logger.Info("connection closed", slog.String("conn", string(client.ID())))
	}()

	client.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			return
		}
		h.handleFrame(ctx, client, string(data))
	}
}

func (h *Handler) handleFrame(ctx context.Context, client *Client, text string) {
	frame := DecodeFrame(text)
	switch frame.Kind {
	case FramePing:
		client.enqueue(PongFrame)
	case FrameOpen:
		client.enqueue(OpenAck(client.SID()))
	case FrameConnect:
		client.SetConnected(true)
		client.enqueue(ConnectAck)
	case FrameEvent:
		h.engine.Dispatch(ctx, client, frame.Event, frame.Payload)
	}
}
