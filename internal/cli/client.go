package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/worldsmp/worlds-server/internal/model"
	"github.com/worldsmp/worlds-server/internal/ws"
)

const (
	dialTimeout = 10 * time.Second
	readTimeout = 30 * time.Second
)

// GameClient is a websocket client speaking the server's wire protocol.
type GameClient struct {
	conn *websocket.Conn
	sid  string
}

// Dial connects to the server's websocket endpoint and runs the transport
// handshake.
func Dial(serverURL string) (*GameClient, error) {
	wsURL := strings.TrimSuffix(serverURL, "/")
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL += "/socket.io/"

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}

	client := &GameClient{conn: conn}
	if err := client.handshake(); err != nil {
		conn.Close()
		return nil, err
	}
	return client, nil
}

// handshake runs the open probe and namespace connect exchange.
func (c *GameClient) handshake() error {
	if err := c.writeFrame("0"); err != nil {
		return err
	}
	text, err := c.readRaw()
	if err != nil {
		return err
	}
	if ws.DecodeFrame(text).Kind != ws.FrameOpen {
		return fmt.Errorf("unexpected handshake response %q", text)
	}

	var open struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal([]byte(text[1:]), &open); err != nil {
		return fmt.Errorf("malformed handshake ack: %w", err)
	}
	c.sid = open.SID

	if err := c.writeFrame("40"); err != nil {
		return err
	}
	text, err = c.readRaw()
	if err != nil {
		return err
	}
	if ws.DecodeFrame(text).Kind != ws.FrameConnect {
		return fmt.Errorf("unexpected connect response %q", text)
	}
	return nil
}

// SID returns the session id assigned during the handshake.
func (c *GameClient) SID() string {
	return c.sid
}

// Send emits an application event.
func (c *GameClient) Send(event model.EventType, payload any) error {
	frame, err := ws.EncodeEvent(event, payload)
	if err != nil {
		return err
	}
	return c.writeFrame(frame)
}

// Next blocks until the next application event arrives, skipping transport
// frames.
func (c *GameClient) Next() (string, json.RawMessage, error) {
	for {
		frame, err := c.readFrame()
		if err != nil {
			return "", nil, err
		}
		if frame.Kind == ws.FrameEvent {
			return frame.Event, frame.Payload, nil
		}
	}
}

// WaitFor reads events until one of the named ones arrives.
func (c *GameClient) WaitFor(names ...model.EventType) (string, json.RawMessage, error) {
	for {
		event, payload, err := c.Next()
		if err != nil {
			return "", nil, err
		}
		for _, name := range names {
			if event == string(name) {
				return event, payload, nil
			}
		}
	}
}

// Close closes the connection.
func (c *GameClient) Close() error {
	return c.conn.Close()
}

func (c *GameClient) writeFrame(frame string) error {
	c.conn.SetWriteDeadline(time.Now().Add(dialTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

func (c *GameClient) readFrame() (ws.Frame, error) {
	text, err := c.readRaw()
	if err != nil {
		return ws.Frame{}, err
	}
	return ws.DecodeFrame(text), nil
}

func (c *GameClient) readRaw() (string, error) {
	c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// HealthResult is the /healthz response
type HealthResult struct {
	Status  string `json:"status"`
	Players int    `json:"players"`
}

// FetchHealth queries the server's health endpoint.
func FetchHealth(serverURL string) (HealthResult, error) {
	var result HealthResult

	url := strings.TrimSuffix(serverURL, "/") + "/healthz"
	httpClient := &http.Client{Timeout: dialTimeout}
	resp, err := httpClient.Get(url)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}
