package ws

import (
	"encoding/json"
	"fmt"

	"github.com/worldsmp/worlds-server/internal/model"
)

// FrameKind classifies an inbound text frame.
type FrameKind int

const (
	// FrameIgnored is anything unrecognized or malformed; it is dropped.
	FrameIgnored FrameKind = iota

	// FramePing is the client heartbeat "2", answered with a pong "3".
	FramePing

	// FrameOpen is the transport open probe, answered with the handshake ack.
	FrameOpen

	// FrameConnect is the namespace connect "40", answered with "40".
	FrameConnect

	// FrameEvent is an application event "42" carrying [name, payload].
	FrameEvent
)

// Frame is a decoded inbound text frame. Event and Payload are set only for
// FrameEvent.
type Frame struct {
	Kind    FrameKind
	Event   string
	Payload json.RawMessage
}

// PongFrame answers a client heartbeat.
const PongFrame = "3"

// ConnectAck answers a namespace connect.
const ConnectAck = "40"

// OpenAck builds the handshake acknowledgement for a session id.
func OpenAck(sid string) string {
	return fmt.Sprintf(`0{"sid":%q,"upgrades":[],"pingInterval":25000,"pingTimeout":20000}`, sid)
}

// DecodeFrame classifies one inbound text frame. Malformed event frames and
// unknown prefixes decode as FrameIgnored.
func DecodeFrame(text string) Frame {
	switch {
	case text == "2":
		return Frame{Kind: FramePing}
	case len(text) >= 2 && text[:2] == "42":
		return decodeEvent(text[2:])
	case len(text) >= 2 && text[:2] == "40":
		return Frame{Kind: FrameConnect}
	case len(text) >= 1 && text[0] == '0':
		return Frame{Kind: FrameOpen}
	default:
		return Frame{Kind: FrameIgnored}
	}
}

func decodeEvent(body string) Frame {
	var parts []json.RawMessage
	if err := json.Unmarshal([]byte(body), &parts); err != nil || len(parts) == 0 {
		return Frame{Kind: FrameIgnored}
	}

	var name string
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return Frame{Kind: FrameIgnored}
	}

	frame := Frame{Kind: FrameEvent, Event: name}
	if len(parts) > 1 {
		frame.Payload = parts[1]
	}
	return frame
}

// EncodeEvent builds an outbound "42" event frame.
func EncodeEvent(event model.EventType, payload any) (string, error) {
	body, err := json.Marshal([]any{event, payload})
	if err != nil {
		return "", err
	}
	return "42" + string(body), nil
}
