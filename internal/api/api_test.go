package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldsmp/worlds-server/internal/api"
	"github.com/worldsmp/worlds-server/internal/factory"
	"github.com/worldsmp/worlds-server/internal/model"
	"github.com/worldsmp/worlds-server/internal/testutil"
)

const readWait = 5 * time.Second

// newTestServer wires the full application behind an httptest server.
func newTestServer(t *testing.T) (*httptest.Server, *factory.App) {
	t.Helper()

	app, err := factory.New(factory.Config{Logger: testutil.NopLogger()})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:        testutil.NopLogger(),
		SocketHandler: app.SocketHandler,
		Players:       app.PlayerService,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, app
}

// dialSocket connects a websocket client and completes the transport
// handshake.
func dialSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := strings.Replace(server.URL, "http://", "ws://", 1) + "/socket.io/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	writeFrame(t, conn, "0")
	open := readFrame(t, conn)
	require.True(t, strings.HasPrefix(open, "0"), "expected handshake ack, got %q", open)
	assert.Contains(t, open, `"pingInterval":25000`)

	writeFrame(t, conn, "40")
	require.Equal(t, "40", readFrame(t, conn))

	return conn
}

func writeFrame(t *testing.T, conn *websocket.Conn, frame string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
}

func readFrame(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readWait)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

// readEvent reads frames until the next application event.
func readEvent(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	for {
		frame := readFrame(t, conn)
		if !strings.HasPrefix(frame, "42") {
			continue
		}
		var parts []json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(frame[2:]), &parts))
		require.NotEmpty(t, parts)

		var name string
		require.NoError(t, json.Unmarshal(parts[0], &name))
		if len(parts) > 1 {
			return name, parts[1]
		}
		return name, nil
	}
}

func sendEvent(t *testing.T, conn *websocket.Conn, event model.EventType, payload any) {
	t.Helper()
	body, err := json.Marshal([]any{event, payload})
	require.NoError(t, err)
	writeFrame(t, conn, "42"+string(body))
}

// registerAndLogin registers a fresh account, which auto-logs in, and
// consumes the bootstrap events through init.
func registerAndLogin(t *testing.T, conn *websocket.Conn, username string) model.InitPayload {
	t.Helper()

	sendEvent(t, conn, model.EventRegister, model.CredentialsPayload{
		Username: username,
		Password: "secret",
	})

	for {
		name, payload := readEvent(t, conn)
		if name != string(model.EventInit) {
			continue
		}
		var init model.InitPayload
		require.NoError(t, json.Unmarshal(payload, &init))
		return init
	}
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		Status  string `json:"status"`
		Players int    `json:"players"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 0, body.Players)
}

func TestIndexEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
}

func TestPingPong(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dialSocket(t, server)

	writeFrame(t, conn, "2")
	assert.Equal(t, "3", readFrame(t, conn))
}

func TestRegisterBootstrap(t *testing.T) {
	server, app := newTestServer(t)
	conn := dialSocket(t, server)

	sendEvent(t, conn, model.EventRegister, model.CredentialsPayload{
		Username: "alice",
		Password: "secret",
	})

	name, payload := readEvent(t, conn)
	require.Equal(t, "registerResult", name)
	var result model.ResultPayload
	require.NoError(t, json.Unmarshal(payload, &result))
	assert.True(t, result.Success)

	name, payload = readEvent(t, conn)
	require.Equal(t, "serverInfo", name)
	var info model.ServerInfoPayload
	require.NoError(t, json.Unmarshal(payload, &info))
	assert.Equal(t, "WORLDS Official", info.Name)
	assert.Equal(t, 1, info.CurrentPlayers)

	name, payload = readEvent(t, conn)
	require.Equal(t, "loginResult", name)
	require.NoError(t, json.Unmarshal(payload, &result))
	assert.True(t, result.Success)
	assert.True(t, result.AutoLogin)

	name, payload = readEvent(t, conn)
	require.Equal(t, "init", name)
	var init model.InitPayload
	require.NoError(t, json.Unmarshal(payload, &init))
	assert.Equal(t, "alice", init.Username)
	assert.NotEmpty(t, init.World)
	assert.Len(t, init.PremadeMessages, 15)

	assert.Equal(t, 1, app.PlayerService.Count())
}

func TestMoveIsBroadcastToOtherClients(t *testing.T) {
	server, _ := newTestServer(t)

	alice := dialSocket(t, server)
	aliceInit := registerAndLogin(t, alice, "alice")

	bob := dialSocket(t, server)
	registerAndLogin(t, bob, "bob")

	// alice sees bob join (chat notice + playerJoin)
	name, _ := readEvent(t, alice)
	assert.Equal(t, "chat", name)
	name, _ = readEvent(t, alice)
	assert.Equal(t, "playerJoin", name)

	sendEvent(t, alice, model.EventMove, model.MovePayload{
		Position: model.Vec3{X: 9, Y: 43, Z: -4},
	})

	name, payload := readEvent(t, bob)
	require.Equal(t, "playerMove", name)
	var move model.PlayerMovePayload
	require.NoError(t, json.Unmarshal(payload, &move))
	assert.Equal(t, aliceInit.ID, move.ID)
	assert.Equal(t, 9.0, move.Position.X)
}

func TestChatReachesEveryone(t *testing.T) {
	server, _ := newTestServer(t)

	alice := dialSocket(t, server)
	registerAndLogin(t, alice, "alice")

	sendEvent(t, alice, model.EventChat, 2)

	name, payload := readEvent(t, alice)
	require.Equal(t, "chat", name)
	var chat model.ChatPayload
	require.NoError(t, json.Unmarshal(payload, &chat))
	assert.Equal(t, "alice", chat.Username)
	assert.Equal(t, "Nice!", chat.Message)
}

func TestDisconnectNotifiesRemainingClients(t *testing.T) {
	server, app := newTestServer(t)

	alice := dialSocket(t, server)
	registerAndLogin(t, alice, "alice")

	bob := dialSocket(t, server)
	bobInit := registerAndLogin(t, bob, "bob")

	// drain bob's join notifications on alice's side
	readEvent(t, alice)
	readEvent(t, alice)

	bob.Close()

	name, payload := readEvent(t, alice)
	require.Equal(t, "chat", name)
	var notice model.ChatPayload
	require.NoError(t, json.Unmarshal(payload, &notice))
	assert.Equal(t, model.ChatTypeLeave, notice.Type)
	assert.Equal(t, "bob", notice.Username)

	name, payload = readEvent(t, alice)
	require.Equal(t, "playerLeave", name)
	var leave model.PlayerLeavePayload
	require.NoError(t, json.Unmarshal(payload, &leave))
	assert.Equal(t, bobInit.ID, leave.ID)

	require.Eventually(t, func() bool {
		return app.PlayerService.Count() == 1
	}, readWait, 10*time.Millisecond)
}
