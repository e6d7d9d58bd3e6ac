package session

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/worldsmp/worlds-server/internal/model"
	"github.com/worldsmp/worlds-server/internal/registry"
	"github.com/worldsmp/worlds-server/internal/services/auth"
	"github.com/worldsmp/worlds-server/internal/services/chat"
	"github.com/worldsmp/worlds-server/internal/services/combat"
	"github.com/worldsmp/worlds-server/internal/services/players"
	"github.com/worldsmp/worlds-server/internal/services/world"
)

// Conn is a single client connection as seen by the engine.
type Conn interface {
	ID() model.ConnID
	Emit(event model.EventType, payload any)
	SetIdentity(username, token string)
	Identity() (username, token string)
}

// Broadcaster fans an event out to every connected, authenticated client,
// optionally excluding one connection ("" excludes nobody).
type Broadcaster interface {
	Broadcast(event model.EventType, payload any, exclude model.ConnID)
}

// ServerConfig describes the server to clients at login.
type ServerConfig struct {
	Name         string
	Description  string
	MaxPlayers   int
	PreviewBlock string
	RequireLogin bool
	Version      string
}

// DefaultServerConfig returns the stock server identity.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Name:         "WORLDS Official",
		Description:  "The official WORLDS server - Build, Fight, Survive!",
		MaxPlayers:   50,
		PreviewBlock: registry.BlockGrass,
		RequireLogin: true,
		Version:      "0.7.0-beta",
	}
}

// DefaultLoginForm returns the stock login-screen styling.
func DefaultLoginForm() model.LoginFormConfig {
	return model.LoginFormConfig{
		Title:              "Welcome",
		Subtitle:           "Enter your credentials",
		BackgroundColor:    "#0a0a15",
		AccentColor:        "#8b5cf6",
		ButtonText:         "ENTER WORLD",
		RegisterButtonText: "CREATE ACCOUNT",
		ShowRememberMe:     true,
		LogoText:           "WORLDS",
	}
}

// Controller is the session engine: it routes decoded client events to the
// right handler and owns the login bootstrap and disconnect flows.
type Controller struct {
	auth     *auth.Service
	world    *world.Service
	players  *players.Service
	combat   *combat.Service
	chat     *chat.Service
	registry *registry.Registry
	hub      Broadcaster
	logger   *slog.Logger

	cfg       ServerConfig
	loginForm model.LoginFormConfig
}

// NewController wires the session engine.
func NewController(
	authService *auth.Service,
	worldService *world.Service,
	playerStore *players.Service,
	combatService *combat.Service,
	chatService *chat.Service,
	reg *registry.Registry,
	hub Broadcaster,
	cfg ServerConfig,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		auth:      authService,
		world:     worldService,
		players:   playerStore,
		combat:    combatService,
		chat:      chatService,
		registry:  reg,
		hub:       hub,
		logger:    logger.With(slog.String("component", "session")),
		cfg:       cfg,
		loginForm: DefaultLoginForm(),
	}
}

// Dispatch routes one decoded application event. Unknown event names and
// malformed payloads are dropped; handler failures are reported only to the
// originating connection via result events.
func (c *Controller) Dispatch(ctx context.Context, conn Conn, name string, payload json.RawMessage) {
	event, ok := model.ParseEventType(name)
	if !ok {
		c.logger.Debug("unknown event dropped",
			slog.String("event", name),
			slog.String("conn", string(conn.ID())))
		return
	}

	switch event {
	case model.EventRegister:
		c.handleRegister(ctx, conn, payload)
	case model.EventLogin:
		c.handleLogin(ctx, conn, payload)
	case model.EventMove:
		c.handleMove(conn, payload)
	case model.EventBreakBlock:
		c.handleBreakBlock(conn, payload)
	case model.EventPlaceBlock:
		c.handlePlaceBlock(conn, payload)
	case model.EventAttack:
		c.handleAttack(conn, payload)
	case model.EventRespawn:
		c.handleRespawn(conn)
	case model.EventChat:
		c.handleChat(conn, payload)
	}
}

func (c *Controller) handleRegister(ctx context.Context, conn Conn, payload json.RawMessage) {
	var creds model.CredentialsPayload
	if err := json.Unmarshal(payload, &creds); err != nil {
		return
	}

	if err := c.auth.Register(ctx, creds.Username, creds.Password); err != nil {
		conn.Emit(model.EventRegisterResult, model.ResultPayload{Error: err.Error()})
		return
	}
	conn.Emit(model.EventRegisterResult, model.ResultPayload{Success: true})

	// Fresh accounts are logged straight in
	c.login(ctx, conn, creds.Username, creds.Password)
}

func (c *Controller) handleLogin(ctx context.Context, conn Conn, payload json.RawMessage) {
	var creds model.CredentialsPayload
	if err := json.Unmarshal(payload, &creds); err != nil {
		return
	}
	c.login(ctx, conn, creds.Username, creds.Password)
}

// login authenticates the connection and, on success, runs the spawn
// bootstrap: serverInfo, loginResult, init, then join broadcasts to others.
func (c *Controller) login(ctx context.Context, conn Conn, username, password string) {
	result, err := c.auth.Login(ctx, username, password)
	if err != nil {
		conn.Emit(model.EventLoginResult, model.ResultPayload{Error: err.Error()})
		return
	}

	conn.SetIdentity(username, result.Token)
	player := c.players.Spawn(conn.ID(), username, result.Data)

	conn.Emit(model.EventServerInfo, c.serverInfo())
	conn.Emit(model.EventLoginResult, model.ResultPayload{Success: true, AutoLogin: true})
	conn.Emit(model.EventInit, model.InitPayload{
		ID:              conn.ID(),
		Username:        username,
		Players:         c.players.Others(conn.ID()),
		World:           c.world.Entries(),
		PremadeMessages: c.chat.Presets(),
		BlockTextures:   c.registry.BlockTextures(),
		ItemTextures:    c.registry.ItemTextures(),
		Weapons:         c.registry.Weapons,
		Tools:           c.registry.Tools,
		Blocks:          c.registry.Blocks,
	})

	notice := model.ChatPayload{Type: model.ChatTypeJoin, Username: username}
	c.chat.Record(notice)
	c.hub.Broadcast(model.EventChat, notice, conn.ID())
	c.hub.Broadcast(model.EventPlayerJoin, player, conn.ID())

	c.logger.Info("player joined",
		slog.String("username", username),
		slog.Int("players", c.players.Count()))
}

func (c *Controller) serverInfo() model.ServerInfoPayload {
	info := model.ServerInfoPayload{
		Name:           c.cfg.Name,
		Description:    c.cfg.Description,
		MaxPlayers:     c.cfg.MaxPlayers,
		CurrentPlayers: c.players.Count(),
		RequireLogin:   c.cfg.RequireLogin,
		Version:        c.cfg.Version,
		LoginForm:      c.loginForm,
	}
	if def, ok := c.registry.Block(c.cfg.PreviewBlock); ok {
		info.PreviewTexture = def.Texture
	}
	return info
}

func (c *Controller) handleMove(conn Conn, payload json.RawMessage) {
	var update model.MovePayload
	if err := json.Unmarshal(payload, &update); err != nil {
		return
	}

	if !c.players.Move(conn.ID(), update) {
		return
	}
	c.hub.Broadcast(model.EventPlayerMove, model.PlayerMovePayload{
		ID:          conn.ID(),
		MovePayload: update,
	}, conn.ID())
}

func (c *Controller) handleBreakBlock(conn Conn, payload json.RawMessage) {
	var req model.BreakBlockPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	broken, ok := c.world.Break(model.BlockPos{X: req.X, Y: req.Y, Z: req.Z}, conn.ID())
	if !ok {
		return
	}
	c.hub.Broadcast(model.EventBlockBroken, broken, "")
}

func (c *Controller) handlePlaceBlock(conn Conn, payload json.RawMessage) {
	var req model.PlaceBlockPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	placed, ok := c.world.Place(model.BlockPos{X: req.X, Y: req.Y, Z: req.Z}, req.Type, conn.ID())
	if !ok {
		return
	}
	c.hub.Broadcast(model.EventBlockPlaced, placed, "")
}

func (c *Controller) handleAttack(conn Conn, payload json.RawMessage) {
	var req model.AttackPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	outcome := c.combat.ResolveAttack(conn.ID(), req.TargetID)
	if outcome == nil {
		return
	}
	c.hub.Broadcast(model.EventPlayerHit, outcome.Hit, "")
	if outcome.Death != nil {
		c.hub.Broadcast(model.EventPlayerDeath, outcome.Death, "")
	}
}

func (c *Controller) handleRespawn(conn Conn) {
	player, ok := c.players.Respawn(conn.ID())
	if !ok {
		return
	}
	c.hub.Broadcast(model.EventPlayerRespawn, model.PlayerRespawnPayload{
		ID:       conn.ID(),
		Position: player.Position,
		Health:   player.Health,
	}, "")
}

func (c *Controller) handleChat(conn Conn, payload json.RawMessage) {
	// The chat payload is a bare preset index
	var index int
	if err := json.Unmarshal(payload, &index); err != nil {
		return
	}

	player, ok := c.players.Get(conn.ID())
	if !ok {
		return
	}
	message, ok := c.chat.Resolve(index)
	if !ok {
		return
	}

	entry := model.ChatPayload{
		Type:     model.ChatTypeMessage,
		Username: player.Username,
		Message:  message,
	}
	c.chat.Record(entry)
	c.hub.Broadcast(model.EventChat, entry, "")
}

// Disconnect runs cleanup for a closing connection: persist the player's
// snapshot when authenticated, notify the others, and drop live state. The
// transport removes the connection from its registry afterwards.
func (c *Controller) Disconnect(ctx context.Context, conn Conn) {
	player, ok := c.players.Remove(conn.ID())
	if !ok {
		return
	}

	username, token := conn.Identity()
	if username != "" {
		if err := c.auth.SaveSnapshot(ctx, username, player.Position, player.Inventory); err != nil {
			c.logger.Error("failed to persist player snapshot",
				slog.String("username", username),
				slog.String("error", err.Error()))
		}
	}

	notice := model.ChatPayload{Type: model.ChatTypeLeave, Username: player.Username}
	c.chat.Record(notice)
	c.hub.Broadcast(model.EventChat, notice, conn.ID())
	c.hub.Broadcast(model.EventPlayerLeave, model.PlayerLeavePayload{ID: conn.ID()}, conn.ID())

	if token != "" {
		c.auth.RevokeToken(token)
	}

	c.logger.Info("player left",
		slog.String("username", player.Username),
		slog.Int("players", c.players.Count()))
}
