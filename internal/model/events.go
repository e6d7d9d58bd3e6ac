package model

// EventType identifies an application event on the wire.
type EventType string

// Client-sent events
const (
	EventRegister   EventType = "register"
	EventLogin      EventType = "login"
	EventMove       EventType = "move"
	EventBreakBlock EventType = "breakBlock"
	EventPlaceBlock EventType = "placeBlock"
	EventAttack     EventType = "attack"
	EventRespawn    EventType = "respawn"
	EventChat       EventType = "chat"
)

// Server-sent events
const (
	EventRegisterResult EventType = "registerResult"
	EventLoginResult    EventType = "loginResult"
	EventServerInfo     EventType = "serverInfo"
	EventInit           EventType = "init"
	EventPlayerJoin     EventType = "playerJoin"
	EventPlayerLeave    EventType = "playerLeave"
	EventPlayerMove     EventType = "playerMove"
	EventBlockBroken    EventType = "blockBroken"
	EventBlockPlaced    EventType = "blockPlaced"
	EventPlayerHit      EventType = "playerHit"
	EventPlayerDeath    EventType = "playerDeath"
	EventPlayerRespawn  EventType = "playerRespawn"
)

var clientEvents = map[EventType]bool{
	EventRegister:   true,
	EventLogin:      true,
	EventMove:       true,
	EventBreakBlock: true,
	EventPlaceBlock: true,
	EventAttack:     true,
	EventRespawn:    true,
	EventChat:       true,
}

// ParseEventType validates an inbound event name against the closed set of
// client events. Unknown names are rejected rather than silently dispatched.
func ParseEventType(name string) (EventType, bool) {
	et := EventType(name)
	if !clientEvents[et] {
		return "", false
	}
	return et, true
}

// Client payloads

// CredentialsPayload is the payload for register and login events.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MovePayload is a client-reported state update, applied wholesale.
type MovePayload struct {
	Position   Vec3         `json:"position"`
	Rotation   Rotation     `json:"rotation"`
	HeldItem   int          `json:"heldItem"`
	IsSwinging bool         `json:"isSwinging"`
	Inventory  []*ItemStack `json:"inventory,omitempty"`
}

// BreakBlockPayload names the coordinate to break.
type BreakBlockPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// PlaceBlockPayload names the coordinate and block type to place.
type PlaceBlockPayload struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Z    int    `json:"z"`
	Type string `json:"type"`
}

// AttackPayload names the attack target.
type AttackPayload struct {
	TargetID ConnID `json:"targetId"`
}

// Server payloads

// ResultPayload reports the outcome of a register or login attempt.
type ResultPayload struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	AutoLogin bool   `json:"autoLogin,omitempty"`
}

// PlayerMovePayload is the broadcast form of a move update.
type PlayerMovePayload struct {
	ID ConnID `json:"id"`
	MovePayload
}

// BlockBrokenPayload announces a removed block. Type carries the drop
// identifier for the broken block's type.
type BlockBrokenPayload struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Z    int    `json:"z"`
	By   ConnID `json:"by"`
	Type string `json:"type"`
}

// BlockPlacedPayload announces a newly placed block.
type BlockPlacedPayload struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Z    int    `json:"z"`
	Type string `json:"type"`
	By   ConnID `json:"by"`
}

// PlayerHitPayload announces damage applied to a player.
type PlayerHitPayload struct {
	ID        ConnID `json:"id"`
	Health    int    `json:"health"`
	By        ConnID `json:"by"`
	Damage    int    `json:"damage"`
	IsCrit    bool   `json:"isCrit"`
	Knockback Vec3   `json:"knockback"`
}

// PlayerDeathPayload announces a kill.
type PlayerDeathPayload struct {
	ID         ConnID `json:"id"`
	KillerName string `json:"killerName"`
	VictimName string `json:"victimName"`
}

// PlayerRespawnPayload announces a respawn with the new spawn position.
type PlayerRespawnPayload struct {
	ID       ConnID `json:"id"`
	Position Vec3   `json:"position"`
	Health   int    `json:"health"`
}

// PlayerLeavePayload announces a departed player.
type PlayerLeavePayload struct {
	ID ConnID `json:"id"`
}

// Chat message type constants
const (
	ChatTypeJoin    = "join"
	ChatTypeLeave   = "leave"
	ChatTypeMessage = "message"
)

// ChatPayload is a broadcast chat line: a join/leave notice or a resolved
// preset message.
type ChatPayload struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Message  string `json:"message,omitempty"`
}

// ServerInfoPayload describes the server to a freshly authenticated client.
type ServerInfoPayload struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	MaxPlayers     int             `json:"maxPlayers"`
	CurrentPlayers int             `json:"currentPlayers"`
	RequireLogin   bool            `json:"requireLogin"`
	Version        string          `json:"version"`
	PreviewTexture Texture         `json:"previewTexture,omitempty"`
	LoginForm      LoginFormConfig `json:"loginForm"`
}

// LoginFormConfig is cosmetic login-screen configuration passed through to
// the client untouched.
type LoginFormConfig struct {
	Title              string `json:"title"`
	Subtitle           string `json:"subtitle"`
	BackgroundColor    string `json:"backgroundColor"`
	AccentColor        string `json:"accentColor"`
	ButtonText         string `json:"buttonText"`
	RegisterButtonText string `json:"registerButtonText"`
	ShowRememberMe     bool   `json:"showRememberMe"`
	LogoText           string `json:"logoText"`
	CustomCSS          string `json:"customCSS"`
}

// InitPayload is the full bootstrap sent once after a successful login.
type InitPayload struct {
	ID              ConnID               `json:"id"`
	Username        string               `json:"username"`
	Players         []*Player            `json:"players"`
	World           []BlockEntry         `json:"world"`
	PremadeMessages []string             `json:"premadeMessages"`
	BlockTextures   map[string]Texture   `json:"blockTextures"`
	ItemTextures    map[string]Texture   `json:"itemTextures"`
	Weapons         map[string]WeaponDef `json:"weapons"`
	Tools           map[string]ToolDef   `json:"tools"`
	Blocks          map[string]BlockDef  `json:"blocks"`
}
