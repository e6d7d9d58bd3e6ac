package players

import (
	"log/slog"
	"sync"

	"github.com/worldsmp/worlds-server/internal/dependencies/random"
	"github.com/worldsmp/worlds-server/internal/model"
	"github.com/worldsmp/worlds-server/internal/services/world"
)

const (
	// spawnHeight is the y level of fresh spawns, above the platform surface.
	spawnHeight = world.PlatformHeight + 3

	// spawnJitter is the horizontal extent of randomized spawn positions:
	// x,z in [-spawnJitter/2, spawnJitter/2).
	spawnJitter = 10.0
)

// Service is the authoritative store of live per-connection player state.
type Service struct {
	random random.Random
	logger *slog.Logger

	mu      sync.RWMutex
	players map[model.ConnID]*model.Player
}

// New creates an empty player store.
func New(rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		random:  rnd,
		logger:  logger.With(slog.String("component", "players")),
		players: make(map[model.ConnID]*model.Player),
	}
}

// Spawn creates the live player for a freshly authenticated connection. The
// snapshot's stored position and inventory are used when present; otherwise
// the player gets a randomized spawn and the starter inventory.
func (s *Service) Spawn(id model.ConnID, username string, snapshot model.Snapshot) model.Player {
	position := s.randomSpawn()
	if snapshot.Position != nil {
		position = *snapshot.Position
	}

	inventory := snapshot.Inventory
	if inventory == nil {
		inventory = model.DefaultInventory()
	}

	player := &model.Player{
		ID:        id,
		Username:  username,
		Position:  position,
		Health:    model.MaxHealth,
		Inventory: inventory,
	}

	s.mu.Lock()
	s.players[id] = player
	s.mu.Unlock()

	s.logger.Info("player spawned",
		slog.String("id", string(id)),
		slog.String("username", username))

	return *player
}

// Get returns a copy of the player's current state.
func (s *Service) Get(id model.ConnID) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return model.Player{}, false
	}
	return *player, true
}

// Move applies a client-reported update wholesale. Unknown or dead players
// are a no-op. Inventory is only replaced when the update carries one.
func (s *Service) Move(id model.ConnID, update model.MovePayload) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok || player.IsDead {
		return false
	}

	player.Position = update.Position
	player.Rotation = update.Rotation
	player.HeldItem = update.HeldItem
	player.IsSwinging = update.IsSwinging
	if update.Inventory != nil {
		player.Inventory = update.Inventory
	}
	return true
}

// ApplyDamage subtracts damage from the player's health; health may go
// negative. When health drops to zero or below the player is marked dead.
// died is true only on the transition into death.
func (s *Service) ApplyDamage(id model.ConnID, damage int) (health int, died bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, found := s.players[id]
	if !found {
		return 0, false, false
	}

	player.Health -= damage
	if player.Health <= 0 && !player.IsDead {
		player.IsDead = true
		died = true
	}
	return player.Health, died, true
}

// Respawn resets the player to full health at a fresh randomized spawn.
func (s *Service) Respawn(id model.ConnID) (model.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return model.Player{}, false
	}

	player.Health = model.MaxHealth
	player.IsDead = false
	player.Position = s.randomSpawn()
	return *player, true
}

// Remove deletes the player and returns its final state for persistence.
func (s *Service) Remove(id model.ConnID) (model.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return model.Player{}, false
	}
	delete(s.players, id)
	return *player, true
}

// Others returns copies of every player except the excluded one.
func (s *Service) Others(exclude model.ConnID) []*model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	others := make([]*model.Player, 0, len(s.players))
	for id, player := range s.players {
		if id == exclude {
			continue
		}
		copied := *player
		others = append(others, &copied)
	}
	return others
}

// Count returns the number of live players.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

func (s *Service) randomSpawn() model.Vec3 {
	return model.Vec3{
		X: s.random.Float64()*spawnJitter - spawnJitter/2,
		Y: spawnHeight,
		Z: s.random.Float64()*spawnJitter - spawnJitter/2,
	}
}
