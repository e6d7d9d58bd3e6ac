package world

import (
	"log/slog"
	"sync"

	"github.com/worldsmp/worlds-server/internal/dependencies/random"
	"github.com/worldsmp/worlds-server/internal/model"
	"github.com/worldsmp/worlds-server/internal/registry"
)

// World shape constants
const (
	// PlatformSize is the horizontal extent of the spawn platform; blocks
	// cover |x|,|z| <= PlatformSize.
	PlatformSize = 30

	// PlatformHeight is the y level of the platform surface.
	PlatformHeight = 40

	// subLayerChance is the probability of a block in the lowest layer.
	subLayerChance = 0.7
)

// Service is the authoritative world store: a sparse mapping from block
// coordinates to block types. At most one block type per coordinate.
type Service struct {
	registry *registry.Registry
	random   random.Random
	logger   *slog.Logger

	mu     sync.RWMutex
	blocks map[string]string // "x,y,z" -> block type
}

// New creates the world store and generates the initial terrain.
func New(reg *registry.Registry, rnd random.Random, logger *slog.Logger) *Service {
	s := &Service{
		registry: reg,
		random:   rnd,
		logger:   logger.With(slog.String("component", "world")),
		blocks:   make(map[string]string),
	}
	s.Generate()
	return s
}

// Generate resets the world to freshly generated terrain: a grass platform at
// PlatformHeight, a solid stone layer below it, and a partial stone layer two
// below.
func (s *Service) Generate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocks = make(map[string]string)
	for x := -PlatformSize; x <= PlatformSize; x++ {
		for z := -PlatformSize; z <= PlatformSize; z++ {
			s.blocks[model.BlockPos{X: x, Y: PlatformHeight, Z: z}.Key()] = registry.BlockGrass
		}
	}
	for x := -PlatformSize; x <= PlatformSize; x++ {
		for z := -PlatformSize; z <= PlatformSize; z++ {
			s.blocks[model.BlockPos{X: x, Y: PlatformHeight - 1, Z: z}.Key()] = registry.BlockStone
			if s.random.Float64() < subLayerChance {
				s.blocks[model.BlockPos{X: x, Y: PlatformHeight - 2, Z: z}.Key()] = registry.BlockStone
			}
		}
	}

	s.logger.Info("world generated", slog.Int("blocks", len(s.blocks)))
}

// Break removes the block at pos if present and returns the broadcast
// payload. The payload carries the block type's drop identifier, falling back
// to the block type itself when the definition has none.
func (s *Service) Break(pos model.BlockPos, actor model.ConnID) (*model.BlockBrokenPayload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pos.Key()
	blockType, ok := s.blocks[key]
	if !ok {
		return nil, false
	}
	delete(s.blocks, key)

	drop := blockType
	if def, ok := s.registry.Block(blockType); ok && def.Drops != "" {
		drop = def.Drops
	}

	return &model.BlockBrokenPayload{
		X:    pos.X,
		Y:    pos.Y,
		Z:    pos.Z,
		By:   actor,
		Type: drop,
	}, true
}

// Place puts a block at pos. It only succeeds when the coordinate is empty
// and the type is registered; an occupied cell is never overwritten.
func (s *Service) Place(pos model.BlockPos, blockType string, actor model.ConnID) (*model.BlockPlacedPayload, bool) {
	if _, ok := s.registry.Block(blockType); !ok {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pos.Key()
	if _, occupied := s.blocks[key]; occupied {
		return nil, false
	}
	s.blocks[key] = blockType

	return &model.BlockPlacedPayload{
		X:    pos.X,
		Y:    pos.Y,
		Z:    pos.Z,
		Type: blockType,
		By:   actor,
	}, true
}

// BlockAt returns the block type at pos, if any.
func (s *Service) BlockAt(pos model.BlockPos) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blockType, ok := s.blocks[pos.Key()]
	return blockType, ok
}

// Entries returns the full world as [key, type] pairs for the init snapshot.
func (s *Service) Entries() []model.BlockEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]model.BlockEntry, 0, len(s.blocks))
	for key, blockType := range s.blocks {
		entries = append(entries, model.BlockEntry{key, blockType})
	}
	return entries
}

// Count returns the number of placed blocks.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks)
}
