package registry

import (
	"github.com/worldsmp/worlds-server/internal/dependencies/random"
	"github.com/worldsmp/worlds-server/internal/model"
)

// Block type names
const (
	BlockGrass = "grass"
	BlockStone = "stone"
)

// Registry holds the immutable block, weapon, and tool definitions. It is
// built once at startup and shared read-only by all handlers.
type Registry struct {
	Blocks  map[string]model.BlockDef
	Weapons map[string]model.WeaponDef
	Tools   map[string]model.ToolDef
}

// New builds the registry, generating item and block textures with the given
// randomness source.
func New(rnd random.Random) *Registry {
	grassTexture := generateTexture(rnd, "#4a9c2d", "#3d7a23", "#5cb33e")
	stoneTexture := generateTexture(rnd, "#808080", "#696969", "#909090")
	swordTexture := generateTexture(rnd, "#c0c0c0", "#a0a0a0", "#d0d0d0")
	mattockTexture := generateTexture(rnd, "#8b4513", "#654321", "#a0522d")

	return &Registry{
		Blocks: map[string]model.BlockDef{
			BlockGrass: {
				Name:            BlockGrass,
				DisplayName:     "Grass Block",
				Hardness:        0.6,
				Drops:           BlockGrass,
				Solid:           true,
				BlastResistance: 1.0,
				Texture:         grassTexture,
			},
			BlockStone: {
				Name:            BlockStone,
				DisplayName:     "Stone",
				Hardness:        1.5,
				Drops:           BlockStone,
				Solid:           true,
				BlastResistance: 1.5,
				Texture:         stoneTexture,
			},
		},
		Weapons: map[string]model.WeaponDef{
			"sword": {
				Name:           "sword",
				DisplayName:    "Iron Sword",
				Damage:         25,
				AttackSpeed:    0.4,
				Knockback:      0.8,
				Range:          3.5,
				CritChance:     0.15,
				CritMultiplier: 1.5,
				Durability:     -1,
				Enchantable:    true,
				Texture:        swordTexture,
			},
		},
		Tools: map[string]model.ToolDef{
			"mattock": {
				Name:        "mattock",
				DisplayName: "Iron Mattock",
				BreakSpeed:  2.5,
				Durability:  100,
				Efficiency:  map[string]float64{BlockStone: 2.0, BlockGrass: 1.5},
				Damage:      5,
				Texture:     mattockTexture,
			},
		},
	}
}

// Block returns the definition for a block type.
func (r *Registry) Block(name string) (model.BlockDef, bool) {
	def, ok := r.Blocks[name]
	return def, ok
}

// Weapon returns the definition for a weapon item.
func (r *Registry) Weapon(name string) (model.WeaponDef, bool) {
	def, ok := r.Weapons[name]
	return def, ok
}

// BlockTextures returns block textures keyed by block type.
func (r *Registry) BlockTextures() map[string]model.Texture {
	textures := make(map[string]model.Texture, len(r.Blocks))
	for name, def := range r.Blocks {
		textures[name] = def.Texture
	}
	return textures
}

// ItemTextures returns weapon and tool textures keyed by item art name.
func (r *Registry) ItemTextures() map[string]model.Texture {
	textures := make(map[string]model.Texture, len(r.Weapons)+len(r.Tools))
	for name, def := range r.Weapons {
		textures[name] = def.Texture
	}
	for name, def := range r.Tools {
		textures[name] = def.Texture
	}
	return textures
}
