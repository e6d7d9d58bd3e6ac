package model

// ConnID uniquely identifies a live connection; it doubles as the player id
// for the lifetime of that connection.
type ConnID string

// InventorySize is the fixed number of inventory slots per player.
const InventorySize = 9

// MaxHealth is the nominal full health value.
const MaxHealth = 100

// Vec3 is a world-space position.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rotation is a view rotation (pitch/yaw).
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ItemStack is the content of a single inventory slot.
// A nil *ItemStack in an inventory means the slot is empty.
type ItemStack struct {
	Name string `json:"name"`
	Type string `json:"type"` // "weapon" or "tool"
	Art  string `json:"art"`  // registry key for the item's definition
}

// Item type constants
const (
	ItemTypeWeapon = "weapon"
	ItemTypeTool   = "tool"
)

// Player is the live per-connection game state. It exists only while the
// owning connection is authenticated; the persisted subset is Snapshot.
type Player struct {
	ID         ConnID       `json:"id"`
	Username   string       `json:"username"`
	Position   Vec3         `json:"position"`
	Rotation   Rotation     `json:"rotation"`
	Health     int          `json:"health"`
	HeldItem   int          `json:"heldItem"`
	Inventory  []*ItemStack `json:"inventory"`
	IsSwinging bool         `json:"isSwinging"`
	IsDead     bool         `json:"isDead"`
}

// HeldStack returns the item in the player's held slot, or nil for an empty
// or out-of-range slot.
func (p *Player) HeldStack() *ItemStack {
	if p.HeldItem < 0 || p.HeldItem >= len(p.Inventory) {
		return nil
	}
	return p.Inventory[p.HeldItem]
}

// DefaultInventory returns the starter loadout: a sword, a mattock, and the
// remaining slots empty.
func DefaultInventory() []*ItemStack {
	inv := make([]*ItemStack, InventorySize)
	inv[0] = &ItemStack{Name: "Sword", Type: ItemTypeWeapon, Art: "sword"}
	inv[1] = &ItemStack{Name: "Mattock", Type: ItemTypeTool, Art: "mattock"}
	return inv
}
