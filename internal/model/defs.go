package model

// Texture is a 16x16 grid of hex color strings. Purely cosmetic; generated
// once at startup and shared read-only.
type Texture [][]string

// BlockDef is the static definition of a placeable block type.
type BlockDef struct {
	Name            string  `json:"name"`
	DisplayName     string  `json:"displayName"`
	Hardness        float64 `json:"hardness"`
	Drops           string  `json:"drops"`
	Transparent     bool    `json:"transparent"`
	Solid           bool    `json:"solid"`
	BlastResistance float64 `json:"blastResistance"`
	LightLevel      int     `json:"lightLevel"`
	Flammable       bool    `json:"flammable"`
	Texture         Texture `json:"texture"`
}

// WeaponDef is the static definition of a weapon item.
type WeaponDef struct {
	Name           string  `json:"name"`
	DisplayName    string  `json:"displayName"`
	Damage         int     `json:"damage"`
	AttackSpeed    float64 `json:"attackSpeed"`
	Knockback      float64 `json:"knockback"`
	Range          float64 `json:"range"`
	CritChance     float64 `json:"critChance"`
	CritMultiplier float64 `json:"critMultiplier"`
	Durability     int     `json:"durability"` // -1 = unbreakable
	Enchantable    bool    `json:"enchantable"`
	Texture        Texture `json:"texture"`
}

// ToolDef is the static definition of a tool item.
type ToolDef struct {
	Name        string             `json:"name"`
	DisplayName string             `json:"displayName"`
	BreakSpeed  float64            `json:"breakSpeed"`
	Durability  int                `json:"durability"`
	Efficiency  map[string]float64 `json:"efficiency"`
	Damage      int                `json:"damage"`
	Texture     Texture            `json:"texture"`
}
