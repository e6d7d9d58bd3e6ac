package model

// Account is the credential-store record for a registered user, keyed by
// username. The JSON shape is the external contract with the store:
// {passwordHash, salt, createdAt, data:{position, inventory, lastSeen}}.
type Account struct {
	PasswordHash string   `json:"passwordHash"`
	Salt         string   `json:"salt"`
	CreatedAt    int64    `json:"createdAt"` // unix milliseconds
	Data         Snapshot `json:"data"`
}

// Snapshot is the persisted subset of player state, written back on
// disconnect and restored at the next login.
type Snapshot struct {
	Position  *Vec3        `json:"position"`
	Inventory []*ItemStack `json:"inventory"`
	LastSeen  int64        `json:"lastSeen"` // unix milliseconds
}
