package model

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockPos is an integer world coordinate.
type BlockPos struct {
	X int
	Y int
	Z int
}

// Key returns the canonical "x,y,z" form used as the sparse world map key and
// on the wire in world snapshots.
func (p BlockPos) Key() string {
	return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)
}

// ParseBlockKey parses an "x,y,z" key back into a BlockPos.
func ParseBlockKey(key string) (BlockPos, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 3 {
		return BlockPos{}, fmt.Errorf("invalid block key %q", key)
	}
	coords := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return BlockPos{}, fmt.Errorf("invalid block key %q: %w", key, err)
		}
		coords[i] = n
	}
	return BlockPos{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// BlockEntry is a single [key, type] pair in the world snapshot sent at init.
type BlockEntry [2]string
