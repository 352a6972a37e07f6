package models

import (
	"time"
)

// AssetType distinguishes native coins from registry-tracked tokens.
type AssetType string

const (
	AssetNative AssetType = "native"
	AssetToken  AssetType = "token"
)

// Asset identifies the denomination a room settles in. Key is the denom name
// for native assets or the token contract identifier for tokens.
type Asset struct {
	Type AssetType `json:"type" db:"asset_type"`
	Key  string    `json:"key" db:"asset_key"`
}

// Room is an independently configured, independently denominated betting pool.
// Ownership is resolved externally through the ownership token.
type Room struct {
	ID               int64     `db:"id"`
	Name             string    `db:"name"`
	Asset            Asset     `db:"asset"`
	OwnershipTokenID string    `db:"ownership_token_id"`
	MinBet           int64     `db:"min_bet"`
	MaxBet           int64     `db:"max_bet"`
	// ReserveFloor is the highest hypothetical liability admitted this round
	// for this room. The owner may not withdraw the pool below it. Reset to
	// zero when the round settles.
	ReserveFloor int64     `db:"reserve_floor"`
	CreatedAt    time.Time `db:"created_at"`
}

// WithinBetLimits checks a wager's total against the room's bounds.
func (r *Room) WithinBetLimits(total int64) bool {
	return total >= r.MinBet && total <= r.MaxBet
}
