package models

import (
	"time"
)

// MaxCoveredPoints caps the total number of wheel numbers one transaction's
// legs may cover. This bounds the cost of the solvency check per admission.
const MaxCoveredPoints = 19

// BetLeg is one (direction, amount) pair within a wager.
type BetLeg struct {
	Direction Direction `json:"direction"`
	Amount    int64     `json:"amount"`
}

// WagerRecord is one player's accepted set of directional bets for a specific
// room and round. At most one record exists per (room, round, player); records
// are immutable after creation and never deleted.
type WagerRecord struct {
	RoomID   int64     `db:"room_id"`
	RoundID  int64     `db:"round_id"`
	Player   string    `db:"player"`
	Legs     []BetLeg  `db:"legs"`
	PlacedAt time.Time `db:"placed_at"`
}

// TotalAmount is the sum of all leg amounts. Room bet limits apply to this
// sum, not to the individual legs.
func (w *WagerRecord) TotalAmount() int64 {
	var total int64
	for _, leg := range w.Legs {
		total += leg.Amount
	}
	return total
}

// TotalLegAmount sums a candidate leg sequence before a record exists.
func TotalLegAmount(legs []BetLeg) int64 {
	var total int64
	for _, leg := range legs {
		total += leg.Amount
	}
	return total
}

// CoveredPointCount returns the total covered-point count across legs, for
// the MaxCoveredPoints cap. Fails on a malformed direction.
func CoveredPointCount(legs []BetLeg) (int, error) {
	var count int
	for _, leg := range legs {
		info, err := PayoutFor(leg.Direction)
		if err != nil {
			return 0, err
		}
		count += len(info.Numbers)
	}
	return count, nil
}
