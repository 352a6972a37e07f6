package models

import (
	"time"
)

// GameState is the single process-wide counter row. LivingRound increases by
// exactly 1 per settled round; RoomCounter increases by 1 per created room.
type GameState struct {
	LivingRound int64 `db:"living_round"`
	Halted      bool  `db:"halted"`
	RoomCounter int64 `db:"room_counter"`
}

// RoundStart records when the first wager of a round was accepted. A round
// with no start row has not opened and cannot be closed.
type RoundStart struct {
	RoundID   int64     `db:"round_id"`
	StartedAt time.Time `db:"started_at"`
}

// Winner is the drawn number for a settled round.
type Winner struct {
	RoundID int64     `db:"round_id"`
	Number  uint32    `db:"number"`
	DrawnAt time.Time `db:"drawn_at"`
}

// RoundLiabilities is the persisted per-number running liability for one
// (room, round): Totals[n] is the aggregate payout owed if n wins, over every
// admitted wager. Updated incrementally on admission so the solvency check is
// O(legs), not O(38 x ledger).
type RoundLiabilities struct {
	RoomID  int64
	RoundID int64
	Totals  [WheelSize]int64
}

// WorstCase returns the highest single-outcome liability and the wheel number
// that produces it.
func (l *RoundLiabilities) WorstCase() (number uint32, amount int64) {
	for n, total := range l.Totals {
		if total > amount {
			amount = total
			number = uint32(n)
		}
	}
	return number, amount
}

// AddLegs folds a leg sequence into the running totals. Fails on a malformed
// direction; totals are unchanged on failure only if the caller discards them.
func (l *RoundLiabilities) AddLegs(legs []BetLeg) error {
	for _, leg := range legs {
		info, err := PayoutFor(leg.Direction)
		if err != nil {
			return err
		}
		for _, n := range info.Numbers {
			l.Totals[n] += leg.Amount * info.Multiplier
		}
	}
	return nil
}

// SettlementResult summarizes one room's share of a round close.
type SettlementResult struct {
	RoomID      int64
	TotalStaked int64
	TotalPaid   int64
	PlatformFee int64
	// Payouts maps player identity to the aggregate reward emitted for them.
	Payouts map[string]int64
}

// CloseRoundResult is the outcome of a successful round close.
type CloseRoundResult struct {
	RoundID   int64
	Winner    uint32
	Rooms     []*SettlementResult
	Transfers []*TransferInstruction
	ClosedAt  time.Time
}
