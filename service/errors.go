package service

import (
	"errors"
	"fmt"
)

// Every failure below is terminal for its invocation: the surrounding
// transaction is rolled back and no partial state change or transfer survives.
// There is no retry policy in the engine; callers decide whether to resubmit.

// State errors.
var (
	// ErrPoolHalted rejects wagers while the pool is halted.
	ErrPoolHalted = errors.New("pool is halted")

	// ErrRoundNotStarted rejects a close when no wager has opened the round.
	ErrRoundNotStarted = errors.New("round has not started: no wager placed yet")

	// ErrRoundFinished rejects wagers placed after the round deadline.
	ErrRoundFinished = errors.New("round is finished: betting window has closed")
)

// RoomNotFoundError reports an unknown room id.
type RoomNotFoundError struct {
	RoomID int64
}

func (e *RoomNotFoundError) Error() string {
	return fmt.Sprintf("room %d does not exist", e.RoomID)
}

// DuplicateWagerError reports a second wager by the same player in the same
// room and round. Double bets are rejected, never merged.
type DuplicateWagerError struct {
	RoomID  int64
	RoundID int64
	Player  string
}

func (e *DuplicateWagerError) Error() string {
	return fmt.Sprintf("player %s already wagered in room %d round %d", e.Player, e.RoomID, e.RoundID)
}

// RoundNotFinishedError reports a close attempt before the round duration has
// elapsed since the round's first wager.
type RoundNotFinishedError struct {
	ElapsedSeconds  int64
	RequiredSeconds int64
}

func (e *RoundNotFinishedError) Error() string {
	return fmt.Sprintf("round not finished: %ds elapsed of required %ds", e.ElapsedSeconds, e.RequiredSeconds)
}

// Validation errors.

// BetLimitError reports a wager total outside the room's bounds.
type BetLimitError struct {
	Total int64
	Min   int64
	Max   int64
}

func (e *BetLimitError) Error() string {
	return fmt.Sprintf("total bet amount %d outside room limits [%d, %d]", e.Total, e.Min, e.Max)
}

// ExceedBetPointsError reports a leg sequence covering more wheel numbers
// than the per-transaction cap allows.
type ExceedBetPointsError struct {
	Points int
	Max    int
}

func (e *ExceedBetPointsError) Error() string {
	return fmt.Sprintf("bet covers %d points, maximum is %d", e.Points, e.Max)
}

// FundsMismatchError reports native funds that do not match the declared
// wager or deposit total.
type FundsMismatchError struct {
	Provided int64
	Required int64
}

func (e *FundsMismatchError) Error() string {
	return fmt.Sprintf("provided funds %d do not match required amount %d", e.Provided, e.Required)
}

// Solvency errors.

// InsufficientPoolCoverageError is the primary safety backstop: admitting the
// wager would leave the pool unable to pay out if Number were drawn. It is
// never bypassed, not even for an authorized caller.
type InsufficientPoolCoverageError struct {
	Held      int64
	Number    uint32
	WorstCase int64
}

func (e *InsufficientPoolCoverageError) Error() string {
	return fmt.Sprintf("pool holds %d but owes %d if %d wins", e.Held, e.WorstCase, e.Number)
}

// WithdrawalExceedsAvailableError reports an owner withdrawal above the
// balance not reserved for outstanding liability.
type WithdrawalExceedsAvailableError struct {
	Requested int64
	Available int64
}

func (e *WithdrawalExceedsAvailableError) Error() string {
	return fmt.Sprintf("requested withdrawal %d exceeds available %d", e.Requested, e.Available)
}

// Authorization errors.

// UnauthorizedError reports a caller lacking the role an operation requires.
type UnauthorizedError struct {
	Role   string // "admin", "distributor" or "room owner"
	Caller string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("caller %s is not the %s", e.Caller, e.Role)
}

// InsufficientFundsError reports an account that cannot cover a transfer.
type InsufficientFundsError struct {
	Holder string
	Have   int64
	Need   int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("account %s holds %d, needs %d", e.Holder, e.Have, e.Need)
}
