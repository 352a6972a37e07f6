package service

import (
	"context"
	"time"

	"roulette/events"
	"roulette/models"
)

// PoolHolder is the ledger account holding every room's pooled funds.
const PoolHolder = "pool"

// Query pagination bounds, shared by every paginated read path.
const (
	DefaultQueryLimit = 10
	MaxQueryLimit     = 30
)

// ClampLimit normalizes a caller-supplied page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return limit
}

// WagerRepository is the append-only indexed wager ledger. Records are never
// updated or deleted.
type WagerRepository interface {
	// Create inserts a record; fails with DuplicateWagerError if one already
	// exists for (room, round, player).
	Create(ctx context.Context, record *models.WagerRecord) error

	// Exists reports whether a record exists for (room, round, player).
	Exists(ctx context.Context, roomID, roundID int64, player string) (bool, error)

	// ListByRoomRound returns records for a room and round ascending by
	// player. startAfter is an exclusive player cursor; limit <= 0 returns
	// everything (full settlement scan).
	ListByRoomRound(ctx context.Context, roomID, roundID int64, startAfter string, limit int) ([]*models.WagerRecord, error)

	// ListByRoomPlayer returns one player's records in a room ascending by
	// round. startAfter is an exclusive round cursor; pass -1 to start from
	// round 0. limit <= 0 returns everything.
	ListByRoomPlayer(ctx context.Context, roomID int64, player string, startAfter int64, limit int) ([]*models.WagerRecord, error)
}

// RoomRepository defines the interface for room data access
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error

	// GetByID returns nil with no error when the room does not exist.
	GetByID(ctx context.Context, id int64) (*models.Room, error)

	// GetByIDForUpdate locks the room row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Room, error)

	// List returns rooms ascending by id; startAfter is an exclusive cursor.
	List(ctx context.Context, startAfter int64, limit int) ([]*models.Room, error)

	UpdateInfo(ctx context.Context, id int64, name, ownershipTokenID string) error
	UpdateBetLimits(ctx context.Context, id int64, minBet, maxBet int64) error

	SetReserveFloor(ctx context.Context, id int64, floor int64) error

	// ResetReserveFloors zeroes every room's floor after settlement.
	ResetReserveFloors(ctx context.Context) error
}

// StateRepository defines access to the single game-state and pool-config rows.
type StateRepository interface {
	// Get locks and returns the game state row. The lock serializes engine
	// operations within their transactions.
	Get(ctx context.Context) (*models.GameState, error)

	// AdvanceRound increments living_round by exactly 1 and returns the new value.
	AdvanceRound(ctx context.Context) (int64, error)

	// NextRoomID increments room_counter by exactly 1 and returns the new value.
	NextRoomID(ctx context.Context) (int64, error)

	SetHalted(ctx context.Context, halted bool) error

	GetConfig(ctx context.Context) (*models.PoolConfig, error)
	SaveConfig(ctx context.Context, cfg *models.PoolConfig) error

	// Seed inserts the state and config rows if absent (first start).
	Seed(ctx context.Context, cfg *models.PoolConfig) error

	// GetRoundStart returns nil with no error when the round has not opened.
	GetRoundStart(ctx context.Context, roundID int64) (*models.RoundStart, error)
	RecordRoundStart(ctx context.Context, roundID int64, at time.Time) error
}

// LiabilityRepository persists the per-number running liability totals that
// keep the solvency check O(legs).
type LiabilityRepository interface {
	// Get locks and returns the totals for (room, round); a zero-valued row
	// when none has been admitted yet.
	Get(ctx context.Context, roomID, roundID int64) (*models.RoundLiabilities, error)

	// Save upserts the totals for (room, round).
	Save(ctx context.Context, liabilities *models.RoundLiabilities) error

	// DeleteThrough removes rows for settled rounds up to and including roundID.
	DeleteThrough(ctx context.Context, roundID int64) error
}

// WinnerRepository defines winning-number history access
type WinnerRepository interface {
	Save(ctx context.Context, winner *models.Winner) error

	// GetByRound returns nil with no error for an unsettled round.
	GetByRound(ctx context.Context, roundID int64) (*models.Winner, error)

	// List returns winners ascending by round; startAfter is an exclusive
	// cursor, -1 for the beginning (the first round is round 0).
	List(ctx context.Context, startAfter int64, limit int) ([]*models.Winner, error)
}

// AccountRepository is the asset transfer service boundary: it reports
// balances and moves native or token funds between holders. The engine only
// decides recipient and amount.
type AccountRepository interface {
	// Balance returns the holder's balance of the asset, zero if no account.
	Balance(ctx context.Context, holder string, asset models.Asset) (int64, error)

	// Transfer moves amount from one holder to another; fails with
	// InsufficientFundsError when the source cannot cover it.
	Transfer(ctx context.Context, from, to string, asset models.Asset, amount int64) error
}

// OwnershipRegistry answers "who owns token X", authorizing room-owner actions.
type OwnershipRegistry interface {
	// OwnerOf returns the owner identity, or "" when the token is unknown.
	OwnerOf(ctx context.Context, tokenID string) (string, error)

	// SetOwner registers or reassigns a token (admin surface).
	SetOwner(ctx context.Context, tokenID, owner string) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	WagerRepository() WagerRepository
	RoomRepository() RoomRepository
	StateRepository() StateRepository
	LiabilityRepository() LiabilityRepository
	WinnerRepository() WinnerRepository
	AccountRepository() AccountRepository
	OwnershipRegistry() OwnershipRegistry
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// PlaceWagerResult is the outcome of a successful admission.
type PlaceWagerResult struct {
	Wager        *models.WagerRecord
	ReserveFloor int64
	// Transfer is the emitted instruction funding the pool.
	Transfer *models.TransferInstruction
}

// WithdrawResult reports an executed pool movement.
type WithdrawResult struct {
	RoomID   int64
	Transfer *models.TransferInstruction
}

// StateView is the combined state snapshot exposed by the query surface.
type StateView struct {
	State          *models.GameState
	Config         *models.PoolConfig
	CurrentTime    time.Time
	RoundStartedAt *time.Time
}

// BettingService admits wagers and serves the wager ledger's query paths.
type BettingService interface {
	// PlaceWager runs the full admission pipeline: state, limits, double-bet,
	// funds and solvency checks, then records the wager and funds the pool.
	PlaceWager(ctx context.Context, caller string, roomID int64, legs []models.BetLeg, funds int64, now time.Time) (*PlaceWagerResult, error)

	// ListRoomRoundWagers pages wagers for (room, round) ascending by player.
	ListRoomRoundWagers(ctx context.Context, roomID, roundID int64, startAfter string, limit int) ([]*models.WagerRecord, error)

	// ListRoomPlayerWagers pages one player's wagers in a room ascending by round.
	ListRoomPlayerWagers(ctx context.Context, roomID int64, player string, startAfter int64, limit int) ([]*models.WagerRecord, error)
}

// RoundService closes rounds and serves winner history.
type RoundService interface {
	// CloseRound draws the winner and settles every room for the living
	// round. Distributor only; height and blockTime are the host entropy.
	CloseRound(ctx context.Context, caller string, height uint64, blockTime time.Time) (*models.CloseRoundResult, error)

	GetWinner(ctx context.Context, roundID int64) (*models.Winner, error)
	ListWinners(ctx context.Context, startAfter int64, limit int) ([]*models.Winner, error)
	GetState(ctx context.Context) (*StateView, error)
}

// PoolService moves owner funds in and out of a room's pool.
type PoolService interface {
	Deposit(ctx context.Context, caller string, roomID, amount, funds int64) (*WithdrawResult, error)
	Withdraw(ctx context.Context, caller string, roomID, amount int64) (*WithdrawResult, error)

	// MaxWithdrawable is pool balance minus reserve floor, never negative.
	MaxWithdrawable(ctx context.Context, roomID int64) (int64, error)
}

// RoomService covers room CRUD and pool administration.
type RoomService interface {
	AddRoom(ctx context.Context, caller, name string, asset models.Asset, ownershipTokenID string, minBet, maxBet int64) (*models.Room, error)
	ChangeRoomConfig(ctx context.Context, caller string, roomID int64, name, ownershipTokenID string) error
	UpdateBetLimits(ctx context.Context, caller string, roomID, minBet, maxBet int64) error

	GetRoom(ctx context.Context, roomID int64) (*models.Room, error)
	ListRooms(ctx context.Context, startAfter int64, limit int) ([]*models.Room, error)

	UpdateConfig(ctx context.Context, caller string, cfg *models.PoolConfig) error
	SetHalted(ctx context.Context, caller string, halted bool) error
	RegisterOwnership(ctx context.Context, caller, tokenID, owner string) error
}
