package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"roulette/events"
	"roulette/models"
)

type bettingService struct {
	uowFactory UnitOfWorkFactory
}

// NewBettingService creates a new betting service
func NewBettingService(uowFactory UnitOfWorkFactory) BettingService {
	return &bettingService{
		uowFactory: uowFactory,
	}
}

// PlaceWager admits one player's wager for the living round. The whole
// pipeline runs in one transaction: a failure at any step leaves the ledger,
// the liability totals and every balance untouched.
func (s *bettingService) PlaceWager(ctx context.Context, caller string, roomID int64, legs []models.BetLeg, funds int64, now time.Time) (*PlaceWagerResult, error) {
	if caller == "" {
		return nil, fmt.Errorf("caller identity is required")
	}
	if len(legs) == 0 {
		return nil, fmt.Errorf("wager must have at least one leg")
	}
	for _, leg := range legs {
		if err := leg.Direction.Validate(); err != nil {
			return nil, err
		}
		if leg.Amount <= 0 {
			return nil, fmt.Errorf("leg amount must be positive")
		}
	}

	// The covered-point cap bounds the admission cost.
	points, err := models.CoveredPointCount(legs)
	if err != nil {
		return nil, err
	}
	if points > models.MaxCoveredPoints {
		return nil, &ExceedBetPointsError{Points: points, Max: models.MaxCoveredPoints}
	}

	totalAmount := models.TotalLegAmount(legs)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.StateRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	if state.Halted {
		return nil, ErrPoolHalted
	}

	cfg, err := uow.StateRepository().GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool config: %w", err)
	}

	// The betting window closes round_duration after the round's first wager.
	start, err := uow.StateRepository().GetRoundStart(ctx, state.LivingRound)
	if err != nil {
		return nil, fmt.Errorf("failed to get round start: %w", err)
	}
	if start != nil && now.Sub(start.StartedAt) > time.Duration(cfg.RoundDuration)*time.Second {
		return nil, ErrRoundFinished
	}

	room, err := uow.RoomRepository().GetByIDForUpdate(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return nil, &RoomNotFoundError{RoomID: roomID}
	}

	// Limits apply to the transaction's total, not per leg.
	if !room.WithinBetLimits(totalAmount) {
		return nil, &BetLimitError{Total: totalAmount, Min: room.MinBet, Max: room.MaxBet}
	}

	exists, err := uow.WagerRepository().Exists(ctx, roomID, state.LivingRound, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing wager: %w", err)
	}
	if exists {
		return nil, &DuplicateWagerError{RoomID: roomID, RoundID: state.LivingRound, Player: caller}
	}

	// Declared funds must match the total for native rooms. Token rooms pull
	// the amount through the transfer service instead.
	if room.Asset.Type == models.AssetNative && funds != totalAmount {
		return nil, &FundsMismatchError{Provided: funds, Required: totalAmount}
	}

	floor, err := s.admit(ctx, uow, room, state.LivingRound, legs)
	if err != nil {
		return nil, err
	}

	record := &models.WagerRecord{
		RoomID:   roomID,
		RoundID:  state.LivingRound,
		Player:   caller,
		Legs:     legs,
		PlacedAt: now,
	}
	if err := uow.WagerRepository().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record wager: %w", err)
	}

	// First wager of the round opens the betting window.
	if start == nil {
		if err := uow.StateRepository().RecordRoundStart(ctx, state.LivingRound, now); err != nil {
			return nil, fmt.Errorf("failed to record round start: %w", err)
		}
	}

	// Fund the pool from the player's account.
	if err := uow.AccountRepository().Transfer(ctx, caller, PoolHolder, room.Asset, totalAmount); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.WagerPlacedEvent{
		RoomID:       roomID,
		RoundID:      state.LivingRound,
		Player:       caller,
		TotalAmount:  totalAmount,
		LegCount:     len(legs),
		ReserveFloor: floor,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"room":   roomID,
		"round":  state.LivingRound,
		"player": caller,
		"amount": totalAmount,
		"floor":  floor,
	}).Info("wager admitted")

	return &PlaceWagerResult{
		Wager:        record,
		ReserveFloor: floor,
		Transfer: &models.TransferInstruction{
			Kind:   models.TransferIn,
			Holder: caller,
			Asset:  room.Asset,
			Amount: totalAmount,
			Memo:   "bet",
		},
	}, nil
}

// admit is the solvency guard. It folds the candidate legs into the room's
// persisted per-number liability totals for the round and rejects the wager
// if any single outcome would owe more than the pool holds. The totals are
// running state, so each admission costs O(legs), not O(38 x ledger). On
// success the room's reserve floor is raised to the new worst case.
func (s *bettingService) admit(ctx context.Context, uow UnitOfWork, room *models.Room, roundID int64, legs []models.BetLeg) (int64, error) {
	liabilities, err := uow.LiabilityRepository().Get(ctx, room.ID, roundID)
	if err != nil {
		return 0, fmt.Errorf("failed to get round liabilities: %w", err)
	}

	if err := liabilities.AddLegs(legs); err != nil {
		return 0, err
	}

	held, err := uow.AccountRepository().Balance(ctx, PoolHolder, room.Asset)
	if err != nil {
		return 0, fmt.Errorf("failed to get pool balance: %w", err)
	}

	number, worstCase := liabilities.WorstCase()
	if worstCase > held {
		return 0, &InsufficientPoolCoverageError{Held: held, Number: number, WorstCase: worstCase}
	}

	if err := uow.LiabilityRepository().Save(ctx, liabilities); err != nil {
		return 0, fmt.Errorf("failed to save round liabilities: %w", err)
	}

	floor := room.ReserveFloor
	if worstCase > floor {
		floor = worstCase
		if err := uow.RoomRepository().SetReserveFloor(ctx, room.ID, floor); err != nil {
			return 0, fmt.Errorf("failed to raise reserve floor: %w", err)
		}
	}
	return floor, nil
}

// ListRoomRoundWagers pages wagers for (room, round) ascending by player.
func (s *bettingService) ListRoomRoundWagers(ctx context.Context, roomID, roundID int64, startAfter string, limit int) ([]*models.WagerRecord, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	records, err := uow.WagerRepository().ListByRoomRound(ctx, roomID, roundID, startAfter, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list wagers: %w", err)
	}
	return records, nil
}

// ListRoomPlayerWagers pages one player's wagers in a room ascending by round.
func (s *bettingService) ListRoomPlayerWagers(ctx context.Context, roomID int64, player string, startAfter int64, limit int) ([]*models.WagerRecord, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	records, err := uow.WagerRepository().ListByRoomPlayer(ctx, roomID, player, startAfter, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list wagers: %w", err)
	}
	return records, nil
}
