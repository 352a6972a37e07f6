package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"roulette/events"
	"roulette/models"
	"roulette/rng"
)

type roundService struct {
	uowFactory UnitOfWorkFactory
}

// NewRoundService creates a new round service
func NewRoundService(uowFactory UnitOfWorkFactory) RoundService {
	return &roundService{
		uowFactory: uowFactory,
	}
}

// CloseRound settles the living round: the distributor draws the winning
// number, every room is paid out against its own denom, the platform fee goes
// to the admin, and the round counter advances by exactly one. Either all of
// it takes effect or none of it does.
func (s *roundService) CloseRound(ctx context.Context, caller string, height uint64, blockTime time.Time) (*models.CloseRoundResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.StateRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	cfg, err := uow.StateRepository().GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool config: %w", err)
	}

	closingRound := state.LivingRound

	// A round with no wager has never opened; there is nothing to settle.
	start, err := uow.StateRepository().GetRoundStart(ctx, closingRound)
	if err != nil {
		return nil, fmt.Errorf("failed to get round start: %w", err)
	}
	if start == nil {
		return nil, ErrRoundNotStarted
	}
	elapsed := int64(blockTime.Sub(start.StartedAt) / time.Second)
	if elapsed < cfg.RoundDuration {
		return nil, &RoundNotFinishedError{ElapsedSeconds: elapsed, RequiredSeconds: cfg.RoundDuration}
	}

	if caller != cfg.Distributor {
		return nil, &UnauthorizedError{Role: "distributor", Caller: caller}
	}

	winner, err := rng.Draw(height, blockTime, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to draw winning number: %w", err)
	}

	if err := uow.WinnerRepository().Save(ctx, &models.Winner{
		RoundID: closingRound,
		Number:  winner,
		DrawnAt: blockTime,
	}); err != nil {
		return nil, fmt.Errorf("failed to save winner: %w", err)
	}

	newRound, err := uow.StateRepository().AdvanceRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to advance round: %w", err)
	}

	result := &models.CloseRoundResult{
		RoundID:  closingRound,
		Winner:   winner,
		ClosedAt: blockTime,
	}

	// Rooms settle independently within the same global round: each has its
	// own denom and pool balance.
	for roomID := int64(1); roomID <= state.RoomCounter; roomID++ {
		room, err := uow.RoomRepository().GetByID(ctx, roomID)
		if err != nil {
			return nil, fmt.Errorf("failed to get room %d: %w", roomID, err)
		}
		if room == nil {
			continue
		}

		settlement, transfers, err := s.settleRoom(ctx, uow, room, closingRound, winner, cfg)
		if err != nil {
			return nil, err
		}
		result.Rooms = append(result.Rooms, settlement)
		result.Transfers = append(result.Transfers, transfers...)
	}

	// The next round's solvency guard starts from a clean baseline.
	if err := uow.RoomRepository().ResetReserveFloors(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset reserve floors: %w", err)
	}
	if err := uow.LiabilityRepository().DeleteThrough(ctx, closingRound); err != nil {
		return nil, fmt.Errorf("failed to clear round liabilities: %w", err)
	}

	uow.EventBus().Publish(events.RoundSettledEvent{
		RoundID:       closingRound,
		Winner:        winner,
		RoomsSettled:  len(result.Rooms),
		TransferCount: len(result.Transfers),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"round":     closingRound,
		"winner":    winner,
		"nextRound": newRound,
		"rooms":     len(result.Rooms),
		"transfers": len(result.Transfers),
	}).Info("round settled")

	return result, nil
}

// settleRoom scans one room's ledger for the closing round, accumulates
// per-player rewards for legs covering the winner, executes pool-to-player
// transfers and takes the platform fee out of the house remainder.
func (s *roundService) settleRoom(ctx context.Context, uow UnitOfWork, room *models.Room, roundID int64, winner uint32, cfg *models.PoolConfig) (*models.SettlementResult, []*models.TransferInstruction, error) {
	records, err := uow.WagerRepository().ListByRoomRound(ctx, room.ID, roundID, "", 0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan room %d round %d: %w", room.ID, roundID, err)
	}

	settlement := &models.SettlementResult{
		RoomID:  room.ID,
		Payouts: make(map[string]int64),
	}

	// Ledger order is ascending by player, so transfer order is stable.
	var order []string
	for _, record := range records {
		for _, leg := range record.Legs {
			settlement.TotalStaked += leg.Amount
			info, err := models.PayoutFor(leg.Direction)
			if err != nil {
				// The ledger only holds admitted legs; a bad one is corruption.
				return nil, nil, fmt.Errorf("ledger holds invalid leg for %s: %w", record.Player, err)
			}
			if info.Covers(winner) {
				reward := leg.Amount * info.Multiplier
				if settlement.Payouts[record.Player] == 0 {
					order = append(order, record.Player)
				}
				settlement.Payouts[record.Player] += reward
				settlement.TotalPaid += reward
			}
		}
	}

	var transfers []*models.TransferInstruction
	for _, player := range order {
		reward := settlement.Payouts[player]
		if reward == 0 {
			continue
		}
		if err := uow.AccountRepository().Transfer(ctx, PoolHolder, player, room.Asset, reward); err != nil {
			return nil, nil, fmt.Errorf("failed to pay %s in room %d: %w", player, room.ID, err)
		}
		transfers = append(transfers, &models.TransferInstruction{
			Kind:   models.TransferOut,
			Holder: player,
			Asset:  room.Asset,
			Amount: reward,
			Memo:   "reward",
		})
	}

	// The house keeps the remainder; a fee fraction of it goes to the admin.
	if settlement.TotalStaked > settlement.TotalPaid {
		fee := cfg.PlatformFee(settlement.TotalStaked - settlement.TotalPaid)
		if fee > 0 {
			if err := uow.AccountRepository().Transfer(ctx, PoolHolder, cfg.Admin, room.Asset, fee); err != nil {
				return nil, nil, fmt.Errorf("failed to pay platform fee for room %d: %w", room.ID, err)
			}
			settlement.PlatformFee = fee
			transfers = append(transfers, &models.TransferInstruction{
				Kind:   models.TransferOut,
				Holder: cfg.Admin,
				Asset:  room.Asset,
				Amount: fee,
				Memo:   "platform_fee",
			})
		}
	}

	return settlement, transfers, nil
}

// GetWinner returns the drawn number for a settled round.
func (s *roundService) GetWinner(ctx context.Context, roundID int64) (*models.Winner, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	winner, err := uow.WinnerRepository().GetByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to get winner: %w", err)
	}
	return winner, nil
}

// ListWinners pages winning-number history ascending by round.
func (s *roundService) ListWinners(ctx context.Context, startAfter int64, limit int) ([]*models.Winner, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	winners, err := uow.WinnerRepository().List(ctx, startAfter, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list winners: %w", err)
	}
	return winners, nil
}

// GetState returns the combined state snapshot for the query surface.
func (s *roundService) GetState(ctx context.Context) (*StateView, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.StateRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	cfg, err := uow.StateRepository().GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool config: %w", err)
	}

	view := &StateView{
		State:       state,
		Config:      cfg,
		CurrentTime: time.Now(),
	}
	start, err := uow.StateRepository().GetRoundStart(ctx, state.LivingRound)
	if err != nil {
		return nil, fmt.Errorf("failed to get round start: %w", err)
	}
	if start != nil {
		view.RoundStartedAt = &start.StartedAt
	}
	return view, nil
}
