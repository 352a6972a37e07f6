package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"roulette/events"
	"roulette/models"
)

type poolService struct {
	uowFactory UnitOfWorkFactory
}

// NewPoolService creates a new pool service
func NewPoolService(uowFactory UnitOfWorkFactory) PoolService {
	return &poolService{
		uowFactory: uowFactory,
	}
}

// Deposit moves owner funds into the room's pool. Deposits never touch the
// reserve floor; they only widen what the pool can cover.
func (s *poolService) Deposit(ctx context.Context, caller string, roomID, amount, funds int64) (*WithdrawResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("deposit amount must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := s.requireOwnedRoom(ctx, uow, caller, roomID)
	if err != nil {
		return nil, err
	}

	if room.Asset.Type == models.AssetNative && funds != amount {
		return nil, &FundsMismatchError{Provided: funds, Required: amount}
	}

	if err := uow.AccountRepository().Transfer(ctx, caller, PoolHolder, room.Asset, amount); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.PoolMovementEvent{
		RoomID: roomID,
		Holder: caller,
		Kind:   models.TransferIn,
		Amount: amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{"room": roomID, "owner": caller, "amount": amount}).Info("pool deposit")

	return &WithdrawResult{
		RoomID: roomID,
		Transfer: &models.TransferInstruction{
			Kind:   models.TransferIn,
			Holder: caller,
			Asset:  room.Asset,
			Amount: amount,
			Memo:   "deposit",
		},
	}, nil
}

// Withdraw pays pool funds out to the room owner, bounded by the reserve
// floor: funds needed to cover the round's outstanding worst case stay put.
func (s *poolService) Withdraw(ctx context.Context, caller string, roomID, amount int64) (*WithdrawResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("withdrawal amount must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := s.requireOwnedRoom(ctx, uow, caller, roomID)
	if err != nil {
		return nil, err
	}

	available, err := maxWithdrawable(ctx, uow, room)
	if err != nil {
		return nil, err
	}
	if amount > available {
		return nil, &WithdrawalExceedsAvailableError{Requested: amount, Available: available}
	}

	if err := uow.AccountRepository().Transfer(ctx, PoolHolder, caller, room.Asset, amount); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.PoolMovementEvent{
		RoomID: roomID,
		Holder: caller,
		Kind:   models.TransferOut,
		Amount: amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{"room": roomID, "owner": caller, "amount": amount}).Info("pool withdrawal")

	return &WithdrawResult{
		RoomID: roomID,
		Transfer: &models.TransferInstruction{
			Kind:   models.TransferOut,
			Holder: caller,
			Asset:  room.Asset,
			Amount: amount,
			Memo:   "withdraw",
		},
	}, nil
}

// MaxWithdrawable is pool balance minus reserve floor, never negative.
func (s *poolService) MaxWithdrawable(ctx context.Context, roomID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := uow.RoomRepository().GetByID(ctx, roomID)
	if err != nil {
		return 0, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return 0, &RoomNotFoundError{RoomID: roomID}
	}
	return maxWithdrawable(ctx, uow, room)
}

func maxWithdrawable(ctx context.Context, uow UnitOfWork, room *models.Room) (int64, error) {
	held, err := uow.AccountRepository().Balance(ctx, PoolHolder, room.Asset)
	if err != nil {
		return 0, fmt.Errorf("failed to get pool balance: %w", err)
	}
	available := held - room.ReserveFloor
	if available < 0 {
		available = 0
	}
	return available, nil
}

// requireOwnedRoom loads the room and checks the caller against the
// ownership registry entry for the room's token.
func (s *poolService) requireOwnedRoom(ctx context.Context, uow UnitOfWork, caller string, roomID int64) (*models.Room, error) {
	room, err := uow.RoomRepository().GetByIDForUpdate(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return nil, &RoomNotFoundError{RoomID: roomID}
	}

	owner, err := uow.OwnershipRegistry().OwnerOf(ctx, room.OwnershipTokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve room owner: %w", err)
	}
	if owner == "" || owner != caller {
		return nil, &UnauthorizedError{Role: "room owner", Caller: caller}
	}
	return room, nil
}
