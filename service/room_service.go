package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"roulette/events"
	"roulette/models"
)

type roomService struct {
	uowFactory UnitOfWorkFactory
}

// NewRoomService creates a new room service
func NewRoomService(uowFactory UnitOfWorkFactory) RoomService {
	return &roomService{
		uowFactory: uowFactory,
	}
}

// AddRoom creates a room under the next room id. Admin only; the ownership
// token must already be registered so owner actions can be authorized.
func (s *roomService) AddRoom(ctx context.Context, caller, name string, asset models.Asset, ownershipTokenID string, minBet, maxBet int64) (*models.Room, error) {
	if name == "" {
		return nil, fmt.Errorf("room name is required")
	}
	if asset.Type != models.AssetNative && asset.Type != models.AssetToken {
		return nil, fmt.Errorf("unknown asset type %q", asset.Type)
	}
	if asset.Key == "" {
		return nil, fmt.Errorf("asset key is required")
	}
	if minBet < 0 || maxBet < minBet {
		return nil, fmt.Errorf("bet limits must satisfy 0 <= min <= max")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := s.requireAdmin(ctx, uow, caller); err != nil {
		return nil, err
	}

	owner, err := uow.OwnershipRegistry().OwnerOf(ctx, ownershipTokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ownership token: %w", err)
	}
	if owner == "" {
		return nil, fmt.Errorf("ownership token %q is not registered", ownershipTokenID)
	}

	roomID, err := uow.StateRepository().NextRoomID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate room id: %w", err)
	}

	room := &models.Room{
		ID:               roomID,
		Name:             name,
		Asset:            asset,
		OwnershipTokenID: ownershipTokenID,
		MinBet:           minBet,
		MaxBet:           maxBet,
		CreatedAt:        time.Now(),
	}
	if err := uow.RoomRepository().Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	uow.EventBus().Publish(events.RoomCreatedEvent{
		RoomID: roomID,
		Name:   name,
		Asset:  asset,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{"room": roomID, "name": name, "asset": asset.Key}).Info("room created")
	return room, nil
}

// ChangeRoomConfig renames a room or points it at a different ownership
// token. Admin only.
func (s *roomService) ChangeRoomConfig(ctx context.Context, caller string, roomID int64, name, ownershipTokenID string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := s.requireAdmin(ctx, uow, caller); err != nil {
		return err
	}

	room, err := uow.RoomRepository().GetByIDForUpdate(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return &RoomNotFoundError{RoomID: roomID}
	}

	if err := uow.RoomRepository().UpdateInfo(ctx, roomID, name, ownershipTokenID); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateBetLimits changes a room's (min, max) wager bounds. Room owner only.
func (s *roomService) UpdateBetLimits(ctx context.Context, caller string, roomID, minBet, maxBet int64) error {
	if minBet < 0 || maxBet < minBet {
		return fmt.Errorf("bet limits must satisfy 0 <= min <= max")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := uow.RoomRepository().GetByIDForUpdate(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return &RoomNotFoundError{RoomID: roomID}
	}

	owner, err := uow.OwnershipRegistry().OwnerOf(ctx, room.OwnershipTokenID)
	if err != nil {
		return fmt.Errorf("failed to resolve room owner: %w", err)
	}
	if owner == "" || owner != caller {
		return &UnauthorizedError{Role: "room owner", Caller: caller}
	}

	if err := uow.RoomRepository().UpdateBetLimits(ctx, roomID, minBet, maxBet); err != nil {
		return fmt.Errorf("failed to update bet limits: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRoom returns one room, or nil when it does not exist.
func (s *roomService) GetRoom(ctx context.Context, roomID int64) (*models.Room, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := uow.RoomRepository().GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// ListRooms pages rooms ascending by id.
func (s *roomService) ListRooms(ctx context.Context, startAfter int64, limit int) ([]*models.Room, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rooms, err := uow.RoomRepository().List(ctx, startAfter, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// UpdateConfig replaces the pool configuration. Admin only.
func (s *roomService) UpdateConfig(ctx context.Context, caller string, cfg *models.PoolConfig) error {
	if cfg.Admin == "" || cfg.Distributor == "" {
		return fmt.Errorf("admin and distributor are required")
	}
	if cfg.RoundDuration <= 0 {
		return fmt.Errorf("round duration must be positive")
	}
	if cfg.PlatformFeeBps < 0 || cfg.PlatformFeeBps > 10000 {
		return fmt.Errorf("platform fee must be in [0, 10000] basis points")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := s.requireAdmin(ctx, uow, caller); err != nil {
		return err
	}

	if err := uow.StateRepository().SaveConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save pool config: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{"admin": cfg.Admin, "distributor": cfg.Distributor}).Info("pool config updated")
	return nil
}

// SetHalted flips the pool-wide halt flag. Admin only; a halted pool rejects
// all new wagers.
func (s *roomService) SetHalted(ctx context.Context, caller string, halted bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := s.requireAdmin(ctx, uow, caller); err != nil {
		return err
	}

	if err := uow.StateRepository().SetHalted(ctx, halted); err != nil {
		return fmt.Errorf("failed to set halt flag: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithField("halted", halted).Warn("pool halt flag changed")
	return nil
}

// RegisterOwnership registers or reassigns an ownership token. Admin only.
func (s *roomService) RegisterOwnership(ctx context.Context, caller, tokenID, owner string) error {
	if tokenID == "" || owner == "" {
		return fmt.Errorf("token id and owner are required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := s.requireAdmin(ctx, uow, caller); err != nil {
		return err
	}

	if err := uow.OwnershipRegistry().SetOwner(ctx, tokenID, owner); err != nil {
		return fmt.Errorf("failed to register ownership: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *roomService) requireAdmin(ctx context.Context, uow UnitOfWork, caller string) error {
	cfg, err := uow.StateRepository().GetConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pool config: %w", err)
	}
	if caller != cfg.Admin {
		return &UnauthorizedError{Role: "admin", Caller: caller}
	}
	return nil
}
