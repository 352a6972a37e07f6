package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"roulette/events"
	"roulette/models"
)

// MockWagerRepository is a mock implementation of WagerRepository
type MockWagerRepository struct {
	mock.Mock
}

func (m *MockWagerRepository) Create(ctx context.Context, record *models.WagerRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockWagerRepository) Exists(ctx context.Context, roomID, roundID int64, player string) (bool, error) {
	args := m.Called(ctx, roomID, roundID, player)
	return args.Bool(0), args.Error(1)
}

func (m *MockWagerRepository) ListByRoomRound(ctx context.Context, roomID, roundID int64, startAfter string, limit int) ([]*models.WagerRecord, error) {
	args := m.Called(ctx, roomID, roundID, startAfter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WagerRecord), args.Error(1)
}

func (m *MockWagerRepository) ListByRoomPlayer(ctx context.Context, roomID int64, player string, startAfter int64, limit int) ([]*models.WagerRecord, error) {
	args := m.Called(ctx, roomID, player, startAfter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WagerRecord), args.Error(1)
}

// MockRoomRepository is a mock implementation of RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context, startAfter int64, limit int) ([]*models.Room, error) {
	args := m.Called(ctx, startAfter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *MockRoomRepository) UpdateInfo(ctx context.Context, id int64, name, ownershipTokenID string) error {
	args := m.Called(ctx, id, name, ownershipTokenID)
	return args.Error(0)
}

func (m *MockRoomRepository) UpdateBetLimits(ctx context.Context, id int64, minBet, maxBet int64) error {
	args := m.Called(ctx, id, minBet, maxBet)
	return args.Error(0)
}

func (m *MockRoomRepository) SetReserveFloor(ctx context.Context, id int64, floor int64) error {
	args := m.Called(ctx, id, floor)
	return args.Error(0)
}

func (m *MockRoomRepository) ResetReserveFloors(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStateRepository is a mock implementation of StateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Get(ctx context.Context) (*models.GameState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameState), args.Error(1)
}

func (m *MockStateRepository) AdvanceRound(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStateRepository) NextRoomID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStateRepository) SetHalted(ctx context.Context, halted bool) error {
	args := m.Called(ctx, halted)
	return args.Error(0)
}

func (m *MockStateRepository) GetConfig(ctx context.Context) (*models.PoolConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PoolConfig), args.Error(1)
}

func (m *MockStateRepository) SaveConfig(ctx context.Context, cfg *models.PoolConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockStateRepository) Seed(ctx context.Context, cfg *models.PoolConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockStateRepository) GetRoundStart(ctx context.Context, roundID int64) (*models.RoundStart, error) {
	args := m.Called(ctx, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoundStart), args.Error(1)
}

func (m *MockStateRepository) RecordRoundStart(ctx context.Context, roundID int64, at time.Time) error {
	args := m.Called(ctx, roundID, at)
	return args.Error(0)
}

// MockLiabilityRepository is a mock implementation of LiabilityRepository
type MockLiabilityRepository struct {
	mock.Mock
}

func (m *MockLiabilityRepository) Get(ctx context.Context, roomID, roundID int64) (*models.RoundLiabilities, error) {
	args := m.Called(ctx, roomID, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoundLiabilities), args.Error(1)
}

func (m *MockLiabilityRepository) Save(ctx context.Context, liabilities *models.RoundLiabilities) error {
	args := m.Called(ctx, liabilities)
	return args.Error(0)
}

func (m *MockLiabilityRepository) DeleteThrough(ctx context.Context, roundID int64) error {
	args := m.Called(ctx, roundID)
	return args.Error(0)
}

// MockWinnerRepository is a mock implementation of WinnerRepository
type MockWinnerRepository struct {
	mock.Mock
}

func (m *MockWinnerRepository) Save(ctx context.Context, winner *models.Winner) error {
	args := m.Called(ctx, winner)
	return args.Error(0)
}

func (m *MockWinnerRepository) GetByRound(ctx context.Context, roundID int64) (*models.Winner, error) {
	args := m.Called(ctx, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Winner), args.Error(1)
}

func (m *MockWinnerRepository) List(ctx context.Context, startAfter int64, limit int) ([]*models.Winner, error) {
	args := m.Called(ctx, startAfter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Winner), args.Error(1)
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Balance(ctx context.Context, holder string, asset models.Asset) (int64, error) {
	args := m.Called(ctx, holder, asset)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Transfer(ctx context.Context, from, to string, asset models.Asset, amount int64) error {
	args := m.Called(ctx, from, to, asset, amount)
	return args.Error(0)
}

// MockOwnershipRegistry is a mock implementation of OwnershipRegistry
type MockOwnershipRegistry struct {
	mock.Mock
}

func (m *MockOwnershipRegistry) OwnerOf(ctx context.Context, tokenID string) (string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Error(1)
}

func (m *MockOwnershipRegistry) SetOwner(ctx context.Context, tokenID, owner string) error {
	args := m.Called(ctx, tokenID, owner)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) WagerRepository() WagerRepository {
	args := m.Called()
	return args.Get(0).(WagerRepository)
}

func (m *MockUnitOfWork) RoomRepository() RoomRepository {
	args := m.Called()
	return args.Get(0).(RoomRepository)
}

func (m *MockUnitOfWork) StateRepository() StateRepository {
	args := m.Called()
	return args.Get(0).(StateRepository)
}

func (m *MockUnitOfWork) LiabilityRepository() LiabilityRepository {
	args := m.Called()
	return args.Get(0).(LiabilityRepository)
}

func (m *MockUnitOfWork) WinnerRepository() WinnerRepository {
	args := m.Called()
	return args.Get(0).(WinnerRepository)
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	args := m.Called()
	return args.Get(0).(AccountRepository)
}

func (m *MockUnitOfWork) OwnershipRegistry() OwnershipRegistry {
	args := m.Called()
	return args.Get(0).(OwnershipRegistry)
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	args := m.Called()
	return args.Get(0).(EventPublisher)
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
