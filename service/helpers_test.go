package service

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"roulette/models"
)

// fixture bundles a fully wired mock unit of work: the factory hands out one
// uow whose repository getters return the mocks below, with Begin, Commit and
// Rollback succeeding by default.
type fixture struct {
	factory     *MockUnitOfWorkFactory
	uow         *MockUnitOfWork
	wagers      *MockWagerRepository
	rooms       *MockRoomRepository
	state       *MockStateRepository
	liabilities *MockLiabilityRepository
	winners     *MockWinnerRepository
	accounts    *MockAccountRepository
	ownership   *MockOwnershipRegistry
	bus         *MockEventPublisher
}

func newFixture() *fixture {
	f := &fixture{
		factory:     &MockUnitOfWorkFactory{},
		uow:         &MockUnitOfWork{},
		wagers:      &MockWagerRepository{},
		rooms:       &MockRoomRepository{},
		state:       &MockStateRepository{},
		liabilities: &MockLiabilityRepository{},
		winners:     &MockWinnerRepository{},
		accounts:    &MockAccountRepository{},
		ownership:   &MockOwnershipRegistry{},
		bus:         &MockEventPublisher{},
	}

	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Commit").Return(nil)
	f.uow.On("Rollback").Return(nil)
	f.uow.On("WagerRepository").Return(f.wagers)
	f.uow.On("RoomRepository").Return(f.rooms)
	f.uow.On("StateRepository").Return(f.state)
	f.uow.On("LiabilityRepository").Return(f.liabilities)
	f.uow.On("WinnerRepository").Return(f.winners)
	f.uow.On("AccountRepository").Return(f.accounts)
	f.uow.On("OwnershipRegistry").Return(f.ownership)
	f.uow.On("EventBus").Return(f.bus)
	f.bus.On("Publish", mock.Anything)

	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.wagers.AssertExpectations(t)
	f.rooms.AssertExpectations(t)
	f.state.AssertExpectations(t)
	f.liabilities.AssertExpectations(t)
	f.winners.AssertExpectations(t)
	f.accounts.AssertExpectations(t)
	f.ownership.AssertExpectations(t)
}

func testConfig() *models.PoolConfig {
	return &models.PoolConfig{
		Admin:          "admin",
		Distributor:    "distributor",
		RoundDuration:  120,
		PlatformFeeBps: 250,
	}
}

func testRoom() *models.Room {
	return &models.Room{
		ID:               1,
		Name:             "main",
		Asset:            models.Asset{Type: models.AssetNative, Key: "uroul"},
		OwnershipTokenID: "room-token-1",
		MinBet:           1,
		MaxBet:           1000,
	}
}
