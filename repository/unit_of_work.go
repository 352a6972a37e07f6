package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roulette/database"
	"roulette/events"
	"roulette/service"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db  *database.DB
	tx  pgx.Tx
	ctx context.Context
	bus *events.TransactionalBus

	wagerRepo     service.WagerRepository
	roomRepo      service.RoomRepository
	stateRepo     service.StateRepository
	liabilityRepo service.LiabilityRepository
	winnerRepo    service.WinnerRepository
	accountRepo   service.AccountRepository
	ownershipRepo service.OwnershipRegistry
}

type unitOfWorkFactory struct {
	db  *database.DB
	bus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. Each unit of work
// gets its own transactional bus, flushed only on commit.
func NewUnitOfWorkFactory(db *database.DB, bus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db, bus: bus}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:  f.db,
		bus: events.NewTransactionalBus(f.bus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.wagerRepo = newWagerRepository(tx)
	u.roomRepo = newRoomRepository(tx)
	u.stateRepo = newStateRepository(tx)
	u.liabilityRepo = newLiabilityRepository(tx)
	u.winnerRepo = newWinnerRepository(tx)
	u.accountRepo = newAccountRepository(tx)
	u.ownershipRepo = newOwnershipRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Events only become observable once the commit has succeeded.
	if err := u.bus.Flush(u.ctx); err != nil {
		return fmt.Errorf("failed to flush events: %w", err)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	u.bus.Discard()

	return nil
}

func (u *unitOfWork) WagerRepository() service.WagerRepository {
	if u.wagerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.wagerRepo
}

func (u *unitOfWork) RoomRepository() service.RoomRepository {
	if u.roomRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.roomRepo
}

func (u *unitOfWork) StateRepository() service.StateRepository {
	if u.stateRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.stateRepo
}

func (u *unitOfWork) LiabilityRepository() service.LiabilityRepository {
	if u.liabilityRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.liabilityRepo
}

func (u *unitOfWork) WinnerRepository() service.WinnerRepository {
	if u.winnerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.winnerRepo
}

func (u *unitOfWork) AccountRepository() service.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

func (u *unitOfWork) OwnershipRegistry() service.OwnershipRegistry {
	if u.ownershipRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ownershipRepo
}

func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.bus
}
