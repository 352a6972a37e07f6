package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"roulette/api"
	"roulette/config"
	"roulette/database"
	"roulette/events"
	"roulette/models"
	"roulette/repository"
	"roulette/service"
)

// Run initializes and starts the service
func Run(ctx context.Context) error {
	cfg := config.Get()

	log.Info("connecting to database")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	eventBus := events.NewBus()
	eventBus.Subscribe(events.EventTypeRoundSettled, func(ctx context.Context, e events.Event) {
		settled := e.(events.RoundSettledEvent)
		log.WithFields(log.Fields{
			"round":     settled.RoundID,
			"winner":    settled.Winner,
			"rooms":     settled.RoomsSettled,
			"transfers": settled.TransferCount,
		}).Info("round settled")
	})

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// First start writes the state and config rows; restarts leave them be.
	if err := seedState(ctx, uowFactory, cfg); err != nil {
		return err
	}

	betting := service.NewBettingService(uowFactory)
	rounds := service.NewRoundService(uowFactory)
	pools := service.NewPoolService(uowFactory)
	rooms := service.NewRoomService(uowFactory)

	server := api.NewServer(cfg.ListenAddr, betting, rounds, pools, rooms)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.WithField("environment", cfg.Environment).Info("service running")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

func seedState(ctx context.Context, uowFactory service.UnitOfWorkFactory, cfg *config.Config) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer uow.Rollback()

	err := uow.StateRepository().Seed(ctx, &models.PoolConfig{
		Admin:          cfg.AdminID,
		Distributor:    cfg.DistributorID,
		RoundDuration:  cfg.RoundDurationSeconds,
		PlatformFeeBps: cfg.PlatformFeeBps,
	})
	if err != nil {
		return fmt.Errorf("failed to seed state: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}
