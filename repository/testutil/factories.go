package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"roulette/database"
	"roulette/models"
)

// NativeAsset is the denomination used by most repository tests.
var NativeAsset = models.Asset{Type: models.AssetNative, Key: "uroul"}

// CreateTestRoom returns a room with permissive bet limits.
func CreateTestRoom(id int64) *models.Room {
	return &models.Room{
		ID:               id,
		Name:             "test room",
		Asset:            NativeAsset,
		OwnershipTokenID: "test-token",
		MinBet:           1,
		MaxBet:           1_000_000,
		CreatedAt:        time.Now(),
	}
}

// CreateTestWager returns a single-leg wager record for (room, round, player).
func CreateTestWager(roomID, roundID int64, player string, amount int64) *models.WagerRecord {
	return &models.WagerRecord{
		RoomID:  roomID,
		RoundID: roundID,
		Player:  player,
		Legs: []models.BetLeg{
			{Direction: models.Direction{Kind: models.DirectionRed}, Amount: amount},
		},
		PlacedAt: time.Now(),
	}
}

// SeedAccount inserts a balance row directly, bypassing the transfer path.
func SeedAccount(t *testing.T, db *database.DB, holder string, asset models.Asset, balance int64) {
	t.Helper()
	err := db.WithTransaction(context.Background(), func(tx pgx.Tx) error {
		_, err := tx.Exec(context.Background(), `
			INSERT INTO accounts (holder, asset_type, asset_key, balance)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (holder, asset_type, asset_key) DO UPDATE SET balance = EXCLUDED.balance`,
			holder, asset.Type, asset.Key, balance)
		return err
	})
	require.NoError(t, err)
}
