package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roulette/database"
	"roulette/models"
	"roulette/service"
)

type liabilityRepository struct {
	q Queryable
}

// NewLiabilityRepository creates a new liability repository
func NewLiabilityRepository(db *database.DB) service.LiabilityRepository {
	return &liabilityRepository{q: db.Pool}
}

func newLiabilityRepository(tx Queryable) service.LiabilityRepository {
	return &liabilityRepository{q: tx}
}

// Get locks the totals row for (room, round) so concurrent admissions in the
// same room serialize on it. A missing row means no wager has been admitted
// yet; the zero-valued totals are correct for that case.
func (r *liabilityRepository) Get(ctx context.Context, roomID, roundID int64) (*models.RoundLiabilities, error) {
	query := `SELECT totals FROM round_liabilities WHERE room_id = $1 AND round_id = $2 FOR UPDATE`

	liabilities := &models.RoundLiabilities{RoomID: roomID, RoundID: roundID}

	var totals []int64
	err := r.q.QueryRow(ctx, query, roomID, roundID).Scan(&totals)
	if err == pgx.ErrNoRows {
		return liabilities, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round liabilities: %w", err)
	}
	if len(totals) != models.WheelSize {
		return nil, fmt.Errorf("liability row for room %d round %d has %d totals, want %d",
			roomID, roundID, len(totals), models.WheelSize)
	}
	copy(liabilities.Totals[:], totals)

	return liabilities, nil
}

func (r *liabilityRepository) Save(ctx context.Context, liabilities *models.RoundLiabilities) error {
	query := `
		INSERT INTO round_liabilities (room_id, round_id, totals)
		VALUES ($1, $2, $3)
		ON CONFLICT (room_id, round_id) DO UPDATE SET totals = EXCLUDED.totals`

	_, err := r.q.Exec(ctx, query, liabilities.RoomID, liabilities.RoundID, liabilities.Totals[:])
	if err != nil {
		return fmt.Errorf("failed to save round liabilities: %w", err)
	}
	return nil
}

func (r *liabilityRepository) DeleteThrough(ctx context.Context, roundID int64) error {
	query := `DELETE FROM round_liabilities WHERE round_id <= $1`

	if _, err := r.q.Exec(ctx, query, roundID); err != nil {
		return fmt.Errorf("failed to delete round liabilities: %w", err)
	}
	return nil
}
