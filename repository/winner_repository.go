package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roulette/database"
	"roulette/models"
	"roulette/service"
)

type winnerRepository struct {
	q Queryable
}

// NewWinnerRepository creates a new winner repository
func NewWinnerRepository(db *database.DB) service.WinnerRepository {
	return &winnerRepository{q: db.Pool}
}

func newWinnerRepository(tx Queryable) service.WinnerRepository {
	return &winnerRepository{q: tx}
}

func (r *winnerRepository) Save(ctx context.Context, winner *models.Winner) error {
	query := `INSERT INTO winners (round_id, number, drawn_at) VALUES ($1, $2, $3)`

	_, err := r.q.Exec(ctx, query, winner.RoundID, winner.Number, winner.DrawnAt)
	if err != nil {
		return fmt.Errorf("failed to save winner: %w", err)
	}
	return nil
}

func (r *winnerRepository) GetByRound(ctx context.Context, roundID int64) (*models.Winner, error) {
	query := `SELECT round_id, number, drawn_at FROM winners WHERE round_id = $1`

	var winner models.Winner
	err := r.q.QueryRow(ctx, query, roundID).Scan(&winner.RoundID, &winner.Number, &winner.DrawnAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get winner: %w", err)
	}
	return &winner, nil
}

func (r *winnerRepository) List(ctx context.Context, startAfter int64, limit int) ([]*models.Winner, error) {
	query := `
		SELECT round_id, number, drawn_at
		FROM winners
		WHERE round_id > $1
		ORDER BY round_id
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, startAfter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query winners: %w", err)
	}
	defer rows.Close()

	var winners []*models.Winner
	for rows.Next() {
		var winner models.Winner
		if err := rows.Scan(&winner.RoundID, &winner.Number, &winner.DrawnAt); err != nil {
			return nil, fmt.Errorf("failed to scan winner: %w", err)
		}
		winners = append(winners, &winner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read winners: %w", err)
	}

	return winners, nil
}
