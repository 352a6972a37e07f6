package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"roulette/database"
	"roulette/models"
	"roulette/service"
)

type wagerRepository struct {
	q Queryable
}

// NewWagerRepository creates a new wager repository
func NewWagerRepository(db *database.DB) service.WagerRepository {
	return &wagerRepository{q: db.Pool}
}

func newWagerRepository(tx Queryable) service.WagerRepository {
	return &wagerRepository{q: tx}
}

func (r *wagerRepository) Create(ctx context.Context, record *models.WagerRecord) error {
	legs, err := json.Marshal(record.Legs)
	if err != nil {
		return fmt.Errorf("failed to encode legs: %w", err)
	}

	query := `
		INSERT INTO wagers (room_id, round_id, player, legs, total_amount, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.q.Exec(ctx, query,
		record.RoomID,
		record.RoundID,
		record.Player,
		legs,
		record.TotalAmount(),
		record.PlacedAt,
	)
	if isUniqueViolation(err) {
		return &service.DuplicateWagerError{
			RoomID:  record.RoomID,
			RoundID: record.RoundID,
			Player:  record.Player,
		}
	}
	if err != nil {
		return fmt.Errorf("failed to create wager: %w", err)
	}

	return nil
}

func (r *wagerRepository) Exists(ctx context.Context, roomID, roundID int64, player string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM wagers WHERE room_id = $1 AND round_id = $2 AND player = $3
		)`

	var exists bool
	if err := r.q.QueryRow(ctx, query, roomID, roundID, player).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for wager: %w", err)
	}
	return exists, nil
}

func (r *wagerRepository) ListByRoomRound(ctx context.Context, roomID, roundID int64, startAfter string, limit int) ([]*models.WagerRecord, error) {
	query := `
		SELECT room_id, round_id, player, legs, placed_at
		FROM wagers
		WHERE room_id = $1 AND round_id = $2 AND player > $3
		ORDER BY player`
	args := []any{roomID, roundID, startAfter}

	// limit <= 0 scans the whole round, the settlement path.
	if limit > 0 {
		query += ` LIMIT $4`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wagers: %w", err)
	}
	defer rows.Close()

	return scanWagers(rows)
}

func (r *wagerRepository) ListByRoomPlayer(ctx context.Context, roomID int64, player string, startAfter int64, limit int) ([]*models.WagerRecord, error) {
	query := `
		SELECT room_id, round_id, player, legs, placed_at
		FROM wagers
		WHERE room_id = $1 AND player = $2 AND round_id > $3
		ORDER BY round_id`
	args := []any{roomID, player, startAfter}

	if limit > 0 {
		query += ` LIMIT $4`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wagers: %w", err)
	}
	defer rows.Close()

	return scanWagers(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanWagers(rows rowScanner) ([]*models.WagerRecord, error) {
	var records []*models.WagerRecord
	for rows.Next() {
		var record models.WagerRecord
		var legs []byte
		err := rows.Scan(
			&record.RoomID,
			&record.RoundID,
			&record.Player,
			&legs,
			&record.PlacedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		if err := json.Unmarshal(legs, &record.Legs); err != nil {
			return nil, fmt.Errorf("failed to decode legs: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wagers: %w", err)
	}

	return records, nil
}
