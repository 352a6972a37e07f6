package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roulette/database"
	"roulette/models"
	"roulette/service"
)

type roomRepository struct {
	q Queryable
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *database.DB) service.RoomRepository {
	return &roomRepository{q: db.Pool}
}

func newRoomRepository(tx Queryable) service.RoomRepository {
	return &roomRepository{q: tx}
}

const roomColumns = `id, name, asset_type, asset_key, ownership_token_id, min_bet, max_bet, reserve_floor, created_at`

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (id, name, asset_type, asset_key, ownership_token_id, min_bet, max_bet, reserve_floor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8)`

	_, err := r.q.Exec(ctx, query,
		room.ID,
		room.Name,
		room.Asset.Type,
		room.Asset.Key,
		room.OwnershipTokenID,
		room.MinBet,
		room.MaxBet,
		room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *roomRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *roomRepository) getOne(ctx context.Context, query string, id int64) (*models.Room, error) {
	var room models.Room
	err := r.q.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Asset.Type,
		&room.Asset.Key,
		&room.OwnershipTokenID,
		&room.MinBet,
		&room.MaxBet,
		&room.ReserveFloor,
		&room.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return &room, nil
}

func (r *roomRepository) List(ctx context.Context, startAfter int64, limit int) ([]*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE id > $1
		ORDER BY id
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, startAfter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		var room models.Room
		err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Asset.Type,
			&room.Asset.Key,
			&room.OwnershipTokenID,
			&room.MinBet,
			&room.MaxBet,
			&room.ReserveFloor,
			&room.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rooms: %w", err)
	}

	return rooms, nil
}

func (r *roomRepository) UpdateInfo(ctx context.Context, id int64, name, ownershipTokenID string) error {
	query := `UPDATE rooms SET name = $2, ownership_token_id = $3 WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id, name, ownershipTokenID)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &service.RoomNotFoundError{RoomID: id}
	}
	return nil
}

func (r *roomRepository) UpdateBetLimits(ctx context.Context, id int64, minBet, maxBet int64) error {
	query := `UPDATE rooms SET min_bet = $2, max_bet = $3 WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id, minBet, maxBet)
	if err != nil {
		return fmt.Errorf("failed to update bet limits: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &service.RoomNotFoundError{RoomID: id}
	}
	return nil
}

func (r *roomRepository) SetReserveFloor(ctx context.Context, id int64, floor int64) error {
	query := `UPDATE rooms SET reserve_floor = $2 WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, id, floor); err != nil {
		return fmt.Errorf("failed to set reserve floor: %w", err)
	}
	return nil
}

func (r *roomRepository) ResetReserveFloors(ctx context.Context) error {
	query := `UPDATE rooms SET reserve_floor = 0 WHERE reserve_floor <> 0`

	if _, err := r.q.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to reset reserve floors: %w", err)
	}
	return nil
}
