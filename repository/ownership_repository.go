package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roulette/database"
	"roulette/service"
)

type ownershipRepository struct {
	q Queryable
}

// NewOwnershipRepository creates a new ownership registry backed by the
// room_owners table.
func NewOwnershipRepository(db *database.DB) service.OwnershipRegistry {
	return &ownershipRepository{q: db.Pool}
}

func newOwnershipRepository(tx Queryable) service.OwnershipRegistry {
	return &ownershipRepository{q: tx}
}

func (r *ownershipRepository) OwnerOf(ctx context.Context, tokenID string) (string, error) {
	query := `SELECT owner FROM room_owners WHERE token_id = $1`

	var owner string
	err := r.q.QueryRow(ctx, query, tokenID).Scan(&owner)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get token owner: %w", err)
	}
	return owner, nil
}

func (r *ownershipRepository) SetOwner(ctx context.Context, tokenID, owner string) error {
	query := `
		INSERT INTO room_owners (token_id, owner)
		VALUES ($1, $2)
		ON CONFLICT (token_id) DO UPDATE SET owner = EXCLUDED.owner`

	if _, err := r.q.Exec(ctx, query, tokenID, owner); err != nil {
		return fmt.Errorf("failed to set token owner: %w", err)
	}
	return nil
}
