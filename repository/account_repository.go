package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roulette/database"
	"roulette/models"
	"roulette/service"
)

type accountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) service.AccountRepository {
	return &accountRepository{q: db.Pool}
}

func newAccountRepository(tx Queryable) service.AccountRepository {
	return &accountRepository{q: tx}
}

func (r *accountRepository) Balance(ctx context.Context, holder string, asset models.Asset) (int64, error) {
	query := `SELECT balance FROM accounts WHERE holder = $1 AND asset_type = $2 AND asset_key = $3`

	var balance int64
	err := r.q.QueryRow(ctx, query, holder, asset.Type, asset.Key).Scan(&balance)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// Transfer debits one holder and credits another in a single statement pair.
// The conditional debit makes overdraft impossible even under concurrency.
func (r *accountRepository) Transfer(ctx context.Context, from, to string, asset models.Asset, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive, got %d", amount)
	}

	debit := `
		UPDATE accounts
		SET balance = balance - $4
		WHERE holder = $1 AND asset_type = $2 AND asset_key = $3 AND balance >= $4`

	tag, err := r.q.Exec(ctx, debit, from, asset.Type, asset.Key, amount)
	if err != nil {
		return fmt.Errorf("failed to debit %s: %w", from, err)
	}
	if tag.RowsAffected() == 0 {
		have, balErr := r.Balance(ctx, from, asset)
		if balErr != nil {
			return balErr
		}
		return &service.InsufficientFundsError{Holder: from, Have: have, Need: amount}
	}

	credit := `
		INSERT INTO accounts (holder, asset_type, asset_key, balance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (holder, asset_type, asset_key)
		DO UPDATE SET balance = accounts.balance + EXCLUDED.balance`

	if _, err := r.q.Exec(ctx, credit, to, asset.Type, asset.Key, amount); err != nil {
		return fmt.Errorf("failed to credit %s: %w", to, err)
	}

	return nil
}
