package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"roulette/database"
	"roulette/models"
	"roulette/service"
)

type stateRepository struct {
	q Queryable
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *database.DB) service.StateRepository {
	return &stateRepository{q: db.Pool}
}

func newStateRepository(tx Queryable) service.StateRepository {
	return &stateRepository{q: tx}
}

// Get locks the single game-state row. Every engine write path starts here,
// so concurrent transactions serialize on it.
func (r *stateRepository) Get(ctx context.Context) (*models.GameState, error) {
	query := `SELECT living_round, halted, room_counter FROM game_state WHERE id = 1 FOR UPDATE`

	var state models.GameState
	err := r.q.QueryRow(ctx, query).Scan(&state.LivingRound, &state.Halted, &state.RoomCounter)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	return &state, nil
}

func (r *stateRepository) AdvanceRound(ctx context.Context) (int64, error) {
	query := `UPDATE game_state SET living_round = living_round + 1 WHERE id = 1 RETURNING living_round`

	var round int64
	if err := r.q.QueryRow(ctx, query).Scan(&round); err != nil {
		return 0, fmt.Errorf("failed to advance round: %w", err)
	}
	return round, nil
}

func (r *stateRepository) NextRoomID(ctx context.Context) (int64, error) {
	query := `UPDATE game_state SET room_counter = room_counter + 1 WHERE id = 1 RETURNING room_counter`

	var id int64
	if err := r.q.QueryRow(ctx, query).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to allocate room id: %w", err)
	}
	return id, nil
}

func (r *stateRepository) SetHalted(ctx context.Context, halted bool) error {
	query := `UPDATE game_state SET halted = $1 WHERE id = 1`

	if _, err := r.q.Exec(ctx, query, halted); err != nil {
		return fmt.Errorf("failed to set halt flag: %w", err)
	}
	return nil
}

func (r *stateRepository) GetConfig(ctx context.Context) (*models.PoolConfig, error) {
	query := `SELECT admin, distributor, round_duration, platform_fee_bps FROM pool_config WHERE id = 1`

	var cfg models.PoolConfig
	err := r.q.QueryRow(ctx, query).Scan(&cfg.Admin, &cfg.Distributor, &cfg.RoundDuration, &cfg.PlatformFeeBps)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool config: %w", err)
	}
	return &cfg, nil
}

func (r *stateRepository) SaveConfig(ctx context.Context, cfg *models.PoolConfig) error {
	query := `
		INSERT INTO pool_config (id, admin, distributor, round_duration, platform_fee_bps)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			admin = EXCLUDED.admin,
			distributor = EXCLUDED.distributor,
			round_duration = EXCLUDED.round_duration,
			platform_fee_bps = EXCLUDED.platform_fee_bps`

	_, err := r.q.Exec(ctx, query, cfg.Admin, cfg.Distributor, cfg.RoundDuration, cfg.PlatformFeeBps)
	if err != nil {
		return fmt.Errorf("failed to save pool config: %w", err)
	}
	return nil
}

// Seed inserts the state and config rows on first start. Existing rows are
// left alone so restarts do not clobber a live configuration.
func (r *stateRepository) Seed(ctx context.Context, cfg *models.PoolConfig) error {
	stateQuery := `INSERT INTO game_state (id) VALUES (1) ON CONFLICT (id) DO NOTHING`
	if _, err := r.q.Exec(ctx, stateQuery); err != nil {
		return fmt.Errorf("failed to seed game state: %w", err)
	}

	configQuery := `
		INSERT INTO pool_config (id, admin, distributor, round_duration, platform_fee_bps)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`
	_, err := r.q.Exec(ctx, configQuery, cfg.Admin, cfg.Distributor, cfg.RoundDuration, cfg.PlatformFeeBps)
	if err != nil {
		return fmt.Errorf("failed to seed pool config: %w", err)
	}
	return nil
}

func (r *stateRepository) GetRoundStart(ctx context.Context, roundID int64) (*models.RoundStart, error) {
	query := `SELECT round_id, started_at FROM round_starts WHERE round_id = $1`

	var start models.RoundStart
	err := r.q.QueryRow(ctx, query, roundID).Scan(&start.RoundID, &start.StartedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round start: %w", err)
	}
	return &start, nil
}

func (r *stateRepository) RecordRoundStart(ctx context.Context, roundID int64, at time.Time) error {
	// The first wager wins; a concurrent insert keeps the earlier timestamp.
	query := `INSERT INTO round_starts (round_id, started_at) VALUES ($1, $2) ON CONFLICT (round_id) DO NOTHING`

	if _, err := r.q.Exec(ctx, query, roundID, at); err != nil {
		return fmt.Errorf("failed to record round start: %w", err)
	}
	return nil
}
