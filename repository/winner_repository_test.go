package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roulette/models"
	"roulette/repository/testutil"
)

func TestWinnerRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	repo := NewWinnerRepository(testDB.DB)

	drawnAt := time.Now().UTC().Truncate(time.Second)
	for round, number := range map[int64]uint32{0: 17, 1: 0, 2: 37} {
		require.NoError(t, repo.Save(ctx, &models.Winner{RoundID: round, Number: number, DrawnAt: drawnAt}))
	}

	t.Run("round lookup", func(t *testing.T) {
		winner, err := repo.GetByRound(ctx, 0)
		require.NoError(t, err)
		require.NotNil(t, winner)
		assert.Equal(t, uint32(17), winner.Number)

		missing, err := repo.GetByRound(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("listing without a cursor includes round zero", func(t *testing.T) {
		winners, err := repo.List(ctx, -1, 10)
		require.NoError(t, err)
		require.Len(t, winners, 3)
		assert.Equal(t, int64(0), winners[0].RoundID)
	})

	t.Run("listing pages by round cursor", func(t *testing.T) {
		page, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, int64(1), page[0].RoundID)
		assert.Equal(t, int64(2), page[1].RoundID)
	})
}
