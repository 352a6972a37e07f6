package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roulette/models"
)

func TestAddRoom(t *testing.T) {
	ctx := context.Background()
	asset := models.Asset{Type: models.AssetNative, Key: "uroul"}

	t.Run("allocates the next room id", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		f.state.On("GetConfig", mock.Anything).Return(testConfig(), nil)
		f.ownership.On("OwnerOf", mock.Anything, "token-3").Return("owner", nil)
		f.state.On("NextRoomID", mock.Anything).Return(int64(3), nil)
		f.rooms.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Room) bool {
			return r.ID == 3 && r.Name == "vip" && r.OwnershipTokenID == "token-3"
		})).Return(nil)

		room, err := svc.AddRoom(ctx, "admin", "vip", asset, "token-3", 10, 5000)
		require.NoError(t, err)
		assert.Equal(t, int64(3), room.ID)
		assert.Equal(t, asset, room.Asset)
		f.assertExpectations(t)
	})

	t.Run("rejects caller other than the admin", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		f.state.On("GetConfig", mock.Anything).Return(testConfig(), nil)

		_, err := svc.AddRoom(ctx, "mallory", "vip", asset, "token-3", 10, 5000)

		var unauthorized *UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, "admin", unauthorized.Role)
		f.rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects unregistered ownership token", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		f.state.On("GetConfig", mock.Anything).Return(testConfig(), nil)
		f.ownership.On("OwnerOf", mock.Anything, "nobody-owns-this").Return("", nil)

		_, err := svc.AddRoom(ctx, "admin", "vip", asset, "nobody-owns-this", 10, 5000)
		assert.Error(t, err)
		f.rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects inverted bet limits", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		_, err := svc.AddRoom(ctx, "admin", "vip", asset, "token-3", 100, 10)
		assert.Error(t, err)
	})
}

func TestUpdateBetLimits(t *testing.T) {
	ctx := context.Background()

	t.Run("allows the room owner", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		f.rooms.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(testRoom(), nil)
		f.ownership.On("OwnerOf", mock.Anything, "room-token-1").Return("owner", nil)
		f.rooms.On("UpdateBetLimits", mock.Anything, int64(1), int64(5), int64(2000)).Return(nil)

		err := svc.UpdateBetLimits(ctx, "owner", 1, 5, 2000)
		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("rejects the admin when not the owner", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		f.rooms.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(testRoom(), nil)
		f.ownership.On("OwnerOf", mock.Anything, "room-token-1").Return("owner", nil)

		err := svc.UpdateBetLimits(ctx, "admin", 1, 5, 2000)

		var unauthorized *UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, "room owner", unauthorized.Role)
	})
}

func TestChangeRoomConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("updates name and ownership token", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		f.state.On("GetConfig", mock.Anything).Return(testConfig(), nil)
		f.rooms.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(testRoom(), nil)
		f.rooms.On("UpdateInfo", mock.Anything, int64(1), "renamed", "token-9").Return(nil)

		err := svc.ChangeRoomConfig(ctx, "admin", 1, "renamed", "token-9")
		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("fails for an unknown room", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		f.state.On("GetConfig", mock.Anything).Return(testConfig(), nil)
		f.rooms.On("GetByIDForUpdate", mock.Anything, int64(9)).Return(nil, nil)

		err := svc.ChangeRoomConfig(ctx, "admin", 9, "renamed", "token-9")

		var notFound *RoomNotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestPoolAdministration(t *testing.T) {
	ctx := context.Background()

	t.Run("admin halts the pool", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		f.state.On("GetConfig", mock.Anything).Return(testConfig(), nil)
		f.state.On("SetHalted", mock.Anything, true).Return(nil)

		err := svc.SetHalted(ctx, "admin", true)
		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("non-admin cannot halt", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		f.state.On("GetConfig", mock.Anything).Return(testConfig(), nil)

		err := svc.SetHalted(ctx, "mallory", true)

		var unauthorized *UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
		f.state.AssertNotCalled(t, "SetHalted", mock.Anything, mock.Anything)
	})

	t.Run("admin replaces the config", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		next := &models.PoolConfig{Admin: "admin2", Distributor: "dist2", RoundDuration: 60, PlatformFeeBps: 100}
		f.state.On("GetConfig", mock.Anything).Return(testConfig(), nil)
		f.state.On("SaveConfig", mock.Anything, next).Return(nil)

		err := svc.UpdateConfig(ctx, "admin", next)
		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("rejects fee outside basis-point range", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		next := &models.PoolConfig{Admin: "a", Distributor: "d", RoundDuration: 60, PlatformFeeBps: 10001}
		err := svc.UpdateConfig(ctx, "admin", next)
		assert.Error(t, err)
	})

	t.Run("admin registers an ownership token", func(t *testing.T) {
		f := newFixture()
		svc := NewRoomService(f.factory)

		f.state.On("GetConfig", mock.Anything).Return(testConfig(), nil)
		f.ownership.On("SetOwner", mock.Anything, "token-7", "carol").Return(nil)

		err := svc.RegisterOwnership(ctx, "admin", "token-7", "carol")
		require.NoError(t, err)
		f.assertExpectations(t)
	})
}
