package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roulette/models"
	"roulette/service"
)

type mockBettingService struct {
	mock.Mock
}

func (m *mockBettingService) PlaceWager(ctx context.Context, caller string, roomID int64, legs []models.BetLeg, funds int64, now time.Time) (*service.PlaceWagerResult, error) {
	args := m.Called(ctx, caller, roomID, legs, funds, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PlaceWagerResult), args.Error(1)
}

func (m *mockBettingService) ListRoomRoundWagers(ctx context.Context, roomID, roundID int64, startAfter string, limit int) ([]*models.WagerRecord, error) {
	args := m.Called(ctx, roomID, roundID, startAfter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WagerRecord), args.Error(1)
}

func (m *mockBettingService) ListRoomPlayerWagers(ctx context.Context, roomID int64, player string, startAfter int64, limit int) ([]*models.WagerRecord, error) {
	args := m.Called(ctx, roomID, player, startAfter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WagerRecord), args.Error(1)
}

type mockRoundService struct {
	mock.Mock
}

func (m *mockRoundService) CloseRound(ctx context.Context, caller string, height uint64, blockTime time.Time) (*models.CloseRoundResult, error) {
	args := m.Called(ctx, caller, height, blockTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CloseRoundResult), args.Error(1)
}

func (m *mockRoundService) GetWinner(ctx context.Context, roundID int64) (*models.Winner, error) {
	args := m.Called(ctx, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Winner), args.Error(1)
}

func (m *mockRoundService) ListWinners(ctx context.Context, startAfter int64, limit int) ([]*models.Winner, error) {
	args := m.Called(ctx, startAfter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Winner), args.Error(1)
}

func (m *mockRoundService) GetState(ctx context.Context) (*service.StateView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StateView), args.Error(1)
}

type mockPoolService struct {
	mock.Mock
}

func (m *mockPoolService) Deposit(ctx context.Context, caller string, roomID, amount, funds int64) (*service.WithdrawResult, error) {
	args := m.Called(ctx, caller, roomID, amount, funds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WithdrawResult), args.Error(1)
}

func (m *mockPoolService) Withdraw(ctx context.Context, caller string, roomID, amount int64) (*service.WithdrawResult, error) {
	args := m.Called(ctx, caller, roomID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WithdrawResult), args.Error(1)
}

func (m *mockPoolService) MaxWithdrawable(ctx context.Context, roomID int64) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

type mockRoomService struct {
	mock.Mock
}

func (m *mockRoomService) AddRoom(ctx context.Context, caller, name string, asset models.Asset, ownershipTokenID string, minBet, maxBet int64) (*models.Room, error) {
	args := m.Called(ctx, caller, name, asset, ownershipTokenID, minBet, maxBet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *mockRoomService) ChangeRoomConfig(ctx context.Context, caller string, roomID int64, name, ownershipTokenID string) error {
	args := m.Called(ctx, caller, roomID, name, ownershipTokenID)
	return args.Error(0)
}

func (m *mockRoomService) UpdateBetLimits(ctx context.Context, caller string, roomID, minBet, maxBet int64) error {
	args := m.Called(ctx, caller, roomID, minBet, maxBet)
	return args.Error(0)
}

func (m *mockRoomService) GetRoom(ctx context.Context, roomID int64) (*models.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *mockRoomService) ListRooms(ctx context.Context, startAfter int64, limit int) ([]*models.Room, error) {
	args := m.Called(ctx, startAfter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *mockRoomService) UpdateConfig(ctx context.Context, caller string, cfg *models.PoolConfig) error {
	args := m.Called(ctx, caller, cfg)
	return args.Error(0)
}

func (m *mockRoomService) SetHalted(ctx context.Context, caller string, halted bool) error {
	args := m.Called(ctx, caller, halted)
	return args.Error(0)
}

func (m *mockRoomService) RegisterOwnership(ctx context.Context, caller, tokenID, owner string) error {
	args := m.Called(ctx, caller, tokenID, owner)
	return args.Error(0)
}

type testServer struct {
	betting *mockBettingService
	rounds  *mockRoundService
	pools   *mockPoolService
	rooms   *mockRoomService
	handler http.Handler
}

func newTestServer() *testServer {
	ts := &testServer{
		betting: &mockBettingService{},
		rounds:  &mockRoundService{},
		pools:   &mockPoolService{},
		rooms:   &mockRoomService{},
	}
	srv := NewServer(":0", ts.betting, ts.rounds, ts.pools, ts.rooms)
	ts.handler = srv.Router()
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, who, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if who != "" {
		req.Header.Set(callerHeader, who)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func TestPlaceWagerEndpoint(t *testing.T) {
	t.Run("created with transfer instruction", func(t *testing.T) {
		ts := newTestServer()
		ts.betting.On("PlaceWager", mock.Anything, "alice", int64(1), mock.Anything, int64(400), mock.Anything).
			Return(&service.PlaceWagerResult{
				Wager: &models.WagerRecord{RoomID: 1, RoundID: 5, Player: "alice", Legs: []models.BetLeg{
					{Direction: models.Direction{Kind: models.DirectionRed}, Amount: 400},
				}},
				ReserveFloor: 800,
				Transfer: &models.TransferInstruction{
					Kind: models.TransferIn, Holder: "alice",
					Asset:  models.Asset{Type: models.AssetNative, Key: "uroul"},
					Amount: 400, Memo: "bet",
				},
			}, nil)

		body := `{"legs":[{"direction":{"kind":"red"},"amount":400}],"funds":400}`
		rec := ts.do(t, "POST", "/v1/rooms/1/wagers", "alice", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp executeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "place_wager", resp.Action)
		assert.EqualValues(t, 800, resp.Attributes["reserve_floor"])
		require.Len(t, resp.Transfers, 1)
		assert.Equal(t, int64(400), resp.Transfers[0].Amount)
		ts.betting.AssertExpectations(t)
	})

	t.Run("missing caller header is a bad request", func(t *testing.T) {
		ts := newTestServer()
		rec := ts.do(t, "POST", "/v1/rooms/1/wagers", "", `{"legs":[],"funds":0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		ts.betting.AssertNotCalled(t, "PlaceWager",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("solvency rejection maps to 422", func(t *testing.T) {
		ts := newTestServer()
		ts.betting.On("PlaceWager", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &service.InsufficientPoolCoverageError{Held: 1000, Number: 7, WorstCase: 1440})

		body := `{"legs":[{"direction":{"kind":"single","id":7},"amount":40}],"funds":40}`
		rec := ts.do(t, "POST", "/v1/rooms/1/wagers", "alice", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("duplicate wager maps to 409", func(t *testing.T) {
		ts := newTestServer()
		ts.betting.On("PlaceWager", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &service.DuplicateWagerError{RoomID: 1, RoundID: 5, Player: "alice"})

		body := `{"legs":[{"direction":{"kind":"odd"},"amount":10}],"funds":10}`
		rec := ts.do(t, "POST", "/v1/rooms/1/wagers", "alice", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestCloseRoundEndpoint(t *testing.T) {
	t.Run("unauthorized caller maps to 403", func(t *testing.T) {
		ts := newTestServer()
		ts.rounds.On("CloseRound", mock.Anything, "mallory", mock.Anything, mock.Anything).
			Return(nil, &service.UnauthorizedError{Role: "distributor", Caller: "mallory"})

		rec := ts.do(t, "POST", "/v1/rounds/close", "mallory", `{"height":42}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("settlement result is returned", func(t *testing.T) {
		ts := newTestServer()
		ts.rounds.On("CloseRound", mock.Anything, "distributor", uint64(42), mock.Anything).
			Return(&models.CloseRoundResult{RoundID: 5, Winner: 17}, nil)

		rec := ts.do(t, "POST", "/v1/rounds/close", "distributor", `{"height":42}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp executeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "close_round", resp.Action)
		assert.EqualValues(t, 17, resp.Attributes["winner"])
	})

	t.Run("premature close maps to 409", func(t *testing.T) {
		ts := newTestServer()
		ts.rounds.On("CloseRound", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &service.RoundNotFinishedError{ElapsedSeconds: 10, RequiredSeconds: 120})

		rec := ts.do(t, "POST", "/v1/rounds/close", "distributor", `{"height":42}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestQueryEndpoints(t *testing.T) {
	t.Run("room detail 404s when missing", func(t *testing.T) {
		ts := newTestServer()
		ts.rooms.On("GetRoom", mock.Anything, int64(9)).Return(nil, nil)

		rec := ts.do(t, "GET", "/v1/rooms/9", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("round wagers pass pagination through", func(t *testing.T) {
		ts := newTestServer()
		ts.betting.On("ListRoomRoundWagers", mock.Anything, int64(1), int64(5), "bob", 20).
			Return([]*models.WagerRecord{}, nil)

		rec := ts.do(t, "GET", "/v1/rooms/1/rounds/5/wagers?start_after=bob&limit=20", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		ts.betting.AssertExpectations(t)
	})

	t.Run("round cursors default below round zero", func(t *testing.T) {
		ts := newTestServer()
		ts.betting.On("ListRoomPlayerWagers", mock.Anything, int64(1), "alice", int64(-1), 0).
			Return([]*models.WagerRecord{}, nil)
		ts.rounds.On("ListWinners", mock.Anything, int64(-1), 0).
			Return([]*models.Winner{{RoundID: 0, Number: 17}}, nil)

		rec := ts.do(t, "GET", "/v1/rooms/1/players/alice/wagers", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = ts.do(t, "GET", "/v1/winners", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		ts.betting.AssertExpectations(t)
		ts.rounds.AssertExpectations(t)
	})

	t.Run("withdrawable reports the available balance", func(t *testing.T) {
		ts := newTestServer()
		ts.pools.On("MaxWithdrawable", mock.Anything, int64(1)).Return(int64(800), nil)

		rec := ts.do(t, "GET", "/v1/rooms/1/withdrawable", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.EqualValues(t, 800, resp["max_withdrawable"])
	})

	t.Run("request id header is set", func(t *testing.T) {
		ts := newTestServer()
		rec := ts.do(t, "GET", "/health", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})
}
