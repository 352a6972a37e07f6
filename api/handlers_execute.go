package api

import (
	"fmt"
	"net/http"
	"time"

	"roulette/models"
	"roulette/service"
)

type placeWagerRequest struct {
	Legs  []models.BetLeg `json:"legs"`
	Funds int64           `json:"funds"`
}

func (s *Server) handlePlaceWager(w http.ResponseWriter, r *http.Request) {
	who := caller(r)
	if who == "" {
		badRequest(w, fmt.Errorf("%s header is required", callerHeader))
		return
	}
	roomID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	var req placeWagerRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	result, err := s.betting.PlaceWager(r.Context(), who, roomID, req.Legs, req.Funds, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, executeResponse{
		Action: "place_wager",
		Attributes: map[string]any{
			"room_id":       result.Wager.RoomID,
			"round_id":      result.Wager.RoundID,
			"player":        result.Wager.Player,
			"total_amount":  result.Wager.TotalAmount(),
			"reserve_floor": result.ReserveFloor,
		},
		Transfers: []*models.TransferInstruction{result.Transfer},
	})
}

type closeRoundRequest struct {
	Height    uint64    `json:"height"`
	BlockTime time.Time `json:"block_time"`
}

func (s *Server) handleCloseRound(w http.ResponseWriter, r *http.Request) {
	who := caller(r)
	if who == "" {
		badRequest(w, fmt.Errorf("%s header is required", callerHeader))
		return
	}

	var req closeRoundRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if req.BlockTime.IsZero() {
		req.BlockTime = time.Now()
	}

	result, err := s.rounds.CloseRound(r.Context(), who, req.Height, req.BlockTime)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, executeResponse{
		Action: "close_round",
		Attributes: map[string]any{
			"round_id": result.RoundID,
			"winner":   result.Winner,
			"rooms":    result.Rooms,
		},
		Transfers: result.Transfers,
	})
}

type addRoomRequest struct {
	Name             string       `json:"name"`
	Asset            models.Asset `json:"asset"`
	OwnershipTokenID string       `json:"ownership_token_id"`
	MinBet           int64        `json:"min_bet"`
	MaxBet           int64        `json:"max_bet"`
}

func (s *Server) handleAddRoom(w http.ResponseWriter, r *http.Request) {
	who := caller(r)
	if who == "" {
		badRequest(w, fmt.Errorf("%s header is required", callerHeader))
		return
	}

	var req addRoomRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	room, err := s.rooms.AddRoom(r.Context(), who, req.Name, req.Asset, req.OwnershipTokenID, req.MinBet, req.MaxBet)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, executeResponse{
		Action: "add_room",
		Attributes: map[string]any{
			"room_id": room.ID,
			"name":    room.Name,
			"asset":   room.Asset,
		},
	})
}

type roomConfigRequest struct {
	Name             string `json:"name"`
	OwnershipTokenID string `json:"ownership_token_id"`
}

func (s *Server) handleChangeRoomConfig(w http.ResponseWriter, r *http.Request) {
	who := caller(r)
	if who == "" {
		badRequest(w, fmt.Errorf("%s header is required", callerHeader))
		return
	}
	roomID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	var req roomConfigRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	if err := s.rooms.ChangeRoomConfig(r.Context(), who, roomID, req.Name, req.OwnershipTokenID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, executeResponse{
		Action:     "change_room_config",
		Attributes: map[string]any{"room_id": roomID},
	})
}

type betLimitsRequest struct {
	MinBet int64 `json:"min_bet"`
	MaxBet int64 `json:"max_bet"`
}

func (s *Server) handleUpdateBetLimits(w http.ResponseWriter, r *http.Request) {
	who := caller(r)
	if who == "" {
		badRequest(w, fmt.Errorf("%s header is required", callerHeader))
		return
	}
	roomID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	var req betLimitsRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	if err := s.rooms.UpdateBetLimits(r.Context(), who, roomID, req.MinBet, req.MaxBet); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, executeResponse{
		Action:     "update_bet_limits",
		Attributes: map[string]any{"room_id": roomID, "min_bet": req.MinBet, "max_bet": req.MaxBet},
	})
}

type poolMovementRequest struct {
	Amount int64 `json:"amount"`
	Funds  int64 `json:"funds"`
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	s.handlePoolMovement(w, r, "deposit")
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	s.handlePoolMovement(w, r, "withdraw")
}

func (s *Server) handlePoolMovement(w http.ResponseWriter, r *http.Request, action string) {
	who := caller(r)
	if who == "" {
		badRequest(w, fmt.Errorf("%s header is required", callerHeader))
		return
	}
	roomID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	var req poolMovementRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	var result *service.WithdrawResult
	if action == "deposit" {
		result, err = s.pools.Deposit(r.Context(), who, roomID, req.Amount, req.Funds)
	} else {
		result, err = s.pools.Withdraw(r.Context(), who, roomID, req.Amount)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, executeResponse{
		Action:     action,
		Attributes: map[string]any{"room_id": result.RoomID, "amount": req.Amount},
		Transfers:  []*models.TransferInstruction{result.Transfer},
	})
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	who := caller(r)
	if who == "" {
		badRequest(w, fmt.Errorf("%s header is required", callerHeader))
		return
	}

	var cfg models.PoolConfig
	if err := decodeBody(r, &cfg); err != nil {
		badRequest(w, err)
		return
	}

	if err := s.rooms.UpdateConfig(r.Context(), who, &cfg); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, executeResponse{Action: "update_config"})
}

type haltRequest struct {
	Halted bool `json:"halted"`
}

func (s *Server) handleSetHalted(w http.ResponseWriter, r *http.Request) {
	who := caller(r)
	if who == "" {
		badRequest(w, fmt.Errorf("%s header is required", callerHeader))
		return
	}

	var req haltRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	if err := s.rooms.SetHalted(r.Context(), who, req.Halted); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, executeResponse{
		Action:     "set_halted",
		Attributes: map[string]any{"halted": req.Halted},
	})
}

type ownershipRequest struct {
	TokenID string `json:"token_id"`
	Owner   string `json:"owner"`
}

func (s *Server) handleRegisterOwnership(w http.ResponseWriter, r *http.Request) {
	who := caller(r)
	if who == "" {
		badRequest(w, fmt.Errorf("%s header is required", callerHeader))
		return
	}

	var req ownershipRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	if err := s.rooms.RegisterOwnership(r.Context(), who, req.TokenID, req.Owner); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, executeResponse{
		Action:     "register_ownership",
		Attributes: map[string]any{"token_id": req.TokenID, "owner": req.Owner},
	})
}
