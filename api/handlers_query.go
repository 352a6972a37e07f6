package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	startAfter, limit, err := paginationInt64(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	rooms, err := s.rooms.ListRooms(r.Context(), startAfter, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	room, err := s.rooms.GetRoom(r.Context(), roomID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if room == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "room not found"})
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *Server) handleListRoundWagers(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	roundID, err := pathID(r, "round")
	if err != nil {
		badRequest(w, err)
		return
	}
	startAfter, limit, err := pagination(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	wagers, err := s.betting.ListRoomRoundWagers(r.Context(), roomID, roundID, startAfter, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wagers": wagers})
}

func (s *Server) handleListPlayerWagers(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	player := mux.Vars(r)["player"]
	startAfter, limit, err := paginationInt64(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	wagers, err := s.betting.ListRoomPlayerWagers(r.Context(), roomID, player, startAfter, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wagers": wagers})
}

func (s *Server) handleGetWinner(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "round")
	if err != nil {
		badRequest(w, err)
		return
	}

	winner, err := s.rounds.GetWinner(r.Context(), roundID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if winner == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "round not settled"})
		return
	}
	writeJSON(w, http.StatusOK, winner)
}

func (s *Server) handleListWinners(w http.ResponseWriter, r *http.Request) {
	startAfter, limit, err := paginationInt64(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	winners, err := s.rounds.ListWinners(r.Context(), startAfter, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"winners": winners})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	view, err := s.rounds.GetState(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleMaxWithdrawable(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	available, err := s.pools.MaxWithdrawable(r.Context(), roomID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"room_id": roomID, "max_withdrawable": available})
}
