package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"roulette/service"
)

// Server is the HTTP front of the wagering engine.
type Server struct {
	betting service.BettingService
	rounds  service.RoundService
	pools   service.PoolService
	rooms   service.RoomService

	srv *http.Server
}

// NewServer creates a new API server
func NewServer(addr string, betting service.BettingService, rounds service.RoundService, pools service.PoolService, rooms service.RoomService) *Server {
	s := &Server{
		betting: betting,
		rounds:  rounds,
		pools:   pools,
		rooms:   rooms,
	}
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Router builds the route table. Exposed separately so tests can drive the
// handlers through httptest without binding a port.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	// Execute surface.
	r.HandleFunc("/v1/rooms", s.handleAddRoom).Methods("POST")
	r.HandleFunc("/v1/rooms/{id}/config", s.handleChangeRoomConfig).Methods("POST")
	r.HandleFunc("/v1/rooms/{id}/limits", s.handleUpdateBetLimits).Methods("POST")
	r.HandleFunc("/v1/rooms/{id}/wagers", s.handlePlaceWager).Methods("POST")
	r.HandleFunc("/v1/rooms/{id}/deposit", s.handleDeposit).Methods("POST")
	r.HandleFunc("/v1/rooms/{id}/withdraw", s.handleWithdraw).Methods("POST")
	r.HandleFunc("/v1/rounds/close", s.handleCloseRound).Methods("POST")
	r.HandleFunc("/v1/config", s.handleUpdateConfig).Methods("POST")
	r.HandleFunc("/v1/halt", s.handleSetHalted).Methods("POST")
	r.HandleFunc("/v1/ownership", s.handleRegisterOwnership).Methods("POST")

	// Query surface.
	r.HandleFunc("/v1/rooms", s.handleListRooms).Methods("GET")
	r.HandleFunc("/v1/rooms/{id}", s.handleGetRoom).Methods("GET")
	r.HandleFunc("/v1/rooms/{id}/rounds/{round}/wagers", s.handleListRoundWagers).Methods("GET")
	r.HandleFunc("/v1/rooms/{id}/players/{player}/wagers", s.handleListPlayerWagers).Methods("GET")
	r.HandleFunc("/v1/rooms/{id}/withdrawable", s.handleMaxWithdrawable).Methods("GET")
	r.HandleFunc("/v1/rounds/{round}/winner", s.handleGetWinner).Methods("GET")
	r.HandleFunc("/v1/winners", s.handleListWinners).Methods("GET")
	r.HandleFunc("/v1/state", s.handleGetState).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	corsHandler := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", callerHeader},
	})

	return withRequestID(withLogging(corsHandler.Handler(r)))
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	log.WithField("addr", s.srv.Addr).Info("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
