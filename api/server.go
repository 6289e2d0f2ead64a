package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pengstrike/gameserver/game/service"
)

// Server represents the REST API server
type Server struct {
	service service.RelayService
	router  *mux.Router
}

// NewServer creates a new API server. ws handles the /ws endpoint; static,
// when non-nil, serves everything outside /api and /ws.
func NewServer(relayService service.RelayService, ws http.Handler, static *StaticHandler) *Server {
	s := &Server{
		service: relayService,
		router:  mux.NewRouter(),
	}

	s.setupRoutes(ws, static)
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes(ws http.Handler, static *StaticHandler) {
	api := s.router.PathPrefix("/api").Subrouter()

	s.get(api, "/games", s.handleListGames)
	s.get(api, "/games/{game}/players", s.handleListPlayers)
	s.get(api, "/games/{game}/balls", s.handleListBalls)
	s.get(api, "/stats", s.handleStats)
	s.get(api, "/health", s.handleHealth)

	// WebSocket
	if ws != nil {
		s.router.Handle("/ws", ws)
	}

	// Static files
	if static != nil {
		s.router.PathPrefix("/").Handler(static)
	}
}

// get registers a GET route plus a same-path fallback answering every other
// method with 405. mux discards its method-mismatch error once any later
// route fails to match on path, so with several GET routes in one subrouter
// a wrong-method request would otherwise fall through to a 404.
func (s *Server) get(r *mux.Router, path string, h http.HandlerFunc) {
	r.HandleFunc(path, h).Methods("GET")
	r.HandleFunc(path, s.handleMethodNotAllowed)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": s.service.Games(r.Context()),
	})
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	game := mux.Vars(r)["game"]

	players, err := s.service.Players(r.Context(), game)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game":    game,
		"players": players,
	})
}

func (s *Server) handleListBalls(w http.ResponseWriter, r *http.Request) {
	game := mux.Vars(r)["game"]

	balls, err := s.service.Balls(r.Context(), game)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, service.ErrBallsNotSupported) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game":  game,
		"balls": balls,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.Stats(r.Context()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
