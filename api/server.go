package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/freecell/game/service"
	"github.com/wricardo/freecell/game/session"
	"github.com/wricardo/freecell/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. When hub is not nil, state changes
// are broadcast to its clients and client input is routed to the service;
// call NewServer before starting the hub.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	if hub != nil {
		hub.OnInput(s.handleSocketInput)
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Game operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/sessions/{id}/input", s.handleInput).Methods("POST")
	api.HandleFunc("/sessions/{id}/undo", s.handleUndo).Methods("POST")
	api.HandleFunc("/sessions/{id}/redo", s.handleRedo).Methods("POST")
	api.HandleFunc("/sessions/{id}/sweep", s.handleSweep).Methods("POST")

	// Stats
	api.HandleFunc("/stats", s.handleGetStats).Methods("GET")
	api.HandleFunc("/stats", s.handleClearStats).Methods("DELETE")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	if s.hub != nil {
		s.router.HandleFunc("/ws", s.handleWebSocket)
	}
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

// respondServiceError maps service and session errors to a status code
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrInvalidSessionID),
		errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrSessionAlreadyExists):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrStatsDisabled):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed *uint64 `json:"seed,omitempty"`
	}

	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	info, err := s.service.CreateSession(r.Context(), req.Seed)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[SESSION] created session=%s seed=%d", info.ID, info.Seed)
	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	total := len(sessions)

	// Parse query parameters
	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	// Set defaults
	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else { // "accessed"
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	// Apply limit if specified
	limit := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(sessionID, "session_deleted", nil)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.GetGameState(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req service.InputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Input(r.Context(), sessionID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, result.GameState)

	// Compact server log for observability
	status := "OK"
	if !result.Success {
		status = "REJECTED"
	}
	log.Printf("[INPUT] session=%s steps=%d moved=%d swept=%d won=%v status=%s",
		sessionID, len(result.Steps), result.Moved, result.Swept, result.GameState.Won, status)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Undo(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if result.Changed {
		s.broadcast(sessionID, result.GameState)
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Redo(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if result.Changed {
		s.broadcast(sessionID, result.GameState)
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Sweep(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if result.Swept > 0 {
		s.broadcast(sessionID, result.GameState)
	}
	respondJSON(w, http.StatusOK, result)
}

// Stats Handlers

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetStats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleClearStats(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ClearStats(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Stats cleared",
	})
}

// WebSocket Handlers

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	// Verify session exists
	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// handleSocketInput runs a client message against the service and
// broadcasts the resulting state
func (s *Server) handleSocketInput(sessionID string, msg websocket.ClientMessage) {
	ctx := context.Background()

	var (
		state *service.GameState
		err   error
	)
	switch msg.Action {
	case "undo":
		var result *service.HistoryResult
		if result, err = s.service.Undo(ctx, sessionID); err == nil {
			state = result.GameState
		}
	case "redo":
		var result *service.HistoryResult
		if result, err = s.service.Redo(ctx, sessionID); err == nil {
			state = result.GameState
		}
	case "sweep":
		var result *service.SweepResult
		if result, err = s.service.Sweep(ctx, sessionID); err == nil {
			state = result.GameState
		}
	case "", "input":
		var result *service.InputResult
		req := service.InputRequest{Keys: msg.Keys, Tokens: msg.Tokens}
		if result, err = s.service.Input(ctx, sessionID, req); err == nil {
			state = result.GameState
		}
	case "state":
		state, err = s.service.GetGameState(ctx, sessionID)
	default:
		err = fmt.Errorf("%w: unknown action %q", service.ErrInvalidInput, msg.Action)
	}

	if err != nil {
		s.hub.BroadcastEvent(sessionID, websocket.EventError, err.Error())
		return
	}
	s.hub.BroadcastToSession(sessionID, state)
}

func (s *Server) broadcast(sessionID string, state *service.GameState) {
	if s.hub != nil {
		s.hub.BroadcastToSession(sessionID, state)
	}
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
