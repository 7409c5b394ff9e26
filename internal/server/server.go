// Package server exposes the prediction workflow over HTTP for the
// dashboard front-end: seed a grid, toggle and edit cells, read the
// projection. The server holds no state beyond the session repository;
// every response carries the full grid so the front-end just re-renders.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/service"
)

type Server struct {
	fantasyService *service.FantasyService
	router         chi.Router
}

func New(fantasyService *service.FantasyService) *Server {
	s := &Server{fantasyService: fantasyService}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handleStartSession)
		r.Patch("/sessions/{id}/toggle", s.handleToggleDay)
		r.Patch("/sessions/{id}/cells", s.handleEditCell)
		r.Post("/sessions/{id}/players", s.handleAddPlayer)
		r.Get("/sessions/{id}/projection", s.handleProjection)
		r.Get("/players", s.handlePlayerNames)
		r.Get("/matchup", s.handleMatchupComparison)
		r.Get("/strength", s.handleStrength)
	})
	s.router = r

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
