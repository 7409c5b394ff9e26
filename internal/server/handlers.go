package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/projection"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/repository/memory"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/service"
)

type sessionResponse struct {
	ID       string                      `json:"id"`
	TeamName string                      `json:"teamName"`
	Week     int                         `json:"week"`
	Window   int                         `json:"window"`
	Grid     projection.AvailabilityGrid `json:"grid"`
	Reverted bool                        `json:"reverted"`
}

func toSessionResponse(s memory.GridSession, reverted bool) sessionResponse {
	return sessionResponse{
		ID:       s.ID,
		TeamName: s.TeamName,
		Week:     s.Week,
		Window:   s.StatsWindow,
		Grid:     s.Grid,
		Reverted: reverted,
	}
}

type startSessionRequest struct {
	Team   string `json:"team"`
	Week   int    `json:"week"`
	Window int    `json:"window"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Team == "" {
		respondError(w, http.StatusBadRequest, errors.New("team is required"))
		return
	}

	session, err := s.fantasyService.StartPrediction(req.Team, req.Week, req.Window)
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	respondJSON(w, http.StatusCreated, toSessionResponse(session, false))
}

type toggleRequest struct {
	Date    string `json:"date"`
	Playing bool   `json:"playing"`
}

func (s *Server) handleToggleDay(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	session, reverted, err := s.fantasyService.ToggleDay(chi.URLParam(r, "id"), req.Date, req.Playing)
	if err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(session, reverted))
}

type editCellRequest struct {
	Player string                  `json:"player"`
	Date   string                  `json:"date"`
	Value  projection.Availability `json:"value"`
}

func (s *Server) handleEditCell(w http.ResponseWriter, r *http.Request) {
	var req editCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	session, reverted, err := s.fantasyService.EditCell(chi.URLParam(r, "id"), req.Player, req.Date, req.Value)
	if err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(session, reverted))
}

type addPlayerRequest struct {
	Player string `json:"player"`
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var req addPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Player == "" {
		respondError(w, http.StatusBadRequest, errors.New("player is required"))
		return
	}

	session, err := s.fantasyService.AddPlayer(chi.URLParam(r, "id"), req.Player)
	if err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(session, false))
}

type projectionResponse struct {
	Categories []string           `json:"categories"`
	Totals     map[string]float64 `json:"totals"`
	Display    map[string]string  `json:"display"`
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	totals, display, categories, err := s.fantasyService.ProjectionDisplay(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, projectionResponse{
		Categories: categories,
		Totals:     totals,
		Display:    display,
	})
}

func (s *Server) handlePlayerNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.fantasyService.PlayerNames(service.DefaultStatsWindow)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"players": names})
}

type matchupSide struct {
	TeamName string             `json:"teamName"`
	Totals   map[string]float64 `json:"totals"`
	Display  map[string]string  `json:"display"`
}

type matchupResponse struct {
	Week       int          `json:"week"`
	Categories []string     `json:"categories"`
	Sides      [2]matchupSide `json:"sides"`
}

func (s *Server) handleMatchupComparison(w http.ResponseWriter, r *http.Request) {
	team1 := r.URL.Query().Get("team1")
	team2 := r.URL.Query().Get("team2")
	if team1 == "" || team2 == "" {
		respondError(w, http.StatusBadRequest, errors.New("team1 and team2 query parameters are required"))
		return
	}

	var resp matchupResponse
	for i, team := range []string{team1, team2} {
		session, err := s.fantasyService.StartPrediction(team, 0, 0)
		if err != nil {
			respondError(w, http.StatusBadGateway, err)
			return
		}
		totals, display, categories, err := s.fantasyService.ProjectionDisplay(session.ID)
		if err != nil {
			respondError(w, http.StatusBadGateway, err)
			return
		}
		resp.Week = session.Week
		resp.Categories = categories
		resp.Sides[i] = matchupSide{TeamName: session.TeamName, Totals: totals, Display: display}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStrength(w http.ResponseWriter, r *http.Request) {
	team := r.URL.Query().Get("team")
	if team == "" {
		respondError(w, http.StatusBadRequest, errors.New("team query parameter is required"))
		return
	}

	report, err := s.fantasyService.GetTeamStrength(team)
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"weeks": report})
}
