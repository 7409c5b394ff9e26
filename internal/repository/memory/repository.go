package memory

import (
	"sync"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/models"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/projection"
)

// GridSession is one interactive prediction session: the grid the user is
// editing for a (team, week) pair plus the inputs the projection needs
// again on every request.
type GridSession struct {
	ID            string
	TeamID        int
	TeamName      string
	Week          int
	StatsWindow   int
	Grid          projection.AvailabilityGrid
	CurrentTotals map[string]float64
}

// Repository holds session state between interactions: the cached league
// metadata and the live grid sessions. The dashboard front-end holds no
// state of its own; every edit round-trips through here.
type Repository struct {
	metadata *models.LeagueMetadata
	sessions map[string]GridSession
	mu       sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{sessions: make(map[string]GridSession)}
}

func (r *Repository) SaveMetadata(metadata *models.LeagueMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metadata = metadata
}

func (r *Repository) GetMetadata() *models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metadata
}

func (r *Repository) SaveSession(s GridSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

func (r *Repository) GetSession(id string) (GridSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// DeleteSessions drops every session for a (team, week) pair; the grid is
// discarded when the selection changes.
func (r *Repository) DeleteSessions(teamID, weekNum int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.TeamID == teamID && s.Week == weekNum {
			delete(r.sessions, id)
		}
	}
}
