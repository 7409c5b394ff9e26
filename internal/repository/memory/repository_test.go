package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/projection"
)

func TestSessionRoundTrip(t *testing.T) {
	repo := NewRepository()

	session := GridSession{
		ID:       "abc",
		TeamID:   4,
		TeamName: "Team Four",
		Week:     7,
		Grid:     projection.AvailabilityGrid{Dates: []string{"Oct 21"}},
	}
	repo.SaveSession(session)

	got, ok := repo.GetSession("abc")
	require.True(t, ok)
	assert.Equal(t, session, got)

	_, ok = repo.GetSession("missing")
	assert.False(t, ok)
}

func TestDeleteSessionsByTeamAndWeek(t *testing.T) {
	repo := NewRepository()
	repo.SaveSession(GridSession{ID: "a", TeamID: 1, Week: 3})
	repo.SaveSession(GridSession{ID: "b", TeamID: 1, Week: 4})
	repo.SaveSession(GridSession{ID: "c", TeamID: 2, Week: 3})

	repo.DeleteSessions(1, 3)

	_, ok := repo.GetSession("a")
	assert.False(t, ok)
	_, ok = repo.GetSession("b")
	assert.True(t, ok)
	_, ok = repo.GetSession("c")
	assert.True(t, ok)
}
