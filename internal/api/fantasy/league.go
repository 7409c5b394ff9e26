package fantasy

import (
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/api/espn"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/models"
)

type API struct {
	espnAPI *espn.API
}

func NewAPI(espnAPI *espn.API) *API {
	return &API{espnAPI: espnAPI}
}

func (a *API) GetLeagueMetadata() (*models.LeagueMetadata, error) {
	return a.espnAPI.GetLeagueMetadata()
}

func (a *API) GetStandings() ([]models.TeamStanding, error) {
	return a.espnAPI.GetStandings()
}

func (a *API) GetTeams(scoringPeriod int) ([]models.FantasyTeam, error) {
	return a.espnAPI.GetTeams(scoringPeriod)
}

func (a *API) GetMatchupTotals(week int) ([]models.MatchupTotals, error) {
	return a.espnAPI.GetMatchupTotals(week)
}

func (a *API) WhoHas(playerName string, scoringPeriod int) (models.WhoHasResult, error) {
	return a.espnAPI.WhoHas(playerName, scoringPeriod)
}

func (a *API) GetPlayersToMonitor(scoringPeriod int) (models.PlayersToMonitorReport, error) {
	return a.espnAPI.GetPlayersToMonitor(scoringPeriod)
}
