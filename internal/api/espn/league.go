package espn

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) leagueEndpoint() string {
	return fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, a.client.Config.LeagueID)
}

func (a *API) GetLeagueMetadata() (*models.LeagueMetadata, error) {
	var espnResponse models.LeagueResponse
	params := map[string]string{
		"view": "mSettings",
	}

	if err := a.client.Get(a.leagueEndpoint(), params, nil, &espnResponse); err != nil {
		return nil, fmt.Errorf("fetching league metadata: %w", err)
	}

	metadata := &models.LeagueMetadata{
		LeagueID:             espnResponse.ID,
		Name:                 espnResponse.Settings.Name,
		CurrentWeek:          espnResponse.Status.CurrentMatchupPeriod,
		CurrentScoringPeriod: espnResponse.ScoringPeriodID,
		SeasonID:             espnResponse.SeasonID,
		FirstWeek:            espnResponse.Status.FirstScoringPeriod,
		LastWeek:             espnResponse.Status.FinalScoringPeriod,
		IsActive:             espnResponse.Status.IsActive,
		LastUpdated:          time.Now(),
	}

	return metadata, nil
}

func (a *API) GetStandings() ([]models.TeamStanding, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mTeam",
	}

	if err := a.client.Get(a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching standings: %w", err)
	}

	standings := make([]models.TeamStanding, len(leagueResponse.Teams))
	for i, team := range leagueResponse.Teams {
		standings[i] = models.TeamStanding{
			TeamID:        team.ID,
			TeamName:      team.Name,
			Abbreviation:  team.Abbreviation,
			Wins:          team.Record.Overall.Wins,
			Losses:        team.Record.Overall.Losses,
			Ties:          team.Record.Overall.Ties,
			WinPercentage: team.Record.Overall.Percentage,
			PlayoffSeed:   team.PlayoffSeed,
		}
	}

	sort.Slice(standings, func(i, j int) bool {
		return standings[i].WinPercentage > standings[j].WinPercentage
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings, nil
}

// GetTeams returns every league team with its current roster, translated
// into domain records.
func (a *API) GetTeams(scoringPeriod int) ([]models.FantasyTeam, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view":            "mRoster",
		"scoringPeriodId": fmt.Sprintf("%d", scoringPeriod),
	}

	if err := a.client.Get(a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching league rosters: %w", err)
	}

	teams := make([]models.FantasyTeam, 0, len(leagueResponse.Teams))
	for _, team := range leagueResponse.Teams {
		ft := models.FantasyTeam{
			ID:           team.ID,
			Name:         team.Name,
			Abbreviation: team.Abbreviation,
		}
		for _, entry := range team.Roster.Entries {
			player := entry.PlayerPoolEntry.Player
			ft.Roster = append(ft.Roster, models.RosterPlayer{
				Name:         player.FullName,
				Position:     getPositionString(player.DefaultPositionID),
				ProTeam:      getProTeamString(player.ProTeamID),
				InjuryStatus: player.InjuryStatus,
			})
		}
		teams = append(teams, ft)
	}
	return teams, nil
}

// GetMatchupTotals returns both sides' season-to-date category totals for
// every matchup in the given week, keyed by category display name.
func (a *API) GetMatchupTotals(week int) ([]models.MatchupTotals, error) {
	var scoreboardResponse models.ScoreboardResponse
	params := map[string]string{
		"view": "mScoreboard",
	}

	filters := map[string]interface{}{
		"schedule": map[string]interface{}{
			"filterMatchupPeriodIds": map[string]interface{}{
				"value": []int{week},
			},
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	headers := map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}

	if err := a.client.Get(a.leagueEndpoint(), params, headers, &scoreboardResponse); err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}

	names, err := a.teamNames()
	if err != nil {
		return nil, err
	}

	var totals []models.MatchupTotals
	for _, match := range scoreboardResponse.Schedule {
		for _, side := range []models.TeamScore{match.Home, match.Away} {
			if side.TeamID == 0 {
				continue
			}
			totals = append(totals, models.MatchupTotals{
				TeamID:   side.TeamID,
				TeamName: names[side.TeamID],
				Totals:   translateScoreByStat(side.CumulativeScore.ScoreByStat),
			})
		}
	}
	return totals, nil
}

func (a *API) teamNames() (map[int]string, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mTeam",
	}
	if err := a.client.Get(a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching team names: %w", err)
	}

	names := make(map[int]string, len(leagueResponse.Teams))
	for _, team := range leagueResponse.Teams {
		names[team.ID] = team.Name
	}
	return names, nil
}

// statIDToCategory maps ESPN basketball stat IDs onto category names.
var statIDToCategory = map[string]string{
	"0":  "PTS",
	"1":  "BLK",
	"2":  "STL",
	"3":  "AST",
	"6":  "REB",
	"11": "TO",
	"13": "FGM",
	"14": "FGA",
	"15": "FTM",
	"16": "FTA",
	"17": "3PM",
	"19": "FG%",
	"20": "FT%",
}

func translateScoreByStat(scoreByStat map[string]models.StatByScoreID) map[string]float64 {
	totals := make(map[string]float64, len(scoreByStat))
	for id, stat := range scoreByStat {
		category, ok := statIDToCategory[id]
		if !ok {
			continue
		}
		totals[category] = stat.Score
	}
	return totals
}

func (a *API) WhoHas(playerName string, scoringPeriod int) (models.WhoHasResult, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view":            "mRoster",
		"scoringPeriodId": fmt.Sprintf("%d", scoringPeriod),
	}

	if err := a.client.Get(a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return models.WhoHasResult{}, fmt.Errorf("fetching league rosters: %w", err)
	}

	names, err := a.teamNames()
	if err != nil {
		return models.WhoHasResult{}, err
	}

	return searchPlayers(leagueResponse.Teams, names, playerName), nil
}

func searchPlayers(teams []models.Team, teamNames map[int]string, playerName string) models.WhoHasResult {
	var bestMatch *models.PlayerPoolEntry
	bestScore := -1.0
	threshold := 0.7

	for _, team := range teams {
		for i, entry := range team.Roster.Entries {
			fullName := strings.ToLower(entry.PlayerPoolEntry.Player.FullName)
			distance := fuzzy.LevenshteinDistance(strings.ToLower(playerName), fullName)
			maxLen := float64(max(len(playerName), len(fullName)))
			similarity := 1 - float64(distance)/maxLen

			if similarity > threshold && similarity > bestScore {
				bestScore = similarity
				bestMatch = &team.Roster.Entries[i].PlayerPoolEntry
			}
		}
	}

	if bestMatch == nil {
		return models.WhoHasResult{PlayerName: playerName, Found: false}
	}

	return models.WhoHasResult{
		PlayerName:   bestMatch.Player.FullName,
		TeamName:     teamNames[bestMatch.OnTeamID],
		TeamID:       bestMatch.OnTeamID,
		Found:        true,
		PercentOwned: bestMatch.Player.Ownership.PercentOwned,
		Position:     getPositionString(bestMatch.Player.DefaultPositionID),
		ProTeam:      getProTeamString(bestMatch.Player.ProTeamID),
		InjuryStatus: bestMatch.Player.InjuryStatus,
	}
}

func (a *API) GetPlayersToMonitor(scoringPeriod int) (models.PlayersToMonitorReport, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view":            "mRoster",
		"scoringPeriodId": fmt.Sprintf("%d", scoringPeriod),
	}

	if err := a.client.Get(a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return models.PlayersToMonitorReport{}, fmt.Errorf("fetching league rosters: %w", err)
	}

	names, err := a.teamNames()
	if err != nil {
		return models.PlayersToMonitorReport{}, err
	}

	report := models.PlayersToMonitorReport{}

	for _, team := range leagueResponse.Teams {
		teamReport := models.TeamMonitorReport{
			TeamName: names[team.ID],
		}

		for _, entry := range team.Roster.Entries {
			player := entry.PlayerPoolEntry.Player
			if isPlayerToMonitor(player.InjuryStatus) {
				teamReport.Players = append(teamReport.Players, models.PlayerToMonitor{
					Name:         player.FullName,
					Position:     getPositionString(player.DefaultPositionID),
					ProTeam:      getProTeamString(player.ProTeamID),
					InjuryStatus: player.InjuryStatus,
				})
			}
		}

		if len(teamReport.Players) > 0 {
			report.Teams = append(report.Teams, teamReport)
		}
	}

	return report, nil
}

func isPlayerToMonitor(status string) bool {
	switch status {
	case "OUT", "DAY_TO_DAY", "QUESTIONABLE", "DOUBTFUL":
		return true
	}
	return false
}

func getPositionString(positionID int) string {
	positions := map[int]string{
		1: "PG", 2: "SG", 3: "SF", 4: "PF", 5: "C",
	}
	if pos, ok := positions[positionID]; ok {
		return pos
	}
	return "Unknown"
}

// getProTeamString maps ESPN pro-team IDs to ESPN abbreviations. A few of
// these differ from the schedule source's abbreviations; the projection
// package's alias table reconciles them.
func getProTeamString(proTeamID int) string {
	teams := map[int]string{
		1: "ATL", 2: "BOS", 3: "NOP", 4: "CHI", 5: "CLE", 6: "DAL", 7: "DEN",
		8: "DET", 9: "GSW", 10: "HOU", 11: "IND", 12: "LAC", 13: "LAL",
		14: "MIA", 15: "MIL", 16: "MIN", 17: "BKN", 18: "NYK", 19: "ORL",
		20: "PHL", 21: "PHO", 22: "POR", 23: "SAC", 24: "SAS", 25: "OKC",
		26: "UTA", 27: "WSH", 28: "TOR", 29: "MEM", 30: "CHA",
	}

	if team, ok := teams[proTeamID]; ok {
		return team
	}

	return "FA"
}
