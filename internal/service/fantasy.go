package service

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/api/fantasy"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/models"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/projection"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/repository/memory"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/stats"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/week"
)

// DefaultStatsWindow is the averages lookback used when a caller does not
// pick one.
const DefaultStatsWindow = 1

type FantasyService struct {
	api      *fantasy.API
	repo     *memory.Repository
	store    *stats.Store
	engine   *projection.Engine
	location *time.Location
}

func NewFantasyService(api *fantasy.API, repo *memory.Repository, store *stats.Store, engine *projection.Engine) *FantasyService {
	// Stat tables refresh on US/Pacific midnights; "today" follows that
	// clock.
	location, err := time.LoadLocation("US/Pacific")
	if err != nil {
		slog.Error("Failed to load location", "error", err)
		location = time.UTC
	}

	return &FantasyService{api: api, repo: repo, store: store, engine: engine, location: location}
}

func (s *FantasyService) GetCurrentWeek() (int, error) {
	metadata, err := s.getLeagueMetadata()
	if err != nil {
		return 0, err
	}

	slog.Info("Current week", "week", metadata.CurrentWeek)
	return metadata.CurrentWeek, nil
}

func (s *FantasyService) getLeagueMetadata() (*models.LeagueMetadata, error) {
	metadata := s.repo.GetMetadata()
	if metadata == nil || time.Since(metadata.LastUpdated) > 24*time.Hour {
		newMetadata, err := s.api.GetLeagueMetadata()
		if err != nil {
			return nil, err
		}
		s.repo.SaveMetadata(newMetadata)
		s.checkCalendars(newMetadata)
		return newMetadata, nil
	}
	return metadata, nil
}

// checkCalendars compares the day-count scoring period against what ESPN
// reports, and the local week calendar against ESPN's matchup period. The
// two calendars are maintained independently; a mismatch is logged, never
// silently resolved.
func (s *FantasyService) checkCalendars(metadata *models.LeagueMetadata) {
	now := time.Now().In(s.location)
	computed := week.ScoringPeriod(now)
	if metadata.CurrentScoringPeriod != 0 && computed != metadata.CurrentScoringPeriod {
		slog.Warn("Scoring period divergence",
			"computed", computed,
			"espn", metadata.CurrentScoringPeriod)
	}
	if w, ok := week.Find(now); ok && metadata.CurrentWeek != 0 && w != metadata.CurrentWeek {
		slog.Warn("Week calendar divergence",
			"computed", w,
			"espn", metadata.CurrentWeek)
	}
}

// scoringPeriod is the day count since the season start, in the stats
// source's timezone.
func (s *FantasyService) scoringPeriod() int {
	return week.ScoringPeriod(time.Now().In(s.location))
}

func (s *FantasyService) findTeam(teams []models.FantasyTeam, name string) (models.FantasyTeam, error) {
	var best models.FantasyTeam
	bestScore := -1.0
	threshold := 0.6

	for _, team := range teams {
		distance := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(team.Name))
		maxLen := float64(max(len(name), len(team.Name)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > threshold && similarity > bestScore {
			bestScore = similarity
			best = team
		}
	}

	if bestScore < 0 {
		return models.FantasyTeam{}, fmt.Errorf("team not found: %s", name)
	}
	return best, nil
}

func (s *FantasyService) currentTotalsFor(teamID, weekNum int) map[string]float64 {
	matchupTotals, err := s.api.GetMatchupTotals(weekNum)
	if err != nil {
		// Degrades to a projection from zero, matching a week with no
		// recorded totals yet.
		slog.Error("Failed to fetch matchup totals", "error", err, "week", weekNum)
		return nil
	}
	for _, mt := range matchupTotals {
		if mt.TeamID == teamID {
			return mt.Totals
		}
	}
	return nil
}

// StartPrediction opens an interactive prediction session for a team and
// scoring week: it seeds the availability grid from the roster and the
// week's schedule, runs the constraint pass, and stores the session for
// subsequent edits. Any previous session for the same (team, week) pair is
// discarded.
func (s *FantasyService) StartPrediction(teamName string, weekNum, window int) (memory.GridSession, error) {
	if weekNum == 0 {
		current, err := s.GetCurrentWeek()
		if err != nil {
			return memory.GridSession{}, err
		}
		weekNum = current
	}
	if window == 0 {
		window = DefaultStatsWindow
	}

	teams, err := s.api.GetTeams(s.scoringPeriod())
	if err != nil {
		return memory.GridSession{}, fmt.Errorf("fetching teams: %w", err)
	}
	team, err := s.findTeam(teams, teamName)
	if err != nil {
		return memory.GridSession{}, err
	}

	schedule, err := s.store.Schedule(weekNum)
	if err != nil {
		return memory.GridSession{}, fmt.Errorf("loading week %d schedule: %w", weekNum, err)
	}

	grid := projection.SeedGrid(team.Roster, schedule)
	grid, _ = projection.EnforceConstraints(grid, schedule)

	s.repo.DeleteSessions(team.ID, weekNum)

	session := memory.GridSession{
		ID:            uuid.NewString(),
		TeamID:        team.ID,
		TeamName:      team.Name,
		Week:          weekNum,
		StatsWindow:   window,
		Grid:          grid,
		CurrentTotals: s.currentTotalsFor(team.ID, weekNum),
	}
	s.repo.SaveSession(session)
	return session, nil
}

func (s *FantasyService) session(id string) (memory.GridSession, error) {
	session, ok := s.repo.GetSession(id)
	if !ok {
		return memory.GridSession{}, fmt.Errorf("unknown session: %s", id)
	}
	return session, nil
}

// ToggleDay applies the status row's batch toggle for one date column,
// followed by the constraint pass. The returned flag reports whether any
// cell was reverted.
func (s *FantasyService) ToggleDay(sessionID, date string, playing bool) (memory.GridSession, bool, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return memory.GridSession{}, false, err
	}
	schedule, err := s.store.Schedule(session.Week)
	if err != nil {
		return memory.GridSession{}, false, fmt.Errorf("loading week %d schedule: %w", session.Week, err)
	}

	grid := projection.ApplyBatchToggle(session.Grid, date, playing)
	grid, reverted := projection.EnforceConstraints(grid, schedule)

	session.Grid = grid
	s.repo.SaveSession(session)
	return session, reverted, nil
}

// EditCell applies a manual single-cell edit, then the constraint pass.
func (s *FantasyService) EditCell(sessionID, playerName, date string, value projection.Availability) (memory.GridSession, bool, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return memory.GridSession{}, false, err
	}
	schedule, err := s.store.Schedule(session.Week)
	if err != nil {
		return memory.GridSession{}, false, fmt.Errorf("loading week %d schedule: %w", session.Week, err)
	}

	grid := projection.SetCell(session.Grid, playerName, date, value)
	grid, reverted := projection.EnforceConstraints(grid, schedule)

	session.Grid = grid
	s.repo.SaveSession(session)
	return session, reverted, nil
}

// AddPlayer grafts a free agent from the averages table onto the session's
// grid, the way the dashboard's picker adds comparison players.
func (s *FantasyService) AddPlayer(sessionID, playerName string) (memory.GridSession, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return memory.GridSession{}, err
	}
	schedule, err := s.store.Schedule(session.Week)
	if err != nil {
		return memory.GridSession{}, fmt.Errorf("loading week %d schedule: %w", session.Week, err)
	}
	teams, err := s.store.PlayerTeams(session.StatsWindow)
	if err != nil {
		return memory.GridSession{}, fmt.Errorf("loading player teams: %w", err)
	}

	player := models.RosterPlayer{
		Name:     playerName,
		Position: "ADD",
		ProTeam:  teams[s.engine.Resolver().Resolve(playerName)],
	}

	grid := projection.AppendPlayer(session.Grid, player, schedule)
	grid, _ = projection.EnforceConstraints(grid, schedule)

	session.Grid = grid
	s.repo.SaveSession(session)
	return session, nil
}

// Projection computes the session's projected end-of-week totals.
func (s *FantasyService) Projection(sessionID string) (projection.ProjectedTotals, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	schedule, err := s.store.Schedule(session.Week)
	if err != nil {
		return nil, fmt.Errorf("loading week %d schedule: %w", session.Week, err)
	}
	averages, err := s.store.Averages(session.StatsWindow)
	if err != nil {
		return nil, fmt.Errorf("loading averages: %w", err)
	}

	return s.engine.Project(session.Grid, session.CurrentTotals, averages, schedule), nil
}

// ProjectionDisplay returns the session projection alongside its formatted
// rendering and the category order used for presentation.
func (s *FantasyService) ProjectionDisplay(sessionID string) (projection.ProjectedTotals, map[string]string, []string, error) {
	totals, err := s.Projection(sessionID)
	if err != nil {
		return nil, nil, nil, err
	}
	return totals, s.engine.FormatTotals(totals), s.engine.Categories(), nil
}

// GetMatchupProjection renders a two-team prediction for the current week:
// both sides seeded fresh and projected with no manual edits applied.
func (s *FantasyService) GetMatchupProjection(team1, team2 string) (string, error) {
	weekNum, err := s.GetCurrentWeek()
	if err != nil {
		return "", fmt.Errorf("error fetching current week: %w", err)
	}

	s1, err := s.StartPrediction(team1, weekNum, DefaultStatsWindow)
	if err != nil {
		return "", err
	}
	s2, err := s.StartPrediction(team2, weekNum, DefaultStatsWindow)
	if err != nil {
		return "", err
	}

	p1, err := s.Projection(s1.ID)
	if err != nil {
		return "", err
	}
	p2, err := s.Projection(s2.ID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏀 *Week %d Projection*\n\n", weekNum))
	sb.WriteString(fmt.Sprintf("*%s* vs *%s*\n", s1.TeamName, s2.TeamName))

	f1 := s.engine.FormatTotals(p1)
	f2 := s.engine.FormatTotals(p2)
	for _, k := range s.engine.Categories() {
		sb.WriteString(fmt.Sprintf("%s: %s - %s\n", k, f1[k], f2[k]))
	}
	return sb.String(), nil
}

// GetWeekMatchupsReport projects every scheduled matchup for the current
// week and renders the projected category score for each pairing. Matchup
// totals arrive home-then-away per game, so consecutive entries pair up.
func (s *FantasyService) GetWeekMatchupsReport() (string, error) {
	weekNum, err := s.GetCurrentWeek()
	if err != nil {
		return "", fmt.Errorf("error fetching current week: %w", err)
	}
	schedule, err := s.store.Schedule(weekNum)
	if err != nil {
		return "", fmt.Errorf("loading week %d schedule: %w", weekNum, err)
	}
	averages, err := s.store.Averages(DefaultStatsWindow)
	if err != nil {
		return "", fmt.Errorf("loading averages: %w", err)
	}
	teams, err := s.api.GetTeams(s.scoringPeriod())
	if err != nil {
		return "", fmt.Errorf("fetching teams: %w", err)
	}
	rosters := make(map[int]models.FantasyTeam, len(teams))
	for _, team := range teams {
		rosters[team.ID] = team
	}

	matchups, err := s.api.GetMatchupTotals(weekNum)
	if err != nil {
		return "", fmt.Errorf("error fetching matchup totals: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏀 *Week %d Matchup Projections*\n\n", weekNum))
	for i := 0; i+1 < len(matchups); i += 2 {
		home, away := matchups[i], matchups[i+1]
		homeTotals := s.engine.ProjectSimple(rosters[home.TeamID].Roster, schedule, averages)
		awayTotals := s.engine.ProjectSimple(rosters[away.TeamID].Roster, schedule, averages)
		homeWins := countCategoryWins(homeTotals, awayTotals, s.engine.Categories())
		awayWins := countCategoryWins(awayTotals, homeTotals, s.engine.Categories())
		sb.WriteString(fmt.Sprintf("*%s* %d - %d *%s*\n", home.TeamName, homeWins, awayWins, away.TeamName))
	}
	return sb.String(), nil
}

// GetTeamStrength projects a team against every opponent for each future
// scoring week with a schedule on disk, counting projected category wins.
func (s *FantasyService) GetTeamStrength(teamName string) ([]models.WeekStrength, error) {
	teams, err := s.api.GetTeams(s.scoringPeriod())
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}
	target, err := s.findTeam(teams, teamName)
	if err != nil {
		return nil, err
	}

	currentWeek, err := s.GetCurrentWeek()
	if err != nil {
		return nil, fmt.Errorf("error fetching current week: %w", err)
	}

	weeks, err := s.store.Weeks()
	if err != nil {
		return nil, err
	}
	averages, err := s.store.Averages(DefaultStatsWindow)
	if err != nil {
		return nil, fmt.Errorf("loading averages: %w", err)
	}

	var report []models.WeekStrength
	for _, w := range weeks {
		if w < currentWeek {
			continue
		}
		schedule, err := s.store.Schedule(w)
		if err != nil {
			slog.Error("Skipping week with unreadable schedule", "week", w, "error", err)
			continue
		}

		targetTotals := s.engine.ProjectSimple(target.Roster, schedule, averages)
		ws := models.WeekStrength{
			Week:   w,
			Target: models.StrengthRow{TeamName: target.Name, Totals: targetTotals},
		}

		for _, opp := range teams {
			if opp.ID == target.ID {
				continue
			}
			oppTotals := s.engine.ProjectSimple(opp.Roster, schedule, averages)
			ws.Rows = append(ws.Rows, models.StrengthRow{
				TeamName: opp.Name,
				Totals:   oppTotals,
				Wins:     countCategoryWins(targetTotals, oppTotals, s.engine.Categories()),
			})
		}
		sort.Slice(ws.Rows, func(i, j int) bool { return ws.Rows[i].Wins > ws.Rows[j].Wins })
		report = append(report, ws)
	}
	return report, nil
}

// countCategoryWins counts how many categories the target side would take
// from the opponent. The raw shooting counters feed the percentages and are
// skipped; turnovers win low.
func countCategoryWins(target, opp projection.ProjectedTotals, categories []string) int {
	wins := 0
	for _, k := range categories {
		if projection.HiddenFromWins[k] {
			continue
		}
		t, o := target[k], opp[k]
		if projection.LowerIsBetter[k] {
			if t < o {
				wins++
			}
			continue
		}
		if t > o {
			wins++
		}
	}
	return wins
}

// GetTeamStrengthReport renders the strength table for the bot.
func (s *FantasyService) GetTeamStrengthReport(teamName string) (string, error) {
	report, err := s.GetTeamStrength(teamName)
	if err != nil {
		return "", err
	}
	if len(report) == 0 {
		return "No future week schedules available.", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("💪 *Team Strength: %s*\n", report[0].Target.TeamName))
	for _, ws := range report {
		sb.WriteString(fmt.Sprintf("\n*Week %d*\n", ws.Week))
		contested := 0
		for _, k := range s.engine.Categories() {
			if !projection.HiddenFromWins[k] {
				contested++
			}
		}
		for _, row := range ws.Rows {
			sb.WriteString(fmt.Sprintf("  vs %s: %d/%d categories\n", row.TeamName, row.Wins, contested))
		}
	}
	return sb.String(), nil
}

func (s *FantasyService) GetStandings() (string, error) {
	standings, err := s.api.GetStandings()
	if err != nil {
		return "", fmt.Errorf("error fetching standings: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("🏆 *Current Standings*\n\n")
	for _, team := range standings {
		sb.WriteString(fmt.Sprintf("%d. *%s*\n", team.Rank, team.TeamName))
		sb.WriteString(fmt.Sprintf("   Record: %d-%d-%d\n\n", team.Wins, team.Losses, team.Ties))
	}

	return sb.String(), nil
}

func (s *FantasyService) WhoHas(playerName string) (string, error) {
	result, err := s.api.WhoHas(playerName, s.scoringPeriod())
	if err != nil {
		return "", fmt.Errorf("error checking who has player: %w", err)
	}

	if !result.Found {
		return fmt.Sprintf("🔍 No player found matching '%s'.", playerName), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s - %s)\n", result.PlayerName, result.Position, result.ProTeam))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")

	if result.TeamID != 0 {
		sb.WriteString(fmt.Sprintf("*%s*\n", result.TeamName))
	} else {
		sb.WriteString("Free Agent\n")
	}

	if result.InjuryStatus != "" && result.InjuryStatus != "ACTIVE" {
		sb.WriteString(fmt.Sprintf("Status: %s\n", result.InjuryStatus))
	}

	sb.WriteString(fmt.Sprintf("\n%0.1f%% Rostered", result.PercentOwned))

	return sb.String(), nil
}

func (s *FantasyService) GetPlayersToMonitor() (string, error) {
	report, err := s.api.GetPlayersToMonitor(s.scoringPeriod())
	if err != nil {
		return "", fmt.Errorf("error fetching players to monitor: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("🚑 *Players to Monitor*\n\n")

	if len(report.Teams) == 0 {
		sb.WriteString("No players to monitor at this time.")
		return sb.String(), nil
	}

	for _, team := range report.Teams {
		sb.WriteString(fmt.Sprintf("*%s:*\n", team.TeamName))
		for _, player := range team.Players {
			sb.WriteString(fmt.Sprintf("  • %s %s (%s) - %s\n", player.Position, player.Name, player.ProTeam, player.InjuryStatus))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ReloadStats drops the stat caches after a scrape refresh.
func (s *FantasyService) ReloadStats() {
	s.store.Reload()
	slog.Info("Stats caches reloaded")
}

// PlayerNames lists the player pool for the added-players picker.
func (s *FantasyService) PlayerNames(window int) ([]string, error) {
	if window == 0 {
		window = DefaultStatsWindow
	}
	return s.store.PlayerNames(window)
}
