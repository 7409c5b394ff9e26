package models

import "time"

type LeagueMetadata struct {
	LeagueID             int
	Name                 string
	CurrentWeek          int
	CurrentScoringPeriod int
	SeasonID             int
	FirstWeek            int
	LastWeek             int
	IsActive             bool
	LastUpdated          time.Time
}

// RosterPlayer is one rostered player as the projection core consumes it.
type RosterPlayer struct {
	Name         string
	Position     string
	ProTeam      string
	InjuryStatus string
}

// InjuryOut is the ESPN status that excludes a player from seeded lineups.
const InjuryOut = "OUT"

type FantasyTeam struct {
	ID           int
	Name         string
	Abbreviation string
	Roster       []RosterPlayer
}

type TeamStanding struct {
	Rank          int
	TeamID        int
	TeamName      string
	Abbreviation  string
	Wins          int
	Losses        int
	Ties          int
	WinPercentage float64
	PlayoffSeed   int
}

// MatchupTotals is one side of a head-to-head category matchup: the team's
// season-to-date totals for the current scoring week, keyed by category name.
type MatchupTotals struct {
	TeamID   int
	TeamName string
	Totals   map[string]float64
}

type WhoHasResult struct {
	PlayerName   string
	TeamName     string
	TeamID       int
	Found        bool
	PercentOwned float64
	Position     string
	ProTeam      string
	InjuryStatus string
}

type PlayerToMonitor struct {
	Name         string
	Position     string
	ProTeam      string
	InjuryStatus string
}

type TeamMonitorReport struct {
	TeamName string
	Players  []PlayerToMonitor
}

type PlayersToMonitorReport struct {
	Teams []TeamMonitorReport
}

// StrengthRow is one opponent line in the team-strength report: the
// opponent's simple-projected totals and how many categories the target
// team would win against them.
type StrengthRow struct {
	TeamName string
	Totals   map[string]float64
	Wins     int
}

type WeekStrength struct {
	Week   int
	Target StrengthRow
	Rows   []StrengthRow
}
