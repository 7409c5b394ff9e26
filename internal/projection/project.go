package projection

import (
	"fmt"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/models"
)

// Category names in display order. AFG% and FT% are derived from the
// accumulated making/attempt counters at the end of a projection.
const (
	CatAFG = "AFG%"
	CatFT  = "FT%"
)

var DefaultCategories = []string{
	CatAFG, CatFT, "3PM", "TREB", "AST", "STL", "BLK", "TO", "PTS",
	"FGM", "FGA", "FTM", "FTA",
}

// DefaultAliases maps display category names to the key the current-totals
// source may use instead.
var DefaultAliases = map[string]string{"TREB": "REB"}

// LowerIsBetter marks categories where the smaller total wins.
var LowerIsBetter = map[string]bool{"TO": true}

// HiddenFromWins marks counters that feed the derived percentages and are
// excluded from head-to-head win counting.
var HiddenFromWins = map[string]bool{"FGM": true, "FGA": true, "FTM": true, "FTA": true}

// PlayerAverages maps canonical player key → category → per-game average
// for one lookback window. Immutable once loaded.
type PlayerAverages map[string]map[string]float64

// ProjectedTotals maps category name → projected numeric value. Percentage
// categories hold fractions; FormatTotals turns the record into display
// strings.
type ProjectedTotals map[string]float64

// Engine computes projected end-of-week category totals.
type Engine struct {
	resolver   *Resolver
	categories []string
	aliases    map[string]string
}

func NewEngine(resolver *Resolver, categories []string, aliases map[string]string) *Engine {
	if categories == nil {
		categories = DefaultCategories
	}
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Engine{resolver: resolver, categories: categories, aliases: aliases}
}

func (e *Engine) baseCategories() []string {
	base := make([]string, 0, len(e.categories))
	for _, k := range e.categories {
		if k == CatAFG || k == CatFT {
			continue
		}
		base = append(base, k)
	}
	return base
}

func (e *Engine) currentValue(totals map[string]float64, category string) float64 {
	if v, ok := totals[category]; ok {
		return v
	}
	if alias, ok := e.aliases[category]; ok {
		if v, ok := totals[alias]; ok {
			return v
		}
	}
	return 0
}

// Project combines the team's current totals with each player's per-game
// averages multiplied by their counted active games. A date counts as
// active only when the grid marks it Playing and the schedule independently
// confirms a game for the player's team; the engine does not assume the
// grid was constraint-enforced. Players missing from the averages table
// contribute zero.
func (e *Engine) Project(grid AvailabilityGrid, currentTotals map[string]float64, averages PlayerAverages, schedule *ScheduleTable) ProjectedTotals {
	totals := make(ProjectedTotals, len(e.categories))
	for _, k := range e.baseCategories() {
		totals[k] = e.currentValue(currentTotals, k)
	}

	for _, row := range grid.PlayerRows() {
		gamesActive := 0
		for _, d := range grid.Dates {
			if row.Days[d] == Playing && schedule.HasGame(row.ProTeam, d) {
				gamesActive++
			}
		}
		if gamesActive == 0 {
			continue
		}
		e.accumulate(totals, row.Name, gamesActive, averages)
	}

	e.derivePercentages(totals)
	return totals
}

// ProjectSimple projects a roster with no user-editable grid: every player
// not ruled out by injury is assumed to play every game their team has
// scheduled that week. Used to gauge team strength across future weeks.
func (e *Engine) ProjectSimple(roster []models.RosterPlayer, schedule *ScheduleTable, averages PlayerAverages) ProjectedTotals {
	totals := make(ProjectedTotals, len(e.categories))
	for _, k := range e.baseCategories() {
		totals[k] = 0
	}

	var dates []string
	if schedule != nil {
		dates = schedule.Dates()
	}

	for _, player := range roster {
		if player.InjuryStatus == models.InjuryOut {
			continue
		}
		gamesActive := 0
		for _, d := range dates {
			if schedule.HasGame(player.ProTeam, d) {
				gamesActive++
			}
		}
		if gamesActive == 0 {
			continue
		}
		e.accumulate(totals, player.Name, gamesActive, averages)
	}

	e.derivePercentages(totals)
	return totals
}

func (e *Engine) accumulate(totals ProjectedTotals, playerName string, gamesActive int, averages PlayerAverages) {
	avg, ok := averages[e.resolver.Resolve(playerName)]
	if !ok {
		return
	}
	for _, k := range e.baseCategories() {
		totals[k] += avg[k] * float64(gamesActive)
	}
}

func (e *Engine) derivePercentages(totals ProjectedTotals) {
	fgm := totals["FGM"]
	fga := totals["FGA"]
	threePM := totals["3PM"]
	ftm := totals["FTM"]
	fta := totals["FTA"]

	totals[CatAFG] = 0
	if fga > 0 {
		totals[CatAFG] = (fgm + 0.5*threePM) / fga
	}
	totals[CatFT] = 0
	if fta > 0 {
		totals[CatFT] = ftm / fta
	}
}

// Resolver exposes the engine's name resolver so callers join against the
// same canonical keys the engine uses.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// Categories returns the engine's display order.
func (e *Engine) Categories() []string {
	return append([]string(nil), e.categories...)
}

// FormatTotals renders a projection for display: percentages with two
// decimals, counting categories with one. Missing categories render as 0.
func (e *Engine) FormatTotals(totals ProjectedTotals) map[string]string {
	out := make(map[string]string, len(e.categories))
	for _, k := range e.categories {
		if k == CatAFG || k == CatFT {
			out[k] = fmt.Sprintf("%.2f%%", totals[k]*100)
			continue
		}
		out[k] = fmt.Sprintf("%.1f", totals[k])
	}
	return out
}
