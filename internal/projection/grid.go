package projection

import (
	"encoding/json"
	"fmt"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/models"
)

// Availability is the state of one player/date cell.
type Availability int

const (
	// NoGame means the player's team has no scheduled game that date. The
	// cell is effectively blank and not editable.
	NoGame Availability = iota
	// Out means the player is not expected to play a scheduled game.
	Out
	// Playing means the player is expected to play.
	Playing
)

func (a Availability) String() string {
	switch a {
	case Playing:
		return "playing"
	case Out:
		return "out"
	default:
		return "no_game"
	}
}

func (a Availability) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Availability) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "playing":
		*a = Playing
	case "out":
		*a = Out
	case "no_game":
		*a = NoGame
	default:
		return fmt.Errorf("unknown availability %q", s)
	}
	return nil
}

// StatusRowName labels the synthetic control row at index 0. Its cells are
// batch-toggle signals, not per-player facts.
const StatusRowName = "DAILY STATUS"

// GridRow is one row of the availability grid: a fixed-field player record
// plus a date-label → availability mapping.
type GridRow struct {
	Name     string                  `json:"name"`
	Position string                  `json:"position"`
	ProTeam  string                  `json:"proTeam"`
	Days     map[string]Availability `json:"days"`
}

// AvailabilityGrid is the per-(team, week) editable matrix. Rows[0] is the
// status row; the remaining rows are roster players. Grid operations are
// pure: they return an updated copy and leave the input untouched, the
// caller persists the returned value between interactions.
type AvailabilityGrid struct {
	Dates []string  `json:"dates"`
	Rows  []GridRow `json:"rows"`
}

func (g AvailabilityGrid) clone() AvailabilityGrid {
	out := AvailabilityGrid{
		Dates: append([]string(nil), g.Dates...),
		Rows:  make([]GridRow, len(g.Rows)),
	}
	for i, row := range g.Rows {
		days := make(map[string]Availability, len(row.Days))
		for d, v := range row.Days {
			days[d] = v
		}
		out.Rows[i] = GridRow{Name: row.Name, Position: row.Position, ProTeam: row.ProTeam, Days: days}
	}
	return out
}

// PlayerRows returns the grid rows excluding the status row.
func (g AvailabilityGrid) PlayerRows() []GridRow {
	if len(g.Rows) == 0 {
		return nil
	}
	return g.Rows[1:]
}

// SeedGrid builds the initial grid for a roster against one week's
// schedule: Playing wherever the player's team has a game (Out instead if
// the player's injury status rules them out), NoGame everywhere else. A
// player whose team is missing from the schedule gets a fully blank row.
func SeedGrid(roster []models.RosterPlayer, schedule *ScheduleTable) AvailabilityGrid {
	var dates []string
	if schedule != nil {
		dates = schedule.Dates()
	}

	grid := AvailabilityGrid{Dates: dates}

	status := GridRow{Name: StatusRowName, Days: make(map[string]Availability, len(dates))}
	grid.Rows = append(grid.Rows, status)

	for _, player := range roster {
		grid.Rows = append(grid.Rows, seedRow(player, dates, schedule))
	}

	// The status row's cell is live only on dates where at least one
	// player has a game.
	for _, d := range dates {
		grid.Rows[0].Days[d] = NoGame
		for _, row := range grid.PlayerRows() {
			if row.Days[d] != NoGame {
				grid.Rows[0].Days[d] = Playing
				break
			}
		}
	}

	return grid
}

func seedRow(player models.RosterPlayer, dates []string, schedule *ScheduleTable) GridRow {
	row := GridRow{
		Name:     player.Name,
		Position: player.Position,
		ProTeam:  player.ProTeam,
		Days:     make(map[string]Availability, len(dates)),
	}
	isOut := player.InjuryStatus == models.InjuryOut
	for _, d := range dates {
		switch {
		case schedule == nil || !schedule.HasGame(player.ProTeam, d):
			row.Days[d] = NoGame
		case isOut:
			row.Days[d] = Out
		default:
			row.Days[d] = Playing
		}
	}
	return row
}

// AppendPlayer grafts an extra player row (a free agent under
// consideration) onto an existing grid, seeded from the schedule like any
// roster row.
func AppendPlayer(grid AvailabilityGrid, player models.RosterPlayer, schedule *ScheduleTable) AvailabilityGrid {
	out := grid.clone()
	out.Rows = append(out.Rows, seedRow(player, out.Dates, schedule))
	return out
}

// ApplyBatchToggle sets every cell in the date column that is not blanked
// out by a missing game. Blank cells stay blank: toggling never resurrects
// a no-game day. The toggle trusts existing blanks and does not consult the
// schedule, so callers follow it with EnforceConstraints.
func ApplyBatchToggle(grid AvailabilityGrid, date string, playing bool) AvailabilityGrid {
	value := Out
	if playing {
		value = Playing
	}
	out := grid.clone()
	for i := range out.Rows {
		if curr, ok := out.Rows[i].Days[date]; ok && curr != NoGame {
			out.Rows[i].Days[date] = value
		}
	}
	return out
}

// SetCell applies a manual single-cell edit to a player row. Edits are
// provisional until EnforceConstraints confirms them.
func SetCell(grid AvailabilityGrid, playerName, date string, value Availability) AvailabilityGrid {
	out := grid.clone()
	for i, row := range out.Rows {
		if i == 0 || row.Name != playerName {
			continue
		}
		if _, ok := row.Days[date]; ok {
			out.Rows[i].Days[date] = value
		}
	}
	return out
}

// EnforceConstraints is the authoritative gate on user edits: any Playing
// cell on a date the player's team has no scheduled game reverts to NoGame.
// The returned flag reports whether anything was reverted so the caller can
// notify the user. Running it twice in a row produces no further change.
func EnforceConstraints(grid AvailabilityGrid, schedule *ScheduleTable) (AvailabilityGrid, bool) {
	out := grid.clone()
	reverted := false
	for i := range out.Rows {
		if i == 0 {
			continue
		}
		row := out.Rows[i]
		for _, d := range out.Dates {
			if row.Days[d] != Playing {
				continue
			}
			if schedule == nil || !schedule.HasGame(row.ProTeam, d) {
				row.Days[d] = NoGame
				reverted = true
			}
		}
	}
	return out, reverted
}
