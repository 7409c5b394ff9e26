package projection

import (
	"testing"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(NewResolver(nil), nil, nil)
}

func TestProjectCountsOnlyCorroboratedGames(t *testing.T) {
	engine := newTestEngine()

	schedule := NewScheduleTable([]string{"Mon", "Tue"})
	schedule.Set("Mon", "BOS", 1)
	schedule.Set("Tue", "BOS", 0)

	roster := []models.RosterPlayer{{Name: "Player P", ProTeam: "BOS"}}
	grid := SeedGrid(roster, schedule)
	// Invalid mark slipped past the UI.
	grid.Rows[1].Days["Tue"] = Playing

	enforced, reverted := EnforceConstraints(grid, schedule)
	assert.True(t, reverted)

	averages := PlayerAverages{"player p": {"PTS": 10}}

	// One active game, not two: Tue is reverted, and the engine would not
	// have counted it anyway.
	totals := engine.Project(enforced, nil, averages, schedule)
	assert.InDelta(t, 10.0, totals["PTS"], 1e-9)

	// Even on the unenforced grid the defensive re-validation holds.
	totals = engine.Project(grid, nil, averages, schedule)
	assert.InDelta(t, 10.0, totals["PTS"], 1e-9)
}

func TestProjectDerivesAdjustedFieldGoal(t *testing.T) {
	engine := newTestEngine()

	current := map[string]float64{"FGM": 40, "FGA": 80, "3PM": 10}
	totals := engine.Project(AvailabilityGrid{}, current, nil, nil)

	// (40 + 0.5*10) / 80 = 56.25%
	assert.InDelta(t, 0.5625, totals[CatAFG], 1e-9)

	formatted := engine.FormatTotals(totals)
	assert.Equal(t, "56.25%", formatted[CatAFG])
}

func TestProjectZeroDivision(t *testing.T) {
	engine := newTestEngine()

	totals := engine.Project(AvailabilityGrid{}, nil, nil, nil)
	assert.Zero(t, totals[CatAFG])
	assert.Zero(t, totals[CatFT])

	formatted := engine.FormatTotals(totals)
	assert.Equal(t, "0.00%", formatted[CatAFG])
	assert.Equal(t, "0.00%", formatted[CatFT])
}

func TestProjectAliasFallback(t *testing.T) {
	engine := newTestEngine()

	// Totals keyed under the source's alias, not the display name.
	current := map[string]float64{"REB": 120}
	totals := engine.Project(AvailabilityGrid{}, current, nil, nil)
	assert.InDelta(t, 120.0, totals["TREB"], 1e-9)

	// Direct key wins over the alias.
	current = map[string]float64{"TREB": 50, "REB": 120}
	totals = engine.Project(AvailabilityGrid{}, current, nil, nil)
	assert.InDelta(t, 50.0, totals["TREB"], 1e-9)
}

func TestProjectMonotonicInActiveGames(t *testing.T) {
	engine := newTestEngine()

	roster := []models.RosterPlayer{{Name: "Player P", ProTeam: "BOS"}}
	averages := PlayerAverages{"player p": {"AST": 7.5}}

	schedule := NewScheduleTable([]string{"Mon", "Tue", "Wed"})
	schedule.Set("Mon", "BOS", 1)
	schedule.Set("Tue", "BOS", 1)
	schedule.Set("Wed", "BOS", 1)

	grid := SeedGrid(roster, schedule)
	grid = ApplyBatchToggle(grid, "Tue", false)
	grid = ApplyBatchToggle(grid, "Wed", false)

	one := engine.Project(grid, nil, averages, schedule)

	grid = SetCell(grid, "Player P", "Tue", Playing)
	two := engine.Project(grid, nil, averages, schedule)

	assert.InDelta(t, 7.5, two["AST"]-one["AST"], 1e-9, "one extra game adds exactly the average")
}

func TestProjectUnresolvedPlayerContributesZero(t *testing.T) {
	engine := newTestEngine()

	schedule := NewScheduleTable([]string{"Mon"})
	schedule.Set("Mon", "BOS", 1)

	grid := SeedGrid([]models.RosterPlayer{{Name: "Unknown Rookie", ProTeam: "BOS"}}, schedule)
	totals := engine.Project(grid, nil, PlayerAverages{}, schedule)

	for _, k := range engine.Categories() {
		assert.Zero(t, totals[k])
	}
}

func TestProjectResolvesRosterSpellings(t *testing.T) {
	engine := newTestEngine()

	schedule := NewScheduleTable([]string{"Mon"})
	schedule.Set("Mon", "BKN", 1)

	// Roster says "Nic Claxton", stats table was keyed from
	// "Nicolas Claxton".
	grid := SeedGrid([]models.RosterPlayer{{Name: "Nic Claxton", ProTeam: "BKN"}}, schedule)
	averages := PlayerAverages{"nicolas claxton": {"BLK": 2.1}}

	totals := engine.Project(grid, nil, averages, schedule)
	assert.InDelta(t, 2.1, totals["BLK"], 1e-9)
}

func TestProjectSimple(t *testing.T) {
	engine := newTestEngine()

	schedule := NewScheduleTable([]string{"Mon", "Tue", "Wed"})
	schedule.Set("Mon", "BOS", 1)
	schedule.Set("Wed", "BOS", 1)
	schedule.Set("Tue", "GSW", 1)

	roster := []models.RosterPlayer{
		{Name: "Player A", ProTeam: "BOS"},
		{Name: "Player B", ProTeam: "GS"},
		{Name: "Player C", ProTeam: "BOS", InjuryStatus: models.InjuryOut},
	}
	averages := PlayerAverages{
		"player a": {"PTS": 20, "FGM": 8, "FGA": 16},
		"player b": {"PTS": 10, "FGM": 4, "FGA": 10},
		"player c": {"PTS": 30},
	}

	totals := engine.ProjectSimple(roster, schedule, averages)

	// A plays twice, B once (via the GS→GSW alias), C is OUT.
	assert.InDelta(t, 50.0, totals["PTS"], 1e-9)
	assert.InDelta(t, 20.0, totals["FGM"], 1e-9)
	assert.InDelta(t, 42.0, totals["FGA"], 1e-9)
	assert.InDelta(t, 20.0/42.0, totals[CatAFG], 1e-9)
}

func TestProjectSimpleEmptyInputs(t *testing.T) {
	engine := newTestEngine()

	totals := engine.ProjectSimple(nil, nil, nil)
	require.NotNil(t, totals)
	for _, k := range engine.Categories() {
		assert.Zero(t, totals[k])
	}
}

func TestFormatTotalsOrderAndShape(t *testing.T) {
	engine := newTestEngine()

	totals := ProjectedTotals{"PTS": 123.456, CatFT: 0.8125}
	formatted := engine.FormatTotals(totals)

	assert.Equal(t, "123.5", formatted["PTS"])
	assert.Equal(t, "81.25%", formatted[CatFT])
	assert.Equal(t, "0.0", formatted["AST"], "absent categories render as zero")
	assert.Len(t, formatted, len(engine.Categories()))
}
