package projection

import (
	"testing"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoster() []models.RosterPlayer {
	return []models.RosterPlayer{
		{Name: "Player A", Position: "PG", ProTeam: "BOS"},
		{Name: "Player B", Position: "C", ProTeam: "GSW", InjuryStatus: models.InjuryOut},
		{Name: "Player C", Position: "SF", ProTeam: "MIA"},
	}
}

func TestSeedGrid(t *testing.T) {
	schedule := buildSchedule()
	grid := SeedGrid(testRoster(), schedule)

	require.Len(t, grid.Rows, 4, "status row plus three players")
	assert.Equal(t, StatusRowName, grid.Rows[0].Name)

	a := grid.Rows[1]
	assert.Equal(t, Playing, a.Days["Oct 21"])
	assert.Equal(t, NoGame, a.Days["Oct 22"])
	assert.Equal(t, NoGame, a.Days["Oct 23"])

	// OUT players default to unchecked on game days.
	b := grid.Rows[2]
	assert.Equal(t, Out, b.Days["Oct 21"])
	assert.Equal(t, NoGame, b.Days["Oct 22"])
	assert.Equal(t, Out, b.Days["Oct 23"])

	// MIA has no schedule column: fully blank row.
	c := grid.Rows[3]
	for _, d := range grid.Dates {
		assert.Equal(t, NoGame, c.Days[d])
	}
}

func TestSeedGridStatusRow(t *testing.T) {
	grid := SeedGrid(testRoster(), buildSchedule())

	status := grid.Rows[0]
	assert.Equal(t, Playing, status.Days["Oct 21"], "at least one player has a game")
	assert.Equal(t, NoGame, status.Days["Oct 22"], "nobody plays")
	assert.Equal(t, Playing, status.Days["Oct 23"])
}

func TestBatchTogglePreservesBlanks(t *testing.T) {
	schedule := buildSchedule()
	grid := SeedGrid(testRoster(), schedule)

	// Only Player B (Out) flips on Oct 21; blanks stay blank.
	toggled := ApplyBatchToggle(grid, "Oct 21", true)
	assert.Equal(t, Playing, toggled.Rows[1].Days["Oct 21"])
	assert.Equal(t, Playing, toggled.Rows[2].Days["Oct 21"])
	assert.Equal(t, NoGame, toggled.Rows[3].Days["Oct 21"])

	off := ApplyBatchToggle(toggled, "Oct 21", false)
	assert.Equal(t, Out, off.Rows[1].Days["Oct 21"])
	assert.Equal(t, Out, off.Rows[2].Days["Oct 21"])
	assert.Equal(t, NoGame, off.Rows[3].Days["Oct 21"])
}

func TestBatchToggleSingleNonBlankRow(t *testing.T) {
	schedule := NewScheduleTable([]string{"Wed"})
	schedule.Set("Wed", "BOS", 1)

	roster := []models.RosterPlayer{
		{Name: "P1", ProTeam: "BOS"},
		{Name: "P2", ProTeam: "MIA"},
		{Name: "P3", ProTeam: "DAL"},
	}
	grid := SeedGrid(roster, schedule)
	grid = ApplyBatchToggle(grid, "Wed", false)
	grid = ApplyBatchToggle(grid, "Wed", true)

	assert.Equal(t, Playing, grid.Rows[1].Days["Wed"])
	assert.Equal(t, NoGame, grid.Rows[2].Days["Wed"])
	assert.Equal(t, NoGame, grid.Rows[3].Days["Wed"])
}

func TestBatchToggleIsPure(t *testing.T) {
	grid := SeedGrid(testRoster(), buildSchedule())
	before := grid.Rows[1].Days["Oct 21"]

	_ = ApplyBatchToggle(grid, "Oct 21", false)
	assert.Equal(t, before, grid.Rows[1].Days["Oct 21"], "input grid untouched")
}

func TestEnforceConstraintsRevertsInvalidMarks(t *testing.T) {
	// Mon: TeamA plays. Tue: no game.
	schedule := NewScheduleTable([]string{"Mon", "Tue"})
	schedule.Set("Mon", "BOS", 1)
	schedule.Set("Tue", "BOS", 0)

	grid := SeedGrid([]models.RosterPlayer{{Name: "P", ProTeam: "BOS"}}, schedule)
	// A manual edit bypassing the toggle marks Tue as playing.
	grid.Rows[1].Days["Tue"] = Playing

	enforced, reverted := EnforceConstraints(grid, schedule)
	assert.True(t, reverted)
	assert.Equal(t, Playing, enforced.Rows[1].Days["Mon"])
	assert.Equal(t, NoGame, enforced.Rows[1].Days["Tue"])
}

func TestEnforceConstraintsIdempotent(t *testing.T) {
	schedule := buildSchedule()
	grid := SeedGrid(testRoster(), schedule)
	grid.Rows[1].Days["Oct 22"] = Playing
	grid.Rows[3].Days["Oct 21"] = Playing

	once, reverted := EnforceConstraints(grid, schedule)
	assert.True(t, reverted)

	twice, revertedAgain := EnforceConstraints(once, schedule)
	assert.False(t, revertedAgain)
	assert.Equal(t, once, twice)
}

func TestEnforceConstraintsSkipsStatusRow(t *testing.T) {
	schedule := buildSchedule()
	grid := SeedGrid(testRoster(), schedule)

	// The control row is a signal, not a fact; it is never reverted even
	// though it has no pro team.
	enforced, reverted := EnforceConstraints(grid, schedule)
	assert.False(t, reverted)
	assert.Equal(t, grid.Rows[0], enforced.Rows[0])
}

func TestEnforceConstraintsNilSchedule(t *testing.T) {
	grid := SeedGrid(testRoster(), buildSchedule())

	enforced, reverted := EnforceConstraints(grid, nil)
	assert.True(t, reverted, "every Playing mark loses its corroboration")
	for _, row := range enforced.PlayerRows() {
		for _, d := range enforced.Dates {
			assert.NotEqual(t, Playing, row.Days[d])
		}
	}
}

func TestSetCell(t *testing.T) {
	grid := SeedGrid(testRoster(), buildSchedule())

	edited := SetCell(grid, "Player A", "Oct 21", Out)
	assert.Equal(t, Out, edited.Rows[1].Days["Oct 21"])
	assert.Equal(t, Playing, grid.Rows[1].Days["Oct 21"], "input untouched")

	// Unknown player or date is a no-op.
	same := SetCell(grid, "Nobody", "Oct 21", Out)
	assert.Equal(t, grid, same)
}

func TestAppendPlayer(t *testing.T) {
	schedule := buildSchedule()
	grid := SeedGrid(testRoster(), schedule)

	extended := AppendPlayer(grid, models.RosterPlayer{Name: "Pickup", ProTeam: "GS"}, schedule)
	require.Len(t, extended.Rows, 5)
	added := extended.Rows[4]
	assert.Equal(t, Playing, added.Days["Oct 21"], "GS aliases to GSW")
	assert.Equal(t, NoGame, added.Days["Oct 22"])
	assert.Len(t, grid.Rows, 4, "input untouched")
}

func TestAvailabilityJSONRoundTrip(t *testing.T) {
	for _, a := range []Availability{NoGame, Out, Playing} {
		data, err := a.MarshalJSON()
		require.NoError(t, err)
		var back Availability
		require.NoError(t, back.UnmarshalJSON(data))
		assert.Equal(t, a, back)
	}

	var a Availability
	assert.Error(t, a.UnmarshalJSON([]byte(`"maybe"`)))
}
