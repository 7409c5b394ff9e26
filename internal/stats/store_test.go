package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const averagesCSV = `PLAYER,TEAM,FGM,FGA,FTM,FTA,3PM,PTS,TREB,AST,STL,BLK,TO
Nikola Jokic,DEN,10.2,17.5,4.8,5.9,1.1,26.3,12.4,10.1,1.3,0.9,3.0
Nicolas Claxton,BKN,4.1,6.5,1.2,2.3,0.0,9.4,7.8,2.1,0.8,2.1,1.4
`

const scheduleCSV = `,ATL,BOS,BKN
Oct 20,1,0,1
Oct 21,0,1,0
Oct 22,0,0,0
`

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "history_data"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "weekly_schedule"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history_data", "current_1.csv"), []byte(averagesCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weekly_schedule", "w3.csv"), []byte(scheduleCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weekly_schedule", "w12.csv"), []byte(scheduleCSV), 0o644))
	return dir
}

func newStore(t *testing.T) *Store {
	return NewStore(writeFixtures(t), projection.NewResolver(nil))
}

func TestAverages(t *testing.T) {
	store := newStore(t)

	table, err := store.Averages(1)
	require.NoError(t, err)
	require.Len(t, table, 2)

	jokic, ok := table["nikola jokic"]
	require.True(t, ok, "keys are canonicalized")
	assert.InDelta(t, 26.3, jokic["PTS"], 1e-9)
	assert.InDelta(t, 12.4, jokic["TREB"], 1e-9)

	_, ok = table["nicolas claxton"]
	assert.True(t, ok)
}

func TestAveragesMissingFile(t *testing.T) {
	store := newStore(t)

	_, err := store.Averages(30)
	assert.Error(t, err)
}

func TestSchedule(t *testing.T) {
	store := newStore(t)

	table, err := store.Schedule(3)
	require.NoError(t, err)

	assert.Equal(t, []string{"Oct 20", "Oct 21", "Oct 22"}, table.Dates())
	assert.True(t, table.HasGame("ATL", "Oct 20"))
	assert.True(t, table.HasGame("BKN", "Oct 20"))
	assert.False(t, table.HasGame("BOS", "Oct 20"))
	assert.True(t, table.HasGame("BOS", "Oct 21"))
	assert.False(t, table.HasGame("ATL", "Oct 22"))
}

func TestWeeks(t *testing.T) {
	store := newStore(t)

	weeks, err := store.Weeks()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 12}, weeks, "numeric sort, not lexical")
}

func TestPlayerNames(t *testing.T) {
	store := newStore(t)

	names, err := store.PlayerNames(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nicolas Claxton", "Nikola Jokic"}, names)
}

func TestReload(t *testing.T) {
	dir := writeFixtures(t)
	store := NewStore(dir, projection.NewResolver(nil))

	_, err := store.Averages(1)
	require.NoError(t, err)

	// Rewrite the file; the cache still serves the old table until Reload.
	updated := "PLAYER,TEAM,PTS\nNikola Jokic,DEN,30.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history_data", "current_1.csv"), []byte(updated), 0o644))

	table, err := store.Averages(1)
	require.NoError(t, err)
	assert.InDelta(t, 26.3, table["nikola jokic"]["PTS"], 1e-9)

	store.Reload()
	table, err = store.Averages(1)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, table["nikola jokic"]["PTS"], 1e-9)
}
