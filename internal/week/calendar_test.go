package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFind(t *testing.T) {
	tests := []struct {
		date time.Time
		week int
		ok   bool
	}{
		{date(2025, time.October, 20), 1, true},
		{date(2025, time.October, 26), 1, true},
		{date(2025, time.October, 27), 2, true},
		{date(2025, time.December, 31), 11, true},
		{date(2026, time.February, 15), 17, true},
		{date(2026, time.April, 12), 22, true},
		{date(2025, time.October, 19), 0, false},
		{date(2026, time.April, 13), 0, false},
	}

	for _, tt := range tests {
		w, ok := Find(tt.date)
		assert.Equal(t, tt.ok, ok, "date %v", tt.date)
		assert.Equal(t, tt.week, w, "date %v", tt.date)
	}
}

func TestWeekRangeContiguous(t *testing.T) {
	require.Equal(t, 22, Weeks())

	for w := 2; w <= Weeks(); w++ {
		prev, ok := WeekRange(w - 1)
		require.True(t, ok)
		curr, ok := WeekRange(w)
		require.True(t, ok)
		assert.Equal(t, prev.End.AddDate(0, 0, 1), curr.Start, "week %d starts the day after week %d ends", w, w-1)
	}
}

func TestScoringPeriod(t *testing.T) {
	assert.Equal(t, 0, ScoringPeriod(date(2025, time.October, 20)))
	assert.Equal(t, 1, ScoringPeriod(date(2025, time.October, 21)))
	assert.Equal(t, 7, ScoringPeriod(date(2025, time.October, 27)))
	// Time-of-day does not matter.
	assert.Equal(t, 1, ScoringPeriod(time.Date(2025, time.October, 21, 23, 50, 0, 0, time.UTC)))
}

func TestDateLabel(t *testing.T) {
	assert.Equal(t, "Oct 21", DateLabel(date(2025, time.October, 21)))
	assert.Equal(t, "Jan 2", DateLabel(date(2026, time.January, 2)), "day is not zero-padded")
}

func TestParseDateLabel(t *testing.T) {
	got, err := ParseDateLabel("Oct 21", 2025)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.October, 21), got)

	// Months before October roll into the following calendar year.
	got, err = ParseDateLabel("Jan 2", 2025)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.January, 2), got)

	got, err = ParseDateLabel("Apr 12", 2025)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.April, 12), got)

	_, err = ParseDateLabel("not a date", 2025)
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	r, ok := WeekRange(1)
	require.True(t, ok)

	labels := Labels(r)
	require.Len(t, labels, 7)
	assert.Equal(t, "Oct 20", labels[0])
	assert.Equal(t, "Oct 26", labels[6])
}
