// Package week maps calendar dates onto the league's scoring weeks for the
// 2025-26 NBA season.
package week

import (
	"fmt"
	"time"
)

// SeasonStart is the first day of the season's first scoring week.
var SeasonStart = time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC)

// Range is one scoring week, inclusive on both ends. Most weeks run Monday
// through Sunday; the All-Star week and the final weeks span two.
type Range struct {
	Week  int
	Start time.Time
	End   time.Time
}

var calendar = buildCalendar()

func buildCalendar() []Range {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	span := func(week, y1 int, m1 time.Month, d1, y2 int, m2 time.Month, d2 int) Range {
		return Range{Week: week, Start: day(y1, m1, d1), End: day(y2, m2, d2)}
	}

	ranges := make([]Range, 0, 22)
	// w1..w16: consecutive seven-day weeks from the season start.
	start := SeasonStart
	for w := 1; w <= 16; w++ {
		ranges = append(ranges, Range{Week: w, Start: start, End: start.AddDate(0, 0, 6)})
		start = start.AddDate(0, 0, 7)
	}
	// w17 spans the All-Star break.
	ranges = append(ranges,
		span(17, 2026, time.February, 9, 2026, time.February, 22),
		span(18, 2026, time.February, 23, 2026, time.March, 1),
		span(19, 2026, time.March, 2, 2026, time.March, 8),
		span(20, 2026, time.March, 9, 2026, time.March, 15),
		span(21, 2026, time.March, 16, 2026, time.March, 29),
		span(22, 2026, time.March, 30, 2026, time.April, 12),
	)
	return ranges
}

// Find returns the scoring week containing the date, or false when the date
// falls outside the season.
func Find(date time.Time) (int, bool) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	for _, r := range calendar {
		if !d.Before(r.Start) && !d.After(r.End) {
			return r.Week, true
		}
	}
	return 0, false
}

// WeekRange returns the date span of a scoring week.
func WeekRange(week int) (Range, bool) {
	for _, r := range calendar {
		if r.Week == week {
			return r, true
		}
	}
	return Range{}, false
}

// Weeks returns the number of scoring weeks in the season.
func Weeks() int {
	return len(calendar)
}

// ScoringPeriod is the raw day count since the season start date. ESPN's
// scoring periods are day-indexed; this computation is deliberately kept
// separate from the week calendar above, and the two are not guaranteed to
// agree. Callers compare it against the API's reported period and flag any
// divergence instead of resolving it silently.
func ScoringPeriod(date time.Time) int {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(SeasonStart).Hours() / 24)
}

// DateLabel formats a date the way the schedule tables key their rows:
// month abbreviation plus unpadded day, "Oct 21", "Jan 2".
func DateLabel(date time.Time) string {
	return fmt.Sprintf("%s %d", date.Format("Jan"), date.Day())
}

// ParseDateLabel resolves a year-less schedule label against a season
// starting in startYear: months of October onward belong to the start year,
// earlier months to the following year.
func ParseDateLabel(label string, startYear int) (time.Time, error) {
	t, err := time.Parse("Jan 2", label)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date label %q: %w", label, err)
	}
	year := startYear + 1
	if t.Month() >= time.October {
		year = startYear
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Labels expands a week's range into its ordered date labels.
func Labels(r Range) []string {
	var labels []string
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		labels = append(labels, DateLabel(d))
	}
	return labels
}
