package projection

// teamAliases reconciles pro-team abbreviations between the ESPN roster
// source and the NBA.com schedule source.
var teamAliases = map[string]string{
	"GS":  "GSW",
	"NO":  "NOP",
	"NY":  "NYK",
	"PHL": "PHI",
	"PHO": "PHX",
	"SA":  "SAS",
	"WAS": "WSH",
}

// NormalizeTeam maps a roster-source abbreviation to the schedule-source
// abbreviation. Unknown abbreviations pass through unchanged.
func NormalizeTeam(abbrev string) string {
	if mapped, ok := teamAliases[abbrev]; ok {
		return mapped
	}
	return abbrev
}

// ScheduleTable answers whether a pro team plays on a given date within one
// scoring week. Rows are formatted date labels ("Oct 21"), columns are
// NBA team abbreviations, cells are 1 (game) or 0 (no game).
type ScheduleTable struct {
	dates []string
	teams map[string]bool
	cells map[string]map[string]int
}

func NewScheduleTable(dates []string) *ScheduleTable {
	return &ScheduleTable{
		dates: append([]string(nil), dates...),
		teams: make(map[string]bool),
		cells: make(map[string]map[string]int),
	}
}

// Set records the cell for a date/team pair. Dates not passed to the
// constructor are ignored.
func (t *ScheduleTable) Set(date, team string, value int) {
	row, ok := t.cells[date]
	if !ok {
		found := false
		for _, d := range t.dates {
			if d == date {
				found = true
				break
			}
		}
		if !found {
			return
		}
		row = make(map[string]int)
		t.cells[date] = row
	}
	row[team] = value
	t.teams[team] = true
}

// Dates returns the date labels in row order.
func (t *ScheduleTable) Dates() []string {
	return append([]string(nil), t.dates...)
}

// HasTeam reports whether the table carries a column for the (normalized)
// abbreviation.
func (t *ScheduleTable) HasTeam(abbrev string) bool {
	return t.teams[NormalizeTeam(abbrev)]
}

// HasGame reports whether the team plays on the date. The abbreviation is
// normalized through the alias table first. A missing column, missing row,
// or any cell other than exactly 1 means no game; HasGame never fails.
func (t *ScheduleTable) HasGame(abbrev, date string) bool {
	if t == nil {
		return false
	}
	team := NormalizeTeam(abbrev)
	if !t.teams[team] {
		return false
	}
	row, ok := t.cells[date]
	if !ok {
		return false
	}
	return row[team] == 1
}
