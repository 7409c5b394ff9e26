// Package stats loads the scraped player-average and weekly-schedule
// tables the projection engine consumes. The tables live as CSV files under
// the data directory: history_data/current_<window>.csv and
// weekly_schedule/w<week>.csv, refreshed by the scraper commands.
package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/projection"
)

// Windows are the supported lookback windows: 0 is the season projection
// table, 1 the season-to-date table, the rest are trailing day counts.
var Windows = []int{0, 1, 7, 14, 30}

type Store struct {
	dir      string
	resolver *projection.Resolver

	mu        sync.RWMutex
	averages  map[int]projection.PlayerAverages
	schedules map[int]*projection.ScheduleTable
}

func NewStore(dir string, resolver *projection.Resolver) *Store {
	return &Store{
		dir:       dir,
		resolver:  resolver,
		averages:  make(map[int]projection.PlayerAverages),
		schedules: make(map[int]*projection.ScheduleTable),
	}
}

// Averages returns the player-average table for a lookback window, loading
// and caching it on first use.
func (s *Store) Averages(window int) (projection.PlayerAverages, error) {
	s.mu.RLock()
	cached, ok := s.averages[window]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	path := filepath.Join(s.dir, "history_data", fmt.Sprintf("current_%d.csv", window))
	table, err := loadAverages(path, s.resolver)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.averages[window] = table
	s.mu.Unlock()
	return table, nil
}

// Schedule returns one scoring week's date×team table.
func (s *Store) Schedule(weekNum int) (*projection.ScheduleTable, error) {
	s.mu.RLock()
	cached, ok := s.schedules[weekNum]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	path := filepath.Join(s.dir, "weekly_schedule", fmt.Sprintf("w%d.csv", weekNum))
	table, err := loadSchedule(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.schedules[weekNum] = table
	s.mu.Unlock()
	return table, nil
}

var weekFileRe = regexp.MustCompile(`^w(\d+)\.csv$`)

// Weeks lists the scoring weeks with a schedule file present, ascending.
func (s *Store) Weeks() ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "weekly_schedule"))
	if err != nil {
		return nil, fmt.Errorf("scanning schedule dir: %w", err)
	}

	var weeks []int
	for _, e := range entries {
		m := weekFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		weeks = append(weeks, n)
	}
	sort.Ints(weeks)
	return weeks, nil
}

// PlayerNames lists the display names in a window's averages table, for the
// added-players picker. Names come back as stored, not canonicalized.
func (s *Store) PlayerNames(window int) ([]string, error) {
	path := filepath.Join(s.dir, "history_data", fmt.Sprintf("current_%d.csv", window))
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	nameIdx, ok := header["PLAYER"]
	if !ok {
		return nil, fmt.Errorf("%s: no PLAYER column", path)
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if nameIdx < len(row) && row[nameIdx] != "" {
			names = append(names, row[nameIdx])
		}
	}
	sort.Strings(names)
	return names, nil
}

// PlayerTeams maps canonical player key → pro-team abbreviation for a
// window's averages table. Needed when grafting a free agent onto a grid:
// the averages table is the only source that knows their team.
func (s *Store) PlayerTeams(window int) (map[string]string, error) {
	path := filepath.Join(s.dir, "history_data", fmt.Sprintf("current_%d.csv", window))
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	nameIdx, ok := header["PLAYER"]
	if !ok {
		return nil, fmt.Errorf("%s: no PLAYER column", path)
	}
	teamIdx, ok := header["TEAM"]
	if !ok {
		return nil, fmt.Errorf("%s: no TEAM column", path)
	}

	teams := make(map[string]string, len(rows))
	for _, row := range rows {
		if nameIdx >= len(row) || teamIdx >= len(row) || row[nameIdx] == "" {
			continue
		}
		teams[s.resolver.Resolve(row[nameIdx])] = row[teamIdx]
	}
	return teams, nil
}

// Reload drops the caches so the next read picks up freshly scraped files.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.averages = make(map[int]projection.PlayerAverages)
	s.schedules = make(map[int]*projection.ScheduleTable)
}

func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[name] = i
	}
	return records[1:], header, nil
}

func loadAverages(path string, resolver *projection.Resolver) (projection.PlayerAverages, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	nameIdx, ok := header["PLAYER"]
	if !ok {
		return nil, fmt.Errorf("%s: no PLAYER column", path)
	}

	table := make(projection.PlayerAverages, len(rows))
	for _, row := range rows {
		if nameIdx >= len(row) || row[nameIdx] == "" {
			continue
		}
		stats := make(map[string]float64, len(header))
		for col, idx := range header {
			if col == "PLAYER" || col == "TEAM" || idx >= len(row) {
				continue
			}
			v, err := strconv.ParseFloat(row[idx], 64)
			if err != nil {
				continue
			}
			stats[col] = v
		}
		table[resolver.Resolve(row[nameIdx])] = stats
	}
	return table, nil
}

func loadSchedule(path string) (*projection.ScheduleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no schedule rows", path)
	}

	// First column holds the date labels, the remaining header cells are
	// team abbreviations.
	teams := records[0][1:]
	dates := make([]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) > 0 && row[0] != "" {
			dates = append(dates, row[0])
		}
	}

	table := projection.NewScheduleTable(dates)
	for _, row := range records[1:] {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		for i, team := range teams {
			cell := 0
			if i+1 < len(row) {
				if v, err := strconv.Atoi(row[i+1]); err == nil {
					cell = v
				}
			}
			table.Set(row[0], team, cell)
		}
	}
	return table, nil
}
