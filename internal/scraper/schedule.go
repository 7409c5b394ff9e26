// Package scraper fetches the two external tables the projection engine
// depends on: the NBA.com game schedule and the hashtagbasketball
// per-player average rankings.
package scraper

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// nbaTeamIDs maps schedule-table abbreviations to NBA.com franchise IDs.
var nbaTeamIDs = map[string]int{
	"ATL": 1610612737,
	"BOS": 1610612738,
	"BKN": 1610612751,
	"CHA": 1610612766,
	"CHI": 1610612741,
	"CLE": 1610612739,
	"DAL": 1610612742,
	"DEN": 1610612743,
	"DET": 1610612765,
	"GSW": 1610612744,
	"HOU": 1610612745,
	"IND": 1610612754,
	"LAC": 1610612746,
	"LAL": 1610612747,
	"MEM": 1610612763,
	"MIA": 1610612748,
	"MIL": 1610612749,
	"MIN": 1610612750,
	"NOP": 1610612740,
	"NYK": 1610612752,
	"OKC": 1610612760,
	"ORL": 1610612753,
	"PHI": 1610612755,
	"PHX": 1610612756,
	"POR": 1610612757,
	"SAC": 1610612758,
	"SAS": 1610612759,
	"TOR": 1610612761,
	"UTA": 1610612762,
	"WSH": 1610612764,
}

// TeamAbbrevs returns the schedule-table column order.
func TeamAbbrevs() []string {
	abbrevs := make([]string, 0, len(nbaTeamIDs))
	for a := range nbaTeamIDs {
		abbrevs = append(abbrevs, a)
	}
	sort.Strings(abbrevs)
	return abbrevs
}

// ScheduleScraper builds one scoring week's date×team game table from the
// per-team schedule pages on NBA.com.
type ScheduleScraper struct {
	client  *http.Client
	baseURL string
}

func NewScheduleScraper() *ScheduleScraper {
	return &ScheduleScraper{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://www.nba.com",
	}
}

// ScrapeWeek returns date label → team → 1/0 for the given date labels.
// Teams whose page cannot be fetched are reported in errs but leave the
// rest of the table intact.
func (s *ScheduleScraper) ScrapeWeek(dates []string) (map[string]map[string]int, []error) {
	table := make(map[string]map[string]int, len(dates))
	for _, d := range dates {
		table[d] = make(map[string]int)
		for team := range nbaTeamIDs {
			table[d][team] = 0
		}
	}

	var errs []error
	for team, id := range nbaTeamIDs {
		gameDates, err := s.scrapeTeam(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("team %s (%d): %w", team, id, err))
			continue
		}
		for _, d := range gameDates {
			if row, ok := table[d]; ok {
				row[team] = 1
			}
		}
	}
	return table, errs
}

func (s *ScheduleScraper) scrapeTeam(teamID int) ([]string, error) {
	url := fmt.Sprintf("%s/team/%d/schedule", s.baseURL, teamID)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching schedule page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing schedule page: %w", err)
	}
	return ParseSchedulePage(doc), nil
}

// ParseSchedulePage pulls the game-date labels out of a team schedule page.
// The schedule lives in a tbody whose class carries the Crom_body prefix;
// each row's first cell is the date label.
func ParseSchedulePage(doc *goquery.Document) []string {
	var dates []string
	doc.Find(`tbody[class^="Crom_body"] tr`).Each(func(_ int, row *goquery.Selection) {
		cell := row.Find("td").First()
		date := strings.TrimSpace(cell.Text())
		if date != "" {
			dates = append(dates, date)
		}
	})
	return dates
}
