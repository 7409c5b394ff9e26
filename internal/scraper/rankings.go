package scraper

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/projection"
)

const rankingsURL = "https://hashtagbasketball.com/import-v2/fantasy-basketball-rankings"

// AverageColumns is the CSV column order for a scraped averages table.
var AverageColumns = []string{"PLAYER", "TEAM", "FGM", "FGA", "FTM", "FTA", "3PM", "PTS", "TREB", "AST", "STL", "BLK", "TO"}

// PlayerRow is one scraped rankings line after normalization: made/attempt
// counters split out of the percentage columns, the name transliterated to
// plain ASCII.
type PlayerRow struct {
	Player string
	Team   string
	Stats  map[string]float64
}

// RankingsScraper pulls the per-player average table for one lookback
// window. The site gates the import view behind a login cookie, supplied
// verbatim as a Cookie header value.
type RankingsScraper struct {
	client  *http.Client
	cookies string
}

func NewRankingsScraper(cookies string) *RankingsScraper {
	return &RankingsScraper{
		client:  &http.Client{Timeout: 60 * time.Second},
		cookies: cookies,
	}
}

// Scrape fetches and parses the rankings grid. window must be one of
// 0, 1, 7, 14, 30.
func (s *RankingsScraper) Scrape(window int) ([]PlayerRow, error) {
	url := fmt.Sprintf("%s?duration=%d", rankingsURL, window)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if s.cookies != "" {
		req.Header.Set("Cookie", s.cookies)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching rankings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing rankings page: %w", err)
	}
	return ParseRankingsTable(doc)
}

// madeAttemptRe matches the "(made/attempted)" suffix on the FG% and FT%
// columns, e.g. "0.512 (8.2/16.0)".
var madeAttemptRe = regexp.MustCompile(`\(([\d.]+)/([\d.]+)\)`)

// ParseRankingsTable walks the rankings grid. Repeated header rows embedded
// in the body (the site re-prints them every 25 players) are skipped.
func ParseRankingsTable(doc *goquery.Document) ([]PlayerRow, error) {
	table := doc.Find("table#ContentPlaceHolder1_GridView1")
	if table.Length() == 0 {
		return nil, fmt.Errorf("rankings grid not found")
	}

	var headers []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	if len(headers) == 0 {
		return nil, fmt.Errorf("rankings grid has no header row")
	}
	colIdx := make(map[string]int, len(headers))
	for i, h := range headers {
		colIdx[h] = i
	}

	var rows []PlayerRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) == 0 {
			return
		}
		if rank, ok := cellAt(cells, colIdx, "R#"); !ok || rank == "R#" {
			return
		}

		row, ok := parseRankingsRow(cells, colIdx)
		if ok {
			rows = append(rows, row)
		}
	})

	if len(rows) == 0 {
		return nil, fmt.Errorf("rankings grid produced no player rows")
	}
	return rows, nil
}

func parseRankingsRow(cells []string, colIdx map[string]int) (PlayerRow, bool) {
	name, ok := cellAt(cells, colIdx, "PLAYER")
	if !ok || name == "" {
		return PlayerRow{}, false
	}
	team, _ := cellAt(cells, colIdx, "TEAM")

	row := PlayerRow{
		Player: projection.ASCIIFold(name),
		Team:   team,
		Stats:  make(map[string]float64),
	}

	for _, cat := range []string{"3PM", "PTS", "TREB", "AST", "STL", "BLK", "TO"} {
		if raw, ok := cellAt(cells, colIdx, cat); ok {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				row.Stats[cat] = v
			}
		}
	}

	// FG% and FT% carry the raw counters in a (made/attempted) suffix.
	if raw, ok := cellAt(cells, colIdx, "FG%"); ok {
		if made, att, ok := splitMadeAttempt(raw); ok {
			row.Stats["FGM"] = made
			row.Stats["FGA"] = att
		}
	}
	if raw, ok := cellAt(cells, colIdx, "FT%"); ok {
		if made, att, ok := splitMadeAttempt(raw); ok {
			row.Stats["FTM"] = made
			row.Stats["FTA"] = att
		}
	}

	return row, true
}

func cellAt(cells []string, colIdx map[string]int, name string) (string, bool) {
	idx, ok := colIdx[name]
	if !ok || idx >= len(cells) {
		return "", false
	}
	return cells[idx], true
}

func splitMadeAttempt(raw string) (made, attempted float64, ok bool) {
	m := madeAttemptRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0, false
	}
	made, err1 := strconv.ParseFloat(m[1], 64)
	attempted, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return made, attempted, true
}
