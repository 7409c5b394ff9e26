// Command statscraper pulls per-player fantasy averages from
// hashtagbasketball.com and writes DATA_DIR/history_data/current_{window}.csv
// for each requested lookback window. The site requires a login cookie,
// read from FANTASY_HASHTAG_COOKIES.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/config"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/scraper"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/stats"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error scraping stats", "error", err)
		os.Exit(1)
	}
}

func run() error {
	windowsFlag := flag.String("windows", "", "comma-separated lookback windows to scrape (default: all of 0,1,7,14,30)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	cookies := os.Getenv("FANTASY_HASHTAG_COOKIES")
	if cookies == "" {
		slog.Warn("FANTASY_HASHTAG_COOKIES not set, the rankings page may reject the request")
	}

	windows, err := parseWindows(*windowsFlag)
	if err != nil {
		return err
	}

	outDir := filepath.Join(cfg.Data.Dir, "history_data")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	s := scraper.NewRankingsScraper(cookies)
	for _, window := range windows {
		slog.Info("Scraping averages", "window", window)
		rows, err := s.Scrape(window)
		if err != nil {
			return fmt.Errorf("scraping window %d: %w", window, err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("no players scraped for window %d", window)
		}

		path := filepath.Join(outDir, fmt.Sprintf("current_%d.csv", window))
		if err := writeAverages(path, rows); err != nil {
			return err
		}
		slog.Info("Wrote averages", "path", path, "players", len(rows))
	}

	return nil
}

func parseWindows(raw string) ([]int, error) {
	if raw == "" {
		return stats.Windows, nil
	}
	valid := make(map[int]bool, len(stats.Windows))
	for _, w := range stats.Windows {
		valid[w] = true
	}

	var windows []int
	for _, part := range strings.Split(raw, ",") {
		w, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid window %q: %w", part, err)
		}
		if !valid[w] {
			return nil, fmt.Errorf("unsupported window %d, want one of %v", w, stats.Windows)
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func writeAverages(path string, rows []scraper.PlayerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(scraper.AverageColumns); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, 0, len(scraper.AverageColumns))
		record = append(record, row.Player, row.Team)
		for _, col := range scraper.AverageColumns[2:] {
			record = append(record, strconv.FormatFloat(row.Stats[col], 'f', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
