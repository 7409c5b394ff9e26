// Command schedulescraper pulls the NBA schedule for one or more fantasy
// weeks from nba.com and writes each week to DATA_DIR/weekly_schedule/w{n}.csv
// in the layout the stats store reads back: date labels down the first
// column, one column per team, 1 where the team plays.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/config"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/scraper"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/week"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error scraping schedule", "error", err)
		os.Exit(1)
	}
}

func run() error {
	fromWeek := flag.Int("from", 0, "first fantasy week to scrape (defaults to the current week)")
	toWeek := flag.Int("to", 0, "last fantasy week to scrape (defaults to -from)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	if *fromWeek == 0 {
		current, ok := week.Find(time.Now())
		if !ok {
			return fmt.Errorf("no fantasy week covers today, pass -from explicitly")
		}
		*fromWeek = current
	}
	if *toWeek == 0 {
		*toWeek = *fromWeek
	}
	if *toWeek < *fromWeek {
		return fmt.Errorf("invalid week range w%d..w%d", *fromWeek, *toWeek)
	}

	outDir := filepath.Join(cfg.Data.Dir, "weekly_schedule")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	s := scraper.NewScheduleScraper()
	for w := *fromWeek; w <= *toWeek; w++ {
		r, ok := week.WeekRange(w)
		if !ok {
			return fmt.Errorf("unknown fantasy week w%d", w)
		}

		dates := week.Labels(r)
		slog.Info("Scraping week", "week", w, "start", dates[0], "end", dates[len(dates)-1])

		games, errs := s.ScrapeWeek(dates)
		for _, scrapeErr := range errs {
			slog.Warn("Team scrape failed", "error", scrapeErr)
		}
		if len(games) == 0 {
			return fmt.Errorf("no schedule data scraped for w%d", w)
		}

		path := filepath.Join(outDir, fmt.Sprintf("w%d.csv", w))
		if err := writeWeek(path, dates, games); err != nil {
			return err
		}
		slog.Info("Wrote schedule", "path", path)
	}

	return nil
}

func writeWeek(path string, dates []string, games map[string]map[string]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	teams := scraper.TeamAbbrevs()
	w := csv.NewWriter(f)

	header := make([]string, 0, len(teams)+1)
	header = append(header, "")
	header = append(header, teams...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, date := range dates {
		row := make([]string, 0, len(teams)+1)
		row = append(row, date)
		for _, team := range teams {
			row = append(row, strconv.Itoa(games[date][team]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
