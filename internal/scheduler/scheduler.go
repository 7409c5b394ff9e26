package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/service"
)

type Scheduler struct {
	s              gocron.Scheduler
	fantasyService *service.FantasyService
	sendMessage    func(string) error
}

func NewScheduler(fantasyService *service.FantasyService, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation("US/Pacific")
	if err != nil {
		slog.Error("Failed to load location", "error", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:              s,
		fantasyService: fantasyService,
		sendMessage:    sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Reload averages and schedules after the nightly scrape - daily 00:05 PT
	_, err = s.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 5, 0))),
		gocron.NewTask(s.reloadStats),
	)
	if err != nil {
		return fmt.Errorf("failed to create stats reload job: %w", err)
	}

	// Matchup projections - Monday 7:30 PT
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendMatchups),
	)
	if err != nil {
		return fmt.Errorf("failed to create matchups job: %w", err)
	}

	// Current standings - Wednesday 7:30 PT
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Wednesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendStandings),
	)
	if err != nil {
		return fmt.Errorf("failed to create standings job: %w", err)
	}

	// Players to Monitor report - Sunday 7:30 PT
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendPlayersToMonitor),
	)
	if err != nil {
		return fmt.Errorf("failed to create players to monitor job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) reloadStats() {
	s.fantasyService.ReloadStats()
	slog.Info("Reloaded player stats and schedules")
}

func (s *Scheduler) sendMatchups() {
	report, err := s.fantasyService.GetWeekMatchupsReport()
	if err != nil {
		slog.Error("Failed to get matchup projections", "error", err)
		return
	}
	s.sendMessage(report)
}

func (s *Scheduler) sendStandings() {
	standings, err := s.fantasyService.GetStandings()
	if err != nil {
		slog.Error("Failed to get standings", "error", err)
		return
	}
	s.sendMessage(standings)
}

func (s *Scheduler) sendPlayersToMonitor() {
	report, err := s.fantasyService.GetPlayersToMonitor()
	if err != nil {
		slog.Error("Failed to get players to monitor", "error", err)
		return
	}
	s.sendMessage(report)
}
