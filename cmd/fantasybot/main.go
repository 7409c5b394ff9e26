package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/api/espn"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/api/fantasy"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/bot"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/config"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/projection"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/repository/memory"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/scheduler"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/server"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/service"
	"github.com/d3dd2d/nba-fantasy-data-bot/internal/stats"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	espnClient := espn.NewClient(cfg.ESPNAPI)
	espnAPI := espn.NewAPI(espnClient)
	fantasyAPI := fantasy.NewAPI(espnAPI)

	resolver := projection.NewResolver(nil)
	engine := projection.NewEngine(resolver, nil, nil)
	store := stats.NewStore(cfg.Data.Dir, resolver)

	repo := memory.NewRepository()
	fantasyService := service.NewFantasyService(fantasyAPI, repo, store, engine)

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, fantasyService)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(fantasyService, telegramBot.SendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv := server.New(fantasyService)

	go func() {
		slog.Info("Starting HTTP server", "addr", cfg.HTTP.Addr)
		if err := http.ListenAndServe(cfg.HTTP.Addr, srv.Handler()); err != nil {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	return nil
}
