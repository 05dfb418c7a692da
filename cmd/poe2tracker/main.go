package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"poe2-ladder-tracker/internal/api/poe"
	"poe2-ladder-tracker/internal/config"
	"poe2-ladder-tracker/internal/ladder"
	"poe2-ladder-tracker/internal/notify"
	"poe2-ladder-tracker/internal/output"
	"poe2-ladder-tracker/internal/tracker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running tracker", "error", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("This product isn't affiliated with or endorsed by Grinding Gear Games in any way.")

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	configureLogging(cfg.Debug)

	mode, err := ladder.ParseMode(cfg.GameMode)
	if err != nil {
		return err
	}
	leagueName := ladder.LeagueName(mode, cfg.Seasonal)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	token, err := poe.RequestToken(ctx, cfg.Credentials.ClientID, cfg.Credentials.ClientSecret)
	if err != nil {
		slog.Error("Could not obtain OAuth token. Make sure you have registered your application.")
		slog.Error("Visit https://www.pathofexile.com/developer/docs/authorization for more information.")
		slog.Error("Run with --client-id and --client-secret, or set POE_CLIENT_ID and POE_CLIENT_SECRET.")
		return err
	}

	client := poe.NewClient(token)
	service := ladder.NewService(poe.NewAPI(client), cfg.Debug)
	writer := output.NewWriter(cfg.OutputPath)

	notifier, err := notify.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		return err
	}

	slog.Info("Starting PoE2 ladder tracker",
		"character", cfg.CharacterName,
		"gamemode", cfg.GameMode,
		"league", leagueName,
		"interval", cfg.Interval,
		"output", cfg.OutputPath)

	t := tracker.New(service, writer, notifier, cfg.CharacterName, leagueName, cfg.Interval)
	return t.Run(ctx)
}

func configureLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
