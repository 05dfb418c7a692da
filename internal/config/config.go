package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"poe2-ladder-tracker/internal/ladder"
)

// Config holds everything a tracker run needs. It is built once at startup
// and never mutated afterwards.
type Config struct {
	CharacterName string
	GameMode      string
	Seasonal      bool
	Interval      time.Duration
	OutputPath    string
	Debug         bool

	Credentials Credentials
	Telegram    Telegram
}

// Credentials for the OAuth client-credentials exchange. Sourced from the
// environment (or .env), overridable by flags.
type Credentials struct {
	ClientID     string `envconfig:"POE_CLIENT_ID"`
	ClientSecret string `envconfig:"POE_CLIENT_SECRET"`
}

// Telegram settings for optional rank-change notifications. Env only; the
// notifier stays disabled unless both are set.
type Telegram struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"TELEGRAM_CHAT_ID"`
}

// Load parses command line arguments and the environment into a Config.
// args is the argument list without the program name. Missing credentials
// are not an error here: network access is validated by the token exchange.
func Load(args []string) (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c.Credentials); err != nil {
		return nil, fmt.Errorf("reading credentials from environment: %w", err)
	}
	if err := envconfig.Process("", &c.Telegram); err != nil {
		return nil, fmt.Errorf("reading telegram settings from environment: %w", err)
	}

	fs := flag.NewFlagSet("poe2tracker", flag.ContinueOnError)
	gamemode := fs.String("gamemode", "standard", "Game mode to check (standard, hc, ssf, hcssf)")
	seasonal := fs.Bool("seasonal-variant", false, "Track the current seasonal league instead of the permanent one")
	update := fs.Int("update", 60000, "Update interval in milliseconds")
	output := fs.String("output", "poe2_rank.txt", "Output file path")
	debug := fs.Bool("debug", false, "Enable debug logging")
	clientID := fs.String("client-id", "", "OAuth client ID for the PoE API")
	clientSecret := fs.String("client-secret", "", "OAuth client secret for the PoE API")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one character name argument, got %d", fs.NArg())
	}
	if _, err := ladder.ParseMode(*gamemode); err != nil {
		return nil, fmt.Errorf("invalid gamemode (expected standard, hc, ssf or hcssf): %w", err)
	}
	if *update < 0 {
		return nil, fmt.Errorf("update interval must not be negative, got %d", *update)
	}

	c.CharacterName = fs.Arg(0)
	c.GameMode = *gamemode
	c.Seasonal = *seasonal
	c.Interval = time.Duration(*update) * time.Millisecond
	c.OutputPath = *output
	c.Debug = *debug

	if *clientID != "" {
		c.Credentials.ClientID = *clientID
	}
	if *clientSecret != "" {
		c.Credentials.ClientSecret = *clientSecret
	}

	return &c, nil
}
