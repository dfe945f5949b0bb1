package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration, loaded from the
// environment.
type Config struct {
	// Discord
	DiscordToken    string `env:"DISCORD_TOKEN"`
	ClientID        string `env:"CLIENT_ID"`
	GuildID         string `env:"GUILD_ID"`
	TicketChannelID string `env:"TICKET_CHANNEL_ID"`
	ArashiChannelID string `env:"ARASHI_CHANNEL_ID"`

	// OAuth2 verify flow
	OAuthClientSecret string `env:"OAUTH2_CLIENT_SECRET"`
	OAuthRedirectURI  string `env:"OAUTH2_REDIRECT_URI"`

	// HTTP server
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8000"`

	// Persistence: empty DatabaseURL selects the in-memory ledger,
	// which is wiped at every UTC midnight. A Postgres URL selects the
	// durable ledger, where the daily reset does not apply.
	DatabaseURL string `env:"DATABASE_URL"`

	// Environment: "development", "production" or "test"
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

// Load parses and validates configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Environment != "test" {
		if cfg.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if cfg.ClientID == "" {
			return nil, fmt.Errorf("CLIENT_ID is required")
		}
	}

	return &cfg, nil
}

// MemoryBacked reports whether the in-memory ledger (and therefore the
// daily reset) is active.
func (c *Config) MemoryBacked() bool {
	return c.DatabaseURL == ""
}
