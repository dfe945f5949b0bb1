package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"coinbot/bot"
	"coinbot/config"
	"coinbot/database"
	"coinbot/service"
	"coinbot/store"
	"coinbot/web"
)

// deferredRoleCreator breaks the construction cycle between the economy
// service and the bot: the service is built first with this bridge, and
// the bot is plugged in once its Discord session is up.
type deferredRoleCreator struct {
	inner service.RoleCreator
}

func (d *deferredRoleCreator) CreateAndAssignRole(ctx context.Context, guildID, userID, name, color string) error {
	if d.inner == nil {
		return fmt.Errorf("role creation is not available yet")
	}
	return d.inner.CreateAndAssignRole(ctx, guildID, userID, name, color)
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting coinbot...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Select the ledger backend. No DATABASE_URL means the in-memory
	// ledger, which is wiped at every UTC midnight.
	var (
		accountStore    service.AccountStore
		credentialStore service.CredentialStore
		db              *database.DB
	)
	if cfg.MemoryBacked() {
		log.Info("No DATABASE_URL set, using the in-memory ledger with daily reset")
		accountStore = store.NewMemoryAccountStore()
		credentialStore = store.NewMemoryCredentialStore()
	} else {
		log.Info("Connecting to database...")
		db, err = database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		log.Info("Database connection established successfully")

		accountStore = store.NewPostgresAccountStore(db)
		credentialStore = store.NewPostgresCredentialStore(db)
	}

	// Initialize services
	roleBridge := &deferredRoleCreator{}
	economy := service.NewEconomyService(accountStore, roleBridge)

	// The daily reset only applies to the in-memory ledger.
	if cfg.MemoryBacked() {
		worker := service.NewResetWorker(accountStore)
		stop := worker.Start(ctx)
		defer stop()
	}

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:            cfg.DiscordToken,
		ClientID:         cfg.ClientID,
		GuildID:          cfg.GuildID,
		TicketChannelID:  cfg.TicketChannelID,
		ArashiChannelID:  cfg.ArashiChannelID,
		OAuthRedirectURI: cfg.OAuthRedirectURI,
	}
	discordBot, err := bot.New(botConfig, economy, credentialStore)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	roleBridge.inner = discordBot
	log.Info("Discord bot initialized successfully")

	// Initialize HTTP server (verify callback + webhook)
	exchanger := web.NewOAuthClient(cfg.ClientID, cfg.OAuthClientSecret, cfg.OAuthRedirectURI)
	server := web.NewServer(cfg.HTTPAddr, economy, credentialStore, exchanger, discordBot)
	server.Start()

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error shutting down HTTP server: %v", err)
	}
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	log.Info("Shutdown completed")
	return nil
}
