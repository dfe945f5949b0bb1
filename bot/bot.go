package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"coinbot/service"
)

// Config holds bot configuration
type Config struct {
	Token           string
	ClientID        string
	GuildID         string
	TicketChannelID string
	ArashiChannelID string
	// OAuthRedirectURI is where the verify panel sends members. Empty
	// disables the verify panel and forced-join commands.
	OAuthRedirectURI string
}

type Bot struct {
	config      Config
	session     *discordgo.Session
	economy     service.EconomyService
	credentials service.CredentialStore
}

func New(config Config, economy service.EconomyService, credentials service.CredentialStore) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:      config,
		session:     dg,
		economy:     economy,
		credentials: credentials,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// CreateAndAssignRole creates a new guild role with the given name and
// hex color and assigns it to the member. A leading '#' on the color is
// optional.
func (b *Bot) CreateAndAssignRole(ctx context.Context, guildID, userID, name, color string) error {
	params := &discordgo.RoleParams{Name: name}
	if color != "" {
		value, err := strconv.ParseInt(strings.TrimPrefix(color, "#"), 16, 32)
		if err != nil {
			return fmt.Errorf("invalid role color %q: %w", color, err)
		}
		colorInt := int(value)
		params.Color = &colorInt
	}

	role, err := b.session.GuildRoleCreate(guildID, params, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	if err := b.session.GuildMemberRoleAdd(guildID, userID, role.ID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to assign role %s: %w", role.ID, err)
	}

	return nil
}

// JoinGuild adds a user to a guild using their OAuth2 access token,
// optionally assigning roles in the same call. Used by the verify flow
// and by forced joins.
func (b *Bot) JoinGuild(ctx context.Context, guildID, userID, accessToken string, roleIDs []string) error {
	err := b.session.GuildMemberAdd(guildID, userID, &discordgo.GuildMemberAddParams{
		AccessToken: accessToken,
		Roles:       roleIDs,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to add member %s to guild %s: %w", userID, guildID, err)
	}
	return nil
}

// AssignRole grants an existing role to a guild member. The verify flow
// falls back to this when the member is already in the guild.
func (b *Bot) AssignRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := b.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to assign role %s: %w", roleID, err)
	}
	return nil
}
