package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"coinbot/bot/common"
	"coinbot/models"
	"coinbot/web"
)

func (b *Bot) handleVerifyPanel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.config.OAuthRedirectURI == "" {
		b.respondError(s, i, errorEmbed("", "Verification is not configured on this server."))
		return
	}

	var role *discordgo.Role
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "role" {
			role = opt.RoleValue(s, i.GuildID)
		}
	}
	if role == nil {
		b.respondError(s, i, errorEmbed("", "Invalid role."))
		return
	}

	state, err := web.EncodeVerifyState(web.VerifyState{GuildID: i.GuildID, RoleID: role.ID})
	if err != nil {
		log.Errorf("Error encoding verify state for guild %s: %v", i.GuildID, err)
		b.respondError(s, i, errorEmbed("", "Unable to build the verification panel. Please try again."))
		return
	}

	authURL := web.AuthorizeURL(b.config.ClientID, b.config.OAuthRedirectURI, state)

	// The panel is a normal channel message; the interaction response
	// is just an ephemeral confirmation for the moderator.
	_, err = s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{verifyPanelEmbed(role.Name)},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label: "Verify",
						Style: discordgo.LinkButton,
						URL:   authURL,
					},
				},
			},
		},
	})
	if err != nil {
		log.Errorf("Error posting verify panel in channel %s: %v", i.ChannelID, err)
		b.respondError(s, i, errorEmbed("", "Unable to post the verification panel. Please try again."))
		return
	}

	confirm := &discordgo.MessageEmbed{
		Color:       colorSuccess,
		Title:       "✅ Panel posted",
		Description: "The verification panel was posted in this channel.",
	}
	if err := common.RespondWithEmbed(s, i, confirm, true); err != nil {
		log.Errorf("Error responding to verify-panel command: %v", err)
	}
}

func (b *Bot) handleCallCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		b.respondError(s, i, errorEmbed("🚫 Permission denied", "Only administrators can use this command."))
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "execute":
		b.handleCallExecute(s, i)
	case "list":
		b.handleCallList(s, i)
	}
}

func (b *Bot) handleCallExecute(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := i.Member.User.ID

	remaining, err := b.economy.ActionRemaining(ctx, userID, models.ActionCallExecute)
	if err != nil {
		log.Errorf("Error checking call cooldown for %s: %v", userID, err)
		b.respondError(s, i, errorEmbed("", "Unable to run the forced join right now. Please try again."))
		return
	}
	if remaining > 0 {
		b.respondError(s, i, cooldownEmbed("forced join", remaining))
		return
	}

	creds, err := b.credentials.All(ctx)
	if err != nil {
		log.Errorf("Error listing credentials: %v", err)
		b.respondError(s, i, errorEmbed("", "Unable to load verified users. Please try again."))
		return
	}
	if len(creds) == 0 {
		b.respondError(s, i, errorEmbed("", "There are no verified users to join."))
		return
	}

	// Joining can take well over the 3-second interaction deadline.
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring call execute response: %v", err)
		return
	}

	joined, failed := 0, 0
	for _, cred := range creds {
		if err := b.JoinGuild(ctx, i.GuildID, cred.UserID, cred.AccessToken, nil); err != nil {
			log.Warnf("Forced join failed for user %s: %v", cred.UserID, err)
			failed++
			continue
		}
		joined++
	}

	if err := b.economy.MarkActionUsed(ctx, userID, models.ActionCallExecute); err != nil {
		log.Errorf("Error marking call cooldown for %s: %v", userID, err)
	}

	guildName := i.GuildID
	if guild, err := s.Guild(i.GuildID); err == nil {
		guildName = guild.Name
	}

	common.FollowUpWithEmbed(s, i, callExecuteEmbed(guildName, len(creds), joined, failed), true)
}

func (b *Bot) handleCallList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	count, err := b.credentials.Count(ctx)
	if err != nil {
		log.Errorf("Error counting credentials: %v", err)
		b.respondError(s, i, errorEmbed("", "Unable to count verified users. Please try again."))
		return
	}

	if err := common.RespondWithEmbed(s, i, callListEmbed(count), true); err != nil {
		log.Errorf("Error responding to call list command: %v", err)
	}
}
