package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"coinbot/bot/common"
	"coinbot/models"
)

func (b *Bot) handleTicket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := i.Member.User.ID

	if b.config.TicketChannelID == "" {
		b.respondError(s, i, errorEmbed("", "The ticket channel is not configured on this server."))
		return
	}

	remaining, err := b.economy.ActionRemaining(ctx, userID, models.ActionTicket)
	if err != nil {
		log.Errorf("Error checking ticket cooldown for %s: %v", userID, err)
		b.respondError(s, i, errorEmbed("", "Unable to process the ticket right now. Please try again."))
		return
	}
	if remaining > 0 {
		b.respondError(s, i, cooldownEmbed("ticket", remaining))
		return
	}

	var message string
	if opts := i.ApplicationCommandData().Options; len(opts) > 0 {
		message = opts[0].StringValue()
	}

	embed := ticketEmbed(i.Member.User.Username, i.Member.User.AvatarURL(""), message)
	if _, err := s.ChannelMessageSendEmbed(b.config.TicketChannelID, embed); err != nil {
		log.Errorf("Error sending ticket to channel %s: %v", b.config.TicketChannelID, err)
		b.respondError(s, i, errorEmbed("", "Unable to deliver the ticket. Please try again."))
		return
	}

	// The cooldown starts only once the ticket actually reached the
	// staff channel.
	if err := b.economy.MarkActionUsed(ctx, userID, models.ActionTicket); err != nil {
		log.Errorf("Error marking ticket cooldown for %s: %v", userID, err)
	}

	confirm := &discordgo.MessageEmbed{
		Color:       colorSuccess,
		Title:       "📨 Ticket sent",
		Description: "Your ticket was delivered to the staff. You can send another in 1 hour.",
	}
	if err := common.RespondWithEmbed(s, i, confirm, true); err != nil {
		log.Errorf("Error responding to ticket command: %v", err)
	}
}

func (b *Bot) handleArashi(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := i.Member.User.ID

	if b.config.ArashiChannelID == "" {
		b.respondError(s, i, errorEmbed("", "The sharing channel is not configured on this server."))
		return
	}

	remaining, err := b.economy.ActionRemaining(ctx, userID, models.ActionArashi)
	if err != nil {
		log.Errorf("Error checking arashi cooldown for %s: %v", userID, err)
		b.respondError(s, i, errorEmbed("", "Unable to share the URL right now. Please try again."))
		return
	}
	if remaining > 0 {
		b.respondError(s, i, cooldownEmbed("share", remaining))
		return
	}

	var url string
	if opts := i.ApplicationCommandData().Options; len(opts) > 0 {
		url = opts[0].StringValue()
	}

	embed := arashiEmbed(i.Member.User.Username, i.Member.User.AvatarURL(""), url)
	if _, err := s.ChannelMessageSendEmbed(b.config.ArashiChannelID, embed); err != nil {
		log.Errorf("Error sending URL to channel %s: %v", b.config.ArashiChannelID, err)
		b.respondError(s, i, errorEmbed("", "Unable to share the URL. Please try again."))
		return
	}

	if err := b.economy.MarkActionUsed(ctx, userID, models.ActionArashi); err != nil {
		log.Errorf("Error marking arashi cooldown for %s: %v", userID, err)
	}

	confirm := &discordgo.MessageEmbed{
		Color:       colorSuccess,
		Title:       "📨 URL shared",
		Description: "Your URL was posted. You can share another in 1 hour.",
	}
	if err := common.RespondWithEmbed(s, i, confirm, true); err != nil {
		log.Errorf("Error responding to arashi command: %v", err)
	}
}
