package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"coinbot/bot/common"
	"coinbot/models"
)

func (b *Bot) handleEconomyCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "work":
		b.handleWork(s, i)
	case "rob":
		b.handleRob(s, i, options[0].Options)
	case "balance":
		b.handleBalance(s, i)
	case "give":
		b.handleGive(s, i, options[0].Options)
	case "role-add":
		b.handleRoleAdd(s, i, options[0].Options)
	case "add":
		b.handleAdjust(s, i, options[0].Options, false)
	case "remove":
		b.handleAdjust(s, i, options[0].Options, true)
	}
}

func (b *Bot) handleWork(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := i.Member.User.ID

	result, err := b.economy.Work(ctx, userID)
	if err != nil {
		var cooldownErr *models.CooldownError
		if errors.As(err, &cooldownErr) {
			b.respondError(s, i, cooldownEmbed("shift", cooldownErr.Remaining))
			return
		}
		log.Errorf("Error processing work for %s: %v", userID, err)
		b.respondError(s, i, errorEmbed("", "Unable to process work right now. Please try again."))
		return
	}

	if err := common.RespondWithEmbed(s, i, workEmbed(result), false); err != nil {
		log.Errorf("Error responding to work command: %v", err)
	}
}

func (b *Bot) handleRob(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	attackerID := i.Member.User.ID

	var target *discordgo.User
	for _, opt := range options {
		if opt.Name == "target" {
			target = opt.UserValue(s)
		}
	}
	if target == nil {
		b.respondError(s, i, errorEmbed("", "Invalid target."))
		return
	}

	result, err := b.economy.Rob(ctx, attackerID, target.ID, target.Bot)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSelfTarget):
			b.respondError(s, i, errorEmbed("", "You cannot rob yourself."))
		case errors.Is(err, models.ErrBotTarget):
			b.respondError(s, i, errorEmbed("", "You cannot rob a bot."))
		default:
			var cooldownErr *models.CooldownError
			var poorErr *models.TargetTooPoorError
			switch {
			case errors.As(err, &cooldownErr):
				b.respondError(s, i, cooldownEmbed("robbery", cooldownErr.Remaining))
			case errors.As(err, &poorErr):
				b.respondError(s, i, errorEmbed("", fmt.Sprintf(
					"%s only has **%s** coins. Targets need at least **%s** coins to be worth robbing.",
					target.Username, common.FormatCoins(poorErr.Balance), common.FormatCoins(poorErr.Threshold))))
			default:
				log.Errorf("Error processing rob %s -> %s: %v", attackerID, target.ID, err)
				b.respondError(s, i, errorEmbed("", "Unable to process robbery right now. Please try again."))
			}
		}
		return
	}

	if result.Success {
		// Ping the victim so they see the theft.
		err = common.RespondWithContentAndEmbed(s, i, "<@"+target.ID+">", robSuccessEmbed(target.Username, result))
	} else {
		err = common.RespondWithEmbed(s, i, robFailureEmbed(result), false)
	}
	if err != nil {
		log.Errorf("Error responding to rob command: %v", err)
	}
}

func (b *Bot) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := i.Member.User.ID

	balance, err := b.economy.Balance(ctx, userID)
	if err != nil {
		log.Errorf("Error fetching balance for %s: %v", userID, err)
		b.respondError(s, i, errorEmbed("", "Unable to retrieve balance. Please try again."))
		return
	}

	if err := common.RespondWithEmbed(s, i, balanceEmbed(balance), true); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func (b *Bot) handleGive(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	senderID := i.Member.User.ID

	var target *discordgo.User
	var amount int64
	for _, opt := range options {
		switch opt.Name {
		case "target":
			target = opt.UserValue(s)
		case "amount":
			amount = opt.IntValue()
		}
	}
	if target == nil {
		b.respondError(s, i, errorEmbed("", "Invalid target."))
		return
	}

	result, err := b.economy.Give(ctx, senderID, target.ID, target.Bot, amount)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSelfTarget):
			b.respondError(s, i, errorEmbed("", "You cannot give coins to yourself."))
		case errors.Is(err, models.ErrBotTarget):
			b.respondError(s, i, errorEmbed("", "You cannot give coins to a bot."))
		case errors.Is(err, models.ErrInvalidAmount):
			b.respondError(s, i, errorEmbed("", "Amount must be positive."))
		default:
			var insufficientErr *models.InsufficientBalanceError
			if errors.As(err, &insufficientErr) {
				b.respondError(s, i, errorEmbed("💸 Insufficient balance", fmt.Sprintf(
					"You have **%s** coins but tried to give **%s**.",
					common.FormatCoins(insufficientErr.Have), common.FormatCoins(insufficientErr.Need))))
				return
			}
			log.Errorf("Error processing give %s -> %s: %v", senderID, target.ID, err)
			b.respondError(s, i, errorEmbed("", "Unable to process transfer right now. Please try again."))
		}
		return
	}

	if err := common.RespondWithEmbed(s, i, giveEmbed(target.Username, result), false); err != nil {
		log.Errorf("Error responding to give command: %v", err)
	}
}

func (b *Bot) handleRoleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	userID := i.Member.User.ID

	var name, color string
	for _, opt := range options {
		switch opt.Name {
		case "name":
			name = opt.StringValue()
		case "color":
			color = opt.StringValue()
		}
	}

	// Role creation can take a moment, so defer first.
	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Error deferring role-add response: %v", err)
		return
	}

	result, err := b.economy.PurchaseRole(ctx, i.GuildID, userID, name, color)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidColor):
			common.FollowUpWithEmbed(s, i, errorEmbed("", "Invalid color. Use a 6-digit hex code like `#FF0000`."), true)
		default:
			var insufficientErr *models.InsufficientBalanceError
			if errors.As(err, &insufficientErr) {
				common.FollowUpWithEmbed(s, i, errorEmbed("💸 Insufficient balance", fmt.Sprintf(
					"A custom role costs **%s** coins but you only have **%s**.",
					common.FormatCoins(insufficientErr.Need), common.FormatCoins(insufficientErr.Have))), true)
				return
			}
			log.Errorf("Error purchasing role for %s: %v", userID, err)
			common.FollowUpWithEmbed(s, i, errorEmbed("", "Unable to create the role right now. Please try again."), true)
		}
		return
	}

	common.FollowUpWithEmbed(s, i, rolePurchaseEmbed(result), false)
}

func (b *Bot) handleAdjust(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption, remove bool) {
	ctx := context.Background()

	if i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		b.respondError(s, i, errorEmbed("🚫 Permission denied", "Only administrators can adjust balances."))
		return
	}

	var targetID string
	var amount int64
	for _, opt := range options {
		switch opt.Name {
		case "target":
			targetID = opt.Value.(string)
		case "amount":
			amount = opt.IntValue()
		}
	}

	targetIDs, targetName, err := b.resolveMentionable(s, i, targetID)
	if err != nil {
		if errors.Is(err, models.ErrBotTarget) {
			b.respondError(s, i, errorEmbed("", "Bots do not have balances."))
			return
		}
		log.Errorf("Error resolving adjust target %s: %v", targetID, err)
		b.respondError(s, i, errorEmbed("", "Unable to resolve the target. Please try again."))
		return
	}

	result, err := b.economy.AdminAdjust(ctx, targetIDs, amount, remove)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidAmount):
			b.respondError(s, i, errorEmbed("", "Amount must be positive."))
		case errors.Is(err, models.ErrNoTargets):
			b.respondError(s, i, errorEmbed("", "No members matched the target."))
		default:
			log.Errorf("Error adjusting balances for %v: %v", targetIDs, err)
			b.respondError(s, i, errorEmbed("", "Unable to adjust balances right now. Please try again."))
		}
		return
	}

	if err := common.RespondWithEmbed(s, i, adjustEmbed(targetName, result), false); err != nil {
		log.Errorf("Error responding to adjust command: %v", err)
	}
}

// resolveMentionable expands a mentionable option value into account
// IDs: a user resolves to itself, a role resolves to every non-bot
// holder in the guild.
func (b *Bot) resolveMentionable(s *discordgo.Session, i *discordgo.InteractionCreate, targetID string) ([]string, string, error) {
	resolved := i.ApplicationCommandData().Resolved
	if resolved != nil {
		if user, ok := resolved.Users[targetID]; ok {
			if user.Bot {
				return nil, "", models.ErrBotTarget
			}
			return []string{user.ID}, user.Username, nil
		}
		if role, ok := resolved.Roles[targetID]; ok {
			members, err := s.GuildMembers(i.GuildID, "", 1000)
			if err != nil {
				return nil, "", fmt.Errorf("failed to list guild members: %w", err)
			}
			var ids []string
			for _, member := range members {
				if member.User.Bot {
					continue
				}
				for _, roleID := range member.Roles {
					if roleID == role.ID {
						ids = append(ids, member.User.ID)
						break
					}
				}
			}
			return ids, "everyone with @"+role.Name, nil
		}
	}
	return nil, "", fmt.Errorf("target %s not present in resolved data", targetID)
}

func (b *Bot) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}
