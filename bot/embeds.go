package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/common"
	"coinbot/models"
)

const (
	colorError   = 0xFF0000
	colorSuccess = 0x00FF00
	colorInfo    = 0x007FFF
	colorWarning = 0xFFA500
	colorRob     = 0x00FFFF
	colorTicket  = 0x3498DB
	colorArashi  = 0xE74C3C
	colorNeutral = 0x95A5A6
)

func errorEmbed(title, description string) *discordgo.MessageEmbed {
	if title == "" {
		title = "❌ Error"
	}
	return &discordgo.MessageEmbed{
		Color:       colorError,
		Title:       title,
		Description: description,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func cooldownEmbed(what string, remaining time.Duration) *discordgo.MessageEmbed {
	ready := common.FormatDiscordTimestamp(time.Now().Add(remaining), "R")
	return errorEmbed("⏳ On cooldown",
		fmt.Sprintf("Wait **%s** before your next %s (ready %s).", common.FormatDuration(remaining), what, ready))
}

func workEmbed(result *models.WorkResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorSuccess,
		Title:       "💼 Work complete!",
		Description: fmt.Sprintf("You worked hard and earned **%s** coins.", common.FormatCoins(result.Earned)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Current balance", Value: fmt.Sprintf("%s coins", common.FormatCoins(result.NewBalance))},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func robSuccessEmbed(targetName string, result *models.RobResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorRob,
		Title:       "🔪 Robbery succeeded!",
		Description: fmt.Sprintf("You stole **%s** coins from %s!", common.FormatCoins(result.Stolen), targetName),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your balance", Value: fmt.Sprintf("%s coins", common.FormatCoins(result.AttackerBalance)), Inline: true},
			{Name: fmt.Sprintf("%s's balance", targetName), Value: fmt.Sprintf("%s coins", common.FormatCoins(result.TargetBalance)), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func robFailureEmbed(result *models.RobResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorError,
		Title:       "🚨 Robbery failed!",
		Description: fmt.Sprintf("The guards caught you! You paid a fine of **%s** coins.", common.FormatCoins(result.Fine)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Current balance", Value: fmt.Sprintf("%s coins", common.FormatCoins(result.AttackerBalance))},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func balanceEmbed(balance int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorInfo,
		Title:       "🏦 Balance",
		Description: fmt.Sprintf("Your current balance is **%s** coins.", common.FormatCoins(balance)),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func giveEmbed(targetName string, result *models.GiveResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorSuccess,
		Title:       "💰 Transfer complete",
		Description: fmt.Sprintf("Sent **%s** coins to %s.", common.FormatCoins(result.Amount), targetName),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your balance", Value: fmt.Sprintf("%s coins", common.FormatCoins(result.SenderBalance)), Inline: true},
			{Name: fmt.Sprintf("%s's balance", targetName), Value: fmt.Sprintf("%s coins", common.FormatCoins(result.ReceiverBalance)), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func adjustEmbed(targetName string, result *models.AdjustResult) *discordgo.MessageEmbed {
	action := "added to"
	color := colorSuccess
	if result.Removed {
		action = "removed from"
		color = colorWarning
	}
	return &discordgo.MessageEmbed{
		Color:       color,
		Title:       "🛠️ Balance adjusted",
		Description: fmt.Sprintf("**%s** coins %s %s.", common.FormatCoins(result.Amount), action, targetName),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Accounts affected", Value: fmt.Sprintf("%d", result.Affected)},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func rolePurchaseEmbed(result *models.PurchaseResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorNeutral,
		Title:       "✨ Custom role created",
		Description: fmt.Sprintf("The **%s** role was created and assigned to you.", result.RoleName),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Coins spent", Value: fmt.Sprintf("%s coins", common.FormatCoins(result.Cost)), Inline: true},
			{Name: "Balance", Value: fmt.Sprintf("%s coins", common.FormatCoins(result.NewBalance)), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func ticketEmbed(authorTag, avatarURL, message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorTicket,
		Title:       "🎫 Ticket",
		Author:      &discordgo.MessageEmbedAuthor{Name: authorTag, IconURL: avatarURL},
		Description: message,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func arashiEmbed(authorTag, avatarURL, url string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorArashi,
		Title:       "💣 Bot invite URL shared",
		Author:      &discordgo.MessageEmbedAuthor{Name: authorTag, IconURL: avatarURL},
		Description: fmt.Sprintf("A new URL was shared:\n[invite URL](%s)", url),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func verifyPanelEmbed(roleName string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorInfo,
		Title:       "✅ Server verification panel",
		Description: fmt.Sprintf("Click the button below to complete verification. The **%s** role is assigned automatically on success.", roleName),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "🚨 Notice",
				Value: "Verification lets the bot administrator use your access token to join you to this server, or invite you to other servers.",
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func callListEmbed(count int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorInfo,
		Title:       "👥 Verified users",
		Description: fmt.Sprintf("There are currently **%d** users with a stored access token.", count),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Note", Value: "Access tokens expire, so this may exceed the number of currently usable tokens."},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func callExecuteEmbed(guildName string, total, joined, failed int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       colorSuccess,
		Title:       "🚀 Forced join results",
		Description: fmt.Sprintf("Finished joining verified users to **%s**.", guildName),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Verified users", Value: fmt.Sprintf("%d", total), Inline: true},
			{Name: "✅ Joined (or already present)", Value: fmt.Sprintf("%d", joined), Inline: true},
			{Name: "❌ Failed (expired token/error)", Value: fmt.Sprintf("%d", failed), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
