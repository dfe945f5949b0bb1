package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) registerCommands() error {
	adminPerms := int64(discordgo.PermissionAdministrator)
	manageChannels := int64(discordgo.PermissionManageChannels)

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "economy",
			Description: "Server economy commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "work",
					Description: "Work to earn coins (once per hour)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "rob",
					Description: "Try to rob coins from another member",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "target",
							Description: "Member to rob",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "balance",
					Description: "Check your current balance",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "give",
					Description: "Give coins to another member",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "target",
							Description: "Member to give coins to",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Amount of coins to give",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "role-add",
					Description: "Buy a custom role for 10,000 coins",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Name of the role to create",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "color",
							Description: "Role color as a hex code, e.g. #FF0000",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add coins to a member or every holder of a role (admin only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionMentionable,
							Name:        "target",
							Description: "Member or role to add coins to",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Amount of coins to add",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove coins from a member or every holder of a role (admin only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionMentionable,
							Name:        "target",
							Description: "Member or role to remove coins from",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Amount of coins to remove",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "ticket",
			Description: "Send a ticket to the staff channel (once per hour)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "What you want to report",
					Required:    true,
				},
			},
		},
		{
			Name:        "arashi-teikyo",
			Description: "Share a bot invite URL with the community (once per hour)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "url",
					Description: "The invite URL to share",
					Required:    true,
				},
			},
		},
		{
			Name:                     "verify-panel",
			Description:              "Post the OAuth2 verification panel in this channel",
			DefaultMemberPermissions: &manageChannels,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to grant after successful verification",
					Required:    true,
				},
			},
		},
		{
			Name:                     "call",
			Description:              "Manage verified users (admin only)",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "execute",
					Description: "Join every verified user to this server (once per hour)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show how many verified users are stored",
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "economy":
		b.handleEconomyCommand(s, i)
	case "ticket":
		b.handleTicket(s, i)
	case "arashi-teikyo":
		b.handleArashi(s, i)
	case "verify-panel":
		b.handleVerifyPanel(s, i)
	case "call":
		b.handleCallCommand(s, i)
	}
}
