package commands

import (
	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
)

var Help = &discordgo.ApplicationCommand{
	Name:        "help",
	Description: "Show available commands",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "command",
			Description: "Specific command to get help for",
			Required:    false,
		},
	},
}

func HelpCmd(ctx framework.Context, d *Deps) error {
	args := ctx.GetArgs()
	if len(args) > 0 {
		if _, ok := usages[args[0]]; ok {
			_, err := ctx.ReplyEmbed(HelpEmbed(ctx.GetSession(), args[0], "Command usage:"))
			return err
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Bot Commands",
		Description: "Select a category below to view commands.",
		Color:       0x2b2d31,
	}
	menu := discordgo.SelectMenu{
		CustomID:    "help_category_select",
		Placeholder: "Select a category",
		Options: []discordgo.SelectMenuOption{
			{
				Label:       "Moderation",
				Value:       "help_moderation",
				Description: "Timeouts, bans, kicks, mutes",
			},
			{
				Label:       "Lists",
				Value:       "help_lists",
				Description: "Interactive moderation lists",
			},
			{
				Label:       "Lockdown",
				Value:       "help_lockdown",
				Description: "Channel locking and hiding",
			},
			{
				Label:       "Utility",
				Value:       "help_utility",
				Description: "Server info and general utilities",
			},
			{
				Label:       "Community",
				Value:       "help_community",
				Description: "Giveaways, AFK, reaction roles",
			},
		},
	}
	return ctx.ReplyComponent(embed, []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{menu},
		},
	})
}

// HandleHelpSelect answers the help category menu.
func HandleHelpSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	if len(data.Values) == 0 {
		return
	}

	var embed *discordgo.MessageEmbed
	switch data.Values[0] {
	case "help_moderation":
		embed = &discordgo.MessageEmbed{
			Title: "Moderation Commands",
			Color: 0x2b2d31,
			Fields: []*discordgo.MessageEmbedField{
				{Name: ",timeout <user> (duration) (reason)", Value: "Time a member out (default 5m)"},
				{Name: ",untimeout <user>", Value: "Lift a member's timeout"},
				{Name: ",untimeoutall", Value: "Lift every active timeout"},
				{Name: ",ban <user> (reason)", Value: "Ban a member"},
				{Name: ",unban <user>", Value: "Unban a user by ID or mention"},
				{Name: ",unbanall", Value: "Unban everyone"},
				{Name: ",kick <user> (reason)", Value: "Kick a member"},
				{Name: ",mute / ,imute / ,rmute <user>", Value: "Role-based text, image, and reaction mutes"},
				{Name: ",unmute <user>", Value: "Remove all mute roles"},
				{Name: ",purge (amount) (@user)", Value: "Bulk delete recent messages"},
			},
		}
	case "help_lists":
		embed = &discordgo.MessageEmbed{
			Title: "List Commands",
			Color: 0x2b2d31,
			Fields: []*discordgo.MessageEmbedField{
				{Name: ",tl", Value: "Timed-out members with untimeout buttons"},
				{Name: ",bl", Value: "Banned users with unban buttons"},
				{Name: ",inrole <role>", Value: "Members holding a role"},
			},
		}
	case "help_lockdown":
		embed = &discordgo.MessageEmbed{
			Title: "Lockdown Commands",
			Color: 0x2b2d31,
			Fields: []*discordgo.MessageEmbedField{
				{Name: ",lock / ,unlock (duration)", Value: "Lock or unlock the current channel"},
				{Name: ",lockall / ,unlockall", Value: "Lock or unlock every text channel"},
				{Name: ",hide / ,unhide (duration)", Value: "Hide or reveal the current channel"},
				{Name: ",hideall / ,unhideall", Value: "Hide or reveal every text channel"},
				{Name: ",hardlock / ,unhardlock", Value: "Deny sends for every role and member, then restore"},
				{Name: ",hardhide / ,unhardhide", Value: "Hide from every role and member, then restore"},
				{Name: ",uac <category>", Value: "Unlock all voice channels in a category"},
			},
		}
	case "help_utility":
		embed = &discordgo.MessageEmbed{
			Title: "Utility Commands",
			Color: 0x2b2d31,
			Fields: []*discordgo.MessageEmbedField{
				{Name: ",ui (@user)", Value: "User info"},
				{Name: ",av (@user)", Value: "User avatar"},
				{Name: ",serverinfo", Value: "Server overview"},
				{Name: ",mc", Value: "Member counts and activity"},
				{Name: ",ping", Value: "Latency and cache stats"},
				{Name: ",prefix (new)", Value: "Show or change the server prefix"},
			},
		}
	case "help_community":
		embed = &discordgo.MessageEmbed{
			Title: "Community Commands",
			Color: 0x2b2d31,
			Fields: []*discordgo.MessageEmbedField{
				{Name: ",gw start <duration> <prize>", Value: "Start a giveaway"},
				{Name: ",gw list", Value: "Show active giveaways"},
				{Name: ",afk (reason)", Value: "Set a global or server AFK status"},
				{Name: ",sr add/remove/list", Value: "Sticky reaction roles"},
			},
		}
	default:
		return
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}
