package commands

import (
	"github.com/bwmarrin/discordgo"
)

func userOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: "Target user",
		Required:    required,
	}
}

func reasonOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "reason",
		Description: "Reason shown in the audit log and DM",
		Required:    false,
	}
}

var Timeout = &discordgo.ApplicationCommand{
	Name:        "timeout",
	Description: "Time a member out",
	Options: []*discordgo.ApplicationCommandOption{
		userOption(true),
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duration",
			Description: "Duration (e.g. 30s, 10m, 1h, 1d), default 5m",
			Required:    false,
		},
		reasonOption(),
	},
}

var Untimeout = &discordgo.ApplicationCommand{
	Name:        "untimeout",
	Description: "Lift a member's timeout",
	Options:     []*discordgo.ApplicationCommandOption{userOption(true)},
}

var UntimeoutAll = &discordgo.ApplicationCommand{
	Name:        "untimeoutall",
	Description: "Lift every active timeout in the server",
}

var Ban = &discordgo.ApplicationCommand{
	Name:        "ban",
	Description: "Ban a member",
	Options:     []*discordgo.ApplicationCommandOption{userOption(true), reasonOption()},
}

var Unban = &discordgo.ApplicationCommand{
	Name:        "unban",
	Description: "Unban a user",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "user",
			Description: "User ID or mention",
			Required:    true,
		},
		reasonOption(),
	},
}

var Kick = &discordgo.ApplicationCommand{
	Name:        "kick",
	Description: "Kick a member",
	Options:     []*discordgo.ApplicationCommandOption{userOption(true), reasonOption()},
}

var TimeoutList = &discordgo.ApplicationCommand{
	Name:        "timeoutlist",
	Description: "Show timed out members with untimeout buttons",
}

var BanList = &discordgo.ApplicationCommand{
	Name:        "banlist",
	Description: "Show banned users with unban buttons",
}

var Purge = &discordgo.ApplicationCommand{
	Name:        "purge",
	Description: "Bulk delete recent messages",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "amount",
			Description: "How many messages to delete (max 100)",
			Required:    false,
		},
		userOption(false),
	},
}

var Lock = &discordgo.ApplicationCommand{
	Name:        "lock",
	Description: "Lock the current channel",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duration",
			Description: "Auto-unlock after this long",
			Required:    false,
		},
	},
}

var Unlock = &discordgo.ApplicationCommand{
	Name:        "unlock",
	Description: "Unlock the current channel",
}

var Serverinfo = &discordgo.ApplicationCommand{
	Name:        "serverinfo",
	Description: "Show server information",
}

var Userinfo = &discordgo.ApplicationCommand{
	Name:        "userinfo",
	Description: "Show user information",
	Options:     []*discordgo.ApplicationCommandOption{userOption(false)},
}

var Avatar = &discordgo.ApplicationCommand{
	Name:        "avatar",
	Description: "Show a user's avatar",
	Options:     []*discordgo.ApplicationCommandOption{userOption(false)},
}

var MemberCount = &discordgo.ApplicationCommand{
	Name:        "mc",
	Description: "Show member counts and today's activity",
}

var Ping = &discordgo.ApplicationCommand{
	Name:        "ping",
	Description: "Check bot latency",
}

var Giveaway = &discordgo.ApplicationCommand{
	Name:        "gw",
	Description: "Manage giveaways",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "subcommand",
			Description: "start or list",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "start", Value: "start"},
				{Name: "list", Value: "list"},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "args",
			Description: "Arguments, e.g. \"30m Nitro Code\"",
			Required:    false,
		},
	},
}

// Commands is the full slash surface registered on startup. Prefix
// commands cover the rest.
var Commands = []*discordgo.ApplicationCommand{
	Timeout,
	Untimeout,
	UntimeoutAll,
	Ban,
	Unban,
	Kick,
	TimeoutList,
	BanList,
	Purge,
	Lock,
	Unlock,
	Serverinfo,
	Userinfo,
	Avatar,
	MemberCount,
	Ping,
	Giveaway,
	Help,
}
