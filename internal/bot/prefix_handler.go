package bot

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands"
	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/metrics"
)

type commandFunc func(framework.Context, *commands.Deps) error

// handlers maps canonical command names to implementations. Shared by
// the slash dispatcher and the prefix router.
var handlers = map[string]commandFunc{
	"purge":        commands.PurgeCmd,
	"ban":          commands.BanCmd,
	"unban":        commands.UnbanCmd,
	"unbanall":     commands.UnbanAllCmd,
	"kick":         commands.KickCmd,
	"timeout":      commands.TimeoutCmd,
	"untimeout":    commands.UntimeoutCmd,
	"untimeoutall": commands.UntimeoutAllCmd,
	"timeoutlist":  commands.TimeoutListCmd,
	"banlist":      commands.BanListCmd,
	"mute":         commands.MuteCmd,
	"imute":        commands.IMuteCmd,
	"rmute":        commands.RMuteCmd,
	"unmute":       commands.UnmuteCmd,
	"lock":         commands.LockCmd,
	"unlock":       commands.UnlockCmd,
	"lockall":      commands.LockAllCmd,
	"unlockall":    commands.UnlockAllCmd,
	"hide":         commands.HideCmd,
	"unhide":       commands.UnhideCmd,
	"hideall":      commands.HideAllCmd,
	"unhideall":    commands.UnhideAllCmd,
	"hardlock":     commands.HardLockCmd,
	"unhardlock":   commands.UnhardLockCmd,
	"hardhide":     commands.HardHideCmd,
	"unhardhide":   commands.UnhardHideCmd,
	"uac":          commands.UnlockCategoryCmd,
	"prefix":       commands.PrefixCmd,
	"afk":          commands.AFKCmd,
	"inrole":       commands.InRoleCmd,
	"av":           commands.AvatarCmd,
	"avatar":       commands.AvatarCmd,
	"ui":           commands.UserInfoCmd,
	"userinfo":     commands.UserInfoCmd,
	"serverinfo":   commands.ServerInfoCmd,
	"mc":           commands.MemberCountCmd,
	"ping":         commands.PingCmd,
	"sr":           commands.StickyRoleCmd,
	"gw":           commands.GiveawayCmd,
	"help":         commands.HelpCmd,
}

// aliases maps every shorthand to its canonical name.
var aliases = map[string]string{
	"c": "purge", "clear": "purge",
	"b": "ban", "ub": "unban", "uba": "unbanall", "k": "kick",
	"to": "timeout", "t": "timeout",
	"uto": "untimeout",
	"uta": "untimeoutall", "untimeout_all": "untimeoutall",
	"massuntime": "untimeoutall", "massuntimeout": "untimeoutall",
	"tl": "timeoutlist", "timeouts": "timeoutlist", "timeout_list": "timeoutlist",
	"bl": "banlist", "bans": "banlist", "ban_list": "banlist",
	"m": "mute", "im": "imute", "imagemute": "imute",
	"rm": "rmute", "reactionmute": "rmute",
	"l": "lock", "ul": "unlock",
	"ulall": "unlockall", "ul_all": "unlockall", "unlock_all": "unlockall",
	"ula": "unlockall", "ua": "unlockall",
	"h": "hide", "uh": "unhide",
	"hall": "hideall", "h_all": "hideall",
	"uhall": "unhideall", "uh_all": "unhideall", "unhide_all": "unhideall", "reveal": "unhideall",
	"hl": "hardlock", "uhl": "unhardlock",
	"hh": "hardhide", "unhh": "unhardhide",
	"roles": "inrole",
	"pfp":   "av", "whois": "ui", "info": "ui",
	"guildinfo": "serverinfo", "si": "serverinfo",
	"stickyreactionrole": "sr",
	"giveaways":          "gw",
}

func canonical(name string) (string, bool) {
	if _, ok := handlers[name]; ok {
		return name, true
	}
	if c, ok := aliases[name]; ok {
		return c, true
	}
	return "", false
}

// parseInvocation splits a message into a canonical command and its
// arguments, or reports that the message is not a command.
func parseInvocation(content, prefix string) (string, []string, bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	parts := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(parts) == 0 {
		return "", nil, false
	}
	name, ok := canonical(strings.ToLower(parts[0]))
	if !ok {
		return "", nil, false
	}
	return name, parts[1:], true
}

func (b *Bot) MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	start := time.Now()
	defer metrics.ObserveEvent(start)

	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	prefix := b.Deps.State.Prefixes.Get(m.GuildID, b.Deps.Cfg.DefaultPrefix)
	name, args, isCommand := parseInvocation(m.Content, prefix)

	// AFK return and mention announcements run for every message. The
	// afk command itself must not count as a return.
	b.Deps.AFK.HandleMessage(s, m, isCommand && name == "afk")

	if !isCommand {
		return
	}
	ctx := framework.NewPrefixContext(s, m, args)
	b.runCommand(ctx, name)
}

// MessageUpdate re-dispatches an edited message as a fresh command
// invocation, so a typo in a command can be fixed in place.
func (b *Bot) MessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	start := time.Now()
	defer metrics.ObserveEvent(start)

	if m.Author == nil || m.Author.Bot || m.GuildID == "" || m.Content == "" {
		return
	}
	if m.BeforeUpdate != nil && m.BeforeUpdate.Content == m.Content {
		return
	}

	prefix := b.Deps.State.Prefixes.Get(m.GuildID, b.Deps.Cfg.DefaultPrefix)
	name, args, ok := parseInvocation(m.Content, prefix)
	if !ok {
		return
	}
	mc := &discordgo.MessageCreate{Message: m.Message}
	ctx := framework.NewPrefixContext(s, mc, args)
	b.runCommand(ctx, name)
}
