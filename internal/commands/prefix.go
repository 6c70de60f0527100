package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

const prefixMaxLen = 5

// PrefixCmd shows the guild prefix, or changes it for administrators.
func PrefixCmd(ctx framework.Context, d *Deps) error {
	args := ctx.GetArgs()
	guildID := ctx.GetGuildID()

	if len(args) == 0 {
		current := d.State.Prefixes.Get(guildID, d.Cfg.DefaultPrefix)
		return mentioned(ctx, fmt.Sprintf("Server Prefix: `%s`", current))
	}

	if requirePerm(ctx, "prefix", discordgo.PermissionAdministrator) != nil {
		return warn(ctx, "You need Administrator permission to change the prefix.")
	}

	newPrefix := args[0]
	if len(newPrefix) > prefixMaxLen {
		return warn(ctx, fmt.Sprintf("Prefix must be %d characters or less.", prefixMaxLen))
	}
	d.State.Prefixes.Set(guildID, newPrefix)
	return notice(ctx, fmt.Sprintf("%s %s: Bot prefix changed to `%s`", utils.EmojiTick, ctx.GetAuthor().Mention(), newPrefix))
}
