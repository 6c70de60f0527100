package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

var giveawayHelp = "**Usage:** `,gw <subcommand> <args>`\n\n" +
	"**Subcommands:**\n" +
	"• `start <duration> <prize>` - Start a new giveaway\n" +
	"• `list` - Show active giveaways\n\n" +
	"**Duration Examples:**\n" +
	"• `30s`, `5m`, `2h`, `1d`, `1w`, `1mo`\n" +
	"• `30 seconds`, `5 minutes`, `2 hours`, `1 day`, `1 week`, `1 month`\n\n" +
	"**Examples:**\n" +
	"• `,gw start 30m Nitro Code`\n" +
	"• `,gw start 2h Discord Nitro`\n" +
	"• `,gw start 7d Amazon Gift Card`"

// GiveawayCmd dispatches the gw subcommands.
func GiveawayCmd(ctx framework.Context, d *Deps) error {
	args := ctx.GetArgs()
	if len(args) == 0 {
		_, err := ctx.ReplyEmbed(utils.NewNotice().
			Title(utils.EmojiGiveaway + " Giveaways Help").
			Body(giveawayHelp).
			Build())
		return err
	}

	switch strings.ToLower(args[0]) {
	case "start":
		return giveawayStart(ctx, d, args[1:])
	case "list":
		return giveawayList(ctx, d)
	default:
		return warn(ctx, "Unknown subcommand. Use 'start' or 'list'.")
	}
}

func giveawayStart(ctx framework.Context, d *Deps, args []string) error {
	if len(args) < 2 {
		return warn(ctx, "Usage: `,gw start <duration> <prize>`")
	}
	dur, ok := moderation.ParseFlexible(args[0])
	if !ok || dur <= 0 {
		return warn(ctx, "Invalid duration format. Examples: 30s, 5m, 2h, 1d, 1w, 1mo")
	}
	prize := strings.Join(args[1:], " ")

	hostName := displayName(ctx.GetMember())
	if hostName == "" {
		hostName = ctx.GetAuthor().Username
	}
	_, err := d.Giveaway.Start(ctx.GetSession(), ctx.GetGuildID(), ctx.GetChannelID(),
		ctx.GetAuthor().ID, hostName, prize, dur)
	return err
}

func giveawayList(ctx framework.Context, d *Deps) error {
	active := d.Giveaway.List(ctx.GetGuildID())
	if len(active) == 0 {
		return notice(ctx, "ℹ️ "+ctx.GetAuthor().Mention()+": No active giveaways.")
	}
	var lines []string
	for i, gw := range active {
		lines = append(lines, fmt.Sprintf("`%d.` **%s** ends <t:%d:R> in <#%s>",
			i+1, gw.Prize, gw.EndTime.Unix(), gw.ChannelID))
	}
	_, err := ctx.ReplyEmbed(utils.NewNotice().
		Title(utils.EmojiGiveaway + " Active Giveaways").
		Body(strings.Join(lines, "\n")).
		Footer(fmt.Sprintf("%d active • %s", len(active), time.Now().UTC().Format("3:04 PM"))).
		Build())
	return err
}
