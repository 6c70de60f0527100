package commands

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

// notice sends the flat dark embed used for almost every command reply.
func notice(ctx framework.Context, text string) error {
	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Description: text,
		Color:       utils.ColorNeutral,
	})
	return err
}

// warn prefixes the caller mention the way moderation replies do.
func warn(ctx framework.Context, text string) error {
	return notice(ctx, utils.EmojiWarn+" "+ctx.GetAuthor().Mention()+": "+text)
}

func mentioned(ctx framework.Context, text string) error {
	return notice(ctx, ctx.GetAuthor().Mention()+": "+text)
}

// requirePerm gates a command on a guild permission bit.
func requirePerm(ctx framework.Context, command string, perm int64) error {
	m := ctx.GetMember()
	if m == nil || !moderation.HasPermission(ctx.GetSession(), ctx.GetGuildID(), m, perm) {
		return NoPermission(command)
	}
	return nil
}

// restOf joins args from index i, used for trailing free-form reasons.
func restOf(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return strings.Join(args[i:], " ")
}

func displayName(m *discordgo.Member) string {
	if m == nil {
		return ""
	}
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		if m.User.GlobalName != "" {
			return m.User.GlobalName
		}
		return m.User.Username
	}
	return ""
}

func orNoReason(reason string) string {
	if reason == "" {
		return "No reason"
	}
	return reason
}
