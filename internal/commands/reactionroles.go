package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

var errUnbalancedQuotes = errors.New("unbalanced quotes")

// splitQuoted splits on whitespace while keeping double-quoted spans
// together, enough of shell splitting for the sr argument grammar.
func splitQuoted(s string) ([]string, error) {
	var out []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			if inQuote {
				out = append(out, cur.String())
				cur.Reset()
			}
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, errUnbalancedQuotes
	}
	flush()
	return out, nil
}

const srAddUsage = "Usage: `,sr add \"message content\" \"emoji\" \"role name\"`"

// StickyRoleCmd manages sticky reaction roles: messages whose
// reactions grant a role and re-grant it when the reaction returns.
func StickyRoleCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "sr", discordgo.PermissionManageRoles); err != nil {
		return err
	}
	args := ctx.GetArgs()
	if len(args) < 1 {
		return warn(ctx, "Unknown subcommand. Use 'add', 'remove', or 'list'.")
	}

	switch strings.ToLower(args[0]) {
	case "add":
		return stickyAdd(ctx, d, restOf(args, 1))
	case "remove":
		return stickyRemove(ctx, d, restOf(args, 1))
	case "list":
		return stickyList(ctx, d)
	default:
		return warn(ctx, "Unknown subcommand. Use 'add', 'remove', or 'list'.")
	}
}

func stickyAdd(ctx framework.Context, d *Deps, raw string) error {
	if raw == "" {
		return warn(ctx, srAddUsage)
	}
	parts, err := splitQuoted(raw)
	if err != nil {
		return warn(ctx, "Invalid quotes. "+srAddUsage)
	}
	if len(parts) != 3 {
		return warn(ctx, srAddUsage+"\nAll arguments must be in quotes.")
	}
	content, emoji, roleName := parts[0], parts[1], parts[2]

	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	role, err := findRoleByName(s, guildID, roleName)
	if err != nil {
		return err
	}
	if role == nil {
		return warn(ctx, fmt.Sprintf("Role '%s' not found.", roleName))
	}

	msg, err := s.ChannelMessageSendEmbed(ctx.GetChannelID(), &discordgo.MessageEmbed{
		Description: content,
		Color:       utils.ColorNeutral,
	})
	if err != nil {
		return err
	}
	if err := s.MessageReactionAdd(ctx.GetChannelID(), msg.ID, emoji); err != nil {
		return warn(ctx, "Invalid reaction emoji.")
	}

	d.State.ReactionRoles.Set(guildID, msg.ID, emoji, role.ID)
	return notice(ctx, utils.EmojiTick+" "+ctx.GetAuthor().Mention()+": Sticky reaction role set up successfully!")
}

func stickyRemove(ctx framework.Context, d *Deps, raw string) error {
	if raw == "" {
		return warn(ctx, "Usage: `,sr remove <message ID or link>`")
	}
	messageID := strings.TrimSpace(raw)
	if i := strings.LastIndex(messageID, "/"); i >= 0 {
		messageID = messageID[i+1:]
	}
	if _, ok := moderation.ParseID(messageID); !ok {
		return warn(ctx, "Invalid message ID.")
	}

	if !d.State.ReactionRoles.Remove(ctx.GetGuildID(), messageID) {
		return warn(ctx, "No sticky reaction role found for that message.")
	}
	return notice(ctx, utils.EmojiTick+" "+ctx.GetAuthor().Mention()+": Sticky reaction role removed successfully!")
}

func stickyList(ctx framework.Context, d *Deps) error {
	bindings := d.State.ReactionRoles.All(ctx.GetGuildID())
	if len(bindings) == 0 {
		return notice(ctx, "ℹ️ "+ctx.GetAuthor().Mention()+": No sticky reaction roles set up.")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Sticky Reaction Roles",
		Description: "Current sticky reaction roles:",
		Color:       utils.ColorNeutral,
	}
	for _, b := range bindings {
		roleName := "Unknown Role"
		if r, err := ctx.GetSession().State.Role(ctx.GetGuildID(), b.RoleID); err == nil {
			roleName = r.Name
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Message " + b.MessageID,
			Value: fmt.Sprintf("Reaction: %s → Role: %s", b.Emoji, roleName),
		})
	}
	_, err := ctx.ReplyEmbed(embed)
	return err
}
