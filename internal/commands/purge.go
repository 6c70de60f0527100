package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

const (
	purgeDefault    = 50
	purgeMax        = 100
	purgeScanLimit  = 1000
	purgeNoticeTTL  = 3 * time.Second
	purgeSelfDelete = 500 * time.Millisecond
)

// PurgeCmd bulk-deletes recent messages, optionally only those from
// one user. The confirmation embed removes itself shortly after.
func PurgeCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "purge", discordgo.PermissionManageMessages); err != nil {
		return err
	}
	s := ctx.GetSession()
	channelID := ctx.GetChannelID()
	args := ctx.GetArgs()

	ctx.React("👍")
	if msg := ctx.GetMessage(); msg != nil {
		id := msg.ID
		d.Sched.After("purge-cmd-delete", purgeSelfDelete, func() {
			s.ChannelMessageDelete(channelID, id)
		})
	}

	amount := purgeDefault
	var target *discordgo.Member
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			if n <= 0 {
				return warn(ctx, "Amount must be greater than 0.")
			}
			if n > purgeMax {
				return warn(ctx, fmt.Sprintf("Amount cannot exceed %d messages.", purgeMax))
			}
			amount = n
			continue
		}
		if _, ok := moderation.ParseID(arg); ok {
			target = d.Resolver.Member(s, ctx.GetGuildID(), arg)
			if target == nil {
				return warn(ctx, "Could not find the specified user.")
			}
			continue
		}
		return warn(ctx, "Invalid arguments. Usage: `,c [amount]` or `,c [@user] [amount]`")
	}

	deleted, err := purgeMessages(s, channelID, amount, target)
	if err != nil {
		return warn(ctx, "I don't have permission to delete messages in this channel.")
	}

	body := fmt.Sprintf("%s %s: Deleted %d messages.", utils.EmojiTick, ctx.GetAuthor().Mention(), deleted)
	if target != nil {
		body = fmt.Sprintf("%s %s: Deleted %d messages from %s.", utils.EmojiTick, ctx.GetAuthor().Mention(), deleted, displayName(target))
	}
	msg, err := s.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Description: body,
		Color:       utils.ColorNeutral,
	})
	if err != nil {
		return err
	}
	s.MessageReactionAdd(channelID, msg.ID, "🗑️")
	d.Sched.After("purge-notice-delete", purgeNoticeTTL, func() {
		s.ChannelMessageDelete(channelID, msg.ID)
	})
	return nil
}

// purgeMessages collects candidate message IDs and bulk-deletes them.
// Filtering by author scans further back than the requested amount
// since matching messages may be interleaved with others.
func purgeMessages(s *discordgo.Session, channelID string, amount int, target *discordgo.Member) (int, error) {
	scan := amount
	if target != nil {
		scan = purgeScanLimit
	}

	var ids []string
	before := ""
	for len(ids) < amount && scan > 0 {
		limit := 100
		if target == nil && scan < limit {
			limit = scan
		}
		msgs, err := s.ChannelMessages(channelID, limit, before, "", "")
		if err != nil {
			return 0, err
		}
		if len(msgs) == 0 {
			break
		}
		for _, m := range msgs {
			if len(ids) >= amount {
				break
			}
			if target != nil && m.Author.ID != target.User.ID {
				continue
			}
			ids = append(ids, m.ID)
		}
		before = msgs[len(msgs)-1].ID
		scan -= len(msgs)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	deleted := 0
	for start := 0; start < len(ids); start += 100 {
		end := start + 100
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]
		if len(chunk) == 1 {
			if err := s.ChannelMessageDelete(channelID, chunk[0]); err != nil {
				return deleted, err
			}
		} else if err := s.ChannelMessagesBulkDelete(channelID, chunk); err != nil {
			return deleted, err
		}
		deleted += len(chunk)
	}
	return deleted, nil
}
