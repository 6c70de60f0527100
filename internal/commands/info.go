package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

func targetMember(ctx framework.Context, d *Deps) *discordgo.Member {
	args := ctx.GetArgs()
	if len(args) > 0 {
		return d.Resolver.Member(ctx.GetSession(), ctx.GetGuildID(), args[0])
	}
	m := ctx.GetMember()
	if m != nil && m.User == nil {
		m.User = ctx.GetAuthor()
	}
	return m
}

// AvatarCmd shows a member's avatar at full size.
func AvatarCmd(ctx framework.Context, d *Deps) error {
	member := targetMember(ctx, d)
	if member == nil {
		return warn(ctx, "Could not find the specified user.")
	}
	url := member.User.AvatarURL("1024")
	if member.Avatar != "" {
		url = member.AvatarURL("1024")
	}
	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("[%s's avatar](%s)", displayName(member), url),
		Color:       utils.ColorNeutral,
		Image:       &discordgo.MessageEmbedImage{URL: url},
	}
	if _, err := ctx.ReplyEmbed(embed); err != nil {
		return err
	}
	ctx.React("👤")
	return nil
}

func humanizeSince(t time.Time) string {
	days := int(time.Since(t).Hours() / 24)
	switch {
	case days >= 365:
		n := days / 365
		return fmt.Sprintf("%d year%s ago", n, pluralS(n))
	case days >= 30:
		n := days / 30
		return fmt.Sprintf("%d month%s ago", n, pluralS(n))
	default:
		return fmt.Sprintf("%d day%s ago", days, pluralS(days))
	}
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

const dateFormat = "01/02/2006, 3:04 PM"

// UserInfoCmd shows account dates, roles, join position, and mutual
// servers for a member.
func UserInfoCmd(ctx framework.Context, d *Deps) error {
	member := targetMember(ctx, d)
	if member == nil {
		return warn(ctx, "Could not find the specified user.")
	}
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	created, _ := discordgo.SnowflakeTimestamp(member.User.ID)
	joined := member.JoinedAt

	var roleMentions []string
	for _, rid := range member.Roles {
		roleMentions = append(roleMentions, "<@&"+rid+">")
	}
	rolesStr := "None"
	if len(roleMentions) > 0 {
		rolesStr = strings.Join(roleMentions, ", ")
	}

	joinPos := "?"
	if members, err := moderation.AllMembers(s, guildID); err == nil {
		moderation.SortMembersByJoin(members)
		for i, m := range members {
			if m.User.ID == member.User.ID {
				joinPos = strconv.Itoa(i + 1)
				break
			}
		}
	}

	mutuals := 0
	for _, g := range s.State.Guilds {
		if _, err := s.State.Member(g.ID, member.User.ID); err == nil {
			mutuals++
		}
	}

	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("**%s** (%s)", displayName(member), member.User.ID),
		Color:       utils.ColorNeutral,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: member.User.AvatarURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Dates",
				Value: fmt.Sprintf("**Created:** %s (%s)\n**Joined:** %s (%s)",
					created.Format(dateFormat), humanizeSince(created),
					joined.Format(dateFormat), humanizeSince(joined)),
			},
			{
				Name:  fmt.Sprintf("Roles (%d)", len(member.Roles)),
				Value: rolesStr,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Join position: %s • %d mutual server%s", joinPos, mutuals, pluralS(mutuals)),
		},
	}
	if _, err := ctx.ReplyEmbed(embed); err != nil {
		return err
	}
	ctx.React("👤")
	return nil
}

var verificationNames = map[discordgo.VerificationLevel]string{
	discordgo.VerificationLevelNone:     "None",
	discordgo.VerificationLevelLow:      "Low",
	discordgo.VerificationLevelMedium:   "Medium",
	discordgo.VerificationLevelHigh:     "High",
	discordgo.VerificationLevelVeryHigh: "Very high",
}

func orNA(url string) string {
	if url == "" {
		return "N/A"
	}
	return url
}

// ServerInfoCmd renders the guild overview embed.
func ServerInfoCmd(ctx framework.Context, d *Deps) error {
	s := ctx.GetSession()
	g, err := s.Guild(ctx.GetGuildID())
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	created, _ := discordgo.SnowflakeTimestamp(g.ID)
	createdDays := int(now.Sub(created).Hours() / 24)

	owner := "Unknown"
	if g.OwnerID != "" {
		owner = "<@" + g.OwnerID + ">"
	}

	total := g.MemberCount
	humans, bots := 0, 0
	if members, err := moderation.AllMembers(s, g.ID); err == nil {
		total = len(members)
		for _, m := range members {
			if m.User.Bot {
				bots++
			} else {
				humans++
			}
		}
	}

	textCh, voiceCh, catCh := 0, 0, 0
	if channels, err := s.GuildChannels(g.ID); err == nil {
		for _, ch := range channels {
			switch ch.Type {
			case discordgo.ChannelTypeGuildText:
				textCh++
			case discordgo.ChannelTypeGuildVoice:
				voiceCh++
			case discordgo.ChannelTypeGuildCategory:
				catCh++
			}
		}
	}

	splash := "N/A"
	if g.Splash != "" {
		splash = discordgo.EndpointGuildSplash(g.ID, g.Splash)
	}
	icon := "N/A"
	if g.Icon != "" {
		icon = fmt.Sprintf("[Click here](%s)", g.IconURL(""))
	}

	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("**%s**\n\nServer created on %s (%d day%s ago)\n%s is on bot shard ID: **%d/%d**",
			g.Name, created.Format("January 02, 2006"), createdDays, pluralS(createdDays),
			g.Name, s.ShardID+1, max(s.ShardCount, 1)),
		Color:     utils.ColorNeutral,
		Timestamp: now.Format(time.RFC3339),
		Author:    &discordgo.MessageEmbedAuthor{Name: g.Name, IconURL: g.IconURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: owner, Inline: true},
			{Name: "Members", Value: fmt.Sprintf("Total: %d\nHumans: %d\nBots: %d", total, humans, bots), Inline: true},
			{Name: "Information", Value: fmt.Sprintf("Verification: %s\nBoosts: %d (level %d)",
				verificationNames[g.VerificationLevel], g.PremiumSubscriptionCount, g.PremiumTier), Inline: true},
			{Name: "Design", Value: fmt.Sprintf("Splash: %s\nBanner: %s\nIcon: %s",
				splash, orNA(g.BannerURL("")), icon), Inline: true},
			{Name: fmt.Sprintf("Channels (%d)", textCh+voiceCh+catCh),
				Value: fmt.Sprintf("Text: %d\nVoice: %d\nCategory: %d", textCh, voiceCh, catCh), Inline: true},
			{Name: "Counts", Value: fmt.Sprintf("Roles: %d/250\nEmojis: %d/100\nBoosters: %d",
				len(g.Roles), len(g.Emojis), g.PremiumSubscriptionCount), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Guild ID: %s • Today at %s", g.ID, now.Format("3:04 PM")),
		},
	}
	if g.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: g.IconURL("")}
	}
	if _, err := ctx.ReplyEmbed(embed); err != nil {
		return err
	}
	ctx.React("📋")
	return nil
}

// MemberCountCmd shows member totals plus today's activity counters.
func MemberCountCmd(ctx framework.Context, d *Deps) error {
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	members, err := moderation.AllMembers(s, guildID)
	if err != nil {
		return err
	}
	humans, bots := 0, 0
	for _, m := range members {
		if m.User.Bot {
			bots++
		} else {
			humans++
		}
	}
	messages, joins := d.Tracker.Counts(guildID)

	embed := &discordgo.MessageEmbed{
		Color: utils.ColorNeutral,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Users", Value: fmt.Sprintf("**%d**", len(members)), Inline: true},
			{Name: "Humans", Value: fmt.Sprintf("**%d**", humans), Inline: true},
			{Name: "Bots", Value: fmt.Sprintf("**%d**", bots), Inline: true},
			{Name: "Messages today", Value: fmt.Sprintf("**%d**", messages), Inline: true},
			{Name: "Joins today", Value: fmt.Sprintf("**%d**", joins), Inline: true},
		},
	}
	author := &discordgo.MessageEmbedAuthor{Name: s.State.User.Username + " statistics"}
	if g, err := s.State.Guild(guildID); err == nil && g.Icon != "" {
		author.IconURL = g.IconURL("")
	}
	embed.Author = author
	_, err = ctx.ReplyEmbed(embed)
	return err
}

// PingCmd reports gateway and processing latency plus cache health.
func PingCmd(ctx framework.Context, d *Deps) error {
	s := ctx.GetSession()

	var snowflake string
	if msg := ctx.GetMessage(); msg != nil {
		snowflake = msg.ID
	} else if slash, ok := ctx.(*framework.SlashContext); ok {
		snowflake = slash.Interaction.ID
	}
	var botLatency time.Duration
	if ts, err := discordgo.SnowflakeTimestamp(snowflake); err == nil {
		botLatency = time.Since(ts)
	}
	hits, misses := d.Cache.Stats()

	embed := &discordgo.MessageEmbed{
		Title: "🏓 Pong!",
		Color: utils.ColorNeutral,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Bot", Value: fmt.Sprintf("%dms", botLatency.Milliseconds()), Inline: true},
			{Name: "Gateway", Value: fmt.Sprintf("%dms", s.HeartbeatLatency().Milliseconds()), Inline: true},
			{Name: "Uptime", Value: moderation.FormatDuration(time.Since(d.StartTime)), Inline: true},
			{Name: "Cache", Value: fmt.Sprintf("%d hits / %d misses", hits, misses), Inline: true},
		},
	}
	_, err := ctx.ReplyEmbed(embed)
	return err
}
