package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout applies when no duration argument is given.
const DefaultTimeout = 5 * time.Minute

func guildOf(ctx framework.Context) *discordgo.Guild {
	g, err := ctx.GetSession().State.Guild(ctx.GetGuildID())
	if err != nil || g == nil {
		g, _ = ctx.GetSession().Guild(ctx.GetGuildID())
	}
	return g
}

// TimeoutCmd times a member out, DMs them, and records the acting
// moderator for the timeout list.
func TimeoutCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "timeout", discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	args := ctx.GetArgs()
	if len(args) < 1 {
		return MissingArg("timeout")
	}
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	member := d.Resolver.Member(s, guildID, args[0])
	if member == nil {
		return warn(ctx, "Could not find the specified user.")
	}
	if member.User.ID == ctx.GetAuthor().ID {
		return warn(ctx, "You cannot timeout yourself.")
	}

	dur := DefaultTimeout
	reasonFrom := 1
	if len(args) > 1 {
		if _, ok := moderation.ParseCompact(args[1]); ok {
			parsed, err := moderation.ParseTimeout(args[1])
			if err != nil {
				return warn(ctx, "Invalid duration format. Use s, m, h, d (e.g., 10m, 1h).")
			}
			dur = parsed
			reasonFrom = 2
		}
	}
	reason := restOf(args, reasonFrom)

	until := time.Now().UTC().Add(dur)
	opts := []discordgo.RequestOption{}
	if reason != "" {
		opts = append(opts, discordgo.WithAuditLogReason(reason))
	}
	if err := s.GuildMemberTimeout(guildID, member.User.ID, &until, opts...); err != nil {
		return warn(ctx, "Missing permissions to **timeout** the user, make sure I have the **Moderate Members** permission.")
	}

	d.State.TimeoutMods.Record(guildID, member.User.ID, ctx.GetAuthor().ID)
	d.Notifier.Send(s, moderation.DM{
		Guild:     guildOf(ctx),
		Target:    member.User,
		Moderator: displayName(ctx.GetMember()),
		Action:    moderation.ActionTimedOut,
		Reason:    reason,
		Duration:  moderation.FormatDuration(dur),
	})

	if err := mentioned(ctx, fmt.Sprintf("%s is now timed out for **%s**", displayName(member), moderation.FormatDuration(dur))); err != nil {
		return err
	}
	ctx.React("⏱️")
	return nil
}

func UntimeoutCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "untimeout", discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	args := ctx.GetArgs()
	if len(args) < 1 {
		return MissingArg("untimeout")
	}
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	member := d.Resolver.Member(s, guildID, args[0])
	if member == nil {
		return warn(ctx, "Could not find the specified user.")
	}
	if member.CommunicationDisabledUntil == nil || member.CommunicationDisabledUntil.Before(time.Now()) {
		return warn(ctx, "That user is not currently timed out.")
	}

	actor := displayName(ctx.GetMember())
	err := s.GuildMemberTimeout(guildID, member.User.ID, nil,
		discordgo.WithAuditLogReason("Untimed out by "+actor))
	if err != nil {
		return warn(ctx, "Missing permissions to untimeout the user.")
	}
	d.State.TimeoutMods.Clear(guildID, member.User.ID)

	d.Notifier.Send(s, moderation.DM{
		Guild:     guildOf(ctx),
		Target:    member.User,
		Moderator: actor,
		Action:    moderation.ActionUntimeout,
		Reason:    "Manually by " + actor,
	})
	return mentioned(ctx, fmt.Sprintf("%s is no longer timed out.", displayName(member)))
}

// UntimeoutAllCmd lifts every active timeout concurrently, collecting
// per-member failures instead of stopping at the first one.
func UntimeoutAllCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "untimeoutall", discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	members, err := moderation.AllMembers(s, guildID)
	if err != nil {
		return err
	}
	now := time.Now()
	var timedOut []*discordgo.Member
	for _, m := range members {
		if m.CommunicationDisabledUntil != nil && m.CommunicationDisabledUntil.After(now) {
			timedOut = append(timedOut, m)
		}
	}
	if len(timedOut) == 0 {
		return notice(ctx, "🔎 "+ctx.GetAuthor().Mention()+": **No members are currently timed out!**")
	}

	actor := displayName(ctx.GetMember())
	reason := "Untimed out by " + actor + " via untimeoutall"
	errs := make([]error, len(timedOut))

	var g errgroup.Group
	for i, m := range timedOut {
		i, m := i, m
		g.Go(func() error {
			errs[i] = s.GuildMemberTimeout(guildID, m.User.ID, nil,
				discordgo.WithAuditLogReason(reason))
			if errs[i] == nil {
				d.State.TimeoutMods.Clear(guildID, m.User.ID)
			}
			return nil
		})
	}
	guild := guildOf(ctx)
	for _, m := range timedOut {
		m := m
		g.Go(func() error {
			d.Notifier.Send(s, moderation.DM{
				Guild:     guild,
				Target:    m.User,
				Moderator: actor,
				Action:    moderation.ActionUntimeout,
				Reason:    reason,
			})
			return nil
		})
	}
	g.Wait()

	var failures []string
	success := 0
	for i, e := range errs {
		if e != nil {
			failures = append(failures, fmt.Sprintf("Failed to untimeout %s: %v", timedOut[i].Mention(), e))
		} else {
			success++
		}
	}
	if len(failures) > 0 {
		body := fmt.Sprintf("Untimed out %d members. The following errors occurred:\n", success)
		for _, f := range failures {
			body += f + "\n"
		}
		return notice(ctx, body)
	}
	if err := notice(ctx, fmt.Sprintf("%s Successfully untimed out all %d members.", utils.EmojiTick, success)); err != nil {
		return err
	}
	ctx.React("🕊️")
	return nil
}

func BanCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "ban", discordgo.PermissionBanMembers); err != nil {
		return err
	}
	args := ctx.GetArgs()
	if len(args) < 1 {
		return MissingArg("ban")
	}
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	member := d.Resolver.Member(s, guildID, args[0])
	if member == nil {
		return warn(ctx, "Could not find the specified user.")
	}
	reason := restOf(args, 1)

	// DM before the ban lands, afterwards there is no shared guild to
	// open the channel through.
	d.Notifier.Send(s, moderation.DM{
		Guild:     guildOf(ctx),
		Target:    member.User,
		Moderator: displayName(ctx.GetMember()),
		Action:    moderation.ActionBanned,
		Reason:    reason,
	})

	if err := s.GuildBanCreateWithReason(guildID, member.User.ID, reason, 0); err != nil {
		return warn(ctx, "I do not have permission to ban this user.")
	}
	d.State.BanMods.Record(guildID, member.User.ID, ctx.GetAuthor().ID)

	if err := mentioned(ctx, fmt.Sprintf("%s has been banned.", displayName(member))); err != nil {
		return err
	}
	ctx.React("🔨")
	return nil
}

func UnbanCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "unban", discordgo.PermissionBanMembers); err != nil {
		return err
	}
	args := ctx.GetArgs()
	if len(args) < 1 {
		return MissingArg("unban")
	}
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	userID, ok := moderation.ParseID(args[0])
	if !ok {
		return warn(ctx, "Invalid user ID or mention.")
	}
	reason := restOf(args, 1)

	if _, err := s.GuildBan(guildID, userID); err != nil {
		return warn(ctx, "User is not banned.")
	}

	opts := []discordgo.RequestOption{}
	if reason != "" {
		opts = append(opts, discordgo.WithAuditLogReason(reason))
	}
	if err := s.GuildBanDelete(guildID, userID, opts...); err != nil {
		return BotForbidden("unban")
	}
	d.State.BanMods.Clear(guildID, userID)

	embed := utils.NewNotice().
		Title("🕊️ User Unbanned").
		Body(fmt.Sprintf("**<@!%s>** has been unbanned from the server by **%s**.", userID, ctx.GetAuthor().Mention())).
		Build()
	if reason != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Reason", Value: reason,
		})
	}
	if _, err := ctx.ReplyEmbed(embed); err != nil {
		return err
	}
	ctx.React("🕊️")
	return nil
}

// UnbanAllCmd walks the full ban list sequentially. Individual
// failures are skipped so one undeletable ban does not stall the rest.
func UnbanAllCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "unbanall", discordgo.PermissionBanMembers); err != nil {
		return err
	}
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	bans, err := s.GuildBans(guildID, 1000, "", "")
	if err != nil {
		return warn(ctx, "I don't have permission to unban users.")
	}
	if len(bans) == 0 {
		return notice(ctx, "ℹ️ "+ctx.GetAuthor().Mention()+": No banned users found.")
	}

	actor := ctx.GetAuthor().Username
	count := 0
	for _, b := range bans {
		if err := s.GuildBanDelete(guildID, b.User.ID,
			discordgo.WithAuditLogReason("Unbanned by "+actor)); err != nil {
			continue
		}
		d.State.BanMods.Clear(guildID, b.User.ID)
		count++
	}

	if err := notice(ctx, fmt.Sprintf("🕊️ %s: Successfully unbanned **%d** users.", ctx.GetAuthor().Mention(), count)); err != nil {
		return err
	}
	ctx.React("🕊️")
	return nil
}

// KickCmd answers with reactions only, matching its quiet original
// behavior.
func KickCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "kick", discordgo.PermissionKickMembers); err != nil {
		return err
	}
	args := ctx.GetArgs()
	if len(args) < 1 {
		return MissingArg("kick")
	}
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	member := d.Resolver.Member(s, guildID, args[0])
	if member == nil {
		return ctx.React(utils.EmojiCross)
	}
	reason := restOf(args, 1)

	d.Notifier.Send(s, moderation.DM{
		Guild:     guildOf(ctx),
		Target:    member.User,
		Moderator: displayName(ctx.GetMember()),
		Action:    moderation.ActionKicked,
		Reason:    reason,
	})

	opts := []discordgo.RequestOption{}
	if reason != "" {
		opts = append(opts, discordgo.WithAuditLogReason(reason))
	}
	if err := s.GuildMemberDelete(guildID, member.User.ID, opts...); err != nil {
		return ctx.React(utils.EmojiCross)
	}
	return ctx.React("🦶")
}
