package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
)

// muteRoleDenies maps each mute tier to the permission bits its role
// denies across text channels.
var muteRoleDenies = map[string]int64{
	"muted": discordgo.PermissionSendMessages |
		discordgo.PermissionSendMessagesInThreads |
		discordgo.PermissionCreatePublicThreads |
		discordgo.PermissionCreatePrivateThreads,
	"imuted": discordgo.PermissionAttachFiles |
		discordgo.PermissionEmbedLinks,
	"rmuted": discordgo.PermissionAddReactions |
		discordgo.PermissionUseExternalEmojis |
		discordgo.PermissionUseExternalStickers,
}

var muteRoleNames = []string{"muted", "imuted", "rmuted"}

func findRoleByName(s *discordgo.Session, guildID, name string) (*discordgo.Role, error) {
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return nil, nil
}

// ensureMuteRole returns the named mute role, creating it and seeding
// its channel denials on first use.
func ensureMuteRole(s *discordgo.Session, guildID, name string) (*discordgo.Role, error) {
	role, err := findRoleByName(s, guildID, name)
	if err != nil {
		return nil, err
	}
	if role != nil {
		return role, nil
	}

	role, err = s.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name},
		discordgo.WithAuditLogReason("Created "+name+" role"))
	if err != nil {
		return nil, err
	}
	deny := muteRoleDenies[name]
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return role, err
	}
	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		if err := s.ChannelPermissionSet(ch.ID, role.ID, discordgo.PermissionOverwriteTypeRole, 0, deny); err != nil {
			return role, err
		}
	}
	return role, nil
}

func muteWith(ctx framework.Context, d *Deps, command, roleName, verb string) error {
	if err := requirePerm(ctx, command, discordgo.PermissionManageRoles); err != nil {
		return err
	}
	args := ctx.GetArgs()
	if len(args) < 1 {
		return MissingArg(command)
	}
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	member := d.Resolver.Member(s, guildID, args[0])
	if member == nil {
		return warn(ctx, "User not found. Please provide a valid user mention or ID.")
	}
	reason := restOf(args, 1)

	role, err := ensureMuteRole(s, guildID, roleName)
	if err != nil || role == nil {
		return warn(ctx, "I don't have permission to manage roles.")
	}
	audit := fmt.Sprintf("%s by %s: %s", verb, ctx.GetAuthor().Username, orNoReason(reason))
	if err := s.GuildMemberRoleAdd(guildID, member.User.ID, role.ID,
		discordgo.WithAuditLogReason(audit)); err != nil {
		return warn(ctx, "I don't have permission to manage roles.")
	}

	d.Notifier.Send(s, moderation.DM{
		Guild:     guildOf(ctx),
		Target:    member.User,
		Moderator: displayName(ctx.GetMember()),
		Action:    moderation.ActionMuted,
		Reason:    reason,
	})

	if err := notice(ctx, fmt.Sprintf("🔇 %s: %s %s", ctx.GetAuthor().Mention(), verb, member.Mention())); err != nil {
		return err
	}
	ctx.React("🔇")
	return nil
}

func MuteCmd(ctx framework.Context, d *Deps) error {
	return muteWith(ctx, d, "mute", "muted", "Muted")
}

func IMuteCmd(ctx framework.Context, d *Deps) error {
	return muteWith(ctx, d, "imute", "imuted", "Image muted")
}

func RMuteCmd(ctx framework.Context, d *Deps) error {
	return muteWith(ctx, d, "rmute", "rmuted", "Reaction muted")
}

// UnmuteCmd strips every mute tier the member carries.
func UnmuteCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "unmute", discordgo.PermissionManageRoles); err != nil {
		return err
	}
	args := ctx.GetArgs()
	if len(args) < 1 {
		return MissingArg("unmute")
	}
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	member := d.Resolver.Member(s, guildID, args[0])
	if member == nil {
		return warn(ctx, "User not found. Please provide a valid user mention or ID.")
	}
	reason := restOf(args, 1)

	held := make(map[string]bool, len(member.Roles))
	for _, id := range member.Roles {
		held[id] = true
	}

	var removed []string
	for _, name := range muteRoleNames {
		role, err := findRoleByName(s, guildID, name)
		if err != nil {
			return warn(ctx, "I don't have permission to manage roles.")
		}
		if role == nil || !held[role.ID] {
			continue
		}
		audit := fmt.Sprintf("Unmuted by %s: %s", ctx.GetAuthor().Username, orNoReason(reason))
		if err := s.GuildMemberRoleRemove(guildID, member.User.ID, role.ID,
			discordgo.WithAuditLogReason(audit)); err != nil {
			return warn(ctx, "I don't have permission to manage roles.")
		}
		removed = append(removed, name)
	}

	if len(removed) == 0 {
		return notice(ctx, fmt.Sprintf("ℹ️ %s: %s is not muted.", ctx.GetAuthor().Mention(), member.Mention()))
	}

	d.Notifier.Send(s, moderation.DM{
		Guild:     guildOf(ctx),
		Target:    member.User,
		Moderator: displayName(ctx.GetMember()),
		Action:    moderation.ActionUnmuted,
		Reason:    reason,
	})
	return notice(ctx, fmt.Sprintf("🔊 %s: Unmuted %s (removed: %s)",
		ctx.GetAuthor().Mention(), member.Mention(), strings.Join(removed, ", ")))
}
