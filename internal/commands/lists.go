package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/modlist"
)

// TimeoutListCmd opens the interactive timed-out member list.
func TimeoutListCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "timeoutlist", discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	s := ctx.GetSession()
	src := &modlist.TimeoutSource{
		Session:  s,
		GuildID:  ctx.GetGuildID(),
		Mods:     d.State.TimeoutMods,
		Notifier: d.Notifier,
	}
	err := d.Lists.Open(s, ctx.GetGuildID(), ctx.GetChannelID(), src, modlist.ModListPerPage)
	if errors.Is(err, modlist.ErrEmpty) {
		return notice(ctx, "🔎 "+ctx.GetAuthor().Mention()+": **No members are currently timed out!**")
	}
	if err != nil {
		return err
	}
	return ctx.React("📋")
}

// BanListCmd opens the interactive ban list.
func BanListCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "banlist", discordgo.PermissionBanMembers); err != nil {
		return err
	}
	s := ctx.GetSession()
	src := &modlist.BanSource{
		Session: s,
		GuildID: ctx.GetGuildID(),
		Mods:    d.State.BanMods,
	}
	err := d.Lists.Open(s, ctx.GetGuildID(), ctx.GetChannelID(), src, modlist.ModListPerPage)
	if errors.Is(err, modlist.ErrEmpty) {
		return notice(ctx, "📋 "+ctx.GetAuthor().Mention()+": No banned users found in this server.")
	}
	if err != nil {
		return warn(ctx, "An error occurred while fetching bans: "+err.Error())
	}
	return ctx.React("📋")
}

func resolveRole(s *discordgo.Session, guildID, arg string) (*discordgo.Role, error) {
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}
	id := arg
	if strings.HasPrefix(arg, "<@&") && strings.HasSuffix(arg, ">") {
		id = arg[3 : len(arg)-1]
	}
	for _, r := range roles {
		if r.ID == id || strings.EqualFold(r.Name, arg) {
			return r, nil
		}
	}
	return nil, nil
}

// InRoleCmd lists every member holding a role in a read-only pager.
func InRoleCmd(ctx framework.Context, d *Deps) error {
	args := ctx.GetArgs()
	if len(args) < 1 {
		_, err := ctx.Reply("Please specify a role.")
		return err
	}
	s := ctx.GetSession()
	guildID := ctx.GetGuildID()

	role, err := resolveRole(s, guildID, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if role == nil {
		_, err := ctx.Reply("Please specify a role.")
		return err
	}

	members, err := moderation.AllMembers(s, guildID)
	if err != nil {
		return err
	}
	var lines []string
	i := 0
	for _, m := range members {
		for _, rid := range m.Roles {
			if rid != role.ID {
				continue
			}
			i++
			suffix := ""
			if m.User.ID == ctx.GetAuthor().ID {
				suffix = " (you)"
			}
			lines = append(lines, fmt.Sprintf("%d %s%s", i, m.Mention(), suffix))
			break
		}
	}
	return d.Pagers.Open(s, ctx.GetChannelID(), "Members in "+role.Name, "Members", lines)
}
