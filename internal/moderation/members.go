package moderation

import (
	"sort"

	"github.com/bwmarrin/discordgo"
)

// MemberPermissions returns the guild-level permission bits for m.
// Interactions arrive with Permissions populated; prefix commands do
// not, so this falls back to summing role permissions.
func MemberPermissions(s *discordgo.Session, guildID string, m *discordgo.Member) int64 {
	if m == nil {
		return 0
	}
	if m.Permissions != 0 {
		return m.Permissions
	}

	guild, err := s.Guild(guildID)
	if err != nil {
		return 0
	}
	if m.User != nil && guild.OwnerID == m.User.ID {
		return discordgo.PermissionAll
	}

	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return 0
	}
	byID := make(map[string]*discordgo.Role, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
	}

	var perms int64
	if everyone, ok := byID[guildID]; ok {
		perms |= everyone.Permissions
	}
	for _, id := range m.Roles {
		if r, ok := byID[id]; ok {
			perms |= r.Permissions
		}
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll
	}
	return perms
}

// HasPermission reports whether the member holds perm (administrator
// and owner always pass).
func HasPermission(s *discordgo.Session, guildID string, m *discordgo.Member, perm int64) bool {
	p := MemberPermissions(s, guildID, m)
	return p&perm != 0 || p&discordgo.PermissionAdministrator != 0
}

// AllMembers pages through the full member list via REST. The members
// intent is required; guilds past ~250k members will be slow, which is
// acceptable for the list commands that call this.
func AllMembers(s *discordgo.Session, guildID string) ([]*discordgo.Member, error) {
	var out []*discordgo.Member
	after := ""
	for {
		chunk, err := s.GuildMembers(guildID, after, 1000)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
		if len(chunk) < 1000 {
			break
		}
		after = chunk[len(chunk)-1].User.ID
	}
	return out, nil
}

// SortMembersByJoin orders members oldest first, for join-position
// displays.
func SortMembersByJoin(members []*discordgo.Member) {
	sort.Slice(members, func(i, j int) bool {
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
}
