package modlist

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/state"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

// BanSource lists the guild's ban entries with their audit reasons.
type BanSource struct {
	Session *discordgo.Session
	GuildID string
	Mods    *state.Attribution
}

func (b *BanSource) Kind() string  { return "unban" }
func (b *BanSource) Title() string { return "Banned Users" }
func (b *BanSource) Color() int    { return utils.ColorRed }

func (b *BanSource) Permission() int64 { return discordgo.PermissionBanMembers }
func (b *BanSource) DenyMessage() string {
	return "You don't have permission to unban users."
}
func (b *BanSource) EmptyMessage() string { return "No banned users found." }
func (b *BanSource) ActionLabel() string  { return "Unban" }
func (b *BanSource) BulkLabel() string    { return "Unban All" }

func (b *BanSource) Fetch() ([]Entry, error) {
	bans, err := b.Session.GuildBans(b.GuildID, 1000, "", "")
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(bans))
	for _, ban := range bans {
		reason := ban.Reason
		if reason == "" {
			reason = "No reason provided"
		}
		modID, _ := b.Mods.Lookup(b.GuildID, ban.User.ID)
		by := "manually"
		if modID != "" {
			by = fmt.Sprintf("by <@%s>", modID)
		}
		entries = append(entries, Entry{
			SubjectID:   ban.User.ID,
			Mention:     ban.User.Mention(),
			Detail:      fmt.Sprintf("- **%s** (banned %s)", reason, by),
			ModeratorID: modID,
		})
	}
	return entries, nil
}

func (b *BanSource) Act(e Entry, actor *discordgo.User, bulk bool) error {
	reason := fmt.Sprintf("Unbanned by %s", actor.Username)
	if bulk {
		reason += " via Unban All"
	}
	err := b.Session.GuildBanDelete(b.GuildID, e.SubjectID,
		discordgo.WithAuditLogReason(reason))
	if err == nil {
		b.Mods.Clear(b.GuildID, e.SubjectID)
	}
	return err
}

// Notify is a no-op: the bot shares no DM channel with a user who was
// banned, and an unban carries no standing to open one.
func (b *BanSource) Notify(e Entry, actor *discordgo.User, bulk bool) {}
