package modlist

import (
	"fmt"
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/state"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

// ModListPerPage is the page size for the action lists. Small on
// purpose: each row can carry a button and component rows are capped
// at five buttons.
const ModListPerPage = 3

// TimeoutSource lists currently timed-out members, soonest to expire
// first.
type TimeoutSource struct {
	Session  *discordgo.Session
	GuildID  string
	Mods     *state.Attribution
	Notifier *moderation.Notifier
}

func (t *TimeoutSource) Kind() string  { return "untimeout" }
func (t *TimeoutSource) Title() string { return "Timed Out Members" }
func (t *TimeoutSource) Color() int    { return utils.ColorNeutral }

func (t *TimeoutSource) Permission() int64 { return discordgo.PermissionModerateMembers }
func (t *TimeoutSource) DenyMessage() string {
	return "You don't have permission to untimeout members."
}
func (t *TimeoutSource) EmptyMessage() string { return "All members have been untimed out." }
func (t *TimeoutSource) ActionLabel() string  { return "Untimeout" }
func (t *TimeoutSource) BulkLabel() string    { return "Untimeout All" }

func (t *TimeoutSource) Fetch() ([]Entry, error) {
	members, err := moderation.AllMembers(t.Session, t.GuildID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var active []*discordgo.Member
	for _, m := range members {
		if m.CommunicationDisabledUntil != nil && m.CommunicationDisabledUntil.After(now) {
			active = append(active, m)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CommunicationDisabledUntil.Before(*active[j].CommunicationDisabledUntil)
	})

	entries := make([]Entry, 0, len(active))
	for _, m := range active {
		modID, _ := t.Mods.Lookup(t.GuildID, m.User.ID)
		entries = append(entries, Entry{
			SubjectID:   m.User.ID,
			Mention:     m.Mention(),
			Detail:      timeoutDetail(m.CommunicationDisabledUntil.Sub(now), modID),
			ModeratorID: modID,
		})
	}
	return entries, nil
}

// timeoutDetail renders "expires in **5 minutes** (timed out by <@x>)".
// Remaining time shows whole minutes, or seconds under a minute.
func timeoutDetail(remaining time.Duration, modID string) string {
	secs := int(remaining / time.Second)
	mins := secs / 60

	var when string
	if mins > 0 {
		when = fmt.Sprintf("%d minute%s", mins, plural(mins))
	} else {
		when = fmt.Sprintf("%d second%s", secs, plural(secs))
	}

	by := "manually"
	if modID != "" {
		by = fmt.Sprintf("by <@%s>", modID)
	}
	return fmt.Sprintf("expires in **%s** (timed out %s)", when, by)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (t *TimeoutSource) Act(e Entry, actor *discordgo.User, bulk bool) error {
	reason := fmt.Sprintf("Untimed out by %s", actor.Username)
	if bulk {
		reason += " via Untimeout All"
	}
	err := t.Session.GuildMemberTimeout(t.GuildID, e.SubjectID, nil,
		discordgo.WithAuditLogReason(reason))
	if err == nil {
		t.Mods.Clear(t.GuildID, e.SubjectID)
	}
	return err
}

func (t *TimeoutSource) Notify(e Entry, actor *discordgo.User, bulk bool) {
	guild, err := t.Session.Guild(t.GuildID)
	if err != nil {
		return
	}
	reason := fmt.Sprintf("Manually by %s", actor.Username)
	if bulk {
		reason = fmt.Sprintf("Untimed out by %s via Untimeout All", actor.Username)
	}
	t.Notifier.Send(t.Session, moderation.DM{
		Guild:     guild,
		Target:    &discordgo.User{ID: e.SubjectID},
		Moderator: actor.Username,
		Action:    moderation.ActionUntimeout,
		Reason:    reason,
	})
}
