package moderation

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/metrics"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

// Action enumerates the moderation outcomes members get DMed about.
type Action string

const (
	ActionTimedOut  Action = "timed_out"
	ActionUntimeout Action = "untimeout"
	ActionBanned    Action = "banned"
	ActionKicked    Action = "kicked"
	ActionMuted     Action = "muted"
	ActionUnmuted   Action = "unmuted"
)

// Notifier sends the standardized moderation DM. Delivery is best
// effort: closed DMs are common and must never fail the action that
// triggered them, so failures are logged and reported as a bool.
type Notifier struct {
	Log *zap.Logger
}

// DM holds the variable parts of one notification.
type DM struct {
	Guild     *discordgo.Guild
	Target    *discordgo.User
	Moderator string // display name shown in the embed
	Action    Action
	Reason    string
	Duration  string // formatted, only used by ActionTimedOut
}

var dmTitles = map[Action]string{
	ActionTimedOut:  "Timed Out",
	ActionUntimeout: "Lifted Timeout",
	ActionBanned:    "Banned",
	ActionKicked:    "Kicked",
	ActionMuted:     "Muted",
	ActionUnmuted:   "Unmuted",
}

var dmLeads = map[Action]string{
	ActionTimedOut:  "**You have been timed out in**\n",
	ActionUntimeout: "**You are no longer timed out in**\n",
	ActionBanned:    "**You have been banned from**\n",
	ActionKicked:    "**You have been kicked from**\n",
	ActionMuted:     "**You have been muted in**\n",
	ActionUnmuted:   "**You have been unmuted in**\n",
}

// punitive actions carry the dispute footer.
var dmDispute = map[Action]bool{
	ActionTimedOut: true,
	ActionBanned:   true,
	ActionMuted:    true,
}

// BuildEmbed renders the DM embed for dm. Split from Send so tests can
// check the shape without a session.
func BuildEmbed(dm DM) *discordgo.MessageEmbed {
	reason := dm.Reason
	if reason == "" {
		reason = "No reason provided"
	}

	e := &discordgo.MessageEmbed{
		Title:       dmTitles[dm.Action],
		Description: dmLeads[dm.Action] + dm.Guild.Name,
		Color:       utils.ColorNeutral,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
		Name: "Moderator", Value: dm.Moderator, Inline: true,
	})
	if dm.Action == ActionTimedOut && dm.Duration != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name: "Duration", Value: dm.Duration, Inline: true,
		})
	}
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
		Name: "Reason", Value: reason, Inline: dm.Action == ActionUntimeout,
	})

	if dmDispute[dm.Action] {
		e.Footer = &discordgo.MessageEmbedFooter{
			Text: "If you would like to dispute this punishment, contact a staff member.",
		}
	}

	if dm.Action == ActionUntimeout {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: dm.Target.AvatarURL("")}
	} else if dm.Guild.Icon != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: dm.Guild.IconURL("")}
	}

	return e
}

// Send DMs the target. Returns whether delivery succeeded.
func (n *Notifier) Send(s *discordgo.Session, dm DM) bool {
	ch, err := s.UserChannelCreate(dm.Target.ID)
	if err == nil {
		_, err = s.ChannelMessageSendEmbed(ch.ID, BuildEmbed(dm))
	}
	if err != nil {
		metrics.DMFailuresTotal.Inc()
		n.Log.Debug("mod DM not delivered",
			zap.String("user", dm.Target.ID),
			zap.String("action", string(dm.Action)),
			zap.Error(err))
		return false
	}
	return true
}
