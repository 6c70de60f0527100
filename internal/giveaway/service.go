// Package giveaway runs reaction-entry giveaways: timed end, entry
// counting, and a uniform random winner draw.
package giveaway

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/scheduler"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

// Entry reaction for giveaways.
const Emoji = "🎉"

// Giveaway is one active drawing.
type Giveaway struct {
	MessageID string
	ChannelID string
	GuildID   string
	Prize     string
	HostID    string
	HostName  string
	EndTime   time.Time

	timer int64 // end-drawing task ID, guarded by Service.mu
}

// Service tracks active giveaways by message ID.
type Service struct {
	Sched *scheduler.Registry
	Log   *zap.Logger

	mu     sync.Mutex
	active map[string]*Giveaway
}

func NewService(sched *scheduler.Registry, log *zap.Logger) *Service {
	return &Service{Sched: sched, Log: log, active: make(map[string]*Giveaway)}
}

func (g *Service) botAuthor(s *discordgo.Session) *discordgo.MessageEmbedAuthor {
	if s.State == nil || s.State.User == nil {
		return nil
	}
	return &discordgo.MessageEmbedAuthor{
		Name:    s.State.User.Username,
		IconURL: s.State.User.AvatarURL(""),
	}
}

// embed renders the giveaway message body. winners is the winner line
// shown after the drawing, or empty while running.
func (g *Service) embed(s *discordgo.Session, gw *Giveaway, entries int, ended bool, winnerMention string) *discordgo.MessageEmbed {
	verb := "Ends"
	if ended {
		verb = "Ended"
	}
	winners := "No winners were chosen!"
	if winnerMention != "" {
		winners = fmt.Sprintf("🎊 %s 🎊", winnerMention)
	}
	ts := gw.EndTime.Unix()
	return &discordgo.MessageEmbed{
		Description: fmt.Sprintf(
			"%s\n\nReact with %s to enter the giveaway.\n\n%s: <t:%d:R> (<t:%d:F>)\n\nEntries: %d\n\nHosted by: %s\n\n**Winners**\n%s",
			gw.Prize, Emoji, verb, ts, ts, entries, gw.HostName, winners),
		Color:  utils.ColorNeutral,
		Author: g.botAuthor(s),
	}
}

// Start posts the giveaway message, seeds the entry reaction, and
// schedules the drawing.
func (g *Service) Start(s *discordgo.Session, guildID, channelID, hostID, hostName, prize string, d time.Duration) (*Giveaway, error) {
	gw := &Giveaway{
		ChannelID: channelID,
		GuildID:   guildID,
		Prize:     prize,
		HostID:    hostID,
		HostName:  hostName,
		EndTime:   time.Now().Add(d),
	}

	msg, err := s.ChannelMessageSendEmbed(channelID, g.embed(s, gw, 0, false, ""))
	if err != nil {
		return nil, err
	}
	gw.MessageID = msg.ID

	if err := s.MessageReactionAdd(channelID, msg.ID, Emoji); err != nil {
		g.Log.Debug("could not seed giveaway reaction", zap.Error(err))
	}

	g.mu.Lock()
	g.active[msg.ID] = gw
	gw.timer = g.Sched.After("giveaway-end", d, func() {
		g.End(s, msg.ID)
	})
	g.mu.Unlock()
	return gw, nil
}

// entrants lists non-bot, non-host users who hold the entry reaction.
func (g *Service) entrants(s *discordgo.Session, gw *Giveaway) ([]*discordgo.User, error) {
	users, err := s.MessageReactions(gw.ChannelID, gw.MessageID, Emoji, 100, "", "")
	if err != nil {
		return nil, err
	}
	var out []*discordgo.User
	for _, u := range users {
		if u.Bot || u.ID == gw.HostID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// End draws and announces the winner. Idempotent: a second call for
// the same message is a no-op.
func (g *Service) End(s *discordgo.Session, messageID string) {
	g.mu.Lock()
	gw, ok := g.active[messageID]
	delete(g.active, messageID)
	g.mu.Unlock()
	if !ok {
		return
	}
	g.Sched.Cancel(gw.timer)

	users, err := g.entrants(s, gw)
	if err != nil {
		g.Log.Warn("could not fetch giveaway entrants",
			zap.String("message", messageID), zap.Error(err))
		return
	}

	if len(users) == 0 {
		if _, err := s.ChannelMessageEditEmbed(gw.ChannelID, gw.MessageID,
			g.embed(s, gw, 0, true, "")); err != nil {
			g.Log.Debug("giveaway end edit failed", zap.Error(err))
		}
		return
	}

	winner := users[rand.Intn(len(users))]
	if _, err := s.ChannelMessageEditEmbed(gw.ChannelID, gw.MessageID,
		g.embed(s, gw, len(users), true, winner.Mention())); err != nil {
		g.Log.Debug("giveaway end edit failed", zap.Error(err))
	}
	if _, err := s.ChannelMessageSend(gw.ChannelID,
		fmt.Sprintf("%s Congratulations %s! You won: **%s**!", Emoji, winner.Mention(), gw.Prize)); err != nil {
		g.Log.Debug("giveaway congratulation failed", zap.Error(err))
	}
}

// HandleReaction repaints the entry count when the giveaway's entry
// reaction changes.
func (g *Service) HandleReaction(s *discordgo.Session, messageID, emoji string) {
	if emoji != Emoji {
		return
	}
	g.mu.Lock()
	gw := g.active[messageID]
	g.mu.Unlock()
	if gw == nil {
		return
	}

	users, err := g.entrants(s, gw)
	if err != nil {
		return
	}
	if _, err := s.ChannelMessageEditEmbed(gw.ChannelID, gw.MessageID,
		g.embed(s, gw, len(users), false, "")); err != nil {
		g.Log.Debug("giveaway entry repaint failed", zap.Error(err))
	}
}

// IsActive reports whether messageID is a running giveaway.
func (g *Service) IsActive(messageID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.active[messageID]
	return ok
}

// List returns the guild's running giveaways, soonest ending first.
func (g *Service) List(guildID string) []*Giveaway {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []*Giveaway
	for _, gw := range g.active {
		if gw.GuildID == guildID {
			out = append(out, gw)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndTime.Before(out[j].EndTime) })
	return out
}
