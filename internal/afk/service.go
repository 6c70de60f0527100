// Package afk implements the AFK status system: a scoped away marker
// with a choice prompt, nickname tagging, and the welcome-back
// counter.
package afk

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/scheduler"
	"github.com/neonflux-io/discord-admin-bot/internal/state"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

// ChoiceTimeout is how long the scope prompt waits before defaulting
// to global.
const ChoiceTimeout = 10 * time.Second

// NickPrefix is prepended to the member's nickname while AFK, when the
// result still fits Discord's 32-character limit.
const NickPrefix = "[AFK] "

// taggedNick returns the AFK-tagged nickname, or false when tagging
// would exceed the nickname length limit.
func taggedNick(orig string) (string, bool) {
	nick := NickPrefix + orig
	if len(nick) > 32 {
		return "", false
	}
	return nick, true
}

type pending struct {
	guildID   string
	channelID string
	messageID string
	reason    string
	origNick  string
	timer     int64 // default-to-global task ID, guarded by Service.mu
}

// Service owns the choice prompts and the AFK store interactions.
type Service struct {
	State *state.Store
	Sched *scheduler.Registry
	Log   *zap.Logger

	mu      sync.Mutex
	pending map[string]*pending // userID -> open choice prompt
}

func NewService(st *state.Store, sched *scheduler.Registry, log *zap.Logger) *Service {
	return &Service{State: st, Sched: sched, Log: log, pending: make(map[string]*pending)}
}

// Begin posts the scope choice prompt. If the user clicks nothing for
// ChoiceTimeout the status defaults to global.
func (a *Service) Begin(s *discordgo.Session, m *discordgo.MessageCreate, reason string) error {
	if reason == "" {
		reason = "AFK"
	}
	userID := m.Author.ID

	embed := utils.NewNotice().
		Title("AFK Status").
		Body(fmt.Sprintf("<@%s> choose your AFK status from the buttons below!\n- You have 10 seconds or we'll set it to Global by default.", userID)).
		Build()

	msg, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "🌐 Global AFK",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("afk:%s:global", userID),
				},
				discordgo.Button{
					Label:    "🏠 Server AFK",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("afk:%s:server", userID),
				},
			}},
		},
	})
	if err != nil {
		return err
	}

	origNick := m.Author.Username
	if m.Member != nil && m.Member.Nick != "" {
		origNick = m.Member.Nick
	}
	p := &pending{
		guildID:   m.GuildID,
		channelID: m.ChannelID,
		messageID: msg.ID,
		reason:    reason,
		origNick:  origNick,
	}
	a.mu.Lock()
	a.pending[userID] = p
	p.timer = a.Sched.After("afk-default", ChoiceTimeout, func() {
		a.mu.Lock()
		cur, ok := a.pending[userID]
		delete(a.pending, userID)
		a.mu.Unlock()
		if ok {
			a.apply(s, userID, cur, state.AFKGlobal)
		}
	})
	a.mu.Unlock()
	return nil
}

// HandleComponent routes an afk:<userID>:<scope> click. Only the user
// who set the status may choose its scope.
func (a *Service) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 {
		return
	}
	userID := parts[1]

	if i.Member == nil || i.Member.User.ID != userID {
		utils.SendError(s, i, "This is not your AFK choice!")
		return
	}

	a.mu.Lock()
	p, ok := a.pending[userID]
	delete(a.pending, userID)
	a.mu.Unlock()
	if !ok {
		_ = utils.AckUpdate(s, i)
		return
	}
	a.Sched.Cancel(p.timer)

	scope := state.AFKGlobal
	if parts[2] == "server" {
		scope = state.AFKServer
	}
	_ = utils.AckUpdate(s, i)
	a.apply(s, userID, p, scope)
}

// apply records the status, tags the nickname, and rewrites the prompt
// message into the confirmation embed.
func (a *Service) apply(s *discordgo.Session, userID string, p *pending, scope state.AFKScope) {
	if nick, ok := taggedNick(p.origNick); ok {
		if err := s.GuildMemberNickname(p.guildID, userID, nick); err != nil {
			a.Log.Debug("could not tag AFK nickname", zap.String("user", userID), zap.Error(err))
		}
	}

	a.State.AFK.Set(scope, p.guildID, userID, state.AFKRecord{
		Reason:   p.reason,
		Since:    time.Now(),
		OrigNick: p.origNick,
	})

	title, lead := "🌐 Global AFK Status", "globally AFK"
	if scope == state.AFKServer {
		title, lead = "🏠 Server AFK Status", "server AFK"
	}
	embed := utils.NewNotice().
		Title(title).
		Body(fmt.Sprintf("<@%s> is now %s with the status: **%s**", userID, lead, p.reason)).
		Footer("You'll be notified when you return").
		Build()

	empty := []discordgo.MessageComponent{}
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    p.channelID,
		ID:         p.messageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &empty,
	}); err != nil {
		a.Log.Debug("could not edit AFK prompt", zap.Error(err))
	}
}

// HandleMessage pops the author's AFK status if any, and announces
// mentioned members who are away. selfCommand suppresses the return
// path when the triggering message was the afk command itself.
func (a *Service) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate, selfCommand bool) {
	if !selfCommand {
		a.handleReturn(s, m)
	}

	for _, mention := range m.Mentions {
		if mention.ID == m.Author.ID {
			continue
		}
		rec, scope, ok := a.State.AFK.Get(m.GuildID, mention.ID)
		if !ok {
			continue
		}
		scopeText := "Global AFK"
		if scope == state.AFKServer {
			scopeText = "Server AFK"
		}
		embed := utils.NewNotice().
			Body(fmt.Sprintf("%s %s is **%s**: %s", utils.EmojiAFK, mention.Username, scopeText, rec.Reason)).
			Build()
		if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
			a.Log.Debug("could not announce AFK mention", zap.Error(err))
		}
	}
}

func (a *Service) handleReturn(s *discordgo.Session, m *discordgo.MessageCreate) {
	rec, scope, ok := a.State.AFK.Pop(m.GuildID, m.Author.ID)
	if !ok {
		return
	}

	if rec.OrigNick != "" {
		if err := s.GuildMemberNickname(m.GuildID, m.Author.ID, rec.OrigNick); err != nil {
			a.Log.Debug("could not restore nickname", zap.String("user", m.Author.ID), zap.Error(err))
		}
	}

	gone := int(time.Since(rec.Since) / time.Second)
	scopeText := "**Global AFK**"
	if scope == state.AFKServer {
		scopeText = "**Server AFK**"
	}
	embed := utils.NewNotice().
		Body(fmt.Sprintf("👋 <@%s>: Welcome back! You were gone for **%d seconds** (%s)", m.Author.ID, gone, scopeText)).
		Build()
	msg, err := s.ChannelMessageSendEmbed(m.ChannelID, embed)
	if err != nil {
		a.Log.Debug("could not send welcome back", zap.Error(err))
		return
	}

	a.scheduleCounter(s, msg.ChannelID, msg.ID, gone)
}

// counterCap bounds both directions of the welcome counter so a long
// absence does not keep editing the message for hours.
const counterCap = 60

// scheduleCounter edits the welcome message once a second through the
// scheduler: counting the gone-time down to one (capped), then up to
// counterCap. The chain stops on the first failed edit, which also
// covers the message being deleted, and dies with the registry on
// shutdown.
func counterStart(gone int) int {
	if gone > counterCap {
		return counterCap
	}
	return gone
}

func (a *Service) scheduleCounter(s *discordgo.Session, channelID, messageID string, gone int) {
	start := counterStart(gone)

	var step func(n int, up bool)
	step = func(n int, up bool) {
		embed := utils.NewNotice().
			Body(fmt.Sprintf("👋 Welcome back! You were gone for **%d seconds**", n)).
			Build()
		if _, err := s.ChannelMessageEditEmbed(channelID, messageID, embed); err != nil {
			return
		}

		next, nextUp := n-1, up
		switch {
		case !up && n <= 1:
			next, nextUp = 1, true
		case up && n >= counterCap:
			return
		case up:
			next = n + 1
		}
		a.Sched.After("afk-counter", time.Second, func() { step(next, nextUp) })
	}

	a.Sched.After("afk-counter", time.Second, func() { step(start, start <= 1) })
}
