package bot

import (
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/commands"
	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/giveaway"
	"github.com/neonflux-io/discord-admin-bot/internal/metrics"
)

func (b *Bot) Ready(s *discordgo.Session, r *discordgo.Ready) {
	if s.State.User == nil {
		s.State.User = r.User
	}
	b.Log.Info("ready",
		zap.String("username", r.User.Username),
		zap.Int("guilds", len(r.Guilds)))
}

// GuildCreate registers the slash surface per guild so updates land
// immediately instead of after the global propagation delay.
func (b *Bot) GuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if _, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, g.ID, commands.Commands); err != nil {
		b.Log.Warn("guild command registration failed",
			zap.String("guild", g.ID), zap.Error(err))
	}
}

func (b *Bot) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	start := time.Now()
	defer metrics.ObserveEvent(start)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		ctx := framework.NewSlashContextWithArgs(s, i, b.slashArgs(s, i, data.Options))
		b.runCommand(ctx, data.Name)

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, "modlist:"):
			b.Deps.Lists.HandleComponent(s, i, customID)
		case strings.HasPrefix(customID, "pager:"):
			b.Deps.Pagers.HandleComponent(s, i, customID)
		case strings.HasPrefix(customID, "afk:"):
			b.Deps.AFK.HandleComponent(s, i, customID)
		case customID == "help_category_select":
			metrics.ComponentClicksTotal.WithLabelValues("help").Inc()
			commands.HandleHelpSelect(s, i)
		}
	}
}

// slashArgs flattens interaction options into the positional argument
// list the prefix grammar uses, so both transports share one
// implementation per command.
func (b *Bot) slashArgs(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) []string {
	var args []string
	for _, opt := range opts {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			args = append(args, strings.Fields(opt.StringValue())...)
		case discordgo.ApplicationCommandOptionInteger:
			args = append(args, strconv.FormatInt(opt.IntValue(), 10))
		case discordgo.ApplicationCommandOptionBoolean:
			args = append(args, strconv.FormatBool(opt.BoolValue()))
		case discordgo.ApplicationCommandOptionUser:
			if u := opt.UserValue(s); u != nil {
				args = append(args, u.ID)
			}
		case discordgo.ApplicationCommandOptionChannel:
			if ch := opt.ChannelValue(s); ch != nil {
				args = append(args, ch.ID)
			}
		case discordgo.ApplicationCommandOptionRole:
			if r := opt.RoleValue(s, i.GuildID); r != nil {
				args = append(args, r.ID)
			}
		}
	}
	return args
}

// runCommand dispatches by canonical name and applies the shared
// error boundary.
func (b *Bot) runCommand(ctx framework.Context, name string) {
	handler, ok := handlers[name]
	if !ok {
		return
	}
	outcome := "ok"
	if err := handler(ctx, b.Deps); err != nil {
		outcome = "error"
		commands.RespondError(ctx, name, err)
	}
	metrics.CommandsTotal.WithLabelValues(name, outcome).Inc()
}

func emojiKey(e *discordgo.Emoji) string {
	if e.ID != "" {
		return e.APIName()
	}
	return e.Name
}

func (b *Bot) MessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	start := time.Now()
	defer metrics.ObserveEvent(start)

	if r.UserID == s.State.User.ID || (r.Member != nil && r.Member.User != nil && r.Member.User.Bot) {
		return
	}

	if roleID, ok := b.Deps.State.ReactionRoles.Lookup(r.GuildID, r.MessageID, emojiKey(&r.Emoji)); ok {
		if err := s.GuildMemberRoleAdd(r.GuildID, r.UserID, roleID,
			discordgo.WithAuditLogReason("Sticky reaction role")); err != nil {
			b.Log.Debug("sticky role grant failed", zap.Error(err))
		}
	}

	if r.Emoji.Name == giveaway.Emoji {
		b.Deps.Giveaway.HandleReaction(s, r.MessageID, r.Emoji.Name)
	}
}

func (b *Bot) MessageReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	start := time.Now()
	defer metrics.ObserveEvent(start)

	if r.UserID == s.State.User.ID {
		return
	}

	if roleID, ok := b.Deps.State.ReactionRoles.Lookup(r.GuildID, r.MessageID, emojiKey(&r.Emoji)); ok {
		if err := s.GuildMemberRoleRemove(r.GuildID, r.UserID, roleID,
			discordgo.WithAuditLogReason("Sticky reaction role removed")); err != nil {
			b.Log.Debug("sticky role removal failed", zap.Error(err))
		}
	}

	if r.Emoji.Name == giveaway.Emoji {
		b.Deps.Giveaway.HandleReaction(s, r.MessageID, r.Emoji.Name)
	}
}
