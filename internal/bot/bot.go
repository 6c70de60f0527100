package bot

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/afk"
	"github.com/neonflux-io/discord-admin-bot/internal/cache"
	"github.com/neonflux-io/discord-admin-bot/internal/commands"
	"github.com/neonflux-io/discord-admin-bot/internal/config"
	"github.com/neonflux-io/discord-admin-bot/internal/giveaway"
	"github.com/neonflux-io/discord-admin-bot/internal/lockdown"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/modlist"
	"github.com/neonflux-io/discord-admin-bot/internal/redis"
	"github.com/neonflux-io/discord-admin-bot/internal/scheduler"
	"github.com/neonflux-io/discord-admin-bot/internal/state"
	"github.com/neonflux-io/discord-admin-bot/internal/tracker"
)

// Bot owns the gateway session and the services behind the commands.
type Bot struct {
	Session *discordgo.Session
	Deps    *commands.Deps
	Log     *zap.Logger

	sched   *scheduler.Registry
	tracker *tracker.Tracker
	redis   *redis.Client
	cache   *cache.Cache
}

func New(cfg *config.Config, log *zap.Logger, rdb *redis.Client, c *cache.Cache) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("session error: %w", err)
	}

	// Keep-alive pooled transport; REST latency feeds the histogram.
	tr := &http.Transport{
		MaxIdleConns:          200,
		MaxIdleConnsPerHost:   50,
		IdleConnTimeout:       120 * time.Second,
		ForceAttemptHTTP2:     true,
		ResponseHeaderTimeout: 10 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
	}
	s.Client = &http.Client{
		Transport: &metricsTransport{base: tr},
		Timeout:   15 * time.Second,
	}

	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildBans |
		discordgo.IntentsMessageContent

	s.ShouldReconnectOnError = true
	s.ShouldRetryOnRateLimit = true
	s.MaxRestRetries = 3
	s.State.MaxMessageCount = 0

	sched := scheduler.New(log)
	st := state.New()
	trk := tracker.New(rdb, log)
	notifier := &moderation.Notifier{Log: log}

	deps := &commands.Deps{
		Cfg:      cfg,
		Log:      log,
		State:    st,
		Sched:    sched,
		Cache:    c,
		Resolver: &moderation.Resolver{Cache: c},
		Notifier: notifier,
		Lockdown: &lockdown.Service{State: st, Sched: sched, Log: log},
		Giveaway: giveaway.NewService(sched, log),
		AFK:      afk.NewService(st, sched, log),
		Lists:    modlist.NewRegistry(sched, log),
		Pagers:   modlist.NewPagerRegistry(sched, log),
		Tracker:  trk,

		StartTime: time.Now(),
	}

	b := &Bot{
		Session: s,
		Deps:    deps,
		Log:     log,
		sched:   sched,
		tracker: trk,
		redis:   rdb,
		cache:   c,
	}

	s.AddHandler(b.Ready)
	s.AddHandler(b.GuildCreate)
	s.AddHandler(b.InteractionCreate)
	s.AddHandler(b.MessageCreate)
	s.AddHandler(b.MessageUpdate)
	s.AddHandler(b.MessageReactionAdd)
	s.AddHandler(b.MessageReactionRemove)
	s.AddHandler(trk.HandleEvent)

	return b, nil
}

// Start opens the gateway connection, registers the slash surface,
// and blocks until SIGINT or SIGTERM.
func (b *Bot) Start() error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("gateway connection failed: %w", err)
	}

	if b.Session.State.User == nil {
		u, err := b.Session.User("@me")
		if err != nil {
			return fmt.Errorf("failed to get bot user: %w", err)
		}
		b.Session.State.User = u
	}
	b.Log.Info("logged in",
		zap.String("username", b.Session.State.User.Username),
		zap.String("id", b.Session.State.User.ID))

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, "", commands.Commands); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	b.Log.Info("registered slash commands", zap.Int("count", len(commands.Commands)))

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return b.Close()
}

func (b *Bot) Close() error {
	b.Log.Info("shutting down")
	b.sched.Shutdown()
	if b.cache != nil {
		b.cache.Close()
	}
	if b.redis != nil {
		b.redis.Close()
	}
	b.Log.Sync()
	return b.Session.Close()
}
