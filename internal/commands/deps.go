package commands

import (
	"time"

	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/afk"
	"github.com/neonflux-io/discord-admin-bot/internal/cache"
	"github.com/neonflux-io/discord-admin-bot/internal/config"
	"github.com/neonflux-io/discord-admin-bot/internal/giveaway"
	"github.com/neonflux-io/discord-admin-bot/internal/lockdown"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/modlist"
	"github.com/neonflux-io/discord-admin-bot/internal/scheduler"
	"github.com/neonflux-io/discord-admin-bot/internal/state"
	"github.com/neonflux-io/discord-admin-bot/internal/tracker"
)

// Deps carries every service a command implementation may need.
// Handlers receive a single *Deps so adding a service does not ripple
// through every command signature.
type Deps struct {
	Cfg      *config.Config
	Log      *zap.Logger
	State    *state.Store
	Sched    *scheduler.Registry
	Cache    *cache.Cache
	Resolver *moderation.Resolver
	Notifier *moderation.Notifier
	Lockdown *lockdown.Service
	Giveaway *giveaway.Service
	AFK      *afk.Service
	Lists    *modlist.Registry
	Pagers   *modlist.PagerRegistry
	Tracker  *tracker.Tracker

	StartTime time.Time
}
