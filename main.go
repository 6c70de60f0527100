package main

import (
	"os"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/bot"
	"github.com/neonflux-io/discord-admin-bot/internal/cache"
	"github.com/neonflux-io/discord-admin-bot/internal/config"
	"github.com/neonflux-io/discord-admin-bot/internal/metrics"
	"github.com/neonflux-io/discord-admin-bot/internal/redis"
)

func main() {
	// Favor latency over memory: moderation actions should not stall
	// behind GC pauses.
	debug.SetGCPercent(200)

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := config.BuildLogger(cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString("logger error: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Token == "" {
		log.Fatal("no bot token configured, set DISCORD_TOKEN or config.json")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.New(cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, running with in-process state only", zap.Error(err))
			rdb = nil
		} else {
			log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	c, err := cache.New(rdb, cache.Config{})
	if err != nil {
		log.Fatal("cache init failed", zap.Error(err))
	}

	if cfg.MetricsAddr != "" {
		metrics.Serve(cfg.MetricsAddr, log)
		log.Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
	}

	b, err := bot.New(cfg, log, rdb, c)
	if err != nil {
		log.Fatal("bot init failed", zap.Error(err))
	}
	if err := b.Start(); err != nil {
		log.Fatal("bot stopped", zap.Error(err))
	}
}
