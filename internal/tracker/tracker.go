// Package tracker keeps rolling per-guild activity counters fed from
// raw gateway traffic. Counters are mirrored to Redis when available
// so they survive restarts.
package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/redis"
)

// Tracker counts messages and member joins per guild. It reads the
// raw gateway payload instead of the decoded structs so it stays off
// the hot path of the typed handlers.
type Tracker struct {
	mu       sync.Mutex
	messages map[string]int64
	joins    map[string]int64

	rdb *redis.Client
	log *zap.Logger
}

func New(rdb *redis.Client, log *zap.Logger) *Tracker {
	return &Tracker{
		messages: make(map[string]int64),
		joins:    make(map[string]int64),
		rdb:      rdb,
		log:      log,
	}
}

func redisKey(guildID string) string {
	return fmt.Sprintf("activity:%s:%s", guildID, time.Now().UTC().Format("2006-01-02"))
}

// HandleEvent consumes every raw gateway dispatch. Only MESSAGE_CREATE
// and GUILD_MEMBER_ADD advance counters.
func (t *Tracker) HandleEvent(s *discordgo.Session, e *discordgo.Event) {
	if len(e.RawData) == 0 {
		return
	}
	switch e.Type {
	case "MESSAGE_CREATE":
		if gjson.GetBytes(e.RawData, "author.bot").Bool() {
			return
		}
		guildID := gjson.GetBytes(e.RawData, "guild_id").String()
		if guildID == "" {
			return
		}
		t.bump(t.messages, guildID, "messages")
	case "GUILD_MEMBER_ADD":
		guildID := gjson.GetBytes(e.RawData, "guild_id").String()
		if guildID == "" {
			return
		}
		t.bump(t.joins, guildID, "joins")
	}
}

func (t *Tracker) bump(m map[string]int64, guildID, field string) {
	t.mu.Lock()
	m[guildID]++
	t.mu.Unlock()

	if t.rdb != nil {
		if _, err := t.rdb.HIncrBy(redisKey(guildID), field, 1); err != nil {
			t.log.Debug("activity counter write failed", zap.Error(err))
		}
	}
}

// Counts returns today's message and join totals for a guild.
func (t *Tracker) Counts(guildID string) (messages, joins int64) {
	if t.rdb != nil {
		all, err := t.rdb.HGetAll(redisKey(guildID))
		if err == nil && len(all) > 0 {
			return parseCount(all["messages"]), parseCount(all["joins"])
		}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.messages[guildID], t.joins[guildID]
}

func parseCount(s string) int64 {
	var n int64
	fmt.Sscanf(s, "%d", &n)
	return n
}
