package moderation

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/cache"
)

// Resolver turns a command argument into a guild member. Accepts
// mention syntax (<@id> and <@!id>) and bare numeric IDs. A lookup
// that matches nothing returns nil, not an error; commands decide how
// to report that.
type Resolver struct {
	Cache *cache.Cache
}

const memberTTL = 30 * time.Second

// ParseID extracts the user ID from arg, or returns false when arg is
// neither a mention nor a numeric ID.
func ParseID(arg string) (string, bool) {
	if strings.HasPrefix(arg, "<@") && strings.HasSuffix(arg, ">") {
		id := strings.TrimSuffix(strings.TrimPrefix(arg, "<@"), ">")
		id = strings.TrimPrefix(id, "!")
		if isSnowflake(id) {
			return id, true
		}
		return "", false
	}
	if isSnowflake(arg) {
		return arg, true
	}
	return "", false
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Member resolves arg to a member of guildID. Lookups go through the
// cache so repeated targeting of the same member in quick succession
// hits the REST API once.
func (r *Resolver) Member(s *discordgo.Session, guildID, arg string) *discordgo.Member {
	id, ok := ParseID(arg)
	if !ok {
		return nil
	}

	if r.Cache == nil {
		m, err := s.GuildMember(guildID, id)
		if err != nil {
			return nil
		}
		return m
	}

	val, err := r.Cache.Get(context.Background(), "member:"+guildID+":"+id, memberTTL, func() (interface{}, error) {
		return s.GuildMember(guildID, id)
	})
	if err != nil {
		return nil
	}
	m, _ := val.(*discordgo.Member)
	return m
}
