package state

import "sync"

// ReactionRoles maps (guild, message, emoji) to the role granted while
// a member keeps the reaction. Both unicode emoji and custom emoji
// names are accepted as keys.
type ReactionRoles struct {
	mu sync.RWMutex
	m  map[string]map[string]map[string]string
}

func NewReactionRoles() *ReactionRoles {
	return &ReactionRoles{m: make(map[string]map[string]map[string]string)}
}

func (r *ReactionRoles) Set(guildID, messageID, emoji, roleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.m[guildID]
	if !ok {
		g = make(map[string]map[string]string)
		r.m[guildID] = g
	}
	msg, ok := g[messageID]
	if !ok {
		msg = make(map[string]string)
		g[messageID] = msg
	}
	msg[emoji] = roleID
}

func (r *ReactionRoles) Lookup(guildID, messageID, emoji string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roleID, ok := r.m[guildID][messageID][emoji]
	return roleID, ok
}

// Remove drops every binding attached to a message. Reports whether
// any existed.
func (r *ReactionRoles) Remove(guildID, messageID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg, ok := r.m[guildID][messageID]
	if !ok || len(msg) == 0 {
		return false
	}
	delete(r.m[guildID], messageID)
	return true
}

// Binding is one (message, emoji, role) entry as listed by All.
type Binding struct {
	MessageID string
	Emoji     string
	RoleID    string
}

// All returns a guild's bindings in unspecified order.
func (r *ReactionRoles) All(guildID string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Binding
	for messageID, msg := range r.m[guildID] {
		for emoji, roleID := range msg {
			out = append(out, Binding{MessageID: messageID, Emoji: emoji, RoleID: roleID})
		}
	}
	return out
}

// Count reports how many bindings a guild has, for diagnostics.
func (r *ReactionRoles) Count(guildID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, msg := range r.m[guildID] {
		n += len(msg)
	}
	return n
}
