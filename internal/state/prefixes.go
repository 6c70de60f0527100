package state

import "sync"

// Prefixes maps guilds to their configured command prefix.
type Prefixes struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewPrefixes() *Prefixes {
	return &Prefixes{m: make(map[string]string)}
}

// Get returns the guild's prefix, or fallback when none was set.
func (p *Prefixes) Get(guildID, fallback string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.m[guildID]; ok {
		return v
	}
	return fallback
}

func (p *Prefixes) Set(guildID, prefix string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[guildID] = prefix
}
