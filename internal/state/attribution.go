package state

import "sync"

// Attribution remembers which moderator performed an action on which
// member, per guild. Actions taken outside the bot (or before it
// started) have no entry; rendering code shows those as "manually".
type Attribution struct {
	mu sync.RWMutex
	m  map[string]map[string]string // guildID -> userID -> moderatorID
}

func NewAttribution() *Attribution {
	return &Attribution{m: make(map[string]map[string]string)}
}

func (a *Attribution) Record(guildID, userID, moderatorID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	g, ok := a.m[guildID]
	if !ok {
		g = make(map[string]string)
		a.m[guildID] = g
	}
	g[userID] = moderatorID
}

// Lookup returns the moderator who acted on userID, if the bot saw the
// action happen.
func (a *Attribution) Lookup(guildID, userID string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	mod, ok := a.m[guildID][userID]
	return mod, ok
}

func (a *Attribution) Clear(guildID, userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if g, ok := a.m[guildID]; ok {
		delete(g, userID)
		if len(g) == 0 {
			delete(a.m, guildID)
		}
	}
}
