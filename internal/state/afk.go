package state

import (
	"sync"
	"time"
)

// AFKScope distinguishes a global AFK (any mutual guild) from one
// limited to the guild it was set in.
type AFKScope int

const (
	AFKGlobal AFKScope = iota
	AFKServer
)

// AFKRecord is one user's away status. OrigNick is restored when the
// user comes back.
type AFKRecord struct {
	Reason   string
	Since    time.Time
	OrigNick string
}

// AFKStore keeps global records by user ID and server records by
// (guild, user).
type AFKStore struct {
	mu     sync.RWMutex
	global map[string]AFKRecord
	server map[string]map[string]AFKRecord
}

func NewAFKStore() *AFKStore {
	return &AFKStore{
		global: make(map[string]AFKRecord),
		server: make(map[string]map[string]AFKRecord),
	}
}

func (s *AFKStore) Set(scope AFKScope, guildID, userID string, rec AFKRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scope == AFKGlobal {
		s.global[userID] = rec
		return
	}
	g, ok := s.server[guildID]
	if !ok {
		g = make(map[string]AFKRecord)
		s.server[guildID] = g
	}
	g[userID] = rec
}

// Get checks the server record first, then the global one.
func (s *AFKStore) Get(guildID, userID string) (AFKRecord, AFKScope, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.server[guildID][userID]; ok {
		return rec, AFKServer, true
	}
	if rec, ok := s.global[userID]; ok {
		return rec, AFKGlobal, true
	}
	return AFKRecord{}, AFKGlobal, false
}

// Pop removes and returns the record that Get would see.
func (s *AFKStore) Pop(guildID, userID string) (AFKRecord, AFKScope, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.server[guildID]; ok {
		if rec, ok := g[userID]; ok {
			delete(g, userID)
			if len(g) == 0 {
				delete(s.server, guildID)
			}
			return rec, AFKServer, true
		}
	}
	if rec, ok := s.global[userID]; ok {
		delete(s.global, userID)
		return rec, AFKGlobal, true
	}
	return AFKRecord{}, AFKGlobal, false
}
