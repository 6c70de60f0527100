package state

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Overwrite is one saved permission overwrite from before a hard
// lock/hide. Existed is false when the target had no overwrite at all,
// so the restore deletes rather than rewrites it.
type Overwrite struct {
	TargetID string
	Type     discordgo.PermissionOverwriteType
	Allow    int64
	Deny     int64
	Existed  bool
}

// Snapshot captures a channel's overwrites for every role and member
// touched by a hard action, keyed by target ID.
type Snapshot map[string]Overwrite

// SnapshotStore holds at most one snapshot per channel. A second hard
// action on a channel with an outstanding snapshot is refused; letting
// it overwrite the saved state would make the eventual restore put
// back the already-locked permissions.
type SnapshotStore struct {
	mu sync.Mutex
	m  map[string]Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{m: make(map[string]Snapshot)}
}

// Put saves snap for channelID. Returns false, without storing, when a
// snapshot is already outstanding.
func (s *SnapshotStore) Put(channelID string, snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[channelID]; exists {
		return false
	}
	s.m[channelID] = snap
	return true
}

// Take removes and returns the snapshot for channelID.
func (s *SnapshotStore) Take(channelID string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.m[channelID]
	delete(s.m, channelID)
	return snap, ok
}

func (s *SnapshotStore) Has(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[channelID]
	return ok
}
