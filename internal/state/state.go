// Package state holds all cross-command bot state behind mutexes.
// Handlers run concurrently on gateway goroutines, so nothing in here
// is safe to keep as a bare map on the Bot struct.
package state

// Store aggregates every piece of mutable state the commands share.
// Everything is in-memory and lost on restart.
type Store struct {
	Prefixes      *Prefixes
	TimeoutMods   *Attribution
	BanMods       *Attribution
	Locked        *ChannelSet
	Hidden        *ChannelSet
	HardLock      *SnapshotStore
	HardHide      *SnapshotStore
	AFK           *AFKStore
	ReactionRoles *ReactionRoles
}

func New() *Store {
	return &Store{
		Prefixes:      NewPrefixes(),
		TimeoutMods:   NewAttribution(),
		BanMods:       NewAttribution(),
		Locked:        NewChannelSet(),
		Hidden:        NewChannelSet(),
		HardLock:      NewSnapshotStore(),
		HardHide:      NewSnapshotStore(),
		AFK:           NewAFKStore(),
		ReactionRoles: NewReactionRoles(),
	}
}
