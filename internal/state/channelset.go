package state

import "sync"

// ChannelSet tracks which channels are currently soft-locked or
// soft-hidden so the unlock side knows what to revert.
type ChannelSet struct {
	mu sync.RWMutex
	m  map[string]struct{}
}

func NewChannelSet() *ChannelSet {
	return &ChannelSet{m: make(map[string]struct{})}
}

func (s *ChannelSet) Add(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[channelID] = struct{}{}
}

// Remove deletes channelID and reports whether it was present.
func (s *ChannelSet) Remove(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[channelID]
	delete(s.m, channelID)
	return ok
}

func (s *ChannelSet) Has(channelID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.m[channelID]
	return ok
}

// IDs returns a snapshot of the members.
func (s *ChannelSet) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.m))
	for id := range s.m {
		out = append(out, id)
	}
	return out
}
