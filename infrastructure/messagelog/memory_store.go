package messagelog

import (
	"context"
	"sync"

	domainMessageLog "github.com/AzielCF/az-evo-relay/domains/messagelog"
)

// MemoryStore keeps every received payload for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []domainMessageLog.Payload
}

var _ domainMessageLog.IMessageLogStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append stores the payload and returns the new log length.
func (s *MemoryStore) Append(ctx context.Context, payload domainMessageLog.Payload) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, payload)
	return len(s.entries)
}

// List returns a snapshot in insertion order.
func (s *MemoryStore) List(ctx context.Context) []domainMessageLog.Payload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domainMessageLog.Payload, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear empties the log and returns how many entries were removed.
func (s *MemoryStore) Clear(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	s.entries = nil
	return n
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
