// Package meter aggregates per-provider translation usage: call counts,
// failures, characters submitted and cumulative latency. The status
// surfaces read snapshots from it; nothing in the relay's decision path
// depends on it.
package meter

import (
	"sort"
	"sync"
	"time"
)

// ProviderMeter tracks usage for one translation backend.
type ProviderMeter struct {
	Name         string
	Calls        int64
	Failures     int64
	Characters   int64
	TotalLatency time.Duration
	LastUsed     time.Time
}

// Store holds meters keyed by provider name.
type Store struct {
	mu     sync.RWMutex
	meters map[string]*ProviderMeter
}

func NewStore() *Store {
	return &Store{meters: make(map[string]*ProviderMeter)}
}

// Record adds one provider invocation to the meter.
func (s *Store) Record(provider string, characters int, latency time.Duration, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.meters[provider]
	if !ok {
		m = &ProviderMeter{Name: provider}
		s.meters[provider] = m
	}

	m.Calls++
	if failed {
		m.Failures++
	}
	m.Characters += int64(characters)
	m.TotalLatency += latency
	m.LastUsed = time.Now()
}

// Snapshot returns a copy of all meters sorted by provider name.
func (s *Store) Snapshot() []ProviderMeter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ProviderMeter, 0, len(s.meters))
	for _, m := range s.meters {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
