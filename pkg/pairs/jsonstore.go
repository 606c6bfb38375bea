package pairs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore keeps all guilds' pairs in a single JSON file. Suited to
// single-instance deployments; the whole file is rewritten on every
// mutation, which is fine at the scale of an admin-managed pair graph.
type JSONStore struct {
	mu   sync.Mutex
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) LoadPairs(_ context.Context, guildID string) ([]Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	return all[guildID], nil
}

func (s *JSONStore) UpsertPairs(_ context.Context, guildID string, ps []Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readLocked()
	if err != nil {
		return err
	}

	existing := all[guildID]
	for _, p := range ps {
		replaced := false
		for i, e := range existing {
			if e.ID == p.ID {
				existing[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, p)
		}
	}
	all[guildID] = existing

	return s.writeLocked(all)
}

func (s *JSONStore) DeletePairs(_ context.Context, guildID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readLocked()
	if err != nil {
		return err
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := all[guildID][:0]
	for _, p := range all[guildID] {
		if !drop[p.ID] {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		delete(all, guildID)
	} else {
		all[guildID] = kept
	}

	return s.writeLocked(all)
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) readLocked() (map[string][]Pair, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string][]Pair), nil
		}
		return nil, err
	}

	all := make(map[string][]Pair)
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (s *JSONStore) writeLocked(all map[string][]Pair) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
