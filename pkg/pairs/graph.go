package pairs

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sahiljaat11/discord-translator-bot/pkg/logger"
)

const persistTimeout = 5 * time.Second

// Graph is the in-memory channel pair index consulted on every inbound
// event. Mutations validate invariants first, update memory, then enqueue
// a write-through to the store; a persistence failure is logged and does
// not disturb the index.
type Graph struct {
	mu       sync.RWMutex
	bySource map[string][]Pair
	byID     map[string]Pair

	store Store
	queue *writeQueue
}

func NewGraph(store Store) *Graph {
	g := &Graph{
		bySource: make(map[string][]Pair),
		byID:     make(map[string]Pair),
		store:    store,
		queue:    newWriteQueue(64),
	}
	g.queue.start()
	return g
}

// LoadGuild replaces the in-memory pairs for a guild with the persisted
// set. Called at startup and on guild-join.
func (g *Graph) LoadGuild(ctx context.Context, guildID string) error {
	ps, err := g.store.LoadPairs(ctx, guildID)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.dropGuildLocked(guildID)
	for _, p := range ps {
		g.insertLocked(p)
	}

	logger.InfoCF("pairs", "Guild pairs loaded", map[string]any{
		"guild_id": guildID,
		"count":    len(ps),
	})
	return nil
}

// AddPair validates and inserts a new edge, assigning its id and creation
// time, and schedules the persistence write.
func (g *Graph) AddPair(p Pair) (Pair, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if err := p.Validate(); err != nil {
		return Pair{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, existing := range g.bySource[p.SourceChannel] {
		if existing.TargetChannel == p.TargetChannel {
			return Pair{}, ErrDuplicate
		}
	}

	g.insertLocked(p)

	snapshot := p
	g.queue.enqueue("upsert pair", func(ctx context.Context) error {
		return g.store.UpsertPairs(ctx, snapshot.GuildID, []Pair{snapshot})
	})
	return p, nil
}

// RemovePair deletes the edge with the given id. A missing id is reported
// as ErrNotFound without mutating anything.
func (g *Graph) RemovePair(guildID, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.byID[id]
	if !ok || p.GuildID != guildID {
		return ErrNotFound
	}

	g.removeLocked(p)

	g.queue.enqueue("delete pair", func(ctx context.Context) error {
		return g.store.DeletePairs(ctx, guildID, []string{id})
	})
	return nil
}

// ClearGuild removes every edge for a guild and returns how many were
// dropped.
func (g *Graph) ClearGuild(guildID string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	var ids []string
	for id, p := range g.byID {
		if p.GuildID == guildID {
			ids = append(ids, id)
		}
	}
	g.dropGuildLocked(guildID)

	if len(ids) > 0 {
		g.queue.enqueue("clear guild pairs", func(ctx context.Context) error {
			return g.store.DeletePairs(ctx, guildID, ids)
		})
	}
	return len(ids)
}

// EdgesFrom returns the outbound edges for a source channel in stable
// creation order.
func (g *Graph) EdgesFrom(channelID string) []Pair {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges := g.bySource[channelID]
	out := make([]Pair, len(edges))
	copy(out, edges)
	return out
}

// GuildPairs lists a guild's edges sorted by creation time.
func (g *Graph) GuildPairs(guildID string) []Pair {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Pair
	for _, p := range g.byID {
		if p.GuildID == guildID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// PairCount returns the total number of edges across all guilds.
func (g *Graph) PairCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.byID)
}

// Close drains pending persistence writes and closes the store.
func (g *Graph) Close() error {
	g.queue.stop()
	return g.store.Close()
}

func (g *Graph) insertLocked(p Pair) {
	g.byID[p.ID] = p
	edges := append(g.bySource[p.SourceChannel], p)
	sort.Slice(edges, func(i, j int) bool { return edges[i].CreatedAt.Before(edges[j].CreatedAt) })
	g.bySource[p.SourceChannel] = edges
}

func (g *Graph) removeLocked(p Pair) {
	delete(g.byID, p.ID)
	edges := g.bySource[p.SourceChannel]
	for i, e := range edges {
		if e.ID == p.ID {
			g.bySource[p.SourceChannel] = append(edges[:i], edges[i+1:]...)
			break
		}
	}
	if len(g.bySource[p.SourceChannel]) == 0 {
		delete(g.bySource, p.SourceChannel)
	}
}

func (g *Graph) dropGuildLocked(guildID string) {
	for id, p := range g.byID {
		if p.GuildID == guildID {
			delete(g.byID, id)
		}
	}
	for src, edges := range g.bySource {
		kept := edges[:0]
		for _, e := range edges {
			if e.GuildID != guildID {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(g.bySource, src)
		} else {
			g.bySource[src] = kept
		}
	}
}
