package pairs

import "context"

// Store persists channel pairs per guild. Calls are fire-and-forget from
// the relay's perspective: the graph enqueues them on a background queue
// and logs failures without rolling back in-memory state.
type Store interface {
	LoadPairs(ctx context.Context, guildID string) ([]Pair, error)
	UpsertPairs(ctx context.Context, guildID string, ps []Pair) error
	DeletePairs(ctx context.Context, guildID string, ids []string) error
	Close() error
}
