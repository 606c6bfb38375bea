package pairs

import (
	"context"
	"sync"

	"github.com/sahiljaat11/discord-translator-bot/pkg/logger"
)

type writeTask struct {
	name string
	fn   func(ctx context.Context) error
}

// writeQueue serializes persistence writes off the relay's critical path.
// Failures end in the log, never back in the caller: in-memory state stays
// authoritative either way.
type writeQueue struct {
	tasks chan writeTask
	wg    sync.WaitGroup
	once  sync.Once
}

func newWriteQueue(size int) *writeQueue {
	return &writeQueue{tasks: make(chan writeTask, size)}
}

func (q *writeQueue) start() {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for t := range q.tasks {
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			if err := t.fn(ctx); err != nil {
				logger.ErrorCF("pairs", "Persistence write failed", map[string]any{
					"task":  t.name,
					"error": err.Error(),
				})
			}
			cancel()
		}
	}()
}

// enqueue schedules a write. When the queue is saturated the task runs
// inline instead of being dropped; pair mutations are rare enough that
// blocking an admin command briefly beats losing the write.
func (q *writeQueue) enqueue(name string, fn func(ctx context.Context) error) {
	select {
	case q.tasks <- writeTask{name: name, fn: fn}:
	default:
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			logger.ErrorCF("pairs", "Persistence write failed", map[string]any{
				"task":  name,
				"error": err.Error(),
			})
		}
	}
}

// stop drains outstanding tasks and waits for the worker to exit.
func (q *writeQueue) stop() {
	q.once.Do(func() {
		close(q.tasks)
	})
	q.wg.Wait()
}
