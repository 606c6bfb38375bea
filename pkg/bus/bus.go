package bus

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrBusClosed is returned when publishing to a closed EventBus.
var ErrBusClosed = errors.New("event bus closed")

// EventBus carries platform events from adapter goroutines to the single
// relay engine loop. The engine consumes events one at a time, which is
// what makes shared relay state effectively single-writer.
type EventBus struct {
	inbound   chan InboundMessage
	reactions chan ReactionEvent
	done      chan struct{}
	closed    atomic.Bool
}

func NewEventBus() *EventBus {
	return &EventBus{
		inbound:   make(chan InboundMessage, 100),
		reactions: make(chan ReactionEvent, 100),
		done:      make(chan struct{}),
	}
}

func (eb *EventBus) PublishInbound(ctx context.Context, msg InboundMessage) error {
	if eb.closed.Load() {
		return ErrBusClosed
	}
	select {
	case eb.inbound <- msg:
		return nil
	case <-eb.done:
		return ErrBusClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (eb *EventBus) PublishReaction(ctx context.Context, evt ReactionEvent) error {
	if eb.closed.Load() {
		return ErrBusClosed
	}
	select {
	case eb.reactions <- evt:
		return nil
	case <-eb.done:
		return ErrBusClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Inbound exposes the message stream for the engine's select loop.
func (eb *EventBus) Inbound() <-chan InboundMessage {
	return eb.inbound
}

// Reactions exposes the reaction stream for the engine's select loop.
func (eb *EventBus) Reactions() <-chan ReactionEvent {
	return eb.reactions
}

// Done is closed when the bus shuts down.
func (eb *EventBus) Done() <-chan struct{} {
	return eb.done
}

func (eb *EventBus) Close() {
	if eb.closed.CompareAndSwap(false, true) {
		close(eb.done)
	}
}
